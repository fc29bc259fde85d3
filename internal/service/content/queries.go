package content

// Section names served by the content proxy.
const (
	SectionHero         = "hero"
	SectionServices     = "services"
	SectionTimeline     = "timeline"
	SectionTestimonials = "testimonials"
	SectionPortfolio    = "portfolio"
)

var queries = map[string]string{
	SectionHero: `*[_type == "hero"][0]{
  title, subtitle, ctaText, ctaLink,
  "imageUrl": image.asset->url
}`,
	SectionServices: `*[_type == "service"] | order(order asc){
  _id, title, "slug": slug.current, category, description, duration, price,
  "imageUrl": image.asset->url
}`,
	SectionTimeline: `*[_type == "timelineEvent"] | order(year asc){
  _id, year, title, description
}`,
	SectionTestimonials: `*[_type == "testimonial" && featured == true] | order(_createdAt desc){
  _id, name, role, quote, rating
}`,
	SectionPortfolio: `*[_type == "portfolioItem"] | order(order asc){
  _id, title, category, description,
  "imageUrl": image.asset->url
}`,
}

// Sections lists the section names in display order.
func Sections() []string {
	return []string{SectionHero, SectionServices, SectionTimeline, SectionTestimonials, SectionPortfolio}
}
