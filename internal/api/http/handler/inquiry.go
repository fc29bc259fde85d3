package handler

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"github.com/glowandgrind/site-api/internal/forms"
	"github.com/glowandgrind/site-api/internal/service/inquiry"
)

const (
	msgInvalidBody = "Invalid request body"
	msgUnexpected  = "An unexpected error occurred. Please try again later."
	msgNotSaved    = "We could not save your request. Please try again later."

	msgBookingReceived  = "Booking request received! We'll contact you within 24 hours to confirm your appointment."
	msgContactReceived  = "Thank you for your message! We'll get back to you soon."
	msgTrainingReceived = "Training inquiry received! We'll be in touch within 48 hours to discuss your team's needs."
)

type InquiryHandler struct {
	svc inquiry.Service
	log *slog.Logger
}

func NewInquiryHandler(svc inquiry.Service, log *slog.Logger) *InquiryHandler {
	if log == nil {
		log = slog.Default()
	}
	return &InquiryHandler{svc: svc, log: log}
}

type bookingData struct {
	ConfirmationNumber string `json:"confirmationNumber"`
}

func (h *InquiryHandler) Booking(c fiber.Ctx) error {
	var req forms.BookingRequest
	if err := decode(c, &req); err != nil {
		return h.mapInquiryError(c, err)
	}

	res, err := h.svc.SubmitBooking(c.Context(), req)
	if err != nil {
		return h.mapInquiryError(c, err)
	}
	return ok(c, msgBookingReceived, bookingData{ConfirmationNumber: res.ConfirmationNumber})
}

func (h *InquiryHandler) Contact(c fiber.Ctx) error {
	var req forms.ContactMessage
	if err := decode(c, &req); err != nil {
		return h.mapInquiryError(c, err)
	}

	if _, err := h.svc.SubmitContact(c.Context(), req); err != nil {
		return h.mapInquiryError(c, err)
	}
	return ok(c, msgContactReceived, nil)
}

func (h *InquiryHandler) Training(c fiber.Ctx) error {
	var req forms.TrainingInquiry
	if err := decode(c, &req); err != nil {
		return h.mapInquiryError(c, err)
	}

	if _, err := h.svc.SubmitTraining(c.Context(), req); err != nil {
		return h.mapInquiryError(c, err)
	}
	return ok(c, msgTrainingReceived, nil)
}

// decode reads the JSON body with the app's decoder. Wrong-typed fields come
// back as field errors; anything unparsable is forms.ErrMalformed.
func decode(c fiber.Ctx, form any) error {
	return forms.Decode(c.App().Config().JSONDecoder, c.Body(), form)
}

func (h *InquiryHandler) mapInquiryError(c fiber.Ctx, err error) error {
	if errors.Is(err, forms.ErrMalformed) {
		return badRequest(c, msgInvalidBody)
	}

	var verr *forms.ValidationError
	if errors.As(err, &verr) {
		return validationFailed(c, verr.Errors)
	}

	var derr *inquiry.DispatchError
	if errors.As(err, &derr) {
		return internalError(c, derr.PublicMessage())
	}

	if errors.Is(err, inquiry.ErrPersist) {
		return internalError(c, msgNotSaved)
	}

	if !errors.Is(err, inquiry.ErrInternal) {
		h.log.ErrorContext(c.Context(), "inquiry submission failed", "path", c.Path(), "err", err)
	}
	return internalError(c, "")
}
