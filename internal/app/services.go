package app

import (
	"log/slog"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/fx"

	"github.com/glowandgrind/site-api/config"
	"github.com/glowandgrind/site-api/internal/forms"
	"github.com/glowandgrind/site-api/internal/repo"
	"github.com/glowandgrind/site-api/internal/service/content"
	"github.com/glowandgrind/site-api/internal/service/inquiry"
	"github.com/glowandgrind/site-api/pkg/email"
	"github.com/glowandgrind/site-api/pkg/util/codes"
)

// ServiceModule provides all application service dependencies.
var ServiceModule = fx.Module("services",
	fx.Provide(
		ProvideInquiryService,
		ProvideContentService,
	),
)

func ProvideInquiryService(
	store repo.Store,
	sender email.Sender,
	validator *forms.Validator,
	gen *codes.Generator,
	cfg *config.Config,
	log *slog.Logger,
) inquiry.Service {
	return inquiry.New(store, sender, validator, gen, inquiry.FromCentralConfig(cfg), log)
}

func ProvideContentService(q content.Querier, c fiber.Storage, cfg *config.Config, log *slog.Logger) content.Service {
	return content.New(q, c, content.FromCentralConfig(cfg.CMS), log)
}
