package public

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	publicapp "github.com/aiagencydirectory/api/internal/public/application"
)

// Handler wires public HTTP endpoints to application services.
type Handler struct {
	logger     *zap.SugaredLogger
	queries    publicapp.DirectoryQueryService
	commands   publicapp.AgencyCommandService
	billing    publicapp.BillingService
	accounts   publicapp.AccountService
	engagement publicapp.EngagementService
}

// Config defines dependencies required by Handler.
type Config struct {
	Logger     *zap.SugaredLogger
	Queries    publicapp.DirectoryQueryService
	Commands   publicapp.AgencyCommandService
	Billing    publicapp.BillingService
	Accounts   publicapp.AccountService
	Engagement publicapp.EngagementService
}

// NewHandler constructs a public HTTP handler set.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		logger:     cfg.Logger,
		queries:    cfg.Queries,
		commands:   cfg.Commands,
		billing:    cfg.Billing,
		accounts:   cfg.Accounts,
		engagement: cfg.Engagement,
	}
}

// Register mounts all public routes onto the router.
func (h *Handler) Register(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Get("/agencies", h.agencyArchiveHandler())
	r.Get("/agencies/featured", h.agencyFeaturedHandler())
	r.Get("/agencies/{id}", h.agencyDetailHandler())
	r.Get("/taxonomy", h.taxonomyHandler())
	r.Get("/searches/popular", h.popularSearchesHandler())
	r.Post("/searches", h.recordSearchHandler())
	r.Post("/newsletter", h.newsletterHandler())
	r.Post("/website-check", h.websiteCheckHandler())

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/auth/verify", h.authVerifyHandler())
		r.Get("/account", h.accountProfileHandler())
		r.Put("/account/username", h.accountUsernameHandler())

		r.Post("/billing/checkout", h.checkoutStartHandler())
		r.Post("/billing/confirm", h.checkoutConfirmHandler())
		r.Post("/billing/basic", h.basicPlanHandler())

		r.Get("/me/agencies", h.ownedAgenciesHandler())
		r.Post("/uploads/logo", h.logoUploadHandler())

		r.Post("/agencies", h.agencySubmitHandler())
		r.Put("/agencies/{id}", h.agencyUpdateHandler())
		r.Delete("/agencies/{id}", h.agencyDeleteHandler())

		r.Post("/agencies/{id}/testimonials", h.testimonialAddHandler())
		r.Put("/agencies/{id}/testimonials/{itemID}", h.testimonialUpdateHandler())
		r.Delete("/agencies/{id}/testimonials/{itemID}", h.testimonialDeleteHandler())

		r.Post("/agencies/{id}/case-studies", h.caseStudyAddHandler())
		r.Put("/agencies/{id}/case-studies/{itemID}", h.caseStudyUpdateHandler())
		r.Delete("/agencies/{id}/case-studies/{itemID}", h.caseStudyDeleteHandler())

		r.Post("/agencies/{id}/pricings", h.pricingAddHandler())
		r.Put("/agencies/{id}/pricings/{itemID}", h.pricingUpdateHandler())
		r.Delete("/agencies/{id}/pricings/{itemID}", h.pricingDeleteHandler())
	})
}
