package admin

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	adminapp "github.com/aiagencydirectory/api/internal/admin/application"
)

// Handler wires admin HTTP endpoints to application services.
type Handler struct {
	logger        *zap.SugaredLogger
	agencies      adminapp.AgencyService
	users         adminapp.UserService
	metrics       adminapp.MetricsService
	notifications adminapp.NotificationService
}

// Config provides dependencies for Handler.
type Config struct {
	Logger        *zap.SugaredLogger
	Agencies      adminapp.AgencyService
	Users         adminapp.UserService
	Metrics       adminapp.MetricsService
	Notifications adminapp.NotificationService
}

// NewHandler constructs an admin HTTP handler set.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		logger:        cfg.Logger,
		agencies:      cfg.Agencies,
		users:         cfg.Users,
		metrics:       cfg.Metrics,
		notifications: cfg.Notifications,
	}
}

// Register mounts admin routes onto router. Authentication and the admin
// role check happen in the server before this group is reached.
func (h *Handler) Register(r chi.Router) {
	r.Get("/agencies", h.agencyListHandler())
	r.Get("/agencies/{id}", h.agencyDetailHandler())
	r.Post("/agencies", h.agencyCreateHandler())
	r.Put("/agencies/{id}", h.agencyUpdateHandler())
	r.Delete("/agencies/{id}", h.agencyDeleteHandler())
	r.Patch("/agencies/{id}/approved", h.agencyToggleApprovedHandler())
	r.Patch("/agencies/{id}/featured", h.agencyToggleFeaturedHandler())

	r.Get("/users", h.userListHandler())
	r.Post("/users", h.userInviteHandler())
	r.Put("/users/{id}", h.userUpdateHandler())
	r.Delete("/users/{id}", h.userDeleteHandler())

	r.Get("/metrics", h.metricsHandler())

	r.Get("/notifications", h.notificationListHandler())
	r.Patch("/notifications/{id}/read", h.notificationReadHandler())
	r.Delete("/notifications/{id}", h.notificationDeleteHandler())
}
