package admin

import (
	"context"
	"net/http"
	"time"

	"github.com/aiagencydirectory/api/internal/interfaces/http/common"
)

func (h *Handler) metricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		metrics, err := h.metrics.Overview(ctx)
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, map[string]any{
			"totalAgencies":    metrics.TotalAgencies,
			"approvedAgencies": metrics.ApprovedAgencies,
			"pendingAgencies":  metrics.PendingAgencies,
			"featuredAgencies": metrics.FeaturedAgencies,
			"totalUsers":       metrics.TotalUsers,
			"subscribedUsers":  metrics.SubscribedUsers,
			"byIndustry":       metrics.ByIndustry,
		})
	}
}
