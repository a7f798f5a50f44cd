package public

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aiagencydirectory/api/internal/directory"
	"github.com/aiagencydirectory/api/internal/interfaces/http/common"
)

func (h *Handler) checkoutStartHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
		defer cancel()

		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteJSON(h.logger, w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
			return
		}

		// The body is optional; checkout only ever sells the premium plan.
		var req struct {
			Plan string `json:"plan"`
		}
		if err := decodeBody(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		plan := directory.Plan(strings.ToLower(strings.TrimSpace(req.Plan)))
		if plan != "" && plan != directory.PlanPremium {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "only the premium plan is purchased through checkout"})
			return
		}

		session, err := h.billing.StartCheckout(ctx, user.ID)
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusCreated, checkoutResponse{
			SessionID: session.ID,
			URL:       session.URL,
		})
	}
}

func (h *Handler) checkoutConfirmHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
		defer cancel()

		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteJSON(h.logger, w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
			return
		}

		var req struct {
			SessionID string `json:"sessionId"`
		}
		if err := decodeBody(w, r, &req); err != nil || req.SessionID == "" {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "sessionId is required"})
			return
		}

		updated, err := h.billing.ConfirmCheckout(ctx, user.ID, req.SessionID)
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, buildProfileResponse(*updated))
	}
}

func (h *Handler) basicPlanHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteJSON(h.logger, w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
			return
		}

		updated, err := h.billing.ChooseBasic(ctx, user.ID)
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, buildProfileResponse(*updated))
	}
}
