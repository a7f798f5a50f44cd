package public

import (
	"context"
	"net/http"
	"time"

	"github.com/aiagencydirectory/api/internal/interfaces/http/common"
)

func (h *Handler) newsletterHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		var req struct {
			Email string `json:"email"`
		}
		if err := decodeBody(w, r, &req); err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}

		if err := h.engagement.SubscribeNewsletter(ctx, req.Email); err != nil {
			common.WriteError(h.logger, w, err)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusCreated, map[string]string{"status": "subscribed"})
	}
}

func (h *Handler) recordSearchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		var req struct {
			Term string `json:"term"`
		}
		if err := decodeBody(w, r, &req); err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}

		if err := h.engagement.RecordSearch(ctx, req.Term); err != nil {
			common.WriteError(h.logger, w, err)
			return
		}
		w.WriteHeader(http.StatusAccepted)
	}
}

func (h *Handler) popularSearchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		searches, err := h.engagement.PopularSearches(ctx)
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}

		type entry struct {
			Term  string `json:"term"`
			Count int    `json:"count"`
		}
		items := make([]entry, 0, len(searches))
		for _, s := range searches {
			items = append(items, entry{Term: s.Term, Count: s.Count})
		}
		common.WriteJSON(h.logger, w, http.StatusOK, map[string]any{"items": items})
	}
}
