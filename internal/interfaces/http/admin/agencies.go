package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/aiagencydirectory/api/internal/directory"
	"github.com/aiagencydirectory/api/internal/interfaces/http/common"
)

func (h *Handler) agencyListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		query := r.URL.Query()
		page, _ := common.ParsePositiveInt(query.Get("page"), 1)
		pageSize, _ := common.ParsePositiveInt(query.Get("pageSize"), common.AdminPageSize)

		q := directory.Query{
			SearchTerm:  strings.TrimSpace(query.Get("search")),
			SearchField: directory.SearchByName,
			Approval:    parseApprovalFilter(query.Get("status")),
			Industries:  common.NormalizeIndustries(query["industry"]),
			Sort:        parseSortKey(query.Get("sort")),
			Page:        page,
			PageSize:    pageSize,
		}
		var err error
		if q.CreatedAfter, err = parseDateBound(query.Get("from"), false); err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "invalid from date"})
			return
		}
		if q.CreatedBefore, err = parseDateBound(query.Get("to"), true); err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "invalid to date"})
			return
		}

		listing, err := h.agencies.List(ctx, q)
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}

		items := make([]adminAgencyResponse, 0, len(listing.Rows))
		for _, row := range listing.Rows {
			items = append(items, buildAdminAgencyResponse(row))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, adminAgencyListResponse{
			Items:       items,
			TotalPages:  listing.TotalPages,
			TotalItems:  listing.TotalItems,
			CurrentPage: listing.CurrentPage,
		})
	}
}

func (h *Handler) agencyDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		row, err := h.agencies.Detail(ctx, chi.URLParam(r, "id"))
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, buildAdminAgencyResponse(*row))
	}
}

func (h *Handler) agencyCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		var req upsertAgencyRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, common.MaxRequestBody)).Decode(&req); err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}

		created, err := h.agencies.Create(ctx, commandFromRequest(req))
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}
		row, err := h.agencies.Detail(ctx, created.ID)
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusCreated, buildAdminAgencyResponse(*row))
	}
}

func (h *Handler) agencyUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		var req upsertAgencyRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, common.MaxRequestBody)).Decode(&req); err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}

		updated, err := h.agencies.Update(ctx, chi.URLParam(r, "id"), commandFromRequest(req))
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}
		row, err := h.agencies.Detail(ctx, updated.ID)
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, buildAdminAgencyResponse(*row))
	}
}

func (h *Handler) agencyDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := h.agencies.Delete(ctx, chi.URLParam(r, "id")); err != nil {
			common.WriteError(h.logger, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *Handler) agencyToggleApprovedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		updated, err := h.agencies.ToggleApproved(ctx, chi.URLParam(r, "id"))
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, map[string]any{
			"id":         updated.ID,
			"isApproved": updated.IsApproved,
			"isFeatured": updated.IsFeatured,
		})
	}
}

func (h *Handler) agencyToggleFeaturedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		updated, err := h.agencies.ToggleFeatured(ctx, chi.URLParam(r, "id"))
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, map[string]any{
			"id":         updated.ID,
			"isFeatured": updated.IsFeatured,
		})
	}
}
