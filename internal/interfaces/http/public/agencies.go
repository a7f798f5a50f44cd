package public

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/aiagencydirectory/api/internal/directory"
	"github.com/aiagencydirectory/api/internal/interfaces/http/common"
	publicapp "github.com/aiagencydirectory/api/internal/public/application"
)

func (h *Handler) agencyArchiveHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		query := r.URL.Query()
		searchTerm := strings.TrimSpace(query.Get("search"))
		searchField := parseSearchField(query.Get("searchField"))
		industries := common.NormalizeIndustries(query["industry"])
		services := common.NormalizeServices(query["service"])
		sortKey := parseSortKey(query.Get("sort"))

		page, _ := common.ParsePositiveInt(query.Get("page"), 1)
		pageSize, _ := common.ParsePositiveInt(query.Get("pageSize"), common.PublicPageSize)

		result, err := h.queries.Archive(ctx, publicapp.ArchiveQuery{
			SearchTerm:  searchTerm,
			SearchField: searchField,
			Industries:  industries,
			Services:    services,
			Sort:        sortKey,
			Page:        page,
			PageSize:    pageSize,
		})
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}

		if searchTerm != "" {
			// Best effort; a failed counter update never breaks the archive.
			if err := h.engagement.RecordSearch(ctx, searchTerm); err != nil {
				h.logger.Warnf("search tracking failed: %v", err)
			}
		}

		items := make([]agencySummaryResponse, 0, len(result.Items))
		for _, agency := range result.Items {
			items = append(items, buildAgencySummaryResponse(agency))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, agencyListResponse{
			Items:       items,
			TotalPages:  result.TotalPages,
			TotalItems:  result.TotalItems,
			CurrentPage: result.CurrentPage,
		})
	}
}

func (h *Handler) agencyFeaturedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		limit, _ := common.ParsePositiveInt(r.URL.Query().Get("limit"), common.FeaturedLimit)
		featured, err := h.queries.Featured(ctx, limit)
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}

		items := make([]agencySummaryResponse, 0, len(featured))
		for _, agency := range featured {
			items = append(items, buildAgencySummaryResponse(agency))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, map[string]any{"items": items})
	}
}

func (h *Handler) agencyDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		agency, err := h.queries.Detail(ctx, chi.URLParam(r, "id"))
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, buildAgencyDetailResponse(*agency))
	}
}

func (h *Handler) taxonomyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		common.WriteJSON(h.logger, w, http.StatusOK, map[string][]string{
			"industries": directory.Industries,
			"services":   directory.Services,
		})
	}
}

func (h *Handler) agencySubmitHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
		defer cancel()

		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteJSON(h.logger, w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
			return
		}

		var req submitAgencyRequest
		if err := decodeBody(w, r, &req); err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		if len(req.LogoData) > common.MaxLogoBytes {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "logo too large"})
			return
		}

		created, err := h.commands.Submit(ctx, user.Actor(), publicapp.SubmitAgencyCommand{
			Name:        req.Name,
			Industry:    req.Industry,
			Services:    directory.BuildServices(req.Services, req.CustomServices),
			Description: req.Description,
			Email:       req.Email,
			Phone:       req.Phone,
			Website:     req.Website,
			LogoName:    req.LogoName,
			LogoType:    req.LogoType,
			LogoData:    req.LogoData,
		})
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusCreated, buildAgencyDetailResponse(*created))
	}
}

func (h *Handler) agencyUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteJSON(h.logger, w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
			return
		}

		var req updateAgencyRequest
		if err := decodeBody(w, r, &req); err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}

		updated, err := h.commands.Update(ctx, user.Actor(), chi.URLParam(r, "id"), publicapp.UpdateAgencyCommand{
			Name:        req.Name,
			Industry:    req.Industry,
			Services:    directory.BuildServices(req.Services, req.CustomServices),
			Description: req.Description,
			Email:       req.Email,
			Phone:       req.Phone,
			Website:     req.Website,
			LogoURL:     req.LogoURL,
		})
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, buildAgencyDetailResponse(*updated))
	}
}

func (h *Handler) agencyDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteJSON(h.logger, w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
			return
		}

		if err := h.commands.Delete(ctx, user.Actor(), chi.URLParam(r, "id")); err != nil {
			common.WriteError(h.logger, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// subRecordHandler factors the shared shape of the nine embedded-record
// endpoints: authenticate, decode, delegate, respond with the updated agency.
func (h *Handler) subRecordHandler(run func(ctx context.Context, actor directory.Actor, r *http.Request) (*directory.Agency, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteJSON(h.logger, w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
			return
		}

		agency, err := run(ctx, user.Actor(), r)
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, buildAgencyDetailResponse(*agency))
	}
}

func (h *Handler) testimonialAddHandler() http.HandlerFunc {
	return h.subRecordHandler(func(ctx context.Context, actor directory.Actor, r *http.Request) (*directory.Agency, error) {
		var req testimonialPayload
		if err := decodeBody(nil, r, &req); err != nil {
			return nil, err
		}
		return h.commands.AddTestimonial(ctx, actor, chi.URLParam(r, "id"), directory.Testimonial{
			Author: req.Author, Feedback: req.Feedback, Rating: req.Rating,
		})
	})
}

func (h *Handler) testimonialUpdateHandler() http.HandlerFunc {
	return h.subRecordHandler(func(ctx context.Context, actor directory.Actor, r *http.Request) (*directory.Agency, error) {
		var req testimonialPayload
		if err := decodeBody(nil, r, &req); err != nil {
			return nil, err
		}
		return h.commands.UpdateTestimonial(ctx, actor, chi.URLParam(r, "id"), directory.Testimonial{
			ID: chi.URLParam(r, "itemID"), Author: req.Author, Feedback: req.Feedback, Rating: req.Rating,
		})
	})
}

func (h *Handler) testimonialDeleteHandler() http.HandlerFunc {
	return h.subRecordHandler(func(ctx context.Context, actor directory.Actor, r *http.Request) (*directory.Agency, error) {
		return h.commands.DeleteTestimonial(ctx, actor, chi.URLParam(r, "id"), chi.URLParam(r, "itemID"))
	})
}

func (h *Handler) caseStudyAddHandler() http.HandlerFunc {
	return h.subRecordHandler(func(ctx context.Context, actor directory.Actor, r *http.Request) (*directory.Agency, error) {
		var req caseStudyPayload
		if err := decodeBody(nil, r, &req); err != nil {
			return nil, err
		}
		return h.commands.AddCaseStudy(ctx, actor, chi.URLParam(r, "id"), caseStudyFromPayload(req))
	})
}

func (h *Handler) caseStudyUpdateHandler() http.HandlerFunc {
	return h.subRecordHandler(func(ctx context.Context, actor directory.Actor, r *http.Request) (*directory.Agency, error) {
		var req caseStudyPayload
		if err := decodeBody(nil, r, &req); err != nil {
			return nil, err
		}
		cs := caseStudyFromPayload(req)
		cs.ID = chi.URLParam(r, "itemID")
		return h.commands.UpdateCaseStudy(ctx, actor, chi.URLParam(r, "id"), cs)
	})
}

func (h *Handler) caseStudyDeleteHandler() http.HandlerFunc {
	return h.subRecordHandler(func(ctx context.Context, actor directory.Actor, r *http.Request) (*directory.Agency, error) {
		return h.commands.DeleteCaseStudy(ctx, actor, chi.URLParam(r, "id"), chi.URLParam(r, "itemID"))
	})
}

func (h *Handler) pricingAddHandler() http.HandlerFunc {
	return h.subRecordHandler(func(ctx context.Context, actor directory.Actor, r *http.Request) (*directory.Agency, error) {
		var req pricingPayload
		if err := decodeBody(nil, r, &req); err != nil {
			return nil, err
		}
		return h.commands.AddPricing(ctx, actor, chi.URLParam(r, "id"), directory.Pricing{
			Plan: req.Plan, Features: req.Features, Price: req.Price,
		})
	})
}

func (h *Handler) pricingUpdateHandler() http.HandlerFunc {
	return h.subRecordHandler(func(ctx context.Context, actor directory.Actor, r *http.Request) (*directory.Agency, error) {
		var req pricingPayload
		if err := decodeBody(nil, r, &req); err != nil {
			return nil, err
		}
		return h.commands.UpdatePricing(ctx, actor, chi.URLParam(r, "id"), directory.Pricing{
			ID: chi.URLParam(r, "itemID"), Plan: req.Plan, Features: req.Features, Price: req.Price,
		})
	})
}

func (h *Handler) pricingDeleteHandler() http.HandlerFunc {
	return h.subRecordHandler(func(ctx context.Context, actor directory.Actor, r *http.Request) (*directory.Agency, error) {
		return h.commands.DeletePricing(ctx, actor, chi.URLParam(r, "id"), chi.URLParam(r, "itemID"))
	})
}

func (h *Handler) ownedAgenciesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteJSON(h.logger, w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
			return
		}

		agencies, err := h.queries.Owned(ctx, user.Actor())
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}
		items := make([]agencyDetailResponse, 0, len(agencies))
		for _, agency := range agencies {
			items = append(items, buildAgencyDetailResponse(agency))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, map[string]any{"items": items})
	}
}

func (h *Handler) websiteCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
		defer cancel()

		var req struct {
			Website string `json:"website"`
		}
		if err := decodeBody(w, r, &req); err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}

		if err := h.commands.CheckWebsite(ctx, req.Website); err != nil {
			if errors.Is(err, directory.ErrValidation) {
				common.WriteError(h.logger, w, err)
				return
			}
			common.WriteJSON(h.logger, w, http.StatusOK, map[string]any{"website": req.Website, "reachable": false})
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, map[string]any{"website": req.Website, "reachable": true})
	}
}

func (h *Handler) logoUploadHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
		defer cancel()

		if _, ok := common.UserFromContext(r.Context()); !ok {
			common.WriteJSON(h.logger, w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, common.MaxLogoBytes)
		if err := r.ParseMultipartForm(common.MaxLogoBytes); err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "logo too large or malformed form"})
			return
		}
		file, header, err := r.FormFile("logo")
		if err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "logo file is required"})
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "failed to read logo file"})
			return
		}

		url, err := h.commands.UploadLogo(ctx, header.Filename, header.Header.Get("Content-Type"), data)
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusCreated, map[string]string{"url": url})
	}
}

func caseStudyFromPayload(req caseStudyPayload) directory.CaseStudy {
	cs := directory.CaseStudy{
		Title:      req.Title,
		Client:     req.Client,
		Challenges: req.Challenges,
		Solutions:  req.Solutions,
		Results:    req.Results,
		Link:       req.Link,
	}
	if req.Date != nil {
		cs.Date = *req.Date
	}
	return cs
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	body := r.Body
	if w != nil {
		body = http.MaxBytesReader(w, r.Body, common.MaxRequestBody+common.MaxLogoBytes)
	}
	decoder := json.NewDecoder(body)
	return decoder.Decode(dst)
}
