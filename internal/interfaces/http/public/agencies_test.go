package public

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aiagencydirectory/api/internal/directory"
	publicapp "github.com/aiagencydirectory/api/internal/public/application"
)

type stubQueries struct {
	publicapp.DirectoryQueryService
	page      directory.Page
	detailErr error
}

func (s stubQueries) Archive(ctx context.Context, q publicapp.ArchiveQuery) (directory.Page, error) {
	return s.page, nil
}

func (s stubQueries) Detail(ctx context.Context, id string) (*directory.Agency, error) {
	if s.detailErr != nil {
		return nil, s.detailErr
	}
	return &directory.Agency{ID: id, IsApproved: true}, nil
}

type stubCommands struct {
	publicapp.AgencyCommandService
	checkErr error
}

func (s stubCommands) CheckWebsite(ctx context.Context, rawURL string) error {
	return s.checkErr
}

func newTestRouter(queries publicapp.DirectoryQueryService, commands publicapp.AgencyCommandService) *chi.Mux {
	h := NewHandler(Config{
		Logger:   zap.NewNop().Sugar(),
		Queries:  queries,
		Commands: commands,
	})
	router := chi.NewRouter()
	passthrough := func(next http.Handler) http.Handler { return next }
	h.Register(router, passthrough)
	return router
}

func TestArchiveHandlerReturnsPage(t *testing.T) {
	queries := stubQueries{page: directory.Page{
		Items:       []directory.Agency{{ID: "a1", Name: "Alpha", IsApproved: true}},
		TotalPages:  3,
		TotalItems:  11,
		CurrentPage: 2,
	}}
	router := newTestRouter(queries, stubCommands{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/agencies?page=2", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body agencyListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 3, body.TotalPages)
	assert.Equal(t, 11, body.TotalItems)
	assert.Equal(t, 2, body.CurrentPage)
	require.Len(t, body.Items, 1)
	assert.Equal(t, "Alpha", body.Items[0].Name)
}

func TestDetailHandlerMapsNotFound(t *testing.T) {
	router := newTestRouter(stubQueries{detailErr: directory.ErrNotFound}, stubCommands{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/agencies/missing", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSubmitHandlerRequiresAuthentication(t *testing.T) {
	router := newTestRouter(stubQueries{}, stubCommands{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/agencies", strings.NewReader(`{"name":"Alpha"}`))
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestWebsiteCheckReportsUnreachable(t *testing.T) {
	commands := stubCommands{checkErr: errors.New("connection refused")}
	router := newTestRouter(stubQueries{}, commands)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/website-check", strings.NewReader(`{"website":"https://down.example"}`))
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["reachable"])
}

func TestWebsiteCheckRejectsMalformedURL(t *testing.T) {
	commands := stubCommands{checkErr: directory.ErrValidation}
	router := newTestRouter(stubQueries{}, commands)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/website-check", strings.NewReader(`{"website":"nope"}`))
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
