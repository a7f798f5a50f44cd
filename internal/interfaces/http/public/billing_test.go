package public

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aiagencydirectory/api/internal/directory"
	"github.com/aiagencydirectory/api/internal/interfaces/http/common"
	publicapp "github.com/aiagencydirectory/api/internal/public/application"
)

type stubBilling struct {
	publicapp.BillingService
	started bool
}

func (s *stubBilling) StartCheckout(ctx context.Context, userID string) (*publicapp.CheckoutSession, error) {
	s.started = true
	return &publicapp.CheckoutSession{ID: "cs_test", URL: "https://checkout.example/cs_test"}, nil
}

func newBillingRouter(billing publicapp.BillingService) *chi.Mux {
	h := NewHandler(Config{
		Logger:  zap.NewNop().Sugar(),
		Billing: billing,
	})
	router := chi.NewRouter()
	asUser := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := common.ContextWithUser(r.Context(), common.AuthenticatedUser{
				ID:   "u1",
				Role: string(directory.RoleUser),
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
	h.Register(router, asUser)
	return router
}

func TestCheckoutStartRejectsUnknownPlan(t *testing.T) {
	billing := &stubBilling{}
	router := newBillingRouter(billing)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/billing/checkout", strings.NewReader(`{"plan":"enterprise"}`))
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, billing.started)
}

func TestCheckoutStartAcceptsPremiumPlan(t *testing.T) {
	billing := &stubBilling{}
	router := newBillingRouter(billing)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/billing/checkout", strings.NewReader(`{"plan":"premium"}`))
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var body checkoutResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "cs_test", body.SessionID)
	assert.True(t, billing.started)
}

func TestCheckoutStartDefaultsToPremiumWithoutBody(t *testing.T) {
	billing := &stubBilling{}
	router := newBillingRouter(billing)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/billing/checkout", nil))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, billing.started)
}
