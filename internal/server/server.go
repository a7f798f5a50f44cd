package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	adminapp "github.com/aiagencydirectory/api/internal/admin/application"
	"github.com/aiagencydirectory/api/internal/config"
	"github.com/aiagencydirectory/api/internal/directory"
	"github.com/aiagencydirectory/api/internal/infrastructure/billing"
	"github.com/aiagencydirectory/api/internal/infrastructure/mail"
	mongodoc "github.com/aiagencydirectory/api/internal/infrastructure/mongo"
	"github.com/aiagencydirectory/api/internal/infrastructure/storage"
	"github.com/aiagencydirectory/api/internal/infrastructure/webprobe"
	adminhttp "github.com/aiagencydirectory/api/internal/interfaces/http/admin"
	commonhttp "github.com/aiagencydirectory/api/internal/interfaces/http/common"
	publichttp "github.com/aiagencydirectory/api/internal/interfaces/http/public"
	publicapp "github.com/aiagencydirectory/api/internal/public/application"
)

// Server is the composition root: it owns the HTTP lifecycle and injects
// application services into the public and admin handler sets.
type Server struct {
	logger         *zap.SugaredLogger
	client         *mongo.Client
	database       *mongo.Database
	users          *mongodoc.UserRepository
	logoStore      *storage.LogoStore
	jwtConfigs     []config.JWTConfig
	jwtAudience    string
	addr           string
	allowedOrigins []string

	publicQueries      publicapp.DirectoryQueryService
	publicCommands     publicapp.AgencyCommandService
	billingService     publicapp.BillingService
	accountService     publicapp.AccountService
	engagementService  publicapp.EngagementService
	adminAgencies      adminapp.AgencyService
	adminUsers         adminapp.UserService
	adminMetrics       adminapp.MetricsService
	adminNotifications adminapp.NotificationService
}

type authenticatedUser = commonhttp.AuthenticatedUser

// submissionNotifier bridges public submissions into the back-office
// notification feed.
type submissionNotifier struct {
	repo adminapp.NotificationRepository
}

func (n *submissionNotifier) SubmissionReceived(ctx context.Context, agencyName string) error {
	return n.repo.Create(ctx, &adminapp.Notification{
		Kind:    "submission",
		Message: fmt.Sprintf("New agency submission: %s", agencyName),
	})
}

// Run starts the HTTP server and assembles routing and middleware for the
// public and admin route groups.
func (s *Server) Run() error {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(withCORS(s.allowedOrigins))

	router.Get("/healthz", s.healthHandler())

	publicHandler := publichttp.NewHandler(publichttp.Config{
		Logger:     s.logger,
		Queries:    s.publicQueries,
		Commands:   s.publicCommands,
		Billing:    s.billingService,
		Accounts:   s.accountService,
		Engagement: s.engagementService,
	})
	publicHandler.Register(router, s.authMiddleware)

	adminHandler := adminhttp.NewHandler(adminhttp.Config{
		Logger:        s.logger,
		Agencies:      s.adminAgencies,
		Users:         s.adminUsers,
		Metrics:       s.adminMetrics,
		Notifications: s.adminNotifications,
	})
	router.Route("/admin", func(r chi.Router) {
		r.Use(s.authMiddleware)
		r.Use(s.requireAdmin)
		adminHandler.Register(r)
	})

	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Infof("HTTP server listening on %s", s.addr)
		errChan <- httpServer.ListenAndServe()
	}()

	waitForShutdown(httpServer, errChan, s)
	return nil
}

// withCORS applies the allowed-origins policy.
func withCORS(origins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{})
	allowAll := false
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		if origin == "*" {
			allowAll = true
			continue
		}
		allowed[origin] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := strings.TrimSpace(r.Header.Get("Origin"))
			if origin == "" || (!allowAll && len(allowed) > 0 && !originAllowed(origin, allowed)) {
				if r.Method == http.MethodOptions {
					w.WriteHeader(http.StatusNoContent)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,PATCH,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization,Content-Type")
			w.Header().Set("Access-Control-Max-Age", "300")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func originAllowed(origin string, allowed map[string]struct{}) bool {
	if len(allowed) == 0 {
		return true
	}
	_, ok := allowed[origin]
	return ok
}

// healthHandler reports infrastructure status only, never domain state.
func (s *Server) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
			commonhttp.WriteJSON(s.logger, w, http.StatusServiceUnavailable, map[string]string{
				"status": "degraded",
				"error":  err.Error(),
			})
			return
		}

		commonhttp.WriteJSON(s.logger, w, http.StatusOK, map[string]string{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	}
}

// authMiddleware validates the bearer JWT and stores the principal in the
// request context. Shared by public and admin route groups.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
		if authHeader == "" {
			commonhttp.WriteJSON(s.logger, w, http.StatusUnauthorized, map[string]string{"error": "missing Authorization header"})
			return
		}

		const bearerPrefix = "Bearer "
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			commonhttp.WriteJSON(s.logger, w, http.StatusUnauthorized, map[string]string{"error": "expected a Bearer token"})
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))
		if tokenString == "" {
			commonhttp.WriteJSON(s.logger, w, http.StatusUnauthorized, map[string]string{"error": "access token is empty"})
			return
		}

		claims, err := s.parseAuthToken(tokenString)
		if err != nil {
			commonhttp.WriteJSON(s.logger, w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
			return
		}

		user := authenticatedUser{
			ID:       claims.Subject,
			Email:    claims.Email,
			Username: claims.PreferredUsername,
			Role:     claims.Role,
		}
		if user.Role == "" {
			user.Role = string(directory.RoleUser)
		}

		ctx := commonhttp.ContextWithUser(r.Context(), user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAdmin gates the back-office routes on the admin role claim.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := commonhttp.UserFromContext(r.Context())
		if !ok || directory.Role(user.Role) != directory.RoleAdmin {
			commonhttp.WriteJSON(s.logger, w, http.StatusForbidden, map[string]string{"error": "admin role required"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// parseAuthToken tries each configured issuer/secret pair in order and
// verifies signature, issuer, lifetime and audience.
func (s *Server) parseAuthToken(tokenString string) (*authClaims, error) {
	if len(s.jwtConfigs) == 0 {
		return nil, fmt.Errorf("authentication is not configured")
	}

	for _, cfg := range s.jwtConfigs {
		claims := &authClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
			if token.Method != jwt.SigningMethodHS256 {
				return nil, fmt.Errorf("unexpected signing method: %s", token.Method.Alg())
			}
			return cfg.Secret, nil
		}, jwt.WithLeeway(30*time.Second))

		if err != nil || !token.Valid {
			continue
		}

		if cfg.Issuer != "" && claims.Issuer != cfg.Issuer {
			continue
		}

		now := time.Now()
		if claims.ExpiresAt != nil && now.After(claims.ExpiresAt.Time) {
			continue
		}
		if claims.NotBefore != nil && now.Before(claims.NotBefore.Time) {
			continue
		}
		if claims.Subject == "" {
			continue
		}
		if s.jwtAudience != "" && !contains(claims.Audience, s.jwtAudience) {
			continue
		}

		return claims, nil
	}

	return nil, fmt.Errorf("invalid access token")
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

type authClaims struct {
	jwt.RegisteredClaims
	Email             string `json:"email,omitempty"`
	Role              string `json:"role,omitempty"`
	PreferredUsername string `json:"preferred_username,omitempty"`
}

// shutdown disconnects MongoDB and closes the logo bucket with a timeout.
func (s *Server) shutdown(ctx context.Context) {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if s.logoStore != nil {
		if err := s.logoStore.Close(); err != nil {
			s.logger.Errorf("logo bucket close failed: %v", err)
		}
	}
	if err := s.client.Disconnect(shutdownCtx); err != nil {
		s.logger.Errorf("mongodb disconnect failed: %v", err)
	}
}

// waitForShutdown watches ListenAndServe and OS signals to drive a graceful
// shutdown.
func waitForShutdown(httpServer *http.Server, errChan <-chan error, srv *Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			srv.logger.Fatalf("server exited abnormally: %v", err)
		}
	case sig := <-sigChan:
		srv.logger.Infof("received signal %s, shutting down", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			srv.logger.Errorf("server shutdown error: %v", err)
		}
	}

	srv.shutdown(context.Background())
}

// New wires repositories, collaborators and application services into a
// ready-to-run Server.
func New(ctx context.Context, cfg config.Config, client *mongo.Client, logger *zap.SugaredLogger) (*Server, error) {
	srv := &Server{
		logger:         logger,
		client:         client,
		database:       client.Database(cfg.MongoDatabase),
		jwtConfigs:     append([]config.JWTConfig(nil), cfg.JWTConfigs...),
		jwtAudience:    cfg.JWTAudience,
		addr:           cfg.Addr,
		allowedOrigins: append([]string(nil), cfg.AllowedOrigins...),
	}

	agencyRepo := mongodoc.NewAgencyRepository(srv.database, cfg.AgencyCollection)
	userRepo := mongodoc.NewUserRepository(srv.database, cfg.UserCollection)
	notificationRepo := mongodoc.NewNotificationRepository(srv.database, cfg.NotificationCollection)
	newsletterRepo := mongodoc.NewNewsletterRepository(srv.database, cfg.NewsletterCollection)
	searchRepo := mongodoc.NewSearchRepository(srv.database, cfg.SearchCollection)
	srv.users = userRepo

	var logoStore publicapp.LogoStore
	if cfg.LogoBucketURL != "" {
		opened, err := storage.OpenLogoStore(ctx, cfg.LogoBucketURL, cfg.MediaBaseURL)
		if err != nil {
			return nil, err
		}
		srv.logoStore = opened
		logoStore = opened
	} else {
		logoStore = rejectingLogoStore{}
	}

	prober := webprobe.NewProber(cfg.WebsiteProbeTimeout)
	checkout := billing.NewStripeGateway(cfg.StripeAPIKey, cfg.StripePriceID, cfg.CheckoutSuccessURL, cfg.CheckoutCancelURL)
	mailer := mail.NewSMTPMailer(cfg.SMTP)
	notifier := &submissionNotifier{repo: notificationRepo}

	srv.publicQueries = publicapp.NewDirectoryQueryService(agencyRepo)
	srv.publicCommands = publicapp.NewAgencyCommandService(agencyRepo, userRepo, prober, logoStore, notifier)
	srv.billingService = publicapp.NewBillingService(userRepo, checkout)
	srv.accountService = publicapp.NewAccountService(userRepo)
	srv.engagementService = publicapp.NewEngagementService(newsletterRepo, searchRepo)

	srv.adminAgencies = adminapp.NewAgencyService(agencyRepo, userRepo)
	srv.adminUsers = adminapp.NewUserService(userRepo, mailer)
	srv.adminMetrics = adminapp.NewMetricsService(agencyRepo, userRepo)
	srv.adminNotifications = adminapp.NewNotificationService(notificationRepo)

	return srv, nil
}

// rejectingLogoStore stands in when no bucket is configured.
type rejectingLogoStore struct{}

func (rejectingLogoStore) Upload(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	return "", fmt.Errorf("%w: logo storage is not configured", directory.ErrUploadFailed)
}
