package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// JWTConfig defines an issuer/secret pair accepted during auth verification.
type JWTConfig struct {
	Issuer string
	Secret []byte
}

// SMTPConfig carries the outbound mail relay settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Config holds runtime configuration shared across the application.
type Config struct {
	Addr                   string
	MongoURI               string
	MongoDatabase          string
	AgencyCollection       string
	UserCollection         string
	NotificationCollection string
	NewsletterCollection   string
	SearchCollection       string
	ConnectTimeout         time.Duration
	JWTConfigs             []JWTConfig
	JWTAudience            string
	StripeAPIKey           string
	StripePriceID          string
	CheckoutSuccessURL     string
	CheckoutCancelURL      string
	LogoBucketURL          string
	MediaBaseURL           string
	SMTP                   SMTPConfig
	WebsiteProbeTimeout    time.Duration
	AllowedOrigins         []string
}

// Load reads environment variables and returns a fully populated Config.
// Secrets have no defaults; missing ones are reported as errors so the
// process fails at startup instead of at first use.
func Load() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("MONGO_URI", "mongodb://mongo:27017")
	v.SetDefault("MONGO_DB", "agency-directory")
	v.SetDefault("MONGO_CONNECT_TIMEOUT", "10s")
	v.SetDefault("AGENCY_COLLECTION", "agencies")
	v.SetDefault("USER_COLLECTION", "users")
	v.SetDefault("NOTIFICATION_COLLECTION", "notifications")
	v.SetDefault("NEWSLETTER_COLLECTION", "newsletter_subscriptions")
	v.SetDefault("SEARCH_COLLECTION", "popular_searches")
	v.SetDefault("WEBSITE_PROBE_TIMEOUT", "5s")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("API_ALLOWED_ORIGINS", "*")

	var jwtConfigs []JWTConfig
	if secret := strings.TrimSpace(v.GetString("AUTH_JWT_SECRET")); secret != "" {
		issuer := strings.TrimSpace(v.GetString("AUTH_JWT_ISSUER"))
		if issuer == "" {
			issuer = "agency-directory-auth"
		}
		jwtConfigs = append(jwtConfigs, JWTConfig{Issuer: issuer, Secret: []byte(secret)})
	}
	if secret := strings.TrimSpace(v.GetString("AUTH_LEGACY_JWT_SECRET")); secret != "" {
		issuer := strings.TrimSpace(v.GetString("AUTH_LEGACY_JWT_ISSUER"))
		if issuer == "" {
			issuer = "agency-directory-legacy"
		}
		jwtConfigs = append(jwtConfigs, JWTConfig{Issuer: issuer, Secret: []byte(secret)})
	}
	if len(jwtConfigs) == 0 {
		return Config{}, fmt.Errorf("JWT secrets not configured: set AUTH_JWT_SECRET")
	}

	stripeKey := strings.TrimSpace(v.GetString("STRIPE_API_KEY"))
	if stripeKey == "" {
		return Config{}, fmt.Errorf("STRIPE_API_KEY must be configured")
	}

	connectTimeout, err := time.ParseDuration(v.GetString("MONGO_CONNECT_TIMEOUT"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid MONGO_CONNECT_TIMEOUT: %w", err)
	}
	probeTimeout, err := time.ParseDuration(v.GetString("WEBSITE_PROBE_TIMEOUT"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid WEBSITE_PROBE_TIMEOUT: %w", err)
	}

	cfg := Config{
		Addr:                   v.GetString("HTTP_ADDR"),
		MongoURI:               v.GetString("MONGO_URI"),
		MongoDatabase:          v.GetString("MONGO_DB"),
		AgencyCollection:       v.GetString("AGENCY_COLLECTION"),
		UserCollection:         v.GetString("USER_COLLECTION"),
		NotificationCollection: v.GetString("NOTIFICATION_COLLECTION"),
		NewsletterCollection:   v.GetString("NEWSLETTER_COLLECTION"),
		SearchCollection:       v.GetString("SEARCH_COLLECTION"),
		ConnectTimeout:         connectTimeout,
		JWTConfigs:             jwtConfigs,
		JWTAudience:            strings.TrimSpace(v.GetString("AUTH_JWT_AUDIENCE")),
		StripeAPIKey:           stripeKey,
		StripePriceID:          strings.TrimSpace(v.GetString("STRIPE_PRICE_ID")),
		CheckoutSuccessURL:     strings.TrimSpace(v.GetString("CHECKOUT_SUCCESS_URL")),
		CheckoutCancelURL:      strings.TrimSpace(v.GetString("CHECKOUT_CANCEL_URL")),
		LogoBucketURL:          strings.TrimSpace(v.GetString("LOGO_BUCKET_URL")),
		MediaBaseURL:           strings.TrimSpace(v.GetString("MEDIA_BASE_URL")),
		SMTP: SMTPConfig{
			Host:     strings.TrimSpace(v.GetString("SMTP_HOST")),
			Port:     v.GetInt("SMTP_PORT"),
			Username: strings.TrimSpace(v.GetString("SMTP_USERNAME")),
			Password: strings.TrimSpace(v.GetString("SMTP_PASSWORD")),
			From:     strings.TrimSpace(v.GetString("SMTP_FROM")),
		},
		WebsiteProbeTimeout: probeTimeout,
		AllowedOrigins:      parseList(v.GetString("API_ALLOWED_ORIGINS"), []string{"*"}),
	}
	return cfg, nil
}

func parseList(raw string, fallback []string) []string {
	parts := strings.Split(raw, ",")
	var result []string
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return fallback
	}
	return result
}
