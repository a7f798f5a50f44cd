package directory

import (
	"fmt"
	"net/mail"
	"net/url"
	"strings"
)

// Industries and Services are the vocabularies offered by the directory's
// filter UI. Free-form values submitted alongside them are still accepted.
var (
	Industries = []string{
		"Marketing & Sales",
		"Finance",
		"Ecommerce",
		"Real Estate",
		"Accounting",
		"Technology",
		"Manufacturing",
		"Law",
		"Education",
	}
	Services = []string{
		"Workflow Automation",
		"Custom App Development",
		"Content Creation",
		"Chatbots",
		"CRM",
		"Data Labeling",
	}
)

// NewName validates an agency display name.
func NewName(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fmt.Errorf("%w: name is required", ErrValidation)
	}
	return trimmed, nil
}

// NewIndustry trims and canonicalizes an industry against the known
// vocabulary. Unknown values are kept verbatim after trimming.
func NewIndustry(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fmt.Errorf("%w: industry is required", ErrValidation)
	}
	for _, known := range Industries {
		if strings.EqualFold(known, trimmed) {
			return known, nil
		}
	}
	return trimmed, nil
}

// BuildServices merges the checkbox selection with free-form entries,
// preserving submission order. Duplicates are kept as submitted.
func BuildServices(selected []string, custom []string) []string {
	result := make([]string, 0, len(selected)+len(custom))
	for _, raw := range selected {
		if trimmed := strings.TrimSpace(raw); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	for _, raw := range custom {
		if trimmed := strings.TrimSpace(raw); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// NewEmail validates a contact address.
func NewEmail(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fmt.Errorf("%w: email is required", ErrValidation)
	}
	if _, err := mail.ParseAddress(trimmed); err != nil {
		return "", fmt.Errorf("%w: invalid email: %s", ErrValidation, trimmed)
	}
	return trimmed, nil
}

// NewWebsite validates an absolute http(s) URL.
func NewWebsite(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fmt.Errorf("%w: website is required", ErrValidation)
	}
	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return "", fmt.Errorf("%w: invalid website url: %s", ErrValidation, trimmed)
	}
	return trimmed, nil
}
