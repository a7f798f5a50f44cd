package common

import (
	"strings"

	"github.com/aiagencydirectory/api/internal/directory"
)

// NormalizeIndustries cleans an industry filter: splits comma separated
// values, trims, canonicalizes known vocabulary entries and drops duplicates
// while keeping order.
func NormalizeIndustries(values []string) []string {
	result := make([]string, 0, len(values))
	seen := make(map[string]struct{})
	for _, raw := range expandLists(values) {
		canonical, err := directory.NewIndustry(raw)
		if err != nil {
			continue
		}
		if _, ok := seen[canonical]; ok {
			continue
		}
		seen[canonical] = struct{}{}
		result = append(result, canonical)
	}
	return result
}

// NormalizeServices cleans a service filter the same way, without the
// vocabulary mapping since services are free-form.
func NormalizeServices(values []string) []string {
	result := make([]string, 0, len(values))
	seen := make(map[string]struct{})
	for _, raw := range expandLists(values) {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, trimmed)
	}
	return result
}

// expandLists flattens repeated query params whose values may themselves be
// comma separated.
func expandLists(values []string) []string {
	expanded := make([]string, 0, len(values))
	for _, value := range values {
		expanded = append(expanded, ParseList(value)...)
	}
	return expanded
}
