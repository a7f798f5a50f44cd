package admin

import (
	"strings"
	"time"

	"github.com/aiagencydirectory/api/internal/directory"
)

func parseApprovalFilter(value string) directory.ApprovalFilter {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "approved":
		return directory.ApprovalApproved
	case "pending":
		return directory.ApprovalPending
	default:
		return directory.ApprovalAny
	}
}

func parseSortKey(value string) directory.SortKey {
	if strings.EqualFold(strings.TrimSpace(value), "oldest") {
		return directory.SortOldest
	}
	return directory.SortLatest
}

// parseDateBound parses a yyyy-mm-dd query value. The upper bound is pushed
// to the end of its day so the range stays inclusive.
func parseDateBound(value string, endOfDay bool) (*time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", trimmed)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		parsed = parsed.Add(24*time.Hour - time.Nanosecond)
	}
	return &parsed, nil
}
