package public

import (
	"strings"

	"github.com/aiagencydirectory/api/internal/directory"
)

func parseSearchField(value string) directory.SearchField {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "service":
		return directory.SearchByService
	case "industry":
		return directory.SearchByIndustry
	default:
		return directory.SearchByName
	}
}

func parseSortKey(value string) directory.SortKey {
	if strings.EqualFold(strings.TrimSpace(value), "oldest") {
		return directory.SortOldest
	}
	return directory.SortLatest
}
