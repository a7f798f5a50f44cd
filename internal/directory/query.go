package directory

import (
	"sort"
	"strings"
	"time"
)

// SearchField selects which attribute a free-text search matches against.
type SearchField string

const (
	SearchByName     SearchField = "name"
	SearchByService  SearchField = "service"
	SearchByIndustry SearchField = "industry"
)

// ApprovalFilter restricts a listing by approval state.
type ApprovalFilter string

const (
	ApprovalAny      ApprovalFilter = "any"
	ApprovalApproved ApprovalFilter = "approved"
	ApprovalPending  ApprovalFilter = "pending"
)

// SortKey orders a listing by creation time.
type SortKey string

const (
	SortLatest SortKey = "latest"
	SortOldest SortKey = "oldest"
)

// Query carries one screen's filter, sort and pagination parameters. The
// zero value passes every agency and returns the first page.
type Query struct {
	SearchTerm     string
	SearchField    SearchField
	Approval       ApprovalFilter
	Industries     []string
	Services       []string
	CreatedAfter   *time.Time
	CreatedBefore  *time.Time
	Sort           SortKey
	Page           int
	PageSize       int
}

// Page is one slice of a filtered, ordered listing.
type Page struct {
	Items       []Agency
	TotalPages  int
	TotalItems  int
	CurrentPage int
}

// Run reduces the full collection snapshot to the subset and order described
// by the query, then paginates. Filters apply conjunctively; missing source
// data on a record means the record does not match, never a panic. The input
// slice is not mutated.
func Run(agencies []Agency, q Query) Page {
	filtered := make([]Agency, 0, len(agencies))
	for _, agency := range agencies {
		if matches(agency, q) {
			filtered = append(filtered, agency)
		}
	}

	switch q.Sort {
	case SortOldest:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].DateCreated.Before(filtered[j].DateCreated)
		})
	case SortLatest:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].DateCreated.After(filtered[j].DateCreated)
		})
	}

	pageSize := q.PageSize
	if pageSize <= 0 {
		pageSize = 10
	}
	page := q.Page
	if page <= 0 {
		page = 1
	}

	total := len(filtered)
	totalPages := (total + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	return Page{
		Items:       filtered[start:end],
		TotalPages:  totalPages,
		TotalItems:  total,
		CurrentPage: page,
	}
}

func matches(a Agency, q Query) bool {
	if term := strings.TrimSpace(q.SearchTerm); term != "" {
		if !matchesSearch(a, q.SearchField, term) {
			return false
		}
	}

	switch q.Approval {
	case ApprovalApproved:
		if !a.IsApproved {
			return false
		}
	case ApprovalPending:
		if a.IsApproved {
			return false
		}
	}

	if len(q.Industries) > 0 && !containsFold(q.Industries, a.Industry) {
		return false
	}

	if len(q.Services) > 0 && !intersects(a.Services, q.Services) {
		return false
	}

	if q.CreatedAfter != nil && a.DateCreated.Before(*q.CreatedAfter) {
		return false
	}
	if q.CreatedBefore != nil && a.DateCreated.After(*q.CreatedBefore) {
		return false
	}

	return true
}

func matchesSearch(a Agency, field SearchField, term string) bool {
	term = strings.ToLower(term)
	switch field {
	case SearchByName:
		return strings.Contains(strings.ToLower(a.Name), term)
	case SearchByService:
		for _, service := range a.Services {
			if strings.Contains(strings.ToLower(service), term) {
				return true
			}
		}
		return false
	case SearchByIndustry:
		return strings.Contains(strings.ToLower(a.Industry), term)
	default:
		// An unrecognized search field filters nothing out.
		return true
	}
}

func containsFold(haystack []string, needle string) bool {
	for _, candidate := range haystack {
		if strings.EqualFold(candidate, needle) {
			return true
		}
	}
	return false
}

func intersects(have, want []string) bool {
	for _, candidate := range have {
		if containsFold(want, candidate) {
			return true
		}
	}
	return false
}
