package directory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2024, time.March, d, 0, 0, 0, 0, time.UTC)
}

func sampleAgencies() []Agency {
	return []Agency{
		{
			ID:          "a",
			Name:        "Alpha Automation",
			Industry:    "Finance",
			Services:    []string{"Workflow Automation", "CRM"},
			IsApproved:  true,
			DateCreated: day(1),
		},
		{
			ID:          "b",
			Name:        "Beta Bots",
			Industry:    "Ecommerce",
			Services:    []string{"Chatbots"},
			IsApproved:  false,
			DateCreated: day(2),
		},
		{
			ID:          "c",
			Name:        "Gamma CRM Group",
			Industry:    "Technology",
			Services:    []string{"CRM", "Data Labeling"},
			IsApproved:  true,
			DateCreated: day(3),
		},
	}
}

func TestRunFiltersConjunctively(t *testing.T) {
	page := Run(sampleAgencies(), Query{
		Approval:   ApprovalApproved,
		Industries: []string{"Finance"},
	})

	require.Len(t, page.Items, 1)
	assert.Equal(t, "a", page.Items[0].ID)
	assert.Equal(t, 1, page.TotalPages)
}

func TestRunSearchByService(t *testing.T) {
	page := Run(sampleAgencies(), Query{
		SearchTerm:  "crm",
		SearchField: SearchByService,
		Sort:        SortLatest,
	})

	require.Len(t, page.Items, 2)
	assert.Equal(t, "c", page.Items[0].ID)
	assert.Equal(t, "a", page.Items[1].ID)
}

func TestRunSearchByNameCaseInsensitive(t *testing.T) {
	page := Run(sampleAgencies(), Query{
		SearchTerm:  "ALPHA",
		SearchField: SearchByName,
	})

	require.Len(t, page.Items, 1)
	assert.Equal(t, "a", page.Items[0].ID)
}

func TestRunApprovalPending(t *testing.T) {
	page := Run(sampleAgencies(), Query{Approval: ApprovalPending})

	require.Len(t, page.Items, 1)
	assert.Equal(t, "b", page.Items[0].ID)
}

func TestRunSortOrderIsReversible(t *testing.T) {
	latest := Run(sampleAgencies(), Query{Sort: SortLatest})
	oldest := Run(sampleAgencies(), Query{Sort: SortOldest})

	require.Len(t, latest.Items, 3)
	require.Len(t, oldest.Items, 3)
	for i := range latest.Items {
		assert.Equal(t, latest.Items[i].ID, oldest.Items[len(oldest.Items)-1-i].ID)
	}
}

func TestRunSortIsStableForEqualTimestamps(t *testing.T) {
	agencies := []Agency{
		{ID: "x", DateCreated: day(5)},
		{ID: "y", DateCreated: day(5)},
		{ID: "z", DateCreated: day(5)},
	}

	page := Run(agencies, Query{Sort: SortLatest})

	require.Len(t, page.Items, 3)
	assert.Equal(t, "x", page.Items[0].ID)
	assert.Equal(t, "y", page.Items[1].ID)
	assert.Equal(t, "z", page.Items[2].ID)
}

func TestRunDateRangeIsInclusive(t *testing.T) {
	after := day(1)
	before := day(2)

	page := Run(sampleAgencies(), Query{
		CreatedAfter:  &after,
		CreatedBefore: &before,
		Sort:          SortOldest,
	})

	require.Len(t, page.Items, 2)
	assert.Equal(t, "a", page.Items[0].ID)
	assert.Equal(t, "b", page.Items[1].ID)
}

func TestRunPagination(t *testing.T) {
	agencies := make([]Agency, 0, 23)
	for i := 0; i < 23; i++ {
		agencies = append(agencies, Agency{
			ID:          string(rune('a' + i)),
			DateCreated: day(1).Add(time.Duration(i) * time.Hour),
		})
	}

	first := Run(agencies, Query{Page: 1, PageSize: 10, Sort: SortOldest})
	assert.Equal(t, 3, first.TotalPages)
	assert.Equal(t, 23, first.TotalItems)
	assert.Len(t, first.Items, 10)

	last := Run(agencies, Query{Page: 3, PageSize: 10, Sort: SortOldest})
	assert.Len(t, last.Items, 3)

	past := Run(agencies, Query{Page: 9, PageSize: 10})
	assert.Empty(t, past.Items)
	assert.Equal(t, 3, past.TotalPages)
}

func TestRunEmptyResultHasZeroPages(t *testing.T) {
	page := Run(sampleAgencies(), Query{
		SearchTerm:  "no such agency",
		SearchField: SearchByName,
	})

	assert.Empty(t, page.Items)
	assert.Equal(t, 0, page.TotalPages)
	assert.Equal(t, 0, page.TotalItems)
}

func TestRunUnknownSearchFieldMatchesEverything(t *testing.T) {
	page := Run(sampleAgencies(), Query{
		SearchTerm:  "whatever",
		SearchField: SearchField("color"),
	})

	assert.Len(t, page.Items, 3)
}

func TestRunDoesNotMutateInput(t *testing.T) {
	agencies := sampleAgencies()

	Run(agencies, Query{Sort: SortLatest})

	assert.Equal(t, "a", agencies[0].ID)
	assert.Equal(t, "b", agencies[1].ID)
	assert.Equal(t, "c", agencies[2].ID)
}
