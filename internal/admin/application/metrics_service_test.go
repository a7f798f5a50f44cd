package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aiagencydirectory/api/internal/directory"
)

func TestMetricsOverviewCounts(t *testing.T) {
	agencies := newFakeAgencyRepo(
		&directory.Agency{ID: "a1", Industry: "Finance", IsApproved: true, IsFeatured: true},
		&directory.Agency{ID: "a2", Industry: "Finance", IsApproved: true},
		&directory.Agency{ID: "a3", Industry: "Law", IsApproved: false},
	)
	users := newFakeUserRepo(
		&directory.User{ID: "u1", IsSubscribed: true},
		&directory.User{ID: "u2", IsSubscribed: false},
	)
	svc := NewMetricsService(agencies, users)

	m, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, m.TotalAgencies)
	assert.Equal(t, 2, m.ApprovedAgencies)
	assert.Equal(t, 1, m.PendingAgencies)
	assert.Equal(t, 1, m.FeaturedAgencies)
	assert.Equal(t, 2, m.TotalUsers)
	assert.Equal(t, 1, m.SubscribedUsers)
	assert.Equal(t, map[string]int{"Finance": 2, "Law": 1}, m.ByIndustry)
}
