package directory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPubliclyVisible(t *testing.T) {
	assert.True(t, PubliclyVisible(Agency{IsApproved: true}))
	assert.False(t, PubliclyVisible(Agency{IsApproved: false}))
}

func TestFeaturable(t *testing.T) {
	premium := &User{ID: "u1", SubscriptionPlan: PlanPremium}
	basic := &User{ID: "u2", SubscriptionPlan: PlanBasic}

	assert.True(t, Featurable(Agency{OwnerUserID: "u1"}, premium))
	assert.False(t, Featurable(Agency{OwnerUserID: "u2"}, basic))
	assert.False(t, Featurable(Agency{OwnerUserID: "u1"}, nil))
	assert.False(t, Featurable(Agency{}, premium))
}

func TestCanEdit(t *testing.T) {
	agency := Agency{ID: "a", OwnerUserID: "u1"}

	assert.True(t, CanEdit(agency, Actor{ID: "admin", Role: RoleAdmin}))
	assert.True(t, CanEdit(agency, Actor{ID: "u1", Role: RoleUser}))
	assert.False(t, CanEdit(agency, Actor{ID: "u2", Role: RoleUser}))
	assert.False(t, CanEdit(Agency{ID: "b"}, Actor{ID: "u1", Role: RoleUser}))
}

func TestResolveOwnerPlans(t *testing.T) {
	agencies := []Agency{
		{ID: "a", OwnerUserID: "u1"},
		{ID: "b", OwnerUserID: "u2"},
		{ID: "c", OwnerUserID: "u1"},
		{ID: "d"},
	}
	owners := []User{
		{ID: "u1", SubscriptionPlan: PlanPremium},
		{ID: "u2", SubscriptionPlan: PlanBasic},
	}

	ids := DistinctOwnerIDs(agencies)
	assert.Equal(t, []string{"u1", "u2"}, ids)

	plans := ResolveOwnerPlans(agencies, owners)
	require.Len(t, plans, 2)
	assert.Equal(t, PlanPremium, plans["u1"].SubscriptionPlan)
	assert.Equal(t, PlanBasic, plans["u2"].SubscriptionPlan)
}

func TestBuildServicesKeepsDuplicates(t *testing.T) {
	services := BuildServices([]string{"CRM", " Chatbots "}, []string{"CRM", "", "Custom Scraping"})

	assert.Equal(t, []string{"CRM", "Chatbots", "CRM", "Custom Scraping"}, services)
}

func TestNewIndustryCanonicalizesKnownValues(t *testing.T) {
	industry, err := NewIndustry("  finance ")
	require.NoError(t, err)
	assert.Equal(t, "Finance", industry)

	custom, err := NewIndustry("Space Tourism")
	require.NoError(t, err)
	assert.Equal(t, "Space Tourism", custom)

	_, err = NewIndustry("   ")
	assert.Error(t, err)
}

func TestNewWebsite(t *testing.T) {
	site, err := NewWebsite("https://example.com")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", site)

	_, err = NewWebsite("ftp://example.com")
	assert.Error(t, err)

	_, err = NewWebsite("not a url")
	assert.Error(t, err)
}
