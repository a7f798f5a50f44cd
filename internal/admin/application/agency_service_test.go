package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aiagencydirectory/api/internal/directory"
)

type fakeAgencyRepo struct {
	agencies map[string]*directory.Agency
	conflict bool
}

func newFakeAgencyRepo(agencies ...*directory.Agency) *fakeAgencyRepo {
	repo := &fakeAgencyRepo{agencies: make(map[string]*directory.Agency)}
	for _, agency := range agencies {
		repo.agencies[agency.ID] = agency
	}
	return repo
}

func (r *fakeAgencyRepo) List(ctx context.Context) ([]directory.Agency, error) {
	result := make([]directory.Agency, 0, len(r.agencies))
	for _, agency := range r.agencies {
		result = append(result, *agency)
	}
	return result, nil
}

func (r *fakeAgencyRepo) FindByID(ctx context.Context, id string) (*directory.Agency, error) {
	agency, ok := r.agencies[id]
	if !ok {
		return nil, directory.ErrNotFound
	}
	clone := *agency
	return &clone, nil
}

func (r *fakeAgencyRepo) Create(ctx context.Context, agency *directory.Agency) error {
	if agency.ID == "" {
		agency.ID = "generated"
	}
	clone := *agency
	r.agencies[agency.ID] = &clone
	return nil
}

func (r *fakeAgencyRepo) Update(ctx context.Context, agency *directory.Agency) error {
	if _, ok := r.agencies[agency.ID]; !ok {
		return directory.ErrNotFound
	}
	clone := *agency
	r.agencies[agency.ID] = &clone
	return nil
}

func (r *fakeAgencyRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.agencies[id]; !ok {
		return directory.ErrNotFound
	}
	delete(r.agencies, id)
	return nil
}

func (r *fakeAgencyRepo) SetApproved(ctx context.Context, id string, from, to bool) error {
	agency, ok := r.agencies[id]
	if !ok {
		return directory.ErrNotFound
	}
	if r.conflict || agency.IsApproved != from {
		return directory.ErrConflict
	}
	agency.IsApproved = to
	return nil
}

func (r *fakeAgencyRepo) SetFeatured(ctx context.Context, id string, from, to bool) error {
	agency, ok := r.agencies[id]
	if !ok {
		return directory.ErrNotFound
	}
	if r.conflict || agency.IsFeatured != from {
		return directory.ErrConflict
	}
	agency.IsFeatured = to
	return nil
}

type fakeUserRepo struct {
	users map[string]*directory.User
}

func newFakeUserRepo(users ...*directory.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[string]*directory.User)}
	for _, user := range users {
		repo.users[user.ID] = user
	}
	return repo
}

func (r *fakeUserRepo) List(ctx context.Context) ([]directory.User, error) {
	result := make([]directory.User, 0, len(r.users))
	for _, user := range r.users {
		result = append(result, *user)
	}
	return result, nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id string) (*directory.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, directory.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) FindByIDs(ctx context.Context, ids []string) ([]directory.User, error) {
	result := make([]directory.User, 0, len(ids))
	for _, id := range ids {
		if user, ok := r.users[id]; ok {
			result = append(result, *user)
		}
	}
	return result, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*directory.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, directory.ErrNotFound
}

func (r *fakeUserRepo) Create(ctx context.Context, user *directory.User, passwordHash string) error {
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *directory.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return directory.ErrNotFound
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id string) error {
	delete(r.users, id)
	return nil
}

func TestToggleFeaturedRequiresPremiumOwner(t *testing.T) {
	agencies := newFakeAgencyRepo(
		&directory.Agency{ID: "a1", Name: "Alpha", OwnerUserID: "u1", IsApproved: true},
		&directory.Agency{ID: "a2", Name: "Beta", OwnerUserID: "u2", IsApproved: true},
		&directory.Agency{ID: "a3", Name: "Gamma", IsApproved: true},
	)
	users := newFakeUserRepo(
		&directory.User{ID: "u1", SubscriptionPlan: directory.PlanPremium, IsSubscribed: true},
		&directory.User{ID: "u2", SubscriptionPlan: directory.PlanBasic, IsSubscribed: true},
	)
	svc := NewAgencyService(agencies, users)

	updated, err := svc.ToggleFeatured(context.Background(), "a1")
	require.NoError(t, err)
	assert.True(t, updated.IsFeatured)

	_, err = svc.ToggleFeatured(context.Background(), "a2")
	assert.ErrorIs(t, err, directory.ErrNotEligible)
	assert.False(t, agencies.agencies["a2"].IsFeatured)

	_, err = svc.ToggleFeatured(context.Background(), "a3")
	assert.ErrorIs(t, err, directory.ErrNotEligible)
}

func TestToggleFeaturedOffSkipsEligibility(t *testing.T) {
	agencies := newFakeAgencyRepo(
		&directory.Agency{ID: "a1", OwnerUserID: "u1", IsApproved: true, IsFeatured: true},
	)
	// Owner downgraded after the agency was featured.
	users := newFakeUserRepo(&directory.User{ID: "u1", SubscriptionPlan: directory.PlanBasic})
	svc := NewAgencyService(agencies, users)

	updated, err := svc.ToggleFeatured(context.Background(), "a1")
	require.NoError(t, err)
	assert.False(t, updated.IsFeatured)
}

func TestToggleApprovedClearsFeaturedFlag(t *testing.T) {
	agencies := newFakeAgencyRepo(
		&directory.Agency{ID: "a1", OwnerUserID: "u1", IsApproved: true, IsFeatured: true},
	)
	users := newFakeUserRepo(&directory.User{ID: "u1", SubscriptionPlan: directory.PlanPremium})
	svc := NewAgencyService(agencies, users)

	updated, err := svc.ToggleApproved(context.Background(), "a1")
	require.NoError(t, err)
	assert.False(t, updated.IsApproved)
	assert.False(t, updated.IsFeatured)
	assert.False(t, agencies.agencies["a1"].IsFeatured)
}

func TestToggleSurfacesConcurrentModification(t *testing.T) {
	agencies := newFakeAgencyRepo(&directory.Agency{ID: "a1", IsApproved: false})
	agencies.conflict = true
	users := newFakeUserRepo()
	svc := NewAgencyService(agencies, users)

	_, err := svc.ToggleApproved(context.Background(), "a1")
	assert.ErrorIs(t, err, directory.ErrConflict)
}

func TestListAnnotatesOwnerPlans(t *testing.T) {
	agencies := newFakeAgencyRepo(
		&directory.Agency{ID: "a1", Name: "Alpha", OwnerUserID: "u1", IsApproved: true, DateCreated: time.Now()},
		&directory.Agency{ID: "a2", Name: "Beta", OwnerUserID: "u2", IsApproved: true, DateCreated: time.Now()},
		&directory.Agency{ID: "a3", Name: "Gamma", IsApproved: true, DateCreated: time.Now()},
	)
	users := newFakeUserRepo(
		&directory.User{ID: "u1", SubscriptionPlan: directory.PlanPremium},
		&directory.User{ID: "u2", SubscriptionPlan: directory.PlanBasic},
	)
	svc := NewAgencyService(agencies, users)

	listing, err := svc.List(context.Background(), directory.Query{Sort: directory.SortLatest})
	require.NoError(t, err)
	require.Len(t, listing.Rows, 3)

	byID := make(map[string]AgencyRow)
	for _, row := range listing.Rows {
		byID[row.Agency.ID] = row
	}
	assert.True(t, byID["a1"].Featurable)
	assert.Equal(t, directory.PlanPremium, byID["a1"].OwnerPlan)
	assert.False(t, byID["a2"].Featurable)
	assert.False(t, byID["a3"].Featurable)
	assert.Equal(t, directory.PlanNone, byID["a3"].OwnerPlan)
}

func TestCreateMarksAgencyApproved(t *testing.T) {
	agencies := newFakeAgencyRepo()
	svc := NewAgencyService(agencies, newFakeUserRepo())

	created, err := svc.Create(context.Background(), UpsertAgencyCommand{
		Name:     "Alpha Automation",
		Industry: "Finance",
		Email:    "hello@alpha.example",
		Website:  "https://alpha.example",
	})
	require.NoError(t, err)
	assert.True(t, created.IsApproved)
	assert.False(t, created.DateCreated.IsZero())
}

func TestUpdatePreservesFlagsAndCreationTime(t *testing.T) {
	created := time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)
	agencies := newFakeAgencyRepo(&directory.Agency{
		ID:          "a1",
		Name:        "Alpha",
		Industry:    "Finance",
		Email:       "hello@alpha.example",
		Website:     "https://alpha.example",
		IsApproved:  true,
		IsFeatured:  true,
		DateCreated: created,
	})
	svc := NewAgencyService(agencies, newFakeUserRepo())

	updated, err := svc.Update(context.Background(), "a1", UpsertAgencyCommand{
		Name:     "Alpha Automation",
		Industry: "Technology",
		Email:    "hello@alpha.example",
		Website:  "https://alpha.example",
	})
	require.NoError(t, err)
	assert.True(t, updated.IsApproved)
	assert.True(t, updated.IsFeatured)
	assert.Equal(t, created, updated.DateCreated)
	assert.Equal(t, "Alpha Automation", updated.Name)
}

func TestDetailUnknownAgency(t *testing.T) {
	svc := NewAgencyService(newFakeAgencyRepo(), newFakeUserRepo())

	_, err := svc.Detail(context.Background(), "missing")
	assert.True(t, errors.Is(err, directory.ErrNotFound))
}
