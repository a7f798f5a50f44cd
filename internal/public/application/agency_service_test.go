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
	delete(r.agencies, id)
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

func (r *fakeUserRepo) FindByID(ctx context.Context, id string) (*directory.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, directory.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) UpdatePlan(ctx context.Context, id string, plan directory.Plan, subscribed bool) error {
	user, ok := r.users[id]
	if !ok {
		return directory.ErrNotFound
	}
	user.SubscriptionPlan = plan
	user.IsSubscribed = subscribed
	return nil
}

func (r *fakeUserRepo) UpdateUsername(ctx context.Context, id, username string) error {
	user, ok := r.users[id]
	if !ok {
		return directory.ErrNotFound
	}
	user.Username = username
	return nil
}

type fakeProber struct {
	err error
}

func (p *fakeProber) Check(ctx context.Context, rawURL string) error { return p.err }

type fakeLogoStore struct{}

func (s *fakeLogoStore) Upload(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	return "https://media.example/logos/" + filename, nil
}

type fakeNotifier struct {
	received []string
}

func (n *fakeNotifier) SubmissionReceived(ctx context.Context, agencyName string) error {
	n.received = append(n.received, agencyName)
	return nil
}

type fakeCheckout struct {
	sessions map[string]*CheckoutSession
}

func (g *fakeCheckout) CreateSession(ctx context.Context, customerEmail, clientReferenceID string) (*CheckoutSession, error) {
	session := &CheckoutSession{
		ID:                "cs_test",
		URL:               "https://checkout.example/cs_test",
		PaymentStatus:     "unpaid",
		ClientReferenceID: clientReferenceID,
	}
	if g.sessions == nil {
		g.sessions = make(map[string]*CheckoutSession)
	}
	g.sessions[session.ID] = session
	return session, nil
}

func (g *fakeCheckout) GetSession(ctx context.Context, sessionID string) (*CheckoutSession, error) {
	session, ok := g.sessions[sessionID]
	if !ok {
		return nil, directory.ErrNotFound
	}
	return session, nil
}

func newCommandService(agencies *fakeAgencyRepo, users *fakeUserRepo, prober *fakeProber, notifier *fakeNotifier) AgencyCommandService {
	return NewAgencyCommandService(agencies, users, prober, &fakeLogoStore{}, notifier)
}

func submitCommand() SubmitAgencyCommand {
	return SubmitAgencyCommand{
		Name:     "Alpha Automation",
		Industry: "Finance",
		Services: []string{"CRM"},
		Email:    "hello@alpha.example",
		Website:  "https://alpha.example",
	}
}

func TestSubmitRequiresSubscription(t *testing.T) {
	users := newFakeUserRepo(&directory.User{ID: "u1", SubscriptionPlan: directory.PlanNone})
	svc := newCommandService(newFakeAgencyRepo(), users, &fakeProber{}, &fakeNotifier{})

	_, err := svc.Submit(context.Background(), directory.Actor{ID: "u1"}, submitCommand())
	assert.ErrorIs(t, err, directory.ErrNotEligible)
}

func TestSubmitRejectsUnreachableWebsite(t *testing.T) {
	users := newFakeUserRepo(&directory.User{ID: "u1", SubscriptionPlan: directory.PlanBasic, IsSubscribed: true})
	prober := &fakeProber{err: errors.New("connection refused")}
	svc := newCommandService(newFakeAgencyRepo(), users, prober, &fakeNotifier{})

	_, err := svc.Submit(context.Background(), directory.Actor{ID: "u1"}, submitCommand())
	assert.ErrorIs(t, err, directory.ErrNotEligible)
}

func TestSubmitEntersReviewQueue(t *testing.T) {
	agencies := newFakeAgencyRepo()
	users := newFakeUserRepo(&directory.User{ID: "u1", SubscriptionPlan: directory.PlanBasic, IsSubscribed: true})
	notifier := &fakeNotifier{}
	svc := newCommandService(agencies, users, &fakeProber{}, notifier)

	created, err := svc.Submit(context.Background(), directory.Actor{ID: "u1"}, submitCommand())
	require.NoError(t, err)
	assert.False(t, created.IsApproved)
	assert.Equal(t, "u1", created.OwnerUserID)
	assert.Equal(t, []string{"Alpha Automation"}, notifier.received)
}

func TestUpdateEnforcesOwnership(t *testing.T) {
	agencies := newFakeAgencyRepo(&directory.Agency{
		ID: "a1", Name: "Alpha", OwnerUserID: "u1", Industry: "Finance",
		Email: "hello@alpha.example", Website: "https://alpha.example",
	})
	svc := newCommandService(agencies, newFakeUserRepo(), &fakeProber{}, &fakeNotifier{})

	cmd := UpdateAgencyCommand{
		Name: "Alpha Automation", Industry: "Finance",
		Email: "hello@alpha.example", Website: "https://alpha.example",
	}

	_, err := svc.Update(context.Background(), directory.Actor{ID: "u2", Role: directory.RoleUser}, "a1", cmd)
	assert.ErrorIs(t, err, directory.ErrNotEligible)

	updated, err := svc.Update(context.Background(), directory.Actor{ID: "u1", Role: directory.RoleUser}, "a1", cmd)
	require.NoError(t, err)
	assert.Equal(t, "Alpha Automation", updated.Name)

	adminEdit, err := svc.Update(context.Background(), directory.Actor{ID: "staff", Role: directory.RoleAdmin}, "a1", cmd)
	require.NoError(t, err)
	assert.Equal(t, "Alpha Automation", adminEdit.Name)
}

func TestTestimonialLifecycle(t *testing.T) {
	agencies := newFakeAgencyRepo(&directory.Agency{ID: "a1", OwnerUserID: "u1"})
	svc := newCommandService(agencies, newFakeUserRepo(), &fakeProber{}, &fakeNotifier{})
	owner := directory.Actor{ID: "u1", Role: directory.RoleUser}

	added, err := svc.AddTestimonial(context.Background(), owner, "a1", directory.Testimonial{
		Author: "Jordan", Feedback: "Great team", Rating: 5,
	})
	require.NoError(t, err)
	require.Len(t, added.Testimonials, 1)
	id := added.Testimonials[0].ID
	require.NotEmpty(t, id)

	updated, err := svc.UpdateTestimonial(context.Background(), owner, "a1", directory.Testimonial{
		ID: id, Author: "Jordan", Feedback: "Great team to work with", Rating: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Testimonials[0].Rating)

	_, err = svc.UpdateTestimonial(context.Background(), owner, "a1", directory.Testimonial{ID: "missing"})
	assert.ErrorIs(t, err, directory.ErrNotFound)

	removed, err := svc.DeleteTestimonial(context.Background(), owner, "a1", id)
	require.NoError(t, err)
	assert.Empty(t, removed.Testimonials)
}

func TestConfirmCheckoutGrantsPremiumOnlyWhenPaid(t *testing.T) {
	users := newFakeUserRepo(&directory.User{ID: "u1", Email: "u1@example.com"})
	checkout := &fakeCheckout{}
	svc := NewBillingService(users, checkout)

	session, err := svc.StartCheckout(context.Background(), "u1")
	require.NoError(t, err)

	_, err = svc.ConfirmCheckout(context.Background(), "u1", session.ID)
	assert.ErrorIs(t, err, directory.ErrNotEligible)
	assert.Equal(t, directory.Plan(""), users.users["u1"].SubscriptionPlan)

	checkout.sessions[session.ID].PaymentStatus = "paid"
	user, err := svc.ConfirmCheckout(context.Background(), "u1", session.ID)
	require.NoError(t, err)
	assert.Equal(t, directory.PlanPremium, user.SubscriptionPlan)
	assert.True(t, user.IsSubscribed)
	assert.Equal(t, directory.PlanPremium, users.users["u1"].SubscriptionPlan)
}

func TestConfirmCheckoutRejectsForeignSession(t *testing.T) {
	users := newFakeUserRepo(
		&directory.User{ID: "u1", Email: "u1@example.com"},
		&directory.User{ID: "u2", Email: "u2@example.com"},
	)
	checkout := &fakeCheckout{}
	svc := NewBillingService(users, checkout)

	session, err := svc.StartCheckout(context.Background(), "u1")
	require.NoError(t, err)
	checkout.sessions[session.ID].PaymentStatus = "paid"

	_, err = svc.ConfirmCheckout(context.Background(), "u2", session.ID)
	assert.ErrorIs(t, err, directory.ErrNotEligible)
}

func TestChooseBasic(t *testing.T) {
	users := newFakeUserRepo(&directory.User{ID: "u1"})
	svc := NewBillingService(users, &fakeCheckout{})

	user, err := svc.ChooseBasic(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, directory.PlanBasic, user.SubscriptionPlan)
	assert.True(t, user.IsSubscribed)

	users.users["u1"].SubscriptionPlan = directory.PlanPremium
	_, err = svc.ChooseBasic(context.Background(), "u1")
	assert.ErrorIs(t, err, directory.ErrNotEligible)
}

func TestFeaturedFallsBackToRandomApproved(t *testing.T) {
	agencies := newFakeAgencyRepo(
		&directory.Agency{ID: "a1", IsApproved: true},
		&directory.Agency{ID: "a2", IsApproved: true},
		&directory.Agency{ID: "a3", IsApproved: false},
	)
	svc := NewDirectoryQueryService(agencies)

	featured, err := svc.Featured(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, featured, 2)
	for _, agency := range featured {
		assert.True(t, agency.IsApproved)
	}
}

func TestFeaturedPrefersFlaggedAgencies(t *testing.T) {
	agencies := newFakeAgencyRepo(
		&directory.Agency{ID: "a1", IsApproved: true, IsFeatured: true},
		&directory.Agency{ID: "a2", IsApproved: true},
	)
	svc := NewDirectoryQueryService(agencies)

	featured, err := svc.Featured(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, featured, 1)
	assert.Equal(t, "a1", featured[0].ID)
}

func TestDetailHidesUnapprovedAgencies(t *testing.T) {
	agencies := newFakeAgencyRepo(&directory.Agency{ID: "a1", IsApproved: false})
	svc := NewDirectoryQueryService(agencies)

	_, err := svc.Detail(context.Background(), "a1")
	assert.ErrorIs(t, err, directory.ErrNotFound)
}

func TestOwnedListsPendingAndApprovedForOwner(t *testing.T) {
	agencies := newFakeAgencyRepo(
		&directory.Agency{ID: "a1", OwnerUserID: "u1", IsApproved: true},
		&directory.Agency{ID: "a2", OwnerUserID: "u1", IsApproved: false},
		&directory.Agency{ID: "a3", OwnerUserID: "u2", IsApproved: true},
	)
	svc := NewDirectoryQueryService(agencies)

	owned, err := svc.Owned(context.Background(), directory.Actor{ID: "u1", Role: directory.RoleUser})
	require.NoError(t, err)
	require.Len(t, owned, 2)
	for _, agency := range owned {
		assert.Equal(t, "u1", agency.OwnerUserID)
	}
}

func TestCheckWebsiteRejectsMalformedURL(t *testing.T) {
	svc := newCommandService(newFakeAgencyRepo(), newFakeUserRepo(), &fakeProber{}, &fakeNotifier{})

	err := svc.CheckWebsite(context.Background(), "not a url")
	assert.ErrorIs(t, err, directory.ErrValidation)
}

func TestCheckWebsiteSurfacesProbeFailure(t *testing.T) {
	prober := &fakeProber{err: errors.New("connection refused")}
	svc := newCommandService(newFakeAgencyRepo(), newFakeUserRepo(), prober, &fakeNotifier{})

	err := svc.CheckWebsite(context.Background(), "https://unreachable.example")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, directory.ErrValidation)
}

func TestUploadLogoRejectsEmptyFile(t *testing.T) {
	svc := newCommandService(newFakeAgencyRepo(), newFakeUserRepo(), &fakeProber{}, &fakeNotifier{})

	_, err := svc.UploadLogo(context.Background(), "logo.png", "image/png", nil)
	assert.ErrorIs(t, err, directory.ErrValidation)

	url, err := svc.UploadLogo(context.Background(), "logo.png", "image/png", []byte{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, "https://media.example/logos/logo.png", url)
}

func TestCaseStudyLifecycleKeepsDate(t *testing.T) {
	agencies := newFakeAgencyRepo(&directory.Agency{ID: "a1", OwnerUserID: "u1"})
	svc := newCommandService(agencies, newFakeUserRepo(), &fakeProber{}, &fakeNotifier{})
	owner := directory.Actor{ID: "u1", Role: directory.RoleUser}
	delivered := time.Date(2026, time.March, 12, 0, 0, 0, 0, time.UTC)

	added, err := svc.AddCaseStudy(context.Background(), owner, "a1", directory.CaseStudy{
		Title: "Invoice intake automation", Client: "Harbor Logistics", Date: delivered,
	})
	require.NoError(t, err)
	require.Len(t, added.CaseStudies, 1)
	id := added.CaseStudies[0].ID
	require.NotEmpty(t, id)
	assert.True(t, added.CaseStudies[0].Date.Equal(delivered))

	moved := delivered.AddDate(0, 1, 0)
	updated, err := svc.UpdateCaseStudy(context.Background(), owner, "a1", directory.CaseStudy{
		ID: id, Title: "Invoice intake automation", Client: "Harbor Logistics", Date: moved,
	})
	require.NoError(t, err)
	assert.True(t, updated.CaseStudies[0].Date.Equal(moved))

	removed, err := svc.DeleteCaseStudy(context.Background(), owner, "a1", id)
	require.NoError(t, err)
	assert.Empty(t, removed.CaseStudies)
}
