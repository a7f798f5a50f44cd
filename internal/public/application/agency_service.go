package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aiagencydirectory/api/internal/directory"
)

// agencyCommandService implements AgencyCommandService.
type agencyCommandService struct {
	agencies AgencyRepository
	users    UserRepository
	prober   WebsiteProber
	logos    LogoStore
	notifier Notifier
}

func NewAgencyCommandService(
	agencies AgencyRepository,
	users UserRepository,
	prober WebsiteProber,
	logos LogoStore,
	notifier Notifier,
) AgencyCommandService {
	return &agencyCommandService{
		agencies: agencies,
		users:    users,
		prober:   prober,
		logos:    logos,
		notifier: notifier,
	}
}

// Submit accepts a self-service listing. Submitters need an active
// subscription and a reachable website; the listing enters the review queue
// unapproved.
func (s *agencyCommandService) Submit(ctx context.Context, actor directory.Actor, cmd SubmitAgencyCommand) (*directory.Agency, error) {
	owner, err := s.users.FindByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if !owner.IsSubscribed || owner.SubscriptionPlan == directory.PlanNone {
		return nil, fmt.Errorf("%w: listing submission requires a subscription", directory.ErrNotEligible)
	}

	name, err := directory.NewName(cmd.Name)
	if err != nil {
		return nil, err
	}
	industry, err := directory.NewIndustry(cmd.Industry)
	if err != nil {
		return nil, err
	}
	email, err := directory.NewEmail(cmd.Email)
	if err != nil {
		return nil, err
	}
	website, err := directory.NewWebsite(cmd.Website)
	if err != nil {
		return nil, err
	}
	if err := s.prober.Check(ctx, website); err != nil {
		return nil, fmt.Errorf("%w: website did not respond: %v", directory.ErrNotEligible, err)
	}

	logoURL := ""
	if len(cmd.LogoData) > 0 {
		uploaded, err := s.logos.Upload(ctx, cmd.LogoName, cmd.LogoType, cmd.LogoData)
		if err != nil {
			return nil, err
		}
		logoURL = uploaded
	}

	agency := &directory.Agency{
		Name:        name,
		OwnerUserID: owner.ID,
		Industry:    industry,
		Services:    append([]string{}, cmd.Services...),
		Description: cmd.Description,
		Email:       email,
		Phone:       cmd.Phone,
		Website:     website,
		LogoURL:     logoURL,
		IsApproved:  false,
		DateCreated: time.Now().UTC(),
	}
	if err := s.agencies.Create(ctx, agency); err != nil {
		return nil, err
	}
	// Notification failure must not undo an accepted submission.
	_ = s.notifier.SubmissionReceived(ctx, agency.Name)
	return agency, nil
}

func (s *agencyCommandService) Update(ctx context.Context, actor directory.Actor, id string, cmd UpdateAgencyCommand) (*directory.Agency, error) {
	agency, err := s.editable(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	name, err := directory.NewName(cmd.Name)
	if err != nil {
		return nil, err
	}
	industry, err := directory.NewIndustry(cmd.Industry)
	if err != nil {
		return nil, err
	}
	email, err := directory.NewEmail(cmd.Email)
	if err != nil {
		return nil, err
	}
	website, err := directory.NewWebsite(cmd.Website)
	if err != nil {
		return nil, err
	}

	agency.Name = name
	agency.Industry = industry
	agency.Services = append([]string{}, cmd.Services...)
	agency.Description = cmd.Description
	agency.Email = email
	agency.Phone = cmd.Phone
	agency.Website = website
	if cmd.LogoURL != "" {
		agency.LogoURL = cmd.LogoURL
	}

	if err := s.agencies.Update(ctx, agency); err != nil {
		return nil, err
	}
	return agency, nil
}

func (s *agencyCommandService) Delete(ctx context.Context, actor directory.Actor, id string) error {
	if _, err := s.editable(ctx, actor, id); err != nil {
		return err
	}
	return s.agencies.Delete(ctx, id)
}

// editable loads an agency and enforces the ownership rule.
func (s *agencyCommandService) editable(ctx context.Context, actor directory.Actor, id string) (*directory.Agency, error) {
	agency, err := s.agencies.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !directory.CanEdit(*agency, actor) {
		return nil, fmt.Errorf("%w: only the owner may modify this listing", directory.ErrNotEligible)
	}
	return agency, nil
}

func (s *agencyCommandService) AddTestimonial(ctx context.Context, actor directory.Actor, agencyID string, t directory.Testimonial) (*directory.Agency, error) {
	agency, err := s.editable(ctx, actor, agencyID)
	if err != nil {
		return nil, err
	}
	t.ID = uuid.NewString()
	agency.Testimonials = append(agency.Testimonials, t)
	return s.save(ctx, agency)
}

func (s *agencyCommandService) UpdateTestimonial(ctx context.Context, actor directory.Actor, agencyID string, t directory.Testimonial) (*directory.Agency, error) {
	agency, err := s.editable(ctx, actor, agencyID)
	if err != nil {
		return nil, err
	}
	for i := range agency.Testimonials {
		if agency.Testimonials[i].ID == t.ID {
			agency.Testimonials[i] = t
			return s.save(ctx, agency)
		}
	}
	return nil, directory.ErrNotFound
}

func (s *agencyCommandService) DeleteTestimonial(ctx context.Context, actor directory.Actor, agencyID, testimonialID string) (*directory.Agency, error) {
	agency, err := s.editable(ctx, actor, agencyID)
	if err != nil {
		return nil, err
	}
	for i := range agency.Testimonials {
		if agency.Testimonials[i].ID == testimonialID {
			agency.Testimonials = append(agency.Testimonials[:i], agency.Testimonials[i+1:]...)
			return s.save(ctx, agency)
		}
	}
	return nil, directory.ErrNotFound
}

func (s *agencyCommandService) AddCaseStudy(ctx context.Context, actor directory.Actor, agencyID string, cs directory.CaseStudy) (*directory.Agency, error) {
	agency, err := s.editable(ctx, actor, agencyID)
	if err != nil {
		return nil, err
	}
	cs.ID = uuid.NewString()
	agency.CaseStudies = append(agency.CaseStudies, cs)
	return s.save(ctx, agency)
}

func (s *agencyCommandService) UpdateCaseStudy(ctx context.Context, actor directory.Actor, agencyID string, cs directory.CaseStudy) (*directory.Agency, error) {
	agency, err := s.editable(ctx, actor, agencyID)
	if err != nil {
		return nil, err
	}
	for i := range agency.CaseStudies {
		if agency.CaseStudies[i].ID == cs.ID {
			agency.CaseStudies[i] = cs
			return s.save(ctx, agency)
		}
	}
	return nil, directory.ErrNotFound
}

func (s *agencyCommandService) DeleteCaseStudy(ctx context.Context, actor directory.Actor, agencyID, caseStudyID string) (*directory.Agency, error) {
	agency, err := s.editable(ctx, actor, agencyID)
	if err != nil {
		return nil, err
	}
	for i := range agency.CaseStudies {
		if agency.CaseStudies[i].ID == caseStudyID {
			agency.CaseStudies = append(agency.CaseStudies[:i], agency.CaseStudies[i+1:]...)
			return s.save(ctx, agency)
		}
	}
	return nil, directory.ErrNotFound
}

func (s *agencyCommandService) AddPricing(ctx context.Context, actor directory.Actor, agencyID string, p directory.Pricing) (*directory.Agency, error) {
	agency, err := s.editable(ctx, actor, agencyID)
	if err != nil {
		return nil, err
	}
	p.ID = uuid.NewString()
	agency.Pricings = append(agency.Pricings, p)
	return s.save(ctx, agency)
}

func (s *agencyCommandService) UpdatePricing(ctx context.Context, actor directory.Actor, agencyID string, p directory.Pricing) (*directory.Agency, error) {
	agency, err := s.editable(ctx, actor, agencyID)
	if err != nil {
		return nil, err
	}
	for i := range agency.Pricings {
		if agency.Pricings[i].ID == p.ID {
			agency.Pricings[i] = p
			return s.save(ctx, agency)
		}
	}
	return nil, directory.ErrNotFound
}

func (s *agencyCommandService) DeletePricing(ctx context.Context, actor directory.Actor, agencyID, pricingID string) (*directory.Agency, error) {
	agency, err := s.editable(ctx, actor, agencyID)
	if err != nil {
		return nil, err
	}
	for i := range agency.Pricings {
		if agency.Pricings[i].ID == pricingID {
			agency.Pricings = append(agency.Pricings[:i], agency.Pricings[i+1:]...)
			return s.save(ctx, agency)
		}
	}
	return nil, directory.ErrNotFound
}

// CheckWebsite validates the URL shape and probes it once.
func (s *agencyCommandService) CheckWebsite(ctx context.Context, rawURL string) error {
	website, err := directory.NewWebsite(rawURL)
	if err != nil {
		return err
	}
	return s.prober.Check(ctx, website)
}

// UploadLogo stores a logo ahead of submission and returns its public URL.
func (s *agencyCommandService) UploadLogo(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: logo file is empty", directory.ErrValidation)
	}
	return s.logos.Upload(ctx, filename, contentType, data)
}

// save persists the mutation and only then returns the updated aggregate.
func (s *agencyCommandService) save(ctx context.Context, agency *directory.Agency) (*directory.Agency, error) {
	if err := s.agencies.Update(ctx, agency); err != nil {
		return nil, err
	}
	return agency, nil
}
