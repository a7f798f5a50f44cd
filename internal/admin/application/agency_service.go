package application

import (
	"context"
	"fmt"
	"time"

	"github.com/aiagencydirectory/api/internal/directory"
)

// agencyService implements AgencyService.
type agencyService struct {
	agencies AgencyRepository
	users    UserRepository
}

func NewAgencyService(agencies AgencyRepository, users UserRepository) AgencyService {
	return &agencyService{agencies: agencies, users: users}
}

func (s *agencyService) List(ctx context.Context, q directory.Query) (AgencyListing, error) {
	agencies, err := s.agencies.List(ctx)
	if err != nil {
		return AgencyListing{}, err
	}

	page := directory.Run(agencies, q)
	rows, err := s.annotate(ctx, page.Items)
	if err != nil {
		return AgencyListing{}, err
	}

	return AgencyListing{
		Rows:        rows,
		TotalPages:  page.TotalPages,
		TotalItems:  page.TotalItems,
		CurrentPage: page.CurrentPage,
	}, nil
}

func (s *agencyService) Detail(ctx context.Context, id string) (*AgencyRow, error) {
	agency, err := s.agencies.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	rows, err := s.annotate(ctx, []directory.Agency{*agency})
	if err != nil {
		return nil, err
	}
	return &rows[0], nil
}

// annotate resolves owner plans for a page of agencies with a single user
// lookup instead of one query per row.
func (s *agencyService) annotate(ctx context.Context, agencies []directory.Agency) ([]AgencyRow, error) {
	ids := directory.DistinctOwnerIDs(agencies)
	var owners []directory.User
	if len(ids) > 0 {
		found, err := s.users.FindByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		owners = found
	}
	plans := directory.ResolveOwnerPlans(agencies, owners)

	rows := make([]AgencyRow, 0, len(agencies))
	for _, agency := range agencies {
		owner := plans[agency.OwnerUserID]
		row := AgencyRow{Agency: agency, OwnerPlan: directory.PlanNone}
		if owner != nil {
			row.OwnerPlan = owner.SubscriptionPlan
		}
		row.Featurable = directory.Featurable(agency, owner)
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *agencyService) Create(ctx context.Context, cmd UpsertAgencyCommand) (*directory.Agency, error) {
	agency, err := agencyFromCommand(cmd)
	if err != nil {
		return nil, err
	}
	// Back-office entries skip the review queue.
	agency.IsApproved = true
	agency.DateCreated = time.Now().UTC()
	if err := s.agencies.Create(ctx, agency); err != nil {
		return nil, err
	}
	return agency, nil
}

func (s *agencyService) Update(ctx context.Context, id string, cmd UpsertAgencyCommand) (*directory.Agency, error) {
	current, err := s.agencies.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	agency, err := agencyFromCommand(cmd)
	if err != nil {
		return nil, err
	}
	agency.ID = current.ID
	agency.IsApproved = current.IsApproved
	agency.IsFeatured = current.IsFeatured
	agency.DateCreated = current.DateCreated
	if err := s.agencies.Update(ctx, agency); err != nil {
		return nil, err
	}
	return agency, nil
}

func (s *agencyService) Delete(ctx context.Context, id string) error {
	return s.agencies.Delete(ctx, id)
}

func (s *agencyService) ToggleApproved(ctx context.Context, id string) (*directory.Agency, error) {
	agency, err := s.agencies.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.agencies.SetApproved(ctx, id, agency.IsApproved, !agency.IsApproved); err != nil {
		return nil, err
	}
	agency.IsApproved = !agency.IsApproved
	if !agency.IsApproved && agency.IsFeatured {
		// Unapproved agencies may not stay on the featured strip.
		if err := s.agencies.SetFeatured(ctx, id, true, false); err != nil {
			return nil, err
		}
		agency.IsFeatured = false
	}
	return agency, nil
}

func (s *agencyService) ToggleFeatured(ctx context.Context, id string) (*directory.Agency, error) {
	agency, err := s.agencies.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !agency.IsFeatured {
		var owner *directory.User
		if agency.OwnerUserID != "" {
			found, err := s.users.FindByID(ctx, agency.OwnerUserID)
			if err != nil && err != directory.ErrNotFound {
				return nil, err
			}
			owner = found
		}
		if !directory.Featurable(*agency, owner) {
			return nil, fmt.Errorf("%w: featuring requires a premium owner", directory.ErrNotEligible)
		}
	}

	if err := s.agencies.SetFeatured(ctx, id, agency.IsFeatured, !agency.IsFeatured); err != nil {
		return nil, err
	}
	agency.IsFeatured = !agency.IsFeatured
	return agency, nil
}

func agencyFromCommand(cmd UpsertAgencyCommand) (*directory.Agency, error) {
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
	return &directory.Agency{
		Name:         name,
		OwnerUserID:  cmd.OwnerUserID,
		Industry:     industry,
		Services:     append([]string{}, cmd.Services...),
		Description:  cmd.Description,
		Email:        email,
		Phone:        cmd.Phone,
		Website:      website,
		LogoURL:      cmd.LogoURL,
		Testimonials: append([]directory.Testimonial{}, cmd.Testimonials...),
		CaseStudies:  append([]directory.CaseStudy{}, cmd.CaseStudies...),
		Pricings:     append([]directory.Pricing{}, cmd.Pricings...),
	}, nil
}
