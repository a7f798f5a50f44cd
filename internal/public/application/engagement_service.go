package application

import (
	"context"
	"strings"

	"github.com/aiagencydirectory/api/internal/directory"
)

const popularSearchLimit = 5

// engagementService implements EngagementService.
type engagementService struct {
	newsletter NewsletterRepository
	searches   SearchRepository
}

func NewEngagementService(newsletter NewsletterRepository, searches SearchRepository) EngagementService {
	return &engagementService{newsletter: newsletter, searches: searches}
}

func (s *engagementService) SubscribeNewsletter(ctx context.Context, email string) error {
	valid, err := directory.NewEmail(email)
	if err != nil {
		return err
	}
	return s.newsletter.Subscribe(ctx, valid)
}

// RecordSearch counts a search term. Terms are folded to lower case so
// "CRM" and "crm" aggregate together; blank terms are ignored.
func (s *engagementService) RecordSearch(ctx context.Context, term string) error {
	folded := strings.ToLower(strings.TrimSpace(term))
	if folded == "" {
		return nil
	}
	return s.searches.Record(ctx, folded)
}

func (s *engagementService) PopularSearches(ctx context.Context) ([]SearchCount, error) {
	return s.searches.Top(ctx, popularSearchLimit)
}
