package application

import (
	"context"
	"math/rand"

	"github.com/aiagencydirectory/api/internal/directory"
)

// directoryQueryService implements DirectoryQueryService.
type directoryQueryService struct {
	agencies AgencyRepository
}

func NewDirectoryQueryService(agencies AgencyRepository) DirectoryQueryService {
	return &directoryQueryService{agencies: agencies}
}

// Archive lists approved agencies only, whatever the query asks for.
func (s *directoryQueryService) Archive(ctx context.Context, q ArchiveQuery) (directory.Page, error) {
	agencies, err := s.agencies.List(ctx)
	if err != nil {
		return directory.Page{}, err
	}
	return directory.Run(agencies, directory.Query{
		SearchTerm:  q.SearchTerm,
		SearchField: q.SearchField,
		Approval:    directory.ApprovalApproved,
		Industries:  q.Industries,
		Services:    q.Services,
		Sort:        q.Sort,
		Page:        q.Page,
		PageSize:    q.PageSize,
	}), nil
}

// Featured returns the featured strip. When nothing is featured it falls
// back to a random sample of approved agencies so the strip never renders
// empty.
func (s *directoryQueryService) Featured(ctx context.Context, limit int) ([]directory.Agency, error) {
	agencies, err := s.agencies.List(ctx)
	if err != nil {
		return nil, err
	}

	approved := make([]directory.Agency, 0, len(agencies))
	featured := make([]directory.Agency, 0, limit)
	for _, agency := range agencies {
		if !directory.PubliclyVisible(agency) {
			continue
		}
		approved = append(approved, agency)
		if agency.IsFeatured {
			featured = append(featured, agency)
		}
	}

	if len(featured) == 0 {
		rand.Shuffle(len(approved), func(i, j int) {
			approved[i], approved[j] = approved[j], approved[i]
		})
		featured = approved
	}
	if limit > 0 && len(featured) > limit {
		featured = featured[:limit]
	}
	return featured, nil
}

// Owned lists the caller's own agencies, pending submissions included,
// newest first.
func (s *directoryQueryService) Owned(ctx context.Context, actor directory.Actor) ([]directory.Agency, error) {
	agencies, err := s.agencies.List(ctx)
	if err != nil {
		return nil, err
	}
	owned := make([]directory.Agency, 0)
	for _, agency := range agencies {
		if agency.OwnerUserID == actor.ID {
			owned = append(owned, agency)
		}
	}
	page := directory.Run(owned, directory.Query{Sort: directory.SortLatest, PageSize: len(owned)})
	return page.Items, nil
}

func (s *directoryQueryService) Detail(ctx context.Context, id string) (*directory.Agency, error) {
	agency, err := s.agencies.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !directory.PubliclyVisible(*agency) {
		return nil, directory.ErrNotFound
	}
	return agency, nil
}
