package application

import "context"

// metricsService implements MetricsService.
type metricsService struct {
	agencies AgencyRepository
	users    UserRepository
}

func NewMetricsService(agencies AgencyRepository, users UserRepository) MetricsService {
	return &metricsService{agencies: agencies, users: users}
}

func (s *metricsService) Overview(ctx context.Context) (Metrics, error) {
	agencies, err := s.agencies.List(ctx)
	if err != nil {
		return Metrics{}, err
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return Metrics{}, err
	}

	m := Metrics{
		TotalAgencies: len(agencies),
		TotalUsers:    len(users),
		ByIndustry:    make(map[string]int),
	}
	for _, agency := range agencies {
		if agency.IsApproved {
			m.ApprovedAgencies++
		} else {
			m.PendingAgencies++
		}
		if agency.IsFeatured {
			m.FeaturedAgencies++
		}
		if agency.Industry != "" {
			m.ByIndustry[agency.Industry]++
		}
	}
	for _, user := range users {
		if user.IsSubscribed {
			m.SubscribedUsers++
		}
	}
	return m, nil
}
