package application

import (
	"context"
	"fmt"

	"github.com/aiagencydirectory/api/internal/directory"
)

// billingService implements BillingService.
type billingService struct {
	users    UserRepository
	checkout CheckoutGateway
}

func NewBillingService(users UserRepository, checkout CheckoutGateway) BillingService {
	return &billingService{users: users, checkout: checkout}
}

func (s *billingService) StartCheckout(ctx context.Context, userID string) (*CheckoutSession, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.SubscriptionPlan == directory.PlanPremium {
		return nil, fmt.Errorf("%w: account already has a premium subscription", directory.ErrNotEligible)
	}
	return s.checkout.CreateSession(ctx, user.Email, user.ID)
}

// ConfirmCheckout re-reads the session from the provider and grants the
// premium plan only when the provider reports the payment settled. The plan
// change is written before the updated profile is returned.
func (s *billingService) ConfirmCheckout(ctx context.Context, userID, sessionID string) (*directory.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	session, err := s.checkout.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.ClientReferenceID != user.ID {
		return nil, fmt.Errorf("%w: checkout session belongs to another account", directory.ErrNotEligible)
	}
	if session.PaymentStatus != "paid" {
		return nil, fmt.Errorf("%w: payment not completed (status %s)", directory.ErrNotEligible, session.PaymentStatus)
	}

	if err := s.users.UpdatePlan(ctx, user.ID, directory.PlanPremium, true); err != nil {
		return nil, err
	}
	user.SubscriptionPlan = directory.PlanPremium
	user.IsSubscribed = true
	return user, nil
}

// ChooseBasic activates the free tier without touching the payment provider.
func (s *billingService) ChooseBasic(ctx context.Context, userID string) (*directory.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.SubscriptionPlan == directory.PlanPremium {
		return nil, fmt.Errorf("%w: downgrade from premium is not supported here", directory.ErrNotEligible)
	}
	if err := s.users.UpdatePlan(ctx, user.ID, directory.PlanBasic, true); err != nil {
		return nil, err
	}
	user.SubscriptionPlan = directory.PlanBasic
	user.IsSubscribed = true
	return user, nil
}
