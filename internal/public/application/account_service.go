package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/aiagencydirectory/api/internal/directory"
)

// accountService implements AccountService.
type accountService struct {
	users UserRepository
}

func NewAccountService(users UserRepository) AccountService {
	return &accountService{users: users}
}

func (s *accountService) Profile(ctx context.Context, userID string) (*directory.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *accountService) UpdateUsername(ctx context.Context, userID, username string) (*directory.User, error) {
	trimmed := strings.TrimSpace(username)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: username is required", directory.ErrValidation)
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.users.UpdateUsername(ctx, userID, trimmed); err != nil {
		return nil, err
	}
	user.Username = trimmed
	return user, nil
}
