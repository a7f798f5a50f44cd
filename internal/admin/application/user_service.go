package application

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/aiagencydirectory/api/internal/directory"
)

// userService implements UserService.
type userService struct {
	users  UserRepository
	mailer Mailer
}

func NewUserService(users UserRepository, mailer Mailer) UserService {
	return &userService{users: users, mailer: mailer}
}

func (s *userService) List(ctx context.Context) ([]directory.User, error) {
	return s.users.List(ctx)
}

// Invite provisions an account with a generated password and mails the
// credentials. Invited accounts are verified and start unsubscribed.
func (s *userService) Invite(ctx context.Context, cmd InviteUserCommand) (*directory.User, error) {
	email, err := directory.NewEmail(cmd.Email)
	if err != nil {
		return nil, err
	}
	if existing, err := s.users.FindByEmail(ctx, email); err == nil && existing != nil {
		return nil, fmt.Errorf("account already exists for %s", email)
	} else if err != nil && err != directory.ErrNotFound {
		return nil, err
	}

	role := cmd.Role
	if role == "" {
		role = directory.RoleUser
	}

	password, err := generatePassword()
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &directory.User{
		ID:               uuid.NewString(),
		Email:            email,
		Username:         cmd.Username,
		Role:             role,
		SubscriptionPlan: directory.PlanNone,
		IsVerified:       true,
		CreatedAt:        time.Now().UTC(),
	}
	if err := s.users.Create(ctx, user, string(hash)); err != nil {
		return nil, err
	}
	if err := s.mailer.SendInvite(ctx, email, user.Username, password); err != nil {
		return nil, fmt.Errorf("account created but invite mail failed: %w", err)
	}
	return user, nil
}

func (s *userService) Update(ctx context.Context, user directory.User) (*directory.User, error) {
	current, err := s.users.FindByID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	current.Username = user.Username
	current.Role = user.Role
	current.IsVerified = user.IsVerified
	if err := s.users.Update(ctx, current); err != nil {
		return nil, err
	}
	return current, nil
}

func (s *userService) Delete(ctx context.Context, id string) error {
	return s.users.Delete(ctx, id)
}

func generatePassword() (string, error) {
	buf := make([]byte, 12)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
