package common

import (
	"context"

	"github.com/aiagencydirectory/api/internal/directory"
)

type contextKey string

const authUserContextKey contextKey = "authUser"

// AuthenticatedUser represents the JWT-derived principal.
type AuthenticatedUser struct {
	ID       string `json:"id"`
	Email    string `json:"email,omitempty"`
	Username string `json:"username,omitempty"`
	Role     string `json:"role,omitempty"`
}

// Actor converts the principal into the domain's actor shape.
func (u AuthenticatedUser) Actor() directory.Actor {
	role := directory.Role(u.Role)
	if role == "" {
		role = directory.RoleUser
	}
	return directory.Actor{ID: u.ID, Role: role}
}

// ContextWithUser stores the authenticated user into context.
func ContextWithUser(ctx context.Context, user AuthenticatedUser) context.Context {
	return context.WithValue(ctx, authUserContextKey, user)
}

// UserFromContext extracts the authenticated user from context.
func UserFromContext(ctx context.Context) (AuthenticatedUser, bool) {
	user, ok := ctx.Value(authUserContextKey).(AuthenticatedUser)
	return user, ok
}
