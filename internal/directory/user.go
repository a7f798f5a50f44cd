package directory

import "time"

// Plan identifies a user's subscription tier.
type Plan string

const (
	PlanNone    Plan = "none"
	PlanBasic   Plan = "basic"
	PlanPremium Plan = "premium"
)

// Role identifies the authorization level of a user.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User owns zero or more agencies.
type User struct {
	ID               string
	Email            string
	Username         string
	Role             Role
	IsSubscribed     bool
	SubscriptionPlan Plan
	IsVerified       bool
	CreatedAt        time.Time
}

// Actor is the authenticated principal performing an operation.
type Actor struct {
	ID   string
	Role Role
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
