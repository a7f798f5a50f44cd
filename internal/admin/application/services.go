package application

import (
	"context"
	"time"

	"github.com/aiagencydirectory/api/internal/directory"
)

// AgencyRepository exposes admin operations on agencies.
type AgencyRepository interface {
	List(ctx context.Context) ([]directory.Agency, error)
	FindByID(ctx context.Context, id string) (*directory.Agency, error)
	Create(ctx context.Context, agency *directory.Agency) error
	Update(ctx context.Context, agency *directory.Agency) error
	Delete(ctx context.Context, id string) error
	// SetApproved and SetFeatured flip a flag only when it still holds the
	// expected previous value. A lost race surfaces as directory.ErrConflict.
	SetApproved(ctx context.Context, id string, from, to bool) error
	SetFeatured(ctx context.Context, id string, from, to bool) error
}

// UserRepository exposes admin operations on user accounts.
type UserRepository interface {
	List(ctx context.Context) ([]directory.User, error)
	FindByID(ctx context.Context, id string) (*directory.User, error)
	FindByIDs(ctx context.Context, ids []string) ([]directory.User, error)
	FindByEmail(ctx context.Context, email string) (*directory.User, error)
	Create(ctx context.Context, user *directory.User, passwordHash string) error
	Update(ctx context.Context, user *directory.User) error
	Delete(ctx context.Context, id string) error
}

// NotificationRepository stores back-office notifications.
type NotificationRepository interface {
	List(ctx context.Context) ([]Notification, error)
	Create(ctx context.Context, n *Notification) error
	MarkRead(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// Mailer delivers account invitation mail.
type Mailer interface {
	SendInvite(ctx context.Context, email, username, password string) error
}

// Notification is a back-office event shown in the admin dashboard.
type Notification struct {
	ID        string
	Kind      string
	Message   string
	IsRead    bool
	CreatedAt time.Time
}

// AgencyRow is one listing row with its owner-derived capabilities resolved.
type AgencyRow struct {
	Agency     directory.Agency
	OwnerPlan  directory.Plan
	Featurable bool
}

// AgencyListing is one page of the admin agency table.
type AgencyListing struct {
	Rows        []AgencyRow
	TotalPages  int
	TotalItems  int
	CurrentPage int
}

// UpsertAgencyCommand contains inputs for creating or updating an agency.
type UpsertAgencyCommand struct {
	Name         string
	OwnerUserID  string
	Industry     string
	Services     []string
	Description  string
	Email        string
	Phone        string
	Website      string
	LogoURL      string
	Testimonials []directory.Testimonial
	CaseStudies  []directory.CaseStudy
	Pricings     []directory.Pricing
}

// InviteUserCommand contains inputs for provisioning an account.
type InviteUserCommand struct {
	Email    string
	Username string
	Role     directory.Role
}

// Metrics summarizes the directory for the admin dashboard.
type Metrics struct {
	TotalAgencies    int
	ApprovedAgencies int
	PendingAgencies  int
	FeaturedAgencies int
	TotalUsers       int
	SubscribedUsers  int
	ByIndustry       map[string]int
}

// AgencyService describes admin agency use-cases.
type AgencyService interface {
	List(ctx context.Context, q directory.Query) (AgencyListing, error)
	Detail(ctx context.Context, id string) (*AgencyRow, error)
	Create(ctx context.Context, cmd UpsertAgencyCommand) (*directory.Agency, error)
	Update(ctx context.Context, id string, cmd UpsertAgencyCommand) (*directory.Agency, error)
	Delete(ctx context.Context, id string) error
	ToggleApproved(ctx context.Context, id string) (*directory.Agency, error)
	ToggleFeatured(ctx context.Context, id string) (*directory.Agency, error)
}

// UserService describes admin account use-cases.
type UserService interface {
	List(ctx context.Context) ([]directory.User, error)
	Invite(ctx context.Context, cmd InviteUserCommand) (*directory.User, error)
	Update(ctx context.Context, user directory.User) (*directory.User, error)
	Delete(ctx context.Context, id string) error
}

// MetricsService computes dashboard aggregates.
type MetricsService interface {
	Overview(ctx context.Context) (Metrics, error)
}

// NotificationService describes back-office notification use-cases.
type NotificationService interface {
	List(ctx context.Context) ([]Notification, error)
	MarkRead(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
