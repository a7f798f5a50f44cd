package application

import (
	"context"

	"github.com/aiagencydirectory/api/internal/directory"
)

// AgencyRepository abstracts agency access for the public site.
type AgencyRepository interface {
	List(ctx context.Context) ([]directory.Agency, error)
	FindByID(ctx context.Context, id string) (*directory.Agency, error)
	Create(ctx context.Context, agency *directory.Agency) error
	Update(ctx context.Context, agency *directory.Agency) error
	Delete(ctx context.Context, id string) error
}

// UserRepository abstracts account access for the public site.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*directory.User, error)
	UpdatePlan(ctx context.Context, id string, plan directory.Plan, subscribed bool) error
	UpdateUsername(ctx context.Context, id, username string) error
}

// WebsiteProber verifies that a submitted website answers over HTTP.
type WebsiteProber interface {
	Check(ctx context.Context, rawURL string) error
}

// CheckoutGateway talks to the payment provider.
type CheckoutGateway interface {
	CreateSession(ctx context.Context, customerEmail, clientReferenceID string) (*CheckoutSession, error)
	GetSession(ctx context.Context, sessionID string) (*CheckoutSession, error)
}

// CheckoutSession is the provider-neutral view of a checkout.
type CheckoutSession struct {
	ID                string
	URL               string
	PaymentStatus     string
	ClientReferenceID string
}

// LogoStore persists uploaded agency logos and returns their public URL.
type LogoStore interface {
	Upload(ctx context.Context, filename, contentType string, data []byte) (string, error)
}

// NewsletterRepository records newsletter signups.
type NewsletterRepository interface {
	Subscribe(ctx context.Context, email string) error
}

// SearchRepository tracks what visitors search for.
type SearchRepository interface {
	Record(ctx context.Context, term string) error
	Top(ctx context.Context, limit int) ([]SearchCount, error)
}

// Notifier surfaces site events to the back office.
type Notifier interface {
	SubmissionReceived(ctx context.Context, agencyName string) error
}

// SearchCount is one popular-search entry.
type SearchCount struct {
	Term  string
	Count int
}

// ArchiveQuery narrows the public archive listing.
type ArchiveQuery struct {
	SearchTerm  string
	SearchField directory.SearchField
	Industries  []string
	Services    []string
	Sort        directory.SortKey
	Page        int
	PageSize    int
}

// SubmitAgencyCommand captures a self-service submission.
type SubmitAgencyCommand struct {
	Name        string
	Industry    string
	Services    []string
	Description string
	Email       string
	Phone       string
	Website     string
	LogoName    string
	LogoType    string
	LogoData    []byte
}

// UpdateAgencyCommand captures an owner edit.
type UpdateAgencyCommand struct {
	Name        string
	Industry    string
	Services    []string
	Description string
	Email       string
	Phone       string
	Website     string
	LogoURL     string
}

// DirectoryQueryService describes public read use-cases.
type DirectoryQueryService interface {
	Archive(ctx context.Context, q ArchiveQuery) (directory.Page, error)
	Featured(ctx context.Context, limit int) ([]directory.Agency, error)
	Detail(ctx context.Context, id string) (*directory.Agency, error)
	Owned(ctx context.Context, actor directory.Actor) ([]directory.Agency, error)
}

// AgencyCommandService describes owner-side write use-cases.
type AgencyCommandService interface {
	Submit(ctx context.Context, actor directory.Actor, cmd SubmitAgencyCommand) (*directory.Agency, error)
	Update(ctx context.Context, actor directory.Actor, id string, cmd UpdateAgencyCommand) (*directory.Agency, error)
	Delete(ctx context.Context, actor directory.Actor, id string) error

	AddTestimonial(ctx context.Context, actor directory.Actor, agencyID string, t directory.Testimonial) (*directory.Agency, error)
	UpdateTestimonial(ctx context.Context, actor directory.Actor, agencyID string, t directory.Testimonial) (*directory.Agency, error)
	DeleteTestimonial(ctx context.Context, actor directory.Actor, agencyID, testimonialID string) (*directory.Agency, error)

	AddCaseStudy(ctx context.Context, actor directory.Actor, agencyID string, cs directory.CaseStudy) (*directory.Agency, error)
	UpdateCaseStudy(ctx context.Context, actor directory.Actor, agencyID string, cs directory.CaseStudy) (*directory.Agency, error)
	DeleteCaseStudy(ctx context.Context, actor directory.Actor, agencyID, caseStudyID string) (*directory.Agency, error)

	AddPricing(ctx context.Context, actor directory.Actor, agencyID string, p directory.Pricing) (*directory.Agency, error)
	UpdatePricing(ctx context.Context, actor directory.Actor, agencyID string, p directory.Pricing) (*directory.Agency, error)
	DeletePricing(ctx context.Context, actor directory.Actor, agencyID, pricingID string) (*directory.Agency, error)

	CheckWebsite(ctx context.Context, rawURL string) error
	UploadLogo(ctx context.Context, filename, contentType string, data []byte) (string, error)
}

// BillingService describes subscription use-cases.
type BillingService interface {
	StartCheckout(ctx context.Context, userID string) (*CheckoutSession, error)
	ConfirmCheckout(ctx context.Context, userID, sessionID string) (*directory.User, error)
	ChooseBasic(ctx context.Context, userID string) (*directory.User, error)
}

// AccountService describes profile use-cases.
type AccountService interface {
	Profile(ctx context.Context, userID string) (*directory.User, error)
	UpdateUsername(ctx context.Context, userID, username string) (*directory.User, error)
}

// EngagementService describes newsletter and search-tracking use-cases.
type EngagementService interface {
	SubscribeNewsletter(ctx context.Context, email string) error
	RecordSearch(ctx context.Context, term string) error
	PopularSearches(ctx context.Context) ([]SearchCount, error)
}
