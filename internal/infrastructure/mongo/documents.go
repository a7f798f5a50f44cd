package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AgencyDocument is the MongoDB schema for one directory listing.
type AgencyDocument struct {
	ID           primitive.ObjectID    `bson:"_id"`
	Name         string                `bson:"name"`
	OwnerUserID  string                `bson:"ownerUserId,omitempty"`
	Industry     string                `bson:"industry,omitempty"`
	Services     []string              `bson:"services,omitempty"`
	Description  string                `bson:"description,omitempty"`
	Email        string                `bson:"email,omitempty"`
	Phone        string                `bson:"phone,omitempty"`
	Website      string                `bson:"website,omitempty"`
	LogoURL      string                `bson:"logoURL,omitempty"`
	IsApproved   bool                  `bson:"isApproved"`
	IsFeatured   bool                  `bson:"isFeatured"`
	DateCreated  time.Time             `bson:"dateCreated"`
	Testimonials []TestimonialDocument `bson:"testimonials,omitempty"`
	CaseStudies  []CaseStudyDocument   `bson:"caseStudies,omitempty"`
	Pricings     []PricingDocument     `bson:"pricings,omitempty"`
}

// TestimonialDocument is one embedded client testimonial.
type TestimonialDocument struct {
	ID       string `bson:"id"`
	Author   string `bson:"author"`
	Feedback string `bson:"feedback"`
	Rating   int    `bson:"rating"`
}

// CaseStudyDocument is one embedded case study.
type CaseStudyDocument struct {
	ID         string    `bson:"id"`
	Title      string    `bson:"title"`
	Client     string    `bson:"client,omitempty"`
	Challenges string    `bson:"challenges,omitempty"`
	Solutions  string    `bson:"solutions,omitempty"`
	Results    string    `bson:"results,omitempty"`
	Date       time.Time `bson:"date,omitempty"`
	Link       string    `bson:"link,omitempty"`
}

// PricingDocument is one embedded pricing tier.
type PricingDocument struct {
	ID       string   `bson:"id"`
	Plan     string   `bson:"plan"`
	Features []string `bson:"features,omitempty"`
	Price    string   `bson:"price,omitempty"`
}

// UserDocument is the MongoDB schema for one account.
type UserDocument struct {
	ID               string    `bson:"_id"`
	Email            string    `bson:"email"`
	Username         string    `bson:"username,omitempty"`
	PasswordHash     string    `bson:"passwordHash,omitempty"`
	Role             string    `bson:"role"`
	IsSubscribed     bool      `bson:"isSubscribed"`
	SubscriptionPlan string    `bson:"subscriptionPlan,omitempty"`
	IsVerified       bool      `bson:"isVerified"`
	CreatedAt        time.Time `bson:"createdAt"`
}

// NotificationDocument is one back-office notification.
type NotificationDocument struct {
	ID        primitive.ObjectID `bson:"_id"`
	Kind      string             `bson:"kind"`
	Message   string             `bson:"message"`
	IsRead    bool               `bson:"isRead"`
	CreatedAt time.Time          `bson:"createdAt"`
}

// NewsletterDocument is one newsletter signup.
type NewsletterDocument struct {
	ID           primitive.ObjectID `bson:"_id"`
	Email        string             `bson:"email"`
	SubscribedAt time.Time          `bson:"subscribedAt"`
}

// SearchCountDocument is one aggregated search term.
type SearchCountDocument struct {
	ID    primitive.ObjectID `bson:"_id"`
	Term  string             `bson:"term"`
	Count int                `bson:"count"`
}
