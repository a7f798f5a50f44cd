package directory

import "time"

// Agency is the central entity of the directory. The same shape backs the
// public archive, the owner dashboard and the admin table; context-specific
// projections are built at the interface layer.
type Agency struct {
	ID           string
	Name         string
	OwnerUserID  string
	Industry     string
	Services     []string
	Description  string
	Email        string
	Phone        string
	Website      string
	LogoURL      string
	IsApproved   bool
	IsFeatured   bool
	DateCreated  time.Time
	Testimonials []Testimonial
	CaseStudies  []CaseStudy
	Pricings     []Pricing
}

// Testimonial is an embedded sub-record. Every sub-record carries a stable
// generated ID so edits and deletes address a single element even when two
// entries are structurally identical.
type Testimonial struct {
	ID       string
	Author   string
	Feedback string
	Rating   int
}

// CaseStudy is an embedded sub-record describing delivered work.
type CaseStudy struct {
	ID         string
	Title      string
	Client     string
	Challenges string
	Solutions  string
	Results    string
	Date       time.Time
	Link       string
}

// Pricing is an embedded sub-record describing one offered plan.
type Pricing struct {
	ID       string
	Plan     string
	Features []string
	Price    string
}
