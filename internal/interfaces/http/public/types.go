package public

import (
	"time"

	"github.com/aiagencydirectory/api/internal/directory"
)

type agencySummaryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Industry    string    `json:"industry,omitempty"`
	Services    []string  `json:"services,omitempty"`
	Description string    `json:"description,omitempty"`
	LogoURL     string    `json:"logoUrl,omitempty"`
	Website     string    `json:"website,omitempty"`
	IsFeatured  bool      `json:"isFeatured"`
	DateCreated time.Time `json:"dateCreated"`
}

type agencyDetailResponse struct {
	agencySummaryResponse
	Email        string                `json:"email,omitempty"`
	Phone        string                `json:"phone,omitempty"`
	Testimonials []testimonialPayload  `json:"testimonials"`
	CaseStudies  []caseStudyPayload    `json:"caseStudies"`
	Pricings     []pricingPayload      `json:"pricings"`
}

type testimonialPayload struct {
	ID       string `json:"id,omitempty"`
	Author   string `json:"author"`
	Feedback string `json:"feedback"`
	Rating   int    `json:"rating"`
}

type caseStudyPayload struct {
	ID         string     `json:"id,omitempty"`
	Title      string     `json:"title"`
	Client     string     `json:"client,omitempty"`
	Challenges string     `json:"challenges,omitempty"`
	Solutions  string     `json:"solutions,omitempty"`
	Results    string     `json:"results,omitempty"`
	Date       *time.Time `json:"date,omitempty"`
	Link       string     `json:"link,omitempty"`
}

type pricingPayload struct {
	ID       string   `json:"id,omitempty"`
	Plan     string   `json:"plan"`
	Features []string `json:"features,omitempty"`
	Price    string   `json:"price,omitempty"`
}

type agencyListResponse struct {
	Items       []agencySummaryResponse `json:"items"`
	TotalPages  int                     `json:"totalPages"`
	TotalItems  int                     `json:"totalItems"`
	CurrentPage int                     `json:"currentPage"`
}

type submitAgencyRequest struct {
	Name           string   `json:"name"`
	Industry       string   `json:"industry"`
	Services       []string `json:"services"`
	CustomServices []string `json:"customServices"`
	Description    string   `json:"description"`
	Email          string   `json:"email"`
	Phone          string   `json:"phone"`
	Website        string   `json:"website"`
	LogoName       string   `json:"logoName"`
	LogoType       string   `json:"logoType"`
	LogoData       []byte   `json:"logoData"`
}

type updateAgencyRequest struct {
	Name           string   `json:"name"`
	Industry       string   `json:"industry"`
	Services       []string `json:"services"`
	CustomServices []string `json:"customServices"`
	Description    string   `json:"description"`
	Email          string   `json:"email"`
	Phone          string   `json:"phone"`
	Website        string   `json:"website"`
	LogoURL        string   `json:"logoUrl"`
}

type profileResponse struct {
	ID               string `json:"id"`
	Email            string `json:"email"`
	Username         string `json:"username,omitempty"`
	Role             string `json:"role"`
	IsSubscribed     bool   `json:"isSubscribed"`
	SubscriptionPlan string `json:"subscriptionPlan"`
}

type checkoutResponse struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

func buildAgencySummaryResponse(agency directory.Agency) agencySummaryResponse {
	return agencySummaryResponse{
		ID:          agency.ID,
		Name:        agency.Name,
		Industry:    agency.Industry,
		Services:    agency.Services,
		Description: agency.Description,
		LogoURL:     agency.LogoURL,
		Website:     agency.Website,
		IsFeatured:  agency.IsFeatured,
		DateCreated: agency.DateCreated,
	}
}

func buildAgencyDetailResponse(agency directory.Agency) agencyDetailResponse {
	testimonials := make([]testimonialPayload, 0, len(agency.Testimonials))
	for _, t := range agency.Testimonials {
		testimonials = append(testimonials, testimonialPayload{
			ID: t.ID, Author: t.Author, Feedback: t.Feedback, Rating: t.Rating,
		})
	}
	caseStudies := make([]caseStudyPayload, 0, len(agency.CaseStudies))
	for _, cs := range agency.CaseStudies {
		payload := caseStudyPayload{
			ID: cs.ID, Title: cs.Title, Client: cs.Client,
			Challenges: cs.Challenges, Solutions: cs.Solutions,
			Results: cs.Results, Link: cs.Link,
		}
		if !cs.Date.IsZero() {
			date := cs.Date
			payload.Date = &date
		}
		caseStudies = append(caseStudies, payload)
	}
	pricings := make([]pricingPayload, 0, len(agency.Pricings))
	for _, p := range agency.Pricings {
		pricings = append(pricings, pricingPayload{
			ID: p.ID, Plan: p.Plan, Features: p.Features, Price: p.Price,
		})
	}
	return agencyDetailResponse{
		agencySummaryResponse: buildAgencySummaryResponse(agency),
		Email:                 agency.Email,
		Phone:                 agency.Phone,
		Testimonials:          testimonials,
		CaseStudies:           caseStudies,
		Pricings:              pricings,
	}
}

func buildProfileResponse(user directory.User) profileResponse {
	return profileResponse{
		ID:               user.ID,
		Email:            user.Email,
		Username:         user.Username,
		Role:             string(user.Role),
		IsSubscribed:     user.IsSubscribed,
		SubscriptionPlan: string(user.SubscriptionPlan),
	}
}
