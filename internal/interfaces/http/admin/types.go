package admin

import (
	"time"

	adminapp "github.com/aiagencydirectory/api/internal/admin/application"
	"github.com/aiagencydirectory/api/internal/directory"
)

type adminAgencyResponse struct {
	ID           string               `json:"id"`
	Name         string               `json:"name"`
	OwnerUserID  string               `json:"ownerUserId,omitempty"`
	OwnerPlan    string               `json:"ownerPlan"`
	Industry     string               `json:"industry,omitempty"`
	Services     []string             `json:"services,omitempty"`
	Description  string               `json:"description,omitempty"`
	Email        string               `json:"email,omitempty"`
	Phone        string               `json:"phone,omitempty"`
	Website      string               `json:"website,omitempty"`
	LogoURL      string               `json:"logoUrl,omitempty"`
	IsApproved   bool                 `json:"isApproved"`
	IsFeatured   bool                 `json:"isFeatured"`
	Featurable   bool                 `json:"featurable"`
	DateCreated  time.Time            `json:"dateCreated"`
	Testimonials []testimonialPayload `json:"testimonials"`
	CaseStudies  []caseStudyPayload   `json:"caseStudies"`
	Pricings     []pricingPayload     `json:"pricings"`
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

type adminAgencyListResponse struct {
	Items       []adminAgencyResponse `json:"items"`
	TotalPages  int                   `json:"totalPages"`
	TotalItems  int                   `json:"totalItems"`
	CurrentPage int                   `json:"currentPage"`
}

type upsertAgencyRequest struct {
	Name         string               `json:"name"`
	OwnerUserID  string               `json:"ownerUserId"`
	Industry     string               `json:"industry"`
	Services     []string             `json:"services"`
	Description  string               `json:"description"`
	Email        string               `json:"email"`
	Phone        string               `json:"phone"`
	Website      string               `json:"website"`
	LogoURL      string               `json:"logoUrl"`
	Testimonials []testimonialPayload `json:"testimonials"`
	CaseStudies  []caseStudyPayload   `json:"caseStudies"`
	Pricings     []pricingPayload     `json:"pricings"`
}

type adminUserResponse struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	Username         string    `json:"username,omitempty"`
	Role             string    `json:"role"`
	IsSubscribed     bool      `json:"isSubscribed"`
	SubscriptionPlan string    `json:"subscriptionPlan"`
	IsVerified       bool      `json:"isVerified"`
	CreatedAt        time.Time `json:"createdAt"`
}

type inviteUserRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type updateUserRequest struct {
	Username   string `json:"username"`
	Role       string `json:"role"`
	IsVerified bool   `json:"isVerified"`
}

type notificationResponse struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

func buildAdminAgencyResponse(row adminapp.AgencyRow) adminAgencyResponse {
	agency := row.Agency
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
	return adminAgencyResponse{
		ID:           agency.ID,
		Name:         agency.Name,
		OwnerUserID:  agency.OwnerUserID,
		OwnerPlan:    string(row.OwnerPlan),
		Industry:     agency.Industry,
		Services:     agency.Services,
		Description:  agency.Description,
		Email:        agency.Email,
		Phone:        agency.Phone,
		Website:      agency.Website,
		LogoURL:      agency.LogoURL,
		IsApproved:   agency.IsApproved,
		IsFeatured:   agency.IsFeatured,
		Featurable:   row.Featurable,
		DateCreated:  agency.DateCreated,
		Testimonials: testimonials,
		CaseStudies:  caseStudies,
		Pricings:     pricings,
	}
}

func buildAdminUserResponse(user directory.User) adminUserResponse {
	return adminUserResponse{
		ID:               user.ID,
		Email:            user.Email,
		Username:         user.Username,
		Role:             string(user.Role),
		IsSubscribed:     user.IsSubscribed,
		SubscriptionPlan: string(user.SubscriptionPlan),
		IsVerified:       user.IsVerified,
		CreatedAt:        user.CreatedAt,
	}
}

func commandFromRequest(req upsertAgencyRequest) adminapp.UpsertAgencyCommand {
	testimonials := make([]directory.Testimonial, 0, len(req.Testimonials))
	for _, t := range req.Testimonials {
		testimonials = append(testimonials, directory.Testimonial{
			ID: t.ID, Author: t.Author, Feedback: t.Feedback, Rating: t.Rating,
		})
	}
	caseStudies := make([]directory.CaseStudy, 0, len(req.CaseStudies))
	for _, cs := range req.CaseStudies {
		record := directory.CaseStudy{
			ID: cs.ID, Title: cs.Title, Client: cs.Client,
			Challenges: cs.Challenges, Solutions: cs.Solutions,
			Results: cs.Results, Link: cs.Link,
		}
		if cs.Date != nil {
			record.Date = *cs.Date
		}
		caseStudies = append(caseStudies, record)
	}
	pricings := make([]directory.Pricing, 0, len(req.Pricings))
	for _, p := range req.Pricings {
		pricings = append(pricings, directory.Pricing{
			ID: p.ID, Plan: p.Plan, Features: p.Features, Price: p.Price,
		})
	}
	return adminapp.UpsertAgencyCommand{
		Name:         req.Name,
		OwnerUserID:  req.OwnerUserID,
		Industry:     req.Industry,
		Services:     req.Services,
		Description:  req.Description,
		Email:        req.Email,
		Phone:        req.Phone,
		Website:      req.Website,
		LogoURL:      req.LogoURL,
		Testimonials: testimonials,
		CaseStudies:  caseStudies,
		Pricings:     pricings,
	}
}
