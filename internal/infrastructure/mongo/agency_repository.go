package mongo

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/aiagencydirectory/api/internal/directory"
)

// AgencyRepository implements the admin and public agency ports using MongoDB.
type AgencyRepository struct {
	collection *mongo.Collection
}

// NewAgencyRepository creates a new Mongo-backed agency repository.
func NewAgencyRepository(db *mongo.Database, collectionName string) *AgencyRepository {
	return &AgencyRepository{collection: db.Collection(collectionName)}
}

// List returns every agency. Filtering and ordering happen in memory so the
// same snapshot feeds both the public archive and the admin table.
func (r *AgencyRepository) List(ctx context.Context) ([]directory.Agency, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	agencies := make([]directory.Agency, 0)
	for cursor.Next(ctx) {
		var doc AgencyDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		agencies = append(agencies, mapAgencyDocument(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return agencies, nil
}

// FindByID returns a single agency by its identifier.
func (r *AgencyRepository) FindByID(ctx context.Context, id string) (*directory.Agency, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, directory.ErrNotFound
	}
	var doc AgencyDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, directory.ErrNotFound
		}
		return nil, err
	}
	agency := mapAgencyDocument(doc)
	return &agency, nil
}

// Create inserts a new agency and writes the generated identifier back.
func (r *AgencyRepository) Create(ctx context.Context, agency *directory.Agency) error {
	doc := mapAgencyEntity(*agency)
	doc.ID = primitive.NewObjectID()
	if doc.DateCreated.IsZero() {
		doc.DateCreated = time.Now().UTC()
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return err
	}
	agency.ID = doc.ID.Hex()
	return nil
}

// Update replaces an existing agency document.
func (r *AgencyRepository) Update(ctx context.Context, agency *directory.Agency) error {
	objectID, err := primitive.ObjectIDFromHex(agency.ID)
	if err != nil {
		return directory.ErrNotFound
	}
	doc := mapAgencyEntity(*agency)
	doc.ID = objectID
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": objectID}, doc)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return directory.ErrNotFound
	}
	return nil
}

// Delete removes an agency document.
func (r *AgencyRepository) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return directory.ErrNotFound
	}
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return directory.ErrNotFound
	}
	return nil
}

// SetApproved flips the approval flag only if it still holds the expected
// value, so two admins toggling at once cannot silently undo each other.
func (r *AgencyRepository) SetApproved(ctx context.Context, id string, from, to bool) error {
	return r.compareAndSwap(ctx, id, "isApproved", from, to)
}

// SetFeatured flips the featured flag with the same guard as SetApproved.
func (r *AgencyRepository) SetFeatured(ctx context.Context, id string, from, to bool) error {
	return r.compareAndSwap(ctx, id, "isFeatured", from, to)
}

func (r *AgencyRepository) compareAndSwap(ctx context.Context, id, field string, from, to bool) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return directory.ErrNotFound
	}
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": objectID, field: from},
		bson.M{"$set": bson.M{field: to}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		count, err := r.collection.CountDocuments(ctx, bson.M{"_id": objectID})
		if err != nil {
			return err
		}
		if count == 0 {
			return directory.ErrNotFound
		}
		return directory.ErrConflict
	}
	return nil
}

func mapAgencyDocument(doc AgencyDocument) directory.Agency {
	testimonials := make([]directory.Testimonial, 0, len(doc.Testimonials))
	for _, t := range doc.Testimonials {
		testimonials = append(testimonials, directory.Testimonial{
			ID:       t.ID,
			Author:   t.Author,
			Feedback: t.Feedback,
			Rating:   t.Rating,
		})
	}
	caseStudies := make([]directory.CaseStudy, 0, len(doc.CaseStudies))
	for _, cs := range doc.CaseStudies {
		caseStudies = append(caseStudies, directory.CaseStudy{
			ID:         cs.ID,
			Title:      cs.Title,
			Client:     cs.Client,
			Challenges: cs.Challenges,
			Solutions:  cs.Solutions,
			Results:    cs.Results,
			Date:       cs.Date,
			Link:       cs.Link,
		})
	}
	pricings := make([]directory.Pricing, 0, len(doc.Pricings))
	for _, p := range doc.Pricings {
		pricings = append(pricings, directory.Pricing{
			ID:       p.ID,
			Plan:     p.Plan,
			Features: append([]string{}, p.Features...),
			Price:    p.Price,
		})
	}

	return directory.Agency{
		ID:           doc.ID.Hex(),
		Name:         doc.Name,
		OwnerUserID:  doc.OwnerUserID,
		Industry:     doc.Industry,
		Services:     append([]string{}, doc.Services...),
		Description:  doc.Description,
		Email:        doc.Email,
		Phone:        doc.Phone,
		Website:      strings.TrimSpace(doc.Website),
		LogoURL:      doc.LogoURL,
		IsApproved:   doc.IsApproved,
		IsFeatured:   doc.IsFeatured,
		DateCreated:  doc.DateCreated,
		Testimonials: testimonials,
		CaseStudies:  caseStudies,
		Pricings:     pricings,
	}
}

func mapAgencyEntity(agency directory.Agency) AgencyDocument {
	testimonials := make([]TestimonialDocument, 0, len(agency.Testimonials))
	for _, t := range agency.Testimonials {
		testimonials = append(testimonials, TestimonialDocument{
			ID:       t.ID,
			Author:   t.Author,
			Feedback: t.Feedback,
			Rating:   t.Rating,
		})
	}
	caseStudies := make([]CaseStudyDocument, 0, len(agency.CaseStudies))
	for _, cs := range agency.CaseStudies {
		caseStudies = append(caseStudies, CaseStudyDocument{
			ID:         cs.ID,
			Title:      cs.Title,
			Client:     cs.Client,
			Challenges: cs.Challenges,
			Solutions:  cs.Solutions,
			Results:    cs.Results,
			Date:       cs.Date,
			Link:       cs.Link,
		})
	}
	pricings := make([]PricingDocument, 0, len(agency.Pricings))
	for _, p := range agency.Pricings {
		pricings = append(pricings, PricingDocument{
			ID:       p.ID,
			Plan:     p.Plan,
			Features: append([]string{}, p.Features...),
			Price:    p.Price,
		})
	}

	return AgencyDocument{
		Name:         agency.Name,
		OwnerUserID:  agency.OwnerUserID,
		Industry:     agency.Industry,
		Services:     append([]string{}, agency.Services...),
		Description:  agency.Description,
		Email:        agency.Email,
		Phone:        agency.Phone,
		Website:      agency.Website,
		LogoURL:      agency.LogoURL,
		IsApproved:   agency.IsApproved,
		IsFeatured:   agency.IsFeatured,
		DateCreated:  agency.DateCreated,
		Testimonials: testimonials,
		CaseStudies:  caseStudies,
		Pricings:     pricings,
	}
}
