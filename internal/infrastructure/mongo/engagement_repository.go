package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/aiagencydirectory/api/internal/public/application"
)

// NewsletterRepository implements application.NewsletterRepository.
type NewsletterRepository struct {
	collection *mongo.Collection
}

// NewNewsletterRepository creates a new Mongo-backed newsletter repository.
func NewNewsletterRepository(db *mongo.Database, collectionName string) *NewsletterRepository {
	return &NewsletterRepository{collection: db.Collection(collectionName)}
}

// Subscribe records a signup. Re-subscribing the same address is a no-op.
func (r *NewsletterRepository) Subscribe(ctx context.Context, email string) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$setOnInsert": bson.M{
			"email":        email,
			"subscribedAt": time.Now().UTC(),
		}},
		options.Update().SetUpsert(true),
	)
	return err
}

// SearchRepository implements application.SearchRepository.
type SearchRepository struct {
	collection *mongo.Collection
}

// NewSearchRepository creates a new Mongo-backed search-count repository.
func NewSearchRepository(db *mongo.Database, collectionName string) *SearchRepository {
	return &SearchRepository{collection: db.Collection(collectionName)}
}

// Record increments the counter for a term, creating it on first sight.
func (r *SearchRepository) Record(ctx context.Context, term string) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"term": term},
		bson.M{"$inc": bson.M{"count": 1}},
		options.Update().SetUpsert(true),
	)
	return err
}

// Top returns the most frequent terms in descending order.
func (r *SearchRepository) Top(ctx context.Context, limit int) ([]application.SearchCount, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "count", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	counts := make([]application.SearchCount, 0, limit)
	for cursor.Next(ctx) {
		var doc SearchCountDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		counts = append(counts, application.SearchCount{Term: doc.Term, Count: doc.Count})
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}
