package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/aiagencydirectory/api/internal/directory"
)

// UserRepository implements the admin and public account ports using MongoDB.
// Account identifiers come from the auth provider, so _id is a plain string
// rather than an ObjectID.
type UserRepository struct {
	collection *mongo.Collection
}

// NewUserRepository creates a new Mongo-backed user repository.
func NewUserRepository(db *mongo.Database, collectionName string) *UserRepository {
	return &UserRepository{collection: db.Collection(collectionName)}
}

func (r *UserRepository) List(ctx context.Context) ([]directory.User, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := make([]directory.User, 0)
	for cursor.Next(ctx) {
		var doc UserDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		users = append(users, mapUserDocument(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*directory.User, error) {
	var doc UserDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, directory.ErrNotFound
		}
		return nil, err
	}
	user := mapUserDocument(doc)
	return &user, nil
}

// FindByIDs resolves a batch of accounts with a single query.
func (r *UserRepository) FindByIDs(ctx context.Context, ids []string) ([]directory.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := make([]directory.User, 0, len(ids))
	for cursor.Next(ctx) {
		var doc UserDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		users = append(users, mapUserDocument(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*directory.User, error) {
	var doc UserDocument
	if err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, directory.ErrNotFound
		}
		return nil, err
	}
	user := mapUserDocument(doc)
	return &user, nil
}

func (r *UserRepository) Create(ctx context.Context, user *directory.User, passwordHash string) error {
	doc := UserDocument{
		ID:               user.ID,
		Email:            user.Email,
		Username:         user.Username,
		PasswordHash:     passwordHash,
		Role:             string(user.Role),
		IsSubscribed:     user.IsSubscribed,
		SubscriptionPlan: string(user.SubscriptionPlan),
		IsVerified:       user.IsVerified,
		CreatedAt:        user.CreatedAt,
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}
	_, err := r.collection.InsertOne(ctx, doc)
	return err
}

func (r *UserRepository) Update(ctx context.Context, user *directory.User) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": user.ID},
		bson.M{"$set": bson.M{
			"username":   user.Username,
			"role":       string(user.Role),
			"isVerified": user.IsVerified,
		}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return directory.ErrNotFound
	}
	return nil
}

func (r *UserRepository) UpdatePlan(ctx context.Context, id string, plan directory.Plan, subscribed bool) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"subscriptionPlan": string(plan),
			"isSubscribed":     subscribed,
		}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return directory.ErrNotFound
	}
	return nil
}

func (r *UserRepository) UpdateUsername(ctx context.Context, id, username string) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"username": username}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return directory.ErrNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return directory.ErrNotFound
	}
	return nil
}

func mapUserDocument(doc UserDocument) directory.User {
	plan := directory.Plan(doc.SubscriptionPlan)
	if plan == "" {
		plan = directory.PlanNone
	}
	role := directory.Role(doc.Role)
	if role == "" {
		role = directory.RoleUser
	}
	return directory.User{
		ID:               doc.ID,
		Email:            doc.Email,
		Username:         doc.Username,
		Role:             role,
		IsSubscribed:     doc.IsSubscribed,
		SubscriptionPlan: plan,
		IsVerified:       doc.IsVerified,
		CreatedAt:        doc.CreatedAt,
	}
}
