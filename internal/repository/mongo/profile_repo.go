package mongo

import (
	"context"
	"errors"

	"fittrack/internal/domain"
	"fittrack/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const profileCollectionName = "profiles"

// profileDocument wraps the profile with its owning user id. The document id
// is the user id itself: one profile per user, by construction.
type profileDocument struct {
	UserID  string             `bson:"_id"`
	Profile domain.UserProfile `bson:"profile"`
}

// mongoProfileRepository implements repository.ProfileRepository.
type mongoProfileRepository struct {
	collection *mongo.Collection
}

func NewMongoProfileRepository(db *mongo.Database) repository.ProfileRepository {
	return &mongoProfileRepository{
		collection: db.Collection(profileCollectionName),
	}
}

// GetByUserID retrieves the profile owned by userID.
func (r *mongoProfileRepository) GetByUserID(ctx context.Context, userID string) (*domain.UserProfile, error) {
	var doc profileDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	doc.Profile.ID = userID
	return &doc.Profile, nil
}

// Upsert writes the user's profile, replacing any previous version.
func (r *mongoProfileRepository) Upsert(ctx context.Context, userID string, profile *domain.UserProfile) error {
	profile.ID = userID
	doc := profileDocument{UserID: userID, Profile: *profile}

	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": userID}, doc, opts)
	return err
}
