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

const logCollectionName = "workout_logs"

// mongoWorkoutLogRepository implements repository.WorkoutLogRepository.
// Documents keep the client-generated UUID as _id so a log saved from two
// devices converges to one document.
type mongoWorkoutLogRepository struct {
	collection *mongo.Collection
}

func NewMongoWorkoutLogRepository(db *mongo.Database) repository.WorkoutLogRepository {
	return &mongoWorkoutLogRepository{
		collection: db.Collection(logCollectionName),
	}
}

// GetByUserID retrieves all logs owned by userID, newest first.
func (r *mongoWorkoutLogRepository) GetByUserID(ctx context.Context, userID string) ([]domain.WorkoutLog, error) {
	logs := []domain.WorkoutLog{}
	filter := bson.M{"userId": userID}
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return logs, nil
}

// Upsert replaces the log with the same id, or inserts it. Ownership is part
// of the filter so one user cannot overwrite another's log with a forged id.
func (r *mongoWorkoutLogRepository) Upsert(ctx context.Context, userID string, log *domain.WorkoutLog) error {
	if log.ID == "" {
		return errors.New("workout log id is required")
	}
	log.UserID = userID

	filter := bson.M{"_id": log.ID, "userId": userID}
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, filter, log, opts)
	if err != nil {
		// A duplicate key here means the id exists under another user.
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicate
		}
		return err
	}
	return nil
}

// Delete removes the matching log. An absent id is not an error: the client
// treats deletes as idempotent.
func (r *mongoWorkoutLogRepository) Delete(ctx context.Context, userID, logID string) error {
	filter := bson.M{"_id": logID, "userId": userID}
	_, err := r.collection.DeleteOne(ctx, filter)
	return err
}

// EnsureWorkoutLogIndexes creates the per-user date index. Call during startup.
func EnsureWorkoutLogIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: -1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
