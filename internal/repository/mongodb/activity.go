package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hallbook/internal/domain/models"
)

// ActivityRepository persists the append-only activity log.
type ActivityRepository struct {
	coll *mongo.Collection
}

// NewActivityRepository builds a repository over the "activity_logs" collection.
func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{coll: db.Collection("activity_logs")}
}

// Insert appends one activity entry.
func (r *ActivityRepository) Insert(ctx context.Context, e models.ActivityEntry) error {
	if _, err := r.coll.InsertOne(ctx, e); err != nil {
		return fmt.Errorf("insert activity entry: %w", err)
	}
	return nil
}

// List returns the most recent entries, newest first.
func (r *ActivityRepository) List(ctx context.Context, limit int64) ([]models.ActivityEntry, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "at", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find activity entries: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []models.ActivityEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("decode activity entries: %w", err)
	}
	return entries, nil
}
