package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hallbook/internal/domain/models"
)

// StudioRepository persists photo-studio contracts.
type StudioRepository struct {
	coll *mongo.Collection
}

// NewStudioRepository builds a repository over the "studio_contracts" collection.
func NewStudioRepository(db *mongo.Database) *StudioRepository {
	return &StudioRepository{coll: db.Collection("studio_contracts")}
}

// Insert stores a new studio contract and returns it with its generated ID.
func (r *StudioRepository) Insert(ctx context.Context, c models.StudioContract) (models.StudioContract, error) {
	c.ID = primitive.NewObjectID()
	if _, err := r.coll.InsertOne(ctx, c); err != nil {
		return models.StudioContract{}, fmt.Errorf("insert studio contract: %w", err)
	}
	return c, nil
}

// Replace overwrites the whole document.
func (r *StudioRepository) Replace(ctx context.Context, id primitive.ObjectID, c models.StudioContract) (models.StudioContract, error) {
	c.ID = id
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": id}, c)
	if err != nil {
		return models.StudioContract{}, fmt.Errorf("replace studio contract %s: %w", id.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return models.StudioContract{}, mongo.ErrNoDocuments
	}
	return c, nil
}

// Delete removes a studio contract permanently.
func (r *StudioRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete studio contract %s: %w", id.Hex(), err)
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// List returns all studio contracts, newest first.
func (r *StudioRepository) List(ctx context.Context) ([]models.StudioContract, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find studio contracts: %w", err)
	}
	defer cursor.Close(ctx)

	var contracts []models.StudioContract
	if err := cursor.All(ctx, &contracts); err != nil {
		return nil, fmt.Errorf("decode studio contracts: %w", err)
	}
	return contracts, nil
}
