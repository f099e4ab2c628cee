package mongodb

import (
	"context"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hallbook/internal/domain/models"
)

// ContractRepository persists hall contracts.
type ContractRepository struct {
	coll *mongo.Collection
}

// NewContractRepository builds a repository over the "contracts" collection.
func NewContractRepository(db *mongo.Database) *ContractRepository {
	return &ContractRepository{coll: db.Collection("contracts")}
}

// Insert stores a new contract and returns it with its generated ID.
func (r *ContractRepository) Insert(ctx context.Context, c models.Contract) (models.Contract, error) {
	c.ID = primitive.NewObjectID()
	if _, err := r.coll.InsertOne(ctx, c); err != nil {
		return models.Contract{}, fmt.Errorf("insert contract: %w", err)
	}
	return c, nil
}

// Replace overwrites the whole document (last-writer-wins).
func (r *ContractRepository) Replace(ctx context.Context, id primitive.ObjectID, c models.Contract) (models.Contract, error) {
	c.ID = id
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": id}, c)
	if err != nil {
		return models.Contract{}, fmt.Errorf("replace contract %s: %w", id.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return models.Contract{}, mongo.ErrNoDocuments
	}
	return c, nil
}

// UpdateStatus patches only the lifecycle status field.
func (r *ContractRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.ContractStatus) error {
	res, err := r.coll.UpdateByID(ctx, id, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return fmt.Errorf("update contract status %s: %w", id.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete removes a contract permanently.
func (r *ContractRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete contract %s: %w", id.Hex(), err)
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// FindByID fetches one contract.
func (r *ContractRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.Contract, error) {
	var c models.Contract
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return models.Contract{}, err
	}
	return c, nil
}

// Search pages through contracts matching the term on owner name or event
// date, case-insensitively. An empty term matches everything.
func (r *ContractRepository) Search(ctx context.Context, term string, page, limit int64) ([]models.Contract, int64, error) {
	filter := bson.M{}
	if term != "" {
		safe := regexp.QuoteMeta(term)
		filter["$or"] = bson.A{
			bson.M{"contract_owner": bson.M{"$regex": safe, "$options": "i"}},
			bson.M{"event_date": bson.M{"$regex": safe, "$options": "i"}},
		}
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count contracts: %w", err)
	}

	opts := options.Find().
		SetSkip((page - 1) * limit).
		SetLimit(limit).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("search contracts: %w", err)
	}
	defer cursor.Close(ctx)

	contracts := make([]models.Contract, 0, limit)
	if err := cursor.All(ctx, &contracts); err != nil {
		return nil, 0, fmt.Errorf("decode contracts: %w", err)
	}
	return contracts, total, nil
}

// FindAll returns every contract; used by the reporting aggregation.
func (r *ContractRepository) FindAll(ctx context.Context) ([]models.Contract, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find contracts: %w", err)
	}
	defer cursor.Close(ctx)

	var contracts []models.Contract
	if err := cursor.All(ctx, &contracts); err != nil {
		return nil, fmt.Errorf("decode contracts: %w", err)
	}
	return contracts, nil
}
