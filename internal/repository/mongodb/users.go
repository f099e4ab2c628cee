package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"hallbook/internal/domain/models"
)

// UserRepository persists back-office accounts.
type UserRepository struct {
	coll *mongo.Collection
}

// NewUserRepository builds a repository over the "users" collection.
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection("users")}
}

// Insert stores a new user and returns it with its generated ID.
func (r *UserRepository) Insert(ctx context.Context, u models.User) (models.User, error) {
	u.ID = primitive.NewObjectID()
	if _, err := r.coll.InsertOne(ctx, u); err != nil {
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

// Update overwrites the whole user document.
func (r *UserRepository) Update(ctx context.Context, u models.User) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": u.ID}, u)
	if err != nil {
		return fmt.Errorf("update user %s: %w", u.ID.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// FindByID fetches one user by ID.
func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var u models.User
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

// FindByUsername fetches one user by unique username.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (models.User, error) {
	var u models.User
	if err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

// List returns all users.
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

// Count returns the number of user documents.
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}

// AdminExists reports whether an admin account other than excludeID exists.
func (r *UserRepository) AdminExists(ctx context.Context, excludeID primitive.ObjectID) (bool, error) {
	filter := bson.M{"role": models.RoleAdmin}
	if !excludeID.IsZero() {
		filter["_id"] = bson.M{"$ne": excludeID}
	}
	n, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("count admins: %w", err)
	}
	return n > 0, nil
}
