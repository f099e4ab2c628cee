// Package mongodb holds the MongoDB-backed repositories. Documents are
// replaced wholesale on update; the consistency discipline is
// last-writer-wins, with no optimistic concurrency token.
package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Client wraps a MongoDB connection scoped to one database.
type Client struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect establishes and verifies a MongoDB connection.
func Connect(ctx context.Context, uri, dbName string) (*Client, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Client{client: client, db: client.Database(dbName)}, nil
}

// Database exposes the underlying database handle for repository wiring.
func (c *Client) Database() *mongo.Database { return c.db }

// Close closes the MongoDB connection.
func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}
