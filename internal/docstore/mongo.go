// Package docstore keeps users, listings and inquiries in MongoDB, using the
// same collection names and document shapes as existing DreamHome databases.
package docstore

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	usersCollection      = "users"
	propertiesCollection = "properties"
	inquiriesCollection  = "User Query"
)

type DB struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// Open connects, pings and makes sure the indexes the stores rely on exist.
func Open(ctx context.Context, uri, database string) (*DB, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	d := &DB{Client: client, DB: client.Database(database)}
	if err := d.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return d, nil
}

func (d *DB) Close(ctx context.Context) error { return d.Client.Disconnect(ctx) }

func (d *DB) ensureIndexes(ctx context.Context) error {
	_, err := d.DB.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("users email index: %w", err)
	}
	_, err = d.DB.Collection(propertiesCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "listedBy", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "propertyType", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("properties indexes: %w", err)
	}
	return nil
}
