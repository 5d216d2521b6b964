package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"ai-blog-generator/config"
	"ai-blog-generator/logger"
)

const (
	CollectionUsers     = "users"
	CollectionSummaries = "summaries"
	CollectionSessions  = "sessions"
)

// ConnectMongo connects, pings the primary and ensures indexes.
// The caller owns the returned client and must Disconnect it.
func ConnectMongo(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cl, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := cl.Ping(ctx, readpref.Primary()); err != nil {
		_ = cl.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	database := cl.Database(cfg.Database)
	if err := EnsureIndexes(ctx, database); err != nil {
		_ = cl.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("mongo indexes: %w", err)
	}

	logger.Log.Infof("MongoDB connected and indexes ensured (db=%s)", cfg.Database)
	return cl, database, nil
}

// PingMongo is used by the health check.
func PingMongo(ctx context.Context, d *mongo.Database) error {
	return d.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
}

func EnsureIndexes(ctx context.Context, d *mongo.Database) error {
	// users: unique username, unique email
	{
		if _, err := d.Collection(CollectionUsers).Indexes().CreateMany(ctx, []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "username", Value: 1}},
				Options: options.Index().SetName("uniq_username").SetUnique(true),
			},
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetName("uniq_email").SetUnique(true),
			},
		}); err != nil {
			return err
		}
	}

	// summaries: owner listing, newest first
	{
		if _, err := d.Collection(CollectionSummaries).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_user_created_desc"),
		}); err != nil {
			return err
		}
	}

	// sessions: expire at expires_at
	{
		if _, err := d.Collection(CollectionSessions).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetName("ttl_expires_at").SetExpireAfterSeconds(0),
		}); err != nil {
			return err
		}
	}
	return nil
}
