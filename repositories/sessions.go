package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"ai-blog-generator/db"
	"ai-blog-generator/models"
)

const sessionKeyPrefix = "session:"

// RedisSessionRepository keeps each session as a JSON value whose TTL matches
// the session expiry.
type RedisSessionRepository struct {
	rdb *redis.Client
}

func NewRedisSessionRepository(rdb *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{rdb: rdb}
}

func (r *RedisSessionRepository) Create(ctx context.Context, s *models.Session) error {
	ttl := time.Until(s.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session %s already expired", s.ID)
	}
	payload, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, sessionKeyPrefix+s.ID, payload, ttl).Err()
}

func (r *RedisSessionRepository) Get(ctx context.Context, id string) (*models.Session, error) {
	payload, err := r.rdb.Get(ctx, sessionKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var s models.Session
	if err := json.Unmarshal(payload, &s); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	if s.Expired(time.Now()) {
		return nil, ErrNotFound
	}
	return &s, nil
}

func (r *RedisSessionRepository) Delete(ctx context.Context, id string) error {
	return r.rdb.Del(ctx, sessionKeyPrefix+id).Err()
}

// MongoSessionRepository relies on the ttl_expires_at index for cleanup; Get
// also checks expiry because the TTL monitor runs only once a minute.
type MongoSessionRepository struct {
	col *mongo.Collection
}

func NewMongoSessionRepository(d *mongo.Database) *MongoSessionRepository {
	return &MongoSessionRepository{col: d.Collection(db.CollectionSessions)}
}

func (r *MongoSessionRepository) Create(ctx context.Context, s *models.Session) error {
	if _, err := r.col.InsertOne(ctx, s); err != nil {
		return mapMongoError(err)
	}
	return nil
}

func (r *MongoSessionRepository) Get(ctx context.Context, id string) (*models.Session, error) {
	var s models.Session
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&s); err != nil {
		return nil, mapMongoError(err)
	}
	if s.Expired(time.Now()) {
		return nil, ErrNotFound
	}
	return &s, nil
}

func (r *MongoSessionRepository) Delete(ctx context.Context, id string) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
