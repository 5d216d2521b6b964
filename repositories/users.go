package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"ai-blog-generator/db"
	"ai-blog-generator/models"
)

type MongoUserRepository struct {
	col *mongo.Collection
}

func NewMongoUserRepository(d *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{col: d.Collection(db.CollectionUsers)}
}

// Create relies on the uniq_username / uniq_email indexes for uniqueness.
func (r *MongoUserRepository) Create(ctx context.Context, u *models.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.CreatedAt = time.Now().UTC()

	if _, err := r.col.InsertOne(ctx, u); err != nil {
		return mapMongoError(err)
	}
	return nil
}

func (r *MongoUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, mapMongoError(err)
	}
	return &u, nil
}

func (r *MongoUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	if err := r.col.FindOne(ctx, bson.M{"username": username}).Decode(&u); err != nil {
		return nil, mapMongoError(err)
	}
	return &u, nil
}
