package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ai-blog-generator/db"
	"ai-blog-generator/models"
)

type MongoSummaryRepository struct {
	col *mongo.Collection
}

func NewMongoSummaryRepository(d *mongo.Database) *MongoSummaryRepository {
	return &MongoSummaryRepository{col: d.Collection(db.CollectionSummaries)}
}

func (r *MongoSummaryRepository) Create(ctx context.Context, s *models.Summary) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	s.CreatedAt = time.Now().UTC()

	if _, err := r.col.InsertOne(ctx, s); err != nil {
		return mapMongoError(err)
	}
	return nil
}

func (r *MongoSummaryRepository) FindByID(ctx context.Context, id string) (*models.Summary, error) {
	var s models.Summary
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&s); err != nil {
		return nil, mapMongoError(err)
	}
	return &s, nil
}

func (r *MongoSummaryRepository) ListByUser(ctx context.Context, userID string) ([]models.Summary, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, mapMongoError(err)
	}
	defer cur.Close(ctx)

	summaries := []models.Summary{}
	if err := cur.All(ctx, &summaries); err != nil {
		return nil, err
	}
	return summaries, nil
}

// mapMongoError converts driver errors into repository errors.
func mapMongoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return errors.Join(ErrDuplicate, err)
	default:
		return err
	}
}
