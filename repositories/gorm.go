package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ai-blog-generator/models"
)

// GormSummaryRepository is the relational summary store (storage.driver: postgres).
type GormSummaryRepository struct {
	db *gorm.DB
}

func NewGormSummaryRepository(db *gorm.DB) *GormSummaryRepository {
	return &GormSummaryRepository{db: db}
}

func (r *GormSummaryRepository) Create(ctx context.Context, s *models.Summary) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	s.CreatedAt = time.Now().UTC()
	return mapGormError(r.db.WithContext(ctx).Create(s).Error)
}

func (r *GormSummaryRepository) FindByID(ctx context.Context, id string) (*models.Summary, error) {
	var s models.Summary
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		return nil, mapGormError(err)
	}
	return &s, nil
}

func (r *GormSummaryRepository) ListByUser(ctx context.Context, userID string) ([]models.Summary, error) {
	summaries := []models.Summary{}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&summaries).Error
	if err != nil {
		return nil, mapGormError(err)
	}
	return summaries, nil
}

// GormUserRepository is the relational account store (storage.driver: postgres).
type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) Create(ctx context.Context, u *models.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.CreatedAt = time.Now().UTC()
	return mapGormError(r.db.WithContext(ctx).Create(u).Error)
}

func (r *GormUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, mapGormError(err)
	}
	return &u, nil
}

func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, mapGormError(err)
	}
	return &u, nil
}

func mapGormError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return errors.Join(ErrDuplicate, err)
	default:
		return err
	}
}
