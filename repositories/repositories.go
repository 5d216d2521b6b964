package repositories

import (
	"context"
	"errors"

	"ai-blog-generator/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// SummaryRepository stores generated summaries. Records are never updated.
type SummaryRepository interface {
	// Create assigns ID (when empty) and CreatedAt, then inserts s.
	Create(ctx context.Context, s *models.Summary) error
	FindByID(ctx context.Context, id string) (*models.Summary, error)
	// ListByUser returns the user's summaries, newest first.
	ListByUser(ctx context.Context, userID string) ([]models.Summary, error)
}

// UserRepository stores accounts. Create returns ErrDuplicate when the username
// or email is taken.
type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
}

// SessionRepository stores login sessions until they expire or are deleted.
type SessionRepository interface {
	Create(ctx context.Context, s *models.Session) error
	// Get returns ErrNotFound for unknown and expired sessions.
	Get(ctx context.Context, id string) (*models.Session, error)
	Delete(ctx context.Context, id string) error
}
