package models

import "time"

// Summary represents one generated video summary ("blog article").
// Collection: summaries / table: summaries
type Summary struct {
	ID               string    `bson:"_id" json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID           string    `bson:"user_id" json:"user_id" gorm:"type:varchar(36);not null;index:idx_summaries_user_created,priority:1"`
	YoutubeLink      string    `bson:"youtube_link" json:"youtube_link" gorm:"type:text;not null"`
	GeneratedContent string    `bson:"generated_content" json:"generated_content" gorm:"type:text;not null"`
	CreatedAt        time.Time `bson:"created_at" json:"created_at" gorm:"not null;index:idx_summaries_user_created,priority:2,sort:desc"`
}

// Owns reports whether userID is the owner of s.
// A summary is only ever visible to its owner.
func Owns(userID string, s *Summary) bool {
	if s == nil || userID == "" {
		return false
	}
	return s.UserID == userID
}
