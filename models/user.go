package models

import "time"

// User is an account. Username and email are unique.
type User struct {
	ID           string    `bson:"_id" json:"id" gorm:"primaryKey;type:varchar(36)"`
	Username     string    `bson:"username" json:"username" gorm:"type:varchar(150);not null;uniqueIndex"`
	Email        string    `bson:"email" json:"email" gorm:"type:varchar(254);not null;uniqueIndex"`
	PasswordHash string    `bson:"password_hash" json:"-" gorm:"type:text;not null"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at" gorm:"not null"`
}
