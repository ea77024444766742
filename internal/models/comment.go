package models

import (
	"time"
)

// Comment represents a comment on a recipe. Comments are append-only: no
// updates, no deletes. AuthorName is denormalized at write time so listings
// never join against users.
type Comment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	RecipeID   uint      `gorm:"not null;index" json:"recipe_id"`
	UserID     uint      `gorm:"not null" json:"user_id"`
	AuthorName string    `gorm:"not null" json:"author_name"`
	Text       string    `gorm:"type:text;not null" json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}
