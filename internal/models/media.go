package models

import (
	"time"
)

// Media represents an uploaded image backing one or more recipe media refs.
// Key is the sha256 hex of the master encode, which makes uploads idempotent.
type Media struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Key          string    `gorm:"uniqueIndex;not null" json:"key"`
	UserID       uint      `gorm:"not null;index" json:"user_id"`
	OriginalName string    `json:"original_name"`
	MimeType     string    `json:"mime_type"`
	SizeBytes    int64     `json:"size_bytes"`
	Width        int       `json:"width"`
	Height       int       `json:"height"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// LastAccessedAt is stamped on serve so stale masters can be swept later.
	LastAccessedAt *time.Time `json:"last_accessed_at,omitempty"`
}
