package models

import (
	"time"
)

// CounterKind identifies one of the engagement counters carried on a recipe.
type CounterKind string

const (
	CounterLike    CounterKind = "like"
	CounterComment CounterKind = "comment"
	CounterShare   CounterKind = "share"
)

// Column returns the recipes table column backing the counter. Only the three
// whitelisted kinds map to a column; anything else returns false.
func (k CounterKind) Column() (string, bool) {
	switch k {
	case CounterLike:
		return "like_count", true
	case CounterComment:
		return "comment_count", true
	case CounterShare:
		return "share_count", true
	default:
		return "", false
	}
}

// ParseCounterKind validates a counter kind from a request path segment.
func ParseCounterKind(s string) (CounterKind, bool) {
	k := CounterKind(s)
	if _, ok := k.Column(); !ok {
		return "", false
	}
	return k, true
}

// Recipe represents a shared recipe in the Ladle application. AuthorName is
// denormalized from the owning user at creation time and never refreshed.
// Counters are persisted and mutated only through atomic store-side updates.
type Recipe struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	UserID       uint       `gorm:"not null;index" json:"user_id"`
	AuthorName   string     `gorm:"not null" json:"author_name"`
	Name         string     `gorm:"not null" json:"name"`
	Ingredients  StringList `gorm:"type:text;not null" json:"ingredients"`
	Steps        StringList `gorm:"type:text;not null" json:"steps"`
	MediaRefs    StringList `gorm:"type:text" json:"media_refs,omitempty"`
	LikeCount    int64      `gorm:"not null;default:0;check:like_count >= 0" json:"like_count"`
	CommentCount int64      `gorm:"not null;default:0;check:comment_count >= 0" json:"comment_count"`
	ShareCount   int64      `gorm:"not null;default:0;check:share_count >= 0" json:"share_count"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
