// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"

	"ladle/internal/cache"
	"ladle/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines interface for comment operations. Comments are
// append-only; there is no update or delete.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	ListByRecipe(ctx context.Context, recipeID uint) ([]*models.Comment, error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateComments(ctx, comment.RecipeID)
	return nil
}

// ListByRecipe returns comments newest-first. The id tiebreak keeps ordering
// stable when two comments share a timestamp. The full listing is cached per
// recipe; Create drops the entry so readers never see a list missing a
// comment they just posted.
func (r *commentRepository) ListByRecipe(
	ctx context.Context,
	recipeID uint,
) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := cache.Aside(ctx, cache.CommentsKey(recipeID), &comments, cache.CommentsTTL, func() error {
		return r.db.WithContext(ctx).
			Where("recipe_id = ?", recipeID).
			Order("created_at DESC, id DESC").
			Find(&comments).Error
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return comments, nil
}
