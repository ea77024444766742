package service

import (
	"context"
	"strings"

	"ladle/internal/models"
	"ladle/internal/repository"
)

type CommentService struct {
	commentRepo repository.CommentRepository
	recipeRepo  repository.RecipeRepository
	userRepo    repository.UserRepository
}

type CreateCommentInput struct {
	UserID   uint
	RecipeID uint
	Text     string
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	recipeRepo repository.RecipeRepository,
	userRepo repository.UserRepository,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		recipeRepo:  recipeRepo,
		userRepo:    userRepo,
	}
}

// CreateComment appends a comment to an existing recipe. The author's display
// name is denormalized at write time and the timestamp is server-assigned.
// The recipe's comment_count is NOT touched here; the caller bumps it as a
// separate operation.
func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if _, err := s.recipeRepo.GetByID(ctx, in.RecipeID); err != nil {
		return nil, err
	}
	const maxCommentLen = 10000

	if strings.TrimSpace(in.Text) == "" {
		return nil, models.NewValidationError("Comment text is required")
	}
	if len(in.Text) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 10000 characters)")
	}

	author, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		RecipeID:   in.RecipeID,
		UserID:     in.UserID,
		AuthorName: author.FullName,
		Text:       in.Text,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

// ListComments returns comments newest-first. A recipe with no comments (or
// an unknown recipe id) yields an empty list, not an error.
func (s *CommentService) ListComments(ctx context.Context, recipeID uint) ([]*models.Comment, error) {
	comments, err := s.commentRepo.ListByRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []*models.Comment{}
	}
	return comments, nil
}
