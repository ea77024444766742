// Package service contains the application's business logic layer.
package service

import (
	"context"
	"strings"

	"ladle/internal/models"
	"ladle/internal/repository"
)

const (
	maxRecipeNameLen = 200
	maxListEntries   = 200
	maxListEntryLen  = 2000
)

type RecipeService struct {
	recipeRepo repository.RecipeRepository
	userRepo   repository.UserRepository
}

type CreateRecipeInput struct {
	UserID      uint
	Name        string
	Ingredients []string
	Steps       []string
	MediaRefs   []string
}

type CounterDeltaInput struct {
	RecipeID uint
	Kind     string
	Delta    int64
}

func NewRecipeService(
	recipeRepo repository.RecipeRepository,
	userRepo repository.UserRepository,
) *RecipeService {
	return &RecipeService{
		recipeRepo: recipeRepo,
		userRepo:   userRepo,
	}
}

// CreateRecipe validates the submission, denormalizes the author's display
// name, and stores the recipe with all counters at zero.
func (s *RecipeService) CreateRecipe(ctx context.Context, in CreateRecipeInput) (*models.Recipe, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, models.NewValidationError("Recipe name is required")
	}
	if len(name) > maxRecipeNameLen {
		return nil, models.NewValidationError("Recipe name too long (max 200 characters)")
	}
	if err := validateEntries("Ingredients", in.Ingredients); err != nil {
		return nil, err
	}
	if err := validateEntries("Steps", in.Steps); err != nil {
		return nil, err
	}

	author, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	recipe := &models.Recipe{
		UserID:      in.UserID,
		AuthorName:  author.FullName,
		Name:        name,
		Ingredients: models.StringList(in.Ingredients),
		Steps:       models.StringList(in.Steps),
		MediaRefs:   models.StringList(in.MediaRefs),
	}
	if err := s.recipeRepo.Create(ctx, recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}

func (s *RecipeService) GetRecipe(ctx context.Context, id uint) (*models.Recipe, error) {
	return s.recipeRepo.GetByID(ctx, id)
}

func (s *RecipeService) ListRecipes(ctx context.Context, limit, offset int) ([]models.Recipe, error) {
	return s.recipeRepo.List(ctx, limit, offset)
}

// ApplyCounterDelta validates the kind and delta, then hands the mutation to
// the store as a single atomic add.
func (s *RecipeService) ApplyCounterDelta(ctx context.Context, in CounterDeltaInput) (models.CounterKind, int64, error) {
	kind, ok := models.ParseCounterKind(in.Kind)
	if !ok {
		return "", 0, models.NewValidationError("Unknown counter kind (expected like, comment, or share)")
	}
	if in.Delta == 0 {
		return "", 0, models.NewValidationError("Delta must be a non-zero integer")
	}

	count, err := s.recipeRepo.ApplyCounterDelta(ctx, in.RecipeID, kind, in.Delta)
	if err != nil {
		return "", 0, err
	}
	return kind, count, nil
}

// validateEntries enforces the strict creation policy: the list itself and
// every entry in it must be non-blank.
func validateEntries(field string, entries []string) error {
	if len(entries) == 0 {
		return models.NewValidationError(field + " are required")
	}
	if len(entries) > maxListEntries {
		return models.NewValidationError(field + " list too long (max 200 entries)")
	}
	for _, e := range entries {
		if strings.TrimSpace(e) == "" {
			return models.NewValidationError(field + " entries must not be blank")
		}
		if len(e) > maxListEntryLen {
			return models.NewValidationError(field + " entry too long (max 2000 characters)")
		}
	}
	return nil
}
