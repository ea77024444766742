package repository

import (
	"context"
	"errors"
	"strings"

	"ladle/internal/cache"
	"ladle/internal/models"
	"ladle/internal/observability"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// RecipeRepository defines persistence operations for recipes, including the
// atomic engagement counter mutation.
type RecipeRepository interface {
	Create(ctx context.Context, recipe *models.Recipe) error
	GetByID(ctx context.Context, id uint) (*models.Recipe, error)
	List(ctx context.Context, limit, offset int) ([]models.Recipe, error)
	// ApplyCounterDelta adds delta to the given counter in a single UPDATE
	// statement and returns the resulting count. There is no application-side
	// read-modify-write, so concurrent deltas never lose updates.
	ApplyCounterDelta(ctx context.Context, id uint, kind models.CounterKind, delta int64) (int64, error)
}

type recipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository returns a new RecipeRepository implementation.
func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) Create(ctx context.Context, recipe *models.Recipe) error {
	ctx, span := observability.TraceRepositoryMethod(ctx, "Create", "recipes")
	defer span.End()
	defer observability.TrackQuery("Create", "recipes")()

	if err := r.db.WithContext(ctx).Create(recipe).Error; err != nil {
		span.RecordError(err)
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.RecipeListKey)
	return nil
}

func (r *recipeRepository) GetByID(ctx context.Context, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	key := cache.RecipeKey(id)

	err := cache.Aside(ctx, key, &recipe, cache.RecipeTTL, func() error {
		if err := r.db.WithContext(ctx).First(&recipe, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Recipe", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// recipeListCachePage is the page shape cached under RecipeListKey. Only the
// canonical first page is hot enough to cache under a single key; other
// limit/offset combinations go straight to the database.
const recipeListCachePage = 20

func (r *recipeRepository) List(ctx context.Context, limit, offset int) ([]models.Recipe, error) {
	var recipes []models.Recipe
	fetch := func() error {
		return r.db.WithContext(ctx).
			Order("created_at DESC, id DESC").
			Limit(limit).Offset(offset).
			Find(&recipes).Error
	}

	if offset == 0 && limit == recipeListCachePage {
		if err := cache.Aside(ctx, cache.RecipeListKey, &recipes, cache.RecipeListTTL, fetch); err != nil {
			return nil, models.NewInternalError(err)
		}
		return recipes, nil
	}

	if err := fetch(); err != nil {
		return nil, models.NewInternalError(err)
	}
	return recipes, nil
}

func (r *recipeRepository) ApplyCounterDelta(ctx context.Context, id uint, kind models.CounterKind, delta int64) (int64, error) {
	ctx, span := observability.TraceRepositoryMethod(ctx, "ApplyCounterDelta", "recipes")
	defer span.End()
	defer observability.TrackQuery("ApplyCounterDelta", "recipes")()

	column, ok := kind.Column()
	if !ok {
		return 0, models.NewValidationError("unknown counter kind")
	}

	res := r.db.WithContext(ctx).Model(&models.Recipe{}).
		Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + ?", delta))
	if res.Error != nil {
		span.RecordError(res.Error)
		if isCheckConstraintError(res.Error) {
			return 0, models.NewValidationError("counter cannot go below zero")
		}
		return 0, models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, models.NewNotFoundError("Recipe", id)
	}

	// Read back the count after the atomic add. A concurrent delta landing in
	// between only makes this value newer, never stale.
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Recipe{}).
		Select(column).
		Where("id = ?", id).
		Scan(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}

	cache.InvalidateRecipe(ctx, id)
	return count, nil
}

// isCheckConstraintError checks if a DB error is a check constraint violation.
func isCheckConstraintError(err error) bool {
	if err == nil {
		return false
	}
	// PostgreSQL check violation SQLSTATE 23514
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23514"
	}
	return strings.Contains(strings.ToLower(err.Error()), "check constraint")
}
