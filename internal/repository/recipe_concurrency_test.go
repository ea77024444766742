package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"ladle/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupSQLiteDB opens an isolated in-memory database with a single connection
// so concurrent statements serialize at the driver instead of erroring.
func setupSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Recipe{}, &models.Comment{}))
	return db
}

func TestRecipeRepository_ApplyCounterDelta_ConcurrentIncrements(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewRecipeRepository(db)
	ctx := context.Background()

	recipe := &models.Recipe{
		UserID:      1,
		AuthorName:  "Test Cook",
		Name:        "Contended Curry",
		Ingredients: models.StringList{"2 cups rice"},
		Steps:       models.StringList{"Cook the rice."},
	}
	require.NoError(t, repo.Create(ctx, recipe))

	const workers = 50
	var wg sync.WaitGroup
	errs := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.ApplyCounterDelta(ctx, recipe.ID, models.CounterLike, 1); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Fatalf("concurrent delta failed: %v", err)
	}

	// No increment may be lost under concurrency.
	fresh, err := repo.GetByID(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(workers), fresh.LikeCount)
}

func TestRecipeRepository_ApplyCounterDelta_MixedDeltas(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewRecipeRepository(db)
	ctx := context.Background()

	recipe := &models.Recipe{
		UserID:      1,
		AuthorName:  "Test Cook",
		Name:        "Balance Bowl",
		Ingredients: models.StringList{"1 cup quinoa"},
		Steps:       models.StringList{"Assemble."},
	}
	require.NoError(t, repo.Create(ctx, recipe))

	for i := 0; i < 10; i++ {
		_, err := repo.ApplyCounterDelta(ctx, recipe.ID, models.CounterLike, 1)
		require.NoError(t, err)
	}
	count, err := repo.ApplyCounterDelta(ctx, recipe.ID, models.CounterLike, -4)
	require.NoError(t, err)
	assert.Equal(t, int64(6), count)
}

func TestRecipeRepository_ApplyCounterDelta_NeverBelowZero(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewRecipeRepository(db)
	ctx := context.Background()

	recipe := &models.Recipe{
		UserID:      1,
		AuthorName:  "Test Cook",
		Name:        "Zero Floor",
		Ingredients: models.StringList{"1 lemon"},
		Steps:       models.StringList{"Squeeze."},
	}
	require.NoError(t, repo.Create(ctx, recipe))

	_, err := repo.ApplyCounterDelta(ctx, recipe.ID, models.CounterShare, -1)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeValidation, appErr.Code)

	// The failed delta must not have changed the stored count.
	fresh, err := repo.GetByID(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), fresh.ShareCount)
}

func TestMediaRepository_Create_DedupesOnKey(t *testing.T) {
	db := setupSQLiteDB(t)
	require.NoError(t, db.AutoMigrate(&models.Media{}))
	repo := NewMediaRepository(db)
	ctx := context.Background()

	first := &models.Media{Key: "abc123", UserID: 1, MimeType: "image/jpeg", SizeBytes: 100}
	require.NoError(t, repo.Create(ctx, first))
	require.NotZero(t, first.ID)

	dup := &models.Media{Key: "abc123", UserID: 2, MimeType: "image/jpeg", SizeBytes: 100}
	require.NoError(t, repo.Create(ctx, dup))
	assert.Equal(t, first.ID, dup.ID)

	fetched, err := repo.GetByKey(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, uint(1), fetched.UserID)
}
