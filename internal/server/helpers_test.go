package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ladle/internal/config"
	"ladle/internal/models"
	"ladle/internal/repository"
	"ladle/internal/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestServer builds a Server over an isolated in-memory sqlite database
// and a miniredis instance, with the full route table mounted.
func setupTestServer(t *testing.T) (*Server, *fiber.App) {
	t.Helper()
	t.Setenv("APP_ENV", "test")

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Recipe{}, &models.Comment{}, &models.Media{}))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	cfg := &config.Config{
		Env:            "test",
		Port:           "8476",
		JWTSecret:      "test-secret-with-enough-length-for-hs256",
		StoreTimeoutMS: 5000,
		MediaDir:       t.TempDir(),
		MediaMaxBytes:  10 << 20,
	}

	s := &Server{
		config:      cfg,
		db:          db,
		redis:       rdb,
		userRepo:    repository.NewUserRepository(db),
		recipeRepo:  repository.NewRecipeRepository(db),
		commentRepo: repository.NewCommentRepository(db),
		mediaRepo:   repository.NewMediaRepository(db),
	}
	s.recipeService = service.NewRecipeService(s.recipeRepo, s.userRepo)
	s.commentService = service.NewCommentService(s.commentRepo, s.recipeRepo, s.userRepo)
	s.userService = service.NewUserService(s.userRepo)
	s.mediaService = service.NewMediaService(s.mediaRepo, cfg)

	app := fiber.New()
	s.SetupRoutes(app)
	return s, app
}

// createTestUser inserts a user with a known password and returns it with a
// freshly minted token.
func createTestUser(t *testing.T, s *Server, fullName, email string) (*models.User, string) {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("Password123!"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{FullName: fullName, Email: email, Password: string(hashed)}
	require.NoError(t, s.userRepo.Create(t.Context(), user))

	token, err := s.generateToken(user.ID, user.FullName)
	require.NoError(t, err)
	return user, token
}

func jsonRequest(t *testing.T, method, target, token string, body any) *http.Request {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// --- parsePagination ---

func TestParsePagination_Defaults(t *testing.T) {
	app := fiber.New()
	app.Get("/items", func(c *fiber.Ctx) error {
		p := parsePagination(c, 20)
		return c.JSON(fiber.Map{"limit": p.Limit, "offset": p.Offset})
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/items", nil))
	require.NoError(t, err)

	var body map[string]int
	decodeJSON(t, resp, &body)
	assert.Equal(t, 20, body["limit"])
	assert.Equal(t, 0, body["offset"])
}

func TestParsePagination_CustomAndClamped(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		expectedLimit  int
		expectedOffset int
	}{
		{"Custom values", "?limit=10&offset=30", 10, 30},
		{"Limit capped at maximum", "?limit=5000", maxPaginationLimit, 0},
		{"Non-positive limit falls back", "?limit=0", 20, 0},
		{"Negative offset clamped", "?offset=-5", 20, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/items", func(c *fiber.Ctx) error {
				p := parsePagination(c, 20)
				return c.JSON(fiber.Map{"limit": p.Limit, "offset": p.Offset})
			})

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/items"+tt.query, nil))
			require.NoError(t, err)

			var body map[string]int
			decodeJSON(t, resp, &body)
			assert.Equal(t, tt.expectedLimit, body["limit"])
			assert.Equal(t, tt.expectedOffset, body["offset"])
		})
	}
}

// --- parseID ---

func TestParseID(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		expectedStatus int
	}{
		{"Valid ID", "/items/42", http.StatusOK},
		{"Non-numeric", "/items/abc", http.StatusBadRequest},
		{"Zero", "/items/0", http.StatusBadRequest},
		{"Negative", "/items/-1", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			s := &Server{}
			app.Get("/items/:id", func(c *fiber.Ctx) error {
				id, err := s.parseID(c, "id")
				if err != nil {
					return nil
				}
				return c.JSON(fiber.Map{"id": id})
			})

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tt.path, nil))
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

// --- statusForError ---

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"Unauthenticated", models.NewUnauthenticatedError("no credential"), http.StatusUnauthorized},
		{"Invalid credential", models.NewInvalidCredentialError("bad token"), http.StatusUnauthorized},
		{"Not found", models.NewNotFoundError("Recipe", 1), http.StatusNotFound},
		{"Validation", models.NewValidationError("bad input"), http.StatusBadRequest},
		{"Store unavailable", models.NewStoreUnavailableError(errors.New("down")), http.StatusInternalServerError},
		{"Internal", models.NewInternalError(errors.New("boom")), http.StatusInternalServerError},
		{"Plain error", errors.New("unclassified"), http.StatusInternalServerError},
		{"Wrapped app error", fmt.Errorf("outer: %w", models.NewValidationError("inner")), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, statusForError(tt.err))
		})
	}
}

// --- storeCtx ---

func TestStoreCtx_AppliesConfiguredDeadline(t *testing.T) {
	s, _ := setupTestServer(t)

	before := time.Now()
	ctx, cancel := s.storeCtx(context.Background())
	defer cancel()

	deadline, ok := ctx.Deadline()
	require.True(t, ok, "expected a deadline on store contexts")
	assert.WithinDuration(t, before.Add(s.config.StoreTimeout()), deadline, 100*time.Millisecond)
}

func TestStoreCtx_InheritsCancellation(t *testing.T) {
	s, _ := setupTestServer(t)

	parent, cancelParent := context.WithCancel(context.Background())
	ctx, cancel := s.storeCtx(parent)
	defer cancel()

	cancelParent()
	select {
	case <-ctx.Done():
	default:
		t.Fatal("expected store context to follow parent cancellation")
	}
}
