package server

import (
	"fmt"
	"net/http"
	"testing"

	"ladle/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createRecipeViaAPI(t *testing.T, app *fiber.App, token, name string) models.Recipe {
	t.Helper()

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/recipes/", token, map[string]any{
		"name":        name,
		"ingredients": []string{"2 cups flour", "1 tsp salt"},
		"steps":       []string{"Mix the dry ingredients.", "Bake for 40 minutes."},
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var recipe models.Recipe
	decodeJSON(t, resp, &recipe)
	return recipe
}

func TestCreateRecipe(t *testing.T) {
	s, app := setupTestServer(t)
	user, token := createTestUser(t, s, "Julia Child", "julia@example.com")

	recipe := createRecipeViaAPI(t, app, token, "Boeuf Bourguignon")

	assert.NotZero(t, recipe.ID)
	assert.Equal(t, user.ID, recipe.UserID)
	assert.Equal(t, "Julia Child", recipe.AuthorName)
	assert.Equal(t, "Boeuf Bourguignon", recipe.Name)
	assert.Equal(t, models.StringList{"2 cups flour", "1 tsp salt"}, recipe.Ingredients)
	assert.Zero(t, recipe.LikeCount)
	assert.Zero(t, recipe.CommentCount)
	assert.Zero(t, recipe.ShareCount)
}

func TestCreateRecipe_Validation(t *testing.T) {
	s, app := setupTestServer(t)
	_, token := createTestUser(t, s, "Julia Child", "julia@example.com")

	tests := []struct {
		name string
		body map[string]any
	}{
		{"Blank name", map[string]any{
			"name":        "   ",
			"ingredients": []string{"1 egg"},
			"steps":       []string{"Fry it."},
		}},
		{"No ingredients", map[string]any{
			"name":  "Toast",
			"steps": []string{"Toast it."},
		}},
		{"No steps", map[string]any{
			"name":        "Toast",
			"ingredients": []string{"1 slice bread"},
		}},
		{"Blank ingredient entry", map[string]any{
			"name":        "Toast",
			"ingredients": []string{"1 slice bread", "  "},
			"steps":       []string{"Toast it."},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/recipes/", token, tt.body))
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var body models.ErrorResponse
			decodeJSON(t, resp, &body)
			assert.Equal(t, models.CodeValidation, body.Code)
		})
	}
}

func TestGetRecipes_NewestFirst(t *testing.T) {
	s, app := setupTestServer(t)
	_, token := createTestUser(t, s, "Julia Child", "julia@example.com")

	createRecipeViaAPI(t, app, token, "First Dish")
	createRecipeViaAPI(t, app, token, "Second Dish")
	createRecipeViaAPI(t, app, token, "Third Dish")

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/recipes/", token, nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var recipes []models.Recipe
	decodeJSON(t, resp, &recipes)
	require.Len(t, recipes, 3)
	assert.Equal(t, "Third Dish", recipes[0].Name)
	assert.Equal(t, "First Dish", recipes[2].Name)
}

func TestGetRecipes_Pagination(t *testing.T) {
	s, app := setupTestServer(t)
	_, token := createTestUser(t, s, "Julia Child", "julia@example.com")

	for i := 0; i < 5; i++ {
		createRecipeViaAPI(t, app, token, fmt.Sprintf("Dish %d", i))
	}

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/recipes/?limit=2&offset=1", token, nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var recipes []models.Recipe
	decodeJSON(t, resp, &recipes)
	require.Len(t, recipes, 2)
	assert.Equal(t, "Dish 3", recipes[0].Name)
	assert.Equal(t, "Dish 2", recipes[1].Name)
}

func TestGetRecipe(t *testing.T) {
	s, app := setupTestServer(t)
	_, token := createTestUser(t, s, "Julia Child", "julia@example.com")
	created := createRecipeViaAPI(t, app, token, "Ratatouille")

	resp, err := app.Test(jsonRequest(t, http.MethodGet, fmt.Sprintf("/api/recipes/%d", created.ID), token, nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var recipe models.Recipe
	decodeJSON(t, resp, &recipe)
	assert.Equal(t, created.ID, recipe.ID)
	assert.Equal(t, "Ratatouille", recipe.Name)
}

func TestGetRecipe_NotFound(t *testing.T) {
	s, app := setupTestServer(t)
	_, token := createTestUser(t, s, "Julia Child", "julia@example.com")

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/recipes/9999", token, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body models.ErrorResponse
	decodeJSON(t, resp, &body)
	assert.Equal(t, models.CodeNotFound, body.Code)
}

func TestUpdateCounter(t *testing.T) {
	s, app := setupTestServer(t)
	_, token := createTestUser(t, s, "Julia Child", "julia@example.com")
	recipe := createRecipeViaAPI(t, app, token, "Counted Casserole")

	counterURL := func(kind string) string {
		return fmt.Sprintf("/api/recipes/%d/counters/%s", recipe.ID, kind)
	}

	// Two likes land as a running total.
	resp, err := app.Test(jsonRequest(t, http.MethodPut, counterURL("like"), token, map[string]int{"delta": 2}))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		RecipeID uint   `json:"recipe_id"`
		Kind     string `json:"kind"`
		Count    int64  `json:"count"`
	}
	decodeJSON(t, resp, &body)
	assert.Equal(t, recipe.ID, body.RecipeID)
	assert.Equal(t, "like", body.Kind)
	assert.Equal(t, int64(2), body.Count)

	// An unlike comes back down.
	resp, err = app.Test(jsonRequest(t, http.MethodPut, counterURL("like"), token, map[string]int{"delta": -1}))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeJSON(t, resp, &body)
	assert.Equal(t, int64(1), body.Count)

	// The stored recipe reflects the mutations.
	resp, err = app.Test(jsonRequest(t, http.MethodGet, fmt.Sprintf("/api/recipes/%d", recipe.ID), token, nil))
	require.NoError(t, err)
	var fresh models.Recipe
	decodeJSON(t, resp, &fresh)
	assert.Equal(t, int64(1), fresh.LikeCount)
}

func TestUpdateCounter_Failures(t *testing.T) {
	s, app := setupTestServer(t)
	_, token := createTestUser(t, s, "Julia Child", "julia@example.com")
	recipe := createRecipeViaAPI(t, app, token, "Edge Case Eggs")

	tests := []struct {
		name           string
		url            string
		delta          int
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "Unknown kind",
			url:            fmt.Sprintf("/api/recipes/%d/counters/views", recipe.ID),
			delta:          1,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   models.CodeValidation,
		},
		{
			name:           "Zero delta",
			url:            fmt.Sprintf("/api/recipes/%d/counters/like", recipe.ID),
			delta:          0,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   models.CodeValidation,
		},
		{
			name:           "Decrement below zero",
			url:            fmt.Sprintf("/api/recipes/%d/counters/share", recipe.ID),
			delta:          -1,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   models.CodeValidation,
		},
		{
			name:           "Unknown recipe",
			url:            "/api/recipes/9999/counters/like",
			delta:          1,
			expectedStatus: http.StatusNotFound,
			expectedCode:   models.CodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(jsonRequest(t, http.MethodPut, tt.url, token, map[string]int{"delta": tt.delta}))
			require.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			var body models.ErrorResponse
			decodeJSON(t, resp, &body)
			assert.Equal(t, tt.expectedCode, body.Code)
		})
	}

	// Failed mutations leave the counters untouched.
	resp, err := app.Test(jsonRequest(t, http.MethodGet, fmt.Sprintf("/api/recipes/%d", recipe.ID), token, nil))
	require.NoError(t, err)
	var fresh models.Recipe
	decodeJSON(t, resp, &fresh)
	assert.Zero(t, fresh.LikeCount)
	assert.Zero(t, fresh.ShareCount)
}
