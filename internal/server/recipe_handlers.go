// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"time"

	"ladle/internal/middleware"
	"ladle/internal/models"
	"ladle/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateRecipe handles POST /api/recipes
// @Summary Create recipe
// @Description Submit a new recipe with ordered ingredients and steps
// @Tags recipes
// @Accept json
// @Produce json
// @Param request body object{name=string,ingredients=[]string,steps=[]string,media_refs=[]string} true "Recipe submission"
// @Success 201 {object} models.Recipe
// @Failure 400 {object} object{error=string}
// @Security BearerAuth
// @Router /recipes [post]
func (s *Server) CreateRecipe(c *fiber.Ctx) error {
	ctx, cancel := s.storeCtx(c.UserContext())
	defer cancel()
	userID := c.Locals("userID").(uint)

	var req struct {
		Name        string   `json:"name"`
		Ingredients []string `json:"ingredients"`
		Steps       []string `json:"steps"`
		MediaRefs   []string `json:"media_refs,omitempty"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	recipe, err := s.recipeService.CreateRecipe(ctx, service.CreateRecipeInput{
		UserID:      userID,
		Name:        req.Name,
		Ingredients: req.Ingredients,
		Steps:       req.Steps,
		MediaRefs:   req.MediaRefs,
	})
	if err != nil {
		return respondError(c, err)
	}

	s.publishBroadcastEvent(EventRecipeCreated, map[string]interface{}{
		"recipe_id":  recipe.ID,
		"author_id":  recipe.UserID,
		"name":       recipe.Name,
		"created_at": time.Now().UTC().Format(time.RFC3339Nano),
	})

	return c.Status(fiber.StatusCreated).JSON(recipe)
}

// GetRecipes handles GET /api/recipes
// @Summary List recipes
// @Description List recipes newest-first with limit/offset pagination
// @Tags recipes
// @Produce json
// @Param limit query int false "Page size (max 100)"
// @Param offset query int false "Offset"
// @Success 200 {array} models.Recipe
// @Security BearerAuth
// @Router /recipes [get]
func (s *Server) GetRecipes(c *fiber.Ctx) error {
	ctx, cancel := s.storeCtx(c.UserContext())
	defer cancel()
	page := parsePagination(c, 20)

	recipes, err := s.recipeService.ListRecipes(ctx, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(recipes)
}

// GetRecipe handles GET /api/recipes/:id
// @Summary Get recipe
// @Tags recipes
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 200 {object} models.Recipe
// @Failure 404 {object} object{error=string}
// @Security BearerAuth
// @Router /recipes/{id} [get]
func (s *Server) GetRecipe(c *fiber.Ctx) error {
	ctx, cancel := s.storeCtx(c.UserContext())
	defer cancel()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	recipe, err := s.recipeService.GetRecipe(ctx, id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(recipe)
}

// UpdateCounter handles PUT /api/recipes/:id/counters/:kind
// The delta is applied as a single atomic add in the store; the response
// carries the post-mutation count so concurrent writers never observe a lost
// update.
// @Summary Apply counter delta
// @Description Atomically adjust a recipe's like, comment, or share counter
// @Tags recipes
// @Accept json
// @Produce json
// @Param id path int true "Recipe ID"
// @Param kind path string true "Counter kind (like, comment, share)"
// @Param request body object{delta=int} true "Signed delta"
// @Success 200 {object} object{recipe_id=int,kind=string,count=int}
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Security BearerAuth
// @Router /recipes/{id}/counters/{kind} [put]
func (s *Server) UpdateCounter(c *fiber.Ctx) error {
	ctx, cancel := s.storeCtx(c.UserContext())
	defer cancel()
	recipeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	kindParam := c.Params("kind")

	var req struct {
		Delta int64 `json:"delta"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	kind, count, err := s.recipeService.ApplyCounterDelta(ctx, service.CounterDeltaInput{
		RecipeID: recipeID,
		Kind:     kindParam,
		Delta:    req.Delta,
	})
	if err != nil {
		middleware.CounterDeltas.WithLabelValues(kindParam, "error").Inc()
		return respondError(c, err)
	}
	middleware.CounterDeltas.WithLabelValues(string(kind), "ok").Inc()

	s.publishBroadcastEvent(EventCounterUpdated, map[string]interface{}{
		"recipe_id":  recipeID,
		"kind":       string(kind),
		"count":      count,
		"updated_at": time.Now().UTC().Format(time.RFC3339Nano),
	})

	return c.JSON(fiber.Map{
		"recipe_id": recipeID,
		"kind":      string(kind),
		"count":     count,
	})
}
