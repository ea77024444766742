package server

import (
	"time"

	"ladle/internal/middleware"
	"ladle/internal/models"
	"ladle/internal/observability"
	"ladle/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateComment handles POST /api/recipes/:id/comments
// The comment insert and the comment_count bump are two separate store writes.
// If the bump fails after the insert succeeded, the comment stands and the
// gap is logged and counted; the ledger favors keeping user content over
// keeping the counter exact.
// @Summary Create comment
// @Description Append a comment to a recipe
// @Tags comments
// @Accept json
// @Produce json
// @Param id path int true "Recipe ID"
// @Param request body object{text=string} true "Comment body"
// @Success 201 {object} models.Comment
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Security BearerAuth
// @Router /recipes/{id}/comments [post]
func (s *Server) CreateComment(c *fiber.Ctx) error {
	ctx, cancel := s.storeCtx(c.UserContext())
	defer cancel()
	userID := c.Locals("userID").(uint)
	recipeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.CreateComment(ctx, service.CreateCommentInput{
		UserID:   userID,
		RecipeID: recipeID,
		Text:     req.Text,
	})
	if err != nil {
		return respondError(c, err)
	}

	// Bump the denormalized comment_count as its own atomic add.
	_, count, bumpErr := s.recipeService.ApplyCounterDelta(ctx, service.CounterDeltaInput{
		RecipeID: recipeID,
		Kind:     string(models.CounterComment),
		Delta:    1,
	})
	if bumpErr != nil {
		observability.CommentBacklogGap.Inc()
		middleware.Logger.ErrorContext(c.UserContext(),
			"comment stored but comment_count bump failed",
			"recipe_id", recipeID,
			"comment_id", comment.ID,
			"error", bumpErr)
	}

	payload := map[string]interface{}{
		"recipe_id":  recipeID,
		"comment_id": comment.ID,
		"author_id":  comment.UserID,
		"created_at": time.Now().UTC().Format(time.RFC3339Nano),
	}
	if bumpErr == nil {
		payload["comment_count"] = count
	}
	s.publishBroadcastEvent(EventCommentCreated, payload)

	return c.Status(fiber.StatusCreated).JSON(comment)
}

// GetComments handles GET /api/recipes/:id/comments
// @Summary List comments
// @Description List a recipe's comments newest-first
// @Tags comments
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 200 {array} models.Comment
// @Security BearerAuth
// @Router /recipes/{id}/comments [get]
func (s *Server) GetComments(c *fiber.Ctx) error {
	ctx, cancel := s.storeCtx(c.UserContext())
	defer cancel()
	recipeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	comments, err := s.commentService.ListComments(ctx, recipeID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(comments)
}
