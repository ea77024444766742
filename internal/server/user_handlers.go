package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetUserFullName handles GET /api/users/:id/fullname
// Returns the display name as plain text. An unknown user yields an empty
// body with 200 so feed clients can render a blank author without branching.
// @Summary Get user display name
// @Tags users
// @Produce plain
// @Param id path int true "User ID"
// @Success 200 {string} string
// @Security BearerAuth
// @Router /users/{id}/fullname [get]
func (s *Server) GetUserFullName(c *fiber.Ctx) error {
	ctx, cancel := s.storeCtx(c.UserContext())
	defer cancel()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	name, err := s.userService.GetFullName(ctx, id)
	if err != nil {
		return respondError(c, err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.SendString(name)
}
