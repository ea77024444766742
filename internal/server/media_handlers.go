package server

import (
	"io"
	"strings"

	"ladle/internal/models"
	"ladle/internal/service"

	"github.com/gofiber/fiber/v2"
)

// MediaUploadResponse is the API response after uploading a media file.
type MediaUploadResponse struct {
	ID        uint   `json:"id"`
	Key       string `json:"key"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	SizeBytes int64  `json:"size_bytes"`
	MimeType  string `json:"mime_type"`
	URL       string `json:"url"`
}

// UploadMedia handles POST /api/media
// @Summary Upload media
// @Description Upload an image to attach to a recipe; re-uploading identical content returns the existing record
// @Tags media
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image file"
// @Success 201 {object} MediaUploadResponse
// @Failure 400 {object} object{error=string}
// @Security BearerAuth
// @Router /media [post]
func (s *Server) UploadMedia(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	file, err := c.FormFile("file")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("No file uploaded"))
	}

	src, err := file.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Unable to read uploaded file"))
	}
	defer func() { _ = src.Close() }()

	content, err := io.ReadAll(src)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Unable to read uploaded file"))
	}

	ctx, cancel := s.storeCtx(c.UserContext())
	defer cancel()
	uploaded, err := s.mediaService.Upload(ctx, service.UploadMediaInput{
		UserID:      userID,
		Filename:    file.Filename,
		ContentType: file.Header.Get("Content-Type"),
		Content:     content,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(MediaUploadResponse{
		ID:        uploaded.ID,
		Key:       uploaded.Key,
		Width:     uploaded.Width,
		Height:    uploaded.Height,
		SizeBytes: uploaded.SizeBytes,
		MimeType:  uploaded.MimeType,
		URL:       s.mediaService.BuildMediaURL(uploaded.Key),
	})
}

// ServeMedia handles GET /api/media/:key
// @Summary Serve media
// @Tags media
// @Produce jpeg
// @Param key path string true "Content key"
// @Success 200 {file} file
// @Failure 404 {object} object{error=string}
// @Router /media/{key} [get]
func (s *Server) ServeMedia(c *fiber.Ctx) error {
	key := strings.TrimSpace(c.Params("key"))

	ctx, cancel := s.storeCtx(c.UserContext())
	defer cancel()
	media, fullPath, err := s.mediaService.ResolveForServing(ctx, key)
	if err != nil {
		return respondError(c, err)
	}

	c.Set(fiber.HeaderContentType, media.MimeType)
	c.Set(fiber.HeaderCacheControl, "public, max-age=31536000, immutable")
	return c.SendFile(fullPath)
}
