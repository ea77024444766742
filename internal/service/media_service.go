package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	"image/jpeg"
	"log"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"ladle/internal/config"
	"ladle/internal/models"
	"ladle/internal/repository"

	"github.com/chai2010/webp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

const (
	DefaultMediaDir = "/tmp/ladle/media"
	MasterMaxSize   = 2048
	JPEGQuality     = 82
	WebPQuality     = 70
)

type UploadMediaInput struct {
	UserID      uint
	Filename    string
	ContentType string
	Content     []byte
}

type MediaService struct {
	repo     repository.MediaRepository
	dir      string
	maxBytes int64
}

func NewMediaService(repo repository.MediaRepository, cfg *config.Config) *MediaService {
	dir := DefaultMediaDir
	var maxBytes int64 = 10 << 20

	if cfg != nil {
		if cfg.MediaDir != "" {
			dir = cfg.MediaDir
		}
		if cfg.MediaMaxBytes > 0 {
			maxBytes = cfg.MediaMaxBytes
		}
	}

	return &MediaService{
		repo:     repo,
		dir:      dir,
		maxBytes: maxBytes,
	}
}

// Upload validates and normalizes an image, writes JPEG and WebP master
// encodes to disk under a content-derived key, and records it. Uploading the
// same bytes twice returns the existing record.
func (s *MediaService) Upload(ctx context.Context, in UploadMediaInput) (*models.Media, error) {
	if in.UserID == 0 {
		return nil, models.NewValidationError("Invalid user")
	}
	if len(in.Content) == 0 {
		return nil, models.NewValidationError("No file uploaded")
	}
	if int64(len(in.Content)) > s.maxBytes {
		return nil, models.NewValidationError(fmt.Sprintf("File too large (max %d bytes)", s.maxBytes))
	}

	detectedType := http.DetectContentType(in.Content)
	if !isAllowedImageMIME(detectedType) {
		return nil, models.NewValidationError("Invalid image type")
	}

	decoded, format, err := image.Decode(bytes.NewReader(in.Content))
	if err != nil {
		return nil, models.NewValidationError("Invalid image file")
	}
	if !isSupportedDecodedFormat(format) {
		return nil, models.NewValidationError("Unsupported image format")
	}

	master := resizeToFit(decoded, MasterMaxSize, MasterMaxSize)

	masterJPG, err := encodeJPEG(master, JPEGQuality)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	masterWebP, err := encodeWebP(master, WebPQuality)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	key := contentKey(masterJPG)
	jpgAbs := filepath.Join(s.dir, key, "master.jpg")
	webpAbs := filepath.Join(s.dir, key, "master.webp")

	if err := writeBytesToFile(jpgAbs, masterJPG); err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := writeBytesToFile(webpAbs, masterWebP); err != nil {
		_ = os.Remove(jpgAbs)
		return nil, models.NewInternalError(err)
	}

	bounds := master.Bounds()
	record := &models.Media{
		Key:          key,
		UserID:       in.UserID,
		OriginalName: in.Filename,
		MimeType:     "image/jpeg",
		SizeBytes:    int64(len(masterJPG)),
		Width:        bounds.Dx(),
		Height:       bounds.Dy(),
	}
	if err := s.repo.Create(ctx, record); err != nil {
		_ = os.Remove(jpgAbs)
		_ = os.Remove(webpAbs)
		return nil, err
	}

	return record, nil
}

// ResolveForServing resolves a media key to the master JPEG on disk and stamps
// the record's last access time.
func (s *MediaService) ResolveForServing(ctx context.Context, key string) (*models.Media, string, error) {
	if !isValidMediaKey(key) {
		return nil, "", models.NewValidationError("Invalid media key")
	}
	media, err := s.repo.GetByKey(ctx, key)
	if err != nil {
		return nil, "", err
	}
	fullPath := filepath.Join(s.dir, key, "master.jpg")
	if _, err := os.Stat(fullPath); err != nil {
		if os.IsNotExist(err) {
			return nil, "", models.NewNotFoundError("Media", key)
		}
		return nil, "", models.NewInternalError(err)
	}

	// Best-effort touch; a failed stamp never blocks the response.
	if err := s.repo.UpdateLastAccessed(ctx, key); err != nil {
		log.Printf("failed to stamp last access for media %s: %v", key, err)
	}

	return media, fullPath, nil
}

// BuildMediaURL returns the canonical serving URL for a media key.
func (s *MediaService) BuildMediaURL(key string) string {
	return fmt.Sprintf("/api/media/%s", key)
}

// isValidMediaKey checks that the key is strictly lowercase hex (SHA-256
// style). This prevents path traversal via crafted key parameters.
func isValidMediaKey(key string) bool {
	if len(key) == 0 || len(key) > 128 {
		return false
	}
	for _, c := range key {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

func resizeToFit(src image.Image, maxWidth, maxHeight int) image.Image {
	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	if w <= 0 || h <= 0 {
		return src
	}
	if w <= maxWidth && h <= maxHeight {
		return src
	}

	scaleW := float64(maxWidth) / float64(w)
	scaleH := float64(maxHeight) / float64(h)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}
	newW := int(float64(w) * scale)
	newH := int(float64(h) * scale)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
	return dst
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeWebP(img image.Image, quality int) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := webp.Encode(buf, img, &webp.Options{Quality: float32(quality)}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func isAllowedImageMIME(contentType string) bool {
	switch normalizeContentType(contentType) {
	case "image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp":
		return true
	default:
		return false
	}
}

func normalizeContentType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return strings.ToLower(strings.TrimSpace(mediaType))
}

func isSupportedDecodedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "jpeg", "jpg", "png", "gif", "webp":
		return true
	default:
		return false
	}
}

func contentKey(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

func writeBytesToFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
