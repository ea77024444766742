package repository

import (
	"context"
	"errors"
	"time"

	"ladle/internal/models"

	"gorm.io/gorm"
)

// MediaRepository defines persistence operations for uploaded media records.
type MediaRepository interface {
	Create(ctx context.Context, media *models.Media) error
	GetByKey(ctx context.Context, key string) (*models.Media, error)
	UpdateLastAccessed(ctx context.Context, key string) error
}

type mediaRepository struct {
	db *gorm.DB
}

// NewMediaRepository returns a new MediaRepository implementation.
func NewMediaRepository(db *gorm.DB) MediaRepository {
	return &mediaRepository{db: db}
}

// Create stores the media record. Re-uploading identical bytes yields the same
// content key; the existing record is kept untouched.
func (r *mediaRepository) Create(ctx context.Context, media *models.Media) error {
	if err := r.db.WithContext(ctx).Create(media).Error; err != nil {
		if isUniqueConstraintError(err) {
			return r.db.WithContext(ctx).
				Where("key = ?", media.Key).
				First(media).Error
		}
		return models.NewInternalError(err)
	}
	return nil
}

// UpdateLastAccessed stamps the record's last read time. UpdateColumn keeps
// UpdatedAt untouched so the stamp never looks like a content change.
func (r *mediaRepository) UpdateLastAccessed(ctx context.Context, key string) error {
	res := r.db.WithContext(ctx).Model(&models.Media{}).
		Where("key = ?", key).
		UpdateColumn("last_accessed_at", time.Now())
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Media", key)
	}
	return nil
}

func (r *mediaRepository) GetByKey(ctx context.Context, key string) (*models.Media, error) {
	var media models.Media
	if err := r.db.WithContext(ctx).Where("key = ?", key).First(&media).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Media", key)
		}
		return nil, models.NewInternalError(err)
	}
	return &media, nil
}
