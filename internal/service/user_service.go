package service

import (
	"context"
	"errors"

	"ladle/internal/cache"
	"ladle/internal/models"
	"ladle/internal/repository"
)

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// GetFullName returns the display name for a user. An unknown user yields an
// empty string rather than an error; clients render it as an anonymous author.
func (s *UserService) GetFullName(ctx context.Context, id uint) (string, error) {
	var name string
	err := cache.Aside(ctx, cache.UserNameKey(id), &name, cache.UserNameTTL, func() error {
		user, err := s.userRepo.GetByID(ctx, id)
		if err != nil {
			var appErr *models.AppError
			if errors.As(err, &appErr) && appErr.Code == models.CodeNotFound {
				name = ""
				return nil
			}
			return err
		}
		name = user.FullName
		return nil
	})
	if err != nil {
		return "", err
	}
	return name, nil
}
