package service

import (
	"context"
	"log/slog"

	"yatube/internal/metrics"
	"yatube/internal/models"
	"yatube/internal/repository"
)

type UserService interface {
	GetUser(ctx context.Context, username string) (*models.User, error)
	DeleteUser(ctx context.Context, username string) error
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{
		userRepo: userRepo,
	}
}

func (s *userService) GetUser(ctx context.Context, username string) (*models.User, error) {
	return s.userRepo.GetUserByUsername(ctx, username)
}

// DeleteUser removes the user together with their posts, comments and follow edges.
func (s *userService) DeleteUser(ctx context.Context, username string) error {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return err
	}

	if err := s.userRepo.DeleteUser(ctx, user.UserID); err != nil {
		return err
	}

	slog.InfoContext(ctx, "пользователь удалён", slog.String("username", username))
	metrics.Mutations.WithLabelValues("user", "delete").Inc()
	return nil
}
