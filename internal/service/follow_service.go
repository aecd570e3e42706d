package service

import (
	"context"
	"log/slog"

	"yatube/internal/metrics"
	"yatube/internal/models"
	"yatube/internal/policy"
	"yatube/internal/repository"
)

type FollowService interface {
	Follow(ctx context.Context, actor *models.Actor, username string) error
	Unfollow(ctx context.Context, actor *models.Actor, username string) error
}

type followService struct {
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
}

func NewFollowService(userRepo repository.UserRepository, followRepo repository.FollowRepository) FollowService {
	return &followService{
		userRepo:   userRepo,
		followRepo: followRepo,
	}
}

// Follow subscribes the actor to username. Following yourself or following twice changes nothing.
func (s *followService) Follow(ctx context.Context, actor *models.Actor, username string) error {
	if !policy.CanFollow(actor) {
		return ErrAuthenticationRequired
	}

	author, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return err
	}

	if author.UserID == actor.UserID {
		return nil
	}

	created, err := s.followRepo.Create(ctx, actor.UserID, author.UserID)
	if err != nil {
		return err
	}

	if created {
		slog.InfoContext(ctx, "подписка оформлена", slog.String("author", username))
		metrics.Mutations.WithLabelValues("follow", "create").Inc()
	}

	return nil
}

func (s *followService) Unfollow(ctx context.Context, actor *models.Actor, username string) error {
	if !policy.CanFollow(actor) {
		return ErrAuthenticationRequired
	}

	author, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return err
	}

	if err := s.followRepo.Delete(ctx, actor.UserID, author.UserID); err != nil {
		return err
	}

	metrics.Mutations.WithLabelValues("follow", "delete").Inc()
	return nil
}
