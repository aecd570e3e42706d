package service

import (
	"context"
	"log/slog"

	"yatube/internal/metrics"
	"yatube/internal/models"
	"yatube/internal/policy"
	"yatube/internal/repository"
	"yatube/internal/validation"
)

type CommentService interface {
	AddComment(ctx context.Context, actor *models.Actor, postID int64, form *validation.CommentForm) (*models.Comment, error)
}

type commentService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
}

func NewCommentService(postRepo repository.PostRepository, commentRepo repository.CommentRepository) CommentService {
	return &commentService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
	}
}

func (s *commentService) AddComment(ctx context.Context, actor *models.Actor, postID int64, form *validation.CommentForm) (*models.Comment, error) {
	if !policy.CanComment(actor) {
		return nil, ErrAuthenticationRequired
	}

	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	if errs := form.Validate(); !errs.Empty() {
		return nil, errs
	}

	comment := &models.Comment{
		PostID:         postID,
		AuthorID:       actor.UserID,
		Text:           form.Text,
		AuthorUsername: actor.Username,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "комментарий добавлен", slog.Int64("post_id", postID), slog.Int64("comment_id", comment.CommentID))
	metrics.Mutations.WithLabelValues("comment", "create").Inc()

	return comment, nil
}
