package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"yatube/internal/config"
	"yatube/internal/metrics"
	"yatube/internal/models"
	"yatube/internal/policy"
	"yatube/internal/repository"
	"yatube/internal/storage"
	"yatube/internal/validation"
)

// PostDetail is everything the post page shows.
type PostDetail struct {
	Post            *models.Post
	AuthorPostCount int
	Comments        []models.Comment
	CanEdit         bool
}

type PostService interface {
	GetPost(ctx context.Context, postID int64) (*models.Post, error)
	GetPostDetail(ctx context.Context, actor *models.Actor, postID int64) (*PostDetail, error)
	CreatePost(ctx context.Context, actor *models.Actor, form *validation.PostForm, image *validation.ImageUpload) (*models.Post, error)
	EditPost(ctx context.Context, actor *models.Actor, postID int64, form *validation.PostForm, image *validation.ImageUpload) (*models.Post, error)
	DeletePost(ctx context.Context, postID int64) error
}

type postService struct {
	postRepo    repository.PostRepository
	groupRepo   repository.GroupRepository
	commentRepo repository.CommentRepository
	storage     storage.Storage
	feed        FeedService
	cfg         *config.Config
}

func NewPostService(
	postRepo repository.PostRepository,
	groupRepo repository.GroupRepository,
	commentRepo repository.CommentRepository,
	storage storage.Storage,
	feed FeedService,
	cfg *config.Config,
) PostService {
	return &postService{
		postRepo:    postRepo,
		groupRepo:   groupRepo,
		commentRepo: commentRepo,
		storage:     storage,
		feed:        feed,
		cfg:         cfg,
	}
}

func (p *postService) GetPost(ctx context.Context, postID int64) (*models.Post, error) {
	return p.postRepo.GetByID(ctx, postID)
}

func (p *postService) GetPostDetail(ctx context.Context, actor *models.Actor, postID int64) (*PostDetail, error) {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	count, err := p.postRepo.CountByAuthor(ctx, post.AuthorID)
	if err != nil {
		return nil, err
	}

	comments, err := p.commentRepo.GetByPostID(ctx, postID)
	if err != nil {
		return nil, err
	}

	return &PostDetail{
		Post:            post,
		AuthorPostCount: count,
		Comments:        comments,
		CanEdit:         policy.CanEdit(actor, post),
	}, nil
}

// validate checks the form, the image and that the chosen group exists.
func (p *postService) validate(ctx context.Context, form *validation.PostForm, image *validation.ImageUpload) error {
	errs := form.Validate()

	if image != nil {
		for field, messages := range validation.ValidateImage(image, p.cfg.MaxUploadSize) {
			for _, message := range messages {
				errs.Add(field, message)
			}
		}
	}

	if groupID := form.GroupID(); groupID.Valid && !errs.Has("group") {
		_, err := p.groupRepo.GetByID(ctx, groupID.Int64)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			errs.Add("group", validation.InvalidChoice)
		case err != nil:
			return err
		}
	}

	if !errs.Empty() {
		return errs
	}
	return nil
}

func (p *postService) uploadImage(ctx context.Context, authorID string, image *validation.ImageUpload) (string, error) {
	if image == nil {
		return "", nil
	}

	// the stored extension follows the detected type, not the client's file name
	fileName := strings.TrimSuffix(image.FileName, path.Ext(image.FileName)) + image.Extension

	objectName, err := p.storage.UploadImage(ctx, authorID, fileName,
		bytes.NewReader(image.Data), image.Size(), image.ContentType)
	if err != nil {
		return "", fmt.Errorf("ошибка загрузки изображения: %w", err)
	}

	return objectName, nil
}

// discardImage removes an uploaded object that no post references any more.
func (p *postService) discardImage(ctx context.Context, objectName string) {
	if objectName == "" {
		return
	}
	if err := p.storage.DeleteImage(ctx, objectName); err != nil {
		slog.WarnContext(ctx, "не удалось удалить картинку из хранилища",
			slog.String("object", objectName), slog.Any("error", err))
	}
}

func (p *postService) afterWrite(ctx context.Context, action string) {
	metrics.Mutations.WithLabelValues("post", action).Inc()

	if !p.cfg.Feed.InvalidateOnWrite {
		return
	}
	if err := p.feed.InvalidateIndex(ctx); err != nil {
		slog.WarnContext(ctx, "не удалось сбросить кэш ленты", slog.Any("error", err))
	}
}

func (p *postService) CreatePost(ctx context.Context, actor *models.Actor, form *validation.PostForm, image *validation.ImageUpload) (*models.Post, error) {
	if !policy.CanCreate(actor) {
		return nil, ErrAuthenticationRequired
	}

	if err := p.validate(ctx, form, image); err != nil {
		return nil, err
	}

	objectName, err := p.uploadImage(ctx, actor.UserID, image)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Text:     form.Text,
		AuthorID: actor.UserID,
		GroupID:  form.GroupID(),
	}
	if objectName != "" {
		post.Image.String, post.Image.Valid = objectName, true
	}

	if err := p.postRepo.Create(ctx, post); err != nil {
		p.discardImage(ctx, objectName)
		if errors.Is(err, repository.ErrUnknownGroup) {
			return nil, validation.Errors{"group": {validation.InvalidChoice}}
		}
		return nil, err
	}

	slog.InfoContext(ctx, "пост создан", slog.Int64("post_id", post.PostID))
	p.afterWrite(ctx, "create")

	return post, nil
}

// EditPost replaces text, group and image of an existing post in one statement.
// Without a new image the old one is kept unless the form asks to clear it.
func (p *postService) EditPost(ctx context.Context, actor *models.Actor, postID int64, form *validation.PostForm, image *validation.ImageUpload) (*models.Post, error) {
	if !actor.IsAuthenticated() {
		return nil, ErrAuthenticationRequired
	}

	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if !policy.CanEdit(actor, post) {
		return post, ErrAuthorizationDenied
	}

	if err := p.validate(ctx, form, image); err != nil {
		return post, err
	}

	objectName, err := p.uploadImage(ctx, actor.UserID, image)
	if err != nil {
		return post, err
	}

	previous := post.Image
	updated := *post
	updated.Text = form.Text
	updated.GroupID = form.GroupID()
	switch {
	case objectName != "":
		updated.Image.String, updated.Image.Valid = objectName, true
	case form.ClearImage:
		updated.Image.String, updated.Image.Valid = "", false
	}

	if err := p.postRepo.Update(ctx, &updated); err != nil {
		p.discardImage(ctx, objectName)
		if errors.Is(err, repository.ErrUnknownGroup) {
			return post, validation.Errors{"group": {validation.InvalidChoice}}
		}
		return post, err
	}

	if previous.Valid && previous.String != updated.Image.String {
		p.discardImage(ctx, previous.String)
	}

	slog.InfoContext(ctx, "пост изменён", slog.Int64("post_id", postID))
	p.afterWrite(ctx, "edit")

	return &updated, nil
}

func (p *postService) DeletePost(ctx context.Context, postID int64) error {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if err := p.postRepo.Delete(ctx, postID); err != nil {
		return err
	}

	if post.Image.Valid {
		p.discardImage(ctx, post.Image.String)
	}

	p.afterWrite(ctx, "delete")
	return nil
}
