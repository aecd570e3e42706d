package service

import (
	"context"
	"fmt"
	"log/slog"

	"yatube/internal/cache"
	"yatube/internal/models"
	"yatube/internal/paginator"
	"yatube/internal/repository"
)

type PostPage = paginator.Page[models.Post]

// Profile is an author page: the author, their posts and whether the viewer follows them.
type Profile struct {
	Author    *models.User
	PostCount int
	Following bool
	Page      *PostPage
}

type FeedService interface {
	ListAll(ctx context.Context, rawPage string) (*PostPage, error)
	ListByGroup(ctx context.Context, slug, rawPage string) (*models.Group, *PostPage, error)
	ListByAuthor(ctx context.Context, actor *models.Actor, username, rawPage string) (*Profile, error)
	ListFollowed(ctx context.Context, actor *models.Actor, rawPage string) (*PostPage, error)
	InvalidateIndex(ctx context.Context) error
}

type feedService struct {
	postRepo   repository.PostRepository
	groupRepo  repository.GroupRepository
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
	pageCache  cache.Store
	perPage    int
}

func NewFeedService(
	postRepo repository.PostRepository,
	groupRepo repository.GroupRepository,
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
	pageCache cache.Store,
	perPage int,
) FeedService {
	return &feedService{
		postRepo:   postRepo,
		groupRepo:  groupRepo,
		userRepo:   userRepo,
		followRepo: followRepo,
		pageCache:  pageCache,
		perPage:    perPage,
	}
}

// page counts the rows, resolves the requested page and fetches it.
func (s *feedService) page(
	ctx context.Context,
	rawPage string,
	count func() (int, error),
	list func(limit, offset int) ([]models.Post, error),
) (*PostPage, error) {
	total, err := count()
	if err != nil {
		return nil, err
	}

	page := paginator.New[models.Post](total, s.perPage, rawPage)
	if total == 0 {
		page.Items = []models.Post{}
		return page, nil
	}

	page.Items, err = list(page.Limit(), page.Offset())
	if err != nil {
		return nil, err
	}

	return page, nil
}

func (s *feedService) ListAll(ctx context.Context, rawPage string) (*PostPage, error) {
	return s.page(ctx, rawPage,
		func() (int, error) { return s.postRepo.CountAll(ctx) },
		func(limit, offset int) ([]models.Post, error) { return s.postRepo.ListAll(ctx, limit, offset) },
	)
}

func (s *feedService) ListByGroup(ctx context.Context, slug, rawPage string) (*models.Group, *PostPage, error) {
	group, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}

	page, err := s.page(ctx, rawPage,
		func() (int, error) { return s.postRepo.CountByGroup(ctx, group.GroupID) },
		func(limit, offset int) ([]models.Post, error) {
			return s.postRepo.ListByGroup(ctx, group.GroupID, limit, offset)
		},
	)
	if err != nil {
		return nil, nil, err
	}

	return group, page, nil
}

func (s *feedService) ListByAuthor(ctx context.Context, actor *models.Actor, username, rawPage string) (*Profile, error) {
	author, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	page, err := s.page(ctx, rawPage,
		func() (int, error) { return s.postRepo.CountByAuthor(ctx, author.UserID) },
		func(limit, offset int) ([]models.Post, error) {
			return s.postRepo.ListByAuthor(ctx, author.UserID, limit, offset)
		},
	)
	if err != nil {
		return nil, err
	}

	following := false
	if actor.IsAuthenticated() && actor.UserID != author.UserID {
		following, err = s.followRepo.Exists(ctx, actor.UserID, author.UserID)
		if err != nil {
			return nil, err
		}
	}

	return &Profile{
		Author:    author,
		PostCount: page.TotalCount,
		Following: following,
		Page:      page,
	}, nil
}

func (s *feedService) ListFollowed(ctx context.Context, actor *models.Actor, rawPage string) (*PostPage, error) {
	if !actor.IsAuthenticated() {
		return nil, ErrAuthenticationRequired
	}

	return s.page(ctx, rawPage,
		func() (int, error) { return s.postRepo.CountFollowed(ctx, actor.UserID) },
		func(limit, offset int) ([]models.Post, error) {
			return s.postRepo.ListFollowed(ctx, actor.UserID, limit, offset)
		},
	)
}

// InvalidateIndex drops every cached page so the next request renders fresh data.
func (s *feedService) InvalidateIndex(ctx context.Context) error {
	if s.pageCache == nil {
		return nil
	}

	if err := s.pageCache.Clear(ctx); err != nil {
		return fmt.Errorf("ошибка очистки кэша страниц: %w", err)
	}

	slog.InfoContext(ctx, "кэш страниц очищен")
	return nil
}
