package repository

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"

	"yatube/internal/models"
)

// ErrNotFound is wrapped by every lookup that matched no row.
var ErrNotFound = errors.New("запись не найдена")

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	VerifyPassword(ctx context.Context, username, password string) (*models.User, error)
	DeleteUser(ctx context.Context, userID string) error
}

type GroupRepository interface {
	Create(ctx context.Context, group *models.Group) error
	GetByID(ctx context.Context, groupID int64) (*models.Group, error)
	GetBySlug(ctx context.Context, slug string) (*models.Group, error)
	List(ctx context.Context) ([]models.Group, error)
	DeleteBySlug(ctx context.Context, slug string) error
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, postID int64) (*models.Post, error)
	CountAll(ctx context.Context) (int, error)
	ListAll(ctx context.Context, limit, offset int) ([]models.Post, error)
	CountByGroup(ctx context.Context, groupID int64) (int, error)
	ListByGroup(ctx context.Context, groupID int64, limit, offset int) ([]models.Post, error)
	CountByAuthor(ctx context.Context, authorID string) (int, error)
	ListByAuthor(ctx context.Context, authorID string, limit, offset int) ([]models.Post, error)
	CountFollowed(ctx context.Context, userID string) (int, error)
	ListFollowed(ctx context.Context, userID string, limit, offset int) ([]models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, postID int64) error
}

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByPostID(ctx context.Context, postID int64) ([]models.Comment, error)
}

type FollowRepository interface {
	Create(ctx context.Context, userID, authorID string) (bool, error)
	Delete(ctx context.Context, userID, authorID string) error
	Exists(ctx context.Context, userID, authorID string) (bool, error)
	CountByUser(ctx context.Context, userID string) (int, error)
}

type TablesRepository interface {
	CountTablesDB() (int, error)
	CountRows(ctx context.Context) (*Stats, error)
}

type Repository struct {
	User    UserRepository
	Group   GroupRepository
	Post    PostRepository
	Comment CommentRepository
	Follow  FollowRepository
	Tables  TablesRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:    NewUserRepository(db),
		Group:   NewGroupRepository(db),
		Post:    NewPostRepository(db),
		Comment: NewCommentRepository(db),
		Follow:  NewFollowRepository(db),
		Tables:  NewTablesRepository(db),
	}
}
