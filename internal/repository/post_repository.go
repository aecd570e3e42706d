package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"yatube/internal/models"
)

// ErrUnknownGroup is returned when a post references a group that does not exist.
var ErrUnknownGroup = errors.New("группа не существует")

const selectPosts = `
	SELECT p.post_id, p.text, p.created_at, p.author_id, p.group_id, p.image,
	       u.username AS author_username, u.first_name AS author_first_name, u.last_name AS author_last_name,
	       g.title AS group_title, g.slug AS group_slug
	FROM posts p
	JOIN users u ON u.user_id = p.author_id
	LEFT JOIN groups g ON g.group_id = p.group_id
`

const orderPosts = ` ORDER BY p.created_at DESC, p.post_id DESC`

type PostRepositoryImpl struct {
	DB *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) *PostRepositoryImpl {
	return &PostRepositoryImpl{DB: db}
}

func (r *PostRepositoryImpl) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (text, author_id, group_id, image)
		VALUES ($1, $2, $3, $4)
		RETURNING post_id, created_at
	`

	err := r.DB.QueryRowxContext(ctx, query, post.Text, post.AuthorID, post.GroupID, post.Image).
		Scan(&post.PostID, &post.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrUnknownGroup
		}
		return fmt.Errorf("ошибка при создании поста: %w", err)
	}

	return nil
}

func (r *PostRepositoryImpl) GetByID(ctx context.Context, postID int64) (*models.Post, error) {
	var post models.Post

	err := r.DB.GetContext(ctx, &post, selectPosts+` WHERE p.post_id = $1`, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("пост с ID %d: %w", postID, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении поста: %w", err)
	}

	return &post, nil
}

func (r *PostRepositoryImpl) CountAll(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM posts`)
}

func (r *PostRepositoryImpl) ListAll(ctx context.Context, limit, offset int) ([]models.Post, error) {
	return r.list(ctx, selectPosts+orderPosts+` LIMIT $1 OFFSET $2`, limit, offset)
}

func (r *PostRepositoryImpl) CountByGroup(ctx context.Context, groupID int64) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM posts WHERE group_id = $1`, groupID)
}

func (r *PostRepositoryImpl) ListByGroup(ctx context.Context, groupID int64, limit, offset int) ([]models.Post, error) {
	return r.list(ctx, selectPosts+` WHERE p.group_id = $1`+orderPosts+` LIMIT $2 OFFSET $3`, groupID, limit, offset)
}

func (r *PostRepositoryImpl) CountByAuthor(ctx context.Context, authorID string) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM posts WHERE author_id = $1`, authorID)
}

func (r *PostRepositoryImpl) ListByAuthor(ctx context.Context, authorID string, limit, offset int) ([]models.Post, error) {
	return r.list(ctx, selectPosts+` WHERE p.author_id = $1`+orderPosts+` LIMIT $2 OFFSET $3`, authorID, limit, offset)
}

func (r *PostRepositoryImpl) CountFollowed(ctx context.Context, userID string) (int, error) {
	return r.count(ctx, `
		SELECT COUNT(*) FROM posts
		WHERE author_id IN (SELECT author_id FROM follows WHERE user_id = $1)
	`, userID)
}

func (r *PostRepositoryImpl) ListFollowed(ctx context.Context, userID string, limit, offset int) ([]models.Post, error) {
	return r.list(ctx, selectPosts+
		` WHERE p.author_id IN (SELECT author_id FROM follows WHERE user_id = $1)`+
		orderPosts+` LIMIT $2 OFFSET $3`, userID, limit, offset)
}

// Update writes text, group and image in one statement; created_at and author are never touched.
func (r *PostRepositoryImpl) Update(ctx context.Context, post *models.Post) error {
	query := `
		UPDATE posts SET
			text = $1,
			group_id = $2,
			image = $3
		WHERE post_id = $4 AND author_id = $5
	`

	result, err := r.DB.ExecContext(ctx, query, post.Text, post.GroupID, post.Image, post.PostID, post.AuthorID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrUnknownGroup
		}
		return fmt.Errorf("ошибка при обновлении поста: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("пост с ID %d: %w", post.PostID, ErrNotFound)
	}

	return nil
}

func (r *PostRepositoryImpl) Delete(ctx context.Context, postID int64) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM posts WHERE post_id = $1`, postID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении поста: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("пост с ID %d: %w", postID, ErrNotFound)
	}

	return nil
}

func (r *PostRepositoryImpl) count(ctx context.Context, query string, args ...any) (int, error) {
	var count int
	if err := r.DB.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("ошибка при подсчёте постов: %w", err)
	}
	return count, nil
}

func (r *PostRepositoryImpl) list(ctx context.Context, query string, args ...any) ([]models.Post, error) {
	posts := []models.Post{}
	if err := r.DB.SelectContext(ctx, &posts, query, args...); err != nil {
		return nil, fmt.Errorf("ошибка при получении постов: %w", err)
	}
	return posts, nil
}
