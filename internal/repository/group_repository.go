package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"yatube/internal/models"
)

var ErrSlugTaken = errors.New("группа с таким адресом уже существует")

type groupRepository struct {
	db *sqlx.DB
}

func NewGroupRepository(db *sqlx.DB) GroupRepository {
	return &groupRepository{db: db}
}

func (r *groupRepository) Create(ctx context.Context, group *models.Group) error {
	query := `
		INSERT INTO groups (title, slug, description)
		VALUES ($1, $2, $3)
		RETURNING group_id
	`

	err := r.db.QueryRowxContext(ctx, query, group.Title, group.Slug, group.Description).Scan(&group.GroupID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrSlugTaken
		}
		return fmt.Errorf("ошибка при создании группы: %w", err)
	}

	return nil
}

func (r *groupRepository) GetByID(ctx context.Context, groupID int64) (*models.Group, error) {
	var group models.Group

	err := r.db.GetContext(ctx, &group, `SELECT group_id, title, slug, description FROM groups WHERE group_id = $1`, groupID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("группа с ID %d: %w", groupID, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении группы: %w", err)
	}

	return &group, nil
}

func (r *groupRepository) GetBySlug(ctx context.Context, slug string) (*models.Group, error) {
	var group models.Group

	err := r.db.GetContext(ctx, &group, `SELECT group_id, title, slug, description FROM groups WHERE slug = $1`, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("группа %s: %w", slug, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении группы: %w", err)
	}

	return &group, nil
}

func (r *groupRepository) List(ctx context.Context) ([]models.Group, error) {
	groups := []models.Group{}

	err := r.db.SelectContext(ctx, &groups, `SELECT group_id, title, slug, description FROM groups ORDER BY title`)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении списка групп: %w", err)
	}

	return groups, nil
}

// DeleteBySlug removes the group; its posts keep existing with group_id set to NULL by the FK.
func (r *groupRepository) DeleteBySlug(ctx context.Context, slug string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM groups WHERE slug = $1`, slug)
	if err != nil {
		return fmt.Errorf("ошибка при удалении группы: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("группа %s: %w", slug, ErrNotFound)
	}

	return nil
}
