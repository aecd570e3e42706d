package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Stats is a row count per blog table.
type Stats struct {
	Users    int `json:"users" db:"users"`
	Groups   int `json:"groups" db:"groups"`
	Posts    int `json:"posts" db:"posts"`
	Comments int `json:"comments" db:"comments"`
	Follows  int `json:"follows" db:"follows"`
}

type tablesRepository struct {
	db *sqlx.DB
}

func NewTablesRepository(db *sqlx.DB) TablesRepository {
	return &tablesRepository{db: db}
}

func (r *tablesRepository) CountTablesDB() (int, error) {
	var count int

	err := r.db.Get(&count, `
			SELECT COUNT(*)
			FROM information_schema.tables
			WHERE table_schema = 'public'
		`)

	if err != nil {
		return 0, fmt.Errorf("ошибка при подсчёте таблиц базы данных: %w", err)
	}

	return count, nil
}

func (r *tablesRepository) CountRows(ctx context.Context) (*Stats, error) {
	var stats Stats

	err := r.db.GetContext(ctx, &stats, `
		SELECT
			(SELECT COUNT(*) FROM users)    AS users,
			(SELECT COUNT(*) FROM groups)   AS groups,
			(SELECT COUNT(*) FROM posts)    AS posts,
			(SELECT COUNT(*) FROM comments) AS comments,
			(SELECT COUNT(*) FROM follows)  AS follows
	`)
	if err != nil {
		return nil, fmt.Errorf("ошибка при подсчёте строк: %w", err)
	}

	return &stats, nil
}
