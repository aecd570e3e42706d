package service

import (
	"context"

	"yatube/internal/repository"
)

// Health is the database summary reported by /health and blogctl stats.
type Health struct {
	Tables int               `json:"tables"`
	Rows   *repository.Stats `json:"rows"`
}

type TablesService interface {
	GetHealth(ctx context.Context) (*Health, error)
}

type tablesService struct {
	tablesRepo repository.TablesRepository
}

func NewTablesService(tablesRepo repository.TablesRepository) TablesService {
	return &tablesService{tablesRepo: tablesRepo}
}

func (t *tablesService) GetHealth(ctx context.Context) (*Health, error) {
	countTables, err := t.tablesRepo.CountTablesDB()
	if err != nil {
		return nil, err
	}

	rows, err := t.tablesRepo.CountRows(ctx)
	if err != nil {
		return nil, err
	}

	return &Health{Tables: countTables, Rows: rows}, nil
}
