package app

import (
	"context"
	"fmt"
	"log/slog"

	"yatube/internal/cache"
	"yatube/internal/config"
	"yatube/internal/database"
	"yatube/internal/repository"
	"yatube/internal/service"
	"yatube/internal/storage"
)

// App holds the connected dependencies shared by the server and blogctl.
type App struct {
	DB        *database.DB
	Repo      *repository.Repository
	Services  *service.Service
	Storage   storage.Storage
	PageCache cache.Store

	redis *cache.RedisStore
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// connection DB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("не удалось подключиться к БД: %w", err)
	}

	// connection MinIO
	minioClient, err := storage.NewMinIOClient(cfg)
	if err != nil {
		db.CloseDB()
		return nil, fmt.Errorf("не удалось инициализировать MinIO: %w", err)
	}
	if err := minioClient.EnsureBucket(ctx); err != nil {
		slog.WarnContext(ctx, "хранилище картинок недоступно", slog.Any("error", err))
	}

	a := &App{DB: db, Storage: minioClient}
	a.PageCache = a.connectCache(ctx, cfg)

	// enabling dependencies
	a.Repo = repository.NewRepository(db.DB)
	a.Services = service.NewService(a.Repo, cfg, a.Storage, a.PageCache)

	return a, nil
}

// connectCache prefers Redis and falls back to an in-process store.
func (a *App) connectCache(ctx context.Context, cfg *config.Config) cache.Store {
	if cfg.RedisURL == "" {
		slog.InfoContext(ctx, "кэш страниц в памяти процесса")
		return cache.NewMemoryStore()
	}

	store, err := cache.NewRedisStore(ctx, cfg.RedisURL)
	if err != nil {
		slog.WarnContext(ctx, "Redis недоступен, кэш страниц в памяти процесса", slog.Any("error", err))
		return cache.NewMemoryStore()
	}

	slog.InfoContext(ctx, "кэш страниц в Redis")
	a.redis = store
	return store
}

func (a *App) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			slog.Warn("ошибка при закрытии Redis", slog.Any("error", err))
		}
	}
	if err := a.DB.CloseDB(); err != nil {
		slog.Warn("ошибка при закрытии БД", slog.Any("error", err))
	}
}
