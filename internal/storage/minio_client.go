package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"yatube/internal/config"
)

// Storage keeps post images. Objects are addressed by the name returned from UploadImage.
type Storage interface {
	UploadImage(ctx context.Context, authorID, fileName string, file io.Reader, size int64, contentType string) (string, error)
	DeleteImage(ctx context.Context, objectName string) error
	GetImageURL(ctx context.Context, objectName string) (string, error)
}

type MinIOClient struct {
	client *minio.Client
	config config.MinIO
}

func NewMinIOClient(cfg *config.Config) (*MinIOClient, error) {
	client, err := minio.New(cfg.MinIO.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
		Secure: cfg.MinIO.UseSSL,
		Region: cfg.MinIO.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка создания клиента MinIO: %w", err)
	}

	return &MinIOClient{client: client, config: cfg.MinIO}, nil
}

// EnsureBucket creates the image bucket on first start.
func (m *MinIOClient) EnsureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.config.BucketName)
	if err != nil {
		return fmt.Errorf("ошибка проверки бакета %s: %w", m.config.BucketName, err)
	}
	if exists {
		return nil
	}

	err = m.client.MakeBucket(ctx, m.config.BucketName, minio.MakeBucketOptions{Region: m.config.Region})
	if err != nil {
		return fmt.Errorf("ошибка создания бакета %s: %w", m.config.BucketName, err)
	}

	slog.InfoContext(ctx, "создан бакет для картинок", slog.String("bucket", m.config.BucketName))
	return nil
}

func (m *MinIOClient) UploadImage(ctx context.Context, authorID, fileName string, file io.Reader, size int64, contentType string) (string, error) {
	now := time.Now()
	objectName := ObjectName(authorID, path.Ext(fileName), now)

	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := m.client.PutObject(ctx, m.config.BucketName, objectName, file, size,
		minio.PutObjectOptions{
			ContentType: contentType,
			UserMetadata: map[string]string{
				"original-filename": url.PathEscape(fileName),
				"author-id":         authorID,
				"uploaded-at":       now.Format(time.RFC3339),
			},
		})
	if err != nil {
		return "", fmt.Errorf("ошибка загрузки в MinIO: %w", err)
	}

	return objectName, nil
}

func (m *MinIOClient) DeleteImage(ctx context.Context, objectName string) error {
	err := m.client.RemoveObject(ctx, m.config.BucketName, objectName,
		minio.RemoveObjectOptions{
			GovernanceBypass: true,
		})
	if err != nil {
		return fmt.Errorf("ошибка удаления из MinIO: %w", err)
	}
	return nil
}

// GetImageURL returns a presigned GET URL valid for the configured expiry.
func (m *MinIOClient) GetImageURL(ctx context.Context, objectName string) (string, error) {
	u, err := m.client.PresignedGetObject(ctx, m.config.BucketName, objectName, m.config.URLExpiry, nil)
	if err != nil {
		return "", fmt.Errorf("ошибка получения ссылки на картинку: %w", err)
	}
	return u.String(), nil
}

// ObjectName lays images out as posts/<author>/<year>/<month>/<uuid><ext>.
func ObjectName(authorID, ext string, now time.Time) string {
	ext = strings.ToLower(ext)
	if ext == "" {
		ext = ".jpg"
	}

	return fmt.Sprintf("posts/%s/%d/%02d/%s%s",
		authorID,
		now.Year(),
		now.Month(),
		uuid.New().String(),
		ext)
}
