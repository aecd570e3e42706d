package storage

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yatube/internal/config"
)

func TestObjectName(t *testing.T) {
	now := time.Date(2024, 3, 8, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		ext      string
		expected string
	}{
		{name: "Расширение в нижнем регистре", ext: ".GIF", expected: `^posts/author-1/2024/03/[0-9a-f-]{36}\.gif$`},
		{name: "Без расширения", ext: "", expected: `^posts/author-1/2024/03/[0-9a-f-]{36}\.jpg$`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Regexp(t, regexp.MustCompile(tt.expected), ObjectName("author-1", tt.ext, now))
		})
	}

	assert.NotEqual(t, ObjectName("a", ".png", now), ObjectName("a", ".png", now))
}

func TestMinIOClient_GetImageURL(t *testing.T) {
	cfg := &config.Config{MinIO: config.MinIO{
		Endpoint:   "localhost:9000",
		AccessKey:  "minioadmin",
		SecretKey:  "minioadmin",
		BucketName: "posts",
		Region:     "us-east-1",
		URLExpiry:  time.Hour,
	}}

	client, err := NewMinIOClient(cfg)
	require.NoError(t, err)

	url, err := client.GetImageURL(context.Background(), "posts/author-1/2024/03/cat.gif")

	require.NoError(t, err)
	assert.Contains(t, url, "http://localhost:9000/posts/posts/author-1/2024/03/cat.gif")
	assert.Contains(t, url, "X-Amz-Signature=")
	assert.Contains(t, url, "X-Amz-Expires=3600")
}
