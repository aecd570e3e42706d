package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadFeed_Defaults(t *testing.T) {
	t.Setenv("POSTS_PER_PAGE", "")
	t.Setenv("INDEX_CACHE_TTL", "")

	feed := LoadFeed()

	assert.Equal(t, 10, feed.PostsPerPage)
	assert.Equal(t, 20*time.Second, feed.IndexCacheTTL)
	assert.False(t, feed.InvalidateOnWrite)
}

func TestLoadFeed_FromEnv(t *testing.T) {
	t.Setenv("POSTS_PER_PAGE", "25")
	t.Setenv("INDEX_CACHE_TTL", "1m")
	t.Setenv("CACHE_INVALIDATE_ON_WRITE", "true")

	feed := LoadFeed()

	assert.Equal(t, 25, feed.PostsPerPage)
	assert.Equal(t, time.Minute, feed.IndexCacheTTL)
	assert.True(t, feed.InvalidateOnWrite)
}

func TestParseDuration_Fallback(t *testing.T) {
	assert.Equal(t, time.Hour, parseDuration("7d", time.Hour))
	assert.Equal(t, 90*time.Second, parseDuration("90s", time.Hour))
}

func TestParseMaxUploadSize(t *testing.T) {
	assert.Equal(t, int64(1024), parseMaxUploadSize("1024"))
	assert.Equal(t, int64(10*1024*1024), parseMaxUploadSize("много"))
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_NAME", "yatube_test")
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("APP_ENV", "production")

	cfg := LoadConfig()

	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, "yatube_test", cfg.DB.DbNAME)
	assert.Equal(t, "secret", cfg.Session.JWTSecretKey)
	assert.True(t, cfg.IsProduction())
}
