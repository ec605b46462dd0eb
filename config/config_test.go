package config

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetAll blanks every key Load reads so the host environment does not leak in.
func unsetAll(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"GO_ENV", "PORT", "DATABASE_URL", "MIGRATIONS_PATH", "APP_URL", "JWT_SECRET",
		"JWT_EXPIRY_HOURS", "REQUEST_TIMEOUT_SECONDS", "CORS_ALLOWED_ORIGINS", "REDIS_URL",
		"QUEUE_PREFIX", "MAIL_PROVIDER", "MAIL_FROM_ADDRESS", "MAIL_FROM_NAME", "AWS_REGION",
		"AWS_ACCESS_KEY_ID", "AWS_SECRET_ACCESS_KEY", "SES_INSECURE_SKIP_VERIFY",
		"STORAGE_PROVIDER", "UPLOAD_DIR", "S3_BUCKET", "S3_PUBLIC_URL",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	unsetAll(t)
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "http://localhost:8080", cfg.AppURL)
	assert.Equal(t, "http://localhost:8080/files", cfg.FilesURL())
	assert.Equal(t, devJWTSecret, cfg.JWTSecret)
	assert.Equal(t, 7*24*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, "meetapp:jobs", cfg.QueuePrefix)
	assert.Equal(t, "noop", cfg.MailProvider)
	assert.Equal(t, "disk", cfg.StorageProvider)
}

func TestLoad_FromEnv(t *testing.T) {
	unsetAll(t)
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "9000")
	t.Setenv("APP_URL", "https://api.meetapp.dev/")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_EXPIRY_HOURS", "2")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "not-a-number")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.dev, https://b.dev,")
	t.Setenv("SES_INSECURE_SKIP_VERIFY", "true")
	t.Setenv("STORAGE_PROVIDER", "s3")
	t.Setenv("S3_BUCKET", "banners")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "https://api.meetapp.dev", cfg.AppURL)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, 2*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, []string{"https://a.dev", "https://b.dev"}, cfg.AllowedOrigins)
	assert.True(t, cfg.SESInsecureSkip)
	assert.Equal(t, "banners", cfg.S3Bucket)
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	unsetAll(t)
	t.Setenv("GO_ENV", "production")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoad_S3RequiresBucket(t *testing.T) {
	unsetAll(t)
	t.Chdir(t.TempDir())
	t.Setenv("STORAGE_PROVIDER", "s3")

	_, err := Load()
	require.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "production", "warn")
	logger.Info("hidden")
	logger.Warn("shown", "k", "v")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "shown", line["msg"])
	assert.Equal(t, "v", line["k"])

	assert.True(t, newLogger(&buf, "development", "debug").Enabled(context.Background(), slog.LevelDebug))
	assert.False(t, newLogger(&buf, "", "").Enabled(context.Background(), slog.LevelDebug))
}
