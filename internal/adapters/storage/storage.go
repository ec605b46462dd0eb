package storage

import (
	"context"
	"fmt"
	"strings"

	"meetapp/internal/domain"
)

// Config selects and configures the banner storage backend.
type Config struct {
	Provider  string // "disk" (default) or "s3"
	UploadDir string
	BaseURL   string // public URL prefix for disk files, e.g. http://localhost:8080/files
	S3        S3Config
}

// New returns the FileStorage named by cfg.Provider.
func New(ctx context.Context, cfg Config) (domain.FileStorage, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", "disk":
		return NewDiskStorage(cfg.UploadDir, cfg.BaseURL)
	case "s3":
		return NewS3Storage(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("unknown storage provider %q", cfg.Provider)
	}
}

// validPath rejects paths that could escape the storage root.
func validPath(path string) bool {
	return path != "" && !strings.ContainsAny(path, `/\`) && !strings.HasPrefix(path, ".")
}
