package domain

import (
	"context"
	"io"
	"time"
)

// File is an uploaded banner image.
// swagger:model File
type File struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FileStorage stores and retrieves file contents by path.
type FileStorage interface {
	Save(ctx context.Context, path, contentType string, body io.Reader) error
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	URL(path string) string
}

// FileRepository defines storage for file metadata.
type FileRepository interface {
	Create(ctx context.Context, file *File) error
	GetByPath(ctx context.Context, path string) (*File, error)
}

// FileService handles banner uploads.
type FileService interface {
	Upload(ctx context.Context, originalName, contentType string, body io.Reader) (*File, error)
	Open(ctx context.Context, path string) (io.ReadCloser, *File, error)
}
