package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"meetapp/internal/domain"
)

// DiskStorage keeps files in a local directory.
type DiskStorage struct {
	dir     string
	baseURL string
}

// NewDiskStorage creates dir if needed and returns a storage rooted there.
func NewDiskStorage(dir, baseURL string) (*DiskStorage, error) {
	if dir == "" {
		return nil, errors.New("upload dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStorage{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

func (s *DiskStorage) Save(_ context.Context, path, _ string, body io.Reader) error {
	if !validPath(path) {
		return domain.ErrInvalidInput
	}
	f, err := os.OpenFile(filepath.Join(s.dir, path), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		os.Remove(f.Name())
		return fmt.Errorf("write file: %w", err)
	}
	return f.Close()
}

func (s *DiskStorage) Open(_ context.Context, path string) (io.ReadCloser, error) {
	if !validPath(path) {
		return nil, domain.ErrNotFound
	}
	f, err := os.Open(filepath.Join(s.dir, path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

func (s *DiskStorage) URL(path string) string {
	return s.baseURL + "/" + path
}
