package services

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"meetapp/internal/domain"
)

var allowedImageTypes = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
}

type fileService struct {
	fileRepo       domain.FileRepository
	storage        domain.FileStorage
	contextTimeout time.Duration
}

// NewFileService creates a FileService storing contents in storage and metadata in fileRepo.
func NewFileService(fileRepo domain.FileRepository, storage domain.FileStorage, timeout time.Duration) domain.FileService {
	return &fileService{
		fileRepo:       fileRepo,
		storage:        storage,
		contextTimeout: timeout,
	}
}

func (s *fileService) Upload(ctx context.Context, originalName, contentType string, body io.Reader) (*domain.File, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}
	head := make([]byte, 512)
	n, err := io.ReadFull(body, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	head = head[:n]
	if http.DetectContentType(head) != contentType {
		return nil, domain.ErrUnsupportedFileType
	}

	// keep the original extension when it agrees with the content type
	if e := strings.ToLower(filepath.Ext(originalName)); e == ext || (e == ".jpeg" && contentType == "image/jpeg") {
		ext = e
	}
	name, err := randomName()
	if err != nil {
		return nil, fmt.Errorf("generate file name: %w", err)
	}
	path := name + ext

	if err := s.storage.Save(ctx, path, contentType, io.MultiReader(bytes.NewReader(head), body)); err != nil {
		return nil, fmt.Errorf("store file: %w", err)
	}
	now := time.Now()
	file := &domain.File{
		Name:      filepath.Base(originalName),
		Path:      path,
		URL:       s.storage.URL(path),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.fileRepo.Create(ctx, file); err != nil {
		return nil, fmt.Errorf("create file: %w", err)
	}
	return file, nil
}

func randomName() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// Open returns the stored contents. The caller closes the reader.
// No service timeout applies: the body is streamed after Open returns.
func (s *fileService) Open(ctx context.Context, path string) (io.ReadCloser, *domain.File, error) {
	file, err := s.fileRepo.GetByPath(ctx, path)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("get file: %w", err)
	}
	rc, err := s.storage.Open(ctx, file.Path)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("open file: %w", err)
	}
	return rc, file, nil
}
