package controllers

import (
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path/filepath"

	"meetapp/internal/delivery/http/helpers"
	"meetapp/internal/domain"
)

// MaxUploadSize bounds the multipart body of POST /files.
const MaxUploadSize = 5 << 20

// FileSuccessResponse is the success response envelope for POST /files (201).
type FileSuccessResponse struct {
	Data  *domain.File      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// FileController handles banner uploads and downloads.
type FileController struct {
	Logger  *slog.Logger
	Service domain.FileService
}

// NewFileController creates a FileController with the given logger and service.
func NewFileController(logger *slog.Logger, svc domain.FileService) *FileController {
	return &FileController{
		Logger:  logger,
		Service: svc,
	}
}

// Upload godoc
// @Summary Upload a banner image
// @Description Multipart upload of one PNG or JPEG image in the "file" field (max 5 MiB).
// @Tags files
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Image file"
// @Success 201 {object} controllers.FileSuccessResponse "data contains the stored file"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /files [post]
func (c *FileController) Upload(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)
	part, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "file too large")
			return
		}
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "file is required")
		return
	}
	defer part.Close()

	file, err := c.Service.Upload(r.Context(), header.Filename, header.Header.Get("Content-Type"), part)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, file)
}

// Serve godoc
// @Summary Download a file
// @Tags files
// @Produce png,jpeg
// @Param path path string true "Stored file name"
// @Success 200 {file} binary
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /files/{path} [get]
func (c *FileController) Serve(w http.ResponseWriter, r *http.Request) {
	path := r.PathValue("path")
	body, file, err := c.Service.Open(r.Context(), path)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "file not found")
			return
		}
		writeServiceError(w, r, c.Logger, err)
		return
	}
	defer body.Close()

	if ct := mime.TypeByExtension(filepath.Ext(file.Path)); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, body); err != nil {
		c.Logger.WarnContext(r.Context(), "file stream interrupted", "path", path, "err", err)
	}
}
