package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// UploadStore persists uploaded images on disk under a base directory and
// hands back the relative path they are served from.
type UploadStore struct {
	baseDir    string
	publicPath string
	maxSize    int64
}

// NewUploadStore ensures the base directory exists and returns a handle.
func NewUploadStore(baseDir, publicPath string, maxSize int64) (*UploadStore, error) {
	if baseDir == "" {
		baseDir = "./uploads"
	}
	if publicPath == "" {
		publicPath = "/uploads"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads directory: %w", err)
	}
	return &UploadStore{baseDir: baseDir, publicPath: strings.TrimRight(publicPath, "/"), maxSize: maxSize}, nil
}

// Save writes the uploaded file under a timestamp-derived name and returns
// the forward-slash relative path to store on the record.
func (s *UploadStore) Save(file *multipart.FileHeader) (string, error) {
	if file == nil {
		return "", fmt.Errorf("save upload: nil file header")
	}
	if s.maxSize > 0 && file.Size > s.maxSize {
		return "", fmt.Errorf("save upload: file %q exceeds %d bytes", file.Filename, s.maxSize)
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close() //nolint:errcheck

	name := fmt.Sprintf("%d%s", time.Now().UnixNano(), strings.ToLower(filepath.Ext(file.Filename)))
	target := filepath.Join(s.baseDir, name)

	dst, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close() //nolint:errcheck

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write upload file: %w", err)
	}

	return NormalizePath(s.publicPath + "/" + name), nil
}

// Dir exposes the base directory for static route registration.
func (s *UploadStore) Dir() string {
	return s.baseDir
}

// PublicPath exposes the URL prefix uploads are served under.
func (s *UploadStore) PublicPath() string {
	return s.publicPath
}

// NormalizePath converts any stored file path to forward-slash form.
// Legacy records written on Windows carry backslashes.
func NormalizePath(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}
