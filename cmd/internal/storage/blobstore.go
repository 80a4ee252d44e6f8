// Package storage persists uploaded files (clinical history images)
// on local disk and hands back the public path they are served from.
package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

var (
	ErrFileTooLarge       = errors.New("file exceeds maximum allowed size")
	ErrInvalidContentType = errors.New("content type is not allowed")
)

// MaxFileSize bounds a single upload (10 MB).
const MaxFileSize = 10 * 1024 * 1024

// allowedContentTypes lists the image types a history entry may carry.
var allowedContentTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/webp": true,
}

// LocalStore writes blobs under dir and exposes them below baseURL.
type LocalStore struct {
	dir     string
	baseURL string
}

func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalStore{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

// Dir is the on-disk root, for static file serving.
func (s *LocalStore) Dir() string { return s.dir }

// Save stores an uploaded file under the owner's folder and returns
// the URL path it will be served from. File names are prefixed with
// the upload time so repeated names never collide.
func (s *LocalStore) Save(owner string, file *multipart.FileHeader) (string, error) {
	if file.Size > MaxFileSize {
		return "", ErrFileTooLarge
	}
	if !allowedContentTypes[file.Header.Get("Content-Type")] {
		return "", ErrInvalidContentType
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	name := fmt.Sprintf("%d_%s", time.Now().UnixMilli(), sanitizeName(file.Filename))
	ownerDir := filepath.Join(s.dir, sanitizeName(owner))
	if err := os.MkdirAll(ownerDir, 0o755); err != nil {
		return "", err
	}

	dst, err := os.Create(filepath.Join(ownerDir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return path.Join(s.baseURL, sanitizeName(owner), name), nil
}

// sanitizeName strips anything that could escape the store directory.
func sanitizeName(name string) string {
	name = filepath.Base(name)
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}
