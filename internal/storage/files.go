package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const (
	MaxImageSize = 10 << 20 // 10 MB
	MaxVideoSize = 50 << 20 // 50 MB

	MediaImage   = "image"
	MediaVideo   = "video"
	MediaUnknown = "unknown"
)

var (
	ErrEmptyFile       = errors.New("file is empty")
	ErrFileTooLarge    = errors.New("file exceeds maximum allowed size")
	ErrFileTypeInvalid = errors.New("file type not allowed")
	ErrFileNotFound    = errors.New("file not found")
)

var imageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
}

var videoTypes = map[string]string{
	"video/mp4":       ".mp4",
	"video/avi":       ".avi",
	"video/mov":       ".mov",
	"video/quicktime": ".mov",
}

// FileStore saves uploaded media under a single directory with generated
// names; callers keep only the returned filename.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("could not create upload directory: %w", err)
	}
	return &FileStore{dir: abs}, nil
}

// Classify maps a MIME type to its media kind.
func Classify(contentType string) string {
	if _, ok := imageTypes[contentType]; ok {
		return MediaImage
	}
	if _, ok := videoTypes[contentType]; ok {
		return MediaVideo
	}
	return MediaUnknown
}

// Validate enforces the MIME allow-list and per-kind size ceilings before
// anything touches disk.
func Validate(contentType string, size int64) error {
	if size <= 0 {
		return ErrEmptyFile
	}
	switch Classify(contentType) {
	case MediaImage:
		if size > MaxImageSize {
			return ErrFileTooLarge
		}
	case MediaVideo:
		if size > MaxVideoSize {
			return ErrFileTooLarge
		}
	default:
		return ErrFileTypeInvalid
	}
	return nil
}

// Store validates and writes the upload, returning the generated filename.
func (s *FileStore) Store(src io.Reader, size int64, contentType string) (string, error) {
	if err := Validate(contentType, size); err != nil {
		return "", err
	}

	ext := imageTypes[contentType]
	if ext == "" {
		ext = videoTypes[contentType]
	}
	filename := uuid.New().String() + ext

	dst, err := os.Create(filepath.Join(s.dir, filename))
	if err != nil {
		return "", fmt.Errorf("could not store file %s: %w", filename, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("could not store file %s: %w", filename, err)
	}
	return filename, nil
}

// Path resolves a stored filename for serving, rejecting path escapes.
func (s *FileStore) Path(filename string) (string, error) {
	if strings.Contains(filename, "..") || strings.ContainsAny(filename, `/\`) {
		return "", ErrFileNotFound
	}
	p := filepath.Join(s.dir, filename)
	if _, err := os.Stat(p); err != nil {
		return "", ErrFileNotFound
	}
	return p, nil
}

// Delete removes a stored file; missing files are not an error.
func (s *FileStore) Delete(filename string) error {
	if strings.Contains(filename, "..") || strings.ContainsAny(filename, `/\`) {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, filename))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
