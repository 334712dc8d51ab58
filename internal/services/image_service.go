package services

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var ErrInvalidImage = errors.New("invalid image upload")

var allowedImageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
}

// ImageStore persists menu item pictures and returns a reference that can later be deleted.
type ImageStore interface {
	Save(file *multipart.FileHeader) (string, error)
	Delete(ref string) error
}

type diskImageStore struct {
	dir      string
	maxBytes int64
}

// NewDiskImageStore stores files flat under dir, creating it when missing.
func NewDiskImageStore(dir string, maxBytes int64) (ImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload dir %s: %w", dir, err)
	}
	return &diskImageStore{dir: dir, maxBytes: maxBytes}, nil
}

// Save writes the upload as <uuid hex>_<sanitised name> and returns that file name.
func (s *diskImageStore) Save(file *multipart.FileHeader) (string, error) {
	if file == nil {
		return "", fmt.Errorf("%w: no file", ErrInvalidImage)
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExtensions[ext] {
		return "", fmt.Errorf("%w: extension %q not allowed (png, jpg, jpeg, webp)", ErrInvalidImage, ext)
	}
	if file.Size > s.maxBytes {
		return "", fmt.Errorf("%w: file is %d bytes, limit is %d", ErrInvalidImage, file.Size, s.maxBytes)
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("opening upload: %w", err)
	}
	defer src.Close()

	name := strings.ReplaceAll(uuid.NewString(), "-", "") + "_" + sanitizeFilename(file.Filename, ext)
	dstPath := filepath.Join(s.dir, name)
	dst, err := os.OpenFile(dstPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", dstPath, err)
	}

	written, err := io.Copy(dst, io.LimitReader(src, s.maxBytes+1))
	closeErr := dst.Close()
	if err == nil {
		err = closeErr
	}
	if err == nil && written > s.maxBytes {
		err = fmt.Errorf("%w: file exceeds %d bytes", ErrInvalidImage, s.maxBytes)
	}
	if err != nil {
		os.Remove(dstPath)
		return "", err
	}
	return name, nil
}

// Delete removes a stored file. Empty refs and already missing files are not errors.
func (s *diskImageStore) Delete(ref string) error {
	if ref == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, filepath.Base(ref)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("deleting image %s: %w", ref, err)
	}
	return nil
}

// sanitizeFilename keeps letters, digits, dot, dash and underscore from the base name.
func sanitizeFilename(name, ext string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	clean := strings.TrimLeft(b.String(), "._")
	if clean == "" || clean == strings.TrimPrefix(ext, ".") {
		return "image" + ext
	}
	return clean
}
