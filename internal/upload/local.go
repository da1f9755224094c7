package upload

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"edu-backend/internal/config"
	"edu-backend/internal/models"
)

var (
	ErrTooLarge        = errors.New("file exceeds the upload size limit")
	ErrUnsupportedType = errors.New("unsupported file type")
)

var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

var videoExtensions = map[string]bool{
	".mp4": true, ".mov": true, ".avi": true, ".webm": true, ".mkv": true,
}

// Local stores uploaded files on the local disk under a single directory
// served at /uploads/.
type Local struct {
	dir      string
	maxBytes int64
}

func NewLocal(cfg *config.Config) (*Local, error) {
	if err := os.MkdirAll(cfg.Uploads.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Local{
		dir:      cfg.Uploads.Dir,
		maxBytes: int64(cfg.Uploads.MaxSizeMB) << 20,
	}, nil
}

func (l *Local) Dir() string { return l.dir }

// Save writes one multipart file under a unique name inside the given
// subdirectory and reports the public URL and detected media type.
func (l *Local) Save(header *multipart.FileHeader, subdir string) (url, mediaType string, err error) {
	if header.Size > l.maxBytes {
		return "", "", ErrTooLarge
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	switch {
	case imageExtensions[ext]:
		mediaType = models.MediaTypeImage
	case videoExtensions[ext]:
		mediaType = models.MediaTypeVideo
	default:
		return "", "", ErrUnsupportedType
	}

	subdir = filepath.Base(subdir)
	if err := os.MkdirAll(filepath.Join(l.dir, subdir), 0o755); err != nil {
		return "", "", fmt.Errorf("create upload subdir: %w", err)
	}

	src, err := header.Open()
	if err != nil {
		return "", "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := uniqueName(ext)
	dst, err := os.Create(filepath.Join(l.dir, subdir, name))
	if err != nil {
		return "", "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", "", fmt.Errorf("write file: %w", err)
	}

	return "/uploads/" + subdir + "/" + name, mediaType, nil
}

// Remove deletes a previously saved file given its public URL. Missing
// files are not an error.
func (l *Local) Remove(url string) error {
	rel := strings.TrimPrefix(url, "/uploads/")
	rel = filepath.Clean(rel)
	if rel == "." || strings.HasPrefix(rel, "..") {
		return nil
	}
	err := os.Remove(filepath.Join(l.dir, rel))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func uniqueName(ext string) string {
	buf := make([]byte, 16)
	rand.Read(buf)
	return hex.EncodeToString(buf) + ext
}
