package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FileStorage keeps files in a local directory served under URLPrefix.
type FileStorage struct {
	dir       string
	urlPrefix string
}

func NewFileStorage(dir, urlPrefix string) *FileStorage {
	return &FileStorage{
		dir:       dir,
		urlPrefix: strings.TrimSuffix(urlPrefix, "/") + "/",
	}
}

func (s *FileStorage) Dir() string {
	return s.dir
}

func (s *FileStorage) Save(ctx context.Context, prefix string, upload Upload) (string, error) {
	key := NewKey(prefix, upload)
	name := filepath.Join(s.dir, filepath.FromSlash(key))

	if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		return "", fmt.Errorf("failed to create media dir: %w", err)
	}

	f, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create media file: %w", err)
	}

	if _, err := io.Copy(f, upload.reader()); err != nil {
		_ = f.Close()
		_ = os.Remove(name)
		return "", fmt.Errorf("failed to write media file: %w", err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close media file: %w", err)
	}

	return key, nil
}

func (s *FileStorage) Delete(ctx context.Context, key string) error {
	if !validKey(key) {
		return fmt.Errorf("invalid media key %q", key)
	}

	err := os.Remove(filepath.Join(s.dir, filepath.FromSlash(key)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete media file: %w", err)
	}

	return nil
}

func (s *FileStorage) URL(key string) string {
	if key == "" {
		return ""
	}
	return s.urlPrefix + key
}
