// Package media stores images uploaded with posts.
package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"
)

// MaxImageSize is the largest accepted upload.
const MaxImageSize = 5 << 20

var (
	ErrTooLarge = errors.New("file is too large")
	ErrNotImage = errors.New("file is not an image")
)

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
	"image/bmp":  ".bmp",
}

// Upload is a validated image ready to be stored.
type Upload struct {
	Data        []byte
	ContentType string
	Ext         string
}

// Storage keeps uploaded files under generated keys.
type Storage interface {
	Save(ctx context.Context, prefix string, upload Upload) (string, error)
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

// ReadImage reads at most MaxImageSize bytes and checks that the content is an image.
func ReadImage(r io.Reader) (*Upload, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}

	if len(data) > MaxImageSize {
		return nil, ErrTooLarge
	}

	contentType := http.DetectContentType(data)
	ext, ok := extensions[contentType]
	if !ok {
		return nil, ErrNotImage
	}

	return &Upload{
		Data:        data,
		ContentType: contentType,
		Ext:         ext,
	}, nil
}

func (u Upload) reader() io.Reader {
	return bytes.NewReader(u.Data)
}

// NewKey returns a fresh key like "posts/<uuid>.png".
func NewKey(prefix string, upload Upload) string {
	return path.Join(prefix, uuid.NewString()+upload.Ext)
}

func validKey(key string) bool {
	return key != "" && !strings.HasPrefix(key, "/") && path.Clean(key) == key && !strings.HasPrefix(key, "..")
}
