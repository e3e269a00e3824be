package storage

import (
	"context"
	"io"
	"path"

	"github.com/google/uuid"

	"dreamhome/internal/validate"
)

// Store persists uploaded media and returns the reference saved on the
// listing (a relative path for disk, a URL for S3).
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, ref string) error
}

// Kind is the media folder an upload lands in.
type Kind string

const (
	Images Kind = "images"
	Videos Kind = "videos"
)

// Key builds a collision-free object key. The client file name only
// contributes a sanitized extension.
func Key(kind Kind, filename string) string {
	return path.Join(string(kind), uuid.NewString()+validate.Ext(filename))
}
