package model

import (
	"context"
	"io"
)

// Storage persists binary objects such as product photos. Upload returns
// the public URL of the stored object.
type Storage interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}
