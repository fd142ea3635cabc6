package model

import (
	"context"
	"io"
	"time"
)

// Storage stores uploaded binaries (avatars, truck covers, license scans).
type Storage interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error

	// URL returns a time-limited, externally reachable URL for the object.
	URL(ctx context.Context, key string, expiry time.Duration) (string, error)
}
