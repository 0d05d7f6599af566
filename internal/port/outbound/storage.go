package outbound

import (
	"context"
	"io"
)

type AvatarFile struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// AvatarStore keeps avatar images and hands back their public URL.
type AvatarStore interface {
	Upload(ctx context.Context, file AvatarFile) (url string, err error)
	// Delete removes the object behind a URL previously returned by Upload.
	// URLs the store does not own are ignored.
	Delete(ctx context.Context, url string) error
}
