package storage

import (
	"context"
	"io"
	"time"
)

type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified *time.Time
}

// Service hosts listing photos in remote object storage. The browser client
// normally uploads straight to the bucket via a presigned URL; Upload is the
// server-side fallback path.
type Service interface {
	Upload(ctx context.Context, bucket, key string, body io.Reader, contentType string) error
	PresignPut(ctx context.Context, bucket, key, contentType string, expires time.Duration) (string, error)
	PresignGet(ctx context.Context, bucket, key string, expires time.Duration) (string, error)
	ListObjects(ctx context.Context, bucket, prefix string) ([]ObjectInfo, error)
	DeleteObjects(ctx context.Context, bucket string, keys []string) error
	DeletePrefix(ctx context.Context, bucket, prefix string) error
}
