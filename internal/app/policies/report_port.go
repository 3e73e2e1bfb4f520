package policies

import (
	"context"
	"io"
)

// ReportArchive stores exported reports and returns their location.
type ReportArchive interface {
	Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error)
}
