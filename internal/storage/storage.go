package storage

import (
	"context"
	"io"
)

// Uploader archives raw resume documents; the extracted text lives in the
// database, the original bytes go to object storage.
type Uploader interface {
	Upload(ctx context.Context, objectName string, contentType string, r io.Reader) (storedPath string, err error)
}
