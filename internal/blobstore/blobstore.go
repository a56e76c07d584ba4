package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// ErrBlobNotFound reports a get/open for a key that holds no payload.
var ErrBlobNotFound = errors.New("blob not found")

// PutResult describes one persisted blob payload.
type PutResult struct {
	Key       string
	SizeBytes int64
	Digest    string
}

// BlobStore is the byte-storage abstraction used by the record builder and
// the export packager. Keys are caller-chosen strings; a payload is owned by
// whichever record references its key.
type BlobStore interface {
	Put(ctx context.Context, key string, r io.Reader) (PutResult, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// OriginalKey returns the blob key holding a photo's untouched source bytes.
func OriginalKey(photoID string) string {
	return "orig:" + photoID
}

// VariantKey returns the blob key holding one encoded variant of a photo.
func VariantKey(photoID string, size int) string {
	return fmt.Sprintf("v:%s:%d", photoID, size)
}
