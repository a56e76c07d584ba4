package blobstore

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/blake2b"
)

const digestSuffix = ".b2"

// Local stores blob payloads as files under a root directory. Keys are
// escaped into file names and fanned out over subdirectories keyed by the
// first byte of the key digest. Each payload carries a BLAKE2b-256 digest
// sidecar for later integrity audits.
type Local struct {
	root string
}

// NewLocal creates a local blob store rooted at root.
func NewLocal(root string) (*Local, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, fmt.Errorf("blob store root is required")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Join(abs, "tmp"), 0o755); err != nil {
		return nil, err
	}
	return &Local{root: abs}, nil
}

// Put streams bytes under key, replacing any previous payload. The write is
// atomic: bytes land in a temp file first and are renamed into place.
func (l *Local) Put(ctx context.Context, key string, r io.Reader) (PutResult, error) {
	var zero PutResult
	if l == nil {
		return zero, fmt.Errorf("blob store is not configured")
	}
	if r == nil {
		return zero, fmt.Errorf("reader is required")
	}
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	dst, err := l.pathFromKey(key)
	if err != nil {
		return zero, err
	}

	tmp, err := os.CreateTemp(filepath.Join(l.root, "tmp"), "put-*")
	if err != nil {
		return zero, err
	}
	tmpPath := tmp.Name()
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}

	h, err := blake2b.New256(nil)
	if err != nil {
		cleanup()
		return zero, err
	}
	n, err := io.Copy(io.MultiWriter(tmp, h), r)
	if err != nil {
		cleanup()
		return zero, err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return zero, err
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		cleanup()
		return zero, err
	}
	if err := os.Rename(tmpPath, dst); err != nil {
		cleanup()
		return zero, err
	}

	digest := hex.EncodeToString(h.Sum(nil))
	if err := os.WriteFile(dst+digestSuffix, []byte(digest), 0o644); err != nil {
		return zero, err
	}

	return PutResult{Key: key, SizeBytes: n, Digest: digest}, nil
}

// Open returns a reader for the payload stored under key.
func (l *Local) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	if l == nil {
		return nil, fmt.Errorf("blob store is not configured")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := l.pathFromKey(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrBlobNotFound, key)
	}
	return f, err
}

// Get reads the whole payload stored under key.
func (l *Local) Get(ctx context.Context, key string) ([]byte, error) {
	rc, err := l.Open(ctx, key)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// Delete removes a payload and its digest sidecar. Missing files are ignored.
func (l *Local) Delete(ctx context.Context, key string) error {
	if l == nil {
		return fmt.Errorf("blob store is not configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := l.pathFromKey(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	if err := os.Remove(path + digestSuffix); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Verify recomputes the payload digest under key and compares it with the
// recorded sidecar. A missing sidecar counts as a verification failure.
func (l *Local) Verify(ctx context.Context, key string) error {
	rc, err := l.Open(ctx, key)
	if err != nil {
		return err
	}
	defer rc.Close()

	h, err := blake2b.New256(nil)
	if err != nil {
		return err
	}
	if _, err := io.Copy(h, rc); err != nil {
		return err
	}
	actual := hex.EncodeToString(h.Sum(nil))

	path, err := l.pathFromKey(key)
	if err != nil {
		return err
	}
	recorded, err := os.ReadFile(path + digestSuffix)
	if err != nil {
		return fmt.Errorf("read digest for %s: %w", key, err)
	}
	if actual != strings.TrimSpace(string(recorded)) {
		return fmt.Errorf("digest mismatch for %s", key)
	}
	return nil
}

func (l *Local) pathFromKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", fmt.Errorf("blob key is required")
	}
	sum := blake2b.Sum256([]byte(key))
	fanout := hex.EncodeToString(sum[:1])
	name := url.QueryEscape(key)
	return filepath.Join(l.root, fanout, name), nil
}
