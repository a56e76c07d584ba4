package blobstore

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestLocalPutGetDelete(t *testing.T) {
	store, err := NewLocal(t.TempDir())
	if err != nil {
		t.Fatalf("new local store: %v", err)
	}
	ctx := context.Background()

	res, err := store.Put(ctx, "orig:abc", bytes.NewBufferString("hello"))
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if res.SizeBytes != 5 || res.Digest == "" {
		t.Fatalf("unexpected put result: %#v", res)
	}

	data, err := store.Get(ctx, "orig:abc")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(data) != "hello" {
		t.Fatalf("expected hello, got %q", string(data))
	}

	rc, err := store.Open(ctx, "orig:abc")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	streamed, err := io.ReadAll(rc)
	_ = rc.Close()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(streamed) != "hello" {
		t.Fatalf("expected hello, got %q", string(streamed))
	}

	if err := store.Delete(ctx, "orig:abc"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := store.Delete(ctx, "orig:abc"); err != nil {
		t.Fatalf("delete missing should be noop: %v", err)
	}
	if _, err := store.Get(ctx, "orig:abc"); !errors.Is(err, ErrBlobNotFound) {
		t.Fatalf("expected ErrBlobNotFound after delete, got %v", err)
	}
}

func TestLocalOverwriteSameKey(t *testing.T) {
	store, err := NewLocal(t.TempDir())
	if err != nil {
		t.Fatalf("new local store: %v", err)
	}
	ctx := context.Background()

	first, err := store.Put(ctx, "v:p1:320", bytes.NewBufferString("one"))
	if err != nil {
		t.Fatalf("put first: %v", err)
	}
	second, err := store.Put(ctx, "v:p1:320", bytes.NewBufferString("two"))
	if err != nil {
		t.Fatalf("put second: %v", err)
	}
	if first.Digest == second.Digest {
		t.Fatalf("expected distinct digests for distinct payloads")
	}

	data, err := store.Get(ctx, "v:p1:320")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(data) != "two" {
		t.Fatalf("expected latest payload, got %q", string(data))
	}
}

func TestLocalGetMissing(t *testing.T) {
	store, err := NewLocal(t.TempDir())
	if err != nil {
		t.Fatalf("new local store: %v", err)
	}
	if _, err := store.Get(context.Background(), "orig:nope"); !errors.Is(err, ErrBlobNotFound) {
		t.Fatalf("expected ErrBlobNotFound, got %v", err)
	}
}

func TestLocalEmptyKeyRejected(t *testing.T) {
	store, err := NewLocal(t.TempDir())
	if err != nil {
		t.Fatalf("new local store: %v", err)
	}
	if _, err := store.Put(context.Background(), "  ", bytes.NewBufferString("x")); err == nil {
		t.Fatalf("expected error for empty key")
	}
}

func TestLocalVerify(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocal(root)
	if err != nil {
		t.Fatalf("new local store: %v", err)
	}
	ctx := context.Background()

	if _, err := store.Put(ctx, "orig:v1", bytes.NewBufferString("payload")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.Verify(ctx, "orig:v1"); err != nil {
		t.Fatalf("verify clean blob: %v", err)
	}

	// Corrupt the payload on disk behind the store's back.
	path, err := store.pathFromKey("orig:v1")
	if err != nil {
		t.Fatalf("path from key: %v", err)
	}
	if err := os.WriteFile(path, []byte("tampered"), 0o644); err != nil {
		t.Fatalf("tamper: %v", err)
	}
	if err := store.Verify(ctx, "orig:v1"); err == nil {
		t.Fatalf("expected verify failure for tampered blob")
	}
}

func TestKeyHelpers(t *testing.T) {
	if got := OriginalKey("p1"); got != "orig:p1" {
		t.Fatalf("original key: got %q", got)
	}
	if got := VariantKey("p1", 320); got != "v:p1:320" {
		t.Fatalf("variant key: got %q", got)
	}
}

func TestLocalKeysDoNotEscapeRoot(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocal(root)
	if err != nil {
		t.Fatalf("new local store: %v", err)
	}
	if _, err := store.Put(context.Background(), "../evil", bytes.NewBufferString("x")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(root), "evil")); err == nil {
		t.Fatalf("blob escaped store root")
	}
}
