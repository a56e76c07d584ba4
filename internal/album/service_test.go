package album

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"fotos/internal/blobstore"
	"fotos/internal/models"
	"fotos/internal/store"
	"fotos/internal/variant"
)

func newTestService(t *testing.T) (*Service, *store.Store, *blobstore.Local) {
	t.Helper()
	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "fotos.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	blobs, err := blobstore.NewLocal(filepath.Join(dir, "blobs"))
	if err != nil {
		t.Fatalf("open blob store: %v", err)
	}

	svc := NewService(st, blobs, []int{32, 160}, variant.Options{})
	return svc, st, blobs
}

func testImage(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestIngestPhoto(t *testing.T) {
	svc, st, blobs := newTestService(t)
	ctx := context.Background()

	id, err := svc.IngestPhoto(ctx, Source{Name: "cat.png", Data: testImage(t, 160, 120)}, nil)
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}

	photo, err := st.GetPhoto(ctx, id)
	if err != nil {
		t.Fatalf("get photo: %v", err)
	}
	if photo.Filename != "cat.png" {
		t.Fatalf("unexpected filename: %q", photo.Filename)
	}
	if photo.OriginalBlobID != blobstore.OriginalKey(id) {
		t.Fatalf("unexpected original blob id: %q", photo.OriginalBlobID)
	}
	if len(photo.Variants) != 2 {
		t.Fatalf("expected 2 variants, got %d", len(photo.Variants))
	}

	// Original bytes stored untouched.
	original, err := blobs.Get(ctx, photo.OriginalBlobID)
	if err != nil {
		t.Fatalf("get original blob: %v", err)
	}
	if !bytes.Equal(original, testImage(t, 160, 120)) {
		t.Fatalf("original blob mutated")
	}

	for _, v := range photo.Variants {
		if v.Width != v.Size {
			t.Fatalf("variant %d: actual width %d", v.Size, v.Width)
		}
		if _, err := blobs.Get(ctx, v.BlobID); err != nil {
			t.Fatalf("variant blob %s unreadable: %v", v.BlobID, err)
		}
	}
}

func TestIngestPhotoPersistsCrop(t *testing.T) {
	svc, st, _ := newTestService(t)
	ctx := context.Background()

	geom := &models.Geometry{X: 10, Y: 10, Width: 80, Height: 60}
	id, err := svc.IngestPhoto(ctx, Source{Name: "a.png", Data: testImage(t, 160, 120)}, geom)
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	photo, err := st.GetPhoto(ctx, id)
	if err != nil {
		t.Fatalf("get photo: %v", err)
	}
	if photo.Crop == nil || photo.Crop.Width != 80 {
		t.Fatalf("crop not persisted: %#v", photo.Crop)
	}
}

func TestIngestPhotoDecodeFailureLeavesNoRecord(t *testing.T) {
	svc, st, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.IngestPhoto(ctx, Source{Name: "junk.bin", Data: []byte("not an image")}, nil)
	if !errors.Is(err, variant.ErrDecode) {
		t.Fatalf("expected ErrDecode, got %v", err)
	}

	count, err := st.CountPhotos(ctx)
	if err != nil {
		t.Fatalf("count photos: %v", err)
	}
	if count != 0 {
		t.Fatalf("failed ingestion must not leave a photo record, found %d", count)
	}
}

func TestCreateAlbumWithCover(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	album, err := svc.CreateAlbum(ctx, "Отпуск", "июль", &Source{Name: "cover.png", Data: testImage(t, 100, 100)})
	if err != nil {
		t.Fatalf("create album: %v", err)
	}
	if album.CoverPhotoID == "" {
		t.Fatalf("cover photo id not set")
	}
	if len(album.PhotoIDs) != 1 || album.PhotoIDs[0] != album.CoverPhotoID {
		t.Fatalf("cover must be the first album photo: %#v", album)
	}
	if album.EffectiveCover() != album.CoverPhotoID {
		t.Fatalf("effective cover mismatch")
	}
}

func TestCreateAlbumDefaults(t *testing.T) {
	svc, _, _ := newTestService(t)

	album, err := svc.CreateAlbum(context.Background(), "  ", "", nil)
	if err != nil {
		t.Fatalf("create album: %v", err)
	}
	if album.Title != models.DefaultAlbumTitle {
		t.Fatalf("expected default title, got %q", album.Title)
	}
	if len(album.PhotoIDs) != 0 || album.CoverPhotoID != "" {
		t.Fatalf("expected empty album: %#v", album)
	}
}

func TestUpdateAlbumMeta(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	album, err := svc.CreateAlbum(ctx, "Старое", "", nil)
	if err != nil {
		t.Fatalf("create album: %v", err)
	}
	if _, err := svc.AppendPhotoToAlbum(ctx, album.ID, Source{Name: "a.png", Data: testImage(t, 100, 80)}, nil); err != nil {
		t.Fatalf("append: %v", err)
	}

	title := "Новое"
	updated, err := svc.UpdateAlbumMeta(ctx, album.ID, AlbumPatch{
		Title: &title,
		Cover: &Source{Name: "cover.png", Data: testImage(t, 120, 90)},
	})
	if err != nil {
		t.Fatalf("update album meta: %v", err)
	}
	if updated.Title != "Новое" {
		t.Fatalf("title not updated: %q", updated.Title)
	}
	if updated.CoverPhotoID == "" || updated.PhotoIDs[0] != updated.CoverPhotoID {
		t.Fatalf("new cover must be prepended: %#v", updated)
	}
	if len(updated.PhotoIDs) != 2 {
		t.Fatalf("existing photos must be preserved: %#v", updated.PhotoIDs)
	}
}

func TestUpdateAlbumMetaNotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	title := "x"
	_, err := svc.UpdateAlbumMeta(context.Background(), "missing", AlbumPatch{Title: &title})
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAppendPhotoToAlbum(t *testing.T) {
	svc, st, _ := newTestService(t)
	ctx := context.Background()

	album, err := svc.CreateAlbum(ctx, "Лето", "", nil)
	if err != nil {
		t.Fatalf("create album: %v", err)
	}

	photo, err := svc.AppendPhotoToAlbum(ctx, album.ID, Source{Name: "a.png", Data: testImage(t, 160, 120)}, nil)
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	got, err := st.GetAlbum(ctx, album.ID)
	if err != nil {
		t.Fatalf("get album: %v", err)
	}
	if len(got.PhotoIDs) != 1 || got.PhotoIDs[0] != photo.ID {
		t.Fatalf("photo not appended in order: %#v", got.PhotoIDs)
	}
}

func TestAppendPhotoToMissingAlbum(t *testing.T) {
	svc, st, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.AppendPhotoToAlbum(ctx, "missing", Source{Name: "a.png", Data: testImage(t, 100, 80)}, nil)
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// The album was resolved before ingestion, so no photo exists either.
	count, err := st.CountPhotos(ctx)
	if err != nil {
		t.Fatalf("count photos: %v", err)
	}
	if count != 0 {
		t.Fatalf("append to missing album must not ingest, found %d photos", count)
	}
}

func TestAppendFailedIngestLeavesAlbumUntouched(t *testing.T) {
	svc, st, _ := newTestService(t)
	ctx := context.Background()

	album, err := svc.CreateAlbum(ctx, "Лето", "", nil)
	if err != nil {
		t.Fatalf("create album: %v", err)
	}

	_, err = svc.AppendPhotoToAlbum(ctx, album.ID, Source{Name: "junk.bin", Data: []byte("garbage")}, nil)
	if !errors.Is(err, variant.ErrDecode) {
		t.Fatalf("expected ErrDecode, got %v", err)
	}

	got, err := st.GetAlbum(ctx, album.ID)
	if err != nil {
		t.Fatalf("get album: %v", err)
	}
	if len(got.PhotoIDs) != 0 {
		t.Fatalf("failed ingest must not be referenced by the album: %#v", got.PhotoIDs)
	}
}

func TestUpdatePhotoMeta(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	id, err := svc.IngestPhoto(ctx, Source{Name: "a.png", Data: testImage(t, 100, 80)}, nil)
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}

	title, desc := "Лето", "на даче"
	photo, err := svc.UpdatePhotoMeta(ctx, id, &title, &desc)
	if err != nil {
		t.Fatalf("update photo meta: %v", err)
	}
	if photo.Title != "Лето" || photo.Description != "на даче" {
		t.Fatalf("meta not updated: %#v", photo)
	}
}
