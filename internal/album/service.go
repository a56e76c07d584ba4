// Package album orchestrates photo ingestion and album bookkeeping: it feeds
// the variant generator, persists originals and variants as blobs, and owns
// all writes of photo and album records.
package album

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"fotos/internal/blobstore"
	"fotos/internal/models"
	"fotos/internal/store"
	"fotos/internal/variant"
)

// Source is one user-supplied file to ingest.
type Source struct {
	Name string
	Data []byte
}

// AlbumPatch carries optional album metadata updates. Nil fields are left
// untouched; a non-nil Cover triggers a full photo ingestion.
type AlbumPatch struct {
	Title       *string
	Description *string
	Cover       *Source
}

// Service is the sole writer of photo and album records.
type Service struct {
	store  *store.Store
	blobs  blobstore.BlobStore
	widths []int
	opts   variant.Options
	logger *slog.Logger
}

// NewService constructs a Service generating variants at the given widths.
func NewService(st *store.Store, blobs blobstore.BlobStore, widths []int, opts variant.Options) *Service {
	if len(widths) == 0 {
		widths = models.DefaultVariantWidths
	}
	return &Service{
		store:  st,
		blobs:  blobs,
		widths: widths,
		opts:   opts,
		logger: slog.Default().With("component", "album"),
	}
}

// IngestPhoto stores a new photo: original blob first, then every generated
// variant blob, then the photo record referencing all of them. Variant
// generation runs on its own worker; a failure there or in any blob write
// leaves no discoverable photo record, only unreferenced garbage blobs.
func (s *Service) IngestPhoto(ctx context.Context, src Source, geom *models.Geometry) (string, error) {
	if len(src.Data) == 0 {
		return "", fmt.Errorf("source file is empty")
	}

	id := uuid.NewString()
	originalKey := blobstore.OriginalKey(id)
	if _, err := s.blobs.Put(ctx, originalKey, bytes.NewReader(src.Data)); err != nil {
		return "", fmt.Errorf("store original: %w", err)
	}

	res := <-variant.GenerateAsync(ctx, variant.Request{
		Source:   src.Data,
		Widths:   s.widths,
		Geometry: geom,
	}, s.opts)
	if res.Err != nil {
		return "", fmt.Errorf("generate variants for %s: %w", src.Name, res.Err)
	}

	photoVariants := make([]models.PhotoVariant, 0, len(res.Variants))
	for _, v := range res.Variants {
		key := blobstore.VariantKey(id, v.Size)
		if _, err := s.blobs.Put(ctx, key, bytes.NewReader(v.Data)); err != nil {
			return "", fmt.Errorf("store %dpx variant: %w", v.Size, err)
		}
		photoVariants = append(photoVariants, models.PhotoVariant{
			Size:   v.Size,
			BlobID: key,
			Width:  v.Width,
			Height: v.Height,
		})
	}

	photo := &models.Photo{
		ID:             id,
		Filename:       src.Name,
		OriginalBlobID: originalKey,
		Variants:       photoVariants,
		Crop:           geom,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.store.PutPhoto(ctx, photo); err != nil {
		return "", fmt.Errorf("store photo record: %w", err)
	}

	s.logger.Debug("photo ingested", "id", id, "filename", src.Name, "variants", len(photoVariants))
	return id, nil
}

// GetPhoto returns one photo record.
func (s *Service) GetPhoto(ctx context.Context, id string) (*models.Photo, error) {
	return s.store.GetPhoto(ctx, id)
}

// UpdatePhotoMeta edits a photo's title and/or description.
func (s *Service) UpdatePhotoMeta(ctx context.Context, id string, title, description *string) (*models.Photo, error) {
	if err := s.store.UpdatePhotoMeta(ctx, id, title, description); err != nil {
		return nil, err
	}
	return s.store.GetPhoto(ctx, id)
}

// CreateAlbum creates an album, optionally ingesting a cover photo that
// becomes both the cover and the first album entry.
func (s *Service) CreateAlbum(ctx context.Context, title, description string, cover *Source) (*models.Album, error) {
	id := uuid.NewString()

	coverID := ""
	if cover != nil {
		var err error
		coverID, err = s.IngestPhoto(ctx, *cover, nil)
		if err != nil {
			return nil, err
		}
	}

	if strings.TrimSpace(title) == "" {
		title = models.DefaultAlbumTitle
	}
	album := &models.Album{
		ID:           id,
		Title:        title,
		Description:  description,
		CreatedAt:    time.Now().UTC(),
		PhotoIDs:     []string{},
		CoverPhotoID: coverID,
	}
	if coverID != "" {
		album.PhotoIDs = []string{coverID}
	}

	if err := s.store.PutAlbum(ctx, album); err != nil {
		return nil, fmt.Errorf("store album record: %w", err)
	}
	s.logger.Debug("album created", "id", id, "title", album.Title)
	return album, nil
}

// GetAlbum returns one album record.
func (s *Service) GetAlbum(ctx context.Context, id string) (*models.Album, error) {
	return s.store.GetAlbum(ctx, id)
}

// ListAlbums lists all albums, newest first.
func (s *Service) ListAlbums(ctx context.Context) ([]models.Album, error) {
	return s.store.ListAlbums(ctx)
}

// UpdateAlbumMeta applies a metadata patch to an album. A patch cover file is
// ingested as a full new photo, set as the cover, and prepended to the photo
// list if not already present; existing photos are never removed.
func (s *Service) UpdateAlbumMeta(ctx context.Context, albumID string, patch AlbumPatch) (*models.Album, error) {
	album, err := s.store.GetAlbum(ctx, albumID)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		album.Title = *patch.Title
	}
	if patch.Description != nil {
		album.Description = *patch.Description
	}

	if patch.Cover != nil {
		photoID, err := s.IngestPhoto(ctx, *patch.Cover, nil)
		if err != nil {
			return nil, err
		}
		album.CoverPhotoID = photoID
		if !album.ContainsPhoto(photoID) {
			album.PhotoIDs = append([]string{photoID}, album.PhotoIDs...)
		}
	}

	if err := s.store.PutAlbum(ctx, album); err != nil {
		return nil, fmt.Errorf("store album record: %w", err)
	}
	return album, nil
}

// AppendPhotoToAlbum ingests a file and appends the new photo to the album.
// The album is resolved before ingestion starts, and its photo list only
// gains the new id after the whole ingestion succeeded.
func (s *Service) AppendPhotoToAlbum(ctx context.Context, albumID string, src Source, geom *models.Geometry) (*models.Photo, error) {
	album, err := s.store.GetAlbum(ctx, albumID)
	if err != nil {
		return nil, err
	}

	photoID, err := s.IngestPhoto(ctx, src, geom)
	if err != nil {
		return nil, err
	}

	album.PhotoIDs = append(album.PhotoIDs, photoID)
	if err := s.store.PutAlbum(ctx, album); err != nil {
		return nil, fmt.Errorf("store album record: %w", err)
	}

	return s.store.GetPhoto(ctx, photoID)
}
