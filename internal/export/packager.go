// Package export assembles a self-contained album bundle: images for every
// photo's best-available variants, a static index viewer, and a manifest,
// written through one of two interchangeable backends.
package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/gabriel-vasile/mimetype"

	"fotos/internal/blobstore"
	"fotos/internal/models"
	"fotos/internal/store"
)

const fallbackExtension = ".jpg"

// Packager reads album and photo records and writes export bundles. It is
// strictly read-only over records and blobs.
type Packager struct {
	store  *store.Store
	blobs  blobstore.BlobStore
	logger *slog.Logger
}

// NewPackager constructs a Packager.
func NewPackager(st *store.Store, blobs blobstore.BlobStore) *Packager {
	return &Packager{
		store:  st,
		blobs:  blobs,
		logger: slog.Default().With("component", "export"),
	}
}

// BundleName returns the sanitized bundle name for an album (folder name for
// the directory backend, archive base name for the zip backend).
func BundleName(album *models.Album) string {
	return SafeFileName(album.Title, "album_"+album.ID)
}

// NewWriter picks the output backend for destRoot by capability probe: the
// direct directory backend when the bundle folder can be created there, the
// in-memory archive otherwise. forceZip skips the probe.
func NewWriter(destRoot, bundleName string, forceZip bool) BundleWriter {
	if forceZip {
		return NewZipWriter(destRoot, bundleName)
	}
	dw, err := NewDirWriter(destRoot, bundleName)
	if err != nil {
		slog.Default().Debug("directory backend unavailable, falling back to zip", "dest", destRoot, "error", err)
		return NewZipWriter(destRoot, bundleName)
	}
	return dw
}

// ExportAlbum writes the album's bundle through w and finalizes it. Missing
// photo records are skipped; an unreadable variant blob downgrades that photo
// (possibly to a caption-only card) but never fails the export. Destination
// write failures abort immediately with a WriteError.
func (p *Packager) ExportAlbum(ctx context.Context, albumID string, w BundleWriter) (string, error) {
	album, err := p.store.GetAlbum(ctx, albumID)
	if err != nil {
		return "", err
	}

	namer := NewNamer()
	cards := make([]Card, 0, len(album.PhotoIDs))
	manifestPhotos := make([]ManifestPhoto, 0, len(album.PhotoIDs))

	for _, photoID := range album.PhotoIDs {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		photo, err := p.store.GetPhoto(ctx, photoID)
		if errors.Is(err, store.ErrNotFound) {
			p.logger.Debug("skipping missing photo", "album", albumID, "photo", photoID)
			continue
		}
		if err != nil {
			return "", err
		}

		card, manifestPhoto, err := p.packPhoto(ctx, photo, namer, w)
		if err != nil {
			return "", err
		}
		cards = append(cards, card)
		manifestPhotos = append(manifestPhotos, manifestPhoto)
	}

	html, err := renderIndex(album.DisplayTitle(), album.Description, cards)
	if err != nil {
		return "", fmt.Errorf("render index: %w", err)
	}
	if err := w.AddText("index.html", html); err != nil {
		return "", err
	}

	manifest, err := renderManifest(Manifest{
		Title:     album.DisplayTitle(),
		CreatedAt: album.CreatedAt,
		Photos:    manifestPhotos,
	})
	if err != nil {
		return "", fmt.Errorf("render manifest: %w", err)
	}
	if err := w.AddText("album.json", manifest); err != nil {
		return "", err
	}

	return w.Finalize()
}

// packPhoto writes the photo's available variant images and returns its index
// card and manifest entry. Blob read failures are demoted to warnings.
func (p *Packager) packPhoto(ctx context.Context, photo *models.Photo, namer *Namer, w BundleWriter) (Card, ManifestPhoto, error) {
	title := photo.DisplayTitle()
	base := SafeFileName(title, "Фото_"+photo.ID)

	// Load the blobs of the variants we may reference. Unreadable payloads
	// drop out of the candidate set instead of failing the export.
	type loaded struct {
		variant models.PhotoVariant
		path    string
	}
	bysize := map[int]loaded{}
	for _, size := range []int{models.SizeSmall, models.SizeLarge} {
		v, ok := photo.VariantBySize(size)
		if !ok {
			continue
		}
		data, err := p.blobs.Get(ctx, v.BlobID)
		if err != nil {
			p.logger.Warn("variant blob unreadable, skipping", "photo", photo.ID, "blob", v.BlobID, "error", err)
			continue
		}
		path := namer.Unique(fmt.Sprintf("images/%s_%d%s", base, v.Size, imageExtension(data)))
		if err := w.AddFile(path, data); err != nil {
			return Card{}, ManifestPhoto{}, err
		}
		bysize[size] = loaded{variant: v, path: path}
	}

	small, smallOK := bysize[models.SizeSmall]
	large, largeOK := bysize[models.SizeLarge]
	if !smallOK {
		small, smallOK = large, largeOK
	}
	if !largeOK {
		large, largeOK = small, smallOK
	}

	card := Card{Title: title, Description: photo.Description}
	if smallOK {
		card.Small = small.path
		card.SmallWidth = small.variant.Width
		card.Large = large.path
		card.LargeWidth = large.variant.Width
	}

	manifestPhoto := ManifestPhoto{
		ID:          photo.ID,
		Title:       photo.Title,
		Description: photo.Description,
		Sizes:       map[string]string{},
	}
	for size, l := range bysize {
		manifestPhoto.Sizes[strconv.Itoa(size)] = l.path
	}

	return card, manifestPhoto, nil
}

// imageExtension derives the file extension from the encoded bytes' sniffed
// content type, never from the stored filename.
func imageExtension(data []byte) string {
	if ext := mimetype.Detect(data).Extension(); ext != "" {
		return ext
	}
	return fallbackExtension
}
