package main

import (
	"os"

	"fotos/internal/album"
	"fotos/internal/blobstore"
	"fotos/internal/config"
	"fotos/internal/export"
	"fotos/internal/store"
	"fotos/internal/variant"
)

// app bundles the opened stores and services for one command invocation.
type app struct {
	cfg      *config.Config
	store    *store.Store
	blobs    *blobstore.Local
	albums   *album.Service
	packager *export.Packager
}

// withApp opens the data directory, runs fn, and closes everything again.
func withApp(cfg *config.Config, fn func(*app) error) error {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return err
	}

	st, err := store.Open(cfg.DBPath())
	if err != nil {
		return err
	}
	defer st.Close()

	blobs, err := blobstore.NewLocal(cfg.BlobDir())
	if err != nil {
		return err
	}

	opts := variant.Options{
		QualitySmall:  cfg.Variants.QualitySmall,
		QualityLarge:  cfg.Variants.QualityLarge,
		SmallMaxWidth: cfg.Variants.SmallMaxWidth,
	}

	return fn(&app{
		cfg:      cfg,
		store:    st,
		blobs:    blobs,
		albums:   album.NewService(st, blobs, cfg.Variants.Widths, opts),
		packager: export.NewPackager(st, blobs),
	})
}
