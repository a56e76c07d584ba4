package album

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"fotos/internal/models"
)

const albumManifestName = "album.yaml"

// albumManifest is the optional metadata file read by ImportDirectory.
type albumManifest struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Cover       string `yaml:"cover"`
}

var rasterExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".webp": {},
}

// ImportDirectory creates an album from a directory of images. An optional
// album.yaml supplies title, description, and the cover file name; otherwise
// the directory name titles the album. Files are ingested in name order; a
// file that fails to decode fails the import.
func (s *Service) ImportDirectory(ctx context.Context, dir string) (*models.Album, error) {
	manifest, err := readAlbumManifest(dir)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(manifest.Title) == "" {
		manifest.Title = filepath.Base(filepath.Clean(dir))
	}

	names, err := listRasterFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no image files in %s", dir)
	}

	var cover *Source
	if manifest.Cover != "" {
		data, err := os.ReadFile(filepath.Join(dir, manifest.Cover))
		if err != nil {
			return nil, fmt.Errorf("read cover %s: %w", manifest.Cover, err)
		}
		cover = &Source{Name: manifest.Cover, Data: data}
	}

	created, err := s.CreateAlbum(ctx, manifest.Title, manifest.Description, cover)
	if err != nil {
		return nil, err
	}

	for _, name := range names {
		if name == manifest.Cover {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		if _, err := s.AppendPhotoToAlbum(ctx, created.ID, Source{Name: name, Data: data}, nil); err != nil {
			return nil, err
		}
	}

	return s.store.GetAlbum(ctx, created.ID)
}

func readAlbumManifest(dir string) (albumManifest, error) {
	var manifest albumManifest
	raw, err := os.ReadFile(filepath.Join(dir, albumManifestName))
	if errors.Is(err, os.ErrNotExist) {
		return manifest, nil
	}
	if err != nil {
		return manifest, err
	}
	if err := yaml.Unmarshal(raw, &manifest); err != nil {
		return manifest, fmt.Errorf("parse %s: %w", albumManifestName, err)
	}
	return manifest, nil
}

func listRasterFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if _, ok := rasterExtensions[ext]; ok {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
