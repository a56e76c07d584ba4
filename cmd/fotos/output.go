package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"fotos/internal/models"
)

func writeJSON(payload any) error {
	enc := json.NewEncoder(os.Stdout)
	return enc.Encode(payload)
}

func writePlain(format string, args ...any) error {
	_, err := fmt.Fprintf(os.Stdout, format, args...)
	return err
}

func writePhotoDetail(photo *models.Photo) error {
	lines := []string{
		fmt.Sprintf("id: %s", photo.ID),
		fmt.Sprintf("filename: %s", photo.Filename),
		fmt.Sprintf("original_blob: %s", photo.OriginalBlobID),
		fmt.Sprintf("created_at: %s", formatTime(photo.CreatedAt)),
	}
	if photo.Title != "" {
		lines = append(lines, fmt.Sprintf("title: %s", photo.Title))
	}
	if photo.Description != "" {
		lines = append(lines, fmt.Sprintf("description: %s", photo.Description))
	}
	if photo.Crop != nil {
		lines = append(lines, fmt.Sprintf("crop: %.0f,%.0f %.0fx%.0f", photo.Crop.X, photo.Crop.Y, photo.Crop.Width, photo.Crop.Height))
	}
	if len(photo.Variants) > 0 {
		lines = append(lines, "variants:")
		for _, v := range photo.Variants {
			lines = append(lines, fmt.Sprintf("  - %d: %dx%d (%s)", v.Size, v.Width, v.Height, v.BlobID))
		}
	}
	return writePlain("%s\n", strings.Join(lines, "\n"))
}

func writeAlbumDetail(album *models.Album) error {
	lines := []string{
		fmt.Sprintf("id: %s", album.ID),
		fmt.Sprintf("title: %s", album.Title),
		fmt.Sprintf("created_at: %s", formatTime(album.CreatedAt)),
		fmt.Sprintf("photos: %d", len(album.PhotoIDs)),
	}
	if album.Description != "" {
		lines = append(lines, fmt.Sprintf("description: %s", album.Description))
	}
	if cover := album.EffectiveCover(); cover != "" {
		lines = append(lines, fmt.Sprintf("cover: %s", cover))
	}
	for _, id := range album.PhotoIDs {
		lines = append(lines, fmt.Sprintf("  - %s", id))
	}
	return writePlain("%s\n", strings.Join(lines, "\n"))
}

func writeAlbumList(albums []models.Album) error {
	for _, album := range albums {
		if err := writePlain("%s [%d photos] - %s\n", album.ID, len(album.PhotoIDs), album.DisplayTitle()); err != nil {
			return err
		}
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
