package models

import (
	"strings"
	"time"
)

// DefaultAlbumTitle is used when an album is created without a title.
const DefaultAlbumTitle = "Без названия"

// Album groups photos in display order. PhotoIDs ordering is owned by the
// album; a photo belongs to exactly one album.
type Album struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	PhotoIDs     []string  `json:"photo_ids"`
	CoverPhotoID string    `json:"cover_photo_id,omitempty"`
}

// ContainsPhoto reports whether id is part of the album.
func (a *Album) ContainsPhoto(id string) bool {
	if a == nil {
		return false
	}
	for _, pid := range a.PhotoIDs {
		if pid == id {
			return true
		}
	}
	return false
}

// EffectiveCover returns the cover photo id, or empty when unset. A dangling
// cover id left behind by legacy data reads as "no cover" rather than an
// error.
func (a *Album) EffectiveCover() string {
	if a == nil || a.CoverPhotoID == "" {
		return ""
	}
	if !a.ContainsPhoto(a.CoverPhotoID) {
		return ""
	}
	return a.CoverPhotoID
}

// DisplayTitle returns the album title, or a generated placeholder for
// untitled albums.
func (a *Album) DisplayTitle() string {
	if a == nil {
		return ""
	}
	if title := strings.TrimSpace(a.Title); title != "" {
		return title
	}
	return "album_" + a.ID
}
