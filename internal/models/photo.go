package models

import (
	"strings"
	"time"
)

// Nominal variant widths. The small size feeds thumbnails and grid views,
// the large size feeds full-screen viewing.
const (
	SizeSmall = 320
	SizeLarge = 1600
)

// DefaultVariantWidths is the variant set generated for every ingested photo.
var DefaultVariantWidths = []int{SizeSmall, SizeLarge}

// PhotoVariant is one encoded derivative of a photo at a nominal target width.
// Width and Height record the actual encoded raster, which can differ from
// the nominal size due to rounding.
type PhotoVariant struct {
	Size   int    `json:"size"`
	BlobID string `json:"blob_id"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Photo is the metadata record for one ingested photo. OriginalBlobID points
// at the untouched source bytes and is never mutated after creation.
type Photo struct {
	ID             string         `json:"id"`
	Filename       string         `json:"filename"`
	OriginalBlobID string         `json:"original_blob_id"`
	Title          string         `json:"title,omitempty"`
	Description    string         `json:"description,omitempty"`
	Variants       []PhotoVariant `json:"variants"`
	Crop           *Geometry      `json:"crop,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}

// VariantBySize returns the variant with the given nominal size, if present.
// A photo holds at most one variant per distinct size.
func (p *Photo) VariantBySize(size int) (PhotoVariant, bool) {
	if p == nil {
		return PhotoVariant{}, false
	}
	for _, v := range p.Variants {
		if v.Size == size {
			return v, true
		}
	}
	return PhotoVariant{}, false
}

// DisplayTitle returns the photo title, or a generated placeholder for
// untitled photos.
func (p *Photo) DisplayTitle() string {
	if p == nil {
		return ""
	}
	if title := strings.TrimSpace(p.Title); title != "" {
		return title
	}
	return "Фото_" + p.ID
}
