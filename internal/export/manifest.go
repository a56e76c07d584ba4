package export

import (
	"encoding/json"
	"time"
)

// Manifest is the machine-readable album.json written next to the index. The
// index never depends on it; it exists for manifest-driven viewers.
type Manifest struct {
	Title     string          `json:"title"`
	CreatedAt time.Time       `json:"createdAt"`
	Photos    []ManifestPhoto `json:"photos"`
}

// ManifestPhoto maps one photo's nominal sizes to relative bundle paths.
type ManifestPhoto struct {
	ID          string            `json:"id"`
	Title       string            `json:"title,omitempty"`
	Description string            `json:"description,omitempty"`
	Sizes       map[string]string `json:"sizes"`
}

func renderManifest(m Manifest) (string, error) {
	raw, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", err
	}
	return string(raw) + "\n", nil
}
