package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"fotos/internal/models"
)

const photoColumns = "id, filename, original_blob_id, title, description, crop_json, created_at"

// PutPhoto inserts or replaces one photo record together with its variant
// list. Regenerated variants fully replace the previous list.
func (s *Store) PutPhoto(ctx context.Context, photo *models.Photo) (err error) {
	if photo == nil {
		return fmt.Errorf("photo is required")
	}
	if strings.TrimSpace(photo.ID) == "" {
		return fmt.Errorf("photo id is required")
	}
	if photo.CreatedAt.IsZero() {
		photo.CreatedAt = time.Now().UTC()
	}

	cropJSON, err := cropToJSON(photo.Crop)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx, `
INSERT INTO photos (id, filename, original_blob_id, title, description, crop_json, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  filename = excluded.filename,
  original_blob_id = excluded.original_blob_id,
  title = excluded.title,
  description = excluded.description,
  crop_json = excluded.crop_json`,
		photo.ID, photo.Filename, photo.OriginalBlobID,
		nullableString(photo.Title), nullableString(photo.Description),
		cropJSON, formatTime(photo.CreatedAt))
	if err != nil {
		return err
	}

	if _, err = tx.ExecContext(ctx, "DELETE FROM photo_variants WHERE photo_id = ?", photo.ID); err != nil {
		return err
	}
	for _, v := range photo.Variants {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO photo_variants (photo_id, size, blob_id, width, height) VALUES (?, ?, ?, ?, ?)",
			photo.ID, v.Size, v.BlobID, v.Width, v.Height)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetPhoto returns one photo with its variants ordered by nominal size.
func (s *Store) GetPhoto(ctx context.Context, id string) (*models.Photo, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+photoColumns+` FROM photos WHERE id = ?`, id)
	photo, err := scanPhoto(row)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT size, blob_id, width, height FROM photo_variants WHERE photo_id = ? ORDER BY size ASC", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var v models.PhotoVariant
		if err := rows.Scan(&v.Size, &v.BlobID, &v.Width, &v.Height); err != nil {
			return nil, err
		}
		photo.Variants = append(photo.Variants, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return photo, nil
}

// PhotoExists checks whether a photo exists by id.
func (s *Store) PhotoExists(ctx context.Context, id string) (bool, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM photos WHERE id = ? LIMIT 1", id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// CountPhotos returns the number of photo records.
func (s *Store) CountPhotos(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM photos").Scan(&count)
	return count, err
}

// ListPhotoIDs lists all photo ids ordered by creation time.
func (s *Store) ListPhotoIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id FROM photos ORDER BY created_at ASC, id ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// UpdatePhotoMeta updates the editable title/description fields of a photo.
func (s *Store) UpdatePhotoMeta(ctx context.Context, id string, title, description *string) error {
	photo, err := s.GetPhoto(ctx, id)
	if err != nil {
		return err
	}
	if title != nil {
		photo.Title = *title
	}
	if description != nil {
		photo.Description = *description
	}
	return s.PutPhoto(ctx, photo)
}

// DeletePhoto deletes one photo record and its variant rows. Blob payloads
// are not touched.
func (s *Store) DeletePhoto(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM photos WHERE id = ?", id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPhoto(row rowScanner) (*models.Photo, error) {
	var photo models.Photo
	var title, description, cropJSON sql.NullString
	var createdAt string

	err := row.Scan(&photo.ID, &photo.Filename, &photo.OriginalBlobID, &title, &description, &cropJSON, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("photo: %w", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	photo.Title = title.String
	photo.Description = description.String
	if cropJSON.Valid && cropJSON.String != "" {
		var crop models.Geometry
		if err := json.Unmarshal([]byte(cropJSON.String), &crop); err != nil {
			return nil, fmt.Errorf("decode crop for photo %s: %w", photo.ID, err)
		}
		photo.Crop = &crop
	}
	photo.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}

	return &photo, nil
}

func cropToJSON(crop *models.Geometry) (sql.NullString, error) {
	if crop == nil {
		return sql.NullString{}, nil
	}
	raw, err := json.Marshal(crop)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(raw), Valid: true}, nil
}

func nullableString(value string) sql.NullString {
	if value == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(raw string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse stored time %q: %w", raw, err)
	}
	return t, nil
}
