package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"fotos/internal/models"
)

const albumColumns = "id, title, description, cover_photo_id, created_at"

// PutAlbum inserts or replaces one album record and its photo ordering.
func (s *Store) PutAlbum(ctx context.Context, album *models.Album) (err error) {
	if album == nil {
		return fmt.Errorf("album is required")
	}
	if strings.TrimSpace(album.ID) == "" {
		return fmt.Errorf("album id is required")
	}
	if album.CreatedAt.IsZero() {
		album.CreatedAt = time.Now().UTC()
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
INSERT INTO albums (id, title, description, cover_photo_id, created_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  title = excluded.title,
  description = excluded.description,
  cover_photo_id = excluded.cover_photo_id`,
		album.ID, album.Title, nullableString(album.Description),
		nullableString(album.CoverPhotoID), formatTime(album.CreatedAt))
	if err != nil {
		return err
	}

	if _, err = tx.ExecContext(ctx, "DELETE FROM album_photos WHERE album_id = ?", album.ID); err != nil {
		return err
	}
	for pos, photoID := range album.PhotoIDs {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO album_photos (album_id, photo_id, position) VALUES (?, ?, ?)",
			album.ID, photoID, pos)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetAlbum returns one album with photo ids in display order.
func (s *Store) GetAlbum(ctx context.Context, id string) (*models.Album, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+albumColumns+` FROM albums WHERE id = ?`, id)

	var album models.Album
	var description, coverPhotoID sql.NullString
	var createdAt string

	err := row.Scan(&album.ID, &album.Title, &description, &coverPhotoID, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("album: %w", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	album.Description = description.String
	album.CoverPhotoID = coverPhotoID.String
	album.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT photo_id FROM album_photos WHERE album_id = ? ORDER BY position ASC", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	album.PhotoIDs = []string{}
	for rows.Next() {
		var photoID string
		if err := rows.Scan(&photoID); err != nil {
			return nil, err
		}
		album.PhotoIDs = append(album.PhotoIDs, photoID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &album, nil
}

// AlbumExists checks whether an album exists by id.
func (s *Store) AlbumExists(ctx context.Context, id string) (bool, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM albums WHERE id = ? LIMIT 1", id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListAlbums lists all albums ordered by creation time, newest first.
func (s *Store) ListAlbums(ctx context.Context) ([]models.Album, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+albumColumns+` FROM albums ORDER BY created_at DESC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var album models.Album
		var description, coverPhotoID sql.NullString
		var createdAt string
		if err := rows.Scan(&album.ID, &album.Title, &description, &coverPhotoID, &createdAt); err != nil {
			return nil, err
		}
		ids = append(ids, album.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	albums := make([]models.Album, 0, len(ids))
	for _, id := range ids {
		album, err := s.GetAlbum(ctx, id)
		if err != nil {
			return nil, err
		}
		albums = append(albums, *album)
	}
	return albums, nil
}
