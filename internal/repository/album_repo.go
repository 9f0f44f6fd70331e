package repository

import (
	"fmt"
	"time"

	"kyn/internal/database"
	"kyn/internal/models"
)

// AlbumRepository handles database operations for albums and media
type AlbumRepository struct {
	db *database.DB
}

// NewAlbumRepository creates a new album repository
func NewAlbumRepository(db *database.DB) *AlbumRepository {
	return &AlbumRepository{db: db}
}

// CreateAlbum inserts an album
func (r *AlbumRepository) CreateAlbum(familyID int64, title string, coverURL *string) (*models.Album, error) {
	query := "INSERT INTO albums (family_id, title, cover_url) VALUES (?, ?, ?)"
	id, err := r.db.ExecReturningID(query, familyID, title, coverURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create album: %w", err)
	}

	return &models.Album{
		ID:        id,
		FamilyID:  familyID,
		Title:     title,
		CoverURL:  coverURL,
		CreatedAt: time.Now(),
	}, nil
}

// ListAlbums retrieves a family's albums, newest first
func (r *AlbumRepository) ListAlbums(familyID int64) ([]models.Album, error) {
	query := "SELECT id, family_id, title, cover_url, created_at FROM albums WHERE family_id = ? ORDER BY created_at DESC"
	rows, err := r.db.Query(query, familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query albums: %w", err)
	}
	defer rows.Close()

	var albums []models.Album
	for rows.Next() {
		var a models.Album
		if err := rows.Scan(&a.ID, &a.FamilyID, &a.Title, &a.CoverURL, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan album: %w", err)
		}
		albums = append(albums, a)
	}

	return albums, rows.Err()
}

// AlbumBelongsToFamily checks album ownership before touching its media
func (r *AlbumRepository) AlbumBelongsToFamily(albumID, familyID int64) (bool, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM albums WHERE id = ? AND family_id = ?", albumID, familyID).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check album family: %w", err)
	}
	return count > 0, nil
}

// AddMedia inserts a media item into an album
func (r *AlbumRepository) AddMedia(albumID int64, url string, uploadedBy int64) (*models.MediaItem, error) {
	query := "INSERT INTO media (album_id, url, uploaded_by) VALUES (?, ?, ?)"
	id, err := r.db.ExecReturningID(query, albumID, url, uploadedBy)
	if err != nil {
		return nil, fmt.Errorf("failed to add media: %w", err)
	}

	return &models.MediaItem{
		ID:         id,
		AlbumID:    albumID,
		URL:        url,
		UploadedBy: uploadedBy,
		CreatedAt:  time.Now(),
	}, nil
}

// ListMedia retrieves an album's media items in upload order
func (r *AlbumRepository) ListMedia(albumID int64) ([]models.MediaItem, error) {
	query := "SELECT id, album_id, url, uploaded_by, created_at FROM media WHERE album_id = ? ORDER BY created_at ASC"
	rows, err := r.db.Query(query, albumID)
	if err != nil {
		return nil, fmt.Errorf("failed to query media: %w", err)
	}
	defer rows.Close()

	var items []models.MediaItem
	for rows.Next() {
		var m models.MediaItem
		if err := rows.Scan(&m.ID, &m.AlbumID, &m.URL, &m.UploadedBy, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan media item: %w", err)
		}
		items = append(items, m)
	}

	return items, rows.Err()
}
