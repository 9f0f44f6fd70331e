package models

import "time"

// Album is a named collection of family media
type Album struct {
	ID        int64     `json:"id"`
	FamilyID  int64     `json:"familyId"`
	Title     string    `json:"title"`
	CoverURL  *string   `json:"coverUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// MediaItem is a single photo or video inside an album
type MediaItem struct {
	ID         int64     `json:"id"`
	AlbumID    int64     `json:"albumId"`
	URL        string    `json:"url"`
	UploadedBy int64     `json:"uploadedBy"`
	CreatedAt  time.Time `json:"createdAt"`
}
