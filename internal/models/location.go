package models

import "time"

// Location is a saved family place shown on the map page
type Location struct {
	ID        int64     `json:"id"`
	FamilyID  int64     `json:"familyId"`
	Label     string    `json:"label"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	CreatedAt time.Time `json:"createdAt"`
}
