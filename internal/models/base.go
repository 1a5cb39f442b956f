package models

import "time"

// Base is the base model for all entities. Numeric autoincrement IDs match
// the legacy MySQL schema this service replaces.
type Base struct {
	ID        uint      `json:"id"         gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StringSlice is a []string that serializes as JSON in the database.
type StringSlice []string
