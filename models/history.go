package models

import "time"

type HistoryDish struct {
	Name        string `json:"name"`
	Observation string `json:"observation,omitempty"`
}

// HistoryEntry is one denormalized past order, kept for quick per-customer
// consultation without joining the orders tables.
type HistoryEntry struct {
	ID         uint          `gorm:"primaryKey" json:"id"`
	CustomerID uint          `gorm:"not null;index" json:"customer_id"`
	// varchar, not a DATE column: a DATE scans back as a full timestamp on
	// some drivers and the validated "YYYY-MM-DD" string would not round-trip.
	Date       string        `gorm:"type:varchar(10);not null" json:"date"`
	Dishes     []HistoryDish `gorm:"serializer:json" json:"dishes"`
	CreatedAt  time.Time     `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time     `gorm:"not null" json:"updated_at"`
}
