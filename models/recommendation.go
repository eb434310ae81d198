package models

import "time"

type RecommendationEntry struct {
	Date   string `json:"date"`
	Dish   string `json:"dish"`
	Reason string `json:"reason"`
}

// Recommendation holds the generated suggestions for one customer.
type Recommendation struct {
	ID         uint                  `gorm:"primaryKey" json:"id"`
	CustomerID uint                  `gorm:"not null;uniqueIndex" json:"customer_id"`
	Entries    []RecommendationEntry `gorm:"serializer:json" json:"entries"`
	CreatedAt  time.Time             `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time             `gorm:"not null" json:"updated_at"`
}
