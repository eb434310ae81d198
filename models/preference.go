package models

import "time"

// Preference is upserted per customer, one row each.
type Preference struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	CustomerID      uint      `gorm:"not null;uniqueIndex" json:"customer_id"`
	Intolerances    []string  `gorm:"serializer:json" json:"intolerances"`
	PreferredStyles []string  `gorm:"serializer:json" json:"preferred_styles"`
	FavoriteDishes  []string  `gorm:"serializer:json" json:"favorite_dishes"`
	CreatedAt       time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null" json:"updated_at"`
}
