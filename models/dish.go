package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Dish struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Name      string          `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`
	Category  string          `gorm:"type:varchar(50)" json:"category"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	// No column default: gorm would skip an explicit false on insert and the
	// dish could never be stored unavailable. CreateDish applies the default.
	Available bool            `gorm:"not null" json:"available"`
	CreatedAt time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time       `gorm:"not null" json:"updated_at"`
}
