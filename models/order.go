package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	CustomerID uint            `gorm:"not null" json:"customer_id"`
	Customer   Customer        `gorm:"foreignKey:CustomerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"customer"`
	Date       string          `gorm:"type:varchar(10);not null" json:"date"`
	Total      decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0.00" json:"total"`
	Lines      []OrderLine     `gorm:"foreignKey:OrderID" json:"lines"`
	CreatedAt  time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"not null" json:"updated_at"`
}
