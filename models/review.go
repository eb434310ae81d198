package models

import "time"

type ConsumedDish struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type Review struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	CustomerID     uint           `gorm:"not null;index" json:"customer_id"`
	Date           string         `gorm:"type:varchar(10);not null" json:"date"`
	VisitType      string         `gorm:"type:varchar(20);not null" json:"visit_type"`
	DishesConsumed []ConsumedDish `gorm:"serializer:json" json:"dishes_consumed"`
	Comment        string         `gorm:"type:text" json:"comment"`
	Rating         int            `gorm:"not null" json:"rating"`
	CreatedAt      time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"not null" json:"updated_at"`
}
