package models

import "time"

// Reservation occupies a single (table, date, time) slot. The composite
// unique index is the authoritative guard against double booking; the
// in-process check in services.ReservationGuard only exists for friendly
// error messages.
type Reservation struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CustomerID uint      `gorm:"not null" json:"customer_id"`
	Customer   Customer  `gorm:"foreignKey:CustomerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"customer"`
	TableID    uint      `gorm:"not null;uniqueIndex:idx_reservation_slot" json:"table_id"`
	Table      Table     `gorm:"foreignKey:TableID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"table"`
	Date       string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_reservation_slot" json:"date"`
	Time       string    `gorm:"type:varchar(8);not null;uniqueIndex:idx_reservation_slot" json:"time"`
	PartySize  int       `gorm:"not null" json:"party_size"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}
