package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/nicholasph05/myc-restaurant-app/models"
	"github.com/nicholasph05/myc-restaurant-app/utils"
)

// ReservationCandidate is the payload of a reservation create or update.
type ReservationCandidate struct {
	CustomerID uint   `json:"customer_id"`
	TableID    uint   `json:"table_id"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	PartySize  int    `json:"party_size"`
}

// ReservationGuard validates reservation candidates. It is read-only: the
// caller performs the actual insert/update after a clean validation, and the
// unique index on (table_id, date, time) remains the real slot guarantee.
type ReservationGuard struct {
	DB *gorm.DB
}

func NewReservationGuard(db *gorm.DB) *ReservationGuard {
	return &ReservationGuard{DB: db}
}

// Validate accumulates every violated rule as a field error instead of
// stopping at the first one, so the form can show all problems at once.
// excludeID is the reservation being edited (0 on create); it is skipped in
// the slot-conflict search so an edit does not collide with itself.
//
// A non-nil error is an unexpected storage failure, not a validation result.
func (g *ReservationGuard) Validate(candidate ReservationCandidate, excludeID uint) ([]utils.FieldError, error) {
	errs := []utils.FieldError{}

	if candidate.CustomerID == 0 {
		errs = append(errs, utils.FieldError{Field: "customer_id", Message: "customer_id is required"})
	}
	if candidate.TableID == 0 {
		errs = append(errs, utils.FieldError{Field: "table_id", Message: "table_id is required"})
	}
	if candidate.Date == "" {
		errs = append(errs, utils.FieldError{Field: "date", Message: "date is required"})
	} else if _, err := time.Parse("2006-01-02", candidate.Date); err != nil {
		errs = append(errs, utils.FieldError{Field: "date", Message: "date must be a valid date (YYYY-MM-DD)"})
	}
	if candidate.Time == "" {
		errs = append(errs, utils.FieldError{Field: "time", Message: "time is required"})
	} else if !validTimeOfDay(candidate.Time) {
		errs = append(errs, utils.FieldError{Field: "time", Message: "time must be a valid time (HH:MM)"})
	}
	if candidate.PartySize == 0 {
		errs = append(errs, utils.FieldError{Field: "party_size", Message: "party_size is required"})
	} else if candidate.PartySize < 0 {
		errs = append(errs, utils.FieldError{Field: "party_size", Message: "party_size must be a positive integer"})
	}

	if candidate.CustomerID != 0 {
		var customer models.Customer
		if err := g.DB.First(&customer, candidate.CustomerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				errs = append(errs, utils.FieldError{Field: "customer_id", Message: "customer does not exist"})
			} else {
				return nil, err
			}
		}
	}

	var table *models.Table
	if candidate.TableID != 0 {
		var t models.Table
		if err := g.DB.First(&t, candidate.TableID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				errs = append(errs, utils.FieldError{Field: "table_id", Message: "table does not exist"})
			} else {
				return nil, err
			}
		} else {
			table = &t
		}
	}

	if table != nil && candidate.PartySize > 0 && candidate.PartySize > table.Capacity {
		errs = append(errs, utils.FieldError{
			Field:   "party_size",
			Message: fmt.Sprintf("the selected table has a maximum capacity of %d people", table.Capacity),
		})
	}

	// Slot check compares date and time on exact equality: a reservation
	// occupies a single point-in-time slot, not an interval.
	if candidate.TableID != 0 && candidate.Date != "" && candidate.Time != "" {
		query := g.DB.Where("table_id = ? AND date = ? AND time = ?",
			candidate.TableID, candidate.Date, candidate.Time)
		if excludeID != 0 {
			query = query.Where("id <> ?", excludeID)
		}

		var existing models.Reservation
		if err := query.First(&existing).Error; err == nil {
			errs = append(errs, utils.FieldError{
				Field:   "table_id",
				Message: "the table is already booked for that date and time",
			})
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	return errs, nil
}

// SlotOccupiedError is the field-error shape of a (table, date, time)
// conflict, used to translate a storage-level duplicate-key failure when a
// concurrent request won the slot between our check and the write.
func SlotOccupiedError() []utils.FieldError {
	return []utils.FieldError{{
		Field:   "table_id",
		Message: "the table is already booked for that date and time",
	}}
}

func validTimeOfDay(s string) bool {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}
