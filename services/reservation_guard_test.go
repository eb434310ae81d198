package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/nicholasph05/myc-restaurant-app/models"
)

func setupGuardDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.Customer{}, &models.Table{}, &models.Reservation{}); err != nil {
		t.Fatal(err)
	}

	db.Create(&models.Customer{Name: "Nicholas", Email: "nicholas@example.com"})
	db.Create(&models.Customer{Name: "Maria", Email: "maria@example.com"})
	db.Create(&models.Table{Capacity: 4, Location: "terrace"})
	db.Create(&models.Table{Capacity: 8, Location: "main hall"})
	return db
}

func TestValidateCleanCandidate(t *testing.T) {
	db := setupGuardDB(t)
	guard := NewReservationGuard(db)

	errs, err := guard.Validate(ReservationCandidate{
		CustomerID: 1,
		TableID:    1,
		Date:       "2024-06-01",
		Time:       "19:00",
		PartySize:  4,
	}, 0)
	assert.NoError(t, err)
	assert.Empty(t, errs)
}

func TestValidateAccumulatesAllErrors(t *testing.T) {
	db := setupGuardDB(t)
	guard := NewReservationGuard(db)

	// Everything missing: one error per field, not just the first.
	errs, err := guard.Validate(ReservationCandidate{}, 0)
	assert.NoError(t, err)
	assert.Len(t, errs, 5)

	fields := make([]string, 0, len(errs))
	for _, e := range errs {
		fields = append(fields, e.Field)
	}
	assert.ElementsMatch(t, []string{"customer_id", "table_id", "date", "time", "party_size"}, fields)
}

func TestValidateUnknownReferences(t *testing.T) {
	db := setupGuardDB(t)
	guard := NewReservationGuard(db)

	errs, err := guard.Validate(ReservationCandidate{
		CustomerID: 99,
		TableID:    99,
		Date:       "2024-06-01",
		Time:       "19:00",
		PartySize:  2,
	}, 0)
	assert.NoError(t, err)
	assert.Len(t, errs, 2)
	assert.Equal(t, "customer_id", errs[0].Field)
	assert.Equal(t, "customer does not exist", errs[0].Message)
	assert.Equal(t, "table_id", errs[1].Field)
	assert.Equal(t, "table does not exist", errs[1].Message)
}

// Table seats 4, party of 6 -> capacity error carrying the limit.
func TestValidateCapacityExceeded(t *testing.T) {
	db := setupGuardDB(t)
	guard := NewReservationGuard(db)

	errs, err := guard.Validate(ReservationCandidate{
		CustomerID: 1,
		TableID:    1,
		Date:       "2024-06-01",
		Time:       "20:00",
		PartySize:  6,
	}, 0)
	assert.NoError(t, err)
	assert.Len(t, errs, 1)
	assert.Equal(t, "party_size", errs[0].Field)
	assert.Contains(t, errs[0].Message, "capacity of 4")
}

func TestValidateSlotOccupied(t *testing.T) {
	db := setupGuardDB(t)
	guard := NewReservationGuard(db)

	db.Create(&models.Reservation{
		CustomerID: 1, TableID: 2, Date: "2024-06-01", Time: "19:00", PartySize: 4,
	})

	// Same (table, date, time) from another customer -> rejected.
	candidate := ReservationCandidate{
		CustomerID: 2,
		TableID:    2,
		Date:       "2024-06-01",
		Time:       "19:00",
		PartySize:  4,
	}
	errs, err := guard.Validate(candidate, 0)
	assert.NoError(t, err)
	assert.Len(t, errs, 1)
	assert.Equal(t, "table_id", errs[0].Field)
	assert.Equal(t, "the table is already booked for that date and time", errs[0].Message)

	// Different time on the same table is free.
	candidate.Time = "21:00"
	errs, err = guard.Validate(candidate, 0)
	assert.NoError(t, err)
	assert.Empty(t, errs)
}

// Editing the occupying reservation itself must not collide with itself.
func TestValidateExcludesEditedReservation(t *testing.T) {
	db := setupGuardDB(t)
	guard := NewReservationGuard(db)

	existing := models.Reservation{
		CustomerID: 1, TableID: 2, Date: "2024-06-01", Time: "19:00", PartySize: 4,
	}
	db.Create(&existing)

	candidate := ReservationCandidate{
		CustomerID: 1,
		TableID:    2,
		Date:       "2024-06-01",
		Time:       "19:00",
		PartySize:  5,
	}
	errs, err := guard.Validate(candidate, existing.ID)
	assert.NoError(t, err)
	assert.Empty(t, errs)

	// Without the exclusion the same candidate is a conflict.
	errs, err = guard.Validate(candidate, 0)
	assert.NoError(t, err)
	assert.Len(t, errs, 1)
}

// Validating the same failing candidate twice yields the same error set.
func TestValidateIsIdempotent(t *testing.T) {
	db := setupGuardDB(t)
	guard := NewReservationGuard(db)

	candidate := ReservationCandidate{
		CustomerID: 99,
		TableID:    1,
		Date:       "2024-06-01",
		Time:       "19:00",
		PartySize:  6,
	}
	first, err := guard.Validate(candidate, 0)
	assert.NoError(t, err)
	second, err := guard.Validate(candidate, 0)
	assert.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestValidateMalformedDateAndTime(t *testing.T) {
	db := setupGuardDB(t)
	guard := NewReservationGuard(db)

	errs, err := guard.Validate(ReservationCandidate{
		CustomerID: 1,
		TableID:    1,
		Date:       "01/06/2024",
		Time:       "7pm",
		PartySize:  2,
	}, 0)
	assert.NoError(t, err)
	assert.Len(t, errs, 2)
	assert.Equal(t, "date", errs[0].Field)
	assert.Equal(t, "time", errs[1].Field)
}

// The unique index stays authoritative when two writers race past the check.
func TestSlotUniqueIndexBacksTheGuard(t *testing.T) {
	db := setupGuardDB(t)

	first := models.Reservation{CustomerID: 1, TableID: 1, Date: "2024-06-01", Time: "19:00", PartySize: 2}
	assert.NoError(t, db.Create(&first).Error)

	second := models.Reservation{CustomerID: 2, TableID: 1, Date: "2024-06-01", Time: "19:00", PartySize: 2}
	err := db.Create(&second).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}
