package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nicholasph05/myc-restaurant-app/models"
	"github.com/nicholasph05/myc-restaurant-app/services"
	"github.com/nicholasph05/myc-restaurant-app/utils"
)

type ReservationController struct {
	DB    *gorm.DB
	Guard *services.ReservationGuard
}

func NewReservationController(db *gorm.DB) *ReservationController {
	return &ReservationController{
		DB:    db,
		Guard: services.NewReservationGuard(db),
	}
}

// reservationView flattens the customer name into the payload the list
// screens render.
type reservationView struct {
	ID        uint   `json:"id"`
	Customer  string `json:"customer"`
	TableID   uint   `json:"table_id"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	PartySize int    `json:"party_size"`
}

// GetAllReservations -> list reservations, optionally filtered by customer
// and/or date.
func (rc *ReservationController) GetAllReservations(c *gin.Context) {
	query := rc.DB.Preload("Customer")
	if customerID := c.Query("customer_id"); customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}
	if date := c.Query("date"); date != "" {
		query = query.Where("date = ?", date)
	}

	var reservations []models.Reservation
	if err := query.Find(&reservations).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	views := make([]reservationView, 0, len(reservations))
	for _, r := range reservations {
		views = append(views, reservationView{
			ID:        r.ID,
			Customer:  r.Customer.Name,
			TableID:   r.TableID,
			Date:      r.Date,
			Time:      r.Time,
			PartySize: r.PartySize,
		})
	}
	utils.RespondJSON(c, http.StatusOK, "List of reservations", views)
}

// GetReservationByID -> detail of one reservation
func (rc *ReservationController) GetReservationByID(c *gin.Context) {
	id := c.Param("reservation_id")

	var reservation models.Reservation
	if err := rc.DB.Preload("Customer").Preload("Table").First(&reservation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, errors.New("reservation not found"))
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservation detail", reservation)
}

// CreateReservation -> validate the slot then insert. The guard gives the
// friendly error; the unique index on (table_id, date, time) decides the
// winner if a concurrent request targets the same slot between our check and
// the insert.
func (rc *ReservationController) CreateReservation(c *gin.Context) {
	var candidate services.ReservationCandidate
	if err := c.ShouldBindJSON(&candidate); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	fieldErrs, err := rc.Guard.Validate(candidate, 0)
	if err != nil {
		utils.ErrorLogger.Printf("reservation validation failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("internal server error"))
		return
	}
	if len(fieldErrs) > 0 {
		utils.RespondFieldErrors(c, fieldErrs)
		return
	}

	reservation := models.Reservation{
		CustomerID: candidate.CustomerID,
		TableID:    candidate.TableID,
		Date:       candidate.Date,
		Time:       candidate.Time,
		PartySize:  candidate.PartySize,
	}
	if err := rc.DB.Create(&reservation).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the slot race after a clean check.
			utils.RespondFieldErrors(c, services.SlotOccupiedError())
			return
		}
		utils.ErrorLogger.Printf("failed to create reservation: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("failed to create reservation"))
		return
	}

	rc.DB.Preload("Customer").First(&reservation, reservation.ID)
	utils.InfoLogger.Printf("Reservation %d created: table %d on %s %s",
		reservation.ID, reservation.TableID, reservation.Date, reservation.Time)
	utils.RespondJSON(c, http.StatusCreated, "Reservation created", reservation)
}

// UpdateReservation -> full-field update, revalidated like a create but
// excluding the edited reservation from the slot-conflict search.
func (rc *ReservationController) UpdateReservation(c *gin.Context) {
	idStr := c.Param("reservation_id")
	id, _ := strconv.Atoi(idStr)

	var reservation models.Reservation
	if err := rc.DB.First(&reservation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, errors.New("reservation not found"))
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var candidate services.ReservationCandidate
	if err := c.ShouldBindJSON(&candidate); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	fieldErrs, err := rc.Guard.Validate(candidate, reservation.ID)
	if err != nil {
		utils.ErrorLogger.Printf("reservation validation failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("internal server error"))
		return
	}
	if len(fieldErrs) > 0 {
		utils.RespondFieldErrors(c, fieldErrs)
		return
	}

	reservation.CustomerID = candidate.CustomerID
	reservation.TableID = candidate.TableID
	reservation.Date = candidate.Date
	reservation.Time = candidate.Time
	reservation.PartySize = candidate.PartySize

	if err := rc.DB.Save(&reservation).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.RespondFieldErrors(c, services.SlotOccupiedError())
			return
		}
		utils.ErrorLogger.Printf("failed to update reservation %d: %v", reservation.ID, err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("failed to update reservation"))
		return
	}

	rc.DB.Preload("Customer").First(&reservation, reservation.ID)
	utils.RespondJSON(c, http.StatusOK, "Reservation updated", reservation)
}

// DeleteReservation -> no cascade, reservations stand alone.
func (rc *ReservationController) DeleteReservation(c *gin.Context) {
	idStr := c.Param("reservation_id")
	id, _ := strconv.Atoi(idStr)

	var reservation models.Reservation
	if err := rc.DB.First(&reservation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, errors.New("reservation not found"))
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if err := rc.DB.Delete(&reservation).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservation deleted", gin.H{"reservation_id": id})
}
