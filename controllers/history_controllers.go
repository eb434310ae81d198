package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nicholasph05/myc-restaurant-app/models"
	"github.com/nicholasph05/myc-restaurant-app/utils"
)

type HistoryController struct {
	DB *gorm.DB
}

func NewHistoryController(db *gorm.DB) *HistoryController {
	return &HistoryController{DB: db}
}

// CreateHistoryEntry -> record one past order for a customer. Every dish
// name must exist on the menu.
func (hc *HistoryController) CreateHistoryEntry(c *gin.Context) {
	var req struct {
		CustomerID uint                 `json:"customer_id"`
		Date       string               `json:"date"`
		Dishes     []models.HistoryDish `json:"dishes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.CustomerID == 0 || req.Date == "" || len(req.Dishes) == 0 {
		utils.RespondError(c, http.StatusBadRequest,
			errors.New("customer_id, date and a non-empty dishes list are required"))
		return
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("date must be a valid date (YYYY-MM-DD)"))
		return
	}

	var customer models.Customer
	if err := hc.DB.First(&customer, req.CustomerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound,
				fmt.Errorf("customer with id %d does not exist", req.CustomerID))
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	// Distinct names: the same dish may appear twice in one entry.
	names := make([]string, 0, len(req.Dishes))
	seen := make(map[string]bool, len(req.Dishes))
	for _, d := range req.Dishes {
		if seen[d.Name] {
			continue
		}
		seen[d.Name] = true
		names = append(names, d.Name)
	}
	var known []models.Dish
	if err := hc.DB.Where("name IN ?", names).Find(&known).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if len(known) != len(names) {
		knownNames := make(map[string]bool, len(known))
		for _, d := range known {
			knownNames[d.Name] = true
		}
		var unknown []string
		for _, name := range names {
			if !knownNames[name] {
				unknown = append(unknown, name)
			}
		}
		utils.RespondError(c, http.StatusBadRequest,
			fmt.Errorf("the following dishes do not exist: %s", strings.Join(unknown, ", ")))
		return
	}

	entry := models.HistoryEntry{
		CustomerID: req.CustomerID,
		Date:       req.Date,
		Dishes:     req.Dishes,
	}
	if err := hc.DB.Create(&entry).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "History entry created", entry)
}

// GetCustomerHistory -> all recorded entries for one customer, optionally
// bounded by ?from= / ?to= dates.
func (hc *HistoryController) GetCustomerHistory(c *gin.Context) {
	customerID := c.Param("customer_id")

	var customer models.Customer
	if err := hc.DB.First(&customer, customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, errors.New("customer not found"))
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	query := hc.DB.Where("customer_id = ?", customer.ID)

	from, to := c.Query("from"), c.Query("to")
	for param, value := range map[string]string{"from": from, "to": to} {
		if value == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", value); err != nil {
			utils.RespondError(c, http.StatusBadRequest,
				fmt.Errorf("%s must be a valid date (YYYY-MM-DD)", param))
			return
		}
	}
	if from != "" && to != "" && from > to {
		utils.RespondError(c, http.StatusBadRequest, errors.New("from cannot be later than to"))
		return
	}
	if from != "" {
		query = query.Where("date >= ?", from)
	}
	if to != "" {
		query = query.Where("date <= ?", to)
	}

	var entries []models.HistoryEntry
	if err := query.Order("date").Find(&entries).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Customer history", entries)
}
