package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nicholasph05/myc-restaurant-app/models"
	"github.com/nicholasph05/myc-restaurant-app/services"
	"github.com/nicholasph05/myc-restaurant-app/utils"
)

type RecommendationController struct {
	DB *gorm.DB
}

func NewRecommendationController(db *gorm.DB) *RecommendationController {
	return &RecommendationController{DB: db}
}

// UpsertRecommendation -> replace the stored entries for a customer.
func (rc *RecommendationController) UpsertRecommendation(c *gin.Context) {
	var req struct {
		CustomerID uint                         `json:"customer_id"`
		Entries    []models.RecommendationEntry `json:"entries"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.CustomerID == 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("customer_id is required"))
		return
	}

	rec, err := rc.saveEntries(req.CustomerID, req.Entries)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Recommendations saved", rec)
}

// GetRecommendation -> stored entries for one customer
func (rc *RecommendationController) GetRecommendation(c *gin.Context) {
	customerID := c.Param("customer_id")

	var rec models.Recommendation
	if err := rc.DB.Where("customer_id = ?", customerID).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, errors.New("no recommendations found"))
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Recommendations", rec)
}

func (rc *RecommendationController) DeleteRecommendation(c *gin.Context) {
	customerID := c.Param("customer_id")

	result := rc.DB.Where("customer_id = ?", customerID).Delete(&models.Recommendation{})
	if result.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, errors.New("no recommendations found to delete"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Recommendations deleted", gin.H{"customer_id": customerID})
}

// GenerateRecommendation -> build fresh entries from the customer's stored
// preferences and the available menu, then persist them.
func (rc *RecommendationController) GenerateRecommendation(c *gin.Context) {
	customerID := c.Param("customer_id")

	var customer models.Customer
	if err := rc.DB.First(&customer, customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, errors.New("customer does not exist"))
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var pref models.Preference
	if err := rc.DB.Where("customer_id = ?", customer.ID).First(&pref).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, errors.New("customer has no stored preferences"))
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var dishes []models.Dish
	if err := rc.DB.Where("available = ?", true).Find(&dishes).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	entries := services.BuildRecommendations(pref, dishes, time.Now().Format("2006-01-02"))

	rec, err := rc.saveEntries(customer.ID, entries)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.InfoLogger.Printf("Generated %d recommendations for customer %d", len(entries), customer.ID)
	utils.RespondJSON(c, http.StatusOK, "Recommendations generated", rec)
}

func (rc *RecommendationController) saveEntries(customerID uint, entries []models.RecommendationEntry) (*models.Recommendation, error) {
	var rec models.Recommendation
	err := rc.DB.Where("customer_id = ?", customerID).First(&rec).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		rec = models.Recommendation{CustomerID: customerID}
	case err != nil:
		return nil, err
	}

	rec.Entries = entries
	if err := rc.DB.Save(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}
