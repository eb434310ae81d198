package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nicholasph05/myc-restaurant-app/models"
	"github.com/nicholasph05/myc-restaurant-app/utils"
)

var visitTypes = map[string]bool{
	"Breakfast": true,
	"Lunch":     true,
	"Dinner":    true,
	"Event":     true,
	"Other":     true,
}

type ReviewController struct {
	DB *gorm.DB
}

func NewReviewController(db *gorm.DB) *ReviewController {
	return &ReviewController{DB: db}
}

type reviewReq struct {
	CustomerID     uint                  `json:"customer_id"`
	Date           string                `json:"date"`
	VisitType      string                `json:"visit_type"`
	DishesConsumed []models.ConsumedDish `json:"dishes_consumed"`
	Comment        string                `json:"comment"`
	Rating         int                   `json:"rating"`
}

func (rc *ReviewController) validateReview(req reviewReq) ([]utils.FieldError, error) {
	errs := []utils.FieldError{}

	if req.CustomerID == 0 {
		errs = append(errs, utils.FieldError{Field: "customer_id", Message: "customer_id is required"})
	} else {
		var customer models.Customer
		if err := rc.DB.First(&customer, req.CustomerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				errs = append(errs, utils.FieldError{Field: "customer_id", Message: "customer does not exist"})
			} else {
				return nil, err
			}
		}
	}
	if !visitTypes[req.VisitType] {
		errs = append(errs, utils.FieldError{Field: "visit_type", Message: "visit_type must be one of Breakfast, Lunch, Dinner, Event, Other"})
	}
	if req.Rating < 1 || req.Rating > 5 {
		errs = append(errs, utils.FieldError{Field: "rating", Message: "rating must be between 1 and 5"})
	}
	return errs, nil
}

// GetAllReviews -> list reviews, narrowed by ?customer_id=, ?rating=,
// ?visit_type=, ?date= and/or ?dish= (name of a consumed dish).
func (rc *ReviewController) GetAllReviews(c *gin.Context) {
	query := rc.DB.Model(&models.Review{})
	if customerID := c.Query("customer_id"); customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}
	if rating := c.Query("rating"); rating != "" {
		query = query.Where("rating = ?", rating)
	}
	if visitType := c.Query("visit_type"); visitType != "" {
		query = query.Where("visit_type = ?", visitType)
	}
	if date := c.Query("date"); date != "" {
		query = query.Where("date = ?", date)
	}

	var reviews []models.Review
	if err := query.Find(&reviews).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	// The consumed dishes live in a serialized column, so this one filters
	// in memory.
	if dish := c.Query("dish"); dish != "" {
		filtered := make([]models.Review, 0, len(reviews))
		for _, review := range reviews {
			for _, consumed := range review.DishesConsumed {
				if consumed.Name == dish {
					filtered = append(filtered, review)
					break
				}
			}
		}
		reviews = filtered
	}
	utils.RespondJSON(c, http.StatusOK, "List of reviews", reviews)
}

func (rc *ReviewController) GetReviewByID(c *gin.Context) {
	id := c.Param("review_id")

	var review models.Review
	if err := rc.DB.First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, errors.New("review not found"))
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Review detail", review)
}

// UpdateReview -> full-field update, revalidated like a create.
func (rc *ReviewController) UpdateReview(c *gin.Context) {
	idStr := c.Param("review_id")
	id, _ := strconv.Atoi(idStr)

	var review models.Review
	if err := rc.DB.First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, errors.New("review not found"))
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var req reviewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	fieldErrs, err := rc.validateReview(req)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if len(fieldErrs) > 0 {
		utils.RespondFieldErrors(c, fieldErrs)
		return
	}

	review.CustomerID = req.CustomerID
	if req.Date != "" {
		review.Date = req.Date
	}
	review.VisitType = req.VisitType
	review.DishesConsumed = req.DishesConsumed
	review.Comment = req.Comment
	review.Rating = req.Rating

	if err := rc.DB.Save(&review).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Review updated", review)
}

func (rc *ReviewController) CreateReview(c *gin.Context) {
	var req reviewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	fieldErrs, err := rc.validateReview(req)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if len(fieldErrs) > 0 {
		utils.RespondFieldErrors(c, fieldErrs)
		return
	}

	if req.Date == "" {
		req.Date = time.Now().Format("2006-01-02")
	}

	review := models.Review{
		CustomerID:     req.CustomerID,
		Date:           req.Date,
		VisitType:      req.VisitType,
		DishesConsumed: req.DishesConsumed,
		Comment:        req.Comment,
		Rating:         req.Rating,
	}
	if err := rc.DB.Create(&review).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Review created", review)
}

func (rc *ReviewController) DeleteReview(c *gin.Context) {
	idStr := c.Param("review_id")
	id, _ := strconv.Atoi(idStr)

	var review models.Review
	if err := rc.DB.First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, errors.New("review not found"))
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if err := rc.DB.Delete(&review).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Review deleted", gin.H{"review_id": id})
}
