package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/nicholasph05/myc-restaurant-app/models"
	"github.com/nicholasph05/myc-restaurant-app/utils"
)

type DishController struct {
	DB *gorm.DB
}

func NewDishController(db *gorm.DB) *DishController {
	return &DishController{DB: db}
}

type dishReq struct {
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Price     decimal.Decimal `json:"price"`
	Available *bool           `json:"available"`
}

func validateDish(req dishReq) error {
	if strings.TrimSpace(req.Name) == "" {
		return errors.New("name must be a non-empty string")
	}
	if strings.TrimSpace(req.Category) == "" {
		return errors.New("category must be a non-empty string")
	}
	if !req.Price.IsPositive() {
		return errors.New("price must be a positive number")
	}
	return nil
}

// GetAllDishes -> the menu; ?available=true narrows to orderable dishes.
func (dc *DishController) GetAllDishes(c *gin.Context) {
	query := dc.DB.Model(&models.Dish{})
	if c.Query("available") == "true" {
		query = query.Where("available = ?", true)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var dishes []models.Dish
	if err := query.Find(&dishes).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of dishes", dishes)
}

func (dc *DishController) GetDishByID(c *gin.Context) {
	id := c.Param("dish_id")

	var dish models.Dish
	if err := dc.DB.First(&dish, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, errors.New("dish not found"))
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Dish detail", dish)
}

func (dc *DishController) CreateDish(c *gin.Context) {
	var req dishReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := validateDish(req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}

	dish := models.Dish{
		Name:      req.Name,
		Category:  req.Category,
		Price:     req.Price,
		Available: available,
	}
	if err := dc.DB.Create(&dish).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.RespondFieldErrors(c, []utils.FieldError{{Field: "name", Message: "a dish with that name already exists"}})
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Dish created", dish)
}

func (dc *DishController) UpdateDish(c *gin.Context) {
	idStr := c.Param("dish_id")
	id, _ := strconv.Atoi(idStr)

	var dish models.Dish
	if err := dc.DB.First(&dish, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, errors.New("dish not found"))
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var req dishReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := validateDish(req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	dish.Name = req.Name
	dish.Category = req.Category
	dish.Price = req.Price
	if req.Available != nil {
		dish.Available = *req.Available
	}

	if err := dc.DB.Save(&dish).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.RespondFieldErrors(c, []utils.FieldError{{Field: "name", Message: "a dish with that name already exists"}})
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Dish updated", dish)
}

// DeleteDish -> refused while order lines still reference the dish; history
// keeps its captured prices either way.
func (dc *DishController) DeleteDish(c *gin.Context) {
	idStr := c.Param("dish_id")
	id, _ := strconv.Atoi(idStr)

	var dish models.Dish
	if err := dc.DB.First(&dish, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, errors.New("dish not found"))
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var lineCount int64
	if err := dc.DB.Model(&models.OrderLine{}).Where("dish_id = ?", dish.ID).Count(&lineCount).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if lineCount > 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("cannot delete a dish referenced by existing orders"))
		return
	}

	if err := dc.DB.Delete(&dish).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Dish deleted", gin.H{"dish_id": id})
}
