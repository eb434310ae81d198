package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/nicholasph05/myc-restaurant-app/models"
	"github.com/nicholasph05/myc-restaurant-app/services"
	"github.com/nicholasph05/myc-restaurant-app/utils"
)

type OrderController struct {
	DB     *gorm.DB
	Pricer *services.OrderPricer
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{
		DB:     db,
		Pricer: services.NewOrderPricer(db),
	}
}

// GetAllOrders -> list orders with their lines, optionally filtered by
// customer and/or date.
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	query := oc.DB.Preload("Lines").Preload("Lines.Dish").Preload("Customer")
	if customerID := c.Query("customer_id"); customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}
	if date := c.Query("date"); date != "" {
		query = query.Where("date = ?", date)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// GetOrderByID -> detail of one order
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	idStr := c.Param("order_id")
	id, _ := strconv.Atoi(idStr)

	var order models.Order
	if err := oc.DB.Preload("Lines").Preload("Lines.Dish").Preload("Customer").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// CreateOrder -> price the lines against the current menu and persist order
// plus lines together. The total is always recomputed server-side.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	type ReqBody struct {
		CustomerID uint                   `json:"customer_id"`
		Date       string                 `json:"date"`
		Lines      []services.LineRequest `json:"lines" binding:"required"`
	}

	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if ok := oc.requireCustomer(c, body.CustomerID); !ok {
		return
	}

	if body.Date == "" {
		body.Date = time.Now().Format("2006-01-02")
	}

	priced, err := oc.Pricer.PriceLines(body.Lines)
	if err != nil {
		oc.respondPricingError(c, err)
		return
	}

	order := models.Order{
		CustomerID: body.CustomerID,
		Date:       body.Date,
		Total:      priced.Total,
	}
	for _, line := range priced.Lines {
		order.Lines = append(order.Lines, models.OrderLine{
			DishID:    line.DishID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}

	if err := oc.DB.Create(&order).Error; err != nil {
		utils.ErrorLogger.Printf("failed to create order: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("failed to create order"))
		return
	}

	oc.DB.Preload("Lines").Preload("Lines.Dish").First(&order, order.ID)
	utils.InfoLogger.Printf("Order %d created, total %s", order.ID, utils.FormatAmount(order.Total))
	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

// UpdateOrder -> reconcile the persisted line set against the desired one
// (delete removed, update changed, insert new) and recompute the total, all
// inside one transaction so a mid-plan failure never leaves a half-applied
// line set.
func (oc *OrderController) UpdateOrder(c *gin.Context) {
	idStr := c.Param("order_id")
	id, _ := strconv.Atoi(idStr)

	var order models.Order
	if err := oc.DB.Preload("Lines").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	type ReqBody struct {
		CustomerID uint                   `json:"customer_id"`
		Date       string                 `json:"date"`
		Lines      []services.LineRequest `json:"lines" binding:"required"`
	}

	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if ok := oc.requireCustomer(c, body.CustomerID); !ok {
		return
	}
	if body.Date == "" {
		body.Date = order.Date
	}

	// The desired set is the new canonical content: price it first, so a bad
	// line rejects the whole update before anything is written.
	priced, err := oc.Pricer.PriceLines(body.Lines)
	if err != nil {
		oc.respondPricingError(c, err)
		return
	}

	plan := services.Reconcile(order.Lines, body.Lines)

	unitPrices := make(map[uint]decimal.Decimal, len(priced.Lines))
	for _, pl := range priced.Lines {
		unitPrices[pl.DishID] = pl.UnitPrice
	}

	tx := oc.DB.Begin()
	if tx.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, tx.Error)
		return
	}

	applyErr := func() error {
		if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).Updates(map[string]interface{}{
			"customer_id": body.CustomerID,
			"date":        body.Date,
			"total":       priced.Total,
		}).Error; err != nil {
			return err
		}

		for _, line := range plan.ToDelete {
			if err := tx.Delete(&models.OrderLine{}, line.ID).Error; err != nil {
				return err
			}
		}
		for _, line := range plan.ToUpdate {
			if err := tx.Model(&models.OrderLine{}).
				Where("id = ? AND order_id = ?", line.ID, order.ID).
				Updates(map[string]interface{}{
					"dish_id":    line.DishID,
					"quantity":   line.Quantity,
					"unit_price": unitPrices[line.DishID],
				}).Error; err != nil {
				return err
			}
		}
		for _, line := range plan.ToInsert {
			newLine := models.OrderLine{
				OrderID:   order.ID,
				DishID:    line.DishID,
				Quantity:  line.Quantity,
				UnitPrice: unitPrices[line.DishID],
			}
			if err := tx.Create(&newLine).Error; err != nil {
				return err
			}
		}
		return nil
	}()

	if applyErr != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			// Rollback itself failed: some plan steps may have stuck. Surface
			// this distinctly so an operator can inspect and repair.
			utils.ErrorLogger.Printf("PARTIAL APPLICATION: order %d reconcile failed (%v) and rollback failed (%v)",
				order.ID, applyErr, rbErr)
			utils.RespondError(c, http.StatusInternalServerError,
				fmt.Errorf("order update partially applied; order %d may be inconsistent", order.ID))
			return
		}
		utils.ErrorLogger.Printf("order %d reconcile rolled back: %v", order.ID, applyErr)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("failed to update order"))
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.ErrorLogger.Printf("PARTIAL APPLICATION: order %d reconcile commit failed: %v", order.ID, err)
		utils.RespondError(c, http.StatusInternalServerError,
			fmt.Errorf("order update partially applied; order %d may be inconsistent", order.ID))
		return
	}

	utils.InfoLogger.Printf("Order %d updated: %d deleted, %d updated, %d inserted, total %s",
		order.ID, len(plan.ToDelete), len(plan.ToUpdate), len(plan.ToInsert), utils.FormatAmount(priced.Total))
	utils.RespondJSON(c, http.StatusOK, "Order updated and synchronized", gin.H{"order_id": order.ID, "total": priced.Total})
}

// DeleteOrder -> removes the order and all of its lines.
func (oc *OrderController) DeleteOrder(c *gin.Context) {
	idStr := c.Param("order_id")
	id, _ := strconv.Atoi(idStr)

	var order models.Order
	if err := oc.DB.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	tx := oc.DB.Begin()
	if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderLine{}).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if err := tx.Delete(&order).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if err := tx.Commit().Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order and lines deleted", gin.H{"order_id": id})
}

// requireCustomer writes the error response and returns false when the
// referenced customer does not exist.
func (oc *OrderController) requireCustomer(c *gin.Context, customerID uint) bool {
	if customerID == 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("customer_id is required"))
		return false
	}
	var customer models.Customer
	if err := oc.DB.First(&customer, customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusBadRequest, errors.New("customer does not exist"))
			return false
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return false
	}
	return true
}

func (oc *OrderController) respondPricingError(c *gin.Context, err error) {
	var lineErr *services.InvalidLineError
	switch {
	case errors.Is(err, services.ErrNoLines):
		utils.RespondError(c, http.StatusBadRequest, err)
	case errors.As(err, &lineErr):
		utils.RespondError(c, http.StatusBadRequest, lineErr)
	default:
		utils.ErrorLogger.Printf("pricing failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("internal server error"))
	}
}
