package controllers

import (
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nicholasph05/myc-restaurant-app/models"
	"github.com/nicholasph05/myc-restaurant-app/utils"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\d{7,15}$`)
)

type CustomerController struct {
	DB *gorm.DB
}

func NewCustomerController(db *gorm.DB) *CustomerController {
	return &CustomerController{DB: db}
}

type customerReq struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// validateCustomer accumulates field errors; excludeID skips the edited
// customer in the unique-email search.
func (cc *CustomerController) validateCustomer(req customerReq, excludeID uint) ([]utils.FieldError, error) {
	errs := []utils.FieldError{}

	if strings.TrimSpace(req.Name) == "" {
		errs = append(errs, utils.FieldError{Field: "name", Message: "name is required"})
	}
	if strings.TrimSpace(req.Email) == "" {
		errs = append(errs, utils.FieldError{Field: "email", Message: "email is required"})
	} else if !emailPattern.MatchString(req.Email) {
		errs = append(errs, utils.FieldError{Field: "email", Message: "email has an invalid format"})
	} else {
		query := cc.DB.Where("email = ?", req.Email)
		if excludeID != 0 {
			query = query.Where("id <> ?", excludeID)
		}
		var existing models.Customer
		if err := query.First(&existing).Error; err == nil {
			errs = append(errs, utils.FieldError{Field: "email", Message: "email is already registered"})
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	if req.Phone != "" && !phonePattern.MatchString(req.Phone) {
		errs = append(errs, utils.FieldError{Field: "phone", Message: "phone must contain 7 to 15 digits"})
	}
	return errs, nil
}

// GetAllCustomers -> list of customers
func (cc *CustomerController) GetAllCustomers(c *gin.Context) {
	var customers []models.Customer
	if err := cc.DB.Find(&customers).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of customers", customers)
}

func (cc *CustomerController) GetCustomerByID(c *gin.Context) {
	id := c.Param("customer_id")

	var customer models.Customer
	if err := cc.DB.First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, errors.New("customer not found"))
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Customer detail", customer)
}

func (cc *CustomerController) CreateCustomer(c *gin.Context) {
	var req customerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	fieldErrs, err := cc.validateCustomer(req, 0)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if len(fieldErrs) > 0 {
		utils.RespondFieldErrors(c, fieldErrs)
		return
	}

	customer := models.Customer{Name: req.Name, Email: req.Email, Phone: req.Phone}
	if err := cc.DB.Create(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.RespondFieldErrors(c, []utils.FieldError{{Field: "email", Message: "email is already registered"}})
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Customer created", customer)
}

func (cc *CustomerController) UpdateCustomer(c *gin.Context) {
	idStr := c.Param("customer_id")
	id, _ := strconv.Atoi(idStr)

	var customer models.Customer
	if err := cc.DB.First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, errors.New("customer not found"))
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var req customerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	fieldErrs, err := cc.validateCustomer(req, customer.ID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if len(fieldErrs) > 0 {
		utils.RespondFieldErrors(c, fieldErrs)
		return
	}

	customer.Name = req.Name
	customer.Email = req.Email
	customer.Phone = req.Phone
	if err := cc.DB.Save(&customer).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Customer updated", customer)
}

// DeleteCustomer -> refused while the customer still has orders.
func (cc *CustomerController) DeleteCustomer(c *gin.Context) {
	idStr := c.Param("customer_id")
	id, _ := strconv.Atoi(idStr)

	var customer models.Customer
	if err := cc.DB.First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, errors.New("customer not found"))
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var orderCount int64
	if err := cc.DB.Model(&models.Order{}).Where("customer_id = ?", customer.ID).Count(&orderCount).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if orderCount > 0 {
		utils.RespondFieldErrors(c, []utils.FieldError{{
			Field:   "general",
			Message: "cannot delete a customer with associated orders",
		}})
		return
	}

	if err := cc.DB.Delete(&customer).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Customer deleted", gin.H{"customer_id": id})
}
