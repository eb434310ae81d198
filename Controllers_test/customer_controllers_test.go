package Controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/nicholasph05/myc-restaurant-app/controllers"
	"github.com/nicholasph05/myc-restaurant-app/models"
	"github.com/nicholasph05/myc-restaurant-app/utils"
)

func setupTestDBForCustomers(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(&models.Customer{}, &models.Order{})
	if err != nil {
		t.Fatal(err)
	}
	return db
}

func setupCustomerRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	customerCtrl := controllers.NewCustomerController(db)
	router.GET("/customers", customerCtrl.GetAllCustomers)
	router.POST("/customers", customerCtrl.CreateCustomer)
	router.PUT("/customers/:customer_id", customerCtrl.UpdateCustomer)
	router.DELETE("/customers/:customer_id", customerCtrl.DeleteCustomer)
	return router
}

func TestCreateCustomer(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForCustomers(t)
	router := setupCustomerRouter(db)

	w := postJSON(t, router, "POST", "/customers", map[string]interface{}{
		"name":  "Nicholas",
		"email": "nicholas@example.com",
		"phone": "5551234567",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var count int64
	db.Model(&models.Customer{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCreateCustomerValidation(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForCustomers(t)
	router := setupCustomerRouter(db)

	w := postJSON(t, router, "POST", "/customers", map[string]interface{}{
		"name":  "",
		"email": "not-an-email",
		"phone": "abc",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Errors []utils.FieldError `json:"errors"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Errors, 3)
}

func TestCreateCustomerDuplicateEmail(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForCustomers(t)
	router := setupCustomerRouter(db)

	db.Create(&models.Customer{Name: "Nicholas", Email: "nicholas@example.com"})

	w := postJSON(t, router, "POST", "/customers", map[string]interface{}{
		"name":  "Other",
		"email": "nicholas@example.com",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Errors []utils.FieldError `json:"errors"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Errors, 1)
	assert.Equal(t, "email", resp.Errors[0].Field)
}

func TestUpdateCustomerKeepsOwnEmail(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForCustomers(t)
	router := setupCustomerRouter(db)

	customer := models.Customer{Name: "Nicholas", Email: "nicholas@example.com"}
	db.Create(&customer)

	// Re-submitting the same email on self must not be a duplicate.
	url := "/customers/" + strconv.Itoa(int(customer.ID))
	w := postJSON(t, router, "PUT", url, map[string]interface{}{
		"name":  "Nicholas P.",
		"email": "nicholas@example.com",
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDeleteCustomerWithOrdersBlocked(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForCustomers(t)
	router := setupCustomerRouter(db)

	customer := models.Customer{Name: "Nicholas", Email: "nicholas@example.com"}
	db.Create(&customer)
	db.Create(&models.Order{CustomerID: customer.ID, Date: "2024-06-01", Total: decimal.NewFromInt(10)})

	url := "/customers/" + strconv.Itoa(int(customer.ID))
	req, err := http.NewRequest("DELETE", url, nil)
	assert.NoError(t, err)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	db.Model(&models.Customer{}).Count(&count)
	assert.Equal(t, int64(1), count)
}
