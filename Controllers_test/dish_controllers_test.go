package Controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
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

func setupTestDBForDishes(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(&models.Dish{}, &models.OrderLine{})
	if err != nil {
		t.Fatal(err)
	}
	return db
}

func setupDishRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	dishCtrl := controllers.NewDishController(db)
	router.GET("/dishes", dishCtrl.GetAllDishes)
	router.POST("/dishes", dishCtrl.CreateDish)
	router.PUT("/dishes/:dish_id", dishCtrl.UpdateDish)
	return router
}

func TestCreateDish(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForDishes(t)
	router := setupDishRouter(db)

	w := postJSON(t, router, "POST", "/dishes", map[string]interface{}{
		"name":     "Paella",
		"category": "Main",
		"price":    10.50,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var dish models.Dish
	db.Where("name = ?", "Paella").First(&dish)
	assert.True(t, dish.Price.Equal(decimal.NewFromFloat(10.50)))
	assert.True(t, dish.Available)
}

func TestCreateDishRejectsNonPositivePrice(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForDishes(t)
	router := setupDishRouter(db)

	w := postJSON(t, router, "POST", "/dishes", map[string]interface{}{
		"name":     "Paella",
		"category": "Main",
		"price":    0,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateDishDuplicateName(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForDishes(t)
	router := setupDishRouter(db)

	db.Create(&models.Dish{Name: "Paella", Category: "Main", Price: decimal.NewFromInt(10), Available: true})

	w := postJSON(t, router, "POST", "/dishes", map[string]interface{}{
		"name":     "Paella",
		"category": "Main",
		"price":    12,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Errors []utils.FieldError `json:"errors"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Errors, 1)
	assert.Equal(t, "name", resp.Errors[0].Field)
}

func TestCreateDishUnavailablePersistsFalse(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForDishes(t)
	router := setupDishRouter(db)

	w := postJSON(t, router, "POST", "/dishes", map[string]interface{}{
		"name":      "Cocido",
		"category":  "Main",
		"price":     9,
		"available": false,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	// The false must survive the insert, not be swallowed by a column default.
	var dish models.Dish
	db.Where("name = ?", "Cocido").First(&dish)
	assert.False(t, dish.Available)
}

func TestGetDishesAvailableFilter(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForDishes(t)
	router := setupDishRouter(db)

	db.Create(&models.Dish{Name: "Paella", Category: "Main", Price: decimal.NewFromInt(10), Available: true})
	db.Create(&models.Dish{Name: "Cocido", Category: "Main", Price: decimal.NewFromInt(9), Available: false})

	req, err := http.NewRequest("GET", "/dishes?available=true", nil)
	assert.NoError(t, err)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].([]interface{})
	assert.Len(t, data, 1)
}
