package Controllers_test

import (
	"encoding/json"
	"net/http"
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

func setupTestDBForHistory(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(&models.Customer{}, &models.Dish{}, &models.HistoryEntry{})
	if err != nil {
		t.Fatal(err)
	}
	db.Create(&models.Customer{Name: "Nicholas", Email: "nicholas@example.com"})
	db.Create(&models.Dish{Name: "Paella", Category: "Main", Price: decimal.NewFromInt(10), Available: true})
	db.Create(&models.Dish{Name: "Gazpacho", Category: "Starter", Price: decimal.NewFromFloat(4.50), Available: true})
	return db
}

func setupHistoryRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	historyCtrl := controllers.NewHistoryController(db)
	router.POST("/history", historyCtrl.CreateHistoryEntry)
	router.GET("/history/:customer_id", historyCtrl.GetCustomerHistory)
	return router
}

func TestCreateHistoryEntry(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForHistory(t)
	router := setupHistoryRouter(db)

	w := postJSON(t, router, "POST", "/history", map[string]interface{}{
		"customer_id": 1,
		"date":        "2024-05-20",
		"dishes": []map[string]interface{}{
			{"name": "Paella", "observation": "extra seafood"},
			{"name": "Gazpacho", "observation": ""},
		},
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var entry models.HistoryEntry
	assert.NoError(t, db.First(&entry).Error)
	// The date string comes back exactly as stored, no driver reformatting.
	assert.Equal(t, "2024-05-20", entry.Date)
	assert.Len(t, entry.Dishes, 2)
	assert.Equal(t, "extra seafood", entry.Dishes[0].Observation)
}

func TestCreateHistoryEntryRepeatedDish(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForHistory(t)
	router := setupHistoryRouter(db)

	// Same dish twice in one entry is a valid order.
	w := postJSON(t, router, "POST", "/history", map[string]interface{}{
		"customer_id": 1,
		"date":        "2024-05-20",
		"dishes": []map[string]interface{}{
			{"name": "Paella", "observation": "first round"},
			{"name": "Paella", "observation": "second round"},
		},
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var entry models.HistoryEntry
	assert.NoError(t, db.First(&entry).Error)
	assert.Len(t, entry.Dishes, 2)
}

func TestCreateHistoryEntryUnknownDish(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForHistory(t)
	router := setupHistoryRouter(db)

	w := postJSON(t, router, "POST", "/history", map[string]interface{}{
		"customer_id": 1,
		"date":        "2024-05-20",
		"dishes": []map[string]interface{}{
			{"name": "Sushi", "observation": ""},
		},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Sushi")

	var count int64
	db.Model(&models.HistoryEntry{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCreateHistoryEntryUnknownCustomer(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForHistory(t)
	router := setupHistoryRouter(db)

	w := postJSON(t, router, "POST", "/history", map[string]interface{}{
		"customer_id": 99,
		"date":        "2024-05-20",
		"dishes": []map[string]interface{}{
			{"name": "Paella", "observation": ""},
		},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetCustomerHistoryDateRange(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForHistory(t)
	router := setupHistoryRouter(db)

	for _, date := range []string{"2024-05-01", "2024-05-15", "2024-06-01"} {
		db.Create(&models.HistoryEntry{
			CustomerID: 1,
			Date:       date,
			Dishes:     []models.HistoryDish{{Name: "Paella"}},
		})
	}

	w := postJSON(t, router, "GET", "/history/1?from=2024-05-10&to=2024-05-31", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []models.HistoryEntry `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 1)
	assert.Equal(t, "2024-05-15", resp.Data[0].Date)
}

func TestGetCustomerHistoryInvertedRange(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForHistory(t)
	router := setupHistoryRouter(db)

	w := postJSON(t, router, "GET", "/history/1?from=2024-06-01&to=2024-05-01", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
