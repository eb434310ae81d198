package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nicholasph05/myc-restaurant-app/models"
	"github.com/nicholasph05/myc-restaurant-app/utils"
)

type PreferenceController struct {
	DB *gorm.DB
}

func NewPreferenceController(db *gorm.DB) *PreferenceController {
	return &PreferenceController{DB: db}
}

// preferenceView attaches the customer display name for the list screens.
type preferenceView struct {
	models.Preference
	CustomerName string `json:"customer_name"`
}

// UpsertPreference -> create or replace the one preference row per customer.
// Favourite dishes must name dishes that exist on the menu.
func (pc *PreferenceController) UpsertPreference(c *gin.Context) {
	var req struct {
		CustomerID      uint     `json:"customer_id"`
		Intolerances    []string `json:"intolerances"`
		PreferredStyles []string `json:"preferred_styles"`
		FavoriteDishes  []string `json:"favorite_dishes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var customer models.Customer
	if err := pc.DB.First(&customer, req.CustomerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, errors.New("customer does not exist"))
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if len(req.FavoriteDishes) > 0 {
		var existing []models.Dish
		if err := pc.DB.Where("name IN ?", req.FavoriteDishes).Find(&existing).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		known := make(map[string]bool, len(existing))
		for _, d := range existing {
			known[d.Name] = true
		}
		var unknown []string
		for _, name := range req.FavoriteDishes {
			if !known[name] {
				unknown = append(unknown, name)
			}
		}
		if len(unknown) > 0 {
			utils.RespondError(c, http.StatusBadRequest,
				fmt.Errorf("the following dishes do not exist: %s", strings.Join(unknown, ", ")))
			return
		}
	}

	var pref models.Preference
	err := pc.DB.Where("customer_id = ?", req.CustomerID).First(&pref).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		pref = models.Preference{CustomerID: req.CustomerID}
	case err != nil:
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	pref.Intolerances = req.Intolerances
	pref.PreferredStyles = req.PreferredStyles
	pref.FavoriteDishes = req.FavoriteDishes

	if err := pc.DB.Save(&pref).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Preferences saved", pref)
}

// GetPreferences -> filter by ?customer_id= or by partial, case-insensitive
// ?name= match on the customer.
func (pc *PreferenceController) GetPreferences(c *gin.Context) {
	query := pc.DB.Model(&models.Preference{})

	if customerID := c.Query("customer_id"); customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}
	if name := c.Query("name"); name != "" {
		var customers []models.Customer
		if err := pc.DB.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%").Find(&customers).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		if len(customers) == 0 {
			utils.RespondJSON(c, http.StatusOK, "List of preferences", []preferenceView{})
			return
		}
		ids := make([]uint, 0, len(customers))
		for _, cust := range customers {
			ids = append(ids, cust.ID)
		}
		query = query.Where("customer_id IN ?", ids)
	}

	var prefs []models.Preference
	if err := query.Find(&prefs).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	// Map customer_id -> name for the response.
	names := map[uint]string{}
	if len(prefs) > 0 {
		ids := make([]uint, 0, len(prefs))
		for _, p := range prefs {
			ids = append(ids, p.CustomerID)
		}
		var customers []models.Customer
		if err := pc.DB.Where("id IN ?", ids).Find(&customers).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		for _, cust := range customers {
			names[cust.ID] = cust.Name
		}
	}

	views := make([]preferenceView, 0, len(prefs))
	for _, p := range prefs {
		name, ok := names[p.CustomerID]
		if !ok {
			name = "Unknown"
		}
		views = append(views, preferenceView{Preference: p, CustomerName: name})
	}
	utils.RespondJSON(c, http.StatusOK, "List of preferences", views)
}
