package handlers

import (
	"errors"
	"net/http"
	"strings"

	"messmate-api/config"
	"messmate-api/models"
	"messmate-api/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type MenuItemRequest struct {
	Name         string           `json:"name" binding:"required,max=200"`
	Description  string           `json:"description" binding:"max=1000"`
	Price        *decimal.Decimal `json:"price" binding:"required"`
	MealType     string           `json:"mealType" binding:"required"`
	Category     string           `json:"category" binding:"required"`
	IsVegetarian bool             `json:"isVegetarian"`
	IsAvailable  *bool            `json:"isAvailable"`
}

// toModel validates the enum and price fields; on failure it has already
// answered the request.
func (r *MenuItemRequest) toModel(c *gin.Context) (models.MenuItem, bool) {
	mealType, ok := models.ParseMealType(r.MealType)
	if !ok {
		respondError(c, http.StatusBadRequest, services.ErrInvalidMealType.Error())
		return models.MenuItem{}, false
	}
	category, ok := models.ParseFoodCategory(r.Category)
	if !ok {
		respondError(c, http.StatusBadRequest, "Invalid category: "+r.Category)
		return models.MenuItem{}, false
	}
	if r.Price.IsNegative() {
		respondError(c, http.StatusBadRequest, "Price must not be negative")
		return models.MenuItem{}, false
	}
	available := true
	if r.IsAvailable != nil {
		available = *r.IsAvailable
	}
	return models.MenuItem{
		Name:         strings.TrimSpace(r.Name),
		Description:  strings.TrimSpace(r.Description),
		Price:        r.Price.Round(2),
		MealType:     mealType,
		Category:     category,
		IsVegetarian: r.IsVegetarian,
		IsAvailable:  available,
	}, true
}

// ListMenuItems returns every menu item; optional filters: mealType,
// category, vegetarian=true, available=true.
func ListMenuItems(c *gin.Context) {
	query := config.DB.WithContext(c.Request.Context()).Order("id")

	if s := c.Query("mealType"); s != "" {
		mealType, ok := models.ParseMealType(s)
		if !ok {
			respondError(c, http.StatusBadRequest, services.ErrInvalidMealType.Error())
			return
		}
		query = query.Where("meal_type = ?", mealType)
	}
	if s := c.Query("category"); s != "" {
		category, ok := models.ParseFoodCategory(s)
		if !ok {
			respondError(c, http.StatusBadRequest, "Invalid category: "+s)
			return
		}
		query = query.Where("category = ?", category)
	}
	if c.Query("vegetarian") == "true" {
		query = query.Where("is_vegetarian = ?", true)
	}
	if c.Query("available") == "true" {
		query = query.Where("is_available = ?", true)
	}

	items := []models.MenuItem{}
	if err := query.Find(&items).Error; err != nil {
		respondInternal(c, "list_menu_items", err)
		return
	}
	respond(c, http.StatusOK, "Menu items retrieved successfully", items)
}

// availableItems lists available items matching one extra condition.
func availableItems(c *gin.Context, action, message string, where string, args ...interface{}) {
	items := []models.MenuItem{}
	err := config.DB.WithContext(c.Request.Context()).
		Where("is_available = ?", true).
		Where(where, args...).
		Order("id").
		Find(&items).Error
	if err != nil {
		respondInternal(c, action, err)
		return
	}
	respond(c, http.StatusOK, message, items)
}

func GetMenuItemsByMealType(c *gin.Context) {
	mealType, ok := models.ParseMealType(c.Param("mealType"))
	if !ok {
		respondError(c, http.StatusBadRequest, "Invalid meal type: "+c.Param("mealType"))
		return
	}
	availableItems(c, "menu_items_by_meal_type", "Menu items retrieved successfully", "meal_type = ?", mealType)
}

func GetMenuItemsByCategory(c *gin.Context) {
	category, ok := models.ParseFoodCategory(c.Param("category"))
	if !ok {
		respondError(c, http.StatusBadRequest, "Invalid category: "+c.Param("category"))
		return
	}
	availableItems(c, "menu_items_by_category", "Menu items retrieved successfully", "category = ?", category)
}

func GetVegetarianMenuItems(c *gin.Context) {
	availableItems(c, "vegetarian_menu_items", "Vegetarian menu items retrieved successfully", "is_vegetarian = ?", true)
}

// SearchMenuItems matches available items whose name contains ?name=,
// ignoring case.
func SearchMenuItems(c *gin.Context) {
	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		respondError(c, http.StatusBadRequest, "Query parameter 'name' is required")
		return
	}
	availableItems(c, "search_menu_items", "Menu items retrieved successfully",
		"LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%")
}

func GetMenuItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var item models.MenuItem
	if err := config.DB.WithContext(c.Request.Context()).First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Menu item not found")
			return
		}
		respondInternal(c, "get_menu_item", err)
		return
	}
	respond(c, http.StatusOK, "Menu item retrieved successfully", item)
}

func CreateMenuItem(c *gin.Context) {
	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	item, ok := req.toModel(c)
	if !ok {
		return
	}
	if err := config.DB.WithContext(c.Request.Context()).Create(&item).Error; err != nil {
		respondInternal(c, "create_menu_item", err)
		return
	}
	respond(c, http.StatusCreated, "Menu item created successfully", item)
}

// UpdateMenuItem replaces every editable field of an item.
func UpdateMenuItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	update, ok := req.toModel(c)
	if !ok {
		return
	}

	db := config.DB.WithContext(c.Request.Context())
	var item models.MenuItem
	if err := db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Menu item not found")
			return
		}
		respondInternal(c, "update_menu_item", err)
		return
	}

	update.ID = item.ID
	update.CreatedAt = item.CreatedAt
	if err := db.Save(&update).Error; err != nil {
		respondInternal(c, "update_menu_item", err)
		return
	}
	respond(c, http.StatusOK, "Menu item updated successfully", update)
}

func DeleteMenuItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := services.DeleteMenuItem(c.Request.Context(), config.DB, id); err != nil {
		respondServiceError(c, "delete_menu_item", err)
		return
	}
	respond(c, http.StatusOK, "Menu item deleted successfully", nil)
}
