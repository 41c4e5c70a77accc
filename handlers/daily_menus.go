package handlers

import (
	"errors"
	"net/http"
	"time"

	"messmate-api/config"
	"messmate-api/models"
	"messmate-api/services"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type DailyMenuRequest struct {
	MenuItemID uint   `json:"menuItemId" binding:"required"`
	MenuDate   string `json:"menuDate" binding:"required"`
	MealType   string `json:"mealType"`
	IsActive   *bool  `json:"isActive"`
}

// toModel resolves the menu item and fills defaults: the item's own meal
// type when none is given, and active unless told otherwise.
func (r *DailyMenuRequest) toModel(c *gin.Context, db *gorm.DB) (models.DailyMenu, bool) {
	date, err := models.ParseDate(r.MenuDate)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid menuDate, expected YYYY-MM-DD: "+r.MenuDate)
		return models.DailyMenu{}, false
	}

	var item models.MenuItem
	if err := db.First(&item, r.MenuItemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Menu item not found")
			return models.DailyMenu{}, false
		}
		respondInternal(c, "daily_menu_item_lookup", err)
		return models.DailyMenu{}, false
	}

	mealType := item.MealType
	if r.MealType != "" {
		mt, ok := models.ParseMealType(r.MealType)
		if !ok {
			respondError(c, http.StatusBadRequest, services.ErrInvalidMealType.Error())
			return models.DailyMenu{}, false
		}
		mealType = mt
	}
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return models.DailyMenu{
		MenuItemID: item.ID,
		MenuItem:   item,
		MenuDate:   date,
		MealType:   mealType,
		IsActive:   active,
	}, true
}

func listDailyMenus(c *gin.Context, action string, query *gorm.DB) {
	menus := []models.DailyMenu{}
	err := query.Preload("MenuItem").Order("menu_date").Order("id").Find(&menus).Error
	if err != nil {
		respondInternal(c, action, err)
		return
	}
	respond(c, http.StatusOK, "Daily menus retrieved successfully", menus)
}

func ListDailyMenus(c *gin.Context) {
	listDailyMenus(c, "list_daily_menus", config.DB.WithContext(c.Request.Context()))
}

// GetTodaysMenu returns today's active entries across all meal slots.
func GetTodaysMenu(c *gin.Context) {
	today := models.DateOf(time.Now())
	query := config.DB.WithContext(c.Request.Context()).
		Where("menu_date = ? AND is_active = ?", today, true)
	listDailyMenus(c, "todays_menu", query)
}

func GetTodaysMenuByMealType(c *gin.Context) {
	mealType, ok := models.ParseMealType(c.Param("mealType"))
	if !ok {
		respondError(c, http.StatusBadRequest, "Invalid meal type: "+c.Param("mealType"))
		return
	}
	today := models.DateOf(time.Now())
	query := config.DB.WithContext(c.Request.Context()).
		Where("menu_date = ? AND meal_type = ? AND is_active = ?", today, mealType, true)
	listDailyMenus(c, "todays_menu_by_meal_type", query)
}

func GetMenuByDate(c *gin.Context) {
	date, err := models.ParseDate(c.Param("date"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD: "+c.Param("date"))
		return
	}
	query := config.DB.WithContext(c.Request.Context()).
		Where("menu_date = ? AND is_active = ?", date, true)
	listDailyMenus(c, "menu_by_date", query)
}

// GetWeeklyMenu returns active entries between ?start= and ?end= inclusive.
// start defaults to today and end to six days after start.
func GetWeeklyMenu(c *gin.Context) {
	start := models.DateOf(time.Now())
	if s := c.Query("start"); s != "" {
		d, err := models.ParseDate(s)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid start date, expected YYYY-MM-DD: "+s)
			return
		}
		start = d
	}
	end := datatypes.Date(time.Time(start).AddDate(0, 0, 6))
	if s := c.Query("end"); s != "" {
		d, err := models.ParseDate(s)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid end date, expected YYYY-MM-DD: "+s)
			return
		}
		end = d
	}
	if time.Time(end).Before(time.Time(start)) {
		respondError(c, http.StatusBadRequest, "end date must not be before start date")
		return
	}

	query := config.DB.WithContext(c.Request.Context()).
		Where("menu_date BETWEEN ? AND ? AND is_active = ?", start, end, true)
	listDailyMenus(c, "weekly_menu", query)
}

func GetDailyMenu(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var menu models.DailyMenu
	if err := config.DB.WithContext(c.Request.Context()).Preload("MenuItem").First(&menu, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Daily menu not found")
			return
		}
		respondInternal(c, "get_daily_menu", err)
		return
	}
	respond(c, http.StatusOK, "Daily menu retrieved successfully", menu)
}

func CreateDailyMenu(c *gin.Context) {
	var req DailyMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	db := config.DB.WithContext(c.Request.Context())
	menu, ok := req.toModel(c, db)
	if !ok {
		return
	}
	if err := db.Omit("MenuItem").Create(&menu).Error; err != nil {
		respondInternal(c, "create_daily_menu", err)
		return
	}
	respond(c, http.StatusCreated, "Daily menu created successfully", menu)
}

// UpdateDailyMenu replaces a daily menu entry. Once booked, only its active
// flag may change.
func UpdateDailyMenu(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req DailyMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	db := config.DB.WithContext(c.Request.Context())

	var existing models.DailyMenu
	if err := db.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Daily menu not found")
			return
		}
		respondInternal(c, "update_daily_menu", err)
		return
	}
	menu, ok := req.toModel(c, db)
	if !ok {
		return
	}

	if menu.MenuItemID != existing.MenuItemID || menu.MealType != existing.MealType ||
		!time.Time(menu.MenuDate).Equal(time.Time(existing.MenuDate)) {
		var booked int64
		if err := db.Model(&models.MealBooking{}).Where("daily_menu_id = ?", existing.ID).Count(&booked).Error; err != nil {
			respondInternal(c, "update_daily_menu", err)
			return
		}
		if booked > 0 {
			respondError(c, http.StatusConflict, "Daily menu has bookings; its item, date and meal type cannot change")
			return
		}
	}

	menu.ID = existing.ID
	menu.CreatedAt = existing.CreatedAt
	if err := db.Omit("MenuItem").Save(&menu).Error; err != nil {
		respondInternal(c, "update_daily_menu", err)
		return
	}
	respond(c, http.StatusOK, "Daily menu updated successfully", menu)
}

// DeleteDailyMenu also removes the entry's booking.
func DeleteDailyMenu(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := services.DeleteDailyMenu(c.Request.Context(), config.DB, id); err != nil {
		respondServiceError(c, "delete_daily_menu", err)
		return
	}
	respond(c, http.StatusOK, "Daily menu deleted successfully", nil)
}
