package handlers

import (
	"errors"
	"net/http"
	"strings"

	"messmate-api/config"
	"messmate-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ListUsers returns every user (admin only)
func ListUsers(c *gin.Context) {
	users := []models.User{}
	if err := config.DB.WithContext(c.Request.Context()).Order("id").Find(&users).Error; err != nil {
		respondInternal(c, "list_users", err)
		return
	}
	respond(c, http.StatusOK, "Users retrieved successfully", users)
}

type userTypeCount struct {
	UserType models.UserType
	Count    int64
}

// GetUserStats counts users per type.
func GetUserStats(c *gin.Context) {
	var rows []userTypeCount
	err := config.DB.WithContext(c.Request.Context()).Model(&models.User{}).
		Select("user_type, COUNT(*) AS count").
		Group("user_type").
		Scan(&rows).Error
	if err != nil {
		respondInternal(c, "user_stats", err)
		return
	}

	counts := gin.H{
		"totalStudents": int64(0),
		"totalStaff":    int64(0),
		"totalAdmins":   int64(0),
	}
	var total int64
	for _, r := range rows {
		switch r.UserType {
		case models.UserStudent:
			counts["totalStudents"] = r.Count
		case models.UserStaff:
			counts["totalStaff"] = r.Count
		case models.UserAdmin:
			counts["totalAdmins"] = r.Count
		}
		total += r.Count
	}
	counts["totalUsers"] = total
	respond(c, http.StatusOK, "User statistics retrieved successfully", counts)
}

func GetUsersByType(c *gin.Context) {
	userType, ok := models.ParseUserType(c.Param("userType"))
	if !ok {
		respondError(c, http.StatusBadRequest, "Invalid user type: "+c.Param("userType"))
		return
	}
	users := []models.User{}
	err := config.DB.WithContext(c.Request.Context()).
		Where("user_type = ?", userType).Order("id").Find(&users).Error
	if err != nil {
		respondInternal(c, "users_by_type", err)
		return
	}
	respond(c, http.StatusOK, "Users retrieved successfully", users)
}

// SearchUsers matches ?query= against name or email, ignoring case.
func SearchUsers(c *gin.Context) {
	q := strings.ToLower(strings.TrimSpace(c.Query("query")))
	if q == "" {
		respondError(c, http.StatusBadRequest, "Query parameter 'query' is required")
		return
	}
	pattern := "%" + q + "%"
	users := []models.User{}
	err := config.DB.WithContext(c.Request.Context()).
		Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern).
		Order("id").Find(&users).Error
	if err != nil {
		respondInternal(c, "search_users", err)
		return
	}
	respond(c, http.StatusOK, "Users retrieved successfully", users)
}

func GetUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var user models.User
	if err := config.DB.WithContext(c.Request.Context()).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "User not found")
			return
		}
		respondInternal(c, "get_user", err)
		return
	}
	respond(c, http.StatusOK, "User retrieved successfully", user)
}
