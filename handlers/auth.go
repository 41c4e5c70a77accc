package handlers

import (
	"errors"
	"net/http"
	"strings"

	"messmate-api/config"
	"messmate-api/middleware"
	"messmate-api/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=6"`
	RollNumber string `json:"rollNumber"`
	Hostel     string `json:"hostel"`
	Room       string `json:"room"`
	Phone      string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

func authPayload(user *models.User, token string) gin.H {
	return gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"name":     user.Name,
			"email":    user.Email,
			"userType": user.UserType,
		},
	}
}

// Register creates a student account. Staff and admin accounts come from
// seeding or an admin.
func Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	db := config.DB.WithContext(c.Request.Context())

	var existing models.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		respondError(c, http.StatusConflict, "Email already registered")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		respondInternal(c, "register", err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondInternal(c, "register", err)
		return
	}

	user := models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hash),
		UserType:     models.UserStudent,
		RollNumber:   req.RollNumber,
		Hostel:       req.Hostel,
		Room:         req.Room,
		Phone:        req.Phone,
	}
	if err := db.Create(&user).Error; err != nil {
		respondInternal(c, "register", err)
		return
	}

	token, err := middleware.GenerateToken(&user)
	if err != nil {
		respondInternal(c, "register", err)
		return
	}
	respond(c, http.StatusCreated, "Account created successfully", authPayload(&user, token))
}

// Login authenticates a user and returns a JWT
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	var user models.User
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := config.DB.WithContext(c.Request.Context()).Where("email = ?", email).First(&user).Error; err != nil {
		respondError(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		respondError(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := middleware.GenerateToken(&user)
	if err != nil {
		respondInternal(c, "login", err)
		return
	}
	respond(c, http.StatusOK, "Login successful", authPayload(&user, token))
}

// GetProfile returns the authenticated user's profile
func GetProfile(c *gin.Context) {
	var user models.User
	if err := config.DB.WithContext(c.Request.Context()).First(&user, middleware.GetUserID(c)).Error; err != nil {
		respondError(c, http.StatusNotFound, "User not found")
		return
	}
	respond(c, http.StatusOK, "Profile retrieved successfully", user)
}

// ChangePassword replaces the caller's password after checking the current one.
func ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	db := config.DB.WithContext(c.Request.Context())

	var user models.User
	if err := db.First(&user, middleware.GetUserID(c)).Error; err != nil {
		respondError(c, http.StatusNotFound, "User not found")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		respondError(c, http.StatusBadRequest, "Current password is incorrect")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		respondInternal(c, "change_password", err)
		return
	}
	if err := db.Model(&user).Update("password_hash", string(hash)).Error; err != nil {
		respondInternal(c, "change_password", err)
		return
	}
	respond(c, http.StatusOK, "Password changed successfully", nil)
}
