package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"messmate-api/config"
	"messmate-api/logger"
	"messmate-api/middleware"
	"messmate-api/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Error     string          `json:"error"`
	Code      string          `json:"code"`
	RequestID string          `json:"requestId"`
	Data      json.RawMessage `json:"data"`
}

// setupDB points config.DB at a fresh in-memory database for one test.
func setupDB(t *testing.T) {
	t.Helper()
	db, err := config.Open(&config.Config{DBDriver: "sqlite", DBPath: ":memory:"})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	prev := config.DB
	config.DB = db
	Log = logger.New("messmate-api-test", io.Discard, slog.LevelDebug)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
		config.DB = prev
	})
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RequestID())

	api := r.Group("/api")
	api.POST("/auth/register", Register)
	api.POST("/auth/login", Login)
	api.GET("/menu/items", ListMenuItems)
	api.GET("/menu/items/search", SearchMenuItems)
	api.GET("/menu/daily/date/:date", GetMenuByDate)

	auth := r.Group("/api", middleware.AuthRequired())
	auth.POST("/menu/book", BookMeal)
	auth.POST("/orders", PlaceOrder)
	auth.GET("/orders/:id", GetOrderDetail)
	auth.POST("/feedback", SubmitFeedback)

	staff := r.Group("/api", middleware.AuthRequired(), middleware.RoleRequired(models.UserStaff, models.UserAdmin))
	staff.POST("/menu/items", CreateMenuItem)
	staff.POST("/menu/daily", CreateDailyMenu)
	staff.PUT("/menu/daily/:id", UpdateDailyMenu)
	staff.GET("/menu/bookings/stats", BookingStats)
	staff.GET("/menu/bookings/stats/:date", BookingStatsByDate)
	staff.PUT("/orders/:id/status", UpdateOrderStatus)

	admin := r.Group("/api", middleware.AuthRequired(), middleware.RoleRequired(models.UserAdmin))
	admin.GET("/users/stats", GetUserStats)
	admin.GET("/users/search", SearchUsers)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return w, env
}

func tokenFor(t *testing.T, email string, userType models.UserType) (models.User, string) {
	t.Helper()
	u := models.User{Name: email, Email: email, PasswordHash: "x", UserType: userType}
	if err := config.DB.Create(&u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	token, err := middleware.GenerateToken(&u)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return u, token
}

func seedMenu(t *testing.T, day string) (models.MenuItem, models.DailyMenu) {
	t.Helper()
	item := models.MenuItem{
		Name:        "Veg Thali",
		Price:       decimal.RequireFromString("60.00"),
		MealType:    models.MealLunch,
		Category:    models.CategoryMainCourse,
		IsAvailable: true,
	}
	if err := config.DB.Create(&item).Error; err != nil {
		t.Fatalf("create item: %v", err)
	}
	date, err := models.ParseDate(day)
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	menu := models.DailyMenu{MenuItemID: item.ID, MenuDate: date, MealType: models.MealLunch, IsActive: true}
	if err := config.DB.Omit("MenuItem").Create(&menu).Error; err != nil {
		t.Fatalf("create daily menu: %v", err)
	}
	return item, menu
}
