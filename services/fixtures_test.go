package services

import (
	"path/filepath"
	"testing"
	"time"

	"messmate-api/config"
	"messmate-api/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := config.Open(&config.Config{DBDriver: "sqlite", DBPath: ":memory:"})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// newFileTestDB opens a database file with a real connection pool, so
// concurrent callers run in parallel rather than queueing on one connection.
func newFileTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "messmate.db")
	db, err := config.Open(&config.Config{
		DBDriver: "sqlite",
		DBPath:   path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)",
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(8)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func mustCreate(t *testing.T, db *gorm.DB, v interface{}) {
	t.Helper()
	if err := db.Create(v).Error; err != nil {
		t.Fatalf("create %T: %v", v, err)
	}
}

func newMenuItem(t *testing.T, db *gorm.DB, name, price string, meal models.MealType) models.MenuItem {
	t.Helper()
	item := models.MenuItem{
		Name:        name,
		Price:       decimal.RequireFromString(price),
		MealType:    meal,
		Category:    models.CategoryMainCourse,
		IsAvailable: true,
	}
	mustCreate(t, db, &item)
	return item
}

func newDailyMenu(t *testing.T, db *gorm.DB, item models.MenuItem, day string, meal models.MealType, active bool) models.DailyMenu {
	t.Helper()
	date, err := models.ParseDate(day)
	if err != nil {
		t.Fatalf("parse date %q: %v", day, err)
	}
	menu := models.DailyMenu{MenuItemID: item.ID, MenuDate: date, MealType: meal, IsActive: active}
	if err := db.Omit("MenuItem").Create(&menu).Error; err != nil {
		t.Fatalf("create daily menu: %v", err)
	}
	return menu
}

func newUser(t *testing.T, db *gorm.DB, email string, userType models.UserType) models.User {
	t.Helper()
	u := models.User{Name: "User " + email, Email: email, PasswordHash: "x", UserType: userType}
	mustCreate(t, db, &u)
	return u
}

var testNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
