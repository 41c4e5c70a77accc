package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// MealType is the meal slot a dish is served in
type MealType string

const (
	MealBreakfast MealType = "BREAKFAST"
	MealLunch     MealType = "LUNCH"
	MealSnacks    MealType = "SNACKS"
	MealDinner    MealType = "DINNER"
)

var mealTypes = []MealType{MealBreakfast, MealLunch, MealSnacks, MealDinner}

// Slot is the position of the meal within a day, 0 for breakfast.
func (m MealType) Slot() int {
	for i, v := range mealTypes {
		if v == m {
			return i
		}
	}
	return len(mealTypes)
}

func ParseMealType(s string) (MealType, bool) {
	t := MealType(strings.ToUpper(strings.TrimSpace(s)))
	for _, v := range mealTypes {
		if v == t {
			return t, true
		}
	}
	return "", false
}

// FoodCategory groups dishes on the menu board
type FoodCategory string

const (
	CategoryMainCourse FoodCategory = "MAIN_COURSE"
	CategoryRice       FoodCategory = "RICE"
	CategoryCurry      FoodCategory = "CURRY"
	CategoryBread      FoodCategory = "BREAD"
	CategorySalad      FoodCategory = "SALAD"
	CategorySnack      FoodCategory = "SNACK"
	CategoryBeverage   FoodCategory = "BEVERAGE"
	CategoryDessert    FoodCategory = "DESSERT"
)

var foodCategories = []FoodCategory{
	CategoryMainCourse, CategoryRice, CategoryCurry, CategoryBread,
	CategorySalad, CategorySnack, CategoryBeverage, CategoryDessert,
}

func ParseFoodCategory(s string) (FoodCategory, bool) {
	c := FoodCategory(strings.ToUpper(strings.TrimSpace(s)))
	for _, v := range foodCategories {
		if v == c {
			return c, true
		}
	}
	return "", false
}

type MenuItem struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	Name         string          `json:"name" gorm:"not null"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	MealType     MealType        `json:"mealType" gorm:"not null;index"`
	Category     FoodCategory    `json:"category" gorm:"index"`
	IsVegetarian bool            `json:"isVegetarian"`
	IsAvailable  bool            `json:"isAvailable"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// DailyMenu schedules one menu item into one meal slot on one calendar date.
type DailyMenu struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	MenuItemID uint           `json:"menuItemId" gorm:"not null;index"`
	MenuItem   MenuItem       `json:"menuItem,omitempty" gorm:"foreignKey:MenuItemID"`
	MenuDate   datatypes.Date `json:"menuDate" gorm:"not null;index"`
	MealType   MealType       `json:"mealType" gorm:"not null"`
	IsActive   bool           `json:"isActive" gorm:"index"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

const DateLayout = "2006-01-02"

// DateOf truncates t to a UTC calendar date, the only form menu dates are
// stored and compared in.
func DateOf(t time.Time) datatypes.Date {
	y, m, d := t.Date()
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

// ParseDate parses a YYYY-MM-DD string into a menu date.
func ParseDate(s string) (datatypes.Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return datatypes.Date{}, err
	}
	return DateOf(t), nil
}

// FormatDate renders a menu date as YYYY-MM-DD.
func FormatDate(d datatypes.Date) string {
	return time.Time(d).Format(DateLayout)
}
