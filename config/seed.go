package config

import (
	"fmt"
	"time"

	"messmate-api/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed fills an empty database with demo accounts, the standard mess
// catalogue and a few feedback entries. Tables that already hold rows are
// left alone.
func Seed(db *gorm.DB) error {
	if err := seedUsers(db); err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	if err := seedMenuItems(db); err != nil {
		return fmt.Errorf("seed menu items: %w", err)
	}
	if err := seedFeedback(db); err != nil {
		return fmt.Errorf("seed feedback: %w", err)
	}
	return nil
}

func seedUsers(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	users := []struct {
		user     models.User
		password string
	}{
		{models.User{Name: "Test Student", Email: "test@example.com", RollNumber: "STU001", Phone: "9876543210",
			UserType: models.UserStudent, Hostel: "Hostel A", Room: "101"}, "password123"},
		{models.User{Name: "Test Staff", Email: "staff@example.com", RollNumber: "STF001", Phone: "9876543211",
			UserType: models.UserStaff, Hostel: "Staff Quarter", Room: "SQ01"}, "password123"},
		{models.User{Name: "Admin User", Email: "admin@example.com", RollNumber: "ADM001", Phone: "9876543212",
			UserType: models.UserAdmin, Hostel: "Admin Quarter", Room: "AQ01"}, "admin123"},
	}
	return db.Transaction(func(tx *gorm.DB) error {
		for _, u := range users {
			hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			user := u.user
			user.PasswordHash = string(hash)
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func item(name, desc, price string, meal models.MealType, cat models.FoodCategory, veg bool) models.MenuItem {
	return models.MenuItem{
		Name:         name,
		Description:  desc,
		Price:        decimal.RequireFromString(price),
		MealType:     meal,
		Category:     cat,
		IsVegetarian: veg,
		IsAvailable:  true,
	}
}

func seedMenuItems(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.MenuItem{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	items := []models.MenuItem{
		item("Idli Sambar", "Steamed rice cakes with lentil curry", "25.00", models.MealBreakfast, models.CategoryMainCourse, true),
		item("Dosa", "Crispy rice pancake", "30.00", models.MealBreakfast, models.CategoryMainCourse, true),
		item("Upma", "Semolina breakfast dish", "20.00", models.MealBreakfast, models.CategoryMainCourse, true),
		item("Poha", "Flattened rice with vegetables", "22.00", models.MealBreakfast, models.CategoryMainCourse, true),
		item("Tea", "Hot milk tea", "10.00", models.MealBreakfast, models.CategoryBeverage, true),

		item("Rice", "Steamed white rice", "15.00", models.MealLunch, models.CategoryRice, true),
		item("Dal Tadka", "Tempered lentil curry", "25.00", models.MealLunch, models.CategoryCurry, true),
		item("Vegetable Curry", "Mixed vegetable curry", "30.00", models.MealLunch, models.CategoryCurry, true),
		item("Chicken Curry", "Spicy chicken curry", "45.00", models.MealLunch, models.CategoryCurry, false),
		item("Roti", "Indian flatbread", "8.00", models.MealLunch, models.CategoryBread, true),
		item("Salad", "Fresh vegetable salad", "15.00", models.MealLunch, models.CategorySalad, true),
		item("Curd Rice", "Rice with yogurt", "20.00", models.MealLunch, models.CategoryRice, true),

		item("Samosa", "Fried pastry with filling", "12.00", models.MealSnacks, models.CategorySnack, true),
		item("Pakora", "Vegetable fritters", "15.00", models.MealSnacks, models.CategorySnack, true),
		item("Sandwich", "Vegetable sandwich", "25.00", models.MealSnacks, models.CategorySnack, true),
		item("Coffee", "Hot coffee", "12.00", models.MealSnacks, models.CategoryBeverage, true),

		item("Chapati", "Whole wheat flatbread", "8.00", models.MealDinner, models.CategoryBread, true),
		item("Paneer Curry", "Cottage cheese curry", "40.00", models.MealDinner, models.CategoryCurry, true),
		item("Fish Curry", "Spicy fish curry", "50.00", models.MealDinner, models.CategoryCurry, false),
		item("Jeera Rice", "Cumin flavored rice", "18.00", models.MealDinner, models.CategoryRice, true),
		item("Ice Cream", "Vanilla ice cream", "25.00", models.MealDinner, models.CategoryDessert, true),
	}
	return db.Create(&items).Error
}

func seedFeedback(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Feedback{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	var student, staff models.User
	if err := db.Where("email = ?", "test@example.com").First(&student).Error; err != nil {
		// No demo student means the users table was not ours to seed.
		return nil
	}
	hasStaff := db.Where("email = ?", "staff@example.com").First(&staff).Error == nil

	now := time.Now()
	entries := []models.Feedback{
		{FeedbackType: models.FeedbackFoodQuality, Rating: 4, Status: models.FeedbackPending,
			Message: "The food quality is generally good, but sometimes the vegetables are overcooked."},
		{FeedbackType: models.FeedbackService, Rating: 5, Status: models.FeedbackReviewed,
			Message: "Excellent service! The staff is very friendly and helpful."},
		{FeedbackType: models.FeedbackCleanliness, Rating: 3, Status: models.FeedbackPending,
			Message: "The dining area could be cleaner. Tables are sometimes not properly cleaned."},
		{FeedbackType: models.FeedbackGeneral, Rating: 4, Status: models.FeedbackResolved,
			Message: "Overall experience is good. Would like more variety in breakfast options."},
		{FeedbackType: models.FeedbackComplaint, Rating: 2, Status: models.FeedbackPending,
			Message: "The food was served cold yesterday during lunch time. Please ensure food is served hot."},
		{FeedbackType: models.FeedbackSuggestion, Rating: 5, Status: models.FeedbackReviewed,
			Message: "Please consider adding more South Indian dishes to the dinner menu."},
	}
	for i := range entries {
		entries[i].StudentID = student.ID
		entries[i].CreatedAt = now.Add(-time.Duration(i) * 24 * time.Hour)
	}
	if hasStaff {
		repliedAt := now.Add(-24 * time.Hour)
		entries[1].StaffReply = "Thank you for your positive feedback! We're glad you're happy with our service."
		entries[1].RepliedByID = &staff.ID
		entries[1].RepliedAt = &repliedAt
	}
	return db.Create(&entries).Error
}
