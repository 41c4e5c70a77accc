package services

import (
	"context"
	"errors"
	"strings"

	"messmate-api/models"
	"messmate-api/statemachine"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookMealRequest struct {
	DailyMenuID         uint   `json:"dailyMenuId" binding:"required"`
	Quantity            int    `json:"quantity" binding:"required,min=1"`
	SpecialInstructions string `json:"specialInstructions" binding:"max=1000"`
}

// mergeInstructionsSQL appends the incoming instructions to the stored ones
// with "; ". A blank side never produces a dangling separator.
const mergeInstructionsSQL = `CASE
	WHEN TRIM(COALESCE(excluded.special_instructions, '')) = '' THEN meal_bookings.special_instructions
	WHEN TRIM(COALESCE(meal_bookings.special_instructions, '')) = '' THEN excluded.special_instructions
	ELSE meal_bookings.special_instructions || '; ' || excluded.special_instructions
END`

// BookMeal books quantity units of a daily menu entry. The first booking for
// an entry creates a CONFIRMED row; later ones add to its quantity and append
// their instructions. The insert-or-increment is one statement against the
// unique daily_menu_id index, so concurrent bookings cannot create a second
// row.
func BookMeal(ctx context.Context, db *gorm.DB, req BookMealRequest) (*models.MealBooking, error) {
	if req.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	var booking models.MealBooking
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var menu models.DailyMenu
		if err := tx.First(&menu, req.DailyMenuID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("Daily menu", req.DailyMenuID)
			}
			return err
		}

		row := models.MealBooking{
			DailyMenuID:         menu.ID,
			Quantity:            req.Quantity,
			SpecialInstructions: strings.TrimSpace(req.SpecialInstructions),
			Status:              models.BookingConfirmed,
		}
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "daily_menu_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity":             gorm.Expr("meal_bookings.quantity + excluded.quantity"),
				"special_instructions": gorm.Expr(mergeInstructionsSQL),
				"updated_at":           gorm.Expr("excluded.updated_at"),
			}),
		}).Omit(clause.Associations).Create(&row).Error
		if err != nil {
			return err
		}

		return tx.Where("daily_menu_id = ?", menu.ID).First(&booking).Error
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// ListBookings returns bookings with their daily menu and dish, newest first.
// An empty status means all.
func ListBookings(ctx context.Context, db *gorm.DB, status models.BookingStatus) ([]models.MealBooking, error) {
	bookings := []models.MealBooking{}
	q := db.WithContext(ctx).Preload("DailyMenu.MenuItem").Order("created_at desc")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// UpdateBookingStatus moves a booking through the booking lifecycle on behalf
// of staff.
func UpdateBookingStatus(ctx context.Context, db *gorm.DB, id uint, to models.BookingStatus) (*models.MealBooking, error) {
	var booking models.MealBooking
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&booking, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("Meal booking", id)
			}
			return err
		}
		if err := statemachine.Bookings.CanTransition(string(booking.Status), string(to), statemachine.ActorStaff); err != nil {
			return err
		}
		if err := tx.Model(&booking).Update("status", to).Error; err != nil {
			return err
		}
		booking.Status = to
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// ClearBookings deletes every booking and reports how many rows went.
func ClearBookings(ctx context.Context, db *gorm.DB) (int64, error) {
	res := db.WithContext(ctx).Where("1 = 1").Delete(&models.MealBooking{})
	return res.RowsAffected, res.Error
}
