package services

import (
	"context"
	"errors"

	"messmate-api/models"

	"gorm.io/gorm"
)

// DeleteDailyMenu removes a daily menu entry together with its booking.
func DeleteDailyMenu(ctx context.Context, db *gorm.DB, id uint) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var menu models.DailyMenu
		if err := tx.First(&menu, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("Daily menu", id)
			}
			return err
		}
		if err := tx.Where("daily_menu_id = ?", id).Delete(&models.MealBooking{}).Error; err != nil {
			return err
		}
		return tx.Delete(&menu).Error
	})
}

// DeleteMenuItem removes a dish, every daily menu that schedules it with
// their bookings, and its links to past orders.
func DeleteMenuItem(ctx context.Context, db *gorm.DB, id uint) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item models.MenuItem
		if err := tx.First(&item, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("Menu item", id)
			}
			return err
		}

		scheduled := tx.Model(&models.DailyMenu{}).Select("id").Where("menu_item_id = ?", id)
		if err := tx.Where("daily_menu_id IN (?)", scheduled).Delete(&models.MealBooking{}).Error; err != nil {
			return err
		}
		if err := tx.Where("menu_item_id = ?", id).Delete(&models.DailyMenu{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM meal_order_items WHERE menu_item_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&item).Error
	})
}
