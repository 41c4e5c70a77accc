package services

import (
	"context"
	"sort"

	"messmate-api/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type menuTotal struct {
	DailyMenuID uint
	Total       int
	Count       int
}

type slotKey struct {
	date string
	meal models.MealType
}

// BookingStatistics totals every booking by (menu date, meal type). Bookings
// for different dishes in the same slot land in the same bucket, and
// TotalBookings counts rows, not units. Results are ordered by date, then by
// meal slot.
func BookingStatistics(ctx context.Context, db *gorm.DB) ([]models.BookingStats, error) {
	var bookings []models.MealBooking
	if err := db.WithContext(ctx).Preload("DailyMenu").Find(&bookings).Error; err != nil {
		return nil, err
	}

	stats := []models.BookingStats{}
	index := map[slotKey]int{}
	for _, b := range bookings {
		if b.DailyMenu == nil {
			continue
		}
		key := slotKey{date: models.FormatDate(b.DailyMenu.MenuDate), meal: b.DailyMenu.MealType}
		if i, ok := index[key]; ok {
			stats[i].TotalQuantity += b.Quantity
			stats[i].TotalBookings++
			continue
		}
		index[key] = len(stats)
		stats = append(stats, models.BookingStats{
			MenuDate:      key.date,
			MealType:      string(key.meal),
			TotalQuantity: b.Quantity,
			TotalBookings: 1,
		})
	}

	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].MenuDate != stats[j].MenuDate {
			return stats[i].MenuDate < stats[j].MenuDate
		}
		return models.MealType(stats[i].MealType).Slot() < models.MealType(stats[j].MealType).Slot()
	})
	return stats, nil
}

// BookingStatisticsByDate reports one entry per active daily menu on date,
// each with the totals of its own bookings. Unlike BookingStatistics, dishes
// sharing a slot are not merged.
func BookingStatisticsByDate(ctx context.Context, db *gorm.DB, date datatypes.Date) ([]models.BookingStats, error) {
	db = db.WithContext(ctx)

	var menus []models.DailyMenu
	err := db.Preload("MenuItem").
		Where("menu_date = ? AND is_active = ?", date, true).
		Order("id").
		Find(&menus).Error
	if err != nil {
		return nil, err
	}

	stats := []models.BookingStats{}
	if len(menus) == 0 {
		return stats, nil
	}

	ids := make([]uint, len(menus))
	for i, m := range menus {
		ids[i] = m.ID
	}

	var totals []menuTotal
	err = db.Model(&models.MealBooking{}).
		Select("daily_menu_id, COALESCE(SUM(quantity), 0) AS total, COUNT(*) AS count").
		Where("daily_menu_id IN ?", ids).
		Group("daily_menu_id").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	byMenu := make(map[uint]int, len(totals))
	for i, t := range totals {
		byMenu[t.DailyMenuID] = i
	}

	day := models.FormatDate(date)
	for _, m := range menus {
		s := models.BookingStats{
			MenuDate:     day,
			MealType:     string(m.MealType),
			DailyMenuID:  m.ID,
			MenuItemName: m.MenuItem.Name,
		}
		if i, ok := byMenu[m.ID]; ok {
			s.TotalQuantity = totals[i].Total
			s.TotalBookings = totals[i].Count
		}
		stats = append(stats, s)
	}
	return stats, nil
}
