package models

import (
	"strings"
	"time"
)

type BookingStatus string

const (
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
	BookingCompleted BookingStatus = "COMPLETED"
)

func ParseBookingStatus(s string) (BookingStatus, bool) {
	st := BookingStatus(strings.ToUpper(strings.TrimSpace(s)))
	switch st {
	case BookingConfirmed, BookingCancelled, BookingCompleted:
		return st, true
	}
	return "", false
}

// MealBooking holds the booked quantity for one daily menu entry. Repeat
// bookings for the same entry are folded into this row, so daily_menu_id is
// unique.
type MealBooking struct {
	ID                  uint          `json:"id" gorm:"primaryKey"`
	DailyMenuID         uint          `json:"dailyMenuId" gorm:"not null;uniqueIndex"`
	DailyMenu           *DailyMenu    `json:"dailyMenu,omitempty" gorm:"foreignKey:DailyMenuID"`
	Quantity            int           `json:"quantity" gorm:"not null"`
	SpecialInstructions string        `json:"specialInstructions" gorm:"type:text"`
	Status              BookingStatus `json:"status" gorm:"not null;default:'CONFIRMED'"`
	CreatedAt           time.Time     `json:"createdAt"`
	UpdatedAt           time.Time     `json:"updatedAt"`
}

// BookingStats is derived on every request and never stored.
type BookingStats struct {
	MenuDate      string `json:"menuDate"`
	MealType      string `json:"mealType"`
	TotalQuantity int    `json:"totalQuantity"`
	TotalBookings int    `json:"totalBookings"`

	// Set only by the per-date breakdown, which reports one entry per daily menu.
	DailyMenuID  uint   `json:"dailyMenuId,omitempty"`
	MenuItemName string `json:"menuItemName,omitempty"`
}
