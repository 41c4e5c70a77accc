package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents all possible states of a meal order
type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderConfirmed OrderStatus = "CONFIRMED"
	OrderPreparing OrderStatus = "PREPARING"
	OrderReady     OrderStatus = "READY"
	OrderCompleted OrderStatus = "COMPLETED"
	OrderCancelled OrderStatus = "CANCELLED"
)

var orderStatuses = []OrderStatus{
	OrderPending, OrderConfirmed, OrderPreparing, OrderReady, OrderCompleted, OrderCancelled,
}

func ParseOrderStatus(s string) (OrderStatus, bool) {
	st := OrderStatus(strings.ToUpper(strings.TrimSpace(s)))
	for _, v := range orderStatuses {
		if v == st {
			return st, true
		}
	}
	return "", false
}

type MealOrder struct {
	ID                  uint            `json:"id" gorm:"primaryKey"`
	UserID              uint            `json:"userId" gorm:"not null;index"`
	User                *User           `json:"user,omitempty" gorm:"foreignKey:UserID"`
	MenuItems           []MenuItem      `json:"menuItems,omitempty" gorm:"many2many:meal_order_items;"`
	TotalAmount         decimal.Decimal `json:"totalAmount" gorm:"type:decimal(10,2);not null"`
	MealType            MealType        `json:"mealType" gorm:"index"`
	SpecialInstructions string          `json:"specialInstructions" gorm:"type:text"`
	Status              OrderStatus     `json:"status" gorm:"not null;default:'PENDING';index"`
	CreatedAt           time.Time       `json:"createdAt" gorm:"index"`
	UpdatedAt           time.Time       `json:"updatedAt"`
}
