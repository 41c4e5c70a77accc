package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"messmate-api/models"
	"messmate-api/statemachine"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CreateOrderRequest struct {
	MenuItemIDs         []uint `json:"menuItemIds" binding:"required"`
	MealType            string `json:"mealType" binding:"required"`
	SpecialInstructions string `json:"specialInstructions" binding:"max=1000"`
}

// CreateOrder places an order for userID. The total is the sum of the current
// prices of the distinct items requested.
func CreateOrder(ctx context.Context, db *gorm.DB, userID uint, req CreateOrderRequest) (*models.MealOrder, error) {
	if len(req.MenuItemIDs) == 0 {
		return nil, ErrEmptyOrder
	}
	mealType, ok := models.ParseMealType(req.MealType)
	if !ok {
		return nil, ErrInvalidMealType
	}

	ids := make([]uint, 0, len(req.MenuItemIDs))
	seen := map[uint]bool{}
	for _, id := range req.MenuItemIDs {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	var order models.MealOrder
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("User", userID)
			}
			return err
		}

		var items []models.MenuItem
		if err := tx.Where("id IN ?", ids).Find(&items).Error; err != nil {
			return err
		}
		if len(items) != len(ids) {
			return ErrMenuItemsMissing
		}

		total := decimal.Zero
		for _, it := range items {
			if !it.IsAvailable {
				return invalid("menu item '%s' is not available", it.Name)
			}
			total = total.Add(it.Price)
		}

		order = models.MealOrder{
			UserID:              user.ID,
			MenuItems:           items,
			TotalAmount:         total,
			MealType:            mealType,
			SpecialInstructions: strings.TrimSpace(req.SpecialInstructions),
			Status:              models.OrderPending,
		}
		return tx.Omit("User", "MenuItems.*").Create(&order).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func GetOrder(ctx context.Context, db *gorm.DB, id uint) (*models.MealOrder, error) {
	var order models.MealOrder
	if err := db.WithContext(ctx).Preload("MenuItems").Preload("User").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Order", id)
		}
		return nil, err
	}
	return &order, nil
}

// OrderFilter narrows ListOrders; zero fields are ignored.
type OrderFilter struct {
	UserID   uint
	Status   models.OrderStatus
	MealType models.MealType
	From, To time.Time
}

// ListOrders returns matching orders, newest first.
func ListOrders(ctx context.Context, db *gorm.DB, f OrderFilter) ([]models.MealOrder, error) {
	q := db.WithContext(ctx).Preload("MenuItems").Order("created_at desc")
	if f.UserID != 0 {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.MealType != "" {
		q = q.Where("meal_type = ?", f.MealType)
	}
	if !f.From.IsZero() {
		q = q.Where("created_at >= ?", f.From)
	}
	if !f.To.IsZero() {
		q = q.Where("created_at < ?", f.To)
	}

	orders := []models.MealOrder{}
	if err := q.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// TodaysOrders lists orders of one meal type placed since local midnight.
func TodaysOrders(ctx context.Context, db *gorm.DB, mealType models.MealType, now time.Time) ([]models.MealOrder, error) {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return ListOrders(ctx, db, OrderFilter{MealType: mealType, From: start, To: start.AddDate(0, 0, 1)})
}

// UpdateOrderStatus applies a transition for actor. Students may only touch
// their own orders.
func UpdateOrderStatus(ctx context.Context, db *gorm.DB, id uint, to models.OrderStatus, actor string, userID uint) (*models.MealOrder, error) {
	var order models.MealOrder
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("Order", id)
			}
			return err
		}
		if actor == statemachine.ActorStudent && order.UserID != userID {
			return ErrNotOwner
		}
		if err := statemachine.Orders.CanTransition(string(order.Status), string(to), actor); err != nil {
			return err
		}
		if err := tx.Model(&order).Update("status", to).Error; err != nil {
			return err
		}
		order.Status = to
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func CancelOrder(ctx context.Context, db *gorm.DB, id, userID uint) (*models.MealOrder, error) {
	return UpdateOrderStatus(ctx, db, id, models.OrderCancelled, statemachine.ActorStudent, userID)
}
