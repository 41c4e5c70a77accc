package handlers

import (
	"net/http"
	"strconv"
	"time"

	"messmate-api/config"
	"messmate-api/middleware"
	"messmate-api/models"
	"messmate-api/services"
	"messmate-api/statemachine"

	"github.com/gin-gonic/gin"
)

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// PlaceOrder creates an order for the caller
func PlaceOrder(c *gin.Context) {
	var req services.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	order, err := services.CreateOrder(c.Request.Context(), config.DB, middleware.GetUserID(c), req)
	if err != nil {
		respondServiceError(c, "place_order", err)
		return
	}
	respond(c, http.StatusCreated, "Order placed successfully", order)
}

// GetMyOrders returns the caller's orders, optional ?status=
func GetMyOrders(c *gin.Context) {
	filter := services.OrderFilter{UserID: middleware.GetUserID(c)}
	if s := c.Query("status"); s != "" {
		st, ok := models.ParseOrderStatus(s)
		if !ok {
			respondError(c, http.StatusBadRequest, "Invalid order status: "+s)
			return
		}
		filter.Status = st
	}
	orders, err := services.ListOrders(c.Request.Context(), config.DB, filter)
	if err != nil {
		respondInternal(c, "my_orders", err)
		return
	}
	respond(c, http.StatusOK, "Orders retrieved successfully", orders)
}

// GetOrderDetail returns one order. Students only see their own.
func GetOrderDetail(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	order, err := services.GetOrder(c.Request.Context(), config.DB, id)
	if err != nil {
		respondServiceError(c, "get_order", err)
		return
	}
	if !middleware.GetUserType(c).IsStaff() && order.UserID != middleware.GetUserID(c) {
		respondError(c, http.StatusForbidden, services.ErrNotOwner.Error())
		return
	}
	respond(c, http.StatusOK, "Order retrieved successfully", order)
}

// CancelOrder lets a student cancel their own order while it is still
// PENDING or CONFIRMED.
func CancelOrder(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	order, err := services.CancelOrder(c.Request.Context(), config.DB, id, middleware.GetUserID(c))
	if err != nil {
		respondServiceError(c, "cancel_order", err)
		return
	}
	respond(c, http.StatusOK, "Order cancelled", order)
}

// ListOrders is the staff view: filters ?status=, ?mealType=, ?userId=.
func ListOrders(c *gin.Context) {
	var filter services.OrderFilter
	if s := c.Query("status"); s != "" {
		st, ok := models.ParseOrderStatus(s)
		if !ok {
			respondError(c, http.StatusBadRequest, "Invalid order status: "+s)
			return
		}
		filter.Status = st
	}
	if s := c.Query("mealType"); s != "" {
		mt, ok := models.ParseMealType(s)
		if !ok {
			respondError(c, http.StatusBadRequest, services.ErrInvalidMealType.Error())
			return
		}
		filter.MealType = mt
	}
	if s := c.Query("userId"); s != "" {
		uid, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid userId: "+s)
			return
		}
		filter.UserID = uint(uid)
	}

	orders, err := services.ListOrders(c.Request.Context(), config.DB, filter)
	if err != nil {
		respondInternal(c, "list_orders", err)
		return
	}
	respond(c, http.StatusOK, "Orders retrieved successfully", orders)
}

func GetTodaysOrders(c *gin.Context) {
	mealType, ok := models.ParseMealType(c.Param("mealType"))
	if !ok {
		respondError(c, http.StatusBadRequest, "Invalid meal type: "+c.Param("mealType"))
		return
	}
	orders, err := services.TodaysOrders(c.Request.Context(), config.DB, mealType, time.Now())
	if err != nil {
		respondInternal(c, "todays_orders", err)
		return
	}
	respond(c, http.StatusOK, "Orders retrieved successfully", orders)
}

// UpdateOrderStatus advances an order through the kitchen lifecycle.
func UpdateOrderStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	status, valid := models.ParseOrderStatus(req.Status)
	if !valid {
		respondError(c, http.StatusBadRequest, "Invalid order status: "+req.Status)
		return
	}

	order, err := services.UpdateOrderStatus(c.Request.Context(), config.DB, id, status,
		statemachine.ActorStaff, middleware.GetUserID(c))
	if err != nil {
		respondServiceError(c, "update_order_status", err)
		return
	}
	respond(c, http.StatusOK, "Order status updated to "+string(status), order)
}
