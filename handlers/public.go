package handlers

import (
	"net/http"

	"messmate-api/config"
	"messmate-api/statemachine"

	"github.com/gin-gonic/gin"
)

// GetStateMachineInfo returns the order and booking lifecycles for
// informational purposes
func GetStateMachineInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"orders": gin.H{
			"transitions":     statemachine.Orders.Transitions(),
			"terminal_states": statemachine.Orders.TerminalStates(),
			"description":     "Canteen order lifecycle",
		},
		"bookings": gin.H{
			"transitions":     statemachine.Bookings.Transitions(),
			"terminal_states": statemachine.Bookings.TerminalStates(),
			"description":     "Meal booking lifecycle",
		},
	})
}

// Health pings the database as well as reporting the process is up.
func Health(c *gin.Context) {
	status, code := "healthy", http.StatusOK
	if sqlDB, err := config.DB.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
		status, code = "degraded", http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{
		"status":  status,
		"service": "MessMate Canteen API",
		"version": "1.0.0",
	})
}
