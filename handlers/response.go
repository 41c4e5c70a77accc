package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"messmate-api/logger"
	"messmate-api/middleware"
	"messmate-api/services"
	"messmate-api/statemachine"

	"github.com/gin-gonic/gin"
)

// Log receives every unexpected failure with the request id it was reported
// under.
var Log = logger.NewLogger("messmate-api")

func respond(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, gin.H{"success": true, "message": message, "data": data})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "error": message})
}

// respondInternal logs err and answers with an opaque code; the client only
// gets the request id to quote.
func respondInternal(c *gin.Context, action string, err error) {
	requestID := middleware.GetRequestID(c)
	Log.Error(action, requestID, "request failed", err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"success":   false,
		"error":     "internal server error",
		"code":      "INTERNAL_ERROR",
		"requestId": requestID,
	})
}

// respondServiceError maps the services error classes onto HTTP statuses.
func respondServiceError(c *gin.Context, action string, err error) {
	var transition *statemachine.TransitionError
	switch {
	case errors.Is(err, services.ErrValidation):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrNotFound):
		respondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrForbidden):
		respondError(c, http.StatusForbidden, err.Error())
	case errors.As(err, &transition):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success":         false,
			"error":           "Invalid state transition",
			"reason":          transition.Error(),
			"currentStatus":   transition.From,
			"requested":       transition.To,
			"validNextStates": transition.Valid,
		})
	default:
		respondInternal(c, action, err)
	}
}

// bindError answers a failed ShouldBind* with 400.
func bindError(c *gin.Context, err error) {
	respondError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
}

// paramID parses a positive numeric path parameter, answering 400 when it is
// malformed.
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		respondError(c, http.StatusBadRequest, "Invalid "+name+": "+c.Param(name))
		return 0, false
	}
	return uint(id), true
}
