package handlers

import (
	"net/http"
	"strconv"
	"time"

	"messmate-api/config"
	"messmate-api/middleware"
	"messmate-api/models"
	"messmate-api/services"

	"github.com/gin-gonic/gin"
)

type ReplyRequest struct {
	Reply string `json:"reply" binding:"required,max=5000"`
}

type FeedbackStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func feedbackViews(list []models.Feedback) []models.FeedbackView {
	views := make([]models.FeedbackView, 0, len(list))
	for i := range list {
		views = append(views, list[i].View())
	}
	return views
}

func listFeedback(c *gin.Context, action string, filter services.FeedbackFilter) {
	list, err := services.ListFeedback(c.Request.Context(), config.DB, filter)
	if err != nil {
		respondInternal(c, action, err)
		return
	}
	respond(c, http.StatusOK, "Feedback retrieved successfully", feedbackViews(list))
}

// SubmitFeedback records feedback from the authenticated student.
func SubmitFeedback(c *gin.Context) {
	var req services.SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	fb, err := services.SubmitFeedback(c.Request.Context(), config.DB, middleware.GetUserID(c), req)
	if err != nil {
		respondServiceError(c, "submit_feedback", err)
		return
	}
	respond(c, http.StatusCreated, "Feedback submitted successfully", fb.View())
}

func GetMyFeedback(c *gin.Context) {
	listFeedback(c, "my_feedback", services.FeedbackFilter{StudentID: middleware.GetUserID(c)})
}

// ListFeedback is the staff view. Filters: ?status=, ?type=, ?rating=, ?studentId=.
func ListFeedback(c *gin.Context) {
	var filter services.FeedbackFilter
	if s := c.Query("status"); s != "" {
		st, ok := models.ParseFeedbackStatus(s)
		if !ok {
			respondError(c, http.StatusBadRequest, "Invalid feedback status: "+s)
			return
		}
		filter.Status = st
	}
	if s := c.Query("type"); s != "" {
		t, ok := models.ParseFeedbackType(s)
		if !ok {
			respondError(c, http.StatusBadRequest, services.ErrInvalidFeedbackType.Error())
			return
		}
		filter.Type = t
	}
	if s := c.Query("rating"); s != "" {
		r, err := strconv.Atoi(s)
		if err != nil || r < 1 || r > 5 {
			respondError(c, http.StatusBadRequest, services.ErrInvalidRating.Error())
			return
		}
		filter.Rating = r
	}
	if s := c.Query("studentId"); s != "" {
		id, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid studentId: "+s)
			return
		}
		filter.StudentID = uint(id)
	}
	listFeedback(c, "list_feedback", filter)
}

func GetFeedback(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	fb, err := services.GetFeedback(c.Request.Context(), config.DB, id)
	if err != nil {
		respondServiceError(c, "get_feedback", err)
		return
	}
	respond(c, http.StatusOK, "Feedback retrieved successfully", fb.View())
}

// GetRecentFeedback returns feedback from the last :days days.
func GetRecentFeedback(c *gin.Context) {
	days, err := strconv.Atoi(c.Param("days"))
	if err != nil || days < 1 {
		respondError(c, http.StatusBadRequest, "Invalid days: "+c.Param("days"))
		return
	}
	since := time.Now().AddDate(0, 0, -days)
	listFeedback(c, "recent_feedback", services.FeedbackFilter{Since: since})
}

func ReplyToFeedback(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	fb, err := services.ReplyToFeedback(c.Request.Context(), config.DB, id, middleware.GetUserID(c), req.Reply, time.Now())
	if err != nil {
		respondServiceError(c, "reply_feedback", err)
		return
	}
	respond(c, http.StatusOK, "Reply added successfully", fb.View())
}

func UpdateFeedbackStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req FeedbackStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	status, valid := models.ParseFeedbackStatus(req.Status)
	if !valid {
		respondError(c, http.StatusBadRequest, "Invalid feedback status: "+req.Status)
		return
	}
	fb, err := services.UpdateFeedbackStatus(c.Request.Context(), config.DB, id, status)
	if err != nil {
		respondServiceError(c, "update_feedback_status", err)
		return
	}
	respond(c, http.StatusOK, "Feedback status updated to "+string(status), fb.View())
}

func DeleteFeedback(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := services.DeleteFeedback(c.Request.Context(), config.DB, id); err != nil {
		respondServiceError(c, "delete_feedback", err)
		return
	}
	respond(c, http.StatusOK, "Feedback deleted successfully", nil)
}

func GetPendingFeedbackCount(c *gin.Context) {
	n, err := services.PendingFeedbackCount(c.Request.Context(), config.DB)
	if err != nil {
		respondInternal(c, "pending_feedback_count", err)
		return
	}
	respond(c, http.StatusOK, "Pending feedback count retrieved", gin.H{"pending": n})
}

func GetRatingSummaries(c *gin.Context) {
	summaries, err := services.RatingSummaries(c.Request.Context(), config.DB)
	if err != nil {
		respondInternal(c, "rating_summaries", err)
		return
	}
	respond(c, http.StatusOK, "Rating summaries retrieved", summaries)
}
