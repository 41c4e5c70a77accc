package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"messmate-api/models"

	"gorm.io/gorm"
)

type SubmitFeedbackRequest struct {
	FeedbackType string `json:"feedbackType" binding:"required"`
	Rating       int    `json:"rating" binding:"required"`
	Message      string `json:"message" binding:"required,max=5000"`
}

func SubmitFeedback(ctx context.Context, db *gorm.DB, studentID uint, req SubmitFeedbackRequest) (*models.Feedback, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}
	fbType, ok := models.ParseFeedbackType(req.FeedbackType)
	if !ok {
		return nil, ErrInvalidFeedbackType
	}

	db = db.WithContext(ctx)
	var student models.User
	if err := db.First(&student, studentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("User", studentID)
		}
		return nil, err
	}

	fb := models.Feedback{
		StudentID:    student.ID,
		FeedbackType: fbType,
		Rating:       req.Rating,
		Message:      strings.TrimSpace(req.Message),
		Status:       models.FeedbackPending,
	}
	if err := db.Omit("Student", "RepliedBy").Create(&fb).Error; err != nil {
		return nil, err
	}
	fb.Student = &student
	return &fb, nil
}

// FeedbackFilter narrows ListFeedback; zero fields are ignored.
type FeedbackFilter struct {
	StudentID uint
	Status    models.FeedbackStatus
	Type      models.FeedbackType
	Rating    int
	Since     time.Time
}

// ListFeedback returns matching feedback, newest first.
func ListFeedback(ctx context.Context, db *gorm.DB, f FeedbackFilter) ([]models.Feedback, error) {
	q := db.WithContext(ctx).Preload("Student").Preload("RepliedBy").Order("created_at desc")
	if f.StudentID != 0 {
		q = q.Where("student_id = ?", f.StudentID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Type != "" {
		q = q.Where("feedback_type = ?", f.Type)
	}
	if f.Rating != 0 {
		q = q.Where("rating = ?", f.Rating)
	}
	if !f.Since.IsZero() {
		q = q.Where("created_at >= ?", f.Since)
	}

	var list []models.Feedback
	if err := q.Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func GetFeedback(ctx context.Context, db *gorm.DB, id uint) (*models.Feedback, error) {
	var fb models.Feedback
	err := db.WithContext(ctx).Preload("Student").Preload("RepliedBy").First(&fb, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Feedback", id)
		}
		return nil, err
	}
	return &fb, nil
}

// ReplyToFeedback records a staff reply and marks the feedback REVIEWED.
func ReplyToFeedback(ctx context.Context, db *gorm.DB, id, staffID uint, reply string, now time.Time) (*models.Feedback, error) {
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return nil, ErrEmptyReply
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var fb models.Feedback
		if err := tx.First(&fb, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("Feedback", id)
			}
			return err
		}
		var staff models.User
		if err := tx.First(&staff, staffID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("Staff", staffID)
			}
			return err
		}
		return tx.Model(&fb).Updates(map[string]interface{}{
			"staff_reply":   reply,
			"replied_by_id": staff.ID,
			"replied_at":    now,
			"status":        models.FeedbackReviewed,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return GetFeedback(ctx, db, id)
}

func UpdateFeedbackStatus(ctx context.Context, db *gorm.DB, id uint, status models.FeedbackStatus) (*models.Feedback, error) {
	res := db.WithContext(ctx).Model(&models.Feedback{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, notFound("Feedback", id)
	}
	return GetFeedback(ctx, db, id)
}

func DeleteFeedback(ctx context.Context, db *gorm.DB, id uint) error {
	res := db.WithContext(ctx).Delete(&models.Feedback{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound("Feedback", id)
	}
	return nil
}

func PendingFeedbackCount(ctx context.Context, db *gorm.DB) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(&models.Feedback{}).Where("status = ?", models.FeedbackPending).Count(&n).Error
	return n, err
}

type RatingSummary struct {
	FeedbackType  string  `json:"feedbackType"`
	AverageRating float64 `json:"averageRating"`
	Count         int64   `json:"count"`
}

// RatingSummaries averages ratings per feedback type. Types without feedback
// are reported with a zero count.
func RatingSummaries(ctx context.Context, db *gorm.DB) ([]RatingSummary, error) {
	var rows []RatingSummary
	err := db.WithContext(ctx).Model(&models.Feedback{}).
		Select("feedback_type, AVG(rating) AS average_rating, COUNT(*) AS count").
		Group("feedback_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	byType := map[string]RatingSummary{}
	for _, r := range rows {
		byType[r.FeedbackType] = r
	}
	out := make([]RatingSummary, 0, len(models.FeedbackTypes))
	for _, t := range models.FeedbackTypes {
		r, ok := byType[string(t)]
		if !ok {
			r = RatingSummary{FeedbackType: string(t)}
		}
		out = append(out, r)
	}
	return out, nil
}
