package models

import (
	"strings"
	"time"
)

type FeedbackType string

const (
	FeedbackFoodQuality FeedbackType = "FOOD_QUALITY"
	FeedbackService     FeedbackType = "SERVICE"
	FeedbackCleanliness FeedbackType = "CLEANLINESS"
	FeedbackGeneral     FeedbackType = "GENERAL"
	FeedbackComplaint   FeedbackType = "COMPLAINT"
	FeedbackSuggestion  FeedbackType = "SUGGESTION"
)

var FeedbackTypes = []FeedbackType{
	FeedbackFoodQuality, FeedbackService, FeedbackCleanliness,
	FeedbackGeneral, FeedbackComplaint, FeedbackSuggestion,
}

func ParseFeedbackType(s string) (FeedbackType, bool) {
	t := FeedbackType(strings.ToUpper(strings.TrimSpace(s)))
	for _, v := range FeedbackTypes {
		if v == t {
			return t, true
		}
	}
	return "", false
}

type FeedbackStatus string

const (
	FeedbackPending   FeedbackStatus = "PENDING"
	FeedbackReviewed  FeedbackStatus = "REVIEWED"
	FeedbackResolved  FeedbackStatus = "RESOLVED"
	FeedbackDismissed FeedbackStatus = "DISMISSED"
)

func ParseFeedbackStatus(s string) (FeedbackStatus, bool) {
	st := FeedbackStatus(strings.ToUpper(strings.TrimSpace(s)))
	switch st {
	case FeedbackPending, FeedbackReviewed, FeedbackResolved, FeedbackDismissed:
		return st, true
	}
	return "", false
}

type Feedback struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	StudentID    uint           `json:"studentId" gorm:"not null;index"`
	Student      *User          `json:"-" gorm:"foreignKey:StudentID"`
	FeedbackType FeedbackType   `json:"feedbackType" gorm:"not null;index"`
	Rating       int            `json:"rating" gorm:"not null"`
	Message      string         `json:"message" gorm:"type:text"`
	Status       FeedbackStatus `json:"status" gorm:"not null;default:'PENDING';index"`
	StaffReply   string         `json:"staffReply" gorm:"type:text"`
	RepliedByID  *uint          `json:"repliedById"`
	RepliedBy    *User          `json:"-" gorm:"foreignKey:RepliedByID"`
	RepliedAt    *time.Time     `json:"repliedAt"`
	CreatedAt    time.Time      `json:"createdAt" gorm:"index"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// FeedbackView is the API shape of a feedback row with student and replier
// names flattened in.
type FeedbackView struct {
	ID           uint       `json:"id"`
	StudentName  string     `json:"studentName"`
	StudentEmail string     `json:"studentEmail"`
	FeedbackType string     `json:"feedbackType"`
	Rating       int        `json:"rating"`
	Message      string     `json:"message"`
	Status       string     `json:"status"`
	StaffReply   string     `json:"staffReply,omitempty"`
	RepliedBy    string     `json:"repliedBy,omitempty"`
	RepliedAt    *time.Time `json:"repliedAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// View expects Student and RepliedBy to be preloaded.
func (f *Feedback) View() FeedbackView {
	v := FeedbackView{
		ID:           f.ID,
		FeedbackType: string(f.FeedbackType),
		Rating:       f.Rating,
		Message:      f.Message,
		Status:       string(f.Status),
		StaffReply:   f.StaffReply,
		RepliedAt:    f.RepliedAt,
		CreatedAt:    f.CreatedAt,
		UpdatedAt:    f.UpdatedAt,
	}
	if f.Student != nil {
		v.StudentName = f.Student.Name
		v.StudentEmail = f.Student.Email
	}
	if f.RepliedBy != nil {
		v.RepliedBy = f.RepliedBy.Name
	}
	return v
}
