package models

import (
	"strings"
	"time"
)

// UserType defines allowed roles in the system
type UserType string

const (
	UserStudent UserType = "STUDENT"
	UserStaff   UserType = "STAFF"
	UserAdmin   UserType = "ADMIN"
)

var userTypes = []UserType{UserStudent, UserStaff, UserAdmin}

// ParseUserType accepts any letter case, e.g. "staff" or "STAFF".
func ParseUserType(s string) (UserType, bool) {
	t := UserType(strings.ToUpper(strings.TrimSpace(s)))
	for _, v := range userTypes {
		if v == t {
			return t, true
		}
	}
	return "", false
}

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	UserType     UserType  `json:"userType" gorm:"not null;default:'STUDENT';index"`
	RollNumber   string    `json:"rollNumber" gorm:"index"`
	Hostel       string    `json:"hostel"`
	Room         string    `json:"room"`
	Phone        string    `json:"phone"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// IsStaff reports whether the type may manage menus, bookings and feedback.
func (t UserType) IsStaff() bool {
	return t == UserStaff || t == UserAdmin
}
