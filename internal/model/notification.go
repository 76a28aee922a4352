package model

import "github.com/google/uuid"

type NotificationType string

const (
	NotificationSystem       NotificationType = "SYSTEM"
	NotificationAppointment  NotificationType = "APPOINTMENT"
	NotificationPrescription NotificationType = "PRESCRIPTION"
	NotificationLabResult    NotificationType = "LAB_RESULT"
	NotificationMessage      NotificationType = "MESSAGE"
)

func (t NotificationType) Valid() bool {
	switch t {
	case NotificationSystem, NotificationAppointment, NotificationPrescription,
		NotificationLabResult, NotificationMessage:
		return true
	}
	return false
}

type Notification struct {
	Base
	UserID  uuid.UUID        `json:"user_id" db:"user_id"`
	Title   string           `json:"title" db:"title"`
	Message string           `json:"message" db:"message"`
	Type    NotificationType `json:"type" db:"type"`
	IsRead  bool             `json:"is_read" db:"is_read"`
	Link    *string          `json:"link" db:"link"`
}

type CreateNotificationRequest struct {
	UserID  uuid.UUID `json:"user_id" validate:"required"`
	Title   string    `json:"title" validate:"required"`
	Message string    `json:"message" validate:"required"`
	Type    string    `json:"type"`
	Link    *string   `json:"link"`
}

type UnreadCount struct {
	Count int `json:"count"`
}
