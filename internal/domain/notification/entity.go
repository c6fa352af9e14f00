package notification

import (
	"time"
)

// NotificationType represents the type of notification
type NotificationType string

const (
	TypeLeaveRequest  NotificationType = "leave_request"
	TypeLeaveApproved NotificationType = "leave_approved"
	TypeLeaveDeclined NotificationType = "leave_declined"
)

const RelatedTypeLeaveRequest = "leave_request"

// Notification represents a notification entity. Only IsRead changes after insert.
type Notification struct {
	ID          string
	UserID      string
	Title       string
	Message     string
	Type        NotificationType
	IsRead      bool
	RelatedType *string
	RelatedID   *string
	CreatedAt   time.Time
}
