package entity

import "time"

type NotificationType string

const (
	NotificationTypeEventCreated     NotificationType = "event_created"
	NotificationTypeEventUpdated     NotificationType = "event_updated"
	NotificationTypeEventCancelled   NotificationType = "event_cancelled"
	NotificationTypeClubAnnouncement NotificationType = "club_announcement"
)

type NotificationStatus string

const (
	NotificationStatusPending NotificationStatus = "pending"
	NotificationStatusSent    NotificationStatus = "sent"
	NotificationStatusFailed  NotificationStatus = "failed"
	NotificationStatusRetry   NotificationStatus = "retry"
)

// ParseNotificationStatus validates a status string from the API boundary.
func ParseNotificationStatus(s string) (NotificationStatus, bool) {
	switch NotificationStatus(s) {
	case NotificationStatusPending, NotificationStatusSent,
		NotificationStatusFailed, NotificationStatusRetry:
		return NotificationStatus(s), true
	}
	return "", false
}

// MaxNotificationRetries is the delivery attempt cap. A log entry that
// reaches it stays failed until an admin resets it.
const MaxNotificationRetries = 3

// NotificationLog is both the delivery queue and the permanent audit trail.
// Rows are created in bulk when an event is published and mutated only by
// the delivery loop; they are never deleted.
type NotificationLog struct {
	ID     uint `gorm:"primaryKey"`
	UserID uint `gorm:"not null;index"`
	User   *User

	EventID *uint
	Event   *Event
	ClubID  *uint
	Club    *Club

	Type   NotificationType   `gorm:"not null"`
	Status NotificationStatus `gorm:"not null;default:pending;index"`

	RecipientEmail string `gorm:"not null"`
	Subject        string `gorm:"not null"`
	Body           string
	ErrorMessage   string

	RetryCount int `gorm:"not null;default:0"`

	CreatedAt time.Time `gorm:"index"`
	SentAt    *time.Time
}

// NotificationFilter narrows the admin log listing.
type NotificationFilter struct {
	Status *NotificationStatus
	UserID *uint
	ClubID *uint
	Offset int
	Limit  int
}
