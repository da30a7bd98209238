package dto

import (
	"time"

	"github.com/unimeet/unimeet-api/internal/domain/entity"
)

type NotificationLog struct {
	NotificationLogID uint       `json:"notificationLogId"`
	UserID            uint       `json:"userId"`
	UserEmail         string     `json:"userEmail"`
	EventID           *uint      `json:"eventId"`
	EventTitle        string     `json:"eventTitle"`
	ClubID            *uint      `json:"clubId"`
	ClubName          string     `json:"clubName"`
	Type              string     `json:"type"`
	Status            string     `json:"status"`
	RecipientEmail    string     `json:"recipientEmail"`
	Subject           string     `json:"subject"`
	ErrorMessage      string     `json:"errorMessage"`
	RetryCount        int        `json:"retryCount"`
	CreatedAt         time.Time  `json:"createdAt"`
	SentAt            *time.Time `json:"sentAt"`
}

func NewNotificationLogFromEntity(n entity.NotificationLog) NotificationLog {
	l := NotificationLog{
		NotificationLogID: n.ID,
		UserID:            n.UserID,
		EventID:           n.EventID,
		ClubID:            n.ClubID,
		Type:              string(n.Type),
		Status:            string(n.Status),
		RecipientEmail:    n.RecipientEmail,
		Subject:           n.Subject,
		ErrorMessage:      n.ErrorMessage,
		RetryCount:        n.RetryCount,
		CreatedAt:         n.CreatedAt,
		SentAt:            n.SentAt,
	}
	if n.User != nil {
		l.UserEmail = n.User.Email
	}
	if n.Event != nil {
		l.EventTitle = n.Event.Title
	}
	if n.Club != nil {
		l.ClubName = n.Club.Name
	}
	return l
}

// NotificationStats is the aggregate count per lifecycle status.
type NotificationStats struct {
	Total   int64 `json:"total"`
	Sent    int64 `json:"sent"`
	Pending int64 `json:"pending"`
	Failed  int64 `json:"failed"`
	Retry   int64 `json:"retry"`
}

type NotificationLogPage struct {
	Notifications []NotificationLog `json:"notifications"`
	TotalCount    int64             `json:"totalCount"`
	Page          int               `json:"page"`
	PageSize      int               `json:"pageSize"`
	TotalPages    int               `json:"totalPages"`
	Statistics    NotificationStats `json:"statistics"`
}
