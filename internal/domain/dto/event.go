package dto

import (
	"time"

	"github.com/unimeet/unimeet-api/internal/domain/entity"
)

type Event struct {
	EventID        uint       `json:"eventId"`
	Title          string     `json:"title"`
	Location       string     `json:"location"`
	StartAt        time.Time  `json:"startAt"`
	EndAt          *time.Time `json:"endAt"`
	Quota          int        `json:"quota"`
	ClubID         uint       `json:"clubId"`
	ClubName       string     `json:"clubName"`
	Description    string     `json:"description"`
	IsCancelled    bool       `json:"isCancelled"`
	IsPublic       bool       `json:"isPublic"`
	AttendeesCount int64      `json:"attendeesCount"`
	IsMember       bool       `json:"isMember"`
	IsJoined       bool       `json:"isJoined"`
}

func NewEventFromEntity(event entity.Event, clubName string, attendees int64, isMember, isJoined bool) Event {
	return Event{
		EventID:        event.ID,
		Title:          event.Title,
		Location:       event.Location,
		StartAt:        event.StartAt,
		EndAt:          event.EndAt,
		Quota:          event.Quota,
		ClubID:         event.ClubID,
		ClubName:       clubName,
		Description:    event.Description,
		IsCancelled:    event.IsCancelled,
		IsPublic:       event.IsPublic,
		AttendeesCount: attendees,
		IsMember:       isMember,
		IsJoined:       isJoined,
	}
}

// RecommendedEvent carries the similarity score and reason metadata next to
// the plain event fields. Reason strings are static labels, not derived
// explanations.
type RecommendedEvent struct {
	Event
	Score         float64 `json:"score"`
	Reason        string  `json:"recommendationReason"`
	ReasonDetails string  `json:"reasonDetails"`
}
