package entity

import "time"

type Event struct {
	ID       uint   `gorm:"primaryKey"`
	ClubID   uint   `gorm:"not null;index"`
	Club     *Club
	Title    string `gorm:"not null"`
	Location string `gorm:"not null"`

	// Stored in UTC.
	StartAt time.Time `gorm:"not null"`
	EndAt   *time.Time

	Quota       int `gorm:"not null"`
	Description string

	// Events are never hard-deleted, cancellation is a soft flag.
	IsCancelled bool `gorm:"not null;default:false"`
	// true = visible to everyone, false = club members only.
	IsPublic bool `gorm:"not null;default:true"`

	CreatedByUserID uint
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type EventAttendee struct {
	UserID    uint `gorm:"primaryKey"`
	EventID   uint `gorm:"primaryKey"`
	CreatedAt time.Time

	User  *User
	Event *Event
}

type FavoriteEvent struct {
	UserID    uint `gorm:"primaryKey"`
	EventID   uint `gorm:"primaryKey"`
	CreatedAt time.Time

	User  *User
	Event *Event
}
