package entity

import "time"

type Club struct {
	ID              uint   `gorm:"primaryKey"`
	Name            string `gorm:"not null"`
	Description     string
	Purpose         string
	ProfileImageURL string
	FoundedDate     *time.Time
	ManagerID       *uint
	Manager         *User
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ClubMember is the follow edge between a user and a club. The composite
// primary key makes following idempotent at the storage level.
type ClubMember struct {
	UserID   uint `gorm:"primaryKey"`
	ClubID   uint `gorm:"primaryKey"`
	JoinedAt time.Time

	User *User
	Club *Club
}
