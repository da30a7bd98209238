package dto

import "github.com/unimeet/unimeet-api/internal/domain/entity"

type User struct {
	UserID   uint   `json:"userId"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
	IsActive bool   `json:"isActive"`
}

func NewUserFromEntity(u entity.User) User {
	return User{
		UserID:   u.ID,
		Email:    u.Email,
		FullName: u.FullName,
		Role:     string(u.Role),
		IsActive: u.IsActive,
	}
}

type LoginResult struct {
	UserID        uint   `json:"userId"`
	Email         string `json:"email"`
	FullName      string `json:"fullName"`
	Role          string `json:"role"`
	ManagedClubID *uint  `json:"managedClubId"`
	Token         string `json:"token"`
}

type NotificationPreferences struct {
	EmailNotificationsEnabled bool `json:"emailNotificationsEnabled"`
	EventNotificationsEnabled bool `json:"eventNotificationsEnabled"`
}
