package entity

import "time"

type Role string

const (
	RoleMember  Role = "member"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

// ParseRole validates a role string coming from the API boundary.
// Unknown values are rejected instead of silently defaulting.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleMember, RoleManager, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

type User struct {
	ID           uint   `gorm:"primaryKey"`
	Email        string `gorm:"uniqueIndex;not null"`
	FullName     string `gorm:"not null"`
	PasswordHash string
	Role         Role `gorm:"not null;default:member"`
	IsActive     bool `gorm:"not null;default:true"`

	// Set only for managers: the club they are allowed to manage.
	ManagedClubID *uint

	EmailConfirmed        bool `gorm:"not null;default:false"`
	RequiresPasswordReset bool `gorm:"not null;default:false"`
	PasswordSetAt         *time.Time

	EmailNotificationsEnabled bool `gorm:"not null;default:true"`
	EventNotificationsEnabled bool `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsManager() bool {
	return u.Role == RoleManager
}

// ManagesClub reports whether the user may create or edit events of the
// given club. Admins manage every club, managers only their own.
func (u *User) ManagesClub(clubID uint) bool {
	if u.IsAdmin() {
		return true
	}
	return u.IsManager() && u.ManagedClubID != nil && *u.ManagedClubID == clubID
}
