package dto

import (
	"time"

	"github.com/unimeet/unimeet-api/internal/domain/entity"
)

type Club struct {
	ClubID uint   `json:"clubId"`
	Name   string `json:"name"`
}

type ClubWithFollow struct {
	ClubID      uint   `json:"clubId"`
	Name        string `json:"name"`
	IsFollowing bool   `json:"isFollowing"`
}

type ClubDetailed struct {
	ClubID          uint       `json:"clubId"`
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	ProfileImageURL string     `json:"profileImageUrl"`
	FoundedDate     *time.Time `json:"foundedDate"`
	Purpose         string     `json:"purpose"`
	ManagerID       *uint      `json:"managerId"`
}

type ClubProfile struct {
	ClubID          uint       `json:"clubId"`
	Name            string     `json:"name"`
	ProfileImageURL string     `json:"profileImageUrl"`
	FoundedDate     *time.Time `json:"foundedDate"`
	Purpose         string     `json:"purpose"`
	ManagerID       *uint      `json:"managerId"`
	ManagerName     string     `json:"managerName"`
}

func NewClubFromEntity(club entity.Club) Club {
	return Club{ClubID: club.ID, Name: club.Name}
}

func NewClubDetailedFromEntity(club entity.Club) ClubDetailed {
	return ClubDetailed{
		ClubID:          club.ID,
		Name:            club.Name,
		Description:     club.Description,
		ProfileImageURL: club.ProfileImageURL,
		FoundedDate:     club.FoundedDate,
		Purpose:         club.Purpose,
		ManagerID:       club.ManagerID,
	}
}

func NewClubProfileFromEntity(club entity.Club) ClubProfile {
	p := ClubProfile{
		ClubID:          club.ID,
		Name:            club.Name,
		ProfileImageURL: club.ProfileImageURL,
		FoundedDate:     club.FoundedDate,
		Purpose:         club.Purpose,
		ManagerID:       club.ManagerID,
	}
	if club.Manager != nil {
		p.ManagerName = club.Manager.FullName
	}
	return p
}
