package postgres

import (
	"context"

	"github.com/unimeet/unimeet-api/internal/domain/entity"
	"gorm.io/gorm"
)

type ClubMemberStorage struct {
	db *gorm.DB
}

func NewClubMemberStorage(db *gorm.DB) *ClubMemberStorage {
	return &ClubMemberStorage{
		db: db,
	}
}

func (s *ClubMemberStorage) Exists(ctx context.Context, userID, clubID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&entity.ClubMember{}).
		Where("user_id = ? AND club_id = ?", userID, clubID).
		Count(&count).Error
	return count > 0, err
}

func (s *ClubMemberStorage) Create(ctx context.Context, member *entity.ClubMember) error {
	return s.db.WithContext(ctx).Create(member).Error
}

func (s *ClubMemberStorage) Delete(ctx context.Context, userID, clubID uint) error {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND club_id = ?", userID, clubID).
		Delete(&entity.ClubMember{}).Error
}

// GetClubIDsByUser returns the ids of clubs the user follows.
func (s *ClubMemberStorage) GetClubIDsByUser(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := s.db.WithContext(ctx).Model(&entity.ClubMember{}).
		Where("user_id = ?", userID).
		Pluck("club_id", &ids).Error
	return ids, err
}

// GetByClubID returns a club's membership edges with the user rows preloaded.
func (s *ClubMemberStorage) GetByClubID(ctx context.Context, clubID uint) ([]entity.ClubMember, error) {
	var members []entity.ClubMember
	err := s.db.WithContext(ctx).Preload("User").
		Where("club_id = ?", clubID).
		Find(&members).Error
	return members, err
}
