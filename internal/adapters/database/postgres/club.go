package postgres

import (
	"context"

	"github.com/unimeet/unimeet-api/internal/domain/entity"
	"gorm.io/gorm"
)

type ClubStorage struct {
	db *gorm.DB
}

func NewClubStorage(db *gorm.DB) *ClubStorage {
	return &ClubStorage{
		db: db,
	}
}

func (s *ClubStorage) Create(ctx context.Context, club *entity.Club) (*entity.Club, error) {
	err := s.db.WithContext(ctx).Create(&club).Error
	return club, err
}

func (s *ClubStorage) Get(ctx context.Context, id uint) (*entity.Club, error) {
	var club entity.Club
	err := s.db.WithContext(ctx).Preload("Manager").Where("id = ?", id).First(&club).Error
	return &club, err
}

// GetAll returns all clubs ordered by name.
func (s *ClubStorage) GetAll(ctx context.Context) ([]entity.Club, error) {
	var clubs []entity.Club
	err := s.db.WithContext(ctx).Order("name").Find(&clubs).Error
	return clubs, err
}

func (s *ClubStorage) GetMany(ctx context.Context, ids []uint) ([]entity.Club, error) {
	var clubs []entity.Club
	err := s.db.WithContext(ctx).Where("id IN ?", ids).Order("name").Find(&clubs).Error
	return clubs, err
}

func (s *ClubStorage) Update(ctx context.Context, club *entity.Club) (*entity.Club, error) {
	err := s.db.WithContext(ctx).Save(&club).Error
	return club, err
}

// Delete removes a club together with its membership edges.
func (s *ClubStorage) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("club_id = ?", id).Delete(&entity.ClubMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Club{}, id).Error
	})
}
