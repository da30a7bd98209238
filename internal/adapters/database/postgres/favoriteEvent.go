package postgres

import (
	"context"

	"github.com/unimeet/unimeet-api/internal/domain/entity"
	"gorm.io/gorm"
)

type FavoriteEventStorage struct {
	db *gorm.DB
}

func NewFavoriteEventStorage(db *gorm.DB) *FavoriteEventStorage {
	return &FavoriteEventStorage{
		db: db,
	}
}

func (s *FavoriteEventStorage) Exists(ctx context.Context, userID, eventID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&entity.FavoriteEvent{}).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		Count(&count).Error
	return count > 0, err
}

func (s *FavoriteEventStorage) Create(ctx context.Context, favorite *entity.FavoriteEvent) error {
	return s.db.WithContext(ctx).Create(favorite).Error
}

func (s *FavoriteEventStorage) Delete(ctx context.Context, userID, eventID uint) error {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		Delete(&entity.FavoriteEvent{}).Error
}

// GetEventsByUser returns the user's favorited non-cancelled events ordered
// by start time.
func (s *FavoriteEventStorage) GetEventsByUser(ctx context.Context, userID uint) ([]entity.Event, error) {
	var events []entity.Event
	err := s.db.WithContext(ctx).Model(&entity.Event{}).
		Joins("JOIN favorite_events ON favorite_events.event_id = events.id").
		Where("favorite_events.user_id = ? AND events.is_cancelled = false", userID).
		Order("events.start_at").
		Find(&events).Error
	return events, err
}
