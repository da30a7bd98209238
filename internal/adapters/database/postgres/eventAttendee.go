package postgres

import (
	"context"

	"github.com/unimeet/unimeet-api/internal/domain/entity"
	"gorm.io/gorm"
)

type EventAttendeeStorage struct {
	db *gorm.DB
}

func NewEventAttendeeStorage(db *gorm.DB) *EventAttendeeStorage {
	return &EventAttendeeStorage{
		db: db,
	}
}

func (s *EventAttendeeStorage) Exists(ctx context.Context, userID, eventID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&entity.EventAttendee{}).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		Count(&count).Error
	return count > 0, err
}

func (s *EventAttendeeStorage) Create(ctx context.Context, attendee *entity.EventAttendee) error {
	return s.db.WithContext(ctx).Create(attendee).Error
}

func (s *EventAttendeeStorage) Delete(ctx context.Context, userID, eventID uint) error {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		Delete(&entity.EventAttendee{}).Error
}

func (s *EventAttendeeStorage) CountByEvent(ctx context.Context, eventID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&entity.EventAttendee{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	return count, err
}

func (s *EventAttendeeStorage) GetEventIDsByUser(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := s.db.WithContext(ctx).Model(&entity.EventAttendee{}).
		Where("user_id = ?", userID).
		Pluck("event_id", &ids).Error
	return ids, err
}

// DeleteByUserAndEvents removes the user's attendance records for the given
// events, used when unfollowing a club pulls the user out of its
// members-only events.
func (s *EventAttendeeStorage) DeleteByUserAndEvents(ctx context.Context, userID uint, eventIDs []uint) error {
	if len(eventIDs) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).
		Where("user_id = ? AND event_id IN ?", userID, eventIDs).
		Delete(&entity.EventAttendee{}).Error
}
