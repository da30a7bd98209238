package postgres

import (
	"context"

	"github.com/unimeet/unimeet-api/internal/domain/entity"
	"gorm.io/gorm"
)

type NotificationStorage struct {
	db *gorm.DB
}

func NewNotificationStorage(db *gorm.DB) *NotificationStorage {
	return &NotificationStorage{
		db: db,
	}
}

// CreateBatch persists the enqueue-phase snapshot in a single insert.
func (s *NotificationStorage) CreateBatch(ctx context.Context, logs []entity.NotificationLog) error {
	if len(logs) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Create(&logs).Error
}

// GetProcessable returns up to limit entries eligible for delivery: status
// pending or retry with the retry counter below the cap, oldest first, with
// the user/event/club references resolved.
func (s *NotificationStorage) GetProcessable(ctx context.Context, limit int) ([]entity.NotificationLog, error) {
	var logs []entity.NotificationLog
	err := s.db.WithContext(ctx).
		Preload("User").Preload("Event").Preload("Club").
		Where("status IN ? AND retry_count < ?",
			[]entity.NotificationStatus{entity.NotificationStatusPending, entity.NotificationStatusRetry},
			entity.MaxNotificationRetries).
		Order("created_at").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}

func (s *NotificationStorage) Update(ctx context.Context, log *entity.NotificationLog) error {
	return s.db.WithContext(ctx).Save(log).Error
}

// GetFailedRetryable returns entries an admin bulk retry may reset: failed
// but still below the retry cap.
func (s *NotificationStorage) GetFailedRetryable(ctx context.Context) ([]entity.NotificationLog, error) {
	var logs []entity.NotificationLog
	err := s.db.WithContext(ctx).
		Where("status = ? AND retry_count < ?", entity.NotificationStatusFailed, entity.MaxNotificationRetries).
		Find(&logs).Error
	return logs, err
}

// List returns a page of log entries, newest first, plus the unpaged total.
func (s *NotificationStorage) List(ctx context.Context, filter entity.NotificationFilter) ([]entity.NotificationLog, int64, error) {
	q := s.db.WithContext(ctx).Model(&entity.NotificationLog{})
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if filter.UserID != nil {
		q = q.Where("user_id = ?", *filter.UserID)
	}
	if filter.ClubID != nil {
		q = q.Where("club_id = ?", *filter.ClubID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []entity.NotificationLog
	err := q.Preload("User").Preload("Event").Preload("Club").
		Order("created_at DESC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&logs).Error
	return logs, total, err
}

// CountByStatus returns the number of log entries per lifecycle status.
func (s *NotificationStorage) CountByStatus(ctx context.Context) (map[entity.NotificationStatus]int64, error) {
	type row struct {
		Status entity.NotificationStatus
		Count  int64
	}
	var rows []row
	err := s.db.WithContext(ctx).Model(&entity.NotificationLog{}).
		Select("status, count(*) as count").
		Group("status").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[entity.NotificationStatus]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}
