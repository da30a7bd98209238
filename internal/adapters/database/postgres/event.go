package postgres

import (
	"context"
	"time"

	"github.com/unimeet/unimeet-api/internal/domain/entity"
	"gorm.io/gorm"
)

type EventStorage struct {
	db *gorm.DB
}

func NewEventStorage(db *gorm.DB) *EventStorage {
	return &EventStorage{
		db: db,
	}
}

func (s *EventStorage) Create(ctx context.Context, event *entity.Event) (*entity.Event, error) {
	err := s.db.WithContext(ctx).Create(&event).Error
	return event, err
}

func (s *EventStorage) Get(ctx context.Context, id uint) (*entity.Event, error) {
	var event entity.Event
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&event).Error
	return &event, err
}

func (s *EventStorage) Update(ctx context.Context, event *entity.Event) (*entity.Event, error) {
	err := s.db.WithContext(ctx).Save(&event).Error
	return event, err
}

// GetAll returns all events ordered by start time ascending.
func (s *EventStorage) GetAll(ctx context.Context, includeCancelled bool) ([]entity.Event, error) {
	var events []entity.Event
	q := s.db.WithContext(ctx).Order("start_at")
	if !includeCancelled {
		q = q.Where("is_cancelled = false")
	}
	err := q.Find(&events).Error
	return events, err
}

// GetByClubIDs returns events of the given clubs for the home feed.
func (s *EventStorage) GetByClubIDs(ctx context.Context, clubIDs []uint, upcomingOnly, includeCancelled bool) ([]entity.Event, error) {
	var events []entity.Event
	q := s.db.WithContext(ctx).Where("club_id IN ?", clubIDs).Order("start_at")
	if !includeCancelled {
		q = q.Where("is_cancelled = false")
	}
	if upcomingOnly {
		q = q.Where("start_at >= ?", time.Now().UTC())
	}
	err := q.Find(&events).Error
	return events, err
}

// GetWindowByClubIDs returns events of the given clubs starting inside
// (from, until], used for the upcoming-24h list.
func (s *EventStorage) GetWindowByClubIDs(ctx context.Context, clubIDs []uint, from, until time.Time, includeCancelled bool) ([]entity.Event, error) {
	var events []entity.Event
	q := s.db.WithContext(ctx).
		Where("club_id IN ?", clubIDs).
		Where("start_at > ? AND start_at <= ?", from, until).
		Order("start_at")
	if !includeCancelled {
		q = q.Where("is_cancelled = false")
	}
	err := q.Find(&events).Error
	return events, err
}

// GetPublicByClubIDs returns the public non-cancelled events of the given
// clubs, unordered; the recommendation scorer sorts and limits in memory.
func (s *EventStorage) GetPublicByClubIDs(ctx context.Context, clubIDs []uint) ([]entity.Event, error) {
	var events []entity.Event
	err := s.db.WithContext(ctx).
		Where("club_id IN ?", clubIDs).
		Where("is_cancelled = false AND is_public = true").
		Find(&events).Error
	return events, err
}

// GetPublicExcludingClubs returns public non-cancelled events of any club
// not in the given set, the recommendation fallback pool.
func (s *EventStorage) GetPublicExcludingClubs(ctx context.Context, clubIDs []uint) ([]entity.Event, error) {
	var events []entity.Event
	q := s.db.WithContext(ctx).Where("is_cancelled = false AND is_public = true")
	if len(clubIDs) > 0 {
		q = q.Where("club_id NOT IN ?", clubIDs)
	}
	err := q.Find(&events).Error
	return events, err
}

// GetMembersOnlyIDs returns the ids of a club's non-public events, used to
// revoke attendance when a member leaves the club.
func (s *EventStorage) GetMembersOnlyIDs(ctx context.Context, clubID uint) ([]uint, error) {
	var ids []uint
	err := s.db.WithContext(ctx).Model(&entity.Event{}).
		Where("club_id = ? AND is_public = false", clubID).
		Pluck("id", &ids).Error
	return ids, err
}
