package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/unimeet/unimeet-api/internal/domain/common/errorz"
	"github.com/unimeet/unimeet-api/internal/domain/dto"
	"github.com/unimeet/unimeet-api/internal/domain/entity"
)

type eventStorage interface {
	Create(ctx context.Context, event *entity.Event) (*entity.Event, error)
	Get(ctx context.Context, id uint) (*entity.Event, error)
	Update(ctx context.Context, event *entity.Event) (*entity.Event, error)
	GetAll(ctx context.Context, includeCancelled bool) ([]entity.Event, error)
	GetByClubIDs(ctx context.Context, clubIDs []uint, upcomingOnly, includeCancelled bool) ([]entity.Event, error)
	GetWindowByClubIDs(ctx context.Context, clubIDs []uint, from, until time.Time, includeCancelled bool) ([]entity.Event, error)
}

type eventAttendeeStorage interface {
	Exists(ctx context.Context, userID, eventID uint) (bool, error)
	Create(ctx context.Context, attendee *entity.EventAttendee) error
	Delete(ctx context.Context, userID, eventID uint) error
	CountByEvent(ctx context.Context, eventID uint) (int64, error)
	GetEventIDsByUser(ctx context.Context, userID uint) ([]uint, error)
}

type eventFavoriteStorage interface {
	Exists(ctx context.Context, userID, eventID uint) (bool, error)
	Create(ctx context.Context, favorite *entity.FavoriteEvent) error
	Delete(ctx context.Context, userID, eventID uint) error
	GetEventsByUser(ctx context.Context, userID uint) ([]entity.Event, error)
}

type eventMemberStorage interface {
	GetClubIDsByUser(ctx context.Context, userID uint) ([]uint, error)
}

type eventClubStorage interface {
	GetMany(ctx context.Context, ids []uint) ([]entity.Club, error)
}

type eventUserStorage interface {
	Get(ctx context.Context, id uint) (*entity.User, error)
}

// eventNotifier is woken after an event is created; it must never make the
// creating request fail.
type eventNotifier interface {
	NotifyClubMembers(ctx context.Context, eventID, clubID uint)
}

// EventInput carries the writable fields of an event.
type EventInput struct {
	ClubID      uint
	Title       string
	Location    string
	StartAt     time.Time
	EndAt       *time.Time
	Quota       int
	Description string
	IsPublic    bool
}

func (in EventInput) validate() error {
	if in.Title == "" {
		return fmt.Errorf("%w: title is required", errorz.ErrValidation)
	}
	if in.Location == "" {
		return fmt.Errorf("%w: location is required", errorz.ErrValidation)
	}
	if in.StartAt.IsZero() {
		return fmt.Errorf("%w: start time is required", errorz.ErrValidation)
	}
	if in.Quota < 1 {
		return fmt.Errorf("%w: quota must be at least 1", errorz.ErrValidation)
	}
	if in.EndAt != nil && in.EndAt.Before(in.StartAt) {
		return fmt.Errorf("%w: end time precedes start time", errorz.ErrValidation)
	}
	return nil
}

type EventService struct {
	eventStorage    eventStorage
	attendeeStorage eventAttendeeStorage
	favoriteStorage eventFavoriteStorage
	memberStorage   eventMemberStorage
	clubStorage     eventClubStorage
	userStorage     eventUserStorage
	notifier        eventNotifier
}

func NewEventService(
	eventStorage eventStorage,
	attendeeStorage eventAttendeeStorage,
	favoriteStorage eventFavoriteStorage,
	memberStorage eventMemberStorage,
	clubStorage eventClubStorage,
	userStorage eventUserStorage,
	notifier eventNotifier,
) *EventService {
	return &EventService{
		eventStorage:    eventStorage,
		attendeeStorage: attendeeStorage,
		favoriteStorage: favoriteStorage,
		memberStorage:   memberStorage,
		clubStorage:     clubStorage,
		userStorage:     userStorage,
		notifier:        notifier,
	}
}

func (s *EventService) actor(ctx context.Context, actorID uint) (*entity.User, error) {
	user, err := s.userStorage.Get(ctx, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorz.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// Create stores the event and queues notifications to the club's members in
// the background.
func (s *EventService) Create(ctx context.Context, actorID uint, in EventInput) (*dto.Event, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	actor, err := s.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.ManagesClub(in.ClubID) {
		return nil, errorz.ErrForbidden
	}

	event, err := s.eventStorage.Create(ctx, &entity.Event{
		ClubID:          in.ClubID,
		Title:           in.Title,
		Location:        in.Location,
		StartAt:         in.StartAt.UTC(),
		EndAt:           in.EndAt,
		Quota:           in.Quota,
		Description:     in.Description,
		IsPublic:        in.IsPublic,
		CreatedByUserID: actorID,
	})
	if err != nil {
		return nil, err
	}

	// Detached from the request: the event exists whether or not the
	// notification queue accepts it.
	go s.notifier.NotifyClubMembers(context.WithoutCancel(ctx), event.ID, event.ClubID)

	return s.decorateOne(ctx, actorID, *event)
}

// Update rewrites the writable fields. Moving the event to another club
// requires manage rights on the target club too.
func (s *EventService) Update(ctx context.Context, actorID, eventID uint, in EventInput) (*dto.Event, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	actor, err := s.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	event, err := s.get(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !actor.ManagesClub(event.ClubID) || !actor.ManagesClub(in.ClubID) {
		return nil, errorz.ErrForbidden
	}

	event.ClubID = in.ClubID
	event.Title = in.Title
	event.Location = in.Location
	event.StartAt = in.StartAt.UTC()
	event.EndAt = in.EndAt
	event.Quota = in.Quota
	event.Description = in.Description
	event.IsPublic = in.IsPublic

	event, err = s.eventStorage.Update(ctx, event)
	if err != nil {
		return nil, err
	}
	return s.decorateOne(ctx, actorID, *event)
}

// Cancel soft-cancels: the event stays visible, attendance stays recorded.
// Cancelling twice is a no-op.
func (s *EventService) Cancel(ctx context.Context, actorID, eventID uint) error {
	actor, err := s.actor(ctx, actorID)
	if err != nil {
		return err
	}

	event, err := s.get(ctx, eventID)
	if err != nil {
		return err
	}
	if !actor.ManagesClub(event.ClubID) {
		return errorz.ErrForbidden
	}
	if event.IsCancelled {
		return nil
	}

	event.IsCancelled = true
	_, err = s.eventStorage.Update(ctx, event)
	return err
}

func (s *EventService) get(ctx context.Context, id uint) (*entity.Event, error) {
	event, err := s.eventStorage.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorz.ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

func (s *EventService) Get(ctx context.Context, userID, eventID uint) (*dto.Event, error) {
	event, err := s.get(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return s.decorateOne(ctx, userID, *event)
}

// Join records attendance. Joining twice is a no-op.
func (s *EventService) Join(ctx context.Context, userID, eventID uint) error {
	if _, err := s.get(ctx, eventID); err != nil {
		return err
	}

	exists, err := s.attendeeStorage.Exists(ctx, userID, eventID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	return s.attendeeStorage.Create(ctx, &entity.EventAttendee{
		UserID:  userID,
		EventID: eventID,
	})
}

// Leave removes attendance. Leaving an event never joined is a no-op.
func (s *EventService) Leave(ctx context.Context, userID, eventID uint) error {
	exists, err := s.attendeeStorage.Exists(ctx, userID, eventID)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}
	return s.attendeeStorage.Delete(ctx, userID, eventID)
}

// AddFavorite bookmarks the event for the user. Idempotent.
func (s *EventService) AddFavorite(ctx context.Context, userID, eventID uint) error {
	if _, err := s.get(ctx, eventID); err != nil {
		return err
	}

	exists, err := s.favoriteStorage.Exists(ctx, userID, eventID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	return s.favoriteStorage.Create(ctx, &entity.FavoriteEvent{
		UserID:  userID,
		EventID: eventID,
	})
}

func (s *EventService) RemoveFavorite(ctx context.Context, userID, eventID uint) error {
	exists, err := s.favoriteStorage.Exists(ctx, userID, eventID)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}
	return s.favoriteStorage.Delete(ctx, userID, eventID)
}

// Favorites returns the user's bookmarked non-cancelled events, soonest first.
func (s *EventService) Favorites(ctx context.Context, userID uint) ([]dto.Event, error) {
	events, err := s.favoriteStorage.GetEventsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.decorate(ctx, userID, events)
}

// GetAll lists every event, soonest first.
func (s *EventService) GetAll(ctx context.Context, userID uint, includeCancelled bool) ([]dto.Event, error) {
	events, err := s.eventStorage.GetAll(ctx, includeCancelled)
	if err != nil {
		return nil, err
	}
	return s.decorate(ctx, userID, events)
}

// Feed lists events of the clubs the user follows. A user following no clubs
// gets an empty feed.
func (s *EventService) Feed(ctx context.Context, userID uint, upcomingOnly, includeCancelled bool) ([]dto.Event, error) {
	clubIDs, err := s.memberStorage.GetClubIDsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(clubIDs) == 0 {
		return []dto.Event{}, nil
	}

	events, err := s.eventStorage.GetByClubIDs(ctx, clubIDs, upcomingOnly, includeCancelled)
	if err != nil {
		return nil, err
	}
	return s.decorate(ctx, userID, events)
}

// Upcoming lists followed-club events starting within the next 24 hours.
func (s *EventService) Upcoming(ctx context.Context, userID uint, includeCancelled bool) ([]dto.Event, error) {
	clubIDs, err := s.memberStorage.GetClubIDsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(clubIDs) == 0 {
		return []dto.Event{}, nil
	}

	now := time.Now().UTC()
	events, err := s.eventStorage.GetWindowByClubIDs(ctx, clubIDs, now, now.Add(24*time.Hour), includeCancelled)
	if err != nil {
		return nil, err
	}
	return s.decorate(ctx, userID, events)
}

func (s *EventService) decorateOne(ctx context.Context, userID uint, event entity.Event) (*dto.Event, error) {
	decorated, err := s.decorate(ctx, userID, []entity.Event{event})
	if err != nil {
		return nil, err
	}
	return &decorated[0], nil
}

// decorate resolves club names, attendee counts and the viewer's membership
// and attendance flags. A zero userID means an anonymous viewer.
func (s *EventService) decorate(ctx context.Context, userID uint, events []entity.Event) ([]dto.Event, error) {
	clubIDSet := make(map[uint]struct{}, len(events))
	clubIDs := make([]uint, 0, len(events))
	for _, e := range events {
		if _, ok := clubIDSet[e.ClubID]; !ok {
			clubIDSet[e.ClubID] = struct{}{}
			clubIDs = append(clubIDs, e.ClubID)
		}
	}

	clubNames := make(map[uint]string, len(clubIDs))
	if len(clubIDs) > 0 {
		clubs, err := s.clubStorage.GetMany(ctx, clubIDs)
		if err != nil {
			return nil, err
		}
		for _, c := range clubs {
			clubNames[c.ID] = c.Name
		}
	}

	followedSet := map[uint]struct{}{}
	joinedSet := map[uint]struct{}{}
	if userID != 0 {
		followedIDs, err := s.memberStorage.GetClubIDsByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		for _, id := range followedIDs {
			followedSet[id] = struct{}{}
		}

		joinedIDs, err := s.attendeeStorage.GetEventIDsByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		for _, id := range joinedIDs {
			joinedSet[id] = struct{}{}
		}
	}

	result := make([]dto.Event, 0, len(events))
	for _, e := range events {
		attendees, err := s.attendeeStorage.CountByEvent(ctx, e.ID)
		if err != nil {
			return nil, err
		}

		_, isMember := followedSet[e.ClubID]
		_, isJoined := joinedSet[e.ID]
		result = append(result, dto.NewEventFromEntity(e, clubNames[e.ClubID], attendees, isMember, isJoined))
	}
	return result, nil
}
