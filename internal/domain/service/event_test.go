package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/unimeet/unimeet-api/internal/domain/common/errorz"
	"github.com/unimeet/unimeet-api/internal/domain/entity"
)

type fakeEventCRUDStore struct {
	events map[uint]*entity.Event
	nextID uint
}

func newFakeEventCRUDStore() *fakeEventCRUDStore {
	return &fakeEventCRUDStore{events: map[uint]*entity.Event{}, nextID: 1}
}

func (f *fakeEventCRUDStore) Create(ctx context.Context, e *entity.Event) (*entity.Event, error) {
	e.ID = f.nextID
	f.nextID++
	stored := *e
	f.events[e.ID] = &stored
	return e, nil
}

func (f *fakeEventCRUDStore) Get(ctx context.Context, id uint) (*entity.Event, error) {
	e, ok := f.events[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *e
	return &copied, nil
}

func (f *fakeEventCRUDStore) Update(ctx context.Context, e *entity.Event) (*entity.Event, error) {
	stored := *e
	f.events[e.ID] = &stored
	return e, nil
}

func (f *fakeEventCRUDStore) GetAll(ctx context.Context, includeCancelled bool) ([]entity.Event, error) {
	var out []entity.Event
	for _, e := range f.events {
		if includeCancelled || !e.IsCancelled {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeEventCRUDStore) GetByClubIDs(ctx context.Context, clubIDs []uint, upcomingOnly, includeCancelled bool) ([]entity.Event, error) {
	return f.GetAll(ctx, includeCancelled)
}

func (f *fakeEventCRUDStore) GetWindowByClubIDs(ctx context.Context, clubIDs []uint, from, until time.Time, includeCancelled bool) ([]entity.Event, error) {
	return f.GetAll(ctx, includeCancelled)
}

type fakeAttendanceStore struct {
	edges map[[2]uint]bool
}

func newFakeAttendanceStore() *fakeAttendanceStore {
	return &fakeAttendanceStore{edges: map[[2]uint]bool{}}
}

func (f *fakeAttendanceStore) Exists(ctx context.Context, userID, eventID uint) (bool, error) {
	return f.edges[[2]uint{userID, eventID}], nil
}

func (f *fakeAttendanceStore) Create(ctx context.Context, a *entity.EventAttendee) error {
	f.edges[[2]uint{a.UserID, a.EventID}] = true
	return nil
}

func (f *fakeAttendanceStore) Delete(ctx context.Context, userID, eventID uint) error {
	delete(f.edges, [2]uint{userID, eventID})
	return nil
}

func (f *fakeAttendanceStore) CountByEvent(ctx context.Context, eventID uint) (int64, error) {
	var n int64
	for edge := range f.edges {
		if edge[1] == eventID {
			n++
		}
	}
	return n, nil
}

func (f *fakeAttendanceStore) GetEventIDsByUser(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	for edge := range f.edges {
		if edge[0] == userID {
			ids = append(ids, edge[1])
		}
	}
	return ids, nil
}

type fakeFavoriteStore struct {
	edges map[[2]uint]bool
}

func newFakeFavoriteStore() *fakeFavoriteStore {
	return &fakeFavoriteStore{edges: map[[2]uint]bool{}}
}

func (f *fakeFavoriteStore) Exists(ctx context.Context, userID, eventID uint) (bool, error) {
	return f.edges[[2]uint{userID, eventID}], nil
}

func (f *fakeFavoriteStore) Create(ctx context.Context, fav *entity.FavoriteEvent) error {
	f.edges[[2]uint{fav.UserID, fav.EventID}] = true
	return nil
}

func (f *fakeFavoriteStore) Delete(ctx context.Context, userID, eventID uint) error {
	delete(f.edges, [2]uint{userID, eventID})
	return nil
}

func (f *fakeFavoriteStore) GetEventsByUser(ctx context.Context, userID uint) ([]entity.Event, error) {
	return nil, nil
}

type fakeClubNameStore struct {
	clubs []entity.Club
}

func (f *fakeClubNameStore) GetMany(ctx context.Context, ids []uint) ([]entity.Club, error) {
	return f.clubs, nil
}

type fakeUserStore struct {
	users map[uint]*entity.User
}

func (f *fakeUserStore) Get(ctx context.Context, id uint) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

type fakeNotifier struct {
	notified chan [2]uint
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{notified: make(chan [2]uint, 1)}
}

func (f *fakeNotifier) NotifyClubMembers(ctx context.Context, eventID, clubID uint) {
	f.notified <- [2]uint{eventID, clubID}
}

func newTestEventService(users map[uint]*entity.User, notifier *fakeNotifier) (*EventService, *fakeEventCRUDStore, *fakeAttendanceStore) {
	events := newFakeEventCRUDStore()
	attendance := newFakeAttendanceStore()
	svc := NewEventService(
		events,
		attendance,
		newFakeFavoriteStore(),
		&fakeMemberStore{},
		&fakeClubNameStore{clubs: []entity.Club{{ID: 1, Name: "Robotics"}}},
		&fakeUserStore{users: users},
		notifier,
	)
	return svc, events, attendance
}

func validInput(clubID uint) EventInput {
	return EventInput{
		ClubID:   clubID,
		Title:    "Launch Night",
		Location: "Main Hall",
		StartAt:  time.Date(2026, 9, 10, 18, 0, 0, 0, time.UTC),
		Quota:    50,
		IsPublic: true,
	}
}

func TestCreateEventAuthorization(t *testing.T) {
	ownClub := uint(1)
	users := map[uint]*entity.User{
		1: {ID: 1, Role: entity.RoleMember},
		2: {ID: 2, Role: entity.RoleManager, ManagedClubID: &ownClub},
		3: {ID: 3, Role: entity.RoleAdmin},
	}

	tests := []struct {
		name    string
		actorID uint
		clubID  uint
		wantErr error
	}{
		{name: "member cannot create", actorID: 1, clubID: 1, wantErr: errorz.ErrForbidden},
		{name: "manager for own club", actorID: 2, clubID: 1},
		{name: "manager for foreign club", actorID: 2, clubID: 2, wantErr: errorz.ErrForbidden},
		{name: "admin for any club", actorID: 3, clubID: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notifier := newFakeNotifier()
			svc, _, _ := newTestEventService(users, notifier)

			event, err := svc.Create(context.Background(), tt.actorID, validInput(tt.clubID))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			select {
			case got := <-notifier.notified:
				assert.Equal(t, [2]uint{event.EventID, tt.clubID}, got)
			case <-time.After(time.Second):
				t.Fatal("notification enqueue was never triggered")
			}
		})
	}
}

func TestCreateEventValidation(t *testing.T) {
	clubID := uint(1)
	svc, _, _ := newTestEventService(map[uint]*entity.User{
		2: {ID: 2, Role: entity.RoleManager, ManagedClubID: &clubID},
	}, newFakeNotifier())

	in := validInput(1)
	in.Quota = 0
	_, err := svc.Create(context.Background(), 2, in)
	require.ErrorIs(t, err, errorz.ErrValidation)

	in = validInput(1)
	end := in.StartAt.Add(-time.Hour)
	in.EndAt = &end
	_, err = svc.Create(context.Background(), 2, in)
	require.ErrorIs(t, err, errorz.ErrValidation)
}

func TestJoinAndLeaveAreIdempotent(t *testing.T) {
	clubID := uint(1)
	svc, events, attendance := newTestEventService(map[uint]*entity.User{
		2: {ID: 2, Role: entity.RoleManager, ManagedClubID: &clubID},
	}, newFakeNotifier())

	created, err := events.Create(context.Background(), &entity.Event{ClubID: 1, Title: "Demo", Quota: 10})
	require.NoError(t, err)

	require.NoError(t, svc.Join(context.Background(), 9, created.ID))
	require.NoError(t, svc.Join(context.Background(), 9, created.ID))

	count, err := attendance.CountByEvent(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, svc.Leave(context.Background(), 9, created.ID))
	require.NoError(t, svc.Leave(context.Background(), 9, created.ID))

	count, err = attendance.CountByEvent(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestJoinUnknownEvent(t *testing.T) {
	svc, _, _ := newTestEventService(nil, newFakeNotifier())
	err := svc.Join(context.Background(), 9, 404)
	require.ErrorIs(t, err, errorz.ErrEventNotFound)
}

func TestCancelIsSoft(t *testing.T) {
	clubID := uint(1)
	svc, events, _ := newTestEventService(map[uint]*entity.User{
		2: {ID: 2, Role: entity.RoleManager, ManagedClubID: &clubID},
	}, newFakeNotifier())

	created, err := events.Create(context.Background(), &entity.Event{ClubID: 1, Title: "Demo", Quota: 10})
	require.NoError(t, err)

	require.NoError(t, svc.Cancel(context.Background(), 2, created.ID))
	require.NoError(t, svc.Cancel(context.Background(), 2, created.ID))

	stored, err := events.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsCancelled, "cancelled event stays in storage")
}
