package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/unimeet/unimeet-api/internal/adapters/logger"
	"github.com/unimeet/unimeet-api/internal/domain/entity"
)

type fakeNotifyEventStore struct {
	event *entity.Event
	err   error
}

func (f *fakeNotifyEventStore) Get(ctx context.Context, id uint) (*entity.Event, error) {
	return f.event, f.err
}

type fakeNotifyClubStore struct {
	club *entity.Club
	err  error
}

func (f *fakeNotifyClubStore) Get(ctx context.Context, id uint) (*entity.Club, error) {
	return f.club, f.err
}

type fakeNotifyMemberStore struct {
	members []entity.ClubMember
}

func (f *fakeNotifyMemberStore) GetByClubID(ctx context.Context, clubID uint) ([]entity.ClubMember, error) {
	return f.members, nil
}

type fakeNotificationStore struct {
	created     []entity.NotificationLog
	processable []entity.NotificationLog
	updated     []entity.NotificationLog
	failed      []entity.NotificationLog
}

func (f *fakeNotificationStore) CreateBatch(ctx context.Context, logs []entity.NotificationLog) error {
	f.created = append(f.created, logs...)
	return nil
}

func (f *fakeNotificationStore) GetProcessable(ctx context.Context, limit int) ([]entity.NotificationLog, error) {
	if len(f.processable) > limit {
		return f.processable[:limit], nil
	}
	return f.processable, nil
}

func (f *fakeNotificationStore) Update(ctx context.Context, log *entity.NotificationLog) error {
	f.updated = append(f.updated, *log)
	return nil
}

func (f *fakeNotificationStore) GetFailedRetryable(ctx context.Context) ([]entity.NotificationLog, error) {
	return f.failed, nil
}

func (f *fakeNotificationStore) List(ctx context.Context, filter entity.NotificationFilter) ([]entity.NotificationLog, int64, error) {
	return nil, 0, nil
}

func (f *fakeNotificationStore) CountByStatus(ctx context.Context) (map[entity.NotificationStatus]int64, error) {
	return map[entity.NotificationStatus]int64{}, nil
}

type fakeMailer struct {
	err  error
	sent []string
}

func (f *fakeMailer) Send(to, subject, htmlBody string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, to)
	return nil
}

func testLogger() *logger.Logger {
	return &logger.Logger{SugaredLogger: zap.NewNop().Sugar(), Name: "test"}
}

func newTestNotifyService(
	events *fakeNotifyEventStore,
	clubs *fakeNotifyClubStore,
	members *fakeNotifyMemberStore,
	store *fakeNotificationStore,
	mailer *fakeMailer,
) *NotifyService {
	svc := NewNotifyService(events, clubs, members, store, mailer, "https://unimeet.test", testLogger())
	svc.throttle = 0
	return svc
}

func member(userID uint, active, emailOn, eventOn bool) entity.ClubMember {
	return entity.ClubMember{
		UserID: userID,
		ClubID: 1,
		User: &entity.User{
			ID:                        userID,
			Email:                     "user@test.example",
			FullName:                  "Test User",
			IsActive:                  active,
			EmailNotificationsEnabled: emailOn,
			EventNotificationsEnabled: eventOn,
		},
	}
}

func TestNotifyClubMembersFiltersByPreferences(t *testing.T) {
	store := &fakeNotificationStore{}
	svc := newTestNotifyService(
		&fakeNotifyEventStore{event: &entity.Event{ID: 5, ClubID: 1, Title: "Launch Night"}},
		&fakeNotifyClubStore{club: &entity.Club{ID: 1, Name: "Robotics"}},
		&fakeNotifyMemberStore{members: []entity.ClubMember{
			member(1, true, true, true),
			member(2, true, true, false), // event notifications off
			member(3, true, false, true), // email notifications off
			member(4, false, true, true), // deactivated
			{UserID: 5, ClubID: 1},       // dangling edge, no user loaded
		}},
		store,
		&fakeMailer{},
	)

	svc.NotifyClubMembers(context.Background(), 5, 1)

	require.Len(t, store.created, 1, "only the fully opted-in active member is queued")
	entry := store.created[0]
	assert.Equal(t, uint(1), entry.UserID)
	assert.Equal(t, entity.NotificationStatusPending, entry.Status)
	assert.Equal(t, entity.NotificationTypeEventCreated, entry.Type)
	assert.Equal(t, "New event: Launch Night", entry.Subject)
	assert.Empty(t, entry.Body, "body is rendered at delivery time")
}

func TestNotifyClubMembersSwallowsMissingEvent(t *testing.T) {
	store := &fakeNotificationStore{}
	svc := newTestNotifyService(
		&fakeNotifyEventStore{err: errors.New("record not found")},
		&fakeNotifyClubStore{club: &entity.Club{ID: 1}},
		&fakeNotifyMemberStore{members: []entity.ClubMember{member(1, true, true, true)}},
		store,
		&fakeMailer{},
	)

	svc.NotifyClubMembers(context.Background(), 99, 1)
	assert.Empty(t, store.created)
}

func processableEntry(id uint, status entity.NotificationStatus, retries int) entity.NotificationLog {
	eventID, clubID := uint(5), uint(1)
	return entity.NotificationLog{
		ID:             id,
		UserID:         1,
		EventID:        &eventID,
		ClubID:         &clubID,
		Type:           entity.NotificationTypeEventCreated,
		Status:         status,
		RecipientEmail: "user@test.example",
		Subject:        "New event: Launch Night",
		RetryCount:     retries,
		User:           &entity.User{ID: 1, FullName: "Test User"},
		Event:          &entity.Event{ID: 5, ClubID: 1, Title: "Launch Night", StartAt: time.Now().UTC()},
		Club:           &entity.Club{ID: 1, Name: "Robotics"},
	}
}

func TestProcessPendingDeliversAndStamps(t *testing.T) {
	store := &fakeNotificationStore{processable: []entity.NotificationLog{
		processableEntry(1, entity.NotificationStatusPending, 0),
	}}
	mailer := &fakeMailer{}
	svc := newTestNotifyService(&fakeNotifyEventStore{}, &fakeNotifyClubStore{}, &fakeNotifyMemberStore{}, store, mailer)

	require.NoError(t, svc.ProcessPending(context.Background()))

	require.Len(t, store.updated, 1)
	got := store.updated[0]
	assert.Equal(t, entity.NotificationStatusSent, got.Status)
	assert.NotNil(t, got.SentAt)
	assert.NotEmpty(t, got.Body)
	assert.Zero(t, got.RetryCount)
	assert.Len(t, mailer.sent, 1)
}

// An entry that keeps failing walks Pending -> Retry -> Retry -> Failed and
// is never attempted a fourth time.
func TestProcessPendingRetryCap(t *testing.T) {
	entry := processableEntry(1, entity.NotificationStatusPending, 0)
	mailer := &fakeMailer{err: errors.New("smtp timeout")}

	wantStatus := []entity.NotificationStatus{
		entity.NotificationStatusRetry,
		entity.NotificationStatusRetry,
		entity.NotificationStatusFailed,
	}

	for attempt := 0; attempt < 3; attempt++ {
		store := &fakeNotificationStore{processable: []entity.NotificationLog{entry}}
		svc := newTestNotifyService(&fakeNotifyEventStore{}, &fakeNotifyClubStore{}, &fakeNotifyMemberStore{}, store, mailer)

		require.NoError(t, svc.ProcessPending(context.Background()))
		require.Len(t, store.updated, 1)

		entry = store.updated[0]
		assert.Equal(t, wantStatus[attempt], entry.Status)
		assert.Equal(t, attempt+1, entry.RetryCount)
		assert.Equal(t, "smtp timeout", entry.ErrorMessage)
	}

	// At the cap the storage query no longer returns the entry; a delivery
	// pass over an empty batch must not touch it.
	store := &fakeNotificationStore{}
	svc := newTestNotifyService(&fakeNotifyEventStore{}, &fakeNotifyClubStore{}, &fakeNotifyMemberStore{}, store, mailer)
	require.NoError(t, svc.ProcessPending(context.Background()))
	assert.Empty(t, store.updated)
	assert.Equal(t, 3, entry.RetryCount)
}

func TestProcessPendingMissingReferencesAreTerminal(t *testing.T) {
	entry := processableEntry(1, entity.NotificationStatusPending, 0)
	entry.Event = nil

	store := &fakeNotificationStore{processable: []entity.NotificationLog{entry}}
	mailer := &fakeMailer{}
	svc := newTestNotifyService(&fakeNotifyEventStore{}, &fakeNotifyClubStore{}, &fakeNotifyMemberStore{}, store, mailer)

	require.NoError(t, svc.ProcessPending(context.Background()))

	require.Len(t, store.updated, 1)
	got := store.updated[0]
	assert.Equal(t, entity.NotificationStatusFailed, got.Status)
	assert.Zero(t, got.RetryCount, "a vanished reference is terminal, not a retry")
	assert.Empty(t, mailer.sent)
}

func TestRetryFailedPreservesCounter(t *testing.T) {
	store := &fakeNotificationStore{failed: []entity.NotificationLog{
		{ID: 1, Status: entity.NotificationStatusFailed, RetryCount: 2, ErrorMessage: "smtp timeout"},
	}}
	svc := newTestNotifyService(&fakeNotifyEventStore{}, &fakeNotifyClubStore{}, &fakeNotifyMemberStore{}, store, &fakeMailer{})

	count, err := svc.RetryFailed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.Len(t, store.updated, 1)
	got := store.updated[0]
	assert.Equal(t, entity.NotificationStatusRetry, got.Status)
	assert.Equal(t, 2, got.RetryCount, "re-queueing grants exactly the remaining attempts")
	assert.Empty(t, got.ErrorMessage)
}
