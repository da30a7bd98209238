package service

import (
	"context"
	"fmt"
	"time"

	"github.com/unimeet/unimeet-api/internal/adapters/logger"
	"github.com/unimeet/unimeet-api/internal/domain/dto"
	"github.com/unimeet/unimeet-api/internal/domain/entity"
	"github.com/unimeet/unimeet-api/internal/domain/utils/mail"
)

type notifyEventStorage interface {
	Get(ctx context.Context, id uint) (*entity.Event, error)
}

type notifyClubStorage interface {
	Get(ctx context.Context, id uint) (*entity.Club, error)
}

type notifyMemberStorage interface {
	GetByClubID(ctx context.Context, clubID uint) ([]entity.ClubMember, error)
}

type notificationStorage interface {
	CreateBatch(ctx context.Context, logs []entity.NotificationLog) error
	GetProcessable(ctx context.Context, limit int) ([]entity.NotificationLog, error)
	Update(ctx context.Context, log *entity.NotificationLog) error
	GetFailedRetryable(ctx context.Context) ([]entity.NotificationLog, error)
	List(ctx context.Context, filter entity.NotificationFilter) ([]entity.NotificationLog, int64, error)
	CountByStatus(ctx context.Context) (map[entity.NotificationStatus]int64, error)
}

type notifyMailer interface {
	Send(to, subject, htmlBody string) error
}

const (
	// deliveryBatchSize caps how many log entries one delivery pass picks up.
	deliveryBatchSize = 50
	// sendThrottle spaces out SMTP sends within a pass.
	sendThrottle = 500 * time.Millisecond
	// sweepInterval is how often the worker re-checks the queue without
	// being woken, picking up entries left over from a full batch or
	// reset by an admin on another instance.
	sweepInterval = time.Minute
)

type NotifyService struct {
	eventStorage        notifyEventStorage
	clubStorage         notifyClubStorage
	memberStorage       notifyMemberStorage
	notificationStorage notificationStorage
	mailer              notifyMailer
	clientBaseURL       string
	logger              *logger.Logger

	throttle time.Duration
	wake     chan struct{}
}

func NewNotifyService(
	eventStorage notifyEventStorage,
	clubStorage notifyClubStorage,
	memberStorage notifyMemberStorage,
	notificationStorage notificationStorage,
	mailer notifyMailer,
	clientBaseURL string,
	logger *logger.Logger,
) *NotifyService {
	return &NotifyService{
		eventStorage:        eventStorage,
		clubStorage:         clubStorage,
		memberStorage:       memberStorage,
		notificationStorage: notificationStorage,
		mailer:              mailer,
		clientBaseURL:       clientBaseURL,
		logger:              logger,
		throttle:            sendThrottle,
		wake:                make(chan struct{}, 1),
	}
}

// Start runs the delivery worker until ctx is cancelled. A single goroutine
// owns delivery, so two passes never race over the same log entries.
func (s *NotifyService) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.wake:
			case <-ticker.C:
			}

			if err := s.ProcessPending(ctx); err != nil {
				s.logger.Errorf("notification delivery pass failed: %v", err)
			}
		}
	}()
}

// Wake nudges the worker to run a delivery pass. Non-blocking: if a wakeup
// is already queued the pass that follows it will see the new entries too.
func (s *NotifyService) Wake() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// NotifyClubMembers records a pending notification for every eligible member
// of the club and wakes the delivery worker. Eligibility is snapshotted now:
// a member who disables notifications afterwards still receives mail that was
// already queued. Failures are logged and swallowed, enqueueing must never
// surface into the request that created the event.
func (s *NotifyService) NotifyClubMembers(ctx context.Context, eventID, clubID uint) {
	event, err := s.eventStorage.Get(ctx, eventID)
	if err != nil {
		s.logger.Warnf("skip notifications for event %d: %v", eventID, err)
		return
	}
	club, err := s.clubStorage.Get(ctx, clubID)
	if err != nil {
		s.logger.Warnf("skip notifications for club %d: %v", clubID, err)
		return
	}

	members, err := s.memberStorage.GetByClubID(ctx, clubID)
	if err != nil {
		s.logger.Errorf("get members of club %d: %v", clubID, err)
		return
	}

	subject := fmt.Sprintf("New event: %s", event.Title)

	var logs []entity.NotificationLog
	for _, m := range members {
		if m.User == nil {
			continue
		}
		if !m.User.IsActive || !m.User.EmailNotificationsEnabled || !m.User.EventNotificationsEnabled {
			continue
		}

		logs = append(logs, entity.NotificationLog{
			UserID:         m.UserID,
			EventID:        &event.ID,
			ClubID:         &club.ID,
			Type:           entity.NotificationTypeEventCreated,
			Status:         entity.NotificationStatusPending,
			RecipientEmail: m.User.Email,
			Subject:        subject,
			// Body is rendered at delivery time, against current data.
		})
	}
	if len(logs) == 0 {
		return
	}

	if err := s.notificationStorage.CreateBatch(ctx, logs); err != nil {
		s.logger.Errorf("enqueue %d notifications for event %d: %v", len(logs), eventID, err)
		return
	}

	s.logger.Infof("queued %d notifications for event %d (%s)", len(logs), eventID, club.Name)
	s.Wake()
}

// ProcessPending delivers one batch of queued notifications, oldest first.
// Each entry's outcome is flushed individually so progress survives a crash
// mid-batch.
func (s *NotifyService) ProcessPending(ctx context.Context) error {
	logs, err := s.notificationStorage.GetProcessable(ctx, deliveryBatchSize)
	if err != nil {
		return err
	}

	for i := range logs {
		n := &logs[i]

		// Referenced rows can vanish between enqueue and delivery. That is
		// terminal; retrying cannot bring them back.
		if n.User == nil || n.Event == nil || n.Club == nil {
			n.Status = entity.NotificationStatusFailed
			n.ErrorMessage = "related record no longer exists"
			if err := s.notificationStorage.Update(ctx, n); err != nil {
				s.logger.Errorf("mark notification %d failed: %v", n.ID, err)
			}
			continue
		}

		body, renderErr := mail.EventNotificationBody(n.User.FullName, n.Club.Name, n.Event, s.clientBaseURL)
		var sendErr error
		if renderErr != nil {
			sendErr = renderErr
		} else {
			n.Body = body
			sendErr = s.mailer.Send(n.RecipientEmail, n.Subject, body)
		}

		if sendErr == nil {
			now := time.Now().UTC()
			n.Status = entity.NotificationStatusSent
			n.SentAt = &now
			n.ErrorMessage = ""
		} else {
			n.RetryCount++
			n.ErrorMessage = sendErr.Error()
			if n.RetryCount >= entity.MaxNotificationRetries {
				n.Status = entity.NotificationStatusFailed
			} else {
				n.Status = entity.NotificationStatusRetry
			}
			s.logger.Warnf("send notification %d to %s (attempt %d): %v", n.ID, n.RecipientEmail, n.RetryCount, sendErr)
		}

		if err := s.notificationStorage.Update(ctx, n); err != nil {
			s.logger.Errorf("update notification %d: %v", n.ID, err)
		}

		if s.throttle > 0 && i < len(logs)-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(s.throttle):
			}
		}
	}

	return nil
}

// RetryFailed moves failed notifications that still have attempts left back
// into the queue and wakes the worker. The retry counter is preserved, so an
// entry re-queued at two attempts gets exactly one more.
func (s *NotifyService) RetryFailed(ctx context.Context) (int, error) {
	logs, err := s.notificationStorage.GetFailedRetryable(ctx)
	if err != nil {
		return 0, err
	}

	retried := 0
	for i := range logs {
		n := &logs[i]
		n.Status = entity.NotificationStatusRetry
		n.ErrorMessage = ""
		if err := s.notificationStorage.Update(ctx, n); err != nil {
			s.logger.Errorf("reset notification %d: %v", n.ID, err)
			continue
		}
		retried++
	}

	if retried > 0 {
		s.Wake()
	}
	return retried, nil
}

// ListLogs returns one page of the audit trail, newest first, together with
// queue-wide statistics.
func (s *NotifyService) ListLogs(ctx context.Context, filter entity.NotificationFilter) (*dto.NotificationLogPage, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	logs, total, err := s.notificationStorage.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	counts, err := s.notificationStorage.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]dto.NotificationLog, 0, len(logs))
	for _, n := range logs {
		items = append(items, dto.NewNotificationLogFromEntity(n))
	}

	var statTotal int64
	for _, c := range counts {
		statTotal += c
	}

	page := filter.Offset/filter.Limit + 1
	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))

	return &dto.NotificationLogPage{
		Notifications: items,
		TotalCount:    total,
		Page:          page,
		PageSize:      filter.Limit,
		TotalPages:    totalPages,
		Statistics: dto.NotificationStats{
			Total:   statTotal,
			Sent:    counts[entity.NotificationStatusSent],
			Pending: counts[entity.NotificationStatusPending],
			Failed:  counts[entity.NotificationStatusFailed],
			Retry:   counts[entity.NotificationStatusRetry],
		},
	}, nil
}
