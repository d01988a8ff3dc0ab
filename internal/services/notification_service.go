package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"flightwatch/internal/common"
	"flightwatch/internal/db/repositories"
	"flightwatch/internal/logging"
	"flightwatch/internal/metrics"
	"flightwatch/internal/models/dtos"
	"flightwatch/internal/models/entities"
	"flightwatch/internal/models/gorm"
	"flightwatch/internal/providers"
)

// ErrNotificationNotFound is returned when marking an unknown id as read
var ErrNotificationNotFound = providers.NewNotFoundError("notification not found")

const notifyMeMessage = "We'll notify you of any changes to your flight."

// Notifier delivers a stored notification to the user
type Notifier interface {
	Deliver(ctx context.Context, n entities.Notification) error
}

// LogNotifier presents notifications through the structured log, honouring
// the configured presentation settings
type LogNotifier struct {
	Settings entities.NotificationSettings
}

func NewLogNotifier(settings entities.NotificationSettings) *LogNotifier {
	return &LogNotifier{Settings: settings}
}

func (n *LogNotifier) Deliver(ctx context.Context, note entities.Notification) error {
	fields := []interface{}{
		"notification_id", note.ID,
		"title", note.Title,
		"play_sound", n.Settings.PlaySound,
		"set_badge", n.Settings.SetBadge,
	}
	if note.FlightID != nil {
		fields = append(fields, "flight_id", *note.FlightID)
	}

	if n.Settings.ShowAlert {
		logging.Info(note.Message, fields...)
	} else {
		logging.Debug(note.Message, fields...)
	}
	return nil
}

// QueueNotifier hands notifications to the Redis delivery stream
type QueueNotifier struct {
	Queue  *common.RedisQueueService
	Stream string
}

func (n *QueueNotifier) Deliver(ctx context.Context, note entities.Notification) error {
	return n.Queue.EnqueueNotification(ctx, n.Stream, note)
}

type NotificationService struct {
	Repo     *repositories.NotificationRepository
	Stats    *repositories.NotificationStatsRepository
	Notifier Notifier
	Metrics  *metrics.MetricsRegistry
	Now      func() time.Time
}

func NewNotificationService(repo *repositories.NotificationRepository, stats *repositories.NotificationStatsRepository, notifier Notifier, m *metrics.MetricsRegistry) *NotificationService {
	return &NotificationService{
		Repo:     repo,
		Stats:    stats,
		Notifier: notifier,
		Metrics:  m,
		Now:      time.Now,
	}
}

// NotifyFlight records a "notify me" request for a flight and delivers the
// confirmation. A delivery failure is logged; the notification stays stored.
func (svc *NotificationService) NotifyFlight(ctx context.Context, flightNumber string) (*entities.Notification, error) {
	number := providers.NormalizeCode(flightNumber)
	if number == "" {
		return nil, providers.NewValidationError("flight number cannot be empty")
	}

	note := entities.Notification{
		ID:        uuid.NewString(),
		Title:     fmt.Sprintf("Flight %s Update", number),
		Message:   notifyMeMessage,
		Timestamp: svc.Now().UTC(),
		Read:      false,
		FlightID:  &number,
	}

	row := gorm.NotificationFromEntity(note)
	if err := svc.Repo.Create(ctx, &row); err != nil {
		return nil, fmt.Errorf("store notification: %w", err)
	}
	svc.Metrics.NotificationSent()

	if svc.Notifier != nil {
		if err := svc.Notifier.Deliver(ctx, note); err != nil {
			logging.Warn("Notification delivery failed", "notification_id", note.ID, "error", err.Error())
		}
	}
	return &note, nil
}

// List returns every notification newest first with the unread count
func (svc *NotificationService) List(ctx context.Context) (*dtos.NotificationListResponse, error) {
	rows, err := svc.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	out := make([]entities.Notification, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ToEntity())
	}

	unread, err := svc.Stats.UnreadCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("count unread: %w", err)
	}

	return &dtos.NotificationListResponse{
		Notifications: out,
		Unread:        unread,
	}, nil
}

// MarkRead flags a notification as read
func (svc *NotificationService) MarkRead(ctx context.Context, id string) error {
	ok, err := svc.Repo.MarkRead(ctx, id)
	if err != nil {
		return fmt.Errorf("mark read: %w", err)
	}
	if !ok {
		return ErrNotificationNotFound
	}
	return nil
}

// Clear removes every notification
func (svc *NotificationService) Clear(ctx context.Context) (int64, error) {
	return svc.Repo.DeleteAll(ctx)
}

// CountByFlight returns per-flight notification tallies
func (svc *NotificationService) CountByFlight(ctx context.Context) ([]repositories.FlightNotificationCount, error) {
	counts, err := svc.Stats.CountByFlight(ctx)
	if err != nil {
		return nil, fmt.Errorf("count by flight: %w", err)
	}
	if counts == nil {
		counts = []repositories.FlightNotificationCount{}
	}
	return counts, nil
}
