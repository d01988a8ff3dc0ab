package workers

import (
	"context"
	"time"

	"flightwatch/internal/common"
	"flightwatch/internal/logging"
	"flightwatch/internal/models/entities"
	"flightwatch/internal/services"
)

const (
	notificationGroup     = "notification_delivery"
	notificationBlockTime = 5 * time.Second
	notificationStreamMax = 10000

	notificationClaimInterval = time.Minute
	notificationClaimIdle     = 5 * time.Minute
	notificationMaxAttempts   = 5
)

// notificationQueue is the part of the Redis stream queue the worker drives
type notificationQueue interface {
	CreateConsumerGroup(ctx context.Context, streamName, groupName string) error
	DequeueNotification(ctx context.Context, streamName, groupName, consumerName string, blockTime time.Duration) (*entities.Notification, string, error)
	ClaimStaleNotifications(ctx context.Context, streamName, groupName, consumerName string, minIdle time.Duration) ([]common.ClaimedNotification, error)
	Ack(ctx context.Context, streamName, groupName, messageID string) error
	TrimStream(ctx context.Context, streamName string, maxLen int64) error
}

// NotificationQueueWorker drains the Redis notification stream and presents
// each entry through the configured notifier. Entries whose presentation
// fails stay pending and are reclaimed later, up to notificationMaxAttempts.
type NotificationQueueWorker struct {
	workerID  string
	queue     notificationQueue
	presenter services.Notifier
	stream    string
}

func NewNotificationQueueWorker(workerID string, queue notificationQueue, presenter services.Notifier) *NotificationQueueWorker {
	return &NotificationQueueWorker{
		workerID:  workerID,
		queue:     queue,
		presenter: presenter,
		stream:    common.NotificationStream,
	}
}

// Start consumes until ctx is cancelled
func (w *NotificationQueueWorker) Start(ctx context.Context) {
	if err := w.queue.CreateConsumerGroup(ctx, w.stream, notificationGroup); err != nil {
		logging.Error("Failed to create notification consumer group", "stream", w.stream, "error", err.Error())
		return
	}
	logging.Info("Notification queue worker started", "worker_id", w.workerID, "stream", w.stream)

	go w.claimLoop(ctx)

	for {
		if ctx.Err() != nil {
			logging.Info("Notification queue worker shutting down", "worker_id", w.workerID)
			return
		}
		w.processOne(ctx)
	}
}

func (w *NotificationQueueWorker) processOne(ctx context.Context) {
	note, msgID, err := w.queue.DequeueNotification(ctx, w.stream, notificationGroup, w.workerID, notificationBlockTime)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		logging.Warn("Notification dequeue failed", "error", err.Error())
		if msgID != "" {
			// poison message; ack so it is not redelivered forever
			w.ack(ctx, msgID)
		}
		time.Sleep(time.Second)
		return
	}
	if note == nil {
		return
	}

	w.deliver(ctx, *note, msgID)
}

func (w *NotificationQueueWorker) claimLoop(ctx context.Context) {
	ticker := time.NewTicker(notificationClaimInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.claimStale(ctx)
		}
	}
}

// claimStale retries entries left pending by failed or dead consumers
func (w *NotificationQueueWorker) claimStale(ctx context.Context) {
	claimed, err := w.queue.ClaimStaleNotifications(ctx, w.stream, notificationGroup, w.workerID, notificationClaimIdle)
	if err != nil {
		logging.Warn("Claiming stale notifications failed", "error", err.Error())
		return
	}

	for _, c := range claimed {
		switch {
		case c.Notification == nil:
			logging.Warn("Dropping undecodable notification", "message_id", c.MessageID)
			w.ack(ctx, c.MessageID)
		case c.Deliveries >= notificationMaxAttempts:
			logging.Error("Dropping notification after repeated failures",
				"notification_id", c.Notification.ID, "attempts", c.Deliveries)
			w.ack(ctx, c.MessageID)
		default:
			w.deliver(ctx, *c.Notification, c.MessageID)
		}
	}
}

// deliver presents one entry and acks it on success. A failed entry is
// left pending for claimStale.
func (w *NotificationQueueWorker) deliver(ctx context.Context, note entities.Notification, msgID string) {
	if err := w.presenter.Deliver(ctx, note); err != nil {
		logging.Warn("Notification presentation failed", "notification_id", note.ID, "error", err.Error())
		return
	}

	w.ack(ctx, msgID)
	if err := w.queue.TrimStream(ctx, w.stream, notificationStreamMax); err != nil {
		logging.Debug("Notification stream trim failed", "error", err.Error())
	}
}

func (w *NotificationQueueWorker) ack(ctx context.Context, msgID string) {
	if err := w.queue.Ack(ctx, w.stream, notificationGroup, msgID); err != nil {
		logging.Warn("Notification ack failed", "message_id", msgID, "error", err.Error())
	}
}
