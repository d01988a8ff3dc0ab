package common

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"flightwatch/internal/models/entities"
)

// NotificationStream is the Redis stream carrying notifications awaiting delivery
const NotificationStream = "flightwatch:notifications"

// RedisQueueService provides queue functionality using Redis Streams
type RedisQueueService struct {
	client *redis.Client
}

// NewRedisQueueService creates a new Redis queue service
func NewRedisQueueService(client *redis.Client) *RedisQueueService {
	return &RedisQueueService{
		client: client,
	}
}

// EnqueueNotification adds a notification to the delivery stream
func (s *RedisQueueService) EnqueueNotification(ctx context.Context, streamName string, n entities.Notification) error {
	data, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	// XADD stream_name * data <json>
	args := &redis.XAddArgs{
		Stream: streamName,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}

	if _, err := s.client.XAdd(ctx, args).Result(); err != nil {
		return fmt.Errorf("failed to add to stream: %w", err)
	}
	return nil
}

// DequeueNotification reads one notification through a consumer group.
// It returns a nil notification when the block time elapses.
func (s *RedisQueueService) DequeueNotification(ctx context.Context, streamName, groupName, consumerName string, blockTime time.Duration) (*entities.Notification, string, error) {
	// XREADGROUP GROUP group consumer BLOCK milliseconds COUNT 1 STREAMS stream >
	args := &redis.XReadGroupArgs{
		Group:    groupName,
		Consumer: consumerName,
		Streams:  []string{streamName, ">"},
		Count:    1,
		Block:    blockTime,
	}

	streams, err := s.client.XReadGroup(ctx, args).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, "", nil
		}
		return nil, "", fmt.Errorf("failed to read from stream: %w", err)
	}

	if len(streams) == 0 || len(streams[0].Messages) == 0 {
		return nil, "", nil
	}

	msg := streams[0].Messages[0]
	dataStr, ok := msg.Values["data"].(string)
	if !ok {
		return nil, msg.ID, fmt.Errorf("invalid message format: data field missing")
	}

	var n entities.Notification
	if err := json.Unmarshal([]byte(dataStr), &n); err != nil {
		return nil, msg.ID, fmt.Errorf("failed to unmarshal notification: %w", err)
	}

	return &n, msg.ID, nil
}

// Ack acknowledges successful processing of a message
func (s *RedisQueueService) Ack(ctx context.Context, streamName, groupName, messageID string) error {
	return s.client.XAck(ctx, streamName, groupName, messageID).Err()
}

// CreateConsumerGroup creates a consumer group for the stream if it doesn't exist
func (s *RedisQueueService) CreateConsumerGroup(ctx context.Context, streamName, groupName string) error {
	// XGROUP CREATE stream group 0 MKSTREAM
	err := s.client.XGroupCreateMkStream(ctx, streamName, groupName, "0").Err()
	if err != nil && strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return nil
	}
	return err
}

// ClaimedNotification is a pending entry taken over from an idle consumer.
// Deliveries counts the attempts made before this claim.
type ClaimedNotification struct {
	MessageID    string
	Deliveries   int64
	Notification *entities.Notification
}

// ClaimStaleNotifications claims entries that have sat unacknowledged for at
// least minIdle. Entries whose payload cannot be decoded come back with a nil
// Notification so the caller can ack them.
func (s *RedisQueueService) ClaimStaleNotifications(ctx context.Context, streamName, groupName, consumerName string, minIdle time.Duration) ([]ClaimedNotification, error) {
	pending, err := s.client.XPendingExt(ctx, &redis.XPendingExtArgs{
		Stream: streamName,
		Group:  groupName,
		Idle:   minIdle,
		Start:  "-",
		End:    "+",
		Count:  100,
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get pending messages: %w", err)
	}
	if len(pending) == 0 {
		return nil, nil
	}

	deliveries := make(map[string]int64, len(pending))
	ids := make([]string, 0, len(pending))
	for _, p := range pending {
		deliveries[p.ID] = p.RetryCount
		ids = append(ids, p.ID)
	}

	messages, err := s.client.XClaim(ctx, &redis.XClaimArgs{
		Stream:   streamName,
		Group:    groupName,
		Consumer: consumerName,
		MinIdle:  minIdle,
		Messages: ids,
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to claim stale messages: %w", err)
	}

	out := make([]ClaimedNotification, 0, len(messages))
	for _, msg := range messages {
		claimed := ClaimedNotification{MessageID: msg.ID, Deliveries: deliveries[msg.ID]}
		if dataStr, ok := msg.Values["data"].(string); ok {
			var n entities.Notification
			if err := json.Unmarshal([]byte(dataStr), &n); err == nil {
				claimed.Notification = &n
			}
		}
		out = append(out, claimed)
	}
	return out, nil
}

// TrimStream keeps only the most recent maxLen messages
func (s *RedisQueueService) TrimStream(ctx context.Context, streamName string, maxLen int64) error {
	return s.client.XTrimMaxLen(ctx, streamName, maxLen).Err()
}
