package workers

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"flightwatch/internal/common"
	"flightwatch/internal/models/entities"
)

// memoryQueue keeps entries pending until acked, like a stream consumer group
type memoryQueue struct {
	mu      sync.Mutex
	fresh   []string
	entries map[string]entities.Notification
	tries   map[string]int64
	acked   []string
}

func newMemoryQueue(notes ...entities.Notification) *memoryQueue {
	q := &memoryQueue{entries: map[string]entities.Notification{}, tries: map[string]int64{}}
	for _, n := range notes {
		id := "msg-" + n.ID
		q.fresh = append(q.fresh, id)
		q.entries[id] = n
	}
	return q
}

func (q *memoryQueue) CreateConsumerGroup(ctx context.Context, streamName, groupName string) error {
	return nil
}

func (q *memoryQueue) DequeueNotification(ctx context.Context, streamName, groupName, consumerName string, blockTime time.Duration) (*entities.Notification, string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.fresh) == 0 {
		return nil, "", nil
	}
	id := q.fresh[0]
	q.fresh = q.fresh[1:]
	q.tries[id]++
	n := q.entries[id]
	return &n, id, nil
}

func (q *memoryQueue) ClaimStaleNotifications(ctx context.Context, streamName, groupName, consumerName string, minIdle time.Duration) ([]common.ClaimedNotification, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	var out []common.ClaimedNotification
	for id, n := range q.entries {
		if q.tries[id] == 0 {
			continue
		}
		out = append(out, common.ClaimedNotification{MessageID: id, Deliveries: q.tries[id], Notification: &n})
		q.tries[id]++
	}
	return out, nil
}

func (q *memoryQueue) Ack(ctx context.Context, streamName, groupName, messageID string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	delete(q.entries, messageID)
	q.acked = append(q.acked, messageID)
	return nil
}

func (q *memoryQueue) TrimStream(ctx context.Context, streamName string, maxLen int64) error {
	return nil
}

func (q *memoryQueue) pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

// flakyPresenter fails the first failures deliveries
type flakyPresenter struct {
	failures  int
	delivered []string
}

func (p *flakyPresenter) Deliver(ctx context.Context, n entities.Notification) error {
	if p.failures > 0 {
		p.failures--
		return errors.New("presenter unavailable")
	}
	p.delivered = append(p.delivered, n.ID)
	return nil
}

func TestNotificationQueueWorker_DeliversAndAcks(t *testing.T) {
	q := newMemoryQueue(entities.Notification{ID: "n1", Title: "Flight UA123 Update"})
	p := &flakyPresenter{}
	w := NewNotificationQueueWorker("test", q, p)

	w.processOne(context.Background())

	if len(p.delivered) != 1 || p.delivered[0] != "n1" {
		t.Fatalf("Expected n1 delivered, got %v", p.delivered)
	}
	if q.pending() != 0 {
		t.Errorf("Expected entry acked, %d still pending", q.pending())
	}
}

func TestNotificationQueueWorker_FailedDeliveryIsReclaimed(t *testing.T) {
	q := newMemoryQueue(entities.Notification{ID: "n1"})
	p := &flakyPresenter{failures: 1}
	w := NewNotificationQueueWorker("test", q, p)
	ctx := context.Background()

	w.processOne(ctx)
	if q.pending() != 1 {
		t.Fatalf("Expected failed entry to stay pending, got %d", q.pending())
	}

	w.claimStale(ctx)
	if len(p.delivered) != 1 {
		t.Fatalf("Expected reclaimed entry delivered, got %v", p.delivered)
	}
	if q.pending() != 0 {
		t.Errorf("Expected reclaimed entry acked, %d still pending", q.pending())
	}
}

func TestNotificationQueueWorker_DropsAfterMaxAttempts(t *testing.T) {
	q := newMemoryQueue(entities.Notification{ID: "n1"})
	p := &flakyPresenter{failures: 100}
	w := NewNotificationQueueWorker("test", q, p)
	ctx := context.Background()

	w.processOne(ctx)
	for i := 0; i < notificationMaxAttempts; i++ {
		w.claimStale(ctx)
	}

	if q.pending() != 0 {
		t.Fatalf("Expected entry dropped after %d attempts, %d still pending", notificationMaxAttempts, q.pending())
	}
	if len(p.delivered) != 0 {
		t.Errorf("Expected no successful delivery, got %v", p.delivered)
	}
}
