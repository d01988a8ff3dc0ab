// Package tracking keeps the live telemetry of tracked flights fresh.
package tracking

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"flightwatch/internal/logging"
	"flightwatch/internal/metrics"
	"flightwatch/internal/models/entities"
	"flightwatch/internal/providers"
)

var (
	ErrInvalidFlightID = providers.NewValidationError("flight id cannot be empty")
	ErrInvalidInterval = providers.NewValidationError("poll interval must be positive")
)

// UpdateFunc receives each successfully fetched telemetry sample. It must not
// call Stop on the poller that invoked it.
type UpdateFunc func(entities.Telemetry)

// ticker is the subset of *time.Ticker the poll loop needs.
type ticker interface {
	Chan() <-chan time.Time
	Stop()
}

type timeTicker struct{ *time.Ticker }

func (t timeTicker) Chan() <-chan time.Time { return t.C }

func newTimeTicker(d time.Duration) ticker {
	return timeTicker{time.NewTicker(d)}
}

// TaskHandle owns one running poll loop. Cancel is idempotent and returns
// only after the loop has exited.
type TaskHandle struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// Cancel stops the loop and waits for it to exit.
func (h *TaskHandle) Cancel() {
	if h == nil {
		return
	}
	h.once.Do(h.cancel)
	<-h.done
}

// Done is closed once the loop has exited.
func (h *TaskHandle) Done() <-chan struct{} {
	return h.done
}

// PositionPoller runs at most one recurring position fetch at a time.
// Ticks are serialized: each fetch completes before the next tick is read,
// so updates are applied in the order their ticks fired.
type PositionPoller struct {
	fetcher providers.PositionFetcher
	metrics *metrics.MetricsRegistry
	log     *zap.SugaredLogger

	newTicker func(time.Duration) ticker
	// onTick is a test hook, called after every tick is handled.
	onTick func(fetched bool)
	// beforeFetch runs on the loop goroutine right before each fetch.
	beforeFetch func()

	active atomic.Bool

	mu     sync.Mutex
	handle *TaskHandle
}

// NewPositionPoller creates a poller. It starts in the active state.
func NewPositionPoller(fetcher providers.PositionFetcher, m *metrics.MetricsRegistry, log *zap.SugaredLogger) *PositionPoller {
	if log == nil {
		log = logging.GetLogger()
	}
	p := &PositionPoller{
		fetcher:   fetcher,
		metrics:   m,
		log:       log,
		newTicker: newTimeTicker,
	}
	p.active.Store(true)
	return p
}

// Start begins polling flightID every interval, replacing any loop already
// running on this poller. Fetch failures are logged and skipped.
func (p *PositionPoller) Start(flightID string, interval time.Duration, onUpdate UpdateFunc) (*TaskHandle, error) {
	flightID = strings.TrimSpace(flightID)
	if flightID == "" {
		return nil, ErrInvalidFlightID
	}
	if interval <= 0 {
		return nil, ErrInvalidInterval
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.handle != nil {
		p.handle.Cancel()
		p.handle = nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	h := &TaskHandle{cancel: cancel, done: make(chan struct{})}
	t := p.newTicker(interval)

	go p.loop(ctx, t, h.done, flightID, onUpdate)

	p.handle = h
	return h, nil
}

// Pause keeps the schedule but skips fetching on each tick.
func (p *PositionPoller) Pause() {
	p.active.Store(false)
}

// Resume re-enables fetching from the next tick on.
func (p *PositionPoller) Resume() {
	p.active.Store(true)
}

// Active reports whether ticks currently fetch.
func (p *PositionPoller) Active() bool {
	return p.active.Load()
}

// Running reports whether a loop is currently owned by the poller.
func (p *PositionPoller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.handle != nil
}

// Stop cancels the loop. Safe to call any number of times; no update is
// delivered after it returns.
func (p *PositionPoller) Stop() {
	p.mu.Lock()
	h := p.handle
	p.handle = nil
	p.mu.Unlock()

	h.Cancel()
}

func (p *PositionPoller) loop(ctx context.Context, t ticker, done chan<- struct{}, flightID string, onUpdate UpdateFunc) {
	defer close(done)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.Chan():
			fetched := p.tick(ctx, flightID, onUpdate)
			if p.onTick != nil {
				p.onTick(fetched)
			}
		}
	}
}

// tick performs one poll. It reports whether an update was delivered.
func (p *PositionPoller) tick(ctx context.Context, flightID string, onUpdate UpdateFunc) bool {
	if !p.active.Load() {
		p.metrics.ObservePoll(metrics.PollResultPaused)
		return false
	}

	if p.beforeFetch != nil {
		p.beforeFetch()
	}
	tel, err := p.fetcher.FetchFlightPosition(ctx, flightID)
	if ctx.Err() != nil {
		// stopped mid-fetch; drop the result
		return false
	}
	if err != nil {
		p.metrics.ObservePoll(metrics.PollResultFailed)
		p.log.Warnw("Position update failed", "flight_id", flightID, "error", err.Error())
		return false
	}
	if tel == nil {
		return false
	}

	p.metrics.ObservePoll(metrics.PollResultUpdated)
	if onUpdate != nil {
		onUpdate(*tel)
	}
	return true
}
