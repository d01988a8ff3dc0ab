package tracking

import (
	"errors"
	"sync"
	"time"

	"github.com/mohae/deepcopy"
	"go.uber.org/zap"

	"flightwatch/internal/logging"
	"flightwatch/internal/metrics"
	"flightwatch/internal/models/entities"
	"flightwatch/internal/providers"
)

var (
	ErrFlightNotActive = errors.New("flight is not active")
	ErrSessionNotFound = errors.New("tracking session not found")
)

// subscriberBuffer bounds how far a slow stream reader may lag before
// snapshots are dropped for it.
const subscriberBuffer = 8

// Session tracks one displayed flight. It owns a poller and at most one
// running poll task.
type Session struct {
	ID           string
	FlightNumber string
	StartedAt    time.Time
	Interval     time.Duration

	poller *PositionPoller
	log    *zap.SugaredLogger
	now    func() time.Time

	// ctl serializes start/stop; it is never held while mu is waited on
	// by the poll loop.
	ctl sync.Mutex

	mu         sync.RWMutex
	flight     *entities.Flight
	lastUpdate time.Time
	lastAccess time.Time
	subs       map[int]chan entities.Flight
	nextSub    int
	closed     bool

	// generation counts reloads; fetchGen is the generation the in-flight
	// poll was requested under.
	generation uint64
	fetchGen   uint64
}

// NewSession wraps flight in a session polling fetcher every interval.
// Polling does not begin until StartPolling is called.
func NewSession(id string, flight *entities.Flight, fetcher providers.PositionFetcher, interval time.Duration, m *metrics.MetricsRegistry) *Session {
	log := logging.WithSession(id, flight.FlightNumber)
	s := &Session{
		ID:           id,
		FlightNumber: flight.FlightNumber,
		Interval:     interval,
		log:          log,
		now:          time.Now,
		flight:       flight,
		subs:         make(map[int]chan entities.Flight),
	}
	s.usePoller(NewPositionPoller(fetcher, m, log))
	s.StartedAt = s.now()
	s.lastAccess = s.StartedAt
	return s
}

func (s *Session) usePoller(p *PositionPoller) {
	p.beforeFetch = s.markFetch
	s.poller = p
}

func (s *Session) markFetch() {
	s.mu.Lock()
	s.fetchGen = s.generation
	s.mu.Unlock()
}

// StartPolling starts the poll task for an ACTIVE flight. Calling it while a
// task is running replaces that task.
func (s *Session) StartPolling() error {
	s.ctl.Lock()
	defer s.ctl.Unlock()
	return s.startLocked()
}

func (s *Session) startLocked() error {
	s.mu.RLock()
	status := s.flight.Status
	closed := s.closed
	s.mu.RUnlock()

	if closed {
		return ErrSessionNotFound
	}
	if status != entities.FlightStatusActive {
		return ErrFlightNotActive
	}

	if _, err := s.poller.Start(s.FlightNumber, s.Interval, s.applyPolled); err != nil {
		return err
	}
	s.log.Infow("Position polling started", "interval", s.Interval.String())
	return nil
}

// StopPolling cancels the poll task, if any.
func (s *Session) StopPolling() {
	s.ctl.Lock()
	defer s.ctl.Unlock()
	s.poller.Stop()
}

// Pause keeps the task scheduled but skips fetches.
func (s *Session) Pause() {
	s.poller.Pause()
	s.log.Infow("Position polling paused")
}

// Resume re-enables fetching and restarts the task when none is running,
// e.g. after a manual stop.
func (s *Session) Resume() error {
	s.ctl.Lock()
	defer s.ctl.Unlock()

	s.poller.Resume()
	if s.poller.Running() {
		return nil
	}
	return s.startLocked()
}

// Polling reports whether a task is running and not paused.
func (s *Session) Polling() bool {
	return s.poller.Running() && s.poller.Active()
}

// Running reports whether a task is scheduled, paused or not.
func (s *Session) Running() bool {
	return s.poller.Running()
}

// ApplyTelemetry merges a telemetry sample into the session's flight and
// fans the new snapshot out to subscribers.
func (s *Session) ApplyTelemetry(update entities.Telemetry) {
	s.merge(update, false)
}

// applyPolled merges a polled sample unless the flight was reloaded after
// the sample was requested.
func (s *Session) applyPolled(update entities.Telemetry) {
	s.merge(update, true)
}

func (s *Session) merge(update entities.Telemetry, polled bool) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	if polled && s.fetchGen != s.generation {
		s.mu.Unlock()
		s.log.Debugw("Dropping sample requested before reload")
		return
	}
	s.flight.ApplyTelemetry(update)
	s.lastUpdate = s.now()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.broadcast(snap)
}

// ReplaceFlight swaps in a freshly loaded flight record. Polling stops when
// the flight is no longer ACTIVE.
func (s *Session) ReplaceFlight(flight *entities.Flight) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.flight = flight
	s.generation++
	s.lastUpdate = s.now()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.broadcast(snap)

	if flight.Status != entities.FlightStatusActive {
		s.StopPolling()
		s.log.Infow("Flight left ACTIVE, polling stopped", "status", string(flight.Status))
	}
}

// Snapshot returns a deep copy of the current flight record.
func (s *Session) Snapshot() entities.Flight {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() entities.Flight {
	return deepcopy.Copy(*s.flight).(entities.Flight)
}

// LastUpdate is the time of the last merged sample or reload.
func (s *Session) LastUpdate() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastUpdate
}

// Touch marks the session as recently used.
func (s *Session) Touch() {
	s.mu.Lock()
	s.lastAccess = s.now()
	s.mu.Unlock()
}

// IdleFor reports how long the session has gone without a Touch.
func (s *Session) IdleFor() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.now().Sub(s.lastAccess)
}

// Subscribe registers a stream reader. The returned cancel func is safe to
// call more than once.
func (s *Session) Subscribe() (<-chan entities.Flight, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan entities.Flight, subscriberBuffer)
	if s.closed {
		close(ch)
		return ch, func() {}
	}

	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if c, ok := s.subs[id]; ok {
				delete(s.subs, id)
				close(c)
			}
		})
	}
}

func (s *Session) broadcast(snap entities.Flight) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, ch := range s.subs {
		select {
		case ch <- snap:
		default:
			s.log.Debugw("Dropping snapshot for slow subscriber")
		}
	}
}

// Close stops polling and disconnects every subscriber.
func (s *Session) Close() {
	s.StopPolling()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
}
