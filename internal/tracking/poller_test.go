package tracking

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flightwatch/internal/models/entities"
	"flightwatch/internal/providers"
)

type fakeTicker struct {
	ch      chan time.Time
	stopped atomic.Bool
}

func newFakeTicker() *fakeTicker {
	return &fakeTicker{ch: make(chan time.Time, 1)}
}

func (f *fakeTicker) Chan() <-chan time.Time { return f.ch }
func (f *fakeTicker) Stop()                  { f.stopped.Store(true) }

type fakeFetcher struct {
	mu    sync.Mutex
	calls int
	next  func(call int) (*entities.Telemetry, error)
}

func (f *fakeFetcher) FetchFlightPosition(ctx context.Context, flightID string) (*entities.Telemetry, error) {
	f.mu.Lock()
	f.calls++
	n := f.calls
	f.mu.Unlock()

	if f.next != nil {
		return f.next(n)
	}
	return &entities.Telemetry{Altitude: entities.Some(float64(n * 1000))}, nil
}

func (f *fakeFetcher) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// pollerHarness drives a poller with fake tickers and waits for each tick.
type pollerHarness struct {
	poller  *PositionPoller
	fetcher *fakeFetcher
	tickers []*fakeTicker
	ticks   chan bool
	mu      sync.Mutex
}

func newHarness(fetcher *fakeFetcher) *pollerHarness {
	h := &pollerHarness{fetcher: fetcher, ticks: make(chan bool, 16)}
	h.poller = NewPositionPoller(fetcher, nil, nil)
	h.poller.newTicker = func(time.Duration) ticker {
		t := newFakeTicker()
		h.mu.Lock()
		h.tickers = append(h.tickers, t)
		h.mu.Unlock()
		return t
	}
	h.poller.onTick = func(fetched bool) { h.ticks <- fetched }
	return h
}

func (h *pollerHarness) ticker(i int) *fakeTicker {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.tickers[i]
}

// fire sends one tick on ticker i and returns whether it fetched.
func (h *pollerHarness) fire(t *testing.T, i int) bool {
	t.Helper()
	h.ticker(i).ch <- time.Now()
	select {
	case fetched := <-h.ticks:
		return fetched
	case <-time.After(2 * time.Second):
		t.Fatal("tick was not handled")
		return false
	}
}

func TestPositionPoller_StartValidatesInput(t *testing.T) {
	h := newHarness(&fakeFetcher{})

	_, err := h.poller.Start("  ", time.Second, nil)
	assert.ErrorIs(t, err, ErrInvalidFlightID)
	assert.True(t, providers.IsValidation(err))

	_, err = h.poller.Start("UA123", 0, nil)
	assert.ErrorIs(t, err, ErrInvalidInterval)
	assert.True(t, providers.IsValidation(err))

	assert.False(t, h.poller.Running())
}

func TestPositionPoller_DoubleStartKeepsOneTask(t *testing.T) {
	h := newHarness(&fakeFetcher{})

	var updates atomic.Int32
	onUpdate := func(entities.Telemetry) { updates.Add(1) }

	first, err := h.poller.Start("UA123", time.Second, onUpdate)
	require.NoError(t, err)
	second, err := h.poller.Start("UA123", time.Second, onUpdate)
	require.NoError(t, err)
	defer h.poller.Stop()

	select {
	case <-first.Done():
	default:
		t.Fatal("first task still running after restart")
	}
	assert.True(t, h.ticker(0).stopped.Load())

	assert.True(t, h.fire(t, 1))
	assert.Equal(t, int32(1), updates.Load())
	assert.Equal(t, 1, h.fetcher.Calls())

	select {
	case <-second.Done():
		t.Fatal("second task should still be running")
	default:
	}
}

func TestPositionPoller_StopPreventsFurtherUpdates(t *testing.T) {
	h := newHarness(&fakeFetcher{})

	var updates atomic.Int32
	handle, err := h.poller.Start("UA123", time.Second, func(entities.Telemetry) { updates.Add(1) })
	require.NoError(t, err)

	assert.True(t, h.fire(t, 0))

	h.poller.Stop()
	h.poller.Stop()
	handle.Cancel()

	<-handle.Done()
	assert.False(t, h.poller.Running())
	assert.True(t, h.ticker(0).stopped.Load())

	// a tick arriving after Stop is never read
	h.ticker(0).ch <- time.Now()
	select {
	case <-h.ticks:
		t.Fatal("tick handled after stop")
	case <-time.After(50 * time.Millisecond):
	}
	assert.Equal(t, int32(1), updates.Load())
}

func TestPositionPoller_PauseSkipsFetchAndKeepsSchedule(t *testing.T) {
	h := newHarness(&fakeFetcher{})

	var updates atomic.Int32
	_, err := h.poller.Start("UA123", time.Second, func(entities.Telemetry) { updates.Add(1) })
	require.NoError(t, err)
	defer h.poller.Stop()

	h.poller.Pause()
	assert.False(t, h.poller.Active())
	assert.False(t, h.fire(t, 0))
	assert.False(t, h.fire(t, 0))
	assert.Equal(t, 0, h.fetcher.Calls())
	assert.True(t, h.poller.Running())

	h.poller.Resume()
	assert.True(t, h.fire(t, 0))
	assert.Equal(t, 1, h.fetcher.Calls())
	assert.Equal(t, int32(1), updates.Load())
}

func TestPositionPoller_FetchFailureKeepsPolling(t *testing.T) {
	fetcher := &fakeFetcher{next: func(call int) (*entities.Telemetry, error) {
		if call == 1 {
			return nil, providers.NewNetworkError(errors.New("connection reset"), "position fetch failed")
		}
		return &entities.Telemetry{Speed: entities.Some(450.0)}, nil
	}}
	h := newHarness(fetcher)

	var got []entities.Telemetry
	var mu sync.Mutex
	_, err := h.poller.Start("UA123", time.Second, func(tel entities.Telemetry) {
		mu.Lock()
		got = append(got, tel)
		mu.Unlock()
	})
	require.NoError(t, err)
	defer h.poller.Stop()

	assert.False(t, h.fire(t, 0))
	assert.True(t, h.poller.Running())
	assert.True(t, h.poller.Active())

	assert.True(t, h.fire(t, 0))
	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 1)
	assert.Equal(t, 450.0, got[0].Speed.Value)
}

func TestPositionPoller_UpdatesArriveInTickOrder(t *testing.T) {
	h := newHarness(&fakeFetcher{})

	var altitudes []float64
	_, err := h.poller.Start("UA123", time.Second, func(tel entities.Telemetry) {
		altitudes = append(altitudes, tel.Altitude.Value)
	})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.True(t, h.fire(t, 0))
	}
	h.poller.Stop()

	assert.Equal(t, []float64{1000, 2000, 3000}, altitudes)
}

func TestPositionPoller_RealTicker(t *testing.T) {
	fetcher := &fakeFetcher{}
	p := NewPositionPoller(fetcher, nil, nil)

	updates := make(chan entities.Telemetry, 4)
	_, err := p.Start("UA123", 5*time.Millisecond, func(tel entities.Telemetry) {
		select {
		case updates <- tel:
		default:
		}
	})
	require.NoError(t, err)

	select {
	case <-updates:
	case <-time.After(2 * time.Second):
		t.Fatal("no update from real ticker")
	}
	p.Stop()
	assert.False(t, p.Running())
}
