package workers

import (
	"context"
	"time"

	"flightwatch/internal/logging"
	"flightwatch/internal/services"
)

// SessionReaper closes tracking sessions that nobody has read for a while,
// so abandoned clients do not keep polling the provider
type SessionReaper struct {
	tracking *services.TrackingService
	idleTTL  time.Duration
}

func NewSessionReaper(tracking *services.TrackingService, idleTTL time.Duration) *SessionReaper {
	return &SessionReaper{
		tracking: tracking,
		idleTTL:  idleTTL,
	}
}

// Start runs the reaper until ctx is cancelled
func (w *SessionReaper) Start(ctx context.Context, interval time.Duration) {
	logging.Info("Session reaper started", "interval", interval.String(), "idle_ttl", w.idleTTL.String())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logging.Info("Session reaper shutting down")
			return
		case <-ticker.C:
			w.reap()
		}
	}
}

func (w *SessionReaper) reap() []string {
	ids := w.tracking.ReapIdle(w.idleTTL)
	if len(ids) > 0 {
		logging.Info("Idle tracking sessions closed", "count", len(ids), "session_ids", ids)
	}
	return ids
}
