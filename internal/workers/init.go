package workers

import (
	"context"
	"sync"

	"flightwatch/internal/common"
	"flightwatch/internal/config"
	"flightwatch/internal/db/repositories"
	"flightwatch/internal/services"
)

type WorkersContainer struct {
	Reaper        *SessionReaper
	AirportWarmer *AirportCacheWarmer
	Notifications *NotificationQueueWorker

	wg sync.WaitGroup
}

// InitWorkers starts the background workers. queue may be nil when no
// Redis is configured; notifications are then presented inline.
func InitWorkers(
	ctx context.Context,
	cfg *config.Config,
	tracking *services.TrackingService,
	flights *services.FlightsService,
	airports *repositories.AirportRepository,
	queue *common.RedisQueueService,
	presenter services.Notifier,
) *WorkersContainer {
	c := &WorkersContainer{
		Reaper:        NewSessionReaper(tracking, cfg.SessionIdleTTL),
		AirportWarmer: NewAirportCacheWarmer(flights, airports),
	}

	c.spawn(func() { c.Reaper.Start(ctx, cfg.ReaperInterval) })
	c.spawn(func() { c.AirportWarmer.Start(ctx, cfg.WarmInterval) })

	if queue != nil {
		c.Notifications = NewNotificationQueueWorker("notifier-1", queue, presenter)
		c.spawn(func() { c.Notifications.Start(ctx) })
	}

	return c
}

func (c *WorkersContainer) spawn(fn func()) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		fn()
	}()
}

// Wait blocks until every worker has returned
func (c *WorkersContainer) Wait() {
	c.wg.Wait()
}
