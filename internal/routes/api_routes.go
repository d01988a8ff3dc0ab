package routes

import (
	"github.com/go-chi/chi/v5"

	"flightwatch/internal/api"
	"flightwatch/internal/middleware"
)

// RegisterAPIRoutes registers all API v1 routes and handlers
func RegisterAPIRoutes(r chi.Router, deps *api.Dependencies, limiter *middleware.RateLimiter) {
	svc := deps.Services

	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(limiter.Middleware)

		v1.Get("/search", api.SearchHandler(svc.Search))
		v1.Get("/search/recent", api.RecentSearchesHandler(svc.Search))

		v1.Route("/flights/{flight_number}", func(f chi.Router) {
			f.Get("/", api.FlightDetailsHandler(svc.Flights))
			f.Get("/connections", api.ConnectingFlightsHandler(svc.Flights))
		})

		v1.Route("/airports/{code}", func(a chi.Router) {
			a.Get("/", api.AirportHandler(svc.Flights))
			a.Get("/flights", api.AirportFlightsHandler(svc.Flights))
		})

		v1.Route("/tracking", func(t chi.Router) {
			t.Post("/", api.StartTrackingHandler(svc.Tracking))
			t.Route("/{session_id}", func(s chi.Router) {
				s.Get("/", api.GetTrackingHandler(svc.Tracking))
				s.Delete("/", api.StopTrackingHandler(svc.Tracking))
				s.Post("/pause", api.PauseTrackingHandler(svc.Tracking))
				s.Post("/resume", api.ResumeTrackingHandler(svc.Tracking))
				s.Post("/refresh", api.RefreshTrackingHandler(svc.Tracking))
				s.Get("/stream", api.TrackingStreamHandler(svc.Tracking))
			})
		})

		v1.Route("/notifications", func(n chi.Router) {
			n.Post("/", api.NotifyMeHandler(svc.Notifications))
			n.Get("/", api.ListNotificationsHandler(svc.Notifications))
			n.Delete("/", api.ClearNotificationsHandler(svc.Notifications))
			n.Get("/stats", api.NotificationStatsHandler(svc.Notifications))
			n.Post("/{id}/read", api.MarkNotificationReadHandler(svc.Notifications))
		})
	})
}
