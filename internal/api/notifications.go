package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"flightwatch/internal/common"
	"flightwatch/internal/constants"
	"flightwatch/internal/models/dtos"
	"flightwatch/internal/services"
)

// NotifyMeHandler godoc
// @Summary      Subscribe to flight updates
// @Tags         Notifications
// @Accept       json
// @Produce      json
// @Param        body  body     dtos.NotifyMeRequest  true  "Flight to follow"
// @Success      201   {object} dtos.APIResponse
// @Failure      400   {object} dtos.APIResponse
// @Router       /api/v1/notifications [post]
func NotifyMeHandler(notifSvc *services.NotificationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.NotifyMeRequest
		if err := decodeBody(r, &req); err != nil {
			respondWithError(w, initTime, err)
			return
		}

		note, err := notifSvc.NotifyFlight(r.Context(), req.FlightNumber)
		if err != nil {
			respondWithError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, constants.MsgNotificationSet, note, http.StatusCreated)
	}
}

// ListNotificationsHandler handles GET /api/v1/notifications
func ListNotificationsHandler(notifSvc *services.NotificationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		list, err := notifSvc.List(r.Context())
		if err != nil {
			respondWithError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, constants.MsgNotificationsListed, list)
	}
}

// NotificationStatsHandler handles GET /api/v1/notifications/stats
func NotificationStatsHandler(notifSvc *services.NotificationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		counts, err := notifSvc.CountByFlight(r.Context())
		if err != nil {
			respondWithError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, constants.MsgNotificationStats, counts)
	}
}

// MarkNotificationReadHandler handles POST /api/v1/notifications/{id}/read
func MarkNotificationReadHandler(notifSvc *services.NotificationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		if err := notifSvc.MarkRead(r.Context(), chi.URLParam(r, "id")); err != nil {
			respondWithError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Notification marked as read", nil)
	}
}

// ClearNotificationsHandler handles DELETE /api/v1/notifications
func ClearNotificationsHandler(notifSvc *services.NotificationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		removed, err := notifSvc.Clear(r.Context())
		if err != nil {
			respondWithError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Notifications cleared", map[string]int64{"removed": removed})
	}
}
