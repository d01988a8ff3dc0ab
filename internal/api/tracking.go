package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"flightwatch/internal/common"
	"flightwatch/internal/constants"
	"flightwatch/internal/models/dtos"
	"flightwatch/internal/services"
)

// StartTrackingHandler godoc
// @Summary      Open a tracking session
// @Description  Loads the flight and starts position polling when it is ACTIVE.
// @Tags         Tracking
// @Accept       json
// @Produce      json
// @Param        body         body     dtos.TrackFlightRequest  true  "Flight to track"
// @Success      201          {object} dtos.APIResponse
// @Failure      400,404,502  {object} dtos.APIResponse
// @Router       /api/v1/tracking [post]
func StartTrackingHandler(trackSvc *services.TrackingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.TrackFlightRequest
		if err := decodeBody(r, &req); err != nil {
			respondWithError(w, initTime, err)
			return
		}

		resp, err := trackSvc.StartSession(r.Context(), req.FlightNumber)
		if err != nil {
			respondWithError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, constants.MsgSessionStarted, resp, http.StatusCreated)
	}
}

type sessionAction func(ctx context.Context, id string) (*dtos.TrackingSessionResponse, error)

// sessionHandler adapts a per-session service call to an HTTP handler
func sessionHandler(action sessionAction, message string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		resp, err := action(r.Context(), chi.URLParam(r, "session_id"))
		if err != nil {
			respondWithError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, message, resp)
	}
}

// GetTrackingHandler handles GET /api/v1/tracking/{session_id}
func GetTrackingHandler(trackSvc *services.TrackingService) http.HandlerFunc {
	return sessionHandler(trackSvc.GetSession, "Tracking session fetched")
}

// PauseTrackingHandler handles POST /api/v1/tracking/{session_id}/pause
func PauseTrackingHandler(trackSvc *services.TrackingService) http.HandlerFunc {
	return sessionHandler(trackSvc.Pause, "Tracking paused")
}

// ResumeTrackingHandler handles POST /api/v1/tracking/{session_id}/resume
func ResumeTrackingHandler(trackSvc *services.TrackingService) http.HandlerFunc {
	return sessionHandler(trackSvc.Resume, "Tracking resumed")
}

// RefreshTrackingHandler handles POST /api/v1/tracking/{session_id}/refresh
func RefreshTrackingHandler(trackSvc *services.TrackingService) http.HandlerFunc {
	return sessionHandler(trackSvc.Refresh, "Flight refreshed")
}

// StopTrackingHandler handles DELETE /api/v1/tracking/{session_id}
func StopTrackingHandler(trackSvc *services.TrackingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		if err := trackSvc.Stop(chi.URLParam(r, "session_id")); err != nil {
			respondWithError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, constants.MsgSessionStopped, nil)
	}
}
