package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"flightwatch/internal/common"
	"flightwatch/internal/constants"
	"flightwatch/internal/logging"
	"flightwatch/internal/providers"
	"flightwatch/internal/tracking"
)

// ErrCodeFlightNotActive is reported when polling is requested for a
// flight that is not airborne
const ErrCodeFlightNotActive = "FLIGHT_NOT_ACTIVE"

// respondWithError maps a service error onto an HTTP status and the
// standard error envelope
func respondWithError(w http.ResponseWriter, initTime time.Time, err error) {
	switch {
	case errors.Is(err, tracking.ErrSessionNotFound):
		common.RespondError(w, initTime, constants.ErrCodeNotFound, constants.MsgSessionNotFound, http.StatusNotFound)
		return
	case errors.Is(err, tracking.ErrFlightNotActive):
		common.RespondError(w, initTime, ErrCodeFlightNotActive, err.Error(), http.StatusConflict)
		return
	}

	code := providers.ErrorCode(err)
	status := http.StatusInternalServerError
	switch code {
	case constants.ErrCodeValidationError:
		status = http.StatusBadRequest
	case constants.ErrCodeNotFound:
		status = http.StatusNotFound
	case constants.ErrCodeRateLimited:
		status = http.StatusTooManyRequests
	case constants.ErrCodeNetworkError, constants.ErrCodeInvalidAPIKey:
		status = http.StatusBadGateway
	default:
		logging.Error("Unhandled service error", "error", err.Error())
		common.RespondError(w, initTime, "", "Internal server error", status)
		return
	}

	message := err.Error()
	if status >= http.StatusInternalServerError || status == http.StatusTooManyRequests {
		// upstream details stay in the log
		logging.Warn("Flight data request failed", "code", code, "error", message)
		message = constants.GetErrorMessage(code)
	}
	common.RespondError(w, initTime, code, message, status)
}

// decodeBody reads a JSON request body into dst
func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, 1<<20))
	if err := dec.Decode(dst); err != nil {
		return providers.NewValidationError("invalid request body: %v", err)
	}
	return nil
}
