package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"flightwatch/internal/common"
	"flightwatch/internal/constants"
	"flightwatch/internal/services"
)

// FlightDetailsHandler godoc
// @Summary      Flight details
// @Description  Returns a flight with its airports, connections and derived view.
// @Tags         Flights
// @Produce      json
// @Param        flight_number  path     string  true  "Flight number"
// @Success      200            {object} dtos.APIResponse
// @Failure      400,404,502    {object} dtos.APIResponse
// @Router       /api/v1/flights/{flight_number} [get]
func FlightDetailsHandler(fltSvc *services.FlightsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		details, err := fltSvc.LoadFlightDetails(r.Context(), chi.URLParam(r, "flight_number"))
		if err != nil {
			respondWithError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, constants.MsgFlightLoaded, details)
	}
}

// ConnectingFlightsHandler godoc
// @Summary      Connecting flights
// @Tags         Flights
// @Produce      json
// @Param        flight_number  path     string  true  "Flight number"
// @Success      200            {object} dtos.APIResponse
// @Failure      400,404,502    {object} dtos.APIResponse
// @Router       /api/v1/flights/{flight_number}/connections [get]
func ConnectingFlightsHandler(fltSvc *services.FlightsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		flights, err := fltSvc.GetConnections(r.Context(), chi.URLParam(r, "flight_number"))
		if err != nil {
			respondWithError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, constants.MsgConnectionsLoaded, flights)
	}
}

// AirportHandler godoc
// @Summary      Airport lookup
// @Tags         Airports
// @Produce      json
// @Param        code         path     string  true  "Airport code"
// @Success      200          {object} dtos.APIResponse
// @Failure      400,404,502  {object} dtos.APIResponse
// @Router       /api/v1/airports/{code} [get]
func AirportHandler(fltSvc *services.FlightsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		airport, err := fltSvc.GetAirport(r.Context(), chi.URLParam(r, "code"))
		if err != nil {
			respondWithError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, constants.MsgAirportLoaded, airport)
	}
}

// AirportFlightsHandler godoc
// @Summary      Airport board
// @Description  Flights departing from or arriving at an airport, framed on the airport.
// @Tags         Airports
// @Produce      json
// @Param        code         path     string  true  "Airport code"
// @Success      200          {object} dtos.APIResponse
// @Failure      400,404,502  {object} dtos.APIResponse
// @Router       /api/v1/airports/{code}/flights [get]
func AirportFlightsHandler(fltSvc *services.FlightsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		board, err := fltSvc.LoadAirportBoard(r.Context(), chi.URLParam(r, "code"))
		if err != nil {
			respondWithError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, constants.MsgAirportLoaded, board)
	}
}
