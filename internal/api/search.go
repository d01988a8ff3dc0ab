package api

import (
	"net/http"
	"time"

	"flightwatch/internal/common"
	"flightwatch/internal/services"
)

// SearchHandler godoc
// @Summary      Resolve a search query
// @Tags         Search
// @Produce      json
// @Param        q     query    string  true   "Flight number or airport code"
// @Param        type  query    string  false  "flight or airport"
// @Success      200   {object} dtos.APIResponse
// @Failure      400   {object} dtos.APIResponse
// @Router       /api/v1/search [get]
func SearchHandler(searchSvc *services.SearchService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		q := r.URL.Query()

		res, err := searchSvc.Search(q.Get("q"), q.Get("type"))
		if err != nil {
			respondWithError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Search resolved", res)
	}
}

// RecentSearchesHandler handles GET /api/v1/search/recent
func RecentSearchesHandler(searchSvc *services.SearchService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		common.RespondSuccess(w, initTime, "Recent searches", searchSvc.Recent())
	}
}
