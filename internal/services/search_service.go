package services

import (
	"regexp"
	"strings"
	"sync"
	"time"

	"flightwatch/internal/common"
	"flightwatch/internal/constants"
	"flightwatch/internal/models/dtos"
	"flightwatch/internal/providers"
)

var (
	flightNumberPattern = regexp.MustCompile(`^[A-Z0-9]{2,8}$`)
	airportCodePattern  = regexp.MustCompile(`^[A-Z]{3,4}$`)
)

// recentSearchTTL keeps the recent list alive across idle periods
const recentSearchTTL = 30 * 24 * time.Hour

// DefaultRecentSearches seeds the list before the first query
var DefaultRecentSearches = []string{"UA123", "DL456", "JFK", "LAX"}

type SearchService struct {
	Cache common.CacheInterface
	mu    sync.Mutex
}

func NewSearchService(cache common.CacheInterface) *SearchService {
	return &SearchService{Cache: cache}
}

// ClassifyQuery decides whether a normalized query names a flight or an
// airport. Purely alphabetic 3-4 letter codes are airports.
func ClassifyQuery(query string) constants.SearchKind {
	switch {
	case airportCodePattern.MatchString(query):
		return constants.SearchKindAirport
	case flightNumberPattern.MatchString(query):
		return constants.SearchKindFlight
	default:
		return constants.SearchKindAirport
	}
}

// Search resolves a query to the screen it should open and records it in
// the recent list. kind may be empty to classify automatically.
func (svc *SearchService) Search(query string, kind string) (*dtos.SearchResponse, error) {
	q := providers.NormalizeCode(query)
	if q == "" {
		return nil, providers.NewValidationError("%s", constants.MsgEmptyQuery)
	}

	var k constants.SearchKind
	switch constants.SearchKind(strings.ToLower(strings.TrimSpace(kind))) {
	case constants.SearchKindFlight:
		k = constants.SearchKindFlight
	case constants.SearchKindAirport:
		k = constants.SearchKindAirport
	case "":
		k = ClassifyQuery(q)
	default:
		return nil, providers.NewValidationError("unknown search type %q", kind)
	}

	svc.remember(q)

	target := "/api/v1/flights/" + q
	if k == constants.SearchKindAirport {
		target = "/api/v1/airports/" + q + "/flights"
	}

	return &dtos.SearchResponse{
		Query:  q,
		Kind:   string(k),
		Target: target,
	}, nil
}

// Recent returns the remembered queries, newest first
func (svc *SearchService) Recent() []string {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return svc.load()
}

func (svc *SearchService) remember(q string) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	list := []string{q}
	for _, prev := range svc.load() {
		if prev != q {
			list = append(list, prev)
		}
	}
	if len(list) > constants.MaxRecentSearches {
		list = list[:constants.MaxRecentSearches]
	}
	svc.Cache.Set(string(constants.CachePrefixRecentSearches), list, recentSearchTTL)
}

func (svc *SearchService) load() []string {
	if val, ok := svc.Cache.Get(string(constants.CachePrefixRecentSearches)); ok {
		if list, ok := common.DecodeCached[[]string](val); ok {
			return append([]string(nil), list...)
		}
	}
	return append([]string(nil), DefaultRecentSearches...)
}
