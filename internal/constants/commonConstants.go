package constants

type (
	APIStatus   string
	CachePrefix string
	SearchKind  string
)

const (
	APIStatusOk    APIStatus = "ok"
	APIStatusError APIStatus = "error"

	CachePrefixAirport        CachePrefix = "AIRPORT_"
	CachePrefixRecentSearches CachePrefix = "RECENT_SEARCHES"

	SearchKindFlight  SearchKind = "flight"
	SearchKindAirport SearchKind = "airport"
)

// MaxRecentSearches is how many distinct recent queries are remembered
const MaxRecentSearches = 5
