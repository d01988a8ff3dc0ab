package common

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedAirport struct {
	Code     string  `json:"code"`
	Latitude float64 `json:"latitude"`
}

func TestCacheService_GetOrSet(t *testing.T) {
	cs := NewCacheService(time.Minute, time.Minute)
	calls := 0
	loader := func() (any, error) {
		calls++
		return cachedAirport{Code: "JFK"}, nil
	}

	v1, err := cs.GetOrSet("AIRPORT_JFK", time.Minute, loader)
	require.NoError(t, err)
	v2, err := cs.GetOrSet("AIRPORT_JFK", time.Minute, loader)
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, v1, v2)
	_, found := cs.Get("AIRPORT_JFK")
	assert.True(t, found)
}

func TestCacheService_GetOrSet_LoaderErrorNotCached(t *testing.T) {
	cs := NewCacheService(time.Minute, time.Minute)

	_, err := cs.GetOrSet("k", time.Minute, func() (any, error) { return nil, errors.New("boom") })
	assert.Error(t, err)

	_, found := cs.Get("k")
	assert.False(t, found)
}

func TestCacheService_Expiry(t *testing.T) {
	cs := NewCacheService(time.Minute, time.Minute)
	cs.Set("short", "v", time.Millisecond)

	time.Sleep(5 * time.Millisecond)
	_, found := cs.Get("short")
	assert.False(t, found)
}

func TestDecodeCached(t *testing.T) {
	want := cachedAirport{Code: "LAX", Latitude: 33.9416}

	got, ok := DecodeCached[cachedAirport](want)
	require.True(t, ok)
	assert.Equal(t, want, got)

	got, ok = DecodeCached[cachedAirport](&want)
	require.True(t, ok)
	assert.Equal(t, want, got)

	// generic JSON shape, as returned by the Redis cache
	generic := map[string]interface{}{"code": "LAX", "latitude": 33.9416}
	got, ok = DecodeCached[cachedAirport](generic)
	require.True(t, ok)
	assert.Equal(t, want, got)

	list, ok := DecodeCached[[]string]([]interface{}{"UA123", "JFK"})
	require.True(t, ok)
	assert.Equal(t, []string{"UA123", "JFK"}, list)

	_, ok = DecodeCached[cachedAirport](nil)
	assert.False(t, ok)

	_, ok = DecodeCached[cachedAirport]("not an airport")
	assert.False(t, ok)
}
