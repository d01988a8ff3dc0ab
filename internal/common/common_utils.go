package common

import (
	"encoding/json"
	"fmt"
	"time"
)

func GetResponseTime(init time.Time) string {
	timeDiff := time.Since(init).Milliseconds()
	return fmt.Sprintf("%dms", timeDiff)
}

// DecodeCached restores a typed value from a cache entry. In-memory caches
// hand back the stored value; Redis hands back its generic JSON decoding.
func DecodeCached[T any](val interface{}) (T, bool) {
	var out T
	switch v := val.(type) {
	case nil:
		return out, false
	case T:
		return v, true
	case *T:
		if v == nil {
			return out, false
		}
		return *v, true
	}

	data, err := json.Marshal(val)
	if err != nil {
		return out, false
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, false
	}
	return out, true
}
