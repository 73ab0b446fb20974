package utils

import (
	"strconv"
)

// ParseInt64 converts a path or query parameter to int64, reporting whether
// the value was a valid positive id.
func ParseInt64(value string) (int64, bool) {
	result, err := strconv.ParseInt(value, 10, 64)
	if err != nil || result < 1 {
		return 0, false
	}
	return result, true
}
