package response

import (
	"math"
	"time"
)

// StarsResponse describes a rating as a ten-star row for the frontend.
type StarsResponse struct {
	Full  int `json:"full"`
	Half  int `json:"half"`
	Empty int `json:"empty"`
}

// StarBreakdown splits a rating on the 0-10 scale into full, partial and
// empty stars. Any fractional remainder yields a single partial star.
func StarBreakdown(rating float64) (full, half, empty int) {
	if rating < 0 {
		rating = 0
	}
	if rating > 10 {
		rating = 10
	}

	full = int(math.Floor(rating))
	if rating-float64(full) > 0 {
		half = 1
	}
	empty = 10 - full - half
	return full, half, empty
}

// IsNewRelease reports whether a movie counts as a new release, which means
// it came out in the current calendar year.
func IsNewRelease(releaseDate, now time.Time) bool {
	return releaseDate.Year() == now.Year()
}
