// Package cache memoizes reverse-geocoding results keyed by a rounded coordinate.
package cache

import (
	"context"
	"errors"
	"fmt"
	"math"

	"intake/internal/autofill"
)

// ErrMiss is returned by a Store when no live entry exists for a key.
var ErrMiss = errors.New("geocode cache miss")

// Store holds candidate lists by key.
type Store interface {
	Get(ctx context.Context, key string) ([]autofill.Candidate, error)
	Set(ctx context.Context, key string, candidates []autofill.Candidate) error
}

// Key rounds a coordinate to four decimal places (about 11 m).
func Key(c autofill.Coordinate) string {
	return fmt.Sprintf("%.4f,%.4f", roundCell(c.Latitude), roundCell(c.Longitude))
}

// roundCell rounds to the cell grid and folds negative zero into zero.
func roundCell(v float64) float64 {
	r := math.Round(v*1e4) / 1e4
	if r == 0 {
		return 0
	}
	return r
}
