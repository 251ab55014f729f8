package cache

import (
	"context"
	"errors"
	"log/slog"

	"intake/internal/autofill"
	"intake/internal/autofill/metrics"
	"intake/pkg/requestcontext"
)

// Geocoder wraps another Geocoder with a read-through cache. Cache failures
// degrade to a direct call; they never fail the lookup.
type Geocoder struct {
	next    autofill.Geocoder
	store   Store
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(*Geocoder)

func WithLogger(logger *slog.Logger) Option {
	return func(g *Geocoder) {
		g.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(g *Geocoder) {
		g.metrics = m
	}
}

func New(next autofill.Geocoder, store Store, opts ...Option) (*Geocoder, error) {
	if next == nil {
		return nil, errors.New("geocoder is required")
	}
	if store == nil {
		return nil, errors.New("cache store is required")
	}
	g := &Geocoder{next: next, store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Reverse serves from the cache when possible. Only non-empty results are stored.
func (g *Geocoder) Reverse(ctx context.Context, coord autofill.Coordinate) ([]autofill.Candidate, error) {
	key := Key(coord)
	candidates, err := g.store.Get(ctx, key)
	switch {
	case err == nil:
		g.lookup("hit")
		return candidates, nil
	case errors.Is(err, ErrMiss):
		g.lookup("miss")
	default:
		g.lookup("error")
		g.logger.WarnContext(ctx, "geocode cache read failed",
			"request_id", requestcontext.RequestID(ctx),
			"key", key,
			"error", err,
		)
	}

	candidates, err = g.next.Reverse(ctx, coord)
	if err != nil || len(candidates) == 0 {
		return candidates, err
	}
	if err := g.store.Set(ctx, key, candidates); err != nil {
		g.logger.WarnContext(ctx, "geocode cache write failed",
			"request_id", requestcontext.RequestID(ctx),
			"key", key,
			"error", err,
		)
	}
	return candidates, nil
}

func (g *Geocoder) lookup(result string) {
	if g.metrics != nil {
		g.metrics.IncrementCacheLookup(result)
	}
}
