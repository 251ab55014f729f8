package reference

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"intake/internal/reference/metrics"
	"intake/pkg/platform/sentinel"
	pstrings "intake/pkg/platform/strings"
)

// Source fetches raw country records from the reference provider.
type Source interface {
	FetchCountries(ctx context.Context) ([]ProviderCountry, error)
}

// Resolver owns the reference dataset and serves lookup views over it.
//
// Invariants:
//   - The provider is called at most once per Resolver; FetchAll is a no-op afterwards.
//   - The dataset is replaced wholesale and never mutated in place.
//   - Views are deterministic: first occurrence wins, stable collated order.
type Resolver struct {
	source  Source
	tag     language.Tag
	logger  *slog.Logger
	metrics *metrics.Metrics

	once    sync.Once
	mu      sync.RWMutex
	dataset []CountryEntry
	status  Status
}

type Option func(*Resolver)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Resolver) {
		r.metrics = m
	}
}

// WithLocale sets the collation locale of the views. Unknown tags fall back to English.
func WithLocale(tag string) Option {
	return func(r *Resolver) {
		if t, err := language.Parse(tag); err == nil {
			r.tag = t
		}
	}
}

// New constructs a Resolver in the unloaded state.
func New(source Source, opts ...Option) (*Resolver, error) {
	if source == nil {
		return nil, errors.New("reference source is required")
	}
	r := &Resolver{
		source:  source,
		tag:     language.English,
		logger:  slog.Default(),
		dataset: []CountryEntry{},
		status:  Status{State: StateUnloaded},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// FetchAll loads the dataset from the provider. Only the first call reaches the
// provider; a failure is logged, leaves the dataset empty and is not retried.
// It never returns an error: an empty dataset is a valid degraded state.
func (r *Resolver) FetchAll(ctx context.Context) {
	r.once.Do(func() {
		r.fetch(ctx)
	})
}

func (r *Resolver) fetch(ctx context.Context) {
	r.mu.Lock()
	r.status = Status{State: StateLoading}
	r.mu.Unlock()

	start := time.Now()
	countries, err := r.source.FetchCountries(ctx)
	if err != nil {
		r.mu.Lock()
		r.status = Status{State: StateFailed, Error: err.Error()}
		r.mu.Unlock()
		r.logger.ErrorContext(ctx, "reference dataset fetch failed",
			"error", err,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		if r.metrics != nil {
			r.metrics.ObserveFetch(start, "failed", 0)
		}
		return
	}

	entries := Derive(countries)
	r.mu.Lock()
	r.dataset = entries
	r.status = Status{State: StateLoaded, Entries: len(entries), LoadedAt: time.Now()}
	r.mu.Unlock()

	r.logger.InfoContext(ctx, "reference dataset loaded",
		"countries", len(countries),
		"entries", len(entries),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	if r.metrics != nil {
		r.metrics.ObserveFetch(start, "loaded", len(entries))
	}
}

// Status reports the dataset lifecycle state.
func (r *Resolver) Status() Status {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.status
}

// Entries returns the raw dataset in provider order. The slice must not be modified.
func (r *Resolver) Entries() []CountryEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.dataset
}

// ByNameView returns one entry per name, first occurrence winning, sorted by name.
func (r *Resolver) ByNameView() []CountryEntry {
	out := pstrings.DedupeBy(r.Entries(), func(e CountryEntry) string { return e.Name }, true)
	r.sortBy(out, func(e CountryEntry) string { return e.Name })
	return out
}

// ByCodeView returns one entry per non-empty calling code, first occurrence
// winning, sorted by code.
func (r *Resolver) ByCodeView() []CountryEntry {
	out := pstrings.DedupeBy(r.Entries(), func(e CountryEntry) string { return e.CallingCode }, false)
	r.sortBy(out, func(e CountryEntry) string { return e.CallingCode })
	return out
}

// FindByName returns the first raw entry with exactly this name.
func (r *Resolver) FindByName(name string) (CountryEntry, error) {
	for _, e := range r.Entries() {
		if e.Name == name {
			return e, nil
		}
	}
	return CountryEntry{}, sentinel.ErrNotFound
}

// FindByCode returns the first raw entry with exactly this calling code.
func (r *Resolver) FindByCode(code string) (CountryEntry, error) {
	for _, e := range r.Entries() {
		if e.CallingCode == code {
			return e, nil
		}
	}
	return CountryEntry{}, sentinel.ErrNotFound
}

// sortBy sorts in place. A Collator is not safe for concurrent use, so each call builds its own.
func (r *Resolver) sortBy(entries []CountryEntry, key func(CountryEntry) string) {
	c := collate.New(r.tag)
	slices.SortStableFunc(entries, func(a, b CountryEntry) int {
		return c.CompareString(key(a), key(b))
	})
}
