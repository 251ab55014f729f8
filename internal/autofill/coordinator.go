package autofill

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"intake/internal/autofill/metrics"
	"intake/internal/providers"
	"intake/pkg/platform/circuit"
	"intake/pkg/requestcontext"
)

const defaultTimeout = 10 * time.Second

// Coordinator turns a device coordinate into form-ready values.
//
// Invariants:
//   - Failures are absorbed: Autofill returns an Outcome, never an error.
//   - A failed invocation writes no field.
//   - Nationality and phone code are written only from a reference entry whose
//     name equals the geocoded country; otherwise they are left untouched.
//   - Invocations may overlap; each field write is independent (last write wins
//     unless the sink discards stale sequences).
type Coordinator struct {
	geocoder  Geocoder
	countries CountryLookup
	sink      FieldSink
	timeout   time.Duration
	logger    *slog.Logger
	metrics   *metrics.Metrics
	breaker   *circuit.Breaker

	seq atomic.Uint64
}

type Option func(*Coordinator)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Coordinator) {
		c.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Coordinator) {
		c.metrics = m
	}
}

// WithTimeout bounds each geocoder call.
func WithTimeout(d time.Duration) Option {
	return func(c *Coordinator) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithBreaker reports geocoder health to b.
func WithBreaker(b *circuit.Breaker) Option {
	return func(c *Coordinator) {
		c.breaker = b
	}
}

// New constructs a Coordinator.
func New(geocoder Geocoder, countries CountryLookup, sink FieldSink, opts ...Option) (*Coordinator, error) {
	if geocoder == nil {
		return nil, errors.New("geocoder is required")
	}
	if countries == nil {
		return nil, errors.New("country lookup is required")
	}
	if sink == nil {
		return nil, errors.New("field sink is required")
	}
	c := &Coordinator{
		geocoder:  geocoder,
		countries: countries,
		sink:      sink,
		timeout:   defaultTimeout,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Autofill runs one Idle → Requesting → Resolved|Failed invocation.
func (c *Coordinator) Autofill(ctx context.Context, locator Locator) Outcome {
	out := Outcome{Sequence: c.seq.Add(1), State: StateRequesting, Emitted: []Field{}}
	requestID := requestcontext.RequestID(ctx)

	if locator == nil {
		return c.fail(ctx, out, ReasonCapabilityUnavailable, nil)
	}
	coord, err := locator.Locate(ctx)
	if err != nil {
		if errors.Is(err, ErrCapabilityUnavailable) {
			return c.fail(ctx, out, ReasonCapabilityUnavailable, err)
		}
		return c.fail(ctx, out, ReasonDeviceError, err)
	}

	candidates, err := c.reverse(ctx, coord)
	if err != nil {
		return c.fail(ctx, out, ReasonProviderError, err)
	}
	if len(candidates) == 0 {
		return c.fail(ctx, out, ReasonNoCandidates, nil)
	}

	first := candidates[0]
	out.State = StateResolved
	if first.Address != "" {
		out.Resolution.Address = first.Address
		c.emit(&out, FieldAddress, c.sink.SetAddress(out.Sequence, first.Address))
	}

	entry, err := c.countries.FindByName(first.Country)
	if err != nil {
		out.Reason = ReasonNoReferenceMatch
		c.logger.WarnContext(ctx, "geocoded country not in reference dataset",
			"request_id", requestID,
			"sequence", out.Sequence,
			"country", first.Country,
		)
		c.record(out)
		return out
	}

	out.Resolution.CountryName = entry.Name
	c.emit(&out, FieldNationality, c.sink.SetNationality(out.Sequence, entry.Name))
	if entry.CallingCode != "" {
		out.Resolution.CallingCode = entry.CallingCode
		c.emit(&out, FieldPhoneCode, c.sink.SetPhoneCode(out.Sequence, entry.CallingCode))
	}

	c.logger.InfoContext(ctx, "location autofill resolved",
		"request_id", requestID,
		"sequence", out.Sequence,
		"country", entry.Name,
		"calling_code", entry.CallingCode,
		"discarded", len(out.Discarded),
	)
	c.record(out)
	return out
}

func (c *Coordinator) reverse(parent context.Context, coord Coordinate) ([]Candidate, error) {
	ctx, cancel := context.WithTimeout(parent, c.timeout)
	defer cancel()

	start := time.Now()
	candidates, err := c.geocoder.Reverse(ctx, coord)
	if c.metrics != nil {
		c.metrics.ObserveGeocode(start)
	}
	if err != nil && callerCanceled(parent) {
		// The caller went away; says nothing about the geocoder.
		return candidates, err
	}
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) && providers.GetCategory(err) != providers.ErrorTimeout {
		err = providers.NewProviderError(providers.ErrorTimeout, "geocoder", "reverse geocode timed out", err)
	}
	c.trackHealth(ctx, err)
	return candidates, err
}

func callerCanceled(ctx context.Context) bool {
	return errors.Is(ctx.Err(), context.Canceled)
}

func (c *Coordinator) trackHealth(ctx context.Context, err error) {
	if c.breaker == nil {
		return
	}
	if err != nil {
		if _, change := c.breaker.RecordFailure(); change.Opened {
			c.logger.WarnContext(ctx, "geocoder marked degraded", "breaker", c.breaker.Name())
		}
		return
	}
	if _, change := c.breaker.RecordSuccess(); change.Closed {
		c.logger.InfoContext(ctx, "geocoder recovered", "breaker", c.breaker.Name())
	}
}

func (c *Coordinator) emit(out *Outcome, field Field, applied bool) {
	if applied {
		out.Emitted = append(out.Emitted, field)
		return
	}
	out.Discarded = append(out.Discarded, field)
	if c.metrics != nil {
		c.metrics.IncrementStaleDiscarded(1)
	}
}

func (c *Coordinator) fail(ctx context.Context, out Outcome, reason Reason, err error) Outcome {
	out.State = StateFailed
	out.Reason = reason
	attrs := []any{
		"request_id", requestcontext.RequestID(ctx),
		"sequence", out.Sequence,
		"reason", reason,
	}
	if err != nil {
		attrs = append(attrs, "error", err)
	}
	if reason == ReasonProviderError && callerCanceled(ctx) {
		c.logger.InfoContext(ctx, "location autofill abandoned by caller", attrs...)
		c.record(out)
		return out
	}
	if reason == ReasonProviderError {
		attrs = append(attrs, "category", providers.GetCategory(err))
	}
	c.logger.WarnContext(ctx, "location autofill failed", attrs...)
	c.record(out)
	return out
}

func (c *Coordinator) record(out Outcome) {
	if c.metrics != nil {
		c.metrics.IncrementOutcome(string(out.State), string(out.Reason))
	}
}
