package records

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"intake/internal/records/metrics"
	dErrors "intake/pkg/domain-errors"
	"intake/pkg/requestcontext"
)

// Store persists table rows.
type Store interface {
	Append(ctx context.Context, rows ...Record) error
	List(ctx context.Context) ([]Record, error)
}

// FormResetter clears the autofilled form values once a record is accepted.
type FormResetter interface {
	Reset()
}

// Service validates submissions and appends them to the table.
type Service struct {
	store   Store
	form    FormResetter
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithFormResetter resets r after every accepted submission.
func WithFormResetter(r FormResetter) Option {
	return func(s *Service) {
		s.form = r
	}
}

func New(store Store, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("store is required")
	}
	s := &Service{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Submit validates sub against the request-scoped date and appends it.
func (s *Service) Submit(ctx context.Context, sub Submission) (*Record, error) {
	now := requestcontext.Now(ctx)
	sub.Normalize()
	if err := sub.Validate(now); err != nil {
		s.observe("rejected", 0)
		return nil, err
	}

	rec := Record{ID: uuid.New(), Submission: sub, SubmittedAt: now}
	if err := s.store.Append(ctx, rec); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store record")
	}
	s.observe("accepted", 1)
	if s.form != nil {
		s.form.Reset()
	}

	s.logger.InfoContext(ctx, "record submitted",
		"request_id", requestcontext.RequestID(ctx),
		"record_id", rec.ID,
		"nationality", rec.Nationality,
	)
	return &rec, nil
}

// List returns all rows in insertion order.
func (s *Service) List(ctx context.Context) ([]Record, error) {
	rows, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list records")
	}
	return rows, nil
}

// LoadSeed appends the example rows in the JSON file at path. Every row must
// pass the same validation as a submission.
func (s *Service) LoadSeed(ctx context.Context, path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read seed file: %w", err)
	}
	var subs []Submission
	if err := json.Unmarshal(raw, &subs); err != nil {
		return 0, fmt.Errorf("decode seed file: %w", err)
	}

	now := requestcontext.Now(ctx)
	rows := make([]Record, 0, len(subs))
	for i, sub := range subs {
		sub.Normalize()
		if err := sub.Validate(now); err != nil {
			return 0, fmt.Errorf("seed row %d: %w", i, err)
		}
		rows = append(rows, Record{ID: uuid.New(), Submission: sub})
	}
	if err := s.store.Append(ctx, rows...); err != nil {
		return 0, fmt.Errorf("store seed rows: %w", err)
	}
	if s.metrics != nil {
		s.metrics.AddRows(len(rows))
	}
	s.logger.InfoContext(ctx, "record seed loaded", "path", path, "rows", len(rows))
	return len(rows), nil
}

func (s *Service) observe(outcome string, rows int) {
	if s.metrics == nil {
		return
	}
	s.metrics.IncrementSubmission(outcome)
	s.metrics.AddRows(rows)
}
