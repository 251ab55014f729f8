package ratelimit

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"intake/internal/ratelimit/metrics"
	"intake/pkg/platform/httputil"
	"intake/pkg/requestcontext"
)

// Limiter decides whether a keyed request may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (Result, error)
}

// Middleware limits requests per client IP for one endpoint scope.
type Middleware struct {
	limiter Limiter
	scope   string
	limit   int
	window  time.Duration
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(*Middleware)

func WithMetrics(m *metrics.Metrics) Option {
	return func(mw *Middleware) {
		mw.metrics = m
	}
}

// New builds a middleware allowing limit requests per window for each client in scope.
func New(limiter Limiter, scope string, limit int, window time.Duration, logger *slog.Logger, opts ...Option) *Middleware {
	m := &Middleware{
		limiter: limiter,
		scope:   scope,
		limit:   limit,
		window:  window,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// RateLimitExceededResponse is the 429 body.
type RateLimitExceededResponse struct {
	Error       string `json:"error"`
	Description string `json:"error_description"`
	RetryAfter  int    `json:"retry_after"`
}

// Handler fails open: a limiter error lets the request through.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ip := requestcontext.ClientIP(ctx)

		result, err := m.limiter.Allow(ctx, m.scope+":"+ip, m.limit, m.window)
		if err != nil {
			m.logger.ErrorContext(ctx, "rate limit check failed",
				"request_id", requestcontext.RequestID(ctx),
				"scope", m.scope,
				"error", err,
			)
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

		if !result.Allowed {
			if m.metrics != nil {
				m.metrics.IncrementRejected(m.scope)
			}
			m.logger.WarnContext(ctx, "rate limit exceeded",
				"request_id", requestcontext.RequestID(ctx),
				"scope", m.scope,
				"retry_after", result.RetryAfter,
			)
			w.Header().Set("Retry-After", strconv.Itoa(result.RetryAfter))
			httputil.WriteJSON(w, http.StatusTooManyRequests, RateLimitExceededResponse{
				Error:       "rate_limit_exceeded",
				Description: "too many requests, try again later",
				RetryAfter:  result.RetryAfter,
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}
