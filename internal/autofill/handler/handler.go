package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"intake/internal/autofill"
	"intake/internal/form"
	"intake/pkg/platform/httputil"
	"intake/pkg/platform/middleware/metadata"
	"intake/pkg/requestcontext"
)

// Service runs one autofill invocation.
type Service interface {
	Autofill(ctx context.Context, locator autofill.Locator) autofill.Outcome
}

// FormReader exposes the field values the invocation wrote to.
type FormReader interface {
	Snapshot() form.Snapshot
}

// Handler wires the autofill endpoint to the coordinator.
type Handler struct {
	service    Service
	form       FormReader
	logger     *slog.Logger
	middleware []func(http.Handler) http.Handler
}

type Option func(*Handler)

// WithMiddleware wraps the autofill route only, e.g. with a rate limiter
// guarding the geocoder quota.
func WithMiddleware(mw ...func(http.Handler) http.Handler) Option {
	return func(h *Handler) {
		h.middleware = append(h.middleware, mw...)
	}
}

func New(service Service, form FormReader, logger *slog.Logger, opts ...Option) *Handler {
	h := &Handler{service: service, form: form, logger: logger}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts autofill endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.With(h.middleware...).Post("/autofill/location", h.HandleLocation)
}

// LocationResponse carries the invocation outcome and the form values after it.
type LocationResponse struct {
	Outcome autofill.Outcome `json:"outcome"`
	Form    form.Snapshot    `json:"form"`
}

// HandleLocation handles POST /autofill/location. Autofill failures are part of
// the outcome and still answer 200; only a malformed request is an error.
func (h *Handler) HandleLocation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[LocationRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	out := h.service.Autofill(ctx, req.Locator())

	device := metadata.DeviceFromContext(ctx)
	h.logger.InfoContext(ctx, "autofill request handled",
		"request_id", requestID,
		"sequence", out.Sequence,
		"state", out.State,
		"reason", out.Reason,
		"browser", device.Browser,
		"os", device.OS,
		"mobile", device.Mobile,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, LocationResponse{Outcome: out, Form: h.form.Snapshot()})
}
