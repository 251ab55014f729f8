// Package health reports service readiness and dependency state.
package health

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"intake/internal/reference"
	"intake/pkg/platform/circuit"
	"intake/pkg/platform/httputil"
	"intake/pkg/requestcontext"
)

const pingTimeout = time.Second

// ReferenceStatus reports dataset readiness.
type ReferenceStatus interface {
	Status() reference.Status
}

// Pinger is an optional backing store.
type Pinger interface {
	Health(ctx context.Context) error
}

// Handler serves GET /healthz.
type Handler struct {
	reference ReferenceStatus
	geocoder  *circuit.Breaker
	redis     Pinger
	logger    *slog.Logger
}

// New builds the health handler. geocoder and redis may be nil.
func New(ref ReferenceStatus, geocoder *circuit.Breaker, redis Pinger, logger *slog.Logger) *Handler {
	return &Handler{reference: ref, geocoder: geocoder, redis: redis, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/healthz", h.HandleHealth)
}

// Response is the health document. Status is "ok" or "degraded"; the service
// keeps serving in both.
type Response struct {
	Status    string              `json:"status"`
	Reference reference.LoadState `json:"reference"`
	Geocoder  string              `json:"geocoder"`
	Redis     string              `json:"redis"`
}

func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	resp := Response{
		Status:    "ok",
		Reference: h.reference.Status().State,
		Geocoder:  "unknown",
		Redis:     "disabled",
	}
	if resp.Reference == reference.StateFailed {
		resp.Status = "degraded"
	}
	if h.geocoder != nil {
		resp.Geocoder = string(h.geocoder.State())
		if h.geocoder.IsOpen() {
			resp.Status = "degraded"
		}
	}
	if h.redis != nil {
		pctx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()
		if err := h.redis.Health(pctx); err != nil {
			h.logger.WarnContext(ctx, "redis health check failed",
				"request_id", requestcontext.RequestID(ctx),
				"error", err,
			)
			resp.Redis = "unreachable"
			resp.Status = "degraded"
		} else {
			resp.Redis = "ok"
		}
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}
