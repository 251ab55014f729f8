package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"intake/internal/platform/metrics"
	dErrors "intake/pkg/domain-errors"
	"intake/pkg/platform/httputil"
	"intake/pkg/platform/middleware/logging"
	"intake/pkg/platform/middleware/metadata"
	"intake/pkg/platform/middleware/requestid"
	"intake/pkg/platform/middleware/requesttime"
)

// Registrar mounts one module's endpoints.
type Registrar interface {
	Register(r chi.Router)
}

// NewRouter wires the shared middleware chain, the metrics endpoint, and every
// module's routes. trustProxy makes the client IP come from forwarding headers.
func NewRouter(logger *slog.Logger, m *metrics.Metrics, gatherer prometheus.Gatherer, trustProxy bool, modules ...Registrar) http.Handler {
	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata(trustProxy))
	r.Use(logging.Recovery(logger))
	r.Use(logging.Logger(logger))
	if m != nil {
		r.Use(m.Middleware)
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "no such endpoint"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method_not_allowed"})
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}
	for _, mod := range modules {
		mod.Register(r)
	}
	return r
}
