package httptransport_test

import (
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"

	"intake/internal/platform/metrics"
	httptransport "intake/internal/transport/http"
	"intake/pkg/platform/httputil"
	"intake/pkg/platform/middleware/requestid"
	"intake/pkg/requestcontext"
	"intake/pkg/testutil"
)

type echoModule struct{}

func (echoModule) Register(r chi.Router) {
	r.Get("/echo", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{
			"request_id": requestcontext.RequestID(r.Context()),
			"client_ip":  requestcontext.ClientIP(r.Context()),
		})
	})
	r.Get("/panic", func(http.ResponseWriter, *http.Request) {
		panic("handler bug")
	})
}

func newRouter() http.Handler {
	reg := prometheus.NewRegistry()
	return httptransport.NewRouter(
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics.NewWithRegisterer(reg),
		reg,
		false,
		echoModule{},
	)
}

func TestRouter(t *testing.T) {
	router := newRouter()

	t.Run("request id propagates to handler and response", func(t *testing.T) {
		req := testutil.NewRequest(t, http.MethodGet, "/echo")
		req.Header.Set(requestid.Header, "abc-123")
		rr := testutil.DoRequest(router, req)

		testutil.AssertStatusOK(t, rr)
		assert.Equal(t, "abc-123", rr.Header().Get(requestid.Header))
		testutil.AssertJSONContains(t, rr, "request_id", "abc-123")
	})

	t.Run("unknown route is a JSON 404", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/nope"))
		testutil.AssertStatusAndError(t, rr, http.StatusNotFound, "not_found")
	})

	t.Run("wrong method", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodDelete, "/echo"))
		testutil.AssertStatusAndError(t, rr, http.StatusMethodNotAllowed, "method_not_allowed")
	})

	t.Run("panics are recovered", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/panic"))
		testutil.AssertStatusAndError(t, rr, http.StatusInternalServerError, "internal_error")
	})

	t.Run("metrics exposes route-labelled counters", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/metrics"))
		testutil.AssertStatusOK(t, rr)
		assert.Contains(t, rr.Body.String(), `intake_http_requests_total{method="GET",route="/echo",status="200"} 1`)
	})
}
