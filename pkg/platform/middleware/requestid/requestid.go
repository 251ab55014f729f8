// Package requestid assigns every request an ID, honoring an inbound X-Request-ID.
package requestid

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"intake/pkg/requestcontext"
)

const Header = "X-Request-ID"

const maxInboundLen = 128

// Middleware sets the request ID in the context and echoes it in the response.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(Header))
		if id == "" || len(id) > maxInboundLen {
			id = uuid.NewString()
		}
		w.Header().Set(Header, id)
		next.ServeHTTP(w, r.WithContext(requestcontext.WithRequestID(r.Context(), id)))
	})
}
