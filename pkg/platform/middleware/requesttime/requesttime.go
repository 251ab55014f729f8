// Package requesttime captures one "now" per request so validation that depends
// on the current date (date of birth not in the future) is consistent within a request.
package requesttime

import (
	"net/http"
	"time"

	"intake/pkg/requestcontext"
)

// Middleware stores the request start time in the context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
