package metadata

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/mssola/useragent"

	"intake/pkg/requestcontext"
)

// ClientMetadata extracts client IP address and User-Agent from the request
// and adds them to the context. Apply early in the chain. Proxy headers are
// read only when trustProxy is set; otherwise the peer address is the client.
func ClientMetadata(trustProxy bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := requestcontext.WithClientMetadata(r.Context(), ClientIPFromRequest(r, trustProxy), r.Header.Get("User-Agent"))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Device summarizes the requesting browser for log attribution.
type Device struct {
	Browser string
	OS      string
	Mobile  bool
	Bot     bool
}

// DeviceFromContext parses the User-Agent stored by ClientMetadata.
// Returns the zero Device when no User-Agent is present.
func DeviceFromContext(ctx context.Context) Device {
	raw := requestcontext.UserAgent(ctx)
	if raw == "" {
		return Device{}
	}
	ua := useragent.New(raw)
	name, version := ua.Browser()
	browser := name
	if version != "" {
		browser = name + " " + version
	}
	return Device{
		Browser: browser,
		OS:      ua.OS(),
		Mobile:  ua.Mobile(),
		Bot:     ua.Bot(),
	}
}

// ClientIPFromRequest extracts the client IP. With trustProxy, the right-most
// X-Forwarded-For hop wins (the one our proxy appended), then X-Real-IP.
func ClientIPFromRequest(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			hops := strings.Split(xff, ",")
			for i := len(hops) - 1; i >= 0; i-- {
				if hop := strings.TrimSpace(hops[i]); hop != "" {
					return hop
				}
			}
		}
		if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
			return xri
		}
	}

	if r.RemoteAddr == "" {
		return "unknown"
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
