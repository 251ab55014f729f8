// Package restcountries adapts the REST Countries v3.1 API to reference.Source.
package restcountries

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"intake/internal/providers"
	"intake/internal/reference"
	pstrings "intake/pkg/platform/strings"
)

const (
	providerID   = "restcountries"
	allPath      = "/v3.1/all?fields=name,idd"
	maxBodyBytes = 8 << 20
)

// Client fetches the full country list with dialing code structure.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the default client (tests point this at httptest servers).
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// New creates a client for baseURL, e.g. "https://restcountries.com".
func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) ID() string {
	return providerID
}

// rcCountry is the wire shape; every field may be absent.
type rcCountry struct {
	Name *struct {
		Common string `json:"common"`
	} `json:"name"`
	IDD *struct {
		Root     string   `json:"root"`
		Suffixes []string `json:"suffixes"`
	} `json:"idd"`
}

// FetchCountries implements reference.Source.
func (c *Client) FetchCountries(ctx context.Context) ([]reference.ProviderCountry, error) {
	ctx, span := otel.Tracer("intake/providers/restcountries").Start(ctx, "restcountries.FetchCountries",
		trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	countries, err := c.fetch(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("countries", len(countries)))
	return countries, nil
}

func (c *Client) fetch(ctx context.Context) ([]reference.ProviderCountry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+allPath, nil)
	if err != nil {
		return nil, providers.NewProviderError(providers.ErrorInternal, providerID, "build request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, providers.FromTransport(providerID, err)
	}
	defer resp.Body.Close()

	if perr := providers.FromStatus(providerID, resp.StatusCode); perr != nil {
		return nil, perr
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, providers.FromTransport(providerID, err)
	}
	return parseCountries(body)
}

// parseCountries narrows the wire response. Records without a common name are dropped;
// a missing idd object is treated as no root and no suffixes.
func parseCountries(body []byte) ([]reference.ProviderCountry, error) {
	var raw []rcCountry
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, providers.NewProviderError(providers.ErrorBadData, providerID, "decode response", err)
	}

	out := make([]reference.ProviderCountry, 0, len(raw))
	for _, rc := range raw {
		if rc.Name == nil {
			continue
		}
		name := strings.TrimSpace(rc.Name.Common)
		if name == "" {
			continue
		}
		pc := reference.ProviderCountry{Name: name}
		if rc.IDD != nil {
			pc.Root = strings.TrimSpace(rc.IDD.Root)
			pc.Suffixes = pstrings.TrimAll(rc.IDD.Suffixes)
		}
		out = append(out, pc)
	}
	return out, nil
}
