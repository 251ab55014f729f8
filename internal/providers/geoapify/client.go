// Package geoapify adapts the Geoapify reverse-geocoding API to autofill.Geocoder.
package geoapify

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"intake/internal/autofill"
	"intake/internal/providers"
)

const (
	providerID   = "geoapify"
	reversePath  = "/v1/geocode/reverse"
	maxBodyBytes = 1 << 20
)

// Client resolves coordinates to ranked address candidates.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// New creates a client for baseURL, e.g. "https://api.geoapify.com".
func New(baseURL, apiKey string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
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

type featureCollection struct {
	Features []struct {
		Properties struct {
			Formatted string `json:"formatted"`
			Country   string `json:"country"`
		} `json:"properties"`
	} `json:"features"`
}

// Reverse implements autofill.Geocoder. Candidates keep the provider's ranking.
func (c *Client) Reverse(ctx context.Context, coord autofill.Coordinate) ([]autofill.Candidate, error) {
	ctx, span := otel.Tracer("intake/providers/geoapify").Start(ctx, "geoapify.Reverse",
		trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	candidates, err := c.reverse(ctx, coord)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("candidates", len(candidates)))
	return candidates, nil
}

func (c *Client) reverse(ctx context.Context, coord autofill.Coordinate) ([]autofill.Candidate, error) {
	if c.apiKey == "" {
		return nil, providers.NewProviderError(providers.ErrorAuthentication, providerID, "api key not configured", nil)
	}

	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(coord.Latitude, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(coord.Longitude, 'f', -1, 64))
	q.Set("apiKey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+reversePath+"?"+q.Encode(), nil)
	if err != nil {
		return nil, providers.NewProviderError(providers.ErrorInternal, providerID, "build request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, providers.FromTransport(providerID, redactKey(err))
	}
	defer resp.Body.Close()

	if perr := providers.FromStatus(providerID, resp.StatusCode); perr != nil {
		return nil, perr
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, providers.FromTransport(providerID, err)
	}
	return parseCandidates(body)
}

func parseCandidates(body []byte) ([]autofill.Candidate, error) {
	var fc featureCollection
	if err := json.Unmarshal(body, &fc); err != nil {
		return nil, providers.NewProviderError(providers.ErrorBadData, providerID, "decode response", err)
	}
	out := make([]autofill.Candidate, 0, len(fc.Features))
	for _, f := range fc.Features {
		out = append(out, autofill.Candidate{
			Address: strings.TrimSpace(f.Properties.Formatted),
			Country: strings.TrimSpace(f.Properties.Country),
		})
	}
	return out, nil
}

// redactKey drops the request URL from transport errors; it carries the API key.
func redactKey(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return uerr.Err
	}
	return err
}
