package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"jyotish-engine/internal/domain"
)

// HTTPResolver queries a geocoding sidecar with a Nominatim-style search API.
type HTTPResolver struct {
	endpoint   string
	client     *http.Client
	maxRetries int
	retryDelay time.Duration
}

// ResolverOption configures HTTPResolver.
type ResolverOption func(*HTTPResolver)

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) ResolverOption {
	return func(r *HTTPResolver) {
		r.client.Timeout = d
	}
}

// WithMaxRetries sets maximum retry attempts.
func WithMaxRetries(n int) ResolverOption {
	return func(r *HTTPResolver) {
		r.maxRetries = n
	}
}

// WithHTTPClient sets a custom http.Client.
func WithHTTPClient(client *http.Client) ResolverOption {
	return func(r *HTTPResolver) {
		r.client = client
	}
}

// NewHTTPResolver creates a geocoding client.
func NewHTTPResolver(endpoint string, opts ...ResolverOption) *HTTPResolver {
	r := &HTTPResolver{
		endpoint:   endpoint,
		client:     &http.Client{Timeout: 10 * time.Second},
		maxRetries: 2,
		retryDelay: 300 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var _ Resolver = (*HTTPResolver)(nil)

type searchResult struct {
	Name        string  `json:"name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Timezone    string  `json:"timezone"`
	OffsetHours float64 `json:"offsetHours"`
}

type timezoneResponse struct {
	Timezone string `json:"timezone"`
}

// Resolve searches the sidecar; the first result wins. An empty result set
// maps to domain.ErrUnresolvableLocation.
func (r *HTTPResolver) Resolve(ctx context.Context, place string) (Location, error) {
	q := url.Values{}
	q.Set("q", place)

	var results []searchResult
	if err := r.get(ctx, "/v1/search", q, &results); err != nil {
		return Location{}, err
	}
	if len(results) == 0 {
		return Location{}, fmt.Errorf("%w: %q", domain.ErrUnresolvableLocation, place)
	}

	top := results[0]
	return Location{
		Name:        top.Name,
		Latitude:    top.Latitude,
		Longitude:   top.Longitude,
		Timezone:    top.Timezone,
		OffsetHours: top.OffsetHours,
	}, nil
}

// TimezoneAt asks the sidecar which timezone covers a coordinate.
func (r *HTTPResolver) TimezoneAt(ctx context.Context, lat, lon float64) (string, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))

	var resp timezoneResponse
	if err := r.get(ctx, "/v1/timezone", q, &resp); err != nil {
		return "", err
	}
	if resp.Timezone == "" {
		return "", fmt.Errorf("%w: no timezone at %.4f,%.4f", domain.ErrUnresolvableLocation, lat, lon)
	}
	return resp.Timezone, nil
}

// get performs a GET with simple retry on network errors and 5xx.
func (r *HTTPResolver) get(ctx context.Context, path string, q url.Values, out interface{}) error {
	reqURL := r.endpoint + path + "?" + q.Encode()

	var lastErr error
	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return fmt.Errorf("%w: %v", domain.ErrUnresolvableLocation, ctx.Err())
			case <-time.After(r.retryDelay):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return fmt.Errorf("%w: build request: %v", domain.ErrUnresolvableLocation, err)
		}

		resp, err := r.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			if err := json.Unmarshal(body, out); err != nil {
				return fmt.Errorf("%w: decode response: %v", domain.ErrUnresolvableLocation, err)
			}
			return nil
		case resp.StatusCode >= 500:
			lastErr = fmt.Errorf("status %d", resp.StatusCode)
			continue
		default:
			return fmt.Errorf("%w: status %d", domain.ErrUnresolvableLocation, resp.StatusCode)
		}
	}

	return fmt.Errorf("%w: %d attempts failed: %v", domain.ErrUnresolvableLocation, r.maxRetries+1, lastErr)
}
