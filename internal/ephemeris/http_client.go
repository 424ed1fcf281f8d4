package ephemeris

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
	"jyotish-engine/internal/observability"
)

// Default configuration values.
const (
	DefaultTimeout     = 15 * time.Second
	DefaultMaxRetries  = 3
	DefaultRetryDelay  = 500 * time.Millisecond
	DefaultMaxDelay    = 5 * time.Second
	DefaultBackoffMult = 2.0
)

// HTTPClient implements Provider against a Swiss Ephemeris sidecar service
// exposing a small JSON API.
type HTTPClient struct {
	endpoint    string
	client      *http.Client
	maxRetries  int
	retryDelay  time.Duration
	maxDelay    time.Duration
	backoffMult float64
}

// ClientOption configures HTTPClient.
type ClientOption func(*HTTPClient)

// WithTimeout sets HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *HTTPClient) {
		c.client.Timeout = d
	}
}

// WithMaxRetries sets maximum retry attempts.
func WithMaxRetries(n int) ClientOption {
	return func(c *HTTPClient) {
		c.maxRetries = n
	}
}

// WithRetryDelay sets initial retry delay.
func WithRetryDelay(d time.Duration) ClientOption {
	return func(c *HTTPClient) {
		c.retryDelay = d
	}
}

// WithHTTPClient sets a custom http.Client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *HTTPClient) {
		c.client = client
	}
}

// NewHTTPClient creates a new ephemeris sidecar client.
func NewHTTPClient(endpoint string, opts ...ClientOption) *HTTPClient {
	c := &HTTPClient{
		endpoint:    endpoint,
		client:      &http.Client{Timeout: DefaultTimeout},
		maxRetries:  DefaultMaxRetries,
		retryDelay:  DefaultRetryDelay,
		maxDelay:    DefaultMaxDelay,
		backoffMult: DefaultBackoffMult,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ Provider = (*HTTPClient)(nil)

type longitudeResponse struct {
	Longitude float64 `json:"longitude"`
}

type housesResponse struct {
	Cusps     []float64 `json:"cusps"`
	Ascendant float64   `json:"ascendant"`
}

type riseResponse struct {
	JulianDay float64 `json:"julianDay"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Longitude queries the sidecar for a tropical longitude.
func (c *HTTPClient) Longitude(ctx context.Context, jd float64, body domain.Body) (float64, error) {
	if body == domain.Ketu {
		return 0, fmt.Errorf("%w: ketu is derived, not queried", domain.ErrEphemerisProvider)
	}

	q := url.Values{}
	q.Set("jd", formatFloat(jd))
	q.Set("body", body.String())

	var resp longitudeResponse
	if err := c.get(ctx, "/v1/longitude", q, &resp); err != nil {
		return 0, err
	}
	return domain.Normalize(resp.Longitude), nil
}

// Houses queries the sidecar for cusps and the ascendant.
func (c *HTTPClient) Houses(ctx context.Context, jd, lat, lon float64, system string) ([12]float64, float64, error) {
	var cusps [12]float64

	q := url.Values{}
	q.Set("jd", formatFloat(jd))
	q.Set("lat", formatFloat(lat))
	q.Set("lon", formatFloat(lon))
	q.Set("system", system)

	var resp housesResponse
	if err := c.get(ctx, "/v1/houses", q, &resp); err != nil {
		return cusps, 0, err
	}
	if len(resp.Cusps) != 12 {
		return cusps, 0, fmt.Errorf("%w: expected 12 cusps, got %d", domain.ErrEphemerisProvider, len(resp.Cusps))
	}
	for i, cusp := range resp.Cusps {
		cusps[i] = domain.Normalize(cusp)
	}
	return cusps, domain.Normalize(resp.Ascendant), nil
}

// RiseTransit queries the sidecar for a rise or set time.
func (c *HTTPClient) RiseTransit(ctx context.Context, jd float64, body domain.Body, lat, lon float64, kind RiseKind) (float64, error) {
	q := url.Values{}
	q.Set("jd", formatFloat(jd))
	q.Set("body", body.String())
	q.Set("lat", formatFloat(lat))
	q.Set("lon", formatFloat(lon))
	q.Set("kind", strconv.Itoa(int(kind)))

	var resp riseResponse
	if err := c.get(ctx, "/v1/rise", q, &resp); err != nil {
		return 0, err
	}
	return resp.JulianDay, nil
}

// get performs an instrumented GET; the sidecar path labels the provider
// metrics so retries within one call count as one call.
func (c *HTTPClient) get(ctx context.Context, path string, q url.Values, out interface{}) error {
	start := time.Now()
	err := c.doGet(ctx, path, q, out)
	observability.RecordProviderCall(path, time.Since(start).Seconds(), err)
	return err
}

// doGet performs a GET with retry and exponential backoff. Retries on network
// errors and 5xx; 4xx responses fail immediately since the inputs won't
// change between attempts.
func (c *HTTPClient) doGet(ctx context.Context, path string, q url.Values, out interface{}) error {
	reqURL := c.endpoint + path + "?" + q.Encode()

	var lastErr error
	delay := c.retryDelay

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return fmt.Errorf("%w: %v", domain.ErrEphemerisProvider, ctx.Err())
			case <-time.After(delay):
			}
			delay = time.Duration(float64(delay) * c.backoffMult)
			if delay > c.maxDelay {
				delay = c.maxDelay
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return fmt.Errorf("%w: build request: %v", domain.ErrEphemerisProvider, err)
		}

		resp, err := c.client.Do(req)
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
				return fmt.Errorf("%w: decode response: %v", domain.ErrEphemerisProvider, err)
			}
			return nil
		case resp.StatusCode >= 500:
			lastErr = fmt.Errorf("status %d: %s", resp.StatusCode, errorMessage(body))
			continue
		default:
			return fmt.Errorf("%w: status %d: %s", domain.ErrEphemerisProvider, resp.StatusCode, errorMessage(body))
		}
	}

	return fmt.Errorf("%w: %d attempts failed: %v", domain.ErrEphemerisProvider, c.maxRetries+1, lastErr)
}

func errorMessage(body []byte) string {
	var e errorResponse
	if err := json.Unmarshal(body, &e); err == nil && e.Error != "" {
		return e.Error
	}
	return string(body)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
