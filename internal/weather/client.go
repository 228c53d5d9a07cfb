// Package weather is the anti-corruption layer between the insight engine
// and the external weather/air-quality provider. All outbound calls pass
// through one resilient client: rate limiting, circuit breaking, retries
// with exponential backoff, and mapping of transport failures to typed
// application errors. The engine itself never sees provider wire formats.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"lunara/internal/types"

	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"
)

// RetryPolicy configures the retry behavior for provider calls.
type RetryPolicy struct {
	MaxRetries int
	MinWait    time.Duration
	MaxWait    time.Duration
}

// DefaultRetryPolicy returns sensible defaults for the free-tier provider.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries: 3,
		MinWait:    500 * time.Millisecond,
		MaxWait:    10 * time.Second,
	}
}

// ClientConfig carries provider connection settings.
type ClientConfig struct {
	BaseURL           string
	APIKey            string
	UserAgent         string
	RequestsPerSecond float64
	Burst             int
}

// Client talks to the weather/air-quality provider. Requests are rate
// limited before they reach the circuit breaker so that retries also count
// against the provider quota.
type Client struct {
	http        *http.Client
	breaker     *gobreaker.CircuitBreaker[*http.Response]
	limiter     *rate.Limiter
	retryPolicy RetryPolicy
	baseURL     string
	apiKey      string
	userAgent   string
	sleepFn     func(time.Duration)
}

// ClientOption is a functional option for configuring a Client.
type ClientOption func(*Client)

// WithSleepFunc overrides the sleep function used between retries.
// Intended for tests to avoid real delays.
func WithSleepFunc(fn func(time.Duration)) ClientOption {
	return func(c *Client) {
		c.sleepFn = fn
	}
}

// NewClient creates a provider client with its own circuit breaker.
func NewClient(httpClient *http.Client, cfg ClientConfig, policy RetryPolicy, opts ...ClientOption) *Client {
	cb := gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:        "weather-provider",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
		IsSuccessful: func(err error) bool {
			return err == nil
		},
	})

	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 5
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 10
	}

	c := &Client{
		http:        httpClient,
		breaker:     cb,
		limiter:     rate.NewLimiter(rate.Limit(rps), burst),
		retryPolicy: policy,
		baseURL:     cfg.BaseURL,
		apiKey:      cfg.APIKey,
		userAgent:   cfg.UserAgent,
		sleepFn:     time.Sleep,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// observationPayload is the provider wire shape for one reading.
type observationPayload struct {
	Timestamp       time.Time `json:"timestamp"`
	PressureHPa     float64   `json:"pressure_hpa"`
	HumidityPercent float64   `json:"humidity_percent"`
	TemperatureC    float64   `json:"temperature_c"`
	PM25            float64   `json:"pm25"`
	UVIndex         float64   `json:"uv_index"`
}

func (p observationPayload) toObservation() types.EnvironmentalObservation {
	return types.EnvironmentalObservation{
		Timestamp:       p.Timestamp,
		PressureHPa:     p.PressureHPa,
		HumidityPercent: p.HumidityPercent,
		TemperatureC:    p.TemperatureC,
		PM25:            p.PM25,
		UVIndex:         p.UVIndex,
	}
}

func (p observationPayload) toSnapshot() types.ForecastSnapshot {
	return types.ForecastSnapshot{
		PressureHPa:     p.PressureHPa,
		HumidityPercent: p.HumidityPercent,
		TemperatureC:    p.TemperatureC,
		PM25:            p.PM25,
		UVIndex:         p.UVIndex,
	}
}

// Current fetches the present conditions at a location.
func (c *Client) Current(ctx context.Context, loc types.Location) (types.EnvironmentalObservation, error) {
	var payload observationPayload
	if err := c.getJSON(ctx, "/v1/current", locationQuery(loc), &payload); err != nil {
		return types.EnvironmentalObservation{}, err
	}
	return payload.toObservation(), nil
}

// History fetches one observation per calendar day over [from, to],
// chronologically ascending.
func (c *Client) History(ctx context.Context, loc types.Location, from, to time.Time) ([]types.EnvironmentalObservation, error) {
	q := locationQuery(loc)
	q.Set("from", from.UTC().Format("2006-01-02"))
	q.Set("to", to.UTC().Format("2006-01-02"))

	var payload struct {
		Observations []observationPayload `json:"observations"`
	}
	if err := c.getJSON(ctx, "/v1/history", q, &payload); err != nil {
		return nil, err
	}

	out := make([]types.EnvironmentalObservation, len(payload.Observations))
	for i, p := range payload.Observations {
		out[i] = p.toObservation()
	}
	return out, nil
}

// Forecast fetches tomorrow's expected conditions at a location.
func (c *Client) Forecast(ctx context.Context, loc types.Location) (types.ForecastSnapshot, error) {
	var payload observationPayload
	if err := c.getJSON(ctx, "/v1/forecast", locationQuery(loc), &payload); err != nil {
		return types.ForecastSnapshot{}, err
	}
	return payload.toSnapshot(), nil
}

func locationQuery(loc types.Location) url.Values {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(loc.Lat, 'f', 4, 64))
	q.Set("lon", strconv.FormatFloat(loc.Lon, 'f', 4, 64))
	return q
}

// getJSON performs a resilient GET and decodes the 200 response body.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return types.NewAppError(types.ErrCodeInternalUnexpected, "failed to build provider request", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return types.NewAppErrorWithDetails(
			types.ErrCodeUpstreamWeather,
			"weather provider returned an unexpected status",
			nil,
			map[string]any{"status": resp.StatusCode, "path": path},
		)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return types.NewAppError(types.ErrCodeUpstreamWeather, "failed to decode provider response", err)
	}
	return nil
}

// do executes the request with rate limiting, circuit breaking, retries on
// 429/5xx (respecting Retry-After), and error mapping. On success the caller
// owns the response body.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	if traceID := types.GetRequestID(req.Context()); traceID != "" {
		req.Header.Set("X-Request-Id", traceID)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	var lastResp *http.Response
	var lastErr error

	maxAttempts := 1 + c.retryPolicy.MaxRetries
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err := c.limiter.Wait(req.Context()); err != nil {
			return nil, types.NewAppError(types.ErrCodeUpstreamWeather, "request canceled while awaiting rate limit", err)
		}

		resp, err := c.breaker.Execute(func() (*http.Response, error) {
			r, doErr := c.http.Do(req)
			if doErr != nil {
				return nil, doErr
			}
			if r.StatusCode >= 500 {
				return r, fmt.Errorf("provider returned %d", r.StatusCode)
			}
			if r.StatusCode == http.StatusTooManyRequests {
				return r, fmt.Errorf("provider returned 429")
			}
			return r, nil
		})

		if err == nil {
			return resp, nil
		}

		lastErr = err
		if resp != nil {
			if attempt < maxAttempts-1 {
				resp.Body.Close()
			} else {
				lastResp = resp
			}
		}

		// An open breaker will not recover within this request's lifetime.
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			break
		}

		if attempt < maxAttempts-1 {
			c.sleepFn(c.computeBackoff(attempt, resp))
		}
	}

	if lastResp != nil {
		lastResp.Body.Close()
	}
	return nil, c.mapError(lastResp, lastErr)
}

// computeBackoff respects Retry-After when present, otherwise applies
// exponential backoff with full jitter clamped to [MinWait, MaxWait].
func (c *Client) computeBackoff(attempt int, resp *http.Response) time.Duration {
	if resp != nil {
		if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
			if seconds, err := strconv.Atoi(retryAfter); err == nil && seconds > 0 {
				wait := time.Duration(seconds) * time.Second
				if wait > c.retryPolicy.MaxWait {
					wait = c.retryPolicy.MaxWait
				}
				return wait
			}
			if t, err := http.ParseTime(retryAfter); err == nil {
				wait := time.Until(t)
				if wait <= 0 {
					return c.retryPolicy.MinWait
				}
				if wait > c.retryPolicy.MaxWait {
					wait = c.retryPolicy.MaxWait
				}
				return wait
			}
		}
	}

	base := float64(c.retryPolicy.MinWait) * math.Pow(2, float64(attempt))
	maxWait := float64(c.retryPolicy.MaxWait)
	if base > maxWait {
		base = maxWait
	}
	minWait := float64(c.retryPolicy.MinWait)
	if base <= minWait {
		return c.retryPolicy.MinWait
	}
	return time.Duration(minWait + rand.Float64()*(base-minWait))
}

// mapError translates transport-level failures into typed upstream errors.
func (c *Client) mapError(resp *http.Response, err error) *types.AppError {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return types.NewAppError(
			types.ErrCodeUpstreamRateLimited,
			"circuit breaker is open; weather provider unavailable",
			err,
		)
	}

	if resp != nil {
		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			return types.NewAppError(
				types.ErrCodeUpstreamRateLimited,
				"weather provider rate limit exceeded",
				err,
			)
		case resp.StatusCode >= 500:
			return types.NewAppError(
				types.ErrCodeUpstreamWeather,
				fmt.Sprintf("weather provider returned %d after retries", resp.StatusCode),
				err,
			)
		}
	}

	return types.NewAppError(
		types.ErrCodeUpstreamWeather,
		"weather provider request failed",
		err,
	)
}
