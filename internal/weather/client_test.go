package weather

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"lunara/internal/types"
)

func noopSleep(time.Duration) {}

// newTestClient points a Client at the given test server with fast retries
// and no real sleep.
func newTestClient(t *testing.T, serverURL string, policy RetryPolicy) *Client {
	t.Helper()
	return NewClient(
		&http.Client{Timeout: 5 * time.Second},
		ClientConfig{
			BaseURL:           serverURL,
			APIKey:            "test-key",
			UserAgent:         "Lunara-Test/1.0",
			RequestsPerSecond: 1000,
			Burst:             1000,
		},
		policy,
		WithSleepFunc(noopSleep),
	)
}

var testLocation = types.Location{Lat: 52.52, Lon: 13.405}

func TestCurrent_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("expected bearer auth header, got %q", got)
		}
		if got := r.URL.Query().Get("lat"); got != "52.5200" {
			t.Errorf("expected lat 52.5200, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"timestamp": "2026-03-10T12:00:00Z",
			"pressure_hpa": 1008.5,
			"humidity_percent": 72,
			"temperature_c": 14.2,
			"pm25": 18,
			"uv_index": 3
		}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, DefaultRetryPolicy())
	got, err := client.Current(context.Background(), testLocation)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.PressureHPa != 1008.5 {
		t.Errorf("expected pressure 1008.5, got %v", got.PressureHPa)
	}
	if got.HumidityPercent != 72 {
		t.Errorf("expected humidity 72, got %v", got.HumidityPercent)
	}
}

func TestHistory_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("from"); got != "2026-03-01" {
			t.Errorf("expected from 2026-03-01, got %q", got)
		}
		w.Write([]byte(`{"observations": [
			{"timestamp": "2026-03-01T00:00:00Z", "pressure_hpa": 1015, "humidity_percent": 60, "temperature_c": 10, "pm25": 12, "uv_index": 2},
			{"timestamp": "2026-03-02T00:00:00Z", "pressure_hpa": 1010, "humidity_percent": 65, "temperature_c": 11, "pm25": 14, "uv_index": 2}
		]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, DefaultRetryPolicy())
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	got, err := client.History(context.Background(), testLocation, from, to)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 observations, got %d", len(got))
	}
	if got[1].PressureHPa != 1010 {
		t.Errorf("expected second pressure 1010, got %v", got[1].PressureHPa)
	}
}

func TestForecast_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"pressure_hpa": 998, "humidity_percent": 80, "temperature_c": 22, "pm25": 30, "uv_index": 7}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, RetryPolicy{MaxRetries: 3, MinWait: time.Millisecond, MaxWait: 5 * time.Millisecond})
	got, err := client.Forecast(context.Background(), testLocation)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls.Load() != 3 {
		t.Errorf("expected 3 calls, got %d", calls.Load())
	}
	if got.PressureHPa != 998 {
		t.Errorf("expected pressure 998, got %v", got.PressureHPa)
	}
}

func TestForecast_ExhaustedRetriesMapsToUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, RetryPolicy{MaxRetries: 2, MinWait: time.Millisecond, MaxWait: 5 * time.Millisecond})
	_, err := client.Forecast(context.Background(), testLocation)
	if err == nil {
		t.Fatal("expected an error")
	}

	var appErr *types.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Code != types.ErrCodeUpstreamWeather {
		t.Errorf("expected code %s, got %s", types.ErrCodeUpstreamWeather, appErr.Code)
	}
}

func TestCurrent_RateLimitedMapsToRateLimitError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "1")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, RetryPolicy{MaxRetries: 1, MinWait: time.Millisecond, MaxWait: 5 * time.Millisecond})
	_, err := client.Current(context.Background(), testLocation)
	if err == nil {
		t.Fatal("expected an error")
	}

	var appErr *types.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Code != types.ErrCodeUpstreamRateLimited {
		t.Errorf("expected code %s, got %s", types.ErrCodeUpstreamRateLimited, appErr.Code)
	}
}

func TestCurrent_ClientErrorStatusIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, DefaultRetryPolicy())
	_, err := client.Current(context.Background(), testLocation)
	if err == nil {
		t.Fatal("expected an error")
	}
	if calls.Load() != 1 {
		t.Errorf("expected a single call for a 404, got %d", calls.Load())
	}

	var appErr *types.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Code != types.ErrCodeUpstreamWeather {
		t.Errorf("expected code %s, got %s", types.ErrCodeUpstreamWeather, appErr.Code)
	}
}

func TestComputeBackoff_RespectsRetryAfterSeconds(t *testing.T) {
	client := newTestClient(t, "http://unused", RetryPolicy{MaxRetries: 1, MinWait: time.Millisecond, MaxWait: 2 * time.Second})
	resp := &http.Response{Header: http.Header{"Retry-After": []string{"1"}}}
	if got := client.computeBackoff(0, resp); got != time.Second {
		t.Errorf("expected 1s, got %v", got)
	}
	// Header above MaxWait is clamped.
	resp.Header.Set("Retry-After", "30")
	if got := client.computeBackoff(0, resp); got != 2*time.Second {
		t.Errorf("expected clamp to 2s, got %v", got)
	}
}
