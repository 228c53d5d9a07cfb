package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"lunara/internal/types"

	"github.com/valkey-io/valkey-go"
)

// SnapshotCache stores provider responses in a Valkey-compatible database.
// History windows are immutable once the day has passed, so they get a long
// TTL; forecasts are refreshed by the provider and get a short one.
type SnapshotCache struct {
	client      valkey.Client
	prefix      string
	historyTTL  time.Duration
	forecastTTL time.Duration
}

// NewSnapshotCache constructs a cache with the given key prefix and TTLs.
// Zero TTLs fall back to defaults (12h history, 1h forecast).
func NewSnapshotCache(client valkey.Client, prefix string, historyTTL, forecastTTL time.Duration) *SnapshotCache {
	if prefix == "" {
		prefix = "weather"
	}
	if historyTTL <= 0 {
		historyTTL = 12 * time.Hour
	}
	if forecastTTL <= 0 {
		forecastTTL = time.Hour
	}
	return &SnapshotCache{
		client:      client,
		prefix:      prefix,
		historyTTL:  historyTTL,
		forecastTTL: forecastTTL,
	}
}

func (c *SnapshotCache) historyKey(loc types.Location, from, to time.Time) string {
	return fmt.Sprintf("%s:history:%.4f:%.4f:%s:%s",
		c.prefix, loc.Lat, loc.Lon,
		from.UTC().Format("2006-01-02"), to.UTC().Format("2006-01-02"))
}

func (c *SnapshotCache) forecastKey(loc types.Location) string {
	return fmt.Sprintf("%s:forecast:%.4f:%.4f:%s",
		c.prefix, loc.Lat, loc.Lon, time.Now().UTC().Format("2006-01-02"))
}

// GetHistory returns the cached observation window, reporting a miss for
// absent keys.
func (c *SnapshotCache) GetHistory(ctx context.Context, loc types.Location, from, to time.Time) ([]types.EnvironmentalObservation, bool, error) {
	cmd := c.client.B().Get().Key(c.historyKey(loc, from, to)).Build()
	payload, err := c.client.Do(ctx, cmd).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var history []types.EnvironmentalObservation
	if err := json.Unmarshal([]byte(payload), &history); err != nil {
		return nil, false, err
	}
	return history, true, nil
}

// SetHistory stores an observation window under its date-range key.
func (c *SnapshotCache) SetHistory(ctx context.Context, loc types.Location, from, to time.Time, history []types.EnvironmentalObservation) error {
	payload, err := json.Marshal(history)
	if err != nil {
		return err
	}
	return c.setString(ctx, c.historyKey(loc, from, to), string(payload), c.historyTTL)
}

// GetForecast returns today's cached forecast for the location, reporting a
// miss for absent keys.
func (c *SnapshotCache) GetForecast(ctx context.Context, loc types.Location) (types.ForecastSnapshot, bool, error) {
	cmd := c.client.B().Get().Key(c.forecastKey(loc)).Build()
	payload, err := c.client.Do(ctx, cmd).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return types.ForecastSnapshot{}, false, nil
		}
		return types.ForecastSnapshot{}, false, err
	}

	var forecast types.ForecastSnapshot
	if err := json.Unmarshal([]byte(payload), &forecast); err != nil {
		return types.ForecastSnapshot{}, false, err
	}
	return forecast, true, nil
}

// SetForecast stores tomorrow's forecast under today's per-location key.
func (c *SnapshotCache) SetForecast(ctx context.Context, loc types.Location, forecast types.ForecastSnapshot) error {
	payload, err := json.Marshal(forecast)
	if err != nil {
		return err
	}
	return c.setString(ctx, c.forecastKey(loc), string(payload), c.forecastTTL)
}

func (c *SnapshotCache) setString(ctx context.Context, key, value string, ttl time.Duration) error {
	builder := c.client.B().Set().Key(key).Value(value)
	var cmd valkey.Completed
	if ttl > 0 {
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return c.client.Do(ctx, cmd).Error()
}
