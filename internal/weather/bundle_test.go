package weather

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"lunara/internal/types"
)

// mockProvider implements Provider for testing.
type mockProvider struct {
	current     types.EnvironmentalObservation
	history     []types.EnvironmentalObservation
	forecast    types.ForecastSnapshot
	currentErr  error
	historyErr  error
	forecastErr error
}

func (m *mockProvider) Current(_ context.Context, _ types.Location) (types.EnvironmentalObservation, error) {
	return m.current, m.currentErr
}

func (m *mockProvider) History(_ context.Context, _ types.Location, _, _ time.Time) ([]types.EnvironmentalObservation, error) {
	return m.history, m.historyErr
}

func (m *mockProvider) Forecast(_ context.Context, _ types.Location) (types.ForecastSnapshot, error) {
	return m.forecast, m.forecastErr
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func day(d int) time.Time {
	return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC)
}

func TestFetchBundle_Success(t *testing.T) {
	provider := &mockProvider{
		current:  types.EnvironmentalObservation{Timestamp: day(10), PressureHPa: 1012},
		history:  []types.EnvironmentalObservation{{Timestamp: day(8)}, {Timestamp: day(9)}},
		forecast: types.ForecastSnapshot{PressureHPa: 1005, HumidityPercent: 78},
	}
	svc := NewService(provider, nil, discardLogger())

	bundle, err := svc.FetchBundle(context.Background(), types.Location{Lat: 52.52, Lon: 13.405}, day(8), day(9))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bundle.Current.PressureHPa != 1012 {
		t.Errorf("expected current pressure 1012, got %v", bundle.Current.PressureHPa)
	}
	if len(bundle.History) != 2 {
		t.Errorf("expected 2 history entries, got %d", len(bundle.History))
	}
	if bundle.Forecast.HumidityPercent != 78 {
		t.Errorf("expected forecast humidity 78, got %v", bundle.Forecast.HumidityPercent)
	}
}

func TestFetchBundle_ProviderFailureFailsBundle(t *testing.T) {
	provider := &mockProvider{
		historyErr: types.NewAppError(types.ErrCodeUpstreamWeather, "provider down", errors.New("boom")),
	}
	svc := NewService(provider, nil, discardLogger())

	_, err := svc.FetchBundle(context.Background(), types.Location{}, day(1), day(7))
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

func TestAlignDaily_DropsUnmatchedDays(t *testing.T) {
	records := []types.SymptomRecord{
		{Date: day(1), HotFlashCount: 1},
		{Date: day(2), HotFlashCount: 2},
		{Date: day(3), HotFlashCount: 3},
	}
	observations := []types.EnvironmentalObservation{
		{Timestamp: day(1).Add(14 * time.Hour), PressureHPa: 1010},
		{Timestamp: day(3), PressureHPa: 1000},
		{Timestamp: day(4), PressureHPa: 990},
	}

	gotRecords, gotObs := AlignDaily(records, observations)
	if len(gotRecords) != 2 || len(gotObs) != 2 {
		t.Fatalf("expected 2 aligned pairs, got %d/%d", len(gotRecords), len(gotObs))
	}
	if gotRecords[0].HotFlashCount != 1 || gotObs[0].PressureHPa != 1010 {
		t.Errorf("first pair misaligned: %+v / %+v", gotRecords[0], gotObs[0])
	}
	if gotRecords[1].HotFlashCount != 3 || gotObs[1].PressureHPa != 1000 {
		t.Errorf("second pair misaligned: %+v / %+v", gotRecords[1], gotObs[1])
	}
}

func TestAlignDaily_EmptyInputs(t *testing.T) {
	gotRecords, gotObs := AlignDaily(nil, nil)
	if len(gotRecords) != 0 || len(gotObs) != 0 {
		t.Errorf("expected empty outputs, got %d/%d", len(gotRecords), len(gotObs))
	}
}
