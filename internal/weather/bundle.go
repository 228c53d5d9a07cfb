package weather

import (
	"context"
	"log/slog"
	"time"

	"lunara/internal/types"

	"golang.org/x/sync/errgroup"
)

// Provider is the read surface of the weather/air-quality provider. The
// concrete Client satisfies it; handlers and tests depend on this interface.
type Provider interface {
	Current(ctx context.Context, loc types.Location) (types.EnvironmentalObservation, error)
	History(ctx context.Context, loc types.Location, from, to time.Time) ([]types.EnvironmentalObservation, error)
	Forecast(ctx context.Context, loc types.Location) (types.ForecastSnapshot, error)
}

// Bundle is the resolved set of environmental inputs one engine invocation
// needs: present conditions, the daily history window, and tomorrow's
// forecast.
type Bundle struct {
	Current  types.EnvironmentalObservation
	History  []types.EnvironmentalObservation
	Forecast types.ForecastSnapshot
}

// Service fetches bundles from the provider, fanning the three calls out
// concurrently and consulting the snapshot cache first. A nil cache disables
// caching entirely.
type Service struct {
	provider Provider
	cache    *SnapshotCache
	logger   *slog.Logger
}

// NewService creates a bundle service. cache may be nil.
func NewService(provider Provider, cache *SnapshotCache, logger *slog.Logger) *Service {
	return &Service{provider: provider, cache: cache, logger: logger}
}

// FetchBundle resolves all three environmental inputs for a location
// concurrently. Any provider failure fails the whole bundle; cache failures
// are logged and treated as misses.
func (s *Service) FetchBundle(ctx context.Context, loc types.Location, from, to time.Time) (Bundle, error) {
	var bundle Bundle

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		current, err := s.provider.Current(gctx, loc)
		if err != nil {
			return err
		}
		bundle.Current = current
		return nil
	})

	g.Go(func() error {
		if cached, ok := s.cachedHistory(gctx, loc, from, to); ok {
			bundle.History = cached
			return nil
		}
		history, err := s.provider.History(gctx, loc, from, to)
		if err != nil {
			return err
		}
		bundle.History = history
		s.storeHistory(gctx, loc, from, to, history)
		return nil
	})

	g.Go(func() error {
		if cached, ok := s.cachedForecast(gctx, loc); ok {
			bundle.Forecast = cached
			return nil
		}
		forecast, err := s.provider.Forecast(gctx, loc)
		if err != nil {
			return err
		}
		bundle.Forecast = forecast
		s.storeForecast(gctx, loc, forecast)
		return nil
	})

	if err := g.Wait(); err != nil {
		return Bundle{}, err
	}
	return bundle, nil
}

func (s *Service) cachedHistory(ctx context.Context, loc types.Location, from, to time.Time) ([]types.EnvironmentalObservation, bool) {
	if s.cache == nil {
		return nil, false
	}
	history, ok, err := s.cache.GetHistory(ctx, loc, from, to)
	if err != nil {
		s.logger.WarnContext(ctx, "weather history cache read failed", "error", err)
		return nil, false
	}
	return history, ok
}

func (s *Service) storeHistory(ctx context.Context, loc types.Location, from, to time.Time, history []types.EnvironmentalObservation) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetHistory(ctx, loc, from, to, history); err != nil {
		s.logger.WarnContext(ctx, "weather history cache write failed", "error", err)
	}
}

func (s *Service) cachedForecast(ctx context.Context, loc types.Location) (types.ForecastSnapshot, bool) {
	if s.cache == nil {
		return types.ForecastSnapshot{}, false
	}
	forecast, ok, err := s.cache.GetForecast(ctx, loc)
	if err != nil {
		s.logger.WarnContext(ctx, "weather forecast cache read failed", "error", err)
		return types.ForecastSnapshot{}, false
	}
	return forecast, ok
}

func (s *Service) storeForecast(ctx context.Context, loc types.Location, forecast types.ForecastSnapshot) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetForecast(ctx, loc, forecast); err != nil {
		s.logger.WarnContext(ctx, "weather forecast cache write failed", "error", err)
	}
}

// AlignDaily pairs symptom records with observations sharing the same UTC
// calendar date, preserving record order. Days missing on either side are
// dropped, so the outputs always have equal length and index i on both
// sides refers to the same day.
func AlignDaily(records []types.SymptomRecord, observations []types.EnvironmentalObservation) ([]types.SymptomRecord, []types.EnvironmentalObservation) {
	byDay := make(map[string]types.EnvironmentalObservation, len(observations))
	for _, o := range observations {
		byDay[o.Timestamp.UTC().Format("2006-01-02")] = o
	}

	alignedRecords := make([]types.SymptomRecord, 0, len(records))
	alignedObs := make([]types.EnvironmentalObservation, 0, len(records))
	for _, r := range records {
		o, ok := byDay[r.Date.UTC().Format("2006-01-02")]
		if !ok {
			continue
		}
		alignedRecords = append(alignedRecords, r)
		alignedObs = append(alignedObs, o)
	}
	return alignedRecords, alignedObs
}
