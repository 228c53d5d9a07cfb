package insight

import (
	"math"
	"reflect"
	"testing"
	"time"

	"lunara/internal/types"
)

func makeObservations(pressure, humidity, pm []float64) []types.EnvironmentalObservation {
	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	out := make([]types.EnvironmentalObservation, len(pressure))
	for i := range out {
		out[i] = types.EnvironmentalObservation{
			Timestamp:       day.AddDate(0, 0, i),
			PressureHPa:     pressure[i],
			HumidityPercent: humidity[i],
			TemperatureC:    18,
			PM25:            pm[i],
		}
	}
	return out
}

func flatSeries(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestAnalyzeEnvironment_RequiresFivePairs(t *testing.T) {
	records := makeRecords(4, 3, 3, 3, 3)
	obs := makeObservations(flatSeries(4, 1010), flatSeries(4, 50), flatSeries(4, 10))
	if got := AnalyzeEnvironment(records, obs); len(got) != 0 {
		t.Errorf("expected no insights below 5 pairs, got %d", len(got))
	}
}

func TestAnalyzeEnvironment_PressureDropsDriveFlares(t *testing.T) {
	// Pressure deltas are exactly the negated hot-flash counts, so the
	// delta-series correlation is -1.
	pressure := []float64{1020, 1018, 1012, 1010, 1002, 1000}
	flashes := []int{0, 2, 6, 2, 8, 2}
	records := make([]types.SymptomRecord, len(flashes))
	for i, f := range flashes {
		records[i] = makeRecords(1, f, 3, 3, 3)[0]
	}
	obs := makeObservations(pressure, flatSeries(6, 50), flatSeries(6, 10))

	got := AnalyzeEnvironment(records, obs)
	if len(got) != 1 {
		t.Fatalf("expected exactly the pressure insight, got %d insights", len(got))
	}

	in := got[0]
	if in.Factor != types.FactorPressure {
		t.Fatalf("expected pressure factor, got %s", in.Factor)
	}
	if math.Abs(in.CorrelationCoefficient+1) > 1e-9 {
		t.Errorf("expected correlation -1, got %v", in.CorrelationCoefficient)
	}
	if in.Severity != types.SeverityHigh {
		t.Errorf("expected high severity, got %s", in.Severity)
	}
	if in.Forecast.Direction != types.OutlookWorse {
		t.Errorf("expected worse outlook, got %s", in.Forecast.Direction)
	}
	if in.ConfidencePercent != 100 {
		t.Errorf("expected confidence 100, got %d", in.ConfidencePercent)
	}
	if len(in.Recommendations) == 0 {
		t.Error("expected recommendations")
	}
}

func TestAnalyzeEnvironment_HumidityHurtsSleep(t *testing.T) {
	humidity := []float64{50, 60, 70, 80, 90}
	sleep := []int{5, 4, 3, 2, 1}
	records := make([]types.SymptomRecord, len(sleep))
	for i, s := range sleep {
		records[i] = makeRecords(1, 0, s, 3, 3)[0]
	}
	obs := makeObservations(flatSeries(5, 1013), humidity, flatSeries(5, 10))

	got := AnalyzeEnvironment(records, obs)
	if len(got) != 1 {
		t.Fatalf("expected exactly the humidity insight, got %d insights", len(got))
	}

	in := got[0]
	if in.Factor != types.FactorHumidity {
		t.Fatalf("expected humidity factor, got %s", in.Factor)
	}
	if math.Abs(in.CorrelationCoefficient+1) > 1e-9 {
		t.Errorf("expected correlation -1, got %v", in.CorrelationCoefficient)
	}
	// 2 of 5 days above 70% humidity (0.4 fraction) with r < -0.4.
	if in.Severity != types.SeverityHigh {
		t.Errorf("expected high severity, got %s", in.Severity)
	}
	if in.Forecast.Direction != types.OutlookWorse {
		t.Errorf("expected worse outlook, got %s", in.Forecast.Direction)
	}
}

func TestAnalyzeEnvironment_PoorAirWithoutCorrelation(t *testing.T) {
	// Constant PM2.5 yields zero correlation; the absolute level alone
	// clears the impact gate.
	records := makeRecords(5, 0, 3, 3, 3)
	obs := makeObservations(flatSeries(5, 1013), flatSeries(5, 50), flatSeries(5, 30))

	got := AnalyzeEnvironment(records, obs)
	if len(got) != 1 {
		t.Fatalf("expected exactly the air-quality insight, got %d insights", len(got))
	}

	in := got[0]
	if in.Factor != types.FactorAirQuality {
		t.Fatalf("expected air-quality factor, got %s", in.Factor)
	}
	if in.CorrelationCoefficient != 0 {
		t.Errorf("expected zero correlation, got %v", in.CorrelationCoefficient)
	}
	if in.Severity != types.SeverityMedium {
		t.Errorf("expected medium severity, got %s", in.Severity)
	}
}

func TestAnalyzeEnvironment_QuietConditionsNoInsights(t *testing.T) {
	records := makeRecords(7, 1, 4, 4, 4)
	obs := makeObservations(flatSeries(7, 1013), flatSeries(7, 50), flatSeries(7, 8))
	if got := AnalyzeEnvironment(records, obs); len(got) != 0 {
		t.Errorf("expected no insights for flat benign conditions, got %d", len(got))
	}
}

func TestAnalyzeEnvironment_TruncatesToShorterSequence(t *testing.T) {
	records := makeRecords(10, 1, 4, 4, 4)
	obs := makeObservations(flatSeries(6, 1013), flatSeries(6, 50), flatSeries(6, 8))
	// Must not panic and must treat only the aligned prefix.
	if got := AnalyzeEnvironment(records, obs); len(got) != 0 {
		t.Errorf("expected no insights, got %d", len(got))
	}
}

func TestAnalyzeEnvironment_Idempotent(t *testing.T) {
	pressure := []float64{1020, 1018, 1012, 1010, 1002, 1000}
	flashes := []int{0, 2, 6, 2, 8, 2}
	records := make([]types.SymptomRecord, len(flashes))
	for i, f := range flashes {
		records[i] = makeRecords(1, f, 3, 3, 3)[0]
	}
	obs := makeObservations(pressure, flatSeries(6, 50), flatSeries(6, 10))

	first := AnalyzeEnvironment(records, obs)
	second := AnalyzeEnvironment(records, obs)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated invocation diverged")
	}
}
