package insight

import (
	"reflect"
	"strings"
	"testing"

	"lunara/internal/types"
)

func TestPredictTomorrow_NeutralBelowThreeRecords(t *testing.T) {
	got := PredictTomorrow(makeRecords(2, 3, 3, 3, 3), types.ForecastSnapshot{PressureHPa: 1013})
	for name, p := range map[string]types.CategoryPrediction{
		"hot flash": got.HotFlash,
		"sleep":     got.Sleep,
		"mood":      got.Mood,
		"headache":  got.Headache,
	} {
		if p.LikelihoodPercent != 50 {
			t.Errorf("%s: expected neutral likelihood 50, got %d", name, p.LikelihoodPercent)
		}
	}
	if got.ConfidencePercent != 30 {
		t.Errorf("expected neutral confidence 30, got %d", got.ConfidencePercent)
	}
}

func TestPredictTomorrow_LowPressureAdjustment(t *testing.T) {
	records := makeRecords(7, 2, 3, 3, 3)
	forecast := types.ForecastSnapshot{PressureHPa: 990, HumidityPercent: 50, TemperatureC: 20}

	got := PredictTomorrow(records, forecast)
	// Base 20 from two flashes a day, plus 25 for low pressure.
	if got.HotFlash.LikelihoodPercent != 45 {
		t.Errorf("expected hot-flash likelihood 45, got %d", got.HotFlash.LikelihoodPercent)
	}
	if got.Headache.LikelihoodPercent != 50 {
		t.Errorf("expected headache likelihood 50, got %d", got.Headache.LikelihoodPercent)
	}
	if !strings.Contains(got.ReasonText, "low atmospheric pressure") {
		t.Errorf("expected reason to mention low atmospheric pressure, got %q", got.ReasonText)
	}
}

func TestPredictTomorrow_HumidAndHotConditions(t *testing.T) {
	records := makeRecords(7, 0, 1, 3, 3)
	forecast := types.ForecastSnapshot{PressureHPa: 1015, HumidityPercent: 80, TemperatureC: 28}

	got := PredictTomorrow(records, forecast)
	// Sleep base (5-1)/5*100 = 80, +30 humidity, clamped to 100.
	if got.Sleep.LikelihoodPercent != 100 {
		t.Errorf("expected sleep likelihood clamped to 100, got %d", got.Sleep.LikelihoodPercent)
	}
	// Hot-flash base 0, +20 high temperature.
	if got.HotFlash.LikelihoodPercent != 20 {
		t.Errorf("expected hot-flash likelihood 20, got %d", got.HotFlash.LikelihoodPercent)
	}
	if !strings.Contains(got.ReasonText, "high humidity") {
		t.Errorf("expected reason to mention high humidity, got %q", got.ReasonText)
	}
	// Sleep risk above 60 must contribute preparation tips.
	if len(got.PreparationTips) == 0 {
		t.Fatal("expected preparation tips")
	}
}

func TestPredictTomorrow_ConfidenceScalesAndCaps(t *testing.T) {
	calm := types.ForecastSnapshot{PressureHPa: 1015, HumidityPercent: 50, TemperatureC: 20}

	got := PredictTomorrow(makeRecords(7, 1, 4, 4, 4), calm)
	if got.ConfidencePercent != 54 {
		t.Errorf("expected confidence 54 for 7 records, got %d", got.ConfidencePercent)
	}

	got = PredictTomorrow(makeRecords(30, 1, 4, 4, 4), calm)
	if got.ConfidencePercent != 90 {
		t.Errorf("expected confidence capped at 90, got %d", got.ConfidencePercent)
	}
}

func TestPredictTomorrow_FavorableConditionsSingleTip(t *testing.T) {
	records := makeRecords(7, 0, 5, 5, 5)
	calm := types.ForecastSnapshot{PressureHPa: 1015, HumidityPercent: 50, TemperatureC: 20}

	got := PredictTomorrow(records, calm)
	if len(got.PreparationTips) != 1 {
		t.Fatalf("expected exactly one favorable tip, got %d", len(got.PreparationTips))
	}
}

func TestPredictTomorrow_Idempotent(t *testing.T) {
	records := makeRecords(7, 3, 2, 2, 2)
	forecast := types.ForecastSnapshot{PressureHPa: 995, HumidityPercent: 75, TemperatureC: 27}
	first := PredictTomorrow(records, forecast)
	second := PredictTomorrow(records, forecast)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated invocation diverged")
	}
}
