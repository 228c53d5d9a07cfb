package insight

import (
	"fmt"
	"math"

	"lunara/internal/types"
)

// GenerateInsights runs the fixed rule set over a record window plus the
// user's profile and returns the insights that fired, in rule order. Each
// rule fires at most once per invocation; there is no re-ranking or
// deduplication beyond that. IDs are stable per rule so repeated invocations
// over the same snapshot produce identical output.
func GenerateInsights(records []types.SymptomRecord, profile types.UserProfile) []types.Insight {
	insights := make([]types.Insight, 0, 5)

	if in, ok := detectHotFlashPattern(records); ok {
		insights = append(insights, in)
	}
	if in, ok := detectPoorSleepStreak(records); ok {
		insights = append(insights, in)
	}
	if in, ok := detectMoodSymptomLink(records); ok {
		insights = append(insights, in)
	}
	if in, ok := detectPositiveMoodStreak(records); ok {
		insights = append(insights, in)
	}
	if in, ok := detectPhaseRecommendation(profile); ok {
		insights = append(insights, in)
	}

	return insights
}

// detectHotFlashPattern fires when hot flashes occurred on more than 60% of
// logged days.
func detectHotFlashPattern(records []types.SymptomRecord) (types.Insight, bool) {
	if len(records) == 0 {
		return types.Insight{}, false
	}
	days := 0
	for _, r := range records {
		if r.HotFlashCount > 0 {
			days++
		}
	}
	fraction := float64(days) / float64(len(records))
	if fraction <= HotFlashDayFractionGate {
		return types.Insight{}, false
	}

	return types.Insight{
		ID:                "hot-flash-pattern",
		Kind:              types.InsightPattern,
		Priority:          types.PriorityHigh,
		Title:             "Frequent hot flashes detected",
		Description:       fmt.Sprintf("You reported hot flashes on %d of %d logged days. Identifying your triggers can reduce how often they strike.", days, len(records)),
		ConfidencePercent: 85,
		Actions: []string{
			"Keep a trigger diary alongside your daily log",
			"Review caffeine, alcohol, and spicy food intake",
			"Discuss the pattern with your clinician if it persists",
		},
	}, true
}

// detectPoorSleepStreak fires when more than 3 records in the window report
// sleep quality of 2 or lower.
func detectPoorSleepStreak(records []types.SymptomRecord) (types.Insight, bool) {
	poor := 0
	for _, r := range records {
		if r.SleepQuality <= PoorSleepQuality {
			poor++
		}
	}
	if poor <= PoorSleepCountGate {
		return types.Insight{}, false
	}

	return types.Insight{
		ID:                "sleep-quality-decline",
		Kind:              types.InsightPattern,
		Priority:          types.PriorityHigh,
		Title:             "Sleep quality needs attention",
		Description:       fmt.Sprintf("%d days in this period had poor sleep. Small routine changes often pay off within a week.", poor),
		ConfidencePercent: 78,
		Actions: []string{
			"Keep a consistent bedtime, including weekends",
			"Cool the bedroom and remove screens an hour before bed",
			"Limit caffeine to the morning",
		},
	}, true
}

// detectMoodSymptomLink correlates mood against hot-flash counts and fires
// on a strong association in either direction.
func detectMoodSymptomLink(records []types.SymptomRecord) (types.Insight, bool) {
	r := Correlate(moodSeries(records), hotFlashSeries(records))
	if math.Abs(r) <= MoodCorrGate {
		return types.Insight{}, false
	}

	return types.Insight{
		ID:                "mood-symptom-link",
		Kind:              types.InsightCorrelation,
		Priority:          types.PriorityMedium,
		Title:             "Your mood and hot flashes move together",
		Description:       "Your logs show a strong link between mood and hot-flash frequency. Managing one may ease the other.",
		ConfidencePercent: 72,
		Actions: []string{
			"Try a brief relaxation exercise when a flash begins",
			"Note your mood at the time of each episode",
		},
	}, true
}

// detectPositiveMoodStreak fires when at least 5 of the last 7 records show
// a good mood, and carries the improving trend label.
func detectPositiveMoodStreak(records []types.SymptomRecord) (types.Insight, bool) {
	recent := records
	if len(recent) > Week {
		recent = recent[len(recent)-Week:]
	}
	good := 0
	for _, r := range recent {
		if r.MoodOverall >= GoodMoodLevel {
			good++
		}
	}
	if good < GoodMoodDayGate {
		return types.Insight{}, false
	}

	return types.Insight{
		ID:                "positive-mood-streak",
		Kind:              types.InsightAchievement,
		Priority:          types.PriorityLow,
		Title:             "Great week for your mood",
		Description:       fmt.Sprintf("Your mood was good on %d of the last %d days. Whatever you're doing, it's working.", good, len(recent)),
		ConfidencePercent: 90,
		Actions: []string{
			"Note what went well this week so you can repeat it",
		},
		Trend: types.TrendImproving,
	}, true
}

// detectPhaseRecommendation fires for post-menopausal users. It reads the
// onboarding profile, not raw symptom data.
func detectPhaseRecommendation(profile types.UserProfile) (types.Insight, bool) {
	if profile.MenopausePhase != types.PhasePost {
		return types.Insight{}, false
	}

	return types.Insight{
		ID:                "post-menopause-care",
		Kind:              types.InsightRecommendation,
		Priority:          types.PriorityMedium,
		Title:             "Post-menopause health priorities",
		Description:       "After menopause, bone and heart health deserve extra attention. A few habits go a long way.",
		ConfidencePercent: 88,
		Actions: []string{
			"Include weight-bearing exercise two to three times a week",
			"Check calcium and vitamin D intake with your clinician",
			"Schedule regular cardiovascular checkups",
		},
	}, true
}
