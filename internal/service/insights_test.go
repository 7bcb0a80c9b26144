package service

import (
	"strings"
	"study_coach_backend/internal/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeInsightsCategoryMean(t *testing.T) {
	sessions := []model.Session{
		scoredSession("foundation", 90, daysAgo(0)),
		scoredSession("foundation", 80, daysAgo(1)),
		scoredSession("foundation", 70, daysAgo(2)),
	}

	insights := ComputeInsights(sessions, testNow)
	require.Len(t, insights.CategoryMastery, 1)
	assert.Equal(t, model.CategoryMastery{Category: "foundation", Mastery: 80, Count: 3}, insights.CategoryMastery[0])
	assert.Equal(t, 3, insights.ValidSessions)
	assert.Equal(t, "foundation", insights.MostFrequentConfusion.Category)
	assert.Equal(t, "Foundation", insights.MostFrequentConfusion.Label)
	assert.Equal(t, 100, insights.MostFrequentConfusion.Percentage)
	assert.Equal(t, 80, insights.StrongestArea.Mastery)
	assert.Equal(t, 80, insights.GrowthOpportunity.Mastery)
}

func TestComputeInsightsFiltersInvalidSessions(t *testing.T) {
	sessions := []model.Session{
		scoredSession("concept_gap", 40, daysAgo(0)),
		scoredSession("Unknown", 99, daysAgo(0)),
		scoredSession("UNKNOWN", 99, daysAgo(0)),
		scoredSession("", 99, daysAgo(0)),
		{Timestamp: daysAgo(0), AnalysisComplete: true, ConfusionType: strPtr("procedural")},
		{Timestamp: daysAgo(0), ConfusionType: strPtr("procedural"), MasteryScore: floatPtr(99)},
		{Timestamp: daysAgo(0), AnalysisComplete: true, MasteryScore: floatPtr(99)},
	}

	insights := ComputeInsights(sessions, testNow)
	assert.Equal(t, 1, insights.ValidSessions)
	assert.Equal(t, "concept_gap", insights.StrongestArea.Category)
	assert.Equal(t, 40, insights.StrongestArea.Mastery)
	assert.Equal(t, "Concept Gap", insights.StrongestArea.Label)
}

func TestComputeInsightsTieBreakFirstEncountered(t *testing.T) {
	sessions := []model.Session{
		scoredSession("procedural", 60, daysAgo(0)),
		scoredSession("foundation", 60, daysAgo(0)),
		scoredSession("procedural", 60, daysAgo(1)),
		scoredSession("foundation", 60, daysAgo(1)),
	}

	insights := ComputeInsights(sessions, testNow)
	assert.Equal(t, "procedural", insights.MostFrequentConfusion.Category)
	assert.Equal(t, 50, insights.MostFrequentConfusion.Percentage)
	assert.Equal(t, "procedural", insights.StrongestArea.Category)
	assert.Equal(t, "procedural", insights.GrowthOpportunity.Category)
}

func TestComputeInsightsStrongestAndWeakest(t *testing.T) {
	sessions := []model.Session{
		scoredSession("procedural", 50, daysAgo(0)),
		scoredSession("foundation", 90, daysAgo(0)),
		scoredSession("misconception", 30, daysAgo(0)),
		scoredSession("misconception", 41, daysAgo(1)),
	}

	insights := ComputeInsights(sessions, testNow)
	assert.Equal(t, "misconception", insights.MostFrequentConfusion.Category)
	assert.Equal(t, "foundation", insights.StrongestArea.Category)
	assert.Equal(t, 90, insights.StrongestArea.Mastery)
	assert.Equal(t, "misconception", insights.GrowthOpportunity.Category)
	assert.Equal(t, 36, insights.GrowthOpportunity.Mastery)
	assert.Contains(t, insights.GrowthOpportunity.Message, "36% mastery")
}

func TestComputeInsightsConcepts(t *testing.T) {
	longText := strings.Repeat("a", 47) + "   xyz"
	mk := func(text, pdf string, score float64) model.Session {
		s := scoredSession("foundation", score, testNow)
		s.FullSelectedText = text
		s.PDFName = pdf
		return s
	}
	sessions := []model.Session{
		mk("Derivatives", "", 20),
		mk("Integrals", "", 90),
		mk("", "calculus.pdf", 50),
		mk("", "", 70),
		mk("Derivatives", "", 40),
		mk(longText, "", 60),
	}

	insights := ComputeInsights(sessions, testNow)

	require.Len(t, insights.FocusConcepts, 3)
	assert.Equal(t, model.ConceptMastery{Concept: "Derivatives", Mastery: 30, Attempts: 2}, insights.FocusConcepts[0])
	assert.Equal(t, "calculus.pdf", insights.FocusConcepts[1].Concept)
	assert.Equal(t, strings.Repeat("a", 47), insights.FocusConcepts[2].Concept)

	require.Len(t, insights.RecentWins, 3)
	assert.Equal(t, "Integrals", insights.RecentWins[0].Concept)
	assert.Equal(t, "Unknown Concept", insights.RecentWins[1].Concept)
	assert.Equal(t, 60, insights.RecentWins[2].Mastery)
}

func TestComputeInsightsTrend(t *testing.T) {
	build := func(scores ...float64) []model.Session {
		var sessions []model.Session
		for i, score := range scores {
			sessions = append(sessions, scoredSession("foundation", score, testNow.Add(-time.Duration(i)*time.Hour)))
		}
		return sessions
	}

	assert.Equal(t, model.TrendSteady, ComputeInsights(build(), testNow).LearningTrend.Trend)
	assert.Equal(t, model.TrendSteady, ComputeInsights(build(90), testNow).LearningTrend.Trend)

	up := ComputeInsights(build(90, 85, 80, 60, 60, 60, 0), testNow).LearningTrend
	assert.Equal(t, model.TrendUp, up.Trend)
	assert.InDelta(t, 85, up.RecentAverage, 0.001)
	assert.InDelta(t, 60, up.PreviousAverage, 0.001)

	assert.Equal(t, model.TrendDown, ComputeInsights(build(50, 60, 70, 90), testNow).LearningTrend.Trend)
	// 不足 4 条时前一个窗口为空
	assert.Equal(t, model.TrendSteady, ComputeInsights(build(95, 90, 10), testNow).LearningTrend.Trend)
	assert.Equal(t, model.TrendSteady, ComputeInsights(build(65, 65, 65, 60), testNow).LearningTrend.Trend)
	assert.Equal(t, model.TrendUp, ComputeInsights(build(66, 66, 66, 60), testNow).LearningTrend.Trend)
}

func TestComputeInsightsTrendSortsByTimestamp(t *testing.T) {
	sessions := []model.Session{
		scoredSession("foundation", 40, daysAgo(5)),
		scoredSession("foundation", 95, daysAgo(0)),
		scoredSession("foundation", 95, daysAgo(1)),
		scoredSession("foundation", 95, daysAgo(2)),
	}
	assert.Equal(t, model.TrendUp, ComputeInsights(sessions, testNow).LearningTrend.Trend)
}

func TestComputeInsightsMomentumUsesAllSessions(t *testing.T) {
	sessions := []model.Session{
		{Timestamp: daysAgo(1), TimeSpent: 45},
		{Timestamp: daysAgo(6), TimeSpent: 20, AnalysisComplete: true},
		{Timestamp: daysAgo(8), TimeSpent: 30},
		{TimeSpent: 5},
	}

	insights := ComputeInsights(sessions, testNow)
	assert.Equal(t, 0, insights.ValidSessions)
	assert.Equal(t, "No data yet", insights.StrongestArea.Label)
	assert.Equal(t, 65, insights.StudyMomentum.WeekTime)
	assert.Equal(t, 100, insights.StudyMomentum.TotalTime)
	assert.Contains(t, insights.StudyMomentum.Message, "1h 5m")
	assert.Equal(t, model.TrendSteady, insights.LearningTrend.Trend)
}

func TestComputeInsightsEmpty(t *testing.T) {
	insights := ComputeInsights(nil, testNow)
	assert.Equal(t, "No data yet", insights.MostFrequentConfusion.Label)
	assert.Empty(t, insights.FocusConcepts)
	assert.NotNil(t, insights.RecentWins)
	assert.Equal(t, "Start your first session!", insights.StudyMomentum.Message)
}

func TestFormatConfusionType(t *testing.T) {
	cases := map[string]string{
		"foundation":        "Foundation",
		"concept_gap":       "Concept Gap",
		"proceduralError":   "Procedural Error",
		"MISCONCEPTION":     "M I S C O N C E P T I O N",
		"unknown":           "Unknown",
		"":                  "Unknown",
		"prior__knowledge_": "Prior Knowledge",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatConfusionType(in), in)
	}
}

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "0 minutes", formatTime(0))
	assert.Equal(t, "1 minute", formatTime(1))
	assert.Equal(t, "45 minutes", formatTime(45))
	assert.Equal(t, "1h", formatTime(60))
	assert.Equal(t, "2h 5m", formatTime(125))
}
