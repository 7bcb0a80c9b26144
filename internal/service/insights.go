package service

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"
	"study_coach_backend/internal/model"
	"time"
	"unicode"

	"github.com/samber/lo"
)

const (
	noDataLabel     = "No data yet"
	unknownConcept  = "Unknown Concept"
	conceptNameLen  = 50
	insightListSize = 3
	trendWindow     = 3
	trendThreshold  = 5.0
	momentumWindow  = 7 * 24 * time.Hour
)

// 同时满足：已完成分析、有掌握度、困惑类型非空且不是 unknown
func isInsightSession(s model.Session) bool {
	if !s.AnalysisComplete || s.MasteryScore == nil || s.ConfusionType == nil {
		return false
	}
	c := strings.TrimSpace(*s.ConfusionType)
	return c != "" && !strings.EqualFold(c, "unknown")
}

// 按首次出现的顺序分组累加
type masteryGroup struct {
	keys  []string
	sum   map[string]float64
	count map[string]int
}

func newMasteryGroup() *masteryGroup {
	return &masteryGroup{sum: make(map[string]float64), count: make(map[string]int)}
}

func (g *masteryGroup) add(key string, score float64) {
	if _, ok := g.count[key]; !ok {
		g.keys = append(g.keys, key)
	}
	g.sum[key] += score
	g.count[key]++
}

func (g *masteryGroup) mean(key string) int {
	return int(math.Round(g.sum[key] / float64(g.count[key])))
}

// ComputeInsights 基于会话历史计算描述性统计。
// 并列时取先出现者；学习时长统计覆盖全部会话，其余统计只看有效会话。
func ComputeInsights(sessions []model.Session, now time.Time) model.Insights {
	momentum := computeMomentum(sessions, now)

	valid := lo.Filter(sessions, func(s model.Session, _ int) bool {
		return isInsightSession(s)
	})
	if len(valid) == 0 {
		insights := emptyInsights()
		insights.StudyMomentum = momentum
		return insights
	}

	categories := newMasteryGroup()
	concepts := newMasteryGroup()
	for _, s := range valid {
		categories.add(*s.ConfusionType, *s.MasteryScore)
		concepts.add(conceptName(s), *s.MasteryScore)
	}

	mostFrequent := categories.keys[0]
	strongest, weakest := categories.keys[0], categories.keys[0]
	for _, key := range categories.keys[1:] {
		if categories.count[key] > categories.count[mostFrequent] {
			mostFrequent = key
		}
		if categories.mean(key) > categories.mean(strongest) {
			strongest = key
		}
		if categories.mean(key) < categories.mean(weakest) {
			weakest = key
		}
	}

	frequency := int(math.Round(float64(categories.count[mostFrequent]) / float64(len(valid)) * 100))
	strongestMastery := categories.mean(strongest)
	weakestMastery := categories.mean(weakest)

	categoryMastery := lo.Map(categories.keys, func(key string, _ int) model.CategoryMastery {
		return model.CategoryMastery{Category: key, Mastery: categories.mean(key), Count: categories.count[key]}
	})

	conceptAverages := lo.Map(concepts.keys, func(key string, _ int) model.ConceptMastery {
		return model.ConceptMastery{Concept: key, Mastery: concepts.mean(key), Attempts: concepts.count[key]}
	})

	focus := slices.Clone(conceptAverages)
	slices.SortStableFunc(focus, func(a, b model.ConceptMastery) int {
		return cmp.Compare(a.Mastery, b.Mastery)
	})
	wins := slices.Clone(conceptAverages)
	slices.SortStableFunc(wins, func(a, b model.ConceptMastery) int {
		return cmp.Compare(b.Mastery, a.Mastery)
	})

	return model.Insights{
		ValidSessions: len(valid),
		MostFrequentConfusion: model.CategoryInsight{
			Category:   mostFrequent,
			Label:      formatConfusionType(mostFrequent),
			Percentage: frequency,
			Mastery:    categories.mean(mostFrequent),
			Message: fmt.Sprintf("%s shows up in %d%% of your sessions. A quick refresher on the foundations could unlock a breakthrough.",
				formatConfusionType(mostFrequent), frequency),
		},
		StrongestArea: model.CategoryInsight{
			Category: strongest,
			Label:    formatConfusionType(strongest),
			Mastery:  strongestMastery,
			Message: fmt.Sprintf("%s mastery averages %d%%, an incredible foundation to build on. Consider exploring advanced topics here!",
				formatConfusionType(strongest), strongestMastery),
		},
		GrowthOpportunity: model.CategoryInsight{
			Category: weakest,
			Label:    formatConfusionType(weakest),
			Mastery:  weakestMastery,
			Message: fmt.Sprintf("%s sits at about %d%% mastery. A little targeted practice will level this up quickly.",
				formatConfusionType(weakest), weakestMastery),
		},
		CategoryMastery: categoryMastery,
		FocusConcepts:   focus[:min(insightListSize, len(focus))],
		RecentWins:      wins[:min(insightListSize, len(wins))],
		StudyMomentum:   momentum,
		LearningTrend:   computeTrend(valid),
	}
}

func emptyInsights() model.Insights {
	return model.Insights{
		MostFrequentConfusion: model.CategoryInsight{
			Label:   noDataLabel,
			Message: "Start studying to see patterns!",
		},
		StrongestArea: model.CategoryInsight{
			Label:   noDataLabel,
			Message: "Complete sessions to discover your strengths!",
		},
		GrowthOpportunity: model.CategoryInsight{
			Label:   noDataLabel,
			Message: "Keep learning to identify growth areas!",
		},
		CategoryMastery: []model.CategoryMastery{},
		FocusConcepts:   []model.ConceptMastery{},
		RecentWins:      []model.ConceptMastery{},
		LearningTrend: model.LearningTrend{
			Trend:   model.TrendSteady,
			Message: "Build momentum with consistent practice!",
		},
	}
}

func computeMomentum(sessions []model.Session, now time.Time) model.StudyMomentum {
	weekAgo := now.Add(-momentumWindow)
	weekTime := lo.SumBy(sessions, func(s model.Session) int {
		if s.Timestamp.IsZero() || s.Timestamp.Before(weekAgo) {
			return 0
		}
		return max(s.TimeSpent, 0)
	})
	totalTime := lo.SumBy(sessions, func(s model.Session) int {
		return max(s.TimeSpent, 0)
	})

	var message string
	switch {
	case weekTime > 0:
		message = fmt.Sprintf("You've invested %s of focused study in the past week, and that consistency is paying off.", formatTime(weekTime))
	case totalTime > 0:
		message = fmt.Sprintf("You've logged %s of focused study overall. Every session builds momentum.", formatTime(totalTime))
	default:
		message = "Start your first session!"
	}
	return model.StudyMomentum{WeekTime: weekTime, TotalTime: totalTime, Message: message}
}

// 最近 3 次与之前 3 次有效会话的平均掌握度对比，差值超过 5 分才算变化
func computeTrend(valid []model.Session) model.LearningTrend {
	sorted := slices.Clone(valid)
	slices.SortStableFunc(sorted, func(a, b model.Session) int {
		return b.Timestamp.Compare(a.Timestamp)
	})

	recentCount := min(trendWindow, len(sorted))
	previousCount := min(trendWindow, len(sorted)-recentCount)

	result := model.LearningTrend{Trend: model.TrendSteady}
	if recentCount > 0 && previousCount > 0 {
		avg := func(list []model.Session) float64 {
			return lo.SumBy(list, func(s model.Session) float64 { return *s.MasteryScore }) / float64(len(list))
		}
		result.RecentAverage = avg(sorted[:recentCount])
		result.PreviousAverage = avg(sorted[recentCount : recentCount+previousCount])

		switch {
		case result.RecentAverage > result.PreviousAverage+trendThreshold:
			result.Trend = model.TrendUp
		case result.RecentAverage < result.PreviousAverage-trendThreshold:
			result.Trend = model.TrendDown
		}
	}

	switch result.Trend {
	case model.TrendUp:
		result.Message = "Your mastery is trending upward this week. Keep riding that wave with another focused session!"
	case model.TrendDown:
		result.Message = "Mastery dipped slightly recently. Revisiting earlier wins can help you bounce back quickly."
	default:
		result.Message = "Your learning pace is steady. A small stretch goal could help unlock the next breakthrough."
	}
	return result
}

// conceptName 取完整选中文本的前 50 个字符，没有文本时使用文档名
func conceptName(s model.Session) string {
	if text := strings.TrimSpace(s.FullSelectedText); text != "" {
		runes := []rune(text)
		if len(runes) > conceptNameLen {
			runes = runes[:conceptNameLen]
		}
		return strings.TrimSpace(string(runes))
	}
	if name := strings.TrimSpace(s.PDFName); name != "" {
		return name
	}
	return unknownConcept
}

// formatConfusionType 把 snake_case / camelCase 转成 Title Case
func formatConfusionType(category string) string {
	if category == "" || strings.EqualFold(category, "unknown") {
		return "Unknown"
	}

	var b strings.Builder
	for _, r := range category {
		switch {
		case r == '_':
			b.WriteRune(' ')
		case unicode.IsUpper(r):
			b.WriteRune(' ')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}

	words := strings.Fields(b.String())
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// formatTime 分钟数格式化为 "1h 5m" 或 "25 minutes"
func formatTime(minutes int) string {
	if minutes <= 0 {
		return "0 minutes"
	}
	hours, mins := minutes/60, minutes%60
	if hours > 0 {
		if mins > 0 {
			return fmt.Sprintf("%dh %dm", hours, mins)
		}
		return fmt.Sprintf("%dh", hours)
	}
	if mins == 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", mins)
}
