package model

type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendSteady Trend = "steady"
)

// CategoryInsight 某个困惑类型的统计结果
type CategoryInsight struct {
	Category   string `json:"category"`
	Label      string `json:"type"`
	Percentage int    `json:"percentage,omitempty"`
	Mastery    int    `json:"mastery"`
	Message    string `json:"message"`
}

// CategoryMastery 按困惑类型分组的平均掌握度
type CategoryMastery struct {
	Category string `json:"category"`
	Mastery  int    `json:"mastery"`
	Count    int    `json:"count"`
}

// ConceptMastery 按概念分组的平均掌握度
type ConceptMastery struct {
	Concept  string `json:"concept"`
	Mastery  int    `json:"mastery"`
	Attempts int    `json:"attempts"`
}

type StudyMomentum struct {
	WeekTime  int    `json:"weekTime"`
	TotalTime int    `json:"totalTime"`
	Message   string `json:"message"`
}

type LearningTrend struct {
	Trend           Trend   `json:"trend"`
	RecentAverage   float64 `json:"recentAverage"`
	PreviousAverage float64 `json:"previousAverage"`
	Message         string  `json:"message"`
}

// Insights 基于历史会话的描述性分析
type Insights struct {
	ValidSessions         int               `json:"validSessions"`
	MostFrequentConfusion CategoryInsight   `json:"mostFrequentConfusion"`
	StrongestArea         CategoryInsight   `json:"strongestArea"`
	GrowthOpportunity     CategoryInsight   `json:"growthOpportunity"`
	CategoryMastery       []CategoryMastery `json:"categoryMastery"`
	FocusConcepts         []ConceptMastery  `json:"focusConcepts"`
	RecentWins            []ConceptMastery  `json:"recentWins"`
	StudyMomentum         StudyMomentum     `json:"studyMomentum"`
	LearningTrend         LearningTrend     `json:"learningTrend"`
}
