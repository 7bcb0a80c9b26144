package service

import (
	"study_coach_backend/internal/model"
	"time"
)

// 2024-05-15 是周三
var testNow = time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)

func daysAgo(n int) time.Time {
	return testNow.AddDate(0, 0, -n)
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func completedSession(at time.Time) model.Session {
	return model.Session{Timestamp: at, AnalysisComplete: true}
}

func scoredSession(category string, score float64, at time.Time) model.Session {
	return model.Session{
		Timestamp:        at,
		AnalysisComplete: true,
		ConfusionType:    strPtr(category),
		MasteryScore:     floatPtr(score),
	}
}
