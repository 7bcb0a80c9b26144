package service

import (
	"study_coach_backend/internal/model"
	"study_coach_backend/internal/util"
	"time"
)

// ComputeStreak 计算截至今天或昨天的连续学习天数（UTC 日期，仅统计已完成分析的会话）
func ComputeStreak(sessions []model.Session, now time.Time) int {
	days := make(map[string]struct{})
	for _, s := range sessions {
		if !s.AnalysisComplete || s.Timestamp.IsZero() {
			continue
		}
		days[s.Timestamp.UTC().Format(util.DateFormat)] = struct{}{}
	}
	if len(days) == 0 {
		return 0
	}

	has := func(t time.Time) bool {
		_, ok := days[t.Format(util.DateFormat)]
		return ok
	}

	check := startOfDay(now)
	if !has(check) {
		check = check.AddDate(0, 0, -1)
		if !has(check) {
			return 0
		}
	}

	streak := 0
	for has(check) {
		streak++
		check = check.AddDate(0, 0, -1)
	}
	return streak
}
