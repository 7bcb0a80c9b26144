package service

import (
	"fmt"
	"math"
	"study_coach_backend/internal/model"
	"study_coach_backend/internal/util"
	"time"

	"github.com/samber/lo"
)

// InvalidGoalError 目标定义不合法（目标值、类型或周期）
type InvalidGoalError struct {
	Field  string
	Reason string
}

func (e *InvalidGoalError) Error() string {
	return fmt.Sprintf("invalid goal %s: %s", e.Field, e.Reason)
}

func (e *InvalidGoalError) Unwrap() error {
	return util.ErrInvalidGoal
}

// ValidateGoal 校验目标定义，旧版类型名称视为合法
func ValidateGoal(goal *model.Goal) error {
	if goal == nil {
		return &InvalidGoalError{Field: "goal", Reason: "missing"}
	}
	if math.IsNaN(goal.Target) || math.IsInf(goal.Target, 0) || goal.Target <= 0 {
		return &InvalidGoalError{Field: "target", Reason: "must be a positive number"}
	}
	if _, ok := model.ParseGoalType(string(goal.Type)); !ok {
		return &InvalidGoalError{Field: "type", Reason: fmt.Sprintf("unknown type %q", goal.Type)}
	}
	if _, ok := model.ParseGoalPeriod(string(goal.Period)); !ok {
		return &InvalidGoalError{Field: "period", Reason: fmt.Sprintf("unknown period %q", goal.Period)}
	}
	return nil
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// PeriodBounds 计算包含参考时间的周期窗口 [start, end)，全部按 UTC 计算。
// 参考时间取 now 与 startDate 中较晚者；目标在窗口内开始时，start 提升到 startDate。
func PeriodBounds(period model.GoalPeriod, startDate *time.Time, now time.Time) (time.Time, time.Time, error) {
	p, ok := model.ParseGoalPeriod(string(period))
	if !ok {
		return time.Time{}, time.Time{}, &InvalidGoalError{Field: "period", Reason: fmt.Sprintf("unknown period %q", period)}
	}

	ref := now.UTC()
	if startDate != nil && !startDate.IsZero() && startDate.After(ref) {
		ref = startDate.UTC()
	}

	day := startOfDay(ref)
	var start, end time.Time
	switch p {
	case model.PeriodDaily:
		start = day
		end = day.AddDate(0, 0, 1)
	case model.PeriodWeekly:
		// 周一为一周的第一天
		offset := (int(day.Weekday()) + 6) % 7
		start = day.AddDate(0, 0, -offset)
		end = start.AddDate(0, 0, 7)
	case model.PeriodMonthly:
		start = time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(0, 1, 0)
	}

	if startDate != nil && !startDate.IsZero() && startDate.UTC().After(start) {
		start = startDate.UTC()
	}
	return start, end, nil
}

func inWindow(t, start, end time.Time) bool {
	return !t.IsZero() && !t.Before(start) && t.Before(end)
}

// ComputeProgress 计算目标在当前周期内的进度
func ComputeProgress(goal *model.Goal, sessions []model.Session, now time.Time) (model.Progress, error) {
	if err := ValidateGoal(goal); err != nil {
		return model.Progress{}, err
	}
	goalType, _ := model.ParseGoalType(string(goal.Type))

	start, end, err := PeriodBounds(goal.Period, goal.StartDate, now)
	if err != nil {
		return model.Progress{}, err
	}

	inPeriod := lo.Filter(sessions, func(s model.Session, _ int) bool {
		return inWindow(s.Timestamp, start, end)
	})

	var current float64
	switch goalType {
	case model.GoalSessionCount:
		current = float64(lo.CountBy(inPeriod, func(s model.Session) bool {
			return s.AnalysisComplete
		}))
	case model.GoalTimeMinutes:
		current = float64(lo.SumBy(inPeriod, func(s model.Session) int {
			return max(s.TimeSpent, 0)
		}))
	case model.GoalAverageMastery:
		scored := lo.Filter(inPeriod, func(s model.Session, _ int) bool {
			return s.MasteryScore != nil
		})
		if len(scored) > 0 {
			sum := lo.SumBy(scored, func(s model.Session) float64 { return *s.MasteryScore })
			current = math.Round(sum / float64(len(scored)))
		}
	case model.GoalDayStreak:
		current = float64(ComputeStreak(sessions, now))
	}

	percentage := int(math.Min(100, math.Round(current/goal.Target*100)))
	daysRemaining := int(math.Ceil(end.Sub(now).Hours() / 24))

	return model.Progress{
		Current:       current,
		Target:        goal.Target,
		Percentage:    percentage,
		IsCompleted:   current >= goal.Target,
		DaysRemaining: max(0, daysRemaining),
		PeriodStart:   start,
		PeriodEnd:     end,
	}, nil
}
