package service

import (
	"fmt"
	"math"
	"strconv"
	"study_coach_backend/internal/model"
)

// ShouldRemind 判断目标是否需要提醒
func ShouldRemind(goal *model.Goal, progress model.Progress) bool {
	if goal == nil || !goal.ReminderEnabled || progress.IsCompleted {
		return false
	}

	days, pct := progress.DaysRemaining, progress.Percentage
	switch {
	case days <= 0 && pct < 100:
		return true
	case days <= 1 && pct < 80:
		return true
	case days <= 2 && pct < 50:
		return true
	}
	return false
}

// ReminderMessage 生成提醒内容，无需提醒时返回 nil
func ReminderMessage(goal *model.Goal, progress model.Progress) *model.Reminder {
	if goal == nil {
		return nil
	}

	goalType, _ := model.ParseGoalType(string(goal.Type))
	unit := goalType.Unit()
	remaining := formatAmount(progress.Target - progress.Current)

	reminder := &model.Reminder{
		GoalID:   goal.ID,
		GoalName: goal.Name,
		Progress: progress,
	}

	switch {
	case progress.IsCompleted:
		reminder.Severity = model.SeveritySuccess
		reminder.Title = "Goal Completed!"
		reminder.Message = fmt.Sprintf("You've achieved your %s!", goal.Name)
	case progress.DaysRemaining <= 0:
		reminder.Severity = model.SeverityUrgent
		reminder.Title = "Last Day!"
		reminder.Message = fmt.Sprintf("Today is the last day to complete %s more %s!", remaining, unit)
	case progress.DaysRemaining <= 1:
		reminder.Severity = model.SeverityWarning
		reminder.Title = "Almost There!"
		reminder.Message = fmt.Sprintf("Only %d day left! You need %s more %s.", progress.DaysRemaining, remaining, unit)
	case progress.Percentage < 50 && progress.DaysRemaining <= 3:
		reminder.Severity = model.SeverityInfo
		reminder.Title = "Keep Going!"
		reminder.Message = fmt.Sprintf("%d days left. Complete %s more %s to reach your goal!", progress.DaysRemaining, remaining, unit)
	default:
		return nil
	}
	return reminder
}

func formatAmount(v float64) string {
	if v < 0 {
		v = 0
	}
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
