package model

import "time"

// Progress 目标在当前周期内的进度，每次查询时重新计算，不做持久化
type Progress struct {
	Current       float64   `json:"current"`
	Target        float64   `json:"target"`
	Percentage    int       `json:"percentage"`
	IsCompleted   bool      `json:"isCompleted"`
	DaysRemaining int       `json:"daysRemaining"`
	PeriodStart   time.Time `json:"periodStart"`
	PeriodEnd     time.Time `json:"periodEnd"`
}

type ReminderSeverity string

const (
	SeveritySuccess ReminderSeverity = "success"
	SeverityUrgent  ReminderSeverity = "urgent"
	SeverityWarning ReminderSeverity = "warning"
	SeverityInfo    ReminderSeverity = "info"
)

// Reminder 目标提醒
type Reminder struct {
	GoalID   string           `json:"goalId"`
	GoalName string           `json:"goalName"`
	Severity ReminderSeverity `json:"type"`
	Title    string           `json:"title"`
	Message  string           `json:"message"`
	Progress Progress         `json:"progress"`
}

// GoalWithProgress 目标及其当前进度
type GoalWithProgress struct {
	Goal
	Progress Progress `json:"progress"`
}
