package model

import (
	"strings"
	"time"
)

type GoalType string

const (
	GoalSessionCount   GoalType = "sessionCount"
	GoalTimeMinutes    GoalType = "timeMinutes"
	GoalAverageMastery GoalType = "averageMastery"
	GoalDayStreak      GoalType = "dayStreak"
)

type GoalPeriod string

const (
	PeriodDaily   GoalPeriod = "daily"
	PeriodWeekly  GoalPeriod = "weekly"
	PeriodMonthly GoalPeriod = "monthly"
)

// 旧版客户端使用的目标类型名称
var legacyGoalTypes = map[string]GoalType{
	"sessions": GoalSessionCount,
	"time":     GoalTimeMinutes,
	"mastery":  GoalAverageMastery,
	"streak":   GoalDayStreak,
}

// ParseGoalType 解析目标类型，兼容旧版名称
func ParseGoalType(s string) (GoalType, bool) {
	switch t := GoalType(strings.TrimSpace(s)); t {
	case GoalSessionCount, GoalTimeMinutes, GoalAverageMastery, GoalDayStreak:
		return t, true
	}
	t, ok := legacyGoalTypes[strings.ToLower(strings.TrimSpace(s))]
	return t, ok
}

// ParseGoalPeriod 解析目标周期
func ParseGoalPeriod(s string) (GoalPeriod, bool) {
	switch p := GoalPeriod(strings.ToLower(strings.TrimSpace(s))); p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly:
		return p, true
	}
	return "", false
}

// Unit 返回目标类型对应的计量单位
func (t GoalType) Unit() string {
	switch t {
	case GoalSessionCount:
		return "sessions"
	case GoalTimeMinutes:
		return "minutes"
	case GoalAverageMastery:
		return "points"
	case GoalDayStreak:
		return "days"
	}
	return "units"
}

// Goal 用户设定的学习目标
// swagger:model Goal
type Goal struct {
	UUIDBase
	UserID          uint       `gorm:"index;not null" json:"userId"`
	Name            string     `gorm:"size:255;not null" json:"name"`
	Type            GoalType   `gorm:"size:32;not null" json:"type"`
	Target          float64    `gorm:"not null" json:"target"`
	Period          GoalPeriod `gorm:"size:16;not null" json:"period"`
	StartDate       *time.Time `json:"startDate"`
	IsActive        bool       `gorm:"index" json:"isActive"`
	ReminderEnabled bool       `json:"reminderEnabled"`
	ReminderTime    string     `gorm:"size:5;default:'09:00'" json:"reminderTime"`
}

func (Goal) TableName() string {
	return "study_goals"
}
