package service

import (
	"study_coach_backend/internal/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeStreak(t *testing.T) {
	cases := []struct {
		name     string
		sessions []model.Session
		want     int
	}{
		{"empty", nil, 0},
		{"most recent two days ago", []model.Session{
			completedSession(daysAgo(2)),
			completedSession(daysAgo(3)),
		}, 0},
		{"three consecutive days ending today", []model.Session{
			completedSession(testNow),
			completedSession(daysAgo(1)),
			completedSession(daysAgo(2)),
			completedSession(daysAgo(4)),
		}, 3},
		{"anchored at yesterday", []model.Session{
			completedSession(daysAgo(1)),
			completedSession(daysAgo(2)),
		}, 2},
		{"several sessions on the same day", []model.Session{
			completedSession(testNow),
			completedSession(testNow.Add(-time.Hour)),
			completedSession(daysAgo(1)),
		}, 2},
		{"incomplete sessions ignored", []model.Session{
			{Timestamp: testNow},
			completedSession(daysAgo(1)),
			{Timestamp: daysAgo(2)},
		}, 1},
		{"missing timestamps ignored", []model.Session{
			{AnalysisComplete: true},
		}, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ComputeStreak(tc.sessions, testNow))
		})
	}
}

func TestComputeStreakConsecutiveDays(t *testing.T) {
	for n := 1; n <= 10; n++ {
		var sessions []model.Session
		for i := 0; i < n; i++ {
			sessions = append(sessions, completedSession(daysAgo(i)))
		}
		// 中断之前的记录不计入
		sessions = append(sessions, completedSession(daysAgo(n+1)))
		assert.Equal(t, n, ComputeStreak(sessions, testNow))
	}
}

func TestComputeStreakUsesUTCDates(t *testing.T) {
	// 北京时间 5 月 15 日 07:00 即 UTC 5 月 14 日 23:00
	shanghai := time.FixedZone("CST", 8*3600)
	sessions := []model.Session{
		completedSession(time.Date(2024, 5, 15, 7, 0, 0, 0, shanghai)),
	}
	assert.Equal(t, 1, ComputeStreak(sessions, testNow))

	now := time.Date(2024, 5, 16, 0, 30, 0, 0, time.UTC)
	assert.Equal(t, 0, ComputeStreak(sessions, now))
}
