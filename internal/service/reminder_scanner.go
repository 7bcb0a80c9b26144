package service

import (
	"context"
	"study_coach_backend/internal/repository"
	"study_coach_backend/pkg/logger"
	"study_coach_backend/pkg/monitoring"
	"time"

	"go.uber.org/zap"
)

// ReminderScanner 后台定时扫描所有开启提醒的目标，记录待提醒数量
type ReminderScanner struct {
	GoalRepo *repository.GoalRepository
	Goals    *GoalService
	Interval time.Duration
}

func NewReminderScanner(goalRepo *repository.GoalRepository, goals *GoalService, interval time.Duration) *ReminderScanner {
	return &ReminderScanner{
		GoalRepo: goalRepo,
		Goals:    goals,
		Interval: interval,
	}
}

// Run 阻塞运行直到 ctx 取消
func (s *ReminderScanner) Run(ctx context.Context) {
	interval := s.Interval
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Log.Info("Reminder scanner started", zap.Duration("interval", interval))
	for {
		if _, err := s.ScanOnce(ctx); err != nil && ctx.Err() == nil {
			logger.Log.Error("Reminder scan failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			logger.Log.Info("Reminder scanner stopped")
			return
		case <-ticker.C:
		}
	}
}

// ScanOnce 执行一次扫描，返回所有用户待提醒的总数
func (s *ReminderScanner) ScanOnce(ctx context.Context) (int, error) {
	userIDs, err := s.GoalRepo.FindUserIDsWithReminders(ctx)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, userID := range userIDs {
		if ctx.Err() != nil {
			return total, ctx.Err()
		}
		reminders, err := s.Goals.dueReminders(ctx, userID)
		if err != nil {
			logger.Log.Warn("Failed to evaluate reminders", zap.Uint("userId", userID), zap.Error(err))
			continue
		}
		if len(reminders) > 0 {
			logger.Log.Debug("Reminders due", zap.Uint("userId", userID), zap.Int("count", len(reminders)))
		}
		total += len(reminders)
	}

	monitoring.RemindersDue.Set(float64(total))
	logger.Log.Info("Reminder scan finished", zap.Int("users", len(userIDs)), zap.Int("due", total))
	return total, nil
}
