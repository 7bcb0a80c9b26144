package service

import (
	"context"
	"study_coach_backend/internal/model"
	"study_coach_backend/internal/repository"
	"study_coach_backend/pkg/tracing"
	"time"
)

// AnalyticsService 学习数据的描述性统计
type AnalyticsService struct {
	SessionRepo *repository.SessionRepository
	Now         func() time.Time
}

func NewAnalyticsService(sessionRepo *repository.SessionRepository) *AnalyticsService {
	return &AnalyticsService{
		SessionRepo: sessionRepo,
		Now:         time.Now,
	}
}

// StreakSummary 连续学习天数
type StreakSummary struct {
	Streak int       `json:"streak"`
	AsOf   time.Time `json:"asOf"`
}

// Insights 获取用户的学习洞察
func (s *AnalyticsService) Insights(ctx context.Context, userID uint) (*model.Insights, error) {
	ctx, span := tracing.Start(ctx, "AnalyticsService.Insights")
	defer span.End()

	sessions, err := s.SessionRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	insights := ComputeInsights(sessions, s.Now())
	return &insights, nil
}

// Streak 获取用户当前的连续学习天数
func (s *AnalyticsService) Streak(ctx context.Context, userID uint) (*StreakSummary, error) {
	ctx, span := tracing.Start(ctx, "AnalyticsService.Streak")
	defer span.End()

	sessions, err := s.SessionRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := s.Now()
	return &StreakSummary{Streak: ComputeStreak(sessions, now), AsOf: now.UTC()}, nil
}
