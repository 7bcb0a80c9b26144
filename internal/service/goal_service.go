package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"study_coach_backend/internal/model"
	"study_coach_backend/internal/repository"
	"study_coach_backend/internal/util"
	"study_coach_backend/pkg/logger"
	"study_coach_backend/pkg/monitoring"
	"study_coach_backend/pkg/tracing"
	"time"

	"go.uber.org/zap"
)

const (
	defaultGoalName     = "Study Goal"
	defaultGoalTarget   = 5
	defaultReminderTime = "09:00"
	reminderTimeLayout  = "15:04"
)

// GoalService 学习目标管理、进度计算与提醒
type GoalService struct {
	GoalRepo    *repository.GoalRepository
	SessionRepo *repository.SessionRepository
	Dismissals  repository.ReminderDismissalStore
	Now         func() time.Time
}

func NewGoalService(
	goalRepo *repository.GoalRepository,
	sessionRepo *repository.SessionRepository,
	dismissals repository.ReminderDismissalStore,
) *GoalService {
	return &GoalService{
		GoalRepo:    goalRepo,
		SessionRepo: sessionRepo,
		Dismissals:  dismissals,
		Now:         time.Now,
	}
}

// GoalRequest 创建或更新目标的请求，未提供的字段保持原值（创建时使用默认值）
type GoalRequest struct {
	Name            *string    `json:"name" binding:"omitempty,max=255"`
	Type            *string    `json:"type" example:"sessionCount"`
	Target          *float64   `json:"target" example:"5"`
	Period          *string    `json:"period" example:"weekly"`
	StartDate       *time.Time `json:"startDate"`
	IsActive        *bool      `json:"isActive"`
	ReminderEnabled *bool      `json:"reminderEnabled"`
	ReminderTime    *string    `json:"reminderTime" example:"09:00"`
}

func (req GoalRequest) apply(goal *model.Goal) error {
	if req.Name != nil {
		if name := strings.TrimSpace(*req.Name); name != "" {
			goal.Name = name
		}
	}
	if req.Type != nil {
		t, ok := model.ParseGoalType(*req.Type)
		if !ok {
			return &InvalidGoalError{Field: "type", Reason: fmt.Sprintf("unknown type %q", *req.Type)}
		}
		goal.Type = t
	}
	if req.Target != nil {
		goal.Target = *req.Target
	}
	if req.Period != nil {
		p, ok := model.ParseGoalPeriod(*req.Period)
		if !ok {
			return &InvalidGoalError{Field: "period", Reason: fmt.Sprintf("unknown period %q", *req.Period)}
		}
		goal.Period = p
	}
	if req.StartDate != nil {
		start := req.StartDate.UTC()
		goal.StartDate = &start
	}
	if req.IsActive != nil {
		goal.IsActive = *req.IsActive
	}
	if req.ReminderEnabled != nil {
		goal.ReminderEnabled = *req.ReminderEnabled
	}
	if req.ReminderTime != nil {
		if _, err := time.Parse(reminderTimeLayout, *req.ReminderTime); err != nil {
			return &InvalidGoalError{Field: "reminderTime", Reason: "must be HH:MM"}
		}
		goal.ReminderTime = *req.ReminderTime
	}
	return ValidateGoal(goal)
}

// Create 创建学习目标
func (s *GoalService) Create(ctx context.Context, userID uint, req GoalRequest) (*model.Goal, error) {
	ctx, span := tracing.Start(ctx, "GoalService.Create")
	defer span.End()

	start := s.Now().UTC()
	goal := &model.Goal{
		UserID:          userID,
		Name:            defaultGoalName,
		Type:            model.GoalSessionCount,
		Target:          defaultGoalTarget,
		Period:          model.PeriodWeekly,
		StartDate:       &start,
		IsActive:        true,
		ReminderEnabled: true,
		ReminderTime:    defaultReminderTime,
	}
	if err := req.apply(goal); err != nil {
		monitoring.InvalidGoals.Inc()
		return nil, err
	}

	if err := s.GoalRepo.Create(ctx, goal); err != nil {
		return nil, fmt.Errorf("create goal: %w", err)
	}
	return goal, nil
}

// Update 更新学习目标，已关闭的提醒会重新评估
func (s *GoalService) Update(ctx context.Context, userID uint, goalID string, req GoalRequest) (*model.Goal, error) {
	ctx, span := tracing.Start(ctx, "GoalService.Update")
	defer span.End()

	goal, err := s.GoalRepo.FindByIDAndUserID(ctx, goalID, userID)
	if err != nil {
		return nil, err
	}
	if err := req.apply(goal); err != nil {
		monitoring.InvalidGoals.Inc()
		return nil, err
	}
	if err := s.GoalRepo.Update(ctx, goal); err != nil {
		return nil, fmt.Errorf("update goal: %w", err)
	}
	s.resetDismissal(ctx, userID, goalID)
	return goal, nil
}

// ToggleActive 切换目标的启用状态
func (s *GoalService) ToggleActive(ctx context.Context, userID uint, goalID string) (*model.Goal, error) {
	goal, err := s.GoalRepo.FindByIDAndUserID(ctx, goalID, userID)
	if err != nil {
		return nil, err
	}
	goal.IsActive = !goal.IsActive
	if err := s.GoalRepo.Update(ctx, goal); err != nil {
		return nil, fmt.Errorf("toggle goal: %w", err)
	}
	return goal, nil
}

// Delete 删除学习目标
func (s *GoalService) Delete(ctx context.Context, userID uint, goalID string) error {
	if err := s.GoalRepo.Delete(ctx, goalID, userID); err != nil {
		return err
	}
	s.resetDismissal(ctx, userID, goalID)
	return nil
}

func (s *GoalService) resetDismissal(ctx context.Context, userID uint, goalID string) {
	if s.Dismissals == nil {
		return
	}
	if err := s.Dismissals.Reset(ctx, userID, goalID); err != nil {
		logger.Log.Warn("Failed to reset reminder dismissal", zap.String("goalId", goalID), zap.Error(err))
	}
}

// withProgress 计算每个目标的进度，不合法的目标记录日志后跳过
func (s *GoalService) withProgress(goals []model.Goal, sessions []model.Session, now time.Time) []model.GoalWithProgress {
	result := make([]model.GoalWithProgress, 0, len(goals))
	for _, g := range goals {
		progress, err := ComputeProgress(&g, sessions, now)
		if err != nil {
			monitoring.InvalidGoals.Inc()
			logger.Log.Warn("Skipping invalid goal", zap.String("goalId", g.ID), zap.Uint("userId", g.UserID), zap.Error(err))
			continue
		}
		monitoring.GoalProgressComputations.WithLabelValues(string(g.Type)).Inc()
		result = append(result, model.GoalWithProgress{Goal: g, Progress: progress})
	}
	return result
}

// ListWithProgress 获取目标及其当前进度，默认只返回启用中的目标
func (s *GoalService) ListWithProgress(ctx context.Context, userID uint, includeInactive bool) ([]model.GoalWithProgress, error) {
	ctx, span := tracing.Start(ctx, "GoalService.ListWithProgress")
	defer span.End()

	var goals []model.Goal
	var err error
	if includeInactive {
		goals, err = s.GoalRepo.FindByUserID(ctx, userID)
	} else {
		goals, err = s.GoalRepo.FindActiveByUserID(ctx, userID)
	}
	if err != nil {
		return nil, err
	}
	if len(goals) == 0 {
		return []model.GoalWithProgress{}, nil
	}

	sessions, err := s.SessionRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.withProgress(goals, sessions, s.Now()), nil
}

// Progress 获取单个目标的进度
func (s *GoalService) Progress(ctx context.Context, userID uint, goalID string) (*model.GoalWithProgress, error) {
	ctx, span := tracing.Start(ctx, "GoalService.Progress")
	defer span.End()

	goal, err := s.GoalRepo.FindByIDAndUserID(ctx, goalID, userID)
	if err != nil {
		return nil, err
	}
	sessions, err := s.SessionRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	progress, err := ComputeProgress(goal, sessions, s.Now())
	if err != nil {
		return nil, err
	}
	monitoring.GoalProgressComputations.WithLabelValues(string(goal.Type)).Inc()
	return &model.GoalWithProgress{Goal: *goal, Progress: progress}, nil
}

// dueReminders 计算当前需要展示的提醒（已排除被关闭的）
func (s *GoalService) dueReminders(ctx context.Context, userID uint) ([]model.Reminder, error) {
	goals, err := s.GoalRepo.FindActiveByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	reminders := []model.Reminder{}
	var candidates []model.Goal
	for _, g := range goals {
		if g.ReminderEnabled {
			candidates = append(candidates, g)
		}
	}
	if len(candidates) == 0 {
		return reminders, nil
	}

	sessions, err := s.SessionRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	for _, gp := range s.withProgress(candidates, sessions, s.Now()) {
		if !ShouldRemind(&gp.Goal, gp.Progress) {
			continue
		}
		reminder := ReminderMessage(&gp.Goal, gp.Progress)
		if reminder == nil {
			continue
		}

		if s.Dismissals != nil {
			dismissed, err := s.Dismissals.IsDismissed(ctx, userID, gp.ID)
			if err != nil {
				logger.Log.Warn("Failed to read reminder dismissal", zap.String("goalId", gp.ID), zap.Error(err))
			} else if dismissed {
				continue
			}
		}
		reminders = append(reminders, *reminder)
	}
	return reminders, nil
}

// CheckReminders 获取用户当前需要展示的目标提醒
func (s *GoalService) CheckReminders(ctx context.Context, userID uint) ([]model.Reminder, error) {
	ctx, span := tracing.Start(ctx, "GoalService.CheckReminders")
	defer span.End()

	reminders, err := s.dueReminders(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, r := range reminders {
		monitoring.RemindersEvaluated.WithLabelValues(string(r.Severity)).Inc()
	}
	return reminders, nil
}

func (s *GoalService) dismiss(ctx context.Context, userID uint, goalID string, periodEnd time.Time) error {
	if s.Dismissals == nil {
		return nil
	}
	ttl := periodEnd.Sub(s.Now())
	if ttl <= 0 {
		return nil
	}
	return s.Dismissals.Dismiss(ctx, userID, goalID, ttl)
}

// DismissReminder 关闭目标提醒，直到当前周期结束
func (s *GoalService) DismissReminder(ctx context.Context, userID uint, goalID string) error {
	gp, err := s.Progress(ctx, userID, goalID)
	if err != nil {
		return err
	}
	if err := s.dismiss(ctx, userID, goalID, gp.Progress.PeriodEnd); err != nil {
		return fmt.Errorf("dismiss reminder: %w", err)
	}
	return nil
}

// ClearReminders 关闭当前所有提醒，返回关闭的数量
func (s *GoalService) ClearReminders(ctx context.Context, userID uint) (int, error) {
	reminders, err := s.dueReminders(ctx, userID)
	if err != nil {
		return 0, err
	}

	var errs []error
	for _, r := range reminders {
		if err := s.dismiss(ctx, userID, r.GoalID, r.Progress.PeriodEnd); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return 0, fmt.Errorf("clear reminders: %w", err)
	}
	return len(reminders), nil
}

// IsInvalidGoal 判断错误是否为目标定义不合法
func IsInvalidGoal(err error) bool {
	return errors.Is(err, util.ErrInvalidGoal)
}
