package repository

import (
	"context"
	"errors"
	"study_coach_backend/internal/model"
	"study_coach_backend/internal/util"

	"gorm.io/gorm"
)

// GoalRepository 处理学习目标的数据访问
type GoalRepository struct {
	DB *gorm.DB
}

func NewGoalRepository(db *gorm.DB) *GoalRepository {
	return &GoalRepository{DB: db}
}

// Create 创建新的学习目标
func (r *GoalRepository) Create(ctx context.Context, goal *model.Goal) error {
	return r.DB.WithContext(ctx).Create(goal).Error
}

// Update 更新学习目标（包含零值字段）
func (r *GoalRepository) Update(ctx context.Context, goal *model.Goal) error {
	return r.DB.WithContext(ctx).Save(goal).Error
}

// Delete 删除学习目标
func (r *GoalRepository) Delete(ctx context.Context, id string, userID uint) error {
	result := r.DB.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&model.Goal{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return util.ErrGoalNotFound
	}
	return nil
}

// FindByIDAndUserID 根据ID和用户ID查找学习目标
func (r *GoalRepository) FindByIDAndUserID(ctx context.Context, id string, userID uint) (*model.Goal, error) {
	var goal model.Goal
	err := r.DB.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&goal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrGoalNotFound
	}
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

// FindByUserID 获取用户的所有学习目标，最新创建的在前
func (r *GoalRepository) FindByUserID(ctx context.Context, userID uint) ([]model.Goal, error) {
	var goals []model.Goal
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&goals).Error
	return goals, err
}

// FindActiveByUserID 获取用户启用中的学习目标
func (r *GoalRepository) FindActiveByUserID(ctx context.Context, userID uint) ([]model.Goal, error) {
	var goals []model.Goal
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at DESC").
		Find(&goals).Error
	return goals, err
}

// FindUserIDsWithReminders 获取存在启用提醒目标的用户
func (r *GoalRepository) FindUserIDsWithReminders(ctx context.Context) ([]uint, error) {
	var ids []uint
	err := r.DB.WithContext(ctx).Model(&model.Goal{}).
		Where("is_active = ? AND reminder_enabled = ?", true, true).
		Distinct().
		Pluck("user_id", &ids).Error
	return ids, err
}
