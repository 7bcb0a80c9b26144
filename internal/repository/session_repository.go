package repository

import (
	"context"
	"errors"
	"study_coach_backend/internal/model"
	"study_coach_backend/internal/util"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SessionRepository 学习会话存储，按用户隔离
type SessionRepository struct {
	DB *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

// 冲突时覆盖的列，不含 id、user_id 与 created_at
var sessionUpsertColumns = []string{
	"timestamp", "pdf_name", "selected_text", "full_selected_text",
	"confusion_type", "mastery_score", "time_spent", "total_steps", "completed_steps",
	"analysis_complete", "diagnostic_summary", "overall_accuracy", "overall_confidence",
	"updated_at",
}

// sessionUpsert 只覆盖同一用户的会话，归属不会因 ID 冲突而改变
func sessionUpsert() clause.OnConflict {
	return clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns(sessionUpsertColumns),
		Where: clause.Where{Exprs: []clause.Expression{
			clause.Expr{SQL: "study_sessions.user_id = excluded.user_id"},
		}},
	}
}

// Upsert 按 ID 新增或整体覆盖会话
func (r *SessionRepository) Upsert(ctx context.Context, session *model.Session) error {
	return r.DB.WithContext(ctx).
		Clauses(sessionUpsert()).
		Create(session).Error
}

// UpsertBatch 在一个事务内批量合并会话
func (r *SessionRepository) UpsertBatch(ctx context.Context, sessions []model.Session) error {
	if len(sessions) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(sessionUpsert()).
			CreateInBatches(sessions, 100).Error
	})
}

// Update 保存会话的全部字段
func (r *SessionRepository) Update(ctx context.Context, session *model.Session) error {
	return r.DB.WithContext(ctx).Save(session).Error
}

// FindByIDAndUserID 根据ID和用户ID查找会话
func (r *SessionRepository) FindByIDAndUserID(ctx context.Context, id string, userID uint) (*model.Session, error) {
	var session model.Session
	err := r.DB.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// FindByIDs 批量查找会话（不区分用户，用于归属校验）
func (r *SessionRepository) FindByIDs(ctx context.Context, ids []string) ([]model.Session, error) {
	var sessions []model.Session
	if len(ids) == 0 {
		return sessions, nil
	}
	err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&sessions).Error
	return sessions, err
}

// FindByUserID 获取用户的全部会话，按时间倒序
func (r *SessionRepository) FindByUserID(ctx context.Context, userID uint) ([]model.Session, error) {
	var sessions []model.Session
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC").
		Order("created_at DESC").
		Find(&sessions).Error
	return sessions, err
}

// Delete 删除用户的会话
func (r *SessionRepository) Delete(ctx context.Context, id string, userID uint) error {
	result := r.DB.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&model.Session{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return util.ErrSessionNotFound
	}
	return nil
}
