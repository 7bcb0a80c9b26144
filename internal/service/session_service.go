package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"study_coach_backend/internal/model"
	"study_coach_backend/internal/repository"
	"study_coach_backend/internal/util"
	"study_coach_backend/pkg/logger"
	"study_coach_backend/pkg/monitoring"
	"study_coach_backend/pkg/tracing"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// SessionService 学习会话的记录、进度更新与同步
type SessionService struct {
	SessionRepo *repository.SessionRepository
	Storage     *StorageService
	Now         func() time.Time
}

func NewSessionService(sessionRepo *repository.SessionRepository, storage *StorageService) *SessionService {
	return &SessionService{
		SessionRepo: sessionRepo,
		Storage:     storage,
		Now:         time.Now,
	}
}

// SessionRecord 客户端提交的会话记录。数值与时间字段宽松解析，无法识别的值视为缺失
type SessionRecord struct {
	ID                string            `json:"id" binding:"max=64"`
	Timestamp         util.LenientTime  `json:"timestamp" swaggertype:"string"`
	PDFName           string            `json:"pdfName" binding:"max=255"`
	SelectedText      string            `json:"selectedText"`
	FullSelectedText  string            `json:"fullSelectedText"`
	ConfusionType     *string           `json:"confusionType"`
	MasteryScore      util.LenientFloat `json:"masteryScore" swaggertype:"number"`
	TimeSpent         util.LenientFloat `json:"timeSpent" swaggertype:"number"`
	TotalSteps        util.LenientFloat `json:"totalSteps" swaggertype:"integer"`
	CompletedSteps    util.LenientFloat `json:"completedSteps" swaggertype:"integer"`
	AnalysisComplete  bool              `json:"analysisComplete"`
	DiagnosticSummary string            `json:"diagnosticSummary"`
	OverallAccuracy   util.LenientFloat `json:"overallAccuracy" swaggertype:"number"`
	OverallConfidence util.LenientFloat `json:"overallConfidence" swaggertype:"number"`
}

// AnalysisResult 远程分析返回的结构化结果
type AnalysisResult struct {
	ConfusionType     string            `json:"confusionType"`
	MasteryScore      util.LenientFloat `json:"masteryScore" swaggertype:"number"`
	DiagnosticSummary string            `json:"diagnosticSummary"`
	OverallAccuracy   util.LenientFloat `json:"overallAccuracy" swaggertype:"number"`
	OverallConfidence util.LenientFloat `json:"overallConfidence" swaggertype:"number"`
	TotalSteps        *int              `json:"totalSteps" binding:"omitempty,min=0"`
}

// UpdateProgressRequest 进度更新。TimeSpent 为本次新增的分钟数，会累加到已有时长
type UpdateProgressRequest struct {
	CompletedSteps *int            `json:"completedSteps" binding:"omitempty,min=0"`
	TotalSteps     *int            `json:"totalSteps" binding:"omitempty,min=0"`
	TimeSpent      *int            `json:"timeSpent" binding:"omitempty,min=0"`
	Analysis       *AnalysisResult `json:"analysis"`
}

func clampScore(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(100, v))
}

func normalizeConfusionType(c *string) *string {
	if c == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*c)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func clampSteps(s *model.Session) {
	s.TotalSteps = max(s.TotalSteps, 0)
	s.CompletedSteps = max(s.CompletedSteps, 0)
	if s.TotalSteps > 0 && s.CompletedSteps > s.TotalSteps {
		s.CompletedSteps = s.TotalSteps
	}
}

// toModel 将客户端记录转换为存储模型
func (r SessionRecord) toModel(userID uint) model.Session {
	full := r.FullSelectedText
	if full == "" {
		full = r.SelectedText
	}

	session := model.Session{
		UUIDBase:          model.UUIDBase{ID: strings.TrimSpace(r.ID)},
		UserID:            userID,
		Timestamp:         r.Timestamp.Time,
		PDFName:           r.PDFName,
		SelectedText:      model.SelectedTextPreview(full),
		FullSelectedText:  full,
		ConfusionType:     normalizeConfusionType(r.ConfusionType),
		TimeSpent:         r.TimeSpent.Int(),
		TotalSteps:        r.TotalSteps.Int(),
		CompletedSteps:    r.CompletedSteps.Int(),
		AnalysisComplete:  r.AnalysisComplete,
		DiagnosticSummary: r.DiagnosticSummary,
		OverallAccuracy:   r.OverallAccuracy.Value,
		OverallConfidence: r.OverallConfidence.Value,
	}
	if score := r.MasteryScore.Ptr(); score != nil {
		clamped := clampScore(*score)
		session.MasteryScore = &clamped
	}
	clampSteps(&session)
	return session
}

// ApplyProgress 将进度与分析结果合并到会话上
func ApplyProgress(session *model.Session, req UpdateProgressRequest) {
	if req.TotalSteps != nil {
		session.TotalSteps = *req.TotalSteps
	}
	if req.CompletedSteps != nil {
		session.CompletedSteps = *req.CompletedSteps
	}
	if req.TimeSpent != nil && *req.TimeSpent > 0 {
		session.TimeSpent += *req.TimeSpent
	}

	if a := req.Analysis; a != nil {
		session.ConfusionType = normalizeConfusionType(&a.ConfusionType)
		if score := a.MasteryScore.Ptr(); score != nil {
			clamped := clampScore(*score)
			session.MasteryScore = &clamped
		}
		if a.DiagnosticSummary != "" {
			session.DiagnosticSummary = a.DiagnosticSummary
		}
		if a.OverallAccuracy.Valid {
			session.OverallAccuracy = a.OverallAccuracy.Value
		}
		if a.OverallConfidence.Valid {
			session.OverallConfidence = a.OverallConfidence.Value
		}
		if a.TotalSteps != nil {
			session.TotalSteps = *a.TotalSteps
		}
		session.AnalysisComplete = true
	}
	clampSteps(session)
}

// ensureOwnership 已存在的会话必须属于当前用户
func (s *SessionService) ensureOwnership(ctx context.Context, userID uint, ids []string) (map[string]model.Session, error) {
	existing, err := s.SessionRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]model.Session, len(existing))
	for _, e := range existing {
		if e.UserID != userID {
			return nil, util.ErrPermissionDenied
		}
		byID[e.ID] = e
	}
	return byID, nil
}

// Create 新建会话；携带已存在的 ID 时整体覆盖
func (s *SessionService) Create(ctx context.Context, userID uint, record SessionRecord) (*model.Session, error) {
	ctx, span := tracing.Start(ctx, "SessionService.Create")
	defer span.End()

	session := record.toModel(userID)
	if session.ID != "" {
		existing, err := s.ensureOwnership(ctx, userID, []string{session.ID})
		if err != nil {
			return nil, err
		}
		if prev, ok := existing[session.ID]; ok && session.Timestamp.IsZero() {
			session.Timestamp = prev.Timestamp
		}
	}
	if session.Timestamp.IsZero() {
		session.Timestamp = s.Now().UTC()
	}

	if err := s.SessionRepo.Upsert(ctx, &session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return &session, nil
}

// Get 获取单个会话
func (s *SessionService) Get(ctx context.Context, userID uint, id string) (*model.Session, error) {
	return s.SessionRepo.FindByIDAndUserID(ctx, id, userID)
}

// List 获取用户全部会话，最新的在前
func (s *SessionService) List(ctx context.Context, userID uint) ([]model.Session, error) {
	ctx, span := tracing.Start(ctx, "SessionService.List")
	defer span.End()

	return s.SessionRepo.FindByUserID(ctx, userID)
}

// UpdateProgress 更新步骤进度、累加学习时长，并写入分析结果
func (s *SessionService) UpdateProgress(ctx context.Context, userID uint, id string, req UpdateProgressRequest) (*model.Session, error) {
	ctx, span := tracing.Start(ctx, "SessionService.UpdateProgress")
	defer span.End()

	session, err := s.SessionRepo.FindByIDAndUserID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	ApplyProgress(session, req)

	if err := s.SessionRepo.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("update session progress: %w", err)
	}
	return session, nil
}

// Delete 删除会话
func (s *SessionService) Delete(ctx context.Context, userID uint, id string) error {
	return s.SessionRepo.Delete(ctx, id, userID)
}

// Sync 按 ID 合并客户端的会话记录，客户端字段覆盖服务端。没有 ID 的记录会被跳过
func (s *SessionService) Sync(ctx context.Context, userID uint, records []SessionRecord) (int, error) {
	ctx, span := tracing.Start(ctx, "SessionService.Sync")
	defer span.End()

	// 同一批次内重复的 ID 以最后一条为准
	order := make([]string, 0, len(records))
	merged := make(map[string]model.Session, len(records))
	skipped := 0
	for _, r := range records {
		session := r.toModel(userID)
		if session.ID == "" {
			skipped++
			continue
		}
		if _, ok := merged[session.ID]; !ok {
			order = append(order, session.ID)
		}
		merged[session.ID] = session
	}

	existing, err := s.ensureOwnership(ctx, userID, order)
	if err != nil {
		return 0, err
	}

	now := s.Now().UTC()
	batch := lo.Map(order, func(id string, _ int) model.Session {
		session := merged[id]
		if session.Timestamp.IsZero() {
			if prev, ok := existing[id]; ok {
				session.Timestamp = prev.Timestamp
			} else {
				session.Timestamp = now
			}
		}
		return session
	})

	if err := s.SessionRepo.UpsertBatch(ctx, batch); err != nil {
		return 0, fmt.Errorf("sync sessions: %w", err)
	}

	monitoring.SessionsSynced.Add(float64(len(batch)))
	logger.Log.Info("Sessions synced",
		zap.Uint("userId", userID),
		zap.Int("merged", len(batch)),
		zap.Int("skipped", skipped))
	return len(batch), nil
}

// SessionExport 导出文件内容
type SessionExport struct {
	UserID     uint            `json:"userId"`
	ExportedAt time.Time       `json:"exportedAt"`
	Count      int             `json:"count"`
	Sessions   []model.Session `json:"sessions"`
}

// Export 将用户的会话快照导出为 JSON 文件，返回访问地址
func (s *SessionService) Export(ctx context.Context, userID uint) (string, error) {
	ctx, span := tracing.Start(ctx, "SessionService.Export")
	defer span.End()

	if s.Storage == nil {
		return "", util.ErrStorageDisabled
	}

	sessions, err := s.SessionRepo.FindByUserID(ctx, userID)
	if err != nil {
		return "", err
	}

	now := s.Now().UTC()
	payload, err := json.MarshalIndent(SessionExport{
		UserID:     userID,
		ExportedAt: now,
		Count:      len(sessions),
		Sessions:   sessions,
	}, "", "  ")
	if err != nil {
		return "", err
	}

	filename := fmt.Sprintf("sessions/%d/sessions-%s.json", userID, now.Format(util.ExportTimeFormat))
	url, err := s.Storage.Upload(ctx, filename, bytes.NewReader(payload), int64(len(payload)), util.MimeJSON)
	if err != nil {
		return "", fmt.Errorf("upload export: %w", err)
	}

	logger.Log.Info("Sessions exported", zap.Uint("userId", userID), zap.Int("count", len(sessions)), zap.String("file", filename))
	return url, nil
}
