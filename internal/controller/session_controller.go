package controller

import (
	"study_coach_backend/internal/service"
	"study_coach_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// SessionController 处理学习会话的API请求
type SessionController struct {
	SessionService *service.SessionService
}

func NewSessionController(sessionService *service.SessionService) *SessionController {
	return &SessionController{SessionService: sessionService}
}

// SyncRequest 会话同步请求
type SyncRequest struct {
	Sessions []service.SessionRecord `json:"sessions" binding:"required,dive"`
}

// @Summary 创建学习会话
// @Description 记录一次新的学习会话；携带已有 ID 时覆盖该会话
// @Tags 学习会话
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param session body service.SessionRecord true "会话信息"
// @Success 201 {object} util.Response
// @Router /api/sessions [post]
func (c *SessionController) CreateSession(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req service.SessionRecord
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, err := c.SessionService.Create(ctx.Request.Context(), userID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Created(ctx, session)
}

// @Summary 获取学习会话列表
// @Description 获取当前用户的全部学习会话，按时间倒序
// @Tags 学习会话
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/sessions [get]
func (c *SessionController) ListSessions(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	sessions, err := c.SessionService.List(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, sessions)
}

// @Summary 获取学习会话详情
// @Tags 学习会话
// @Produce json
// @Security BearerAuth
// @Param id path string true "会话ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/sessions/{id} [get]
func (c *SessionController) GetSession(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	session, err := c.SessionService.Get(ctx.Request.Context(), userID, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, session)
}

// @Summary 更新会话进度
// @Description 更新修复路径步骤、累加学习时长，或写入分析结果
// @Tags 学习会话
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "会话ID"
// @Param progress body service.UpdateProgressRequest true "进度信息"
// @Success 200 {object} util.Response
// @Router /api/sessions/{id}/progress [patch]
func (c *SessionController) UpdateProgress(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req service.UpdateProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, err := c.SessionService.UpdateProgress(ctx.Request.Context(), userID, ctx.Param("id"), req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, session)
}

// @Summary 删除学习会话
// @Tags 学习会话
// @Produce json
// @Security BearerAuth
// @Param id path string true "会话ID"
// @Success 200 {object} util.Response
// @Router /api/sessions/{id} [delete]
func (c *SessionController) DeleteSession(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	if err := c.SessionService.Delete(ctx.Request.Context(), userID, ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"deleted": ctx.Param("id")})
}

// @Summary 同步学习会话
// @Description 按 ID 合并客户端本地的会话记录，客户端字段优先
// @Tags 学习会话
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SyncRequest true "待同步的会话"
// @Success 200 {object} util.Response
// @Router /api/sessions/sync [post]
func (c *SessionController) SyncSessions(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req SyncRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	merged, err := c.SessionService.Sync(ctx.Request.Context(), userID, req.Sessions)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"merged":  merged,
		"skipped": len(req.Sessions) - merged,
	})
}

// @Summary 导出学习会话
// @Description 将会话快照导出为 JSON 文件并返回地址
// @Tags 学习会话
// @Produce json
// @Security BearerAuth
// @Success 201 {object} util.Response
// @Router /api/sessions/export [post]
func (c *SessionController) ExportSessions(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	url, err := c.SessionService.Export(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{"url": url})
}
