package controller

import (
	"study_coach_backend/internal/service"
	"study_coach_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// GoalController 处理学习目标的API请求
type GoalController struct {
	GoalService *service.GoalService
}

func NewGoalController(goalService *service.GoalService) *GoalController {
	return &GoalController{GoalService: goalService}
}

// @Summary 创建学习目标
// @Description 未提供的字段使用默认值：每周完成 5 次会话
// @Tags 学习目标
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param goal body service.GoalRequest true "学习目标信息"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/goals [post]
func (c *GoalController) CreateGoal(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req service.GoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	goal, err := c.GoalService.Create(ctx.Request.Context(), userID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Created(ctx, goal)
}

// @Summary 获取学习目标及进度
// @Description 默认只返回启用中的目标
// @Tags 学习目标
// @Produce json
// @Security BearerAuth
// @Param includeInactive query bool false "是否包含已停用的目标"
// @Success 200 {object} util.Response
// @Router /api/goals [get]
func (c *GoalController) ListGoals(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	includeInactive := ctx.Query("includeInactive") == "true"
	goals, err := c.GoalService.ListWithProgress(ctx.Request.Context(), userID, includeInactive)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, goals)
}

// @Summary 获取目标进度
// @Tags 学习目标
// @Produce json
// @Security BearerAuth
// @Param id path string true "目标ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/goals/{id}/progress [get]
func (c *GoalController) GetProgress(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	progress, err := c.GoalService.Progress(ctx.Request.Context(), userID, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, progress)
}

// @Summary 更新学习目标
// @Tags 学习目标
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "目标ID"
// @Param goal body service.GoalRequest true "更新内容"
// @Success 200 {object} util.Response
// @Router /api/goals/{id} [put]
func (c *GoalController) UpdateGoal(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req service.GoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	goal, err := c.GoalService.Update(ctx.Request.Context(), userID, ctx.Param("id"), req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, goal)
}

// @Summary 启用/停用学习目标
// @Tags 学习目标
// @Produce json
// @Security BearerAuth
// @Param id path string true "目标ID"
// @Success 200 {object} util.Response
// @Router /api/goals/{id}/toggle [patch]
func (c *GoalController) ToggleGoal(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	goal, err := c.GoalService.ToggleActive(ctx.Request.Context(), userID, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, goal)
}

// @Summary 删除学习目标
// @Tags 学习目标
// @Produce json
// @Security BearerAuth
// @Param id path string true "目标ID"
// @Success 200 {object} util.Response
// @Router /api/goals/{id} [delete]
func (c *GoalController) DeleteGoal(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	if err := c.GoalService.Delete(ctx.Request.Context(), userID, ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"deleted": ctx.Param("id")})
}
