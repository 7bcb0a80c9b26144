package controller

import (
	"study_coach_backend/internal/service"
	"study_coach_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// ReminderController 目标提醒
type ReminderController struct {
	GoalService *service.GoalService
}

func NewReminderController(goalService *service.GoalService) *ReminderController {
	return &ReminderController{GoalService: goalService}
}

// @Summary 获取待处理的目标提醒
// @Tags 目标提醒
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/reminders [get]
func (c *ReminderController) ListReminders(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	reminders, err := c.GoalService.CheckReminders(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, reminders)
}

// @Summary 关闭目标提醒
// @Description 关闭后直到当前周期结束都不再提醒
// @Tags 目标提醒
// @Produce json
// @Security BearerAuth
// @Param goalId path string true "目标ID"
// @Success 200 {object} util.Response
// @Router /api/reminders/{goalId}/dismiss [post]
func (c *ReminderController) DismissReminder(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	goalID := ctx.Param("goalId")
	if err := c.GoalService.DismissReminder(ctx.Request.Context(), userID, goalID); err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"dismissed": goalID})
}

// @Summary 清除全部提醒
// @Tags 目标提醒
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/reminders [delete]
func (c *ReminderController) ClearReminders(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	cleared, err := c.GoalService.ClearReminders(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"cleared": cleared})
}
