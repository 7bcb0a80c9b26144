package controller

import (
	"study_coach_backend/internal/service"
	"study_coach_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	AnalyticsService *service.AnalyticsService
}

func NewAnalyticsController(analyticsService *service.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{AnalyticsService: analyticsService}
}

// @Summary 获取学习洞察
// @Description 困惑类型分布、各类型掌握度、重点概念、学习时长与趋势
// @Tags 学习分析
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/analytics/insights [get]
func (c *AnalyticsController) GetInsights(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	insights, err := c.AnalyticsService.Insights(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, insights)
}

// @Summary 获取连续学习天数
// @Tags 学习分析
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.StreakSummary}
// @Router /api/analytics/streak [get]
func (c *AnalyticsController) GetStreak(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	streak, err := c.AnalyticsService.Streak(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, streak)
}
