package controller

import (
	"errors"
	"net/http"
	"study_coach_backend/internal/service"
	"study_coach_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// currentUserID 读取当前登录用户，未登录时直接返回 401
func currentUserID(ctx *gin.Context) (uint, bool) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return 0, false
	}
	return user.UserID, true
}

// respondError 将业务错误映射为 HTTP 响应
func respondError(ctx *gin.Context, err error) {
	var invalid *service.InvalidGoalError
	switch {
	case errors.As(err, &invalid):
		util.BadRequest(ctx, invalid.Error())
	case errors.Is(err, util.ErrInvalidGoal), errors.Is(err, util.ErrInvalidSession):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrSessionNotFound), errors.Is(err, util.ErrGoalNotFound):
		util.Error(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrStorageDisabled):
		util.Error(ctx, http.StatusServiceUnavailable, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
