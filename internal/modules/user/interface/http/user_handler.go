package handler

import (
	"Gigbell/internal/middleware/jwt"
	"Gigbell/internal/modules/user/application/dto/request"
	"Gigbell/internal/modules/user/application/service"
	"Gigbell/pkg/back"
	"Gigbell/pkg/xerr"
	"Gigbell/pkg/zlog"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	svc service.UserService
}

func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

func (h *UserHandler) GetPushSettings(c *gin.Context) {
	data, err := h.svc.GetPushSettings(c.Request.Context(), jwt.UserID(c))
	back.Result(c, data, err)
}

func (h *UserHandler) UpdatePushSettings(c *gin.Context) {
	var req request.PushSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		zlog.Error(err.Error())
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}
	data, err := h.svc.UpdatePushSettings(c.Request.Context(), jwt.UserID(c), req)
	back.Result(c, data, err)
}
