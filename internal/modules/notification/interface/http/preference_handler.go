package http

import (
	"AeroComply/internal/modules/notification/application/dto/request"
	"AeroComply/internal/modules/notification/application/service"
	"AeroComply/pkg/back"
	"AeroComply/pkg/xerr"
	"AeroComply/pkg/zlog"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PreferenceHandler struct {
	svc service.PreferenceService
}

func NewPreferenceHandler(svc service.PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{svc: svc}
}

// GetPreferences GET /notification/preferences
func (h *PreferenceHandler) GetPreferences(c *gin.Context) {
	data, err := h.svc.GetPreferences(c.Request.Context(), c.GetString("uuid"))
	back.Result(c, data, err)
}

// UpdatePreferences PUT /notification/preferences
func (h *PreferenceHandler) UpdatePreferences(c *gin.Context) {
	var req request.UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		zlog.Warn("update preferences bind failed", zap.Error(err))
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}
	data, err := h.svc.ReplacePreferences(c.Request.Context(), c.GetString("uuid"), req)
	back.Result(c, data, err)
}

func (h *PreferenceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/notification/preferences", h.GetPreferences)
	rg.PUT("/notification/preferences", h.UpdatePreferences)
}
