package http

import (
	"AeroComply/internal/modules/compliance/application/dto/request"
	"AeroComply/internal/modules/compliance/application/service"
	"AeroComply/pkg/back"
	"AeroComply/pkg/xerr"
	"AeroComply/pkg/zlog"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AlertHandler struct {
	svc service.AlertService
}

func NewAlertHandler(svc service.AlertService) *AlertHandler {
	return &AlertHandler{svc: svc}
}

// ListAlerts GET /compliance/alerts
func (h *AlertHandler) ListAlerts(c *gin.Context) {
	var req request.ListAlertsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		zlog.Warn("list alerts bind failed", zap.Error(err))
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}
	data, err := h.svc.ListAlerts(c.Request.Context(), req)
	back.Result(c, data, err)
}

// ResolveAlert POST /compliance/alerts/:id/resolve
func (h *AlertHandler) ResolveAlert(c *gin.Context) {
	var req request.ResolveAlertRequest
	if err := c.ShouldBindUri(&req); err != nil {
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}
	data, err := h.svc.ResolveAlert(c.Request.Context(), req.ID)
	back.Result(c, data, err)
}

// TriggerScan POST /compliance/scan
func (h *AlertHandler) TriggerScan(c *gin.Context) {
	data, err := h.svc.TriggerScan(c.Request.Context())
	back.Result(c, data, err)
}

// RegisterRoutes 挂载到需要鉴权的路由组
func (h *AlertHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/compliance")
	g.POST("/scan", h.TriggerScan)
	g.GET("/alerts", h.ListAlerts)
	g.POST("/alerts/:id/resolve", h.ResolveAlert)
}
