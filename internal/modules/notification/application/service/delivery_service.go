package service

import (
	"context"
	"strings"
	"time"

	complianceService "AeroComply/internal/modules/compliance/application/service"
	complianceEntity "AeroComply/internal/modules/compliance/domain/entity"
	"AeroComply/internal/modules/notification/application/dto/request"
	"AeroComply/internal/modules/notification/application/dto/respond"
	"AeroComply/internal/modules/notification/domain/entity"
	"AeroComply/internal/modules/notification/domain/repository"
	"AeroComply/pkg/metrics"
	"AeroComply/pkg/ws"
	"AeroComply/pkg/xerr"
	"AeroComply/pkg/zlog"

	"go.uber.org/zap"
)

// 推送事件类型
const (
	EventAlertCreated      = "alert_created"
	EventRiskScanCompleted = "risk_scan_completed"
	EventConnected         = "connected"
)

// Hub 实时通道注册表，*ws.Hub 满足该接口
type Hub interface {
	SendToUser(userID string, ev ws.Event) int
	SendToOrg(orgID string, ev ws.Event) int
	Broadcast(ev ws.Event) int
}

type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// DeliveryService 告警分发门面：按接收人偏好选择实时、邮件渠道。
// 单个接收人或渠道失败只记录日志，不影响其他接收人
type DeliveryService interface {
	complianceService.AlertDispatcher
	Broadcast(ctx context.Context, req request.BroadcastRequest) (*respond.BroadcastRespond, error)
}

type deliveryServiceImpl struct {
	hub         Hub
	audience    repository.AudienceRepository
	preferences PreferenceService
	mailer      Mailer
}

func NewDeliveryService(hub Hub, audience repository.AudienceRepository, preferences PreferenceService, mailer Mailer) DeliveryService {
	return &deliveryServiceImpl{
		hub:         hub,
		audience:    audience,
		preferences: preferences,
		mailer:      mailer,
	}
}

// alertPayload 推送给客户端的告警内容
type alertPayload struct {
	ID         string  `json:"id"`
	Severity   string  `json:"severity"`
	Category   string  `json:"category"`
	Title      string  `json:"title"`
	Message    string  `json:"message"`
	AircraftID *string `json:"aircraft_id,omitempty"`
	DueAt      *string `json:"due_at,omitempty"`
}

func newAlertEvent(a *complianceEntity.RiskAlert, c entity.Category) ws.Event {
	p := alertPayload{
		ID:         a.ID,
		Severity:   a.Severity.String(),
		Category:   string(c),
		Title:      a.Title,
		Message:    a.Message,
		AircraftID: a.AircraftID,
	}
	if a.DueAt != nil {
		due := a.DueAt.UTC().Format(time.RFC3339)
		p.DueAt = &due
	}
	return ws.Event{
		Type:       EventAlertCreated,
		EntityType: string(a.EntityType),
		EntityID:   a.EntityID,
		Data:       p,
	}
}

func (s *deliveryServiceImpl) DispatchAlerts(ctx context.Context, alerts []*complianceEntity.RiskAlert) {
	for _, a := range alerts {
		if a == nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			zlog.Warn("alert dispatch interrupted", zap.Error(err))
			return
		}
		s.dispatchOne(ctx, a)
	}
}

func (s *deliveryServiceImpl) dispatchOne(ctx context.Context, a *complianceEntity.RiskAlert) {
	aud, err := s.audience.ListRecipients(ctx, a.AircraftID)
	if err != nil {
		zlog.Error("resolve alert audience failed", zap.String("alert_id", a.ID), zap.Error(err))
		return
	}
	if len(aud.Recipients) == 0 {
		zlog.Debug("alert has no audience", zap.String("alert_id", a.ID), zap.String("entity_type", string(a.EntityType)))
		return
	}

	category := entity.CategoryFor(a.EntityType, a.Severity)
	ev := newAlertEvent(a, category)
	for _, r := range aud.Recipients {
		prefs, err := s.preferences.GetPreferences(ctx, r.UserID)
		if err != nil {
			zlog.Warn("load recipient preferences failed", zap.String("user_id", r.UserID), zap.Error(err))
			continue
		}
		if !prefs.Allows(category) {
			continue
		}
		if prefs.RealtimeEnabled {
			if n := s.hub.SendToUser(r.UserID, ev); n > 0 {
				metrics.NotificationsSent.WithLabelValues("realtime").Add(float64(n))
			}
		}
		if prefs.EmailEnabled && strings.TrimSpace(r.Email) != "" && s.mailer != nil {
			subject := "[" + strings.ToUpper(a.Severity.String()) + "] " + a.Title
			if err := s.mailer.Send(ctx, r.Email, subject, a.Message); err != nil {
				zlog.Warn("alert email failed", zap.String("user_id", r.UserID), zap.String("alert_id", a.ID), zap.Error(err))
			} else {
				metrics.NotificationsSent.WithLabelValues("email").Inc()
			}
		}
		if prefs.PushEnabled {
			zlog.Debug("push channel has no transport", zap.String("user_id", r.UserID), zap.String("alert_id", a.ID))
		}
	}
}

func (s *deliveryServiceImpl) NotifyScanCompleted(ctx context.Context, created int) {
	n := s.hub.Broadcast(ws.Event{
		Type: EventRiskScanCompleted,
		Data: map[string]int{"created": created},
	})
	zlog.Debug("risk scan completion broadcast", zap.Int("created", created), zap.Int("delivered", n))
}

func (s *deliveryServiceImpl) Broadcast(ctx context.Context, req request.BroadcastRequest) (*respond.BroadcastRespond, error) {
	typ := strings.TrimSpace(req.Type)
	if typ == "" {
		return nil, xerr.ParamError("type")
	}
	ev := ws.Event{Type: typ}
	if req.Message != "" {
		ev.Data = map[string]string{"message": req.Message}
	}

	var delivered int
	if orgID := strings.TrimSpace(req.OrgID); orgID != "" {
		delivered = s.hub.SendToOrg(orgID, ev)
	} else {
		delivered = s.hub.Broadcast(ev)
	}
	zlog.Info("realtime broadcast sent",
		zap.String("type", typ),
		zap.String("org_id", req.OrgID),
		zap.Int("delivered", delivered))
	return &respond.BroadcastRespond{Delivered: delivered}, nil
}
