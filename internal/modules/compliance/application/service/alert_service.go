package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"AeroComply/internal/modules/compliance/application/dto/request"
	"AeroComply/internal/modules/compliance/application/dto/respond"
	"AeroComply/internal/modules/compliance/domain/entity"
	"AeroComply/internal/modules/compliance/domain/repository"
	"AeroComply/internal/modules/compliance/infrastructure/persistence"
	"AeroComply/pkg/xerr"
	"AeroComply/pkg/zlog"

	"go.uber.org/zap"
)

// AlertService 告警查询、关闭与手动扫描，错误统一转换为 xerr
type AlertService interface {
	ListAlerts(ctx context.Context, req request.ListAlertsRequest) (*respond.AlertPageRespond, error)
	ResolveAlert(ctx context.Context, id string) (*entity.RiskAlert, error)
	TriggerScan(ctx context.Context) (*respond.ScanRespond, error)
}

type alertServiceImpl struct {
	alertRepo repository.AlertRepository
	scanSvc   ScanService
	now       func() time.Time
}

func NewAlertService(alertRepo repository.AlertRepository, scanSvc ScanService) AlertService {
	return &alertServiceImpl{
		alertRepo: alertRepo,
		scanSvc:   scanSvc,
		now:       time.Now,
	}
}

func (s *alertServiceImpl) ListAlerts(ctx context.Context, req request.ListAlertsRequest) (*respond.AlertPageRespond, error) {
	filter, err := buildAlertFilter(req)
	if err != nil {
		return nil, err
	}
	items, total, err := s.alertRepo.List(ctx, filter)
	if err != nil {
		zlog.Error("list risk alerts failed", zap.Error(err))
		return nil, xerr.ErrServerError
	}
	if items == nil {
		items = []*entity.RiskAlert{}
	}
	pages := 0
	if total > 0 {
		pages = int((total + int64(filter.PerPage) - 1) / int64(filter.PerPage))
	}
	return &respond.AlertPageRespond{
		Items:   items,
		Total:   total,
		Page:    filter.Page,
		PerPage: filter.PerPage,
		Pages:   pages,
	}, nil
}

func buildAlertFilter(req request.ListAlertsRequest) (repository.AlertFilter, error) {
	filter := repository.AlertFilter{}
	filter.Page, filter.PerPage = persistence.NormalizePage(req.Page, req.PerPage)

	if v := strings.TrimSpace(req.AircraftID); v != "" {
		filter.AircraftID = &v
	}
	if v := strings.TrimSpace(req.Severity); v != "" {
		sev, err := entity.ParseSeverity(v)
		if err != nil {
			return filter, xerr.ParamError("severity")
		}
		filter.Severity = &sev
	}
	if v := strings.TrimSpace(req.IsResolved); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return filter, xerr.ParamError("is_resolved")
		}
		filter.IsResolved = &b
	}
	return filter, nil
}

func (s *alertServiceImpl) ResolveAlert(ctx context.Context, id string) (*entity.RiskAlert, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, xerr.ParamError("id")
	}
	alert, err := s.alertRepo.Resolve(ctx, id, s.now())
	if err != nil {
		if errors.Is(err, repository.ErrAlertNotFound) {
			return nil, xerr.New(xerr.NotFound, "告警不存在")
		}
		zlog.Error("resolve risk alert failed", zap.String("alert_id", id), zap.Error(err))
		return nil, xerr.ErrServerError
	}
	zlog.Info("risk alert resolved", zap.String("alert_id", id))
	return alert, nil
}

func (s *alertServiceImpl) TriggerScan(ctx context.Context) (*respond.ScanRespond, error) {
	report, err := s.scanSvc.RunScan(ctx, TriggerManual)
	if err != nil {
		zlog.Warn("manual risk scan aborted", zap.Error(err))
		return nil, xerr.ErrServerError
	}
	return &respond.ScanRespond{Created: report.CreatedCount()}, nil
}
