package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"AeroComply/internal/modules/compliance/domain/entity"
	"AeroComply/internal/modules/compliance/domain/repository"
	"AeroComply/internal/modules/compliance/domain/risk"
	"AeroComply/pkg/metrics"
	"AeroComply/pkg/zlog"

	"go.uber.org/zap"
)

// 扫描触发来源，用作指标标签
const (
	TriggerScheduled = "scheduled"
	TriggerManual    = "manual"
)

// AlertDispatcher 新告警的下游分发（通知模块实现）
type AlertDispatcher interface {
	DispatchAlerts(ctx context.Context, alerts []*entity.RiskAlert)
	NotifyScanCompleted(ctx context.Context, created int)
}

// SourceReadError 某类来源整体读取失败，不影响其他来源
type SourceReadError struct {
	Kind entity.EntityType
	Err  error
}

func (e *SourceReadError) Error() string {
	return fmt.Sprintf("read %s deadlines: %v", e.Kind, e.Err)
}

func (e *SourceReadError) Unwrap() error { return e.Err }

// KindResult 单类来源的扫描统计
type KindResult struct {
	Scanned int
	Created int
	// Skipped 不在告警窗口内，或已有未关闭告警（含并发插入竞争失败）
	Skipped int
	Failed  int
	Err     error
}

// ScanReport 一次扫描的结果
type ScanReport struct {
	Trigger    string
	StartedAt  time.Time
	FinishedAt time.Time
	Created    []*entity.RiskAlert
	Kinds      map[entity.EntityType]*KindResult
}

func (r *ScanReport) CreatedCount() int {
	return len(r.Created)
}

// Errors 读取失败的来源
func (r *ScanReport) Errors() []error {
	var out []error
	for _, kind := range entity.EntityTypes {
		if kr, ok := r.Kinds[kind]; ok && kr.Err != nil {
			out = append(out, kr.Err)
		}
	}
	return out
}

type ScanService interface {
	RunScan(ctx context.Context, trigger string) (*ScanReport, error)
}

type ScanOption func(*scanServiceImpl)

// WithClock 替换时间源
func WithClock(now func() time.Time) ScanOption {
	return func(s *scanServiceImpl) {
		if now != nil {
			s.now = now
		}
	}
}

// WithDispatcher 设置新告警的分发器
func WithDispatcher(d AlertDispatcher) ScanOption {
	return func(s *scanServiceImpl) {
		s.dispatcher = d
	}
}

type scanServiceImpl struct {
	readers    []repository.DeadlineReader
	alertRepo  repository.AlertRepository
	classifier risk.Classifier
	dispatcher AlertDispatcher
	now        func() time.Time
}

func NewScanService(readers []repository.DeadlineReader, alertRepo repository.AlertRepository, classifier risk.Classifier, opts ...ScanOption) ScanService {
	s := &scanServiceImpl{
		readers:    readers,
		alertRepo:  alertRepo,
		classifier: classifier,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RunScan 依次扫描每类来源。单类读取失败、单条记录失败都只记录，不中断整批；
// 只有 ctx 取消会提前返回
func (s *scanServiceImpl) RunScan(ctx context.Context, trigger string) (*ScanReport, error) {
	if trigger == "" {
		trigger = TriggerManual
	}
	now := s.now()
	report := &ScanReport{
		Trigger:   trigger,
		StartedAt: now,
		Kinds:     make(map[entity.EntityType]*KindResult, len(s.readers)),
	}
	metrics.ScanRuns.WithLabelValues(trigger).Inc()
	start := time.Now()
	defer func() {
		metrics.ScanDuration.Observe(time.Since(start).Seconds())
	}()

	for _, reader := range s.readers {
		if err := ctx.Err(); err != nil {
			report.FinishedAt = s.now()
			zlog.Warn("risk scan interrupted",
				zap.String("trigger", trigger),
				zap.Int("created", report.CreatedCount()),
				zap.Error(err))
			// 已入库的告警下次扫描会被去重，必须在这里送出
			if s.dispatcher != nil && len(report.Created) > 0 {
				s.dispatcher.DispatchAlerts(context.WithoutCancel(ctx), report.Created)
			}
			return report, err
		}
		kind := reader.Kind()
		kr := &KindResult{}
		report.Kinds[kind] = kr

		records, err := reader.ListDue(ctx)
		if err != nil {
			kr.Err = &SourceReadError{Kind: kind, Err: err}
			metrics.SourceErrors.WithLabelValues(string(kind)).Inc()
			zlog.Error("risk scan source read failed", zap.String("entity_type", string(kind)), zap.Error(err))
			continue
		}

		for _, rec := range records {
			kr.Scanned++
			alert, err := s.scanRecord(ctx, rec, now)
			switch {
			case err != nil:
				kr.Failed++
				zlog.Warn("risk scan record failed",
					zap.String("entity_type", string(kind)),
					zap.String("entity_id", rec.EntityID),
					zap.Error(err))
			case alert != nil:
				kr.Created++
				report.Created = append(report.Created, alert)
				metrics.AlertsCreated.WithLabelValues(string(kind), alert.Severity.String()).Inc()
			default:
				kr.Skipped++
			}
		}
	}
	report.FinishedAt = s.now()

	zlog.Info("risk scan finished",
		zap.String("trigger", trigger),
		zap.Int("created", report.CreatedCount()),
		zap.Int("source_errors", len(report.Errors())),
		zap.Duration("elapsed", time.Since(start)))

	if s.dispatcher != nil {
		// 手动扫描的请求可能在分发前断开，分发不随之取消
		dctx := context.WithoutCancel(ctx)
		if len(report.Created) > 0 {
			s.dispatcher.DispatchAlerts(dctx, report.Created)
		}
		s.dispatcher.NotifyScanCompleted(dctx, report.CreatedCount())
	}
	return report, nil
}

// scanRecord 返回新建的告警；无需告警或已有未关闭告警时返回 (nil, nil)
func (s *scanServiceImpl) scanRecord(ctx context.Context, rec entity.DeadlineRecord, now time.Time) (*entity.RiskAlert, error) {
	verdict, ok := s.classifier.Classify(rec.EntityType, rec.DueAt, now)
	if !ok {
		return nil, nil
	}
	open, err := s.alertRepo.FindOpen(ctx, rec.EntityType, rec.EntityID)
	if err != nil {
		return nil, err
	}
	if open != nil {
		return nil, nil
	}

	alert := buildAlert(rec, verdict)
	if err := s.alertRepo.Create(ctx, alert); err != nil {
		if errors.Is(err, repository.ErrAlertConflict) {
			return nil, nil
		}
		return nil, err
	}
	return alert, nil
}
