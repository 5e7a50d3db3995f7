package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"AeroComply/internal/modules/compliance/application/service"
	"AeroComply/pkg/metrics"
	"AeroComply/pkg/zlog"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	JobRiskScan       = "risk_scan"
	JobDeferralExpiry = "deferral_expiry"
)

type Options struct {
	ScanSpec       string
	ExpirySpec     string
	RunScanOnStart bool
}

// SchedulerManager 驱动周期性风险扫描与保留申请过期。
// 每个任务体都有独立的失败边界：错误只记录，panic 由 cron.Recover 兜住
type SchedulerManager struct {
	scanSvc   service.ScanService
	expirySvc service.ExpiryService
	opts      Options

	mu      sync.Mutex
	cron    *cron.Cron
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

func NewSchedulerManager(scanSvc service.ScanService, expirySvc service.ExpiryService, opts Options) *SchedulerManager {
	return &SchedulerManager{
		scanSvc:   scanSvc,
		expirySvc: expirySvc,
		opts:      opts,
	}
}

// Start 注册任务并启动调度；重复调用直接返回
func (m *SchedulerManager) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running {
		return nil
	}

	logger := cronLogger{}
	c := cron.New(cron.WithChain(
		// Recover 在内层，panic 后 SkipIfStillRunning 仍能归还令牌
		cron.SkipIfStillRunning(logger),
		cron.Recover(logger),
	), cron.WithLogger(logger))

	ctx, cancel := context.WithCancel(context.Background())

	if m.scanSvc != nil && m.opts.ScanSpec != "" {
		if _, err := c.AddFunc(m.opts.ScanSpec, func() { m.runScan(ctx) }); err != nil {
			cancel()
			return fmt.Errorf("schedule %s %q: %w", JobRiskScan, m.opts.ScanSpec, err)
		}
	}
	if m.expirySvc != nil && m.opts.ExpirySpec != "" {
		if _, err := c.AddFunc(m.opts.ExpirySpec, func() { m.runExpiry(ctx) }); err != nil {
			cancel()
			return fmt.Errorf("schedule %s %q: %w", JobDeferralExpiry, m.opts.ExpirySpec, err)
		}
	}

	m.cron = c
	m.cancel = cancel
	m.running = true
	c.Start()

	if m.opts.RunScanOnStart && m.scanSvc != nil {
		m.wg.Add(1)
		go func() {
			defer m.wg.Done()
			defer func() {
				if r := recover(); r != nil {
					metrics.JobRuns.WithLabelValues(JobRiskScan, "panic").Inc()
					zlog.Error("startup risk scan panic", zap.Any("panic", r))
				}
			}()
			m.runScan(ctx)
		}()
	}

	zlog.Info("compliance scheduler started",
		zap.String("scan_spec", m.opts.ScanSpec),
		zap.String("expiry_spec", m.opts.ExpirySpec))
	return nil
}

// Stop 停止调度并等待正在执行的任务结束，之后不会再触发；未启动时调用是安全的
func (m *SchedulerManager) Stop(ctx context.Context) error {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return nil
	}
	c := m.cron
	cancel := m.cancel
	m.running = false
	m.cron = nil
	m.mu.Unlock()

	done := make(chan struct{})
	go func() {
		<-c.Stop().Done()
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		cancel()
		zlog.Info("compliance scheduler stopped")
		return nil
	case <-ctx.Done():
		cancel()
		return errors.Join(errors.New("scheduler stop timed out"), ctx.Err())
	}
}

func (m *SchedulerManager) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

func (m *SchedulerManager) runScan(ctx context.Context) {
	report, err := m.scanSvc.RunScan(ctx, service.TriggerScheduled)
	if err != nil {
		metrics.JobRuns.WithLabelValues(JobRiskScan, "error").Inc()
		zlog.Error("scheduled risk scan failed", zap.Error(err))
		return
	}
	result := "ok"
	if len(report.Errors()) > 0 {
		result = "partial"
	}
	metrics.JobRuns.WithLabelValues(JobRiskScan, result).Inc()
}

func (m *SchedulerManager) runExpiry(ctx context.Context) {
	if _, err := m.expirySvc.ExpireStaleDeferrals(ctx); err != nil {
		metrics.JobRuns.WithLabelValues(JobDeferralExpiry, "error").Inc()
		zlog.Error("deferral expiry job failed", zap.Error(err))
		return
	}
	metrics.JobRuns.WithLabelValues(JobDeferralExpiry, "ok").Inc()
}

// cronLogger 把 cron 的内部日志转到 zlog
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	zlog.Debug("cron: "+msg, kvFields(keysAndValues)...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	fields := append(kvFields(keysAndValues), zap.Error(err))
	zlog.Error("cron: "+msg, fields...)
	if msg == "panic" {
		metrics.JobRuns.WithLabelValues("cron", "panic").Inc()
	}
}

func kvFields(kv []interface{}) []zap.Field {
	fields := make([]zap.Field, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			key = fmt.Sprint(kv[i])
		}
		if t, ok := kv[i+1].(time.Time); ok {
			fields = append(fields, zap.Time(key, t))
			continue
		}
		fields = append(fields, zap.Any(key, kv[i+1]))
	}
	return fields
}
