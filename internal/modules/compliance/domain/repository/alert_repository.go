package repository

import (
	"context"
	"errors"
	"time"

	"AeroComply/internal/modules/compliance/domain/entity"
)

var (
	// ErrAlertNotFound 告警 ID 不存在
	ErrAlertNotFound = errors.New("risk alert not found")
	// ErrAlertConflict 同一来源记录已存在未关闭告警（并发插入竞争失败）
	ErrAlertConflict = errors.New("open risk alert already exists")
)

// AlertFilter 列表筛选条件，指针为空表示不过滤
type AlertFilter struct {
	AircraftID *string
	Severity   *entity.Severity
	IsResolved *bool
	Page       int
	PerPage    int
}

type AlertRepository interface {
	// FindOpen 查询来源记录当前未关闭的告警，不存在时返回 (nil, nil)
	FindOpen(ctx context.Context, entityType entity.EntityType, entityID string) (*entity.RiskAlert, error)
	// Create 插入新告警；唯一约束冲突返回 ErrAlertConflict
	Create(ctx context.Context, alert *entity.RiskAlert) error
	// Resolve 关闭告警，已关闭的告警原样返回
	Resolve(ctx context.Context, id string, now time.Time) (*entity.RiskAlert, error)
	GetByID(ctx context.Context, id string) (*entity.RiskAlert, error)
	// List 按 due_at 升序、severity 降序分页
	List(ctx context.Context, filter AlertFilter) ([]*entity.RiskAlert, int64, error)
}
