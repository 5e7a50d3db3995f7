package persistence

import (
	"context"
	"errors"
	"time"

	"AeroComply/internal/modules/compliance/domain/entity"
	"AeroComply/internal/modules/compliance/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	defaultPerPage = 20
	maxPerPage     = 100
)

type alertRepositoryImpl struct {
	db *gorm.DB
}

func NewAlertRepository(db *gorm.DB) repository.AlertRepository {
	return &alertRepositoryImpl{db: db}
}

func (r *alertRepositoryImpl) FindOpen(ctx context.Context, entityType entity.EntityType, entityID string) (*entity.RiskAlert, error) {
	var alert entity.RiskAlert
	err := r.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ? AND is_resolved = ?", entityType, entityID, false).
		Take(&alert).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &alert, nil
}

// Create 依赖 open_key 唯一索引做原子去重：冲突时不报错、影响行数为 0
func (r *alertRepositoryImpl) Create(ctx context.Context, alert *entity.RiskAlert) error {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(alert)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return repository.ErrAlertConflict
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrAlertConflict
	}
	return nil
}

func (r *alertRepositoryImpl) GetByID(ctx context.Context, id string) (*entity.RiskAlert, error) {
	var alert entity.RiskAlert
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&alert).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAlertNotFound
		}
		return nil, err
	}
	return &alert, nil
}

func (r *alertRepositoryImpl) Resolve(ctx context.Context, id string, now time.Time) (*entity.RiskAlert, error) {
	var out *entity.RiskAlert
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var alert entity.RiskAlert
		if err := tx.Where("id = ?", id).Take(&alert).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return repository.ErrAlertNotFound
			}
			return err
		}
		if alert.IsResolved {
			out = &alert
			return nil
		}

		res := tx.Model(&entity.RiskAlert{}).
			Where("id = ? AND is_resolved = ?", id, false).
			Updates(map[string]interface{}{
				"is_resolved": true,
				"resolved_at": now,
				"open_key":    nil,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// 并发关闭，重新读取最终状态
			if err := tx.Where("id = ?", id).Take(&alert).Error; err != nil {
				return err
			}
			out = &alert
			return nil
		}
		alert.IsResolved = true
		alert.ResolvedAt = &now
		alert.OpenKey = nil
		out = &alert
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// NormalizePage 页码从 1 开始，每页默认 20、最多 100
func NormalizePage(page, perPage int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	return page, perPage
}

func alertFilterScope(f repository.AlertFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.AircraftID != nil {
			db = db.Where("aircraft_id = ?", *f.AircraftID)
		}
		if f.Severity != nil {
			db = db.Where("severity = ?", *f.Severity)
		}
		if f.IsResolved != nil {
			db = db.Where("is_resolved = ?", *f.IsResolved)
		}
		return db
	}
}

func (r *alertRepositoryImpl) List(ctx context.Context, f repository.AlertFilter) ([]*entity.RiskAlert, int64, error) {
	page, perPage := NormalizePage(f.Page, f.PerPage)

	var total int64
	if err := r.db.WithContext(ctx).Model(&entity.RiskAlert{}).Scopes(alertFilterScope(f)).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var alerts []*entity.RiskAlert
	err := r.db.WithContext(ctx).
		Scopes(alertFilterScope(f)).
		Order("due_at IS NULL").
		Order("due_at ASC").
		Order("severity DESC").
		Order("created_at ASC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&alerts).Error
	if err != nil {
		return nil, 0, err
	}
	return alerts, total, nil
}
