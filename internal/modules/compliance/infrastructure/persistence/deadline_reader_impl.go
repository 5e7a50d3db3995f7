package persistence

import (
	"context"
	"fmt"
	"strings"

	"AeroComply/internal/modules/compliance/domain/entity"
	"AeroComply/internal/modules/compliance/domain/repository"

	"gorm.io/gorm"
)

// deadlineReader 通用只读实现：scope 负责筛出有截止期且仍然有效的记录
type deadlineReader[T any] struct {
	db       *gorm.DB
	kind     entity.EntityType
	scope    func(*gorm.DB) *gorm.DB
	toRecord func(T) entity.DeadlineRecord
}

func (r *deadlineReader[T]) Kind() entity.EntityType {
	return r.kind
}

func (r *deadlineReader[T]) ListDue(ctx context.Context) ([]entity.DeadlineRecord, error) {
	var rows []T
	if err := r.db.WithContext(ctx).Scopes(r.scope).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list %s deadlines: %w", r.kind, err)
	}
	out := make([]entity.DeadlineRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, r.toRecord(row))
	}
	return out, nil
}

// NewDeadlineReaders 五类来源，顺序与 entity.EntityTypes 一致
func NewDeadlineReaders(db *gorm.DB) []repository.DeadlineReader {
	return []repository.DeadlineReader{
		NewScheduledTaskReader(db),
		NewLifeLimitedComponentReader(db),
		NewLandingGearComponentReader(db),
		NewDefectReportReader(db),
		NewCertificateReader(db),
	}
}

func NewScheduledTaskReader(db *gorm.DB) repository.DeadlineReader {
	return &deadlineReader[entity.ScheduledTask]{
		db:   db,
		kind: entity.EntityScheduledTask,
		scope: func(q *gorm.DB) *gorm.DB {
			return q.Where("next_due_date IS NOT NULL").
				Where("(status IS NULL OR status <> ?)", "completed")
		},
		toRecord: func(t entity.ScheduledTask) entity.DeadlineRecord {
			return entity.DeadlineRecord{
				EntityType: entity.EntityScheduledTask,
				EntityID:   t.ID,
				AircraftID: t.AircraftID,
				DueAt:      t.NextDueDate,
				Reference:  "task " + t.TaskNumber,
				Detail:     strings.TrimSpace(t.Description),
			}
		},
	}
}

func NewLifeLimitedComponentReader(db *gorm.DB) repository.DeadlineReader {
	return &deadlineReader[entity.LifeLimitedComponent]{
		db:   db,
		kind: entity.EntityLifeLimitedComponent,
		scope: func(q *gorm.DB) *gorm.DB {
			return q.Where("expected_date IS NOT NULL")
		},
		toRecord: func(c entity.LifeLimitedComponent) entity.DeadlineRecord {
			var usage []string
			if c.FlightHoursLimit > 0 {
				usage = append(usage, fmt.Sprintf("%.0f/%.0f FH", c.CurrentHours, c.FlightHoursLimit))
			}
			if c.CycleLimit > 0 {
				usage = append(usage, fmt.Sprintf("%d/%d cycles", c.CurrentCycles, c.CycleLimit))
			}
			return entity.DeadlineRecord{
				EntityType: entity.EntityLifeLimitedComponent,
				EntityID:   c.ID,
				AircraftID: c.AircraftID,
				DueAt:      c.ExpectedDate,
				Reference:  fmt.Sprintf("P/N %s S/N %s", c.PartNumber, c.SerialNumber),
				Detail:     strings.Join(usage, ", "),
			}
		},
	}
}

func NewLandingGearComponentReader(db *gorm.DB) repository.DeadlineReader {
	return &deadlineReader[entity.LandingGearComponent]{
		db:   db,
		kind: entity.EntityLandingGearComponent,
		scope: func(q *gorm.DB) *gorm.DB {
			return q.Where("next_overhaul_date IS NOT NULL")
		},
		toRecord: func(c entity.LandingGearComponent) entity.DeadlineRecord {
			ref := fmt.Sprintf("P/N %s S/N %s", c.PartNumber, c.SerialNumber)
			if c.Position != "" {
				ref += " (" + c.Position + ")"
			}
			return entity.DeadlineRecord{
				EntityType: entity.EntityLandingGearComponent,
				EntityID:   c.ID,
				AircraftID: c.AircraftID,
				DueAt:      c.NextOverhaulDate,
				Reference:  ref,
			}
		},
	}
}

func NewDefectReportReader(db *gorm.DB) repository.DeadlineReader {
	return &deadlineReader[entity.DefectReport]{
		db:   db,
		kind: entity.EntityDefectReport,
		scope: func(q *gorm.DB) *gorm.DB {
			return q.Where("rectification_due IS NOT NULL").
				Where("status IN ?", []string{entity.DefectStatusOpen, entity.DefectStatusDeferred})
		},
		toRecord: func(d entity.DefectReport) entity.DeadlineRecord {
			detail := strings.TrimSpace(d.Description)
			if d.Category != "" {
				detail = strings.TrimSpace("category " + d.Category + ": " + detail)
			}
			return entity.DeadlineRecord{
				EntityType: entity.EntityDefectReport,
				EntityID:   d.ID,
				AircraftID: d.AircraftID,
				DueAt:      d.RectificationDue,
				Reference:  d.Reference,
				Detail:     detail,
			}
		},
	}
}

func NewCertificateReader(db *gorm.DB) repository.DeadlineReader {
	return &deadlineReader[entity.Certificate]{
		db:   db,
		kind: entity.EntityCertificate,
		scope: func(q *gorm.DB) *gorm.DB {
			return q.Where("expiry_date IS NOT NULL").Where("revoked = ?", false)
		},
		toRecord: func(c entity.Certificate) entity.DeadlineRecord {
			return entity.DeadlineRecord{
				EntityType: entity.EntityCertificate,
				EntityID:   c.ID,
				AircraftID: c.AircraftID,
				DueAt:      c.ExpiryDate,
				Reference:  strings.TrimSpace(c.CertificateType + " " + c.CertificateNumber),
			}
		},
	}
}
