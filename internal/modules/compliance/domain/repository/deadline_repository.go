package repository

import (
	"context"

	"AeroComply/internal/modules/compliance/domain/entity"
)

// DeadlineReader 一类来源的只读视图，只返回截止期字段非空的记录
type DeadlineReader interface {
	Kind() entity.EntityType
	ListDue(ctx context.Context) ([]entity.DeadlineRecord, error)
}
