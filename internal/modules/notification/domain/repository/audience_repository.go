package repository

import (
	"context"

	"AeroComply/internal/modules/notification/domain/entity"
)

// AudienceRepository 解析一架飞机相关的组织与成员；aircraftID 为空或未登记时返回空 Audience
type AudienceRepository interface {
	ListRecipients(ctx context.Context, aircraftID *string) (*entity.Audience, error)
}
