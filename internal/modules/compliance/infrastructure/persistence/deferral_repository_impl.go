package persistence

import (
	"context"
	"time"

	"AeroComply/internal/modules/compliance/domain/entity"
	"AeroComply/internal/modules/compliance/domain/repository"

	"gorm.io/gorm"
)

type deferralRepositoryImpl struct {
	db *gorm.DB
}

func NewDeferralRepository(db *gorm.DB) repository.DeferralRepository {
	return &deferralRepositoryImpl{db: db}
}

func (r *deferralRepositoryImpl) Create(ctx context.Context, req *entity.DeferralRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *deferralRepositoryImpl) ExpirePending(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&entity.DeferralRequest{}).
		Where("status = ? AND expires_at < ?", entity.DeferralPending, now).
		Updates(map[string]interface{}{
			"status":     entity.DeferralExpired,
			"expired_at": now,
		})
	return res.RowsAffected, res.Error
}
