package repository

import (
	"context"
	"time"

	"AeroComply/internal/modules/compliance/domain/entity"
)

type DeferralRepository interface {
	Create(ctx context.Context, req *entity.DeferralRequest) error
	// ExpirePending 把 ExpiresAt 早于 now 的 pending 申请置为 expired，返回影响行数
	ExpirePending(ctx context.Context, now time.Time) (int64, error)
}
