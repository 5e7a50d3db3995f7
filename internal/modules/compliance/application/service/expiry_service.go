package service

import (
	"context"
	"time"

	"AeroComply/internal/modules/compliance/domain/repository"
	"AeroComply/pkg/zlog"

	"go.uber.org/zap"
)

// ExpiryService 过期未审批的缺陷保留申请
type ExpiryService interface {
	ExpireStaleDeferrals(ctx context.Context) (int64, error)
}

type expiryServiceImpl struct {
	deferralRepo repository.DeferralRepository
	now          func() time.Time
}

func NewExpiryService(deferralRepo repository.DeferralRepository) ExpiryService {
	return &expiryServiceImpl{deferralRepo: deferralRepo, now: time.Now}
}

func (s *expiryServiceImpl) ExpireStaleDeferrals(ctx context.Context) (int64, error) {
	n, err := s.deferralRepo.ExpirePending(ctx, s.now())
	if err != nil {
		zlog.Error("expire stale deferrals failed", zap.Error(err))
		return 0, err
	}
	if n > 0 {
		zlog.Info("stale deferrals expired", zap.Int64("count", n))
	}
	return n, nil
}
