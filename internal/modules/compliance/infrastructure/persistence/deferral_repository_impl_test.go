package persistence

import (
	"context"
	"testing"
	"time"

	"AeroComply/internal/modules/compliance/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeferralRepository_ExpirePending(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewDeferralRepository(db)
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	stale := &entity.DeferralRequest{DefectID: "d-1", ExpiresAt: now.Add(-time.Hour)}
	fresh := &entity.DeferralRequest{DefectID: "d-2", ExpiresAt: now.Add(time.Hour)}
	approved := &entity.DeferralRequest{DefectID: "d-3", Status: entity.DeferralApproved, ExpiresAt: now.Add(-time.Hour)}
	for _, r := range []*entity.DeferralRequest{stale, fresh, approved} {
		require.NoError(t, repo.Create(ctx, r))
	}
	assert.Equal(t, entity.DeferralPending, stale.Status)

	n, err := repo.ExpirePending(ctx, now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	var got entity.DeferralRequest
	require.NoError(t, db.Where("id = ?", stale.ID).Take(&got).Error)
	assert.Equal(t, entity.DeferralExpired, got.Status)
	require.NotNil(t, got.ExpiredAt)

	require.NoError(t, db.Where("id = ?", fresh.ID).Take(&got).Error)
	assert.Equal(t, entity.DeferralPending, got.Status)
	require.NoError(t, db.Where("id = ?", approved.ID).Take(&got).Error)
	assert.Equal(t, entity.DeferralApproved, got.Status)

	n, err = repo.ExpirePending(ctx, now)
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)
}
