package persistence

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"AeroComply/internal/modules/compliance/domain/entity"
	"AeroComply/internal/modules/compliance/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAlert(kind entity.EntityType, id string, sev entity.Severity, due *time.Time) *entity.RiskAlert {
	return &entity.RiskAlert{
		EntityType: kind,
		EntityID:   id,
		AircraftID: ptr("ac-1"),
		Severity:   sev,
		Title:      "title " + id,
		Message:    "message " + id,
		DueAt:      due,
	}
}

func TestAlertRepository_CreateAndFindOpen(t *testing.T) {
	ctx := context.Background()
	repo := NewAlertRepository(newTestDB(t))

	got, err := repo.FindOpen(ctx, entity.EntityDefectReport, "d-1")
	require.NoError(t, err)
	assert.Nil(t, got)

	a := newAlert(entity.EntityDefectReport, "d-1", entity.SeverityCritical, nil)
	require.NoError(t, repo.Create(ctx, a))
	assert.NotEmpty(t, a.ID)

	got, err = repo.FindOpen(ctx, entity.EntityDefectReport, "d-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, a.ID, got.ID)
	assert.Equal(t, entity.SeverityCritical, got.Severity)
	assert.False(t, got.IsResolved)

	// same id under another kind is a different source record
	got, err = repo.FindOpen(ctx, entity.EntityScheduledTask, "d-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestAlertRepository_DuplicateOpenAlertConflicts(t *testing.T) {
	ctx := context.Background()
	repo := NewAlertRepository(newTestDB(t))

	require.NoError(t, repo.Create(ctx, newAlert(entity.EntityCertificate, "c-1", entity.SeverityHigh, nil)))
	err := repo.Create(ctx, newAlert(entity.EntityCertificate, "c-1", entity.SeverityCritical, nil))
	assert.ErrorIs(t, err, repository.ErrAlertConflict)
}

func TestAlertRepository_ConcurrentInsertsHaveOneWinner(t *testing.T) {
	ctx := context.Background()
	repo := NewAlertRepository(newTestDB(t))

	const racers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		wins      int
		conflicts int
	)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := repo.Create(ctx, newAlert(entity.EntityLandingGearComponent, "lg-1", entity.SeverityHigh, nil))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				wins++
			case assert.ErrorIs(t, err, repository.ErrAlertConflict):
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
	assert.Equal(t, racers-1, conflicts)

	resolved := false
	items, total, err := repo.List(ctx, repository.AlertFilter{IsResolved: &resolved})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Len(t, items, 1)
}

func TestAlertRepository_ResolveTransition(t *testing.T) {
	ctx := context.Background()
	repo := NewAlertRepository(newTestDB(t))

	a := newAlert(entity.EntityScheduledTask, "t-1", entity.SeverityCritical, nil)
	require.NoError(t, repo.Create(ctx, a))

	now := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	resolved, err := repo.Resolve(ctx, a.ID, now)
	require.NoError(t, err)
	assert.True(t, resolved.IsResolved)
	require.NotNil(t, resolved.ResolvedAt)
	assert.WithinDuration(t, now, *resolved.ResolvedAt, time.Second)

	got, err := repo.FindOpen(ctx, entity.EntityScheduledTask, "t-1")
	require.NoError(t, err)
	assert.Nil(t, got, "resolved alerts are excluded from FindOpen")

	// the same source record may now raise a fresh alert
	require.NoError(t, repo.Create(ctx, newAlert(entity.EntityScheduledTask, "t-1", entity.SeverityHigh, nil)))

	// resolving twice keeps the first resolution time
	again, err := repo.Resolve(ctx, a.ID, now.Add(time.Hour))
	require.NoError(t, err)
	assert.WithinDuration(t, now, *again.ResolvedAt, time.Second)

	stored, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsResolved)
	assert.Nil(t, stored.OpenKey)
}

func TestAlertRepository_ResolveUnknown(t *testing.T) {
	repo := NewAlertRepository(newTestDB(t))
	_, err := repo.Resolve(context.Background(), "missing", time.Now())
	assert.ErrorIs(t, err, repository.ErrAlertNotFound)

	_, err = repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrAlertNotFound)
}

func TestAlertRepository_ListFiltersAndOrdering(t *testing.T) {
	ctx := context.Background()
	repo := NewAlertRepository(newTestDB(t))
	base := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	mk := func(id string, aircraft string, sev entity.Severity, due *time.Time) *entity.RiskAlert {
		a := newAlert(entity.EntityDefectReport, id, sev, due)
		a.AircraftID = ptr(aircraft)
		require.NoError(t, repo.Create(ctx, a))
		return a
	}
	d1 := base.Add(day(1))
	d2 := base.Add(day(2))

	late := mk("late", "ac-1", entity.SeverityCritical, &d2)
	earlyHigh := mk("early-high", "ac-1", entity.SeverityHigh, &d1)
	earlyCrit := mk("early-crit", "ac-2", entity.SeverityCritical, &d1)
	noDue := mk("no-due", "ac-1", entity.SeverityLow, nil)

	items, total, err := repo.List(ctx, repository.AlertFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	assert.Equal(t, []string{earlyCrit.ID, earlyHigh.ID, late.ID, noDue.ID}, ids)

	items, total, err = repo.List(ctx, repository.AlertFilter{AircraftID: ptr("ac-2")})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, earlyCrit.ID, items[0].ID)

	crit := entity.SeverityCritical
	_, total, err = repo.List(ctx, repository.AlertFilter{Severity: &crit})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	_, err = repo.Resolve(ctx, late.ID, base)
	require.NoError(t, err)
	yes := true
	items, total, err = repo.List(ctx, repository.AlertFilter{IsResolved: &yes})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, late.ID, items[0].ID)

	items, total, err = repo.List(ctx, repository.AlertFilter{Page: 2, PerPage: 3})
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
	assert.Len(t, items, 1)
}

func TestNormalizePage(t *testing.T) {
	cases := []struct{ page, per, wantPage, wantPer int }{
		{0, 0, 1, 20},
		{-3, 5, 1, 5},
		{2, 500, 2, 100},
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf("%d/%d", c.page, c.per), func(t *testing.T) {
			p, pp := NormalizePage(c.page, c.per)
			assert.Equal(t, c.wantPage, p)
			assert.Equal(t, c.wantPer, pp)
		})
	}
}
