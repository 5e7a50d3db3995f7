package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"AeroComply/internal/modules/compliance/application/dto/request"
	"AeroComply/internal/modules/compliance/domain/entity"
	"AeroComply/internal/modules/compliance/domain/repository"
	"AeroComply/pkg/xerr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type listingRepo struct {
	repository.AlertRepository
	gotFilter  repository.AlertFilter
	items      []*entity.RiskAlert
	total      int64
	resolveErr error
}

func (r *listingRepo) List(ctx context.Context, f repository.AlertFilter) ([]*entity.RiskAlert, int64, error) {
	r.gotFilter = f
	return r.items, r.total, nil
}

func (r *listingRepo) Resolve(ctx context.Context, id string, now time.Time) (*entity.RiskAlert, error) {
	if r.resolveErr != nil {
		return nil, r.resolveErr
	}
	return &entity.RiskAlert{ID: id, IsResolved: true, ResolvedAt: &now}, nil
}

type countingScan struct{ created int }

func (s *countingScan) RunScan(ctx context.Context, trigger string) (*ScanReport, error) {
	report := &ScanReport{Trigger: trigger}
	for i := 0; i < s.created; i++ {
		report.Created = append(report.Created, &entity.RiskAlert{})
	}
	return report, nil
}

func TestListAlerts_BuildsFilterAndPages(t *testing.T) {
	repo := &listingRepo{items: []*entity.RiskAlert{{ID: "a"}}, total: 41}
	svc := NewAlertService(repo, &countingScan{})

	page, err := svc.ListAlerts(context.Background(), request.ListAlertsRequest{
		AircraftID: " ac-1 ",
		Severity:   "High",
		IsResolved: "false",
		Page:       2,
		PerPage:    20,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Pages)
	assert.EqualValues(t, 41, page.Total)
	assert.Equal(t, 2, page.Page)

	f := repo.gotFilter
	require.NotNil(t, f.AircraftID)
	assert.Equal(t, "ac-1", *f.AircraftID)
	require.NotNil(t, f.Severity)
	assert.Equal(t, entity.SeverityHigh, *f.Severity)
	require.NotNil(t, f.IsResolved)
	assert.False(t, *f.IsResolved)
}

func TestListAlerts_EmptyResultHasItemsSlice(t *testing.T) {
	svc := NewAlertService(&listingRepo{}, &countingScan{})
	page, err := svc.ListAlerts(context.Background(), request.ListAlertsRequest{PerPage: 500})
	require.NoError(t, err)
	assert.NotNil(t, page.Items)
	assert.Equal(t, 0, page.Pages)
	assert.Equal(t, 100, page.PerPage)
	assert.Equal(t, 1, page.Page)
}

func TestListAlerts_RejectsBadParams(t *testing.T) {
	svc := NewAlertService(&listingRepo{}, &countingScan{})
	cases := []request.ListAlertsRequest{
		{Severity: "urgent"},
		{IsResolved: "maybe"},
	}
	for _, req := range cases {
		_, err := svc.ListAlerts(context.Background(), req)
		assert.Equal(t, xerr.BadRequest, xerr.CodeOf(err))
	}
}

func TestResolveAlert_MapsErrors(t *testing.T) {
	svc := NewAlertService(&listingRepo{resolveErr: repository.ErrAlertNotFound}, &countingScan{})
	_, err := svc.ResolveAlert(context.Background(), "missing")
	assert.Equal(t, xerr.NotFound, xerr.CodeOf(err))

	svc = NewAlertService(&listingRepo{resolveErr: errors.New("conn reset")}, &countingScan{})
	_, err = svc.ResolveAlert(context.Background(), "x")
	assert.Equal(t, xerr.InternalServerError, xerr.CodeOf(err))

	_, err = svc.ResolveAlert(context.Background(), "  ")
	assert.Equal(t, xerr.BadRequest, xerr.CodeOf(err))

	svc = NewAlertService(&listingRepo{}, &countingScan{})
	alert, err := svc.ResolveAlert(context.Background(), "a-1")
	require.NoError(t, err)
	assert.True(t, alert.IsResolved)
}

func TestTriggerScan_ReturnsCreatedCount(t *testing.T) {
	svc := NewAlertService(&listingRepo{}, &countingScan{created: 3})
	out, err := svc.TriggerScan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, out.Created)
}
