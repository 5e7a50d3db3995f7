package persistence

import (
	"context"
	"testing"
	"time"

	"AeroComply/internal/modules/compliance/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeadlineReaders_OnlyReturnDatedActiveRecords(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	due := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, db.Create([]entity.ScheduledTask{
		{ID: "t-open", AircraftID: ptr("ac-1"), TaskNumber: "32-11-01", Description: "MLG inspection", Status: "open", NextDueDate: &due},
		{ID: "t-done", TaskNumber: "32-11-02", Status: "completed", NextDueDate: &due},
		{ID: "t-undated", TaskNumber: "32-11-03", Status: "open"},
	}).Error)
	require.NoError(t, db.Create([]entity.LifeLimitedComponent{
		{ID: "llc-1", AircraftID: ptr("ac-1"), PartNumber: "PN1", SerialNumber: "SN1", CurrentHours: 19999, FlightHoursLimit: 20000, ExpectedDate: &due},
		{ID: "llc-2", PartNumber: "PN2", SerialNumber: "SN2"},
	}).Error)
	require.NoError(t, db.Create([]entity.LandingGearComponent{
		{ID: "lg-1", PartNumber: "LG1", SerialNumber: "S1", Position: "NLG", NextOverhaulDate: &due},
	}).Error)
	require.NoError(t, db.Create([]entity.DefectReport{
		{ID: "d-open", Reference: "DR-100", Status: entity.DefectStatusOpen, Category: "B", Description: "hydraulic leak", RectificationDue: &due},
		{ID: "d-deferred", Reference: "DR-101", Status: entity.DefectStatusDeferred, RectificationDue: &due},
		{ID: "d-closed", Reference: "DR-102", Status: entity.DefectStatusClosed, RectificationDue: &due},
	}).Error)
	require.NoError(t, db.Create([]entity.Certificate{
		{ID: "c-1", CertificateType: "ARC", CertificateNumber: "A-77", ExpiryDate: &due},
		{ID: "c-revoked", CertificateType: "ARC", CertificateNumber: "A-78", Revoked: true, ExpiryDate: &due},
	}).Error)

	readers := NewDeadlineReaders(db)
	require.Len(t, readers, len(entity.EntityTypes))

	got := map[entity.EntityType][]entity.DeadlineRecord{}
	for i, r := range readers {
		assert.Equal(t, entity.EntityTypes[i], r.Kind())
		recs, err := r.ListDue(ctx)
		require.NoError(t, err)
		got[r.Kind()] = recs
	}

	require.Len(t, got[entity.EntityScheduledTask], 1)
	task := got[entity.EntityScheduledTask][0]
	assert.Equal(t, "t-open", task.EntityID)
	assert.Equal(t, "task 32-11-01", task.Reference)
	require.NotNil(t, task.AircraftID)
	assert.Equal(t, "ac-1", *task.AircraftID)
	require.NotNil(t, task.DueAt)
	assert.True(t, due.Equal(*task.DueAt))

	require.Len(t, got[entity.EntityLifeLimitedComponent], 1)
	llc := got[entity.EntityLifeLimitedComponent][0]
	assert.Equal(t, "P/N PN1 S/N SN1", llc.Reference)
	assert.Equal(t, "19999/20000 FH", llc.Detail)

	require.Len(t, got[entity.EntityLandingGearComponent], 1)
	assert.Equal(t, "P/N LG1 S/N S1 (NLG)", got[entity.EntityLandingGearComponent][0].Reference)

	defects := got[entity.EntityDefectReport]
	require.Len(t, defects, 2)
	ids := []string{defects[0].EntityID, defects[1].EntityID}
	assert.ElementsMatch(t, []string{"d-open", "d-deferred"}, ids)

	require.Len(t, got[entity.EntityCertificate], 1)
	assert.Equal(t, "ARC A-77", got[entity.EntityCertificate][0].Reference)
}

func TestDeadlineReader_WrapsQueryError(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Migrator().DropTable(&entity.Certificate{}))

	_, err := NewCertificateReader(db).ListDue(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list certificate deadlines")
}
