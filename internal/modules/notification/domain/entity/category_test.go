package entity

import (
	"testing"

	complianceEntity "AeroComply/internal/modules/compliance/domain/entity"

	"github.com/stretchr/testify/assert"
)

func TestCategoryFor(t *testing.T) {
	cases := []struct {
		kind complianceEntity.EntityType
		sev  complianceEntity.Severity
		want Category
	}{
		{complianceEntity.EntityDefectReport, complianceEntity.SeverityCritical, CategoryDefectCritical},
		{complianceEntity.EntityDefectReport, complianceEntity.SeverityHigh, CategoryDefectMajor},
		{complianceEntity.EntityDefectReport, complianceEntity.SeverityMedium, CategoryDefectMinor},
		{complianceEntity.EntityDefectReport, complianceEntity.SeverityLow, CategoryDefectMinor},
		{complianceEntity.EntityLifeLimitedComponent, complianceEntity.SeverityCritical, CategoryLifeLimitCritical},
		{complianceEntity.EntityLandingGearComponent, complianceEntity.SeverityHigh, CategoryLandingGearDue},
		{complianceEntity.EntityScheduledTask, complianceEntity.SeverityHigh, CategoryMaintenanceDue},
		{complianceEntity.EntityCertificate, complianceEntity.SeverityCritical, CategoryCertificateExpiry},
		{complianceEntity.EntityType("work_order"), complianceEntity.SeverityCritical, ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CategoryFor(tc.kind, tc.sev), "%s/%s", tc.kind, tc.sev)
	}
}

func TestDefaultPreferencesAllowEveryCategory(t *testing.T) {
	p := DefaultPreferences("u-1")
	for _, c := range []Category{
		CategoryMandatoryDirective, CategoryDefectCritical, CategoryDefectMajor, CategoryDefectMinor,
		CategoryAogWorkOrder, CategoryLifeLimitCritical, CategoryLandingGearDue, CategoryMaintenanceDue,
		CategoryCertificateExpiry, CategoryPersonnelExpiry,
	} {
		assert.True(t, p.Allows(c), string(c))
	}
	assert.True(t, p.EmailEnabled)
	assert.False(t, p.PushEnabled)
	assert.True(t, p.RealtimeEnabled)

	p.DefectMinor = false
	assert.False(t, p.Allows(CategoryDefectMinor))
	assert.False(t, p.Allows(Category("unknown")))

	var nilPrefs *NotificationPreferences
	assert.False(t, nilPrefs.Allows(CategoryDefectCritical))
}
