package entity

import complianceEntity "AeroComply/internal/modules/compliance/domain/entity"

// Category 通知类别
type Category string

const (
	CategoryMandatoryDirective Category = "mandatory_directive"
	CategoryDefectCritical     Category = "defect_critical"
	CategoryDefectMajor        Category = "defect_major"
	CategoryDefectMinor        Category = "defect_minor"
	CategoryAogWorkOrder       Category = "aog_work_order"
	CategoryLifeLimitCritical  Category = "life_limit_critical"
	CategoryLandingGearDue     Category = "landing_gear_due"
	CategoryMaintenanceDue     Category = "maintenance_due"
	CategoryCertificateExpiry  Category = "certificate_expiry"
	CategoryPersonnelExpiry    Category = "personnel_expiry"
)

// CategoryFor 告警来源与等级对应的通知类别，缺陷按等级细分
func CategoryFor(t complianceEntity.EntityType, s complianceEntity.Severity) Category {
	switch t {
	case complianceEntity.EntityDefectReport:
		switch s {
		case complianceEntity.SeverityCritical:
			return CategoryDefectCritical
		case complianceEntity.SeverityHigh:
			return CategoryDefectMajor
		default:
			return CategoryDefectMinor
		}
	case complianceEntity.EntityLifeLimitedComponent:
		return CategoryLifeLimitCritical
	case complianceEntity.EntityLandingGearComponent:
		return CategoryLandingGearDue
	case complianceEntity.EntityScheduledTask:
		return CategoryMaintenanceDue
	case complianceEntity.EntityCertificate:
		return CategoryCertificateExpiry
	}
	return ""
}
