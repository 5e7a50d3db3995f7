package entity

import "time"

// NotificationPreferences 用户通知偏好，按类别与渠道分别开关。
// 首次读取时按默认值创建，写入时整行替换
type NotificationPreferences struct {
	UserID string `gorm:"column:user_id;type:varchar(64);primaryKey" json:"user_id"`

	MandatoryDirective bool `gorm:"column:mandatory_directive;not null" json:"mandatory_directive"`
	DefectCritical     bool `gorm:"column:defect_critical;not null" json:"defect_critical"`
	DefectMajor        bool `gorm:"column:defect_major;not null" json:"defect_major"`
	DefectMinor        bool `gorm:"column:defect_minor;not null" json:"defect_minor"`
	AogWorkOrder       bool `gorm:"column:aog_work_order;not null" json:"aog_work_order"`
	LifeLimitCritical  bool `gorm:"column:life_limit_critical;not null" json:"life_limit_critical"`
	LandingGearDue     bool `gorm:"column:landing_gear_due;not null" json:"landing_gear_due"`
	MaintenanceDue     bool `gorm:"column:maintenance_due;not null" json:"maintenance_due"`
	CertificateExpiry  bool `gorm:"column:certificate_expiry;not null" json:"certificate_expiry"`
	PersonnelExpiry    bool `gorm:"column:personnel_expiry;not null" json:"personnel_expiry"`

	EmailEnabled    bool `gorm:"column:email_enabled;not null" json:"email_enabled"`
	PushEnabled     bool `gorm:"column:push_enabled;not null" json:"push_enabled"`
	RealtimeEnabled bool `gorm:"column:realtime_enabled;not null" json:"realtime_enabled"`

	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (NotificationPreferences) TableName() string {
	return "notification_preference"
}

// DefaultPreferences 全部类别开启；邮件、实时开启，推送关闭
func DefaultPreferences(userID string) *NotificationPreferences {
	return &NotificationPreferences{
		UserID:             userID,
		MandatoryDirective: true,
		DefectCritical:     true,
		DefectMajor:        true,
		DefectMinor:        true,
		AogWorkOrder:       true,
		LifeLimitCritical:  true,
		LandingGearDue:     true,
		MaintenanceDue:     true,
		CertificateExpiry:  true,
		PersonnelExpiry:    true,
		EmailEnabled:       true,
		PushEnabled:        false,
		RealtimeEnabled:    true,
	}
}

// Allows 该类别是否开启；未知类别视为关闭
func (p *NotificationPreferences) Allows(c Category) bool {
	if p == nil {
		return false
	}
	switch c {
	case CategoryMandatoryDirective:
		return p.MandatoryDirective
	case CategoryDefectCritical:
		return p.DefectCritical
	case CategoryDefectMajor:
		return p.DefectMajor
	case CategoryDefectMinor:
		return p.DefectMinor
	case CategoryAogWorkOrder:
		return p.AogWorkOrder
	case CategoryLifeLimitCritical:
		return p.LifeLimitCritical
	case CategoryLandingGearDue:
		return p.LandingGearDue
	case CategoryMaintenanceDue:
		return p.MaintenanceDue
	case CategoryCertificateExpiry:
		return p.CertificateExpiry
	case CategoryPersonnelExpiry:
		return p.PersonnelExpiry
	default:
		return false
	}
}
