package request

// UpdatePreferencesRequest 整体替换通知偏好，缺省字段按 false 处理
type UpdatePreferencesRequest struct {
	MandatoryDirective bool `json:"mandatory_directive"`
	DefectCritical     bool `json:"defect_critical"`
	DefectMajor        bool `json:"defect_major"`
	DefectMinor        bool `json:"defect_minor"`
	AogWorkOrder       bool `json:"aog_work_order"`
	LifeLimitCritical  bool `json:"life_limit_critical"`
	LandingGearDue     bool `json:"landing_gear_due"`
	MaintenanceDue     bool `json:"maintenance_due"`
	CertificateExpiry  bool `json:"certificate_expiry"`
	PersonnelExpiry    bool `json:"personnel_expiry"`

	EmailEnabled    bool `json:"email_enabled"`
	PushEnabled     bool `json:"push_enabled"`
	RealtimeEnabled bool `json:"realtime_enabled"`
}

// BroadcastRequest 运营广播；org_id 为空时全局广播
type BroadcastRequest struct {
	Type    string `json:"type" binding:"required,max=64"`
	Message string `json:"message" binding:"max=2000"`
	OrgID   string `json:"org_id"`
}
