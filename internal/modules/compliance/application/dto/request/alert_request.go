package request

// ListAlertsRequest 告警列表查询参数，全部可选
type ListAlertsRequest struct {
	AircraftID string `form:"aircraft_id"`
	// Severity 等级名称
	Severity string `form:"severity" binding:"omitempty,oneof=low medium high critical"`
	// IsResolved true / false
	IsResolved string `form:"is_resolved"`
	// Page 默认 1
	Page int `form:"page"`
	// PerPage 默认 20，最大 100
	PerPage int `form:"per_page"`
}

// ResolveAlertRequest 关闭告警
type ResolveAlertRequest struct {
	ID string `uri:"id" binding:"required"`
}
