package respond

import "AeroComply/internal/modules/compliance/domain/entity"

// AlertPageRespond 告警分页结果
type AlertPageRespond struct {
	Items   []*entity.RiskAlert `json:"items"`
	Total   int64               `json:"total"`
	Page    int                 `json:"page"`
	PerPage int                 `json:"per_page"`
	Pages   int                 `json:"pages"`
}

// ScanRespond 手动扫描结果
type ScanRespond struct {
	Created int `json:"created"`
}
