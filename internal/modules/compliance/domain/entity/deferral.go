package entity

import (
	"time"

	"AeroComply/pkg/util"

	"gorm.io/gorm"
)

// 缺陷保留申请状态
const (
	DeferralPending  = "pending"
	DeferralApproved = "approved"
	DeferralRejected = "rejected"
	DeferralExpired  = "expired"
)

// DeferralRequest 缺陷保留（MEL deferral）审批申请；超过 ExpiresAt 仍未审批的由定时任务置为过期
type DeferralRequest struct {
	ID          string     `gorm:"column:id;type:char(36);primaryKey" json:"id"`
	DefectID    string     `gorm:"column:defect_id;type:varchar(64);not null;index" json:"defect_id"`
	AircraftID  *string    `gorm:"column:aircraft_id;type:varchar(64)" json:"aircraft_id,omitempty"`
	RequestedBy string     `gorm:"column:requested_by;type:varchar(64)" json:"requested_by"`
	Status      string     `gorm:"column:status;type:varchar(20);not null;index:idx_deferral_status_expiry,priority:1" json:"status"`
	ExpiresAt   time.Time  `gorm:"column:expires_at;not null;index:idx_deferral_status_expiry,priority:2" json:"expires_at"`
	ExpiredAt   *time.Time `gorm:"column:expired_at" json:"expired_at,omitempty"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (DeferralRequest) TableName() string {
	return "deferral_request"
}

func (d *DeferralRequest) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = util.GenerateUUID()
	}
	if d.Status == "" {
		d.Status = DeferralPending
	}
	return nil
}
