package entity

import (
	"fmt"
	"strings"
	"time"

	"AeroComply/pkg/util"

	"gorm.io/gorm"
)

// EntityType 截止期来源类型
type EntityType string

const (
	EntityScheduledTask        EntityType = "scheduled_task"
	EntityLifeLimitedComponent EntityType = "life_limited_component"
	EntityLandingGearComponent EntityType = "landing_gear_component"
	EntityDefectReport         EntityType = "defect_report"
	EntityCertificate          EntityType = "certificate"
)

// EntityTypes 扫描顺序
var EntityTypes = []EntityType{
	EntityScheduledTask,
	EntityLifeLimitedComponent,
	EntityLandingGearComponent,
	EntityDefectReport,
	EntityCertificate,
}

func (t EntityType) Valid() bool {
	for _, v := range EntityTypes {
		if v == t {
			return true
		}
	}
	return false
}

// Severity 告警等级，数值越大越严重：low < medium < high < critical
type Severity int8

const (
	SeverityLow Severity = iota + 1
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

var severityNames = map[Severity]string{
	SeverityLow:      "low",
	SeverityMedium:   "medium",
	SeverityHigh:     "high",
	SeverityCritical: "critical",
}

func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return fmt.Sprintf("severity(%d)", int8(s))
}

func (s Severity) Valid() bool {
	_, ok := severityNames[s]
	return ok
}

// ParseSeverity 解析等级名称（大小写不敏感）
func ParseSeverity(name string) (Severity, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for s, n := range severityNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown severity %q", name)
}

func (s Severity) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid severity %d", int8(s))
	}
	return []byte(s.String()), nil
}

func (s *Severity) UnmarshalText(b []byte) error {
	v, err := ParseSeverity(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// RiskAlert 合规风险告警。同一 (entity_type, entity_id) 至多一条未关闭告警，
// 由 OpenKey 上的唯一索引保证：未关闭时为 "<type>:<id>"，关闭后置 NULL
type RiskAlert struct {
	ID         string     `gorm:"column:id;type:char(36);primaryKey" json:"id"`
	EntityType EntityType `gorm:"column:entity_type;type:varchar(40);not null;index:idx_risk_alert_entity_open,priority:1" json:"entity_type"`
	EntityID   string     `gorm:"column:entity_id;type:varchar(64);not null;index:idx_risk_alert_entity_open,priority:2" json:"entity_id"`
	AircraftID *string    `gorm:"column:aircraft_id;type:varchar(64);index" json:"aircraft_id,omitempty"`
	Severity   Severity   `gorm:"column:severity;type:tinyint;not null;index" json:"severity"`
	Title      string     `gorm:"column:title;type:varchar(200);not null" json:"title"`
	Message    string     `gorm:"column:message;type:text" json:"message"`
	DueAt      *time.Time `gorm:"column:due_at;index" json:"due_at,omitempty"`
	IsResolved bool       `gorm:"column:is_resolved;not null;index:idx_risk_alert_entity_open,priority:3" json:"is_resolved"`
	ResolvedAt *time.Time `gorm:"column:resolved_at" json:"resolved_at,omitempty"`
	OpenKey    *string    `gorm:"column:open_key;type:varchar(120);uniqueIndex" json:"-"`
	CreatedAt  time.Time  `gorm:"column:created_at;not null;autoCreateTime" json:"created_at"`
}

func (RiskAlert) TableName() string {
	return "risk_alert"
}

// BeforeCreate 生成 ID，并为未关闭告警写入唯一键
func (a *RiskAlert) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = util.GenerateUUID()
	}
	if !a.IsResolved {
		key := OpenKeyFor(a.EntityType, a.EntityID)
		a.OpenKey = &key
	}
	return nil
}

// OpenKeyFor 未关闭告警的去重键
func OpenKeyFor(t EntityType, entityID string) string {
	return string(t) + ":" + entityID
}
