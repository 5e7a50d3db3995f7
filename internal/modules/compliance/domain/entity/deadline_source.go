package entity

import "time"

// 以下为只读的截止期来源记录，表结构由维修记录系统维护，本服务不做迁移

type ScheduledTask struct {
	ID          string     `gorm:"column:id;primaryKey"`
	AircraftID  *string    `gorm:"column:aircraft_id"`
	TaskNumber  string     `gorm:"column:task_number"`
	Description string     `gorm:"column:description"`
	Status      string     `gorm:"column:status"`
	NextDueDate *time.Time `gorm:"column:next_due_date"`
}

func (ScheduledTask) TableName() string { return "scheduled_task" }

type LifeLimitedComponent struct {
	ID               string     `gorm:"column:id;primaryKey"`
	AircraftID       *string    `gorm:"column:aircraft_id"`
	PartNumber       string     `gorm:"column:part_number"`
	SerialNumber     string     `gorm:"column:serial_number"`
	CurrentHours     float64    `gorm:"column:current_hours"`
	FlightHoursLimit float64    `gorm:"column:flight_hours_limit"`
	CurrentCycles    int        `gorm:"column:current_cycles"`
	CycleLimit       int        `gorm:"column:cycle_limit"`
	ExpectedDate     *time.Time `gorm:"column:expected_date"`
}

func (LifeLimitedComponent) TableName() string { return "life_limited_component" }

type LandingGearComponent struct {
	ID               string     `gorm:"column:id;primaryKey"`
	AircraftID       *string    `gorm:"column:aircraft_id"`
	PartNumber       string     `gorm:"column:part_number"`
	SerialNumber     string     `gorm:"column:serial_number"`
	Position         string     `gorm:"column:position"`
	NextOverhaulDate *time.Time `gorm:"column:next_overhaul_date"`
}

func (LandingGearComponent) TableName() string { return "landing_gear_component" }

// 缺陷状态
const (
	DefectStatusOpen     = "open"
	DefectStatusDeferred = "deferred"
	DefectStatusClosed   = "closed"
)

type DefectReport struct {
	ID               string     `gorm:"column:id;primaryKey"`
	AircraftID       *string    `gorm:"column:aircraft_id"`
	Reference        string     `gorm:"column:reference"`
	Description      string     `gorm:"column:description"`
	Category         string     `gorm:"column:category"`
	Status           string     `gorm:"column:status"`
	RectificationDue *time.Time `gorm:"column:rectification_due"`
}

func (DefectReport) TableName() string { return "defect_report" }

type Certificate struct {
	ID                string     `gorm:"column:id;primaryKey"`
	AircraftID        *string    `gorm:"column:aircraft_id"`
	CertificateType   string     `gorm:"column:certificate_type"`
	CertificateNumber string     `gorm:"column:certificate_number"`
	Revoked           bool       `gorm:"column:revoked"`
	ExpiryDate        *time.Time `gorm:"column:expiry_date"`
}

func (Certificate) TableName() string { return "certificate" }

// DeadlineRecord 扫描器看到的统一截止期视图
type DeadlineRecord struct {
	EntityType EntityType
	EntityID   string
	AircraftID *string
	DueAt      *time.Time
	// Reference 人类可读的标识，如件号+序号、任务号、缺陷编号
	Reference string
	// Detail 附加说明，拼接进告警正文
	Detail string
}
