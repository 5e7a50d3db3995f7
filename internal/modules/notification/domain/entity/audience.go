package entity

// Aircraft 只读：飞机所属组织
type Aircraft struct {
	ID           string `gorm:"column:id;type:varchar(64);primaryKey"`
	Registration string `gorm:"column:registration;type:varchar(20)"`
	OrgID        string `gorm:"column:org_id;type:varchar(64);index"`
}

func (Aircraft) TableName() string { return "aircraft" }

// OrgMember 只读：组织成员
type OrgMember struct {
	OrgID  string `gorm:"column:org_id;type:varchar(64);primaryKey"`
	UserID string `gorm:"column:user_id;type:varchar(64);primaryKey"`
	Email  string `gorm:"column:email;type:varchar(120)"`
}

func (OrgMember) TableName() string { return "org_member" }

// Recipient 一条告警的接收人
type Recipient struct {
	UserID string
	Email  string
}

// Audience 告警的接收范围
type Audience struct {
	OrgID      string
	Recipients []Recipient
}
