// Package risk 把截止日期换算成告警等级，纯函数，不做任何 I/O
package risk

import (
	"fmt"
	"time"

	"AeroComply/internal/modules/compliance/domain/entity"
)

const day = 24 * time.Hour

// Policy 一类来源的时间窗口；到期剩余时长 <= Critical 为 critical，<= Warning 为 high
type Policy struct {
	Critical time.Duration
	Warning  time.Duration
}

// Verdict 分级结果
type Verdict struct {
	Severity entity.Severity
	Overdue  bool
	// Days 逾期天数（向上取整，至少 1）或剩余天数（向下取整）
	Days int
}

// Phrase 正文中的状态描述
func (v Verdict) Phrase() string {
	if v.Overdue {
		return fmt.Sprintf("overdue by %d days", v.Days)
	}
	return fmt.Sprintf("due in %d days", v.Days)
}

type Classifier struct {
	Standard    Policy
	Certificate Policy
}

// DefaultClassifier 证书类 30/60 天，其余来源 3/7 天
func DefaultClassifier() Classifier {
	return NewClassifier(3, 7, 30, 60)
}

func NewClassifier(criticalDays, warningDays, certCriticalDays, certWarningDays int) Classifier {
	return Classifier{
		Standard:    Policy{Critical: time.Duration(criticalDays) * day, Warning: time.Duration(warningDays) * day},
		Certificate: Policy{Critical: time.Duration(certCriticalDays) * day, Warning: time.Duration(certWarningDays) * day},
	}
}

func (c Classifier) policyFor(kind entity.EntityType) Policy {
	if kind == entity.EntityCertificate {
		return c.Certificate
	}
	return c.Standard
}

// Classify 返回 (结果, 是否需要告警)。dueAt 为空永远不告警；从不产出 low/medium
func (c Classifier) Classify(kind entity.EntityType, dueAt *time.Time, now time.Time) (Verdict, bool) {
	if dueAt == nil {
		return Verdict{}, false
	}
	p := c.policyFor(kind)
	remaining := dueAt.Sub(now)

	if remaining < 0 {
		overdue := int((-remaining + day - 1) / day)
		return Verdict{Severity: entity.SeverityCritical, Overdue: true, Days: overdue}, true
	}

	days := int(remaining / day)
	switch {
	case remaining <= p.Critical:
		return Verdict{Severity: entity.SeverityCritical, Days: days}, true
	case remaining <= p.Warning:
		return Verdict{Severity: entity.SeverityHigh, Days: days}, true
	default:
		return Verdict{}, false
	}
}
