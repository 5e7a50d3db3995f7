package service

import (
	"fmt"
	"strings"

	"AeroComply/internal/modules/compliance/domain/entity"
	"AeroComply/internal/modules/compliance/domain/risk"
)

type alertTemplate struct {
	title   string // 标题前缀，后面接 Reference
	overdue string // 已逾期时使用的标题前缀，空表示沿用 title
	subject string // 正文主语
}

var alertTemplates = map[entity.EntityType]alertTemplate{
	entity.EntityScheduledTask: {
		title:   "Maintenance due",
		overdue: "Maintenance overdue",
		subject: "Scheduled maintenance",
	},
	entity.EntityLifeLimitedComponent: {
		title:   "Life limit approaching",
		overdue: "Life limit exceeded",
		subject: "Life-limited component",
	},
	entity.EntityLandingGearComponent: {
		title:   "Landing gear overhaul due",
		overdue: "Landing gear overhaul overdue",
		subject: "Landing gear component",
	},
	entity.EntityDefectReport: {
		title:   "Defect rectification due",
		overdue: "Defect rectification overdue",
		subject: "Defect",
	},
	entity.EntityCertificate: {
		title:   "Certificate expiring",
		overdue: "Certificate expired",
		subject: "Certificate",
	},
}

// buildAlert 按来源类型套用标题与正文模板
func buildAlert(rec entity.DeadlineRecord, v risk.Verdict) *entity.RiskAlert {
	tpl, ok := alertTemplates[rec.EntityType]
	if !ok {
		tpl = alertTemplate{title: "Compliance deadline", subject: "Record"}
	}
	ref := rec.Reference
	if ref == "" {
		ref = rec.EntityID
	}

	prefix := tpl.title
	if v.Overdue && tpl.overdue != "" {
		prefix = tpl.overdue
	}

	var b strings.Builder
	b.WriteString(tpl.subject)
	b.WriteString(" ")
	b.WriteString(ref)
	if rec.AircraftID != nil && *rec.AircraftID != "" {
		b.WriteString(" on aircraft ")
		b.WriteString(*rec.AircraftID)
	}
	b.WriteString(" is ")
	b.WriteString(v.Phrase())
	if rec.DueAt != nil {
		fmt.Fprintf(&b, " (%s)", rec.DueAt.UTC().Format("2006-01-02"))
	}
	b.WriteString(".")
	if rec.Detail != "" {
		b.WriteString(" ")
		b.WriteString(rec.Detail)
	}

	return &entity.RiskAlert{
		EntityType: rec.EntityType,
		EntityID:   rec.EntityID,
		AircraftID: rec.AircraftID,
		Severity:   v.Severity,
		Title:      prefix + ": " + ref,
		Message:    b.String(),
		DueAt:      rec.DueAt,
	}
}
