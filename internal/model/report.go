package model

import "time"

type ReportStatus string

const (
	ReportPending   ReportStatus = "PENDING"
	ReportReviewed  ReportStatus = "REVIEWED"
	ReportResolved  ReportStatus = "RESOLVED"
	ReportDismissed ReportStatus = "DISMISSED"
)

// Terminal reports accept no further transitions.
func (s ReportStatus) Terminal() bool {
	return s == ReportResolved || s == ReportDismissed
}

// Active is non-NULL while the report is open and NULLed out when it reaches
// a terminal status. Unique indexes skip NULLs, so the index allows at most
// one open report per (reporter, target) pair while any number of closed
// ones, and a concurrent duplicate create loses on the index rather than
// racing past a pre-check.
type Report struct {
	ID             uint64       `gorm:"primaryKey" json:"id"`
	ReporterID     uint64       `gorm:"not null;index;uniqueIndex:uk_report_open_pair" json:"reporter_id"`
	Reporter       *User        `gorm:"foreignKey:ReporterID" json:"reporter,omitempty"`
	ReportedUserID uint64       `gorm:"not null;index;uniqueIndex:uk_report_open_pair" json:"reported_user_id"`
	ReportedUser   *User        `gorm:"foreignKey:ReportedUserID" json:"reported_user,omitempty"`
	Reason         string       `gorm:"size:1000;not null" json:"reason"`
	Status         ReportStatus `gorm:"size:16;not null;default:PENDING;index" json:"status"`
	Active         *bool        `gorm:"uniqueIndex:uk_report_open_pair" json:"-"`
	AdminNotes     string       `gorm:"type:text" json:"admin_notes,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
	ResolvedAt     *time.Time   `json:"resolved_at,omitempty"`
}
