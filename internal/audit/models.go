// Package audit keeps a best-effort activity log of submissions and exports in
// an embedded SQLite database. It is additive observability only: the tracking
// sheet stays the single source of truth, and a failed audit write never fails
// the user's interaction.
package audit

import "time"

type SubmissionEvent struct {
	ID           uint      `gorm:"primaryKey" json:"-"`
	EventID      string    `gorm:"uniqueIndex;size:36" json:"event_id"`
	At           time.Time `gorm:"index" json:"at"`
	Employee     string    `gorm:"index;size:255" json:"employee"`
	ANumber      string    `gorm:"size:64" json:"a_number"`
	PermitType   string    `gorm:"size:255" json:"permit_type"`
	PermitNumber string    `gorm:"size:255" json:"permit_number"`
	PermitDate   string    `gorm:"size:32" json:"permit_date"`
	Accepted     bool      `gorm:"index" json:"accepted"`
	Error        string    `gorm:"type:text" json:"error,omitempty"`
}

func (SubmissionEvent) TableName() string { return "submission_events" }

type ExportEvent struct {
	ID       uint      `gorm:"primaryKey" json:"-"`
	EventID  string    `gorm:"uniqueIndex;size:36" json:"event_id"`
	At       time.Time `gorm:"index" json:"at"`
	Filename string    `gorm:"size:255" json:"filename"`
	Rows     int       `json:"rows"`
	Filters  string    `gorm:"type:text" json:"filters,omitempty"`
}

func (ExportEvent) TableName() string { return "export_events" }
