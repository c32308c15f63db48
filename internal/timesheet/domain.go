package timesheet

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/rangerclubhouse/clubhouse/internal/filters"
)

// Review statuses.
const (
	ReviewPending    = "pending"
	ReviewApproved   = "approved"
	ReviewRejected   = "rejected"
	ReviewVerified   = "verified"
	ReviewUnverified = "unverified"
)

// Timesheet is one on-duty entry.
type Timesheet struct {
	ID                int64            `json:"id" db:"id"`
	PersonID          int64            `json:"person_id" db:"person_id"`
	PositionID        int64            `json:"position_id" db:"position_id" validate:"required"`
	OnDuty            pgtype.Timestamp `json:"on_duty" db:"on_duty"`
	OffDuty           pgtype.Timestamp `json:"off_duty" db:"off_duty"`
	Notes             string           `json:"notes" db:"notes"`
	ReviewerNotes     string           `json:"reviewer_notes" db:"reviewer_notes"`
	ReviewStatus      string           `json:"review_status" db:"review_status" validate:"required,oneof=pending approved rejected verified unverified"`
	ReviewerPersonID  *int64           `json:"reviewer_person_id" db:"reviewer_person_id"`
	IsNonRanger       bool             `json:"is_non_ranger" db:"is_non_ranger"`
	DesiredPositionID *int64           `json:"desired_position_id" db:"desired_position_id"`
	DesiredOnDuty     pgtype.Timestamp `json:"desired_on_duty" db:"desired_on_duty"`
	DesiredOffDuty    pgtype.Timestamp `json:"desired_off_duty" db:"desired_off_duty"`
	CreatedAt         time.Time        `json:"created_at" db:"created_at"`
}

// ResourceName implements restapi.Record.
func (t *Timesheet) ResourceName() string { return filters.EntityTimesheet }

// RecordID implements restapi.Record.
func (t *Timesheet) RecordID() int64 { return t.ID }

// IsNew implements filters.Subject.
func (t *Timesheet) IsNew() bool { return t.ID == 0 }

// OwnerID implements filters.Subject.
func (t *Timesheet) OwnerID() (int64, bool) { return t.PersonID, t.PersonID != 0 }

// DefaultFields lists what reads emit; timesheet policies declare no
// outbound groups.
func (t *Timesheet) DefaultFields() []string {
	return []string{
		"person_id", "position_id", "on_duty", "off_duty", "notes",
		"reviewer_notes", "review_status", "reviewer_person_id", "is_non_ranger",
		"desired_position_id", "desired_on_duty", "desired_off_duty", "created_at",
	}
}

// Check reports cross-field problems the struct tags cannot express.
func (t *Timesheet) Check() map[string]string {
	problems := map[string]string{}
	if t.OffDuty.Valid && t.OnDuty.Valid && t.OffDuty.Time.Before(t.OnDuty.Time) {
		problems["off_duty"] = "The off duty time must be after the on duty time."
	}
	if t.DesiredOffDuty.Valid && t.DesiredOnDuty.Valid && t.DesiredOffDuty.Time.Before(t.DesiredOnDuty.Time) {
		problems["desired_off_duty"] = "The desired off duty time must be after the desired on duty time."
	}
	return problems
}
