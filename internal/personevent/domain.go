package personevent

import (
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/rangerclubhouse/clubhouse/internal/filters"
)

// PersonEvent holds a person's per-year flags. A row exists only once
// something has been written; until then reads see the zero record.
type PersonEvent struct {
	ID                             int64            `json:"id" db:"id"`
	PersonID                       int64            `json:"person_id" db:"person_id"`
	Year                           int              `json:"year" db:"year" validate:"gte=1990,lte=2100"`
	MayRequestStickers             bool             `json:"may_request_stickers" db:"may_request_stickers"`
	OrgVehicleInsurance            bool             `json:"org_vehicle_insurance" db:"org_vehicle_insurance"`
	SignedMotorpoolAgreement       bool             `json:"signed_motorpool_agreement" db:"signed_motorpool_agreement"`
	SignedPersonalVehicleAgreement bool             `json:"signed_personal_vehicle_agreement" db:"signed_personal_vehicle_agreement"`
	AssetAuthorized                bool             `json:"asset_authorized" db:"asset_authorized"`
	TimesheetConfirmed             bool             `json:"timesheet_confirmed" db:"timesheet_confirmed"`
	TimesheetConfirmedAt           pgtype.Timestamp `json:"timesheet_confirmed_at" db:"timesheet_confirmed_at"`
	SandmanAffidavit               bool             `json:"sandman_affidavit" db:"sandman_affidavit"`
	IgnoreMVR                      bool             `json:"ignore_mvr" db:"ignore_mvr"`
	IgnorePVR                      bool             `json:"ignore_pvr" db:"ignore_pvr"`
	PIIStartedAt                   pgtype.Timestamp `json:"pii_started_at" db:"pii_started_at"`
	PIIFinishedAt                  pgtype.Timestamp `json:"pii_finished_at" db:"pii_finished_at"`
	LMSCourseID                    string           `json:"lms_course_id" db:"lms_course_id" validate:"max=64"`
	LMSEnrollmentID                string           `json:"lms_enrollment_id" db:"lms_enrollment_id" validate:"max=64"`
	LMSEnrolledAt                  pgtype.Timestamp `json:"lms_enrolled_at" db:"lms_enrolled_at"`
}

// ResourceName implements restapi.Record.
func (pe *PersonEvent) ResourceName() string { return filters.EntityPersonEvent }

// RecordID implements restapi.Record.
func (pe *PersonEvent) RecordID() int64 { return pe.ID }

// IsNew always reports false. Every person has a logical record for every
// year, so the requester writing the first row does not become its owner.
func (pe *PersonEvent) IsNew() bool { return false }

// OwnerID implements filters.Subject.
func (pe *PersonEvent) OwnerID() (int64, bool) { return pe.PersonID, pe.PersonID != 0 }
