package vehicle

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/rangerclubhouse/clubhouse/internal/filters"
	"github.com/rangerclubhouse/clubhouse/internal/personevent"
)

// Review statuses.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Vehicle is a vehicle registration request for an event year.
type Vehicle struct {
	ID               int64       `json:"id" db:"id"`
	PersonID         int64       `json:"person_id" db:"person_id"`
	EventYear        int         `json:"event_year" db:"event_year" validate:"required,gte=1990,lte=2100"`
	Type             string      `json:"type" db:"type" validate:"required,oneof=personal fleet"`
	VehicleClass     string      `json:"vehicle_class" db:"vehicle_class" validate:"max=64"`
	VehicleYear      string      `json:"vehicle_year" db:"vehicle_year" validate:"max=4"`
	VehicleMake      string      `json:"vehicle_make" db:"vehicle_make" validate:"max=64"`
	VehicleModel     string      `json:"vehicle_model" db:"vehicle_model" validate:"max=64"`
	VehicleColor     string      `json:"vehicle_color" db:"vehicle_color" validate:"max=64"`
	VehicleType      string      `json:"vehicle_type" db:"vehicle_type" validate:"max=64"`
	RentalNumber     string      `json:"rental_number" db:"rental_number" validate:"max=64"`
	LicenseNumber    string      `json:"license_number" db:"license_number" validate:"max=32"`
	LicenseState     string      `json:"license_state" db:"license_state" validate:"max=32"`
	RequestComment   string      `json:"request_comment" db:"request_comment"`
	DrivingSticker   string      `json:"driving_sticker" db:"driving_sticker" validate:"omitempty,oneof=none prepost staff other"`
	StickerNumber    string      `json:"sticker_number" db:"sticker_number" validate:"max=32"`
	FuelChit         string      `json:"fuel_chit" db:"fuel_chit" validate:"omitempty,oneof=none event single-use"`
	RangerLogo       string      `json:"ranger_logo" db:"ranger_logo" validate:"omitempty,oneof=none permanent-new permanent-existing event"`
	AmberLight       string      `json:"amber_light" db:"amber_light" validate:"omitempty,oneof=none department already-has"`
	TeamAssignment   string      `json:"team_assignment" db:"team_assignment" validate:"max=64"`
	Status           string      `json:"status" db:"status" validate:"required,oneof=pending approved rejected"`
	ResponseComment  string      `json:"response_comment" db:"response_comment"`
	Notes            string      `json:"notes" db:"notes"`
	MaintenanceNotes string      `json:"maintenance_notes" db:"maintenance_notes"`
	LastServiceDate  pgtype.Date `json:"last_service_date" db:"last_service_date"`
	Odometer         int         `json:"odometer" db:"odometer" validate:"gte=0"`
	CreatedAt        time.Time   `json:"created_at" db:"created_at"`

	Paperwork *personevent.PersonEvent `json:"-" db:"-"`
}

// ResourceName implements restapi.Record.
func (v *Vehicle) ResourceName() string { return filters.EntityVehicle }

// RecordID implements restapi.Record.
func (v *Vehicle) RecordID() int64 { return v.ID }

// IsNew implements filters.Subject.
func (v *Vehicle) IsNew() bool { return v.ID == 0 }

// OwnerID implements filters.Subject.
func (v *Vehicle) OwnerID() (int64, bool) { return v.PersonID, v.PersonID != 0 }

// Computed exposes the owner's paperwork flags for the vehicle's year.
func (v *Vehicle) Computed(field string) (any, bool) {
	pe := v.Paperwork
	if pe == nil {
		pe = &personevent.PersonEvent{}
	}
	switch field {
	case "org_vehicle_insurance":
		return pe.OrgVehicleInsurance, true
	case "signed_motorpool_agreement":
		return pe.SignedMotorpoolAgreement, true
	case "signed_personal_vehicle_agreement":
		return pe.SignedPersonalVehicleAgreement, true
	case "ignore_mvr":
		return pe.IgnoreMVR, true
	case "ignore_pvr":
		return pe.IgnorePVR, true
	}
	return nil, false
}

// Filter narrows vehicle listings.
type Filter struct {
	PersonID int64
	Year     int
}
