package person

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/rangerclubhouse/clubhouse/internal/filters"
)

// Person is a Ranger account row. Field json names double as column names.
type Person struct {
	ID                       int64       `json:"id" db:"id"`
	FirstName                string      `json:"first_name" db:"first_name" validate:"required,max=25"`
	MI                       string      `json:"mi" db:"mi" validate:"max=10"`
	LastName                 string      `json:"last_name" db:"last_name" validate:"required,max=25"`
	Gender                   string      `json:"gender" db:"gender" validate:"max=32"`
	Pronouns                 string      `json:"pronouns" db:"pronouns" validate:"max=64"`
	Callsign                 string      `json:"callsign" db:"callsign" validate:"required,max=64"`
	CallsignApproved         bool        `json:"callsign_approved" db:"callsign_approved"`
	CallsignPronounce        string      `json:"callsign_pronounce" db:"callsign_pronounce" validate:"max=200"`
	FormerlyKnownAs          string      `json:"formerly_known_as" db:"formerly_known_as" validate:"max=200"`
	Status                   string      `json:"status" db:"status" validate:"required,oneof=active alpha auditor bonked deceased dismissed echelon inactive inactive_extension non_ranger past_prospective prospective resigned retired suspended uberbonked"`
	StatusDate               pgtype.Date `json:"status_date" db:"status_date"`
	Vintage                  bool        `json:"vintage" db:"vintage"`
	DateVerified             pgtype.Date `json:"date_verified" db:"date_verified"`
	Email                    string      `json:"email" db:"email" validate:"required,email,max=50"`
	Street1                  string      `json:"street1" db:"street1" validate:"max=128"`
	Street2                  string      `json:"street2" db:"street2" validate:"max=128"`
	Apt                      string      `json:"apt" db:"apt" validate:"max=10"`
	City                     string      `json:"city" db:"city" validate:"max=50"`
	State                    string      `json:"state" db:"state" validate:"max=128"`
	Zip                      string      `json:"zip" db:"zip" validate:"max=10"`
	Country                  string      `json:"country" db:"country" validate:"max=25"`
	HomePhone                string      `json:"home_phone" db:"home_phone" validate:"max=25"`
	AltPhone                 string      `json:"alt_phone" db:"alt_phone" validate:"max=25"`
	Birthdate                pgtype.Date `json:"birthdate" db:"birthdate"`
	CampLocation             string      `json:"camp_location" db:"camp_location" validate:"max=200"`
	TeeshirtSizeStyle        string      `json:"teeshirt_size_style" db:"teeshirt_size_style"`
	LongsleeveshirtSizeStyle string      `json:"longsleeveshirt_size_style" db:"longsleeveshirt_size_style"`
	EmergencyContact         string      `json:"emergency_contact" db:"emergency_contact"`
	BPGUID                   *string     `json:"bpguid" db:"bpguid"`
	SFUID                    *string     `json:"sfuid" db:"sfuid"`
	OnSite                   bool        `json:"on_site" db:"on_site"`
	ArrivalDate              pgtype.Date `json:"arrival_date" db:"arrival_date"`
	BehavioralAgreement      bool        `json:"behavioral_agreement" db:"behavioral_agreement"`
	HasNoteOnFile            bool        `json:"has_note_on_file" db:"has_note_on_file"`
	LAMStatus                string      `json:"lam_status" db:"lam_status" validate:"omitempty,oneof=none pending active"`
	LAMUsername              string      `json:"lam_username" db:"lam_username"`
	SMSOnPlaya               string      `json:"sms_on_playa" db:"sms_on_playa" validate:"max=25"`
	SMSOffPlaya              string      `json:"sms_off_playa" db:"sms_off_playa" validate:"max=25"`
	SMSVerified              bool        `json:"sms_verified" db:"sms_verified"`
	MentorsNotes             string      `json:"mentors_notes" db:"mentors_notes"`
	MentorsFlag              bool        `json:"mentors_flag" db:"mentors_flag"`
	CreatedAt                time.Time   `json:"created_at" db:"created_at"`

	PasswordHash string   `json:"-" db:"password"`
	RoleNames    []string `json:"-" db:"-"`
	Teams        []string `json:"-" db:"-"`
}

// ResourceName implements restapi.Record.
func (p *Person) ResourceName() string { return filters.EntityPerson }

// RecordID implements restapi.Record.
func (p *Person) RecordID() int64 { return p.ID }

// IsNew implements filters.Subject.
func (p *Person) IsNew() bool { return p.ID == 0 }

// OwnerID implements filters.Subject. A person owns their own record.
func (p *Person) OwnerID() (int64, bool) { return p.ID, p.ID != 0 }

// Computed exposes the roles and teams pseudo-fields.
func (p *Person) Computed(field string) (any, bool) {
	switch field {
	case "roles":
		return nonNil(p.RoleNames), true
	case "teams":
		return nonNil(p.Teams), true
	}
	return nil, false
}

func nonNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

// DefaultFields is used by trusted callers with no requester.
func (p *Person) DefaultFields() []string {
	return []string{"callsign", "first_name", "last_name", "status", "email"}
}
