package restapi

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"

	"github.com/rangerclubhouse/clubhouse/internal/shared"
)

type shiftStart struct{ at time.Time }

func (s shiftStart) AsTime() time.Time { return s.at }

func TestFormatValue(t *testing.T) {
	at := time.Date(2024, 8, 25, 18, 30, 0, 0, time.UTC)
	var nilTime *time.Time
	var nilUnix *UnixTime
	unix := UnixTime(at.Unix())

	tests := []struct {
		name string
		in   any
		want any
	}{
		{name: "nil", in: nil, want: nil},
		{name: "date", in: NewDate(2024, time.August, 25), want: "2024-08-25"},
		{name: "zero date", in: Date{}, want: nil},
		{name: "pg date", in: pgtype.Date{Time: at, Valid: true}, want: "2024-08-25"},
		{name: "invalid pg date", in: pgtype.Date{}, want: nil},
		{name: "datetime", in: at, want: "2024-08-25 18:30:00"},
		{name: "datetime pointer", in: &at, want: "2024-08-25 18:30:00"},
		{name: "nil datetime pointer", in: nilTime, want: nil},
		{name: "pg timestamp", in: pgtype.Timestamp{Time: at, Valid: true}, want: "2024-08-25 18:30:00"},
		{name: "pg timestamptz", in: pgtype.Timestamptz{Time: at, Valid: true}, want: "2024-08-25 18:30:00"},
		{name: "epoch", in: unix, want: "2024-08-25 18:30:00"},
		{name: "nil epoch pointer", in: nilUnix, want: nil},
		{name: "other temporal", in: shiftStart{at: at}, want: "2024-08-25 18:30:00"},
		{name: "string", in: "hello", want: "hello"},
		{name: "int", in: 42, want: 42},
		{name: "bool", in: true, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatValue(tt.in, time.UTC))
		})
	}
}

func TestFormatValueLocation(t *testing.T) {
	loc := time.FixedZone("PDT", -7*60*60)
	at := time.Date(2024, 8, 25, 18, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-08-25 11:30:00", FormatValue(at, loc))
	assert.Equal(t, "2024-08-25", FormatValue(NewDate(2024, time.August, 25), loc))
}

func TestToRestError(t *testing.T) {
	errs := ValidationErrors{}
	errs.Add("email", "The email must be a valid email address.")
	errs.Add("callsign", "The callsign field is required.")
	errs.Add("email", "The email has already been taken.")

	assert.Equal(t, []FieldError{
		{Message: "The callsign field is required.", Field: "callsign"},
		{Message: "The email must be a valid email address.", Field: "email"},
		{Message: "The email has already been taken.", Field: "email"},
	}, ToRestError(errs))
	assert.Empty(t, ToRestError(ValidationErrors{}))
}

func TestRequestErrors(t *testing.T) {
	env := RequestErrors("missing resource identifier field")
	assert.Equal(t, ErrorEnvelope{Errors: []ErrorTitle{{Title: "missing resource identifier field"}}}, env)
}

func TestValidator(t *testing.T) {
	type form struct {
		Email    string `json:"email" validate:"required,email"`
		Callsign string `json:"callsign" validate:"required,max=5"`
	}
	v := NewValidator()
	assert.NoError(t, v.Validate(&form{Email: "a@b.com", Callsign: "Hub"}))

	err := v.Validate(&form{Email: "nope", Callsign: "Hubcaps"})
	verrs, ok := AsValidationErrors(err)
	assert.True(t, ok)
	assert.Equal(t, []string{"The email must be a valid email address."}, verrs["email"])
	assert.Equal(t, []string{"The callsign may not be greater than 5."}, verrs["callsign"])
	assert.ErrorIs(t, err, shared.ErrValidation)
}
