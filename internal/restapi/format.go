package restapi

import (
	"encoding/json"
	"reflect"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// Wire layouts for temporal values.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
)

// Date is a calendar date with no time of day.
type Date struct {
	time.Time
}

// NewDate truncates t to its calendar date.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// MarshalJSON encodes the date as YYYY-MM-DD, or null when zero.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(DateLayout))
}

// UnixTime is a timestamp stored as seconds since the epoch.
type UnixTime int64

// AsTime converts the epoch seconds to a time in UTC.
func (u UnixTime) AsTime() time.Time {
	return time.Unix(int64(u), 0).UTC()
}

// Temporal is any value that can be rendered as a date and time.
type Temporal interface {
	AsTime() time.Time
}

// FormatValue applies the wire formatting for v. Calendar dates become
// YYYY-MM-DD, every other temporal value becomes YYYY-MM-DD HH:MM:SS in loc
// and nil or invalid values become nil. Anything else is returned as is.
func FormatValue(v any, loc *time.Location) any {
	if loc == nil {
		loc = time.UTC
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		return FormatValue(rv.Elem().Interface(), loc)
	}
	switch t := v.(type) {
	case nil:
		return nil
	case Date:
		if t.IsZero() {
			return nil
		}
		return t.Format(DateLayout)
	case pgtype.Date:
		if !t.Valid || t.InfinityModifier != pgtype.Finite {
			return nil
		}
		return t.Time.Format(DateLayout)
	case time.Time:
		if t.IsZero() {
			return nil
		}
		return t.In(loc).Format(DateTimeLayout)
	case pgtype.Timestamp:
		if !t.Valid || t.InfinityModifier != pgtype.Finite {
			return nil
		}
		// timestamp without time zone is already wall clock time.
		return t.Time.Format(DateTimeLayout)
	case pgtype.Timestamptz:
		if !t.Valid || t.InfinityModifier != pgtype.Finite {
			return nil
		}
		return t.Time.In(loc).Format(DateTimeLayout)
	case UnixTime:
		return t.AsTime().In(loc).Format(DateTimeLayout)
	case Temporal:
		return t.AsTime().In(loc).Format(DateTimeLayout)
	}
	return v
}
