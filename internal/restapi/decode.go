package restapi

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/jackc/pgx/v5/pgtype"
)

var (
	typeTime          = reflect.TypeOf(time.Time{})
	typeDate          = reflect.TypeOf(Date{})
	typePGDate        = reflect.TypeOf(pgtype.Date{})
	typePGTimestamp   = reflect.TypeOf(pgtype.Timestamp{})
	typePGTimestamptz = reflect.TypeOf(pgtype.Timestamptz{})
)

var dateTimeLayouts = []string{
	DateTimeLayout,
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	DateLayout,
}

// decodeAttributes assigns attrs onto the struct behind record with weak
// typing. Keys without a matching struct field are ignored and fields not
// present in attrs are left untouched.
func decodeAttributes(record any, attrs map[string]any, loc *time.Location) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           record,
		DecodeHook:       temporalHook(loc),
	})
	if err != nil {
		return fmt.Errorf("restapi: decoder: %w", err)
	}
	if err := decoder.Decode(attrs); err != nil {
		return fmt.Errorf("restapi: decode attributes: %w", err)
	}
	return nil
}

func temporalHook(loc *time.Location) mapstructure.DecodeHookFuncType {
	if loc == nil {
		loc = time.UTC
	}
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String {
			return data, nil
		}
		raw := strings.TrimSpace(reflect.ValueOf(data).String())
		switch to {
		case typeDate:
			if raw == "" {
				return Date{}, nil
			}
			t, err := time.Parse(DateLayout, raw)
			if err != nil {
				return nil, fmt.Errorf("invalid date %q", raw)
			}
			return Date{Time: t}, nil
		case typePGDate:
			if raw == "" {
				return pgtype.Date{}, nil
			}
			t, err := time.Parse(DateLayout, raw)
			if err != nil {
				return nil, fmt.Errorf("invalid date %q", raw)
			}
			return pgtype.Date{Time: t, Valid: true}, nil
		case typeTime:
			if raw == "" {
				return time.Time{}, nil
			}
			return parseDateTime(raw, loc)
		case typePGTimestamp:
			if raw == "" {
				return pgtype.Timestamp{}, nil
			}
			t, err := parseDateTime(raw, time.UTC)
			if err != nil {
				return nil, err
			}
			return pgtype.Timestamp{Time: t, Valid: true}, nil
		case typePGTimestamptz:
			if raw == "" {
				return pgtype.Timestamptz{}, nil
			}
			t, err := parseDateTime(raw, loc)
			if err != nil {
				return nil, err
			}
			return pgtype.Timestamptz{Time: t, Valid: true}, nil
		}
		return data, nil
	}
}

func parseDateTime(raw string, loc *time.Location) (time.Time, error) {
	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date time %q", raw)
}
