package restapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"time"

	"github.com/rangerclubhouse/clubhouse/internal/filters"
)

// Observer is notified about inbound fields the requester was not allowed to
// assign. It must not retain fields.
type Observer interface {
	DroppedFields(entity string, fields []string)
}

// Codec serializes records into documents and deserializes request bodies
// onto records, driven by the registered field policies.
type Codec struct {
	registry *filters.Registry
	observer Observer
	location *time.Location
}

// CodecOption configures a Codec.
type CodecOption func(*Codec)

// WithObserver reports dropped inbound fields to o.
func WithObserver(o Observer) CodecOption {
	return func(c *Codec) {
		c.observer = o
	}
}

// WithLocation sets the zone timestamps are rendered in. Defaults to UTC.
func WithLocation(loc *time.Location) CodecOption {
	return func(c *Codec) {
		if loc != nil {
			c.location = loc
		}
	}
}

// NewCodec builds a Codec over registry.
func NewCodec(registry *filters.Registry, opts ...CodecOption) *Codec {
	c := &Codec{registry: registry, location: time.UTC}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Serialize projects record for requester. The result always carries "id".
//
// With an outbound policy the emitted fields are those the policy resolves
// for requester; a nil requester only sees public groups. Without an
// outbound policy the record's default fields are emitted.
func (c *Codec) Serialize(record Record, requester filters.Requester) *Document {
	policy, ok := c.registry.Lookup(record.ResourceName())
	if !ok || !policy.HasDirection(filters.Outbound) {
		return c.project(record, defaultFields(record))
	}
	fields := filters.Resolve(policy, filters.Outbound, record, requester)
	return c.project(record, fields.Fields())
}

// SerializeSystem projects record with its default fields, bypassing
// policies. It is meant for trusted callers with no requester, such as
// operator tooling.
func (c *Codec) SerializeSystem(record Record) *Document {
	return c.project(record, defaultFields(record))
}

func (c *Codec) project(record Record, fields []string) *Document {
	doc := NewDocument()
	doc.Set("id", record.RecordID())
	for _, field := range fields {
		if field == "id" {
			continue
		}
		raw, ok := ValueOf(record, field)
		if !ok {
			continue
		}
		doc.Set(field, FormatValue(raw, c.location))
	}
	return doc
}

func defaultFields(record Record) []string {
	if d, ok := record.(DefaultFielder); ok {
		return d.DefaultFields()
	}
	return FieldNames(record)
}

// Deserialize assigns the attributes wrapped under the record's resource
// name in body onto record, keeping only fields the inbound policy grants
// requester. Fields not present in body are left untouched; disallowed
// fields are dropped silently. It returns the names of the assigned fields
// in policy order. Nothing is persisted.
func (c *Codec) Deserialize(record Record, body map[string]any, requester filters.Requester) ([]string, error) {
	wrapped, ok := body[record.ResourceName()]
	if !ok {
		return nil, ErrMissingResource
	}
	attrs, err := attributes(wrapped)
	if err != nil {
		return nil, err
	}
	if len(attrs) == 0 {
		return nil, nil
	}

	rv, err := structValue(record)
	if err != nil {
		return nil, err
	}

	allowed := c.inboundFields(record, requester)
	var (
		applied []string
		values  = make(map[string]any)
		nulls   []string
	)
	for _, field := range allowed.Fields() {
		value, present := attrs[field]
		if !present || !assignable(rv, field) {
			continue
		}
		applied = append(applied, field)
		if value == nil {
			nulls = append(nulls, field)
			continue
		}
		values[field] = value
	}
	c.reportDropped(record.ResourceName(), attrs, allowed)

	// Decode into a copy so a malformed value leaves record untouched.
	staged := reflect.New(rv.Type())
	staged.Elem().Set(rv)
	for field := range values {
		if err := clearField(staged.Elem(), field); err != nil {
			return nil, err
		}
	}
	if len(values) > 0 {
		if err := decodeAttributes(staged.Interface(), values, c.location); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResource, err)
		}
	}
	for _, field := range nulls {
		if err := clearField(staged.Elem(), field); err != nil {
			return nil, err
		}
	}
	rv.Set(staged.Elem())
	return applied, nil
}

// DeserializeJSON decodes raw as a JSON object and calls Deserialize.
func (c *Codec) DeserializeJSON(record Record, raw []byte, requester filters.Requester) ([]string, error) {
	var body map[string]any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResource, err)
	}
	if body == nil {
		return nil, ErrMissingResource
	}
	return c.Deserialize(record, body, requester)
}

func (c *Codec) inboundFields(record Record, requester filters.Requester) filters.FieldSet {
	policy, ok := c.registry.Lookup(record.ResourceName())
	if ok && policy.HasDirection(filters.Inbound) {
		return filters.Resolve(policy, filters.Inbound, record, requester)
	}
	if f, ok := record.(Fillable); ok && requester != nil {
		return filters.NewFieldSet(f.FillableFields()...)
	}
	return filters.FieldSet{}
}

func (c *Codec) reportDropped(entity string, attrs map[string]any, allowed filters.FieldSet) {
	if c.observer == nil {
		return
	}
	var dropped []string
	for field := range attrs {
		if !allowed.Has(field) {
			dropped = append(dropped, field)
		}
	}
	if len(dropped) == 0 {
		return
	}
	sort.Strings(dropped)
	c.observer.DroppedFields(entity, dropped)
}

func attributes(wrapped any) (map[string]any, error) {
	switch v := wrapped.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return v, nil
	case string:
		if v == "" {
			return nil, nil
		}
	case []any:
		if len(v) == 0 {
			return nil, nil
		}
	}
	return nil, ErrMalformedResource
}
