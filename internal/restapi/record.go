// Package restapi projects records to and from their REST representation
// through the field policies in internal/filters.
package restapi

import "github.com/rangerclubhouse/clubhouse/internal/filters"

// Record is an entity the codec can serialize and deserialize. Field values
// are read and written through the record's `json` struct tags, so a Record
// must be a pointer to a struct.
type Record interface {
	filters.Subject
	// ResourceName is the singular wrapper key used on the wire and the
	// entity tag policies are registered under.
	ResourceName() string
	// RecordID is the primary identifier, emitted as "id".
	RecordID() int64
}

// Computer is implemented by records exposing pseudo-fields that are not
// backed by a struct field.
type Computer interface {
	Computed(field string) (any, bool)
}

// DefaultFielder is implemented by records that declare the fields emitted
// when no policy applies.
type DefaultFielder interface {
	DefaultFields() []string
}

// Fillable is implemented by records that declare the fields assignable
// when no inbound policy applies.
type Fillable interface {
	FillableFields() []string
}
