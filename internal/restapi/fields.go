package restapi

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// fieldIndex maps json names to struct field index paths for one type.
type fieldIndex struct {
	paths map[string][]int
	names []string
}

var indexCache sync.Map // reflect.Type -> *fieldIndex

func indexOf(t reflect.Type) *fieldIndex {
	if cached, ok := indexCache.Load(t); ok {
		return cached.(*fieldIndex)
	}
	idx := &fieldIndex{paths: make(map[string][]int)}
	for _, sf := range reflect.VisibleFields(t) {
		if !sf.IsExported() {
			continue
		}
		if sf.Anonymous && sf.Type.Kind() == reflect.Struct {
			continue
		}
		name := jsonName(sf)
		if name == "" {
			continue
		}
		if _, dup := idx.paths[name]; dup {
			continue
		}
		idx.paths[name] = sf.Index
		idx.names = append(idx.names, name)
	}
	actual, _ := indexCache.LoadOrStore(t, idx)
	return actual.(*fieldIndex)
}

func jsonName(sf reflect.StructField) string {
	tag, ok := sf.Tag.Lookup("json")
	if !ok {
		return ""
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return sf.Name
	}
	return name
}

func structValue(record any) (reflect.Value, error) {
	rv := reflect.ValueOf(record)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return reflect.Value{}, fmt.Errorf("restapi: record %T must be a non-nil pointer", record)
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("restapi: record %T must point to a struct", record)
	}
	return rv, nil
}

// FieldNames lists the json names of every struct-backed field of record in
// declaration order.
func FieldNames(record Record) []string {
	rv, err := structValue(record)
	if err != nil {
		return nil
	}
	idx := indexOf(rv.Type())
	out := make([]string, len(idx.names))
	copy(out, idx.names)
	return out
}

// ValueOf reads the raw value of field from record. Struct fields take
// precedence over computed pseudo-fields.
func ValueOf(record Record, field string) (any, bool) {
	if rv, err := structValue(record); err == nil {
		if path, ok := indexOf(rv.Type()).paths[field]; ok {
			fv, err := rv.FieldByIndexErr(path)
			if err != nil {
				return nil, true
			}
			return fv.Interface(), true
		}
	}
	if c, ok := record.(Computer); ok {
		return c.Computed(field)
	}
	return nil, false
}

// assignable reports whether field is backed by a settable struct field.
func assignable(rv reflect.Value, field string) bool {
	_, ok := indexOf(rv.Type()).paths[field]
	return ok
}

// clearField sets field to its zero value.
func clearField(rv reflect.Value, field string) error {
	path := indexOf(rv.Type()).paths[field]
	fv, err := rv.FieldByIndexErr(path)
	if err != nil {
		return fmt.Errorf("restapi: clear %s: %w", field, err)
	}
	fv.Set(reflect.Zero(fv.Type()))
	return nil
}

// Values collects the struct-backed values of fields from record, keyed by
// field name. Computed and unknown fields are skipped.
func Values(record Record, fields []string) map[string]any {
	rv, err := structValue(record)
	if err != nil {
		return nil
	}
	paths := indexOf(rv.Type()).paths
	out := make(map[string]any, len(fields))
	for _, field := range fields {
		path, ok := paths[field]
		if !ok {
			continue
		}
		fv, err := rv.FieldByIndexErr(path)
		if err != nil {
			continue
		}
		out[field] = fv.Interface()
	}
	return out
}
