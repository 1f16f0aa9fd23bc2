// Package models defines the data structures shared by every input source.
package models

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cast"
)

// ErrFieldAbsent indicates a Record has no value for the requested key.
var ErrFieldAbsent = errors.New("field absent")

// Record is one row of source data keyed by 1-based column position
// or by field name.
type Record struct {
	fields map[any]any
	// Provenance identifies the source file and location (row or line).
	// It is only used in diagnostics.
	Provenance string
	// Blank is set by the adapter when the row carries no data.
	Blank bool
}

// FromValues builds a Record whose keys are 1..len(values) in order.
// A single slice argument is expanded, so FromValues(v) and
// FromValues(v...) produce the same Record.
func FromValues(values ...any) *Record {
	if len(values) == 1 {
		switch v := values[0].(type) {
		case []any:
			values = v
		case []string:
			values = make([]any, len(v))
			for i, s := range v {
				values[i] = s
			}
		}
	}

	r := &Record{fields: make(map[any]any, len(values))}
	for i, v := range values {
		r.fields[i+1] = v
	}
	return r
}

// FromMap builds a Record whose keys and values are exactly m's.
func FromMap(m map[string]any) *Record {
	r := &Record{fields: make(map[any]any, len(m))}
	for k, v := range m {
		r.fields[k] = v
	}
	return r
}

// Get returns the value stored under key. Integer keys of any width are
// treated as positions.
func (r *Record) Get(key any) (any, bool) {
	if r == nil {
		return nil, false
	}
	k, ok := normalizeKey(key)
	if !ok {
		return nil, false
	}
	v, ok := r.fields[k]
	return v, ok
}

// Value returns the value stored under key, or nil when it is absent.
func (r *Record) Value(key any) any {
	v, _ := r.Get(key)
	return v
}

// Lookup resolves name through aliases and returns the value at that position.
func (r *Record) Lookup(name string, aliases Aliases) (any, bool) {
	idx, ok := aliases.Index(name)
	if !ok {
		return nil, false
	}
	return r.Get(idx)
}

// String returns the value under key converted to a string.
func (r *Record) String(key any) (string, error) {
	v, err := r.require(key)
	if err != nil {
		return "", err
	}
	return cast.ToStringE(v)
}

// Float returns the value under key converted to a float64.
func (r *Record) Float(key any) (float64, error) {
	v, err := r.require(key)
	if err != nil {
		return 0, err
	}
	return cast.ToFloat64E(v)
}

// Int returns the value under key converted to an int64.
func (r *Record) Int(key any) (int64, error) {
	v, err := r.require(key)
	if err != nil {
		return 0, err
	}
	return cast.ToInt64E(v)
}

func (r *Record) require(key any) (any, error) {
	v, ok := r.Get(key)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrFieldAbsent, key)
	}
	return v, nil
}

// Len returns the number of keys.
func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.fields)
}

// Keys returns positional keys in ascending order followed by named keys
// sorted alphabetically.
func (r *Record) Keys() []any {
	if r == nil {
		return nil
	}
	var positions []int
	var names []string
	for k := range r.fields {
		switch k := k.(type) {
		case int:
			positions = append(positions, k)
		case string:
			names = append(names, k)
		}
	}
	sort.Ints(positions)
	sort.Strings(names)

	keys := make([]any, 0, len(r.fields))
	for _, p := range positions {
		keys = append(keys, p)
	}
	for _, n := range names {
		keys = append(keys, n)
	}
	return keys
}

// Values returns the positional values ordered by position.
func (r *Record) Values() []any {
	var values []any
	for _, k := range r.Keys() {
		if _, ok := k.(int); !ok {
			break
		}
		values = append(values, r.fields[k])
	}
	return values
}

// IsEmpty reports whether every value is nil or an empty string.
func IsEmpty(values []any) bool {
	for _, v := range values {
		if v == nil {
			continue
		}
		if s, ok := v.(string); ok && s == "" {
			continue
		}
		return false
	}
	return true
}

func normalizeKey(key any) (any, bool) {
	switch k := key.(type) {
	case string:
		return k, true
	case int:
		return k, true
	case int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		i, err := cast.ToIntE(k)
		if err != nil {
			return nil, false
		}
		return i, true
	default:
		return nil, false
	}
}
