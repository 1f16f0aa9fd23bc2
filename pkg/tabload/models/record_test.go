package models

import (
	"errors"
	"reflect"
	"testing"
)

func TestFromValues(t *testing.T) {
	r := FromValues("a", "b", "c")

	if r.Len() != 3 {
		t.Fatalf("Expected 3 keys, got %d", r.Len())
	}
	for i, want := range []string{"a", "b", "c"} {
		got, ok := r.Get(i + 1)
		if !ok || got != want {
			t.Errorf("Get(%d) = %v, %v; expected %q", i+1, got, ok, want)
		}
	}
	if _, ok := r.Get(0); ok {
		t.Error("Expected key 0 to be absent")
	}
	if _, ok := r.Get(4); ok {
		t.Error("Expected key 4 to be absent")
	}
}

func TestFromValuesSliceArgument(t *testing.T) {
	values := []any{"x", int64(2), ""}
	spread := FromValues(values...)
	single := FromValues(values)

	if !reflect.DeepEqual(spread.fields, single.fields) {
		t.Errorf("FromValues(slice) = %v, expected %v", single.fields, spread.fields)
	}

	strs := FromValues([]string{"x", "y"})
	if strs.Value(1) != "x" || strs.Value(2) != "y" {
		t.Errorf("Expected []string argument to expand, got %v", strs.fields)
	}
}

func TestFromValuesEmpty(t *testing.T) {
	r := FromValues()
	if r.Len() != 0 {
		t.Errorf("Expected empty record, got %d keys", r.Len())
	}
	if r.Values() != nil {
		t.Errorf("Expected nil values, got %v", r.Values())
	}
}

func TestFromMap(t *testing.T) {
	r := FromMap(map[string]any{"name": "Alice", "age": 30})

	if r.Value("name") != "Alice" {
		t.Errorf("Expected Alice, got %v", r.Value("name"))
	}
	if r.Value("missing") != nil {
		t.Errorf("Expected nil for missing key, got %v", r.Value("missing"))
	}
	if got := r.Keys(); !reflect.DeepEqual(got, []any{"age", "name"}) {
		t.Errorf("Keys() = %v", got)
	}
}

func TestGetKeyNormalization(t *testing.T) {
	r := FromValues("a", "b")

	tests := []struct {
		key      any
		expected any
		ok       bool
	}{
		{1, "a", true},
		{int64(2), "b", true},
		{uint8(1), "a", true},
		{"1", nil, false},
		{1.0, nil, false},
		{nil, nil, false},
	}

	for _, tt := range tests {
		got, ok := r.Get(tt.key)
		if got != tt.expected || ok != tt.ok {
			t.Errorf("Get(%#v) = %v, %v; expected %v, %v", tt.key, got, ok, tt.expected, tt.ok)
		}
	}

	var nilRecord *Record
	if _, ok := nilRecord.Get(1); ok {
		t.Error("Expected nil record to report absent")
	}
}

func TestTypedAccessors(t *testing.T) {
	r := FromValues("42", 3.5, "abc")

	if n, err := r.Int(1); err != nil || n != 42 {
		t.Errorf("Int(1) = %d, %v", n, err)
	}
	if f, err := r.Float(2); err != nil || f != 3.5 {
		t.Errorf("Float(2) = %v, %v", f, err)
	}
	if s, err := r.String(2); err != nil || s != "3.5" {
		t.Errorf("String(2) = %q, %v", s, err)
	}
	if _, err := r.Int(3); err == nil {
		t.Error("Expected conversion error for Int(3)")
	}
	if _, err := r.String(9); !errors.Is(err, ErrFieldAbsent) {
		t.Errorf("Expected ErrFieldAbsent, got %v", err)
	}
}

func TestLookup(t *testing.T) {
	aliases := AliasesFromHeader([]string{"Name", "Age"})
	r := FromValues("Alice", "30")

	if v, ok := r.Lookup("Name", aliases); !ok || v != "Alice" {
		t.Errorf("Lookup(Name) = %v, %v", v, ok)
	}
	if v, ok := r.Lookup("Age", aliases); !ok || v != "30" {
		t.Errorf("Lookup(Age) = %v, %v", v, ok)
	}
	if _, ok := r.Lookup("Email", aliases); ok {
		t.Error("Expected Email to be unresolved")
	}
}

func TestValuesOrder(t *testing.T) {
	vals := make([]any, 12)
	for i := range vals {
		vals[i] = i
	}
	r := FromValues(vals...)
	if got := r.Values(); !reflect.DeepEqual(got, vals) {
		t.Errorf("Values() = %v, expected %v", got, vals)
	}
}

func TestIsEmpty(t *testing.T) {
	tests := []struct {
		values   []any
		expected bool
	}{
		{nil, true},
		{[]any{"", nil, ""}, true},
		{[]any{"", "x"}, false},
		{[]any{int64(0)}, false},
		{[]any{" "}, false},
	}

	for _, tt := range tests {
		if got := IsEmpty(tt.values); got != tt.expected {
			t.Errorf("IsEmpty(%v) = %v, expected %v", tt.values, got, tt.expected)
		}
	}
}
