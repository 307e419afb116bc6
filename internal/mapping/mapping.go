// Package mapping declares which client-facing sort keys a resource accepts and
// which storage fields each of them orders by.
package mapping

import (
	"fmt"
	"sort"
	"strings"
)

// Value is what one external field resolves to.
// Destinations are applied in order; Revert flips the requested direction
// (e.g. "age" ascending means date of birth descending).
type Value struct {
	Destinations []string
	Revert       bool
}

// Fields is the convenience constructor used in registrations.
func Fields(dest ...string) Value { return Value{Destinations: dest} }

// Reverted is Fields with Revert set.
func Reverted(dest ...string) Value { return Value{Destinations: dest, Revert: true} }

// Mapping is an immutable, case-insensitive table of external field -> Value.
type Mapping struct {
	entries map[string]Value
	names   []string // as registered, sorted
}

// New validates and freezes a mapping. Keys collide case-insensitively.
func New(entries map[string]Value) (Mapping, error) {
	m := Mapping{entries: make(map[string]Value, len(entries))}
	for name, v := range entries {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			return Mapping{}, &ConfigurationError{Msg: "empty external field name"}
		}
		if _, dup := m.entries[key]; dup {
			return Mapping{}, &ConfigurationError{Msg: fmt.Sprintf("duplicate external field %q", name)}
		}
		if len(v.Destinations) == 0 {
			return Mapping{}, &ConfigurationError{Msg: fmt.Sprintf("field %q maps to no storage field", name)}
		}
		dest := make([]string, len(v.Destinations))
		for i, d := range v.Destinations {
			if strings.TrimSpace(d) == "" {
				return Mapping{}, &ConfigurationError{Msg: fmt.Sprintf("field %q maps to an empty storage field", name)}
			}
			dest[i] = d
		}
		m.entries[key] = Value{Destinations: dest, Revert: v.Revert}
		m.names = append(m.names, name)
	}
	sort.Strings(m.names)
	return m, nil
}

// MustNew panics on an invalid mapping. Meant for package-level registrations.
func MustNew(entries map[string]Value) Mapping {
	m, err := New(entries)
	if err != nil {
		panic(err)
	}
	return m
}

// Lookup finds an external field, ignoring case.
func (m Mapping) Lookup(name string) (Value, bool) {
	v, ok := m.entries[strings.ToLower(name)]
	if !ok {
		return Value{}, false
	}
	out := make([]string, len(v.Destinations))
	copy(out, v.Destinations)
	return Value{Destinations: out, Revert: v.Revert}, true
}

// Len reports the number of external fields.
func (m Mapping) Len() int { return len(m.entries) }

// Names returns the external field names as registered.
func (m Mapping) Names() []string {
	out := make([]string, len(m.names))
	copy(out, m.names)
	return out
}

// Valid reports whether every clause of a sort expression names a known
// field. A clause's direction suffix (anything after the first space) is
// ignored here; the sort translator interprets it.
func (m Mapping) Valid(orderBy string) bool {
	if strings.TrimSpace(orderBy) == "" {
		return true
	}
	for _, clause := range strings.Split(orderBy, ",") {
		name := strings.TrimSpace(clause)
		if i := strings.IndexByte(name, ' '); i >= 0 {
			name = name[:i]
		}
		if _, ok := m.entries[strings.ToLower(name)]; !ok {
			return false
		}
	}
	return true
}
