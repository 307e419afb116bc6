// Package shaping projects API representations down to the fields a client
// asked for ("?fields=id,name").
//
// A Shape is an explicit table of named accessors, built once per DTO type at
// startup. Field lookup is case-insensitive; output keys use the declared name.
package shaping

import (
	"fmt"
	"strings"
)

// Field is one named, readable property of T.
type Field[T any] struct {
	Name string
	Get  func(T) any
}

// Shape is the declared property set of T.
type Shape[T any] struct {
	name   string
	fields []Field[T]
	index  map[string]int // lower-cased name -> position
}

// NewShape panics on duplicate or empty names: shapes are static declarations.
func NewShape[T any](name string, fields ...Field[T]) *Shape[T] {
	s := &Shape[T]{name: name, fields: fields, index: make(map[string]int, len(fields))}
	for i, f := range fields {
		key := strings.ToLower(f.Name)
		if key == "" || f.Get == nil {
			panic(fmt.Sprintf("shaping: %s: field %d is incomplete", name, i))
		}
		if _, dup := s.index[key]; dup {
			panic(fmt.Sprintf("shaping: %s: duplicate field %q", name, f.Name))
		}
		s.index[key] = i
	}
	return s
}

// Name identifies the shape in errors.
func (s *Shape[T]) Name() string { return s.name }

// Names returns the declared field names in declaration order.
func (s *Shape[T]) Names() []string {
	out := make([]string, len(s.fields))
	for i, f := range s.fields {
		out[i] = f.Name
	}
	return out
}

// HasFields reports whether every name in a comma-separated list is declared
// on the shape. An empty list requests nothing specific and is always valid.
func (s *Shape[T]) HasFields(fields string) bool {
	if strings.TrimSpace(fields) == "" {
		return true
	}
	for _, f := range strings.Split(fields, ",") {
		if _, ok := s.index[strings.ToLower(strings.TrimSpace(f))]; !ok {
			return false
		}
	}
	return true
}

// Project reads the requested fields of v into a Record, in request order.
// With no fields it reads all of them in declaration order. A name repeated
// in the request is emitted once, at its first position.
func (s *Shape[T]) Project(v T, fields string) (Record, error) {
	if strings.TrimSpace(fields) == "" {
		rec := Record{entries: make([]Entry, len(s.fields))}
		for i, f := range s.fields {
			rec.entries[i] = Entry{Key: f.Name, Value: f.Get(v)}
		}
		return rec, nil
	}

	parts := strings.Split(fields, ",")
	rec := Record{entries: make([]Entry, 0, len(parts))}
	seen := make(map[int]bool, len(parts))
	for _, p := range parts {
		name := strings.TrimSpace(p)
		i, ok := s.index[strings.ToLower(name)]
		if !ok {
			return Record{}, &UnknownFieldError{Shape: s.name, Field: name}
		}
		if seen[i] {
			continue
		}
		seen[i] = true
		rec.entries = append(rec.entries, Entry{Key: s.fields[i].Name, Value: s.fields[i].Get(v)})
	}
	return rec, nil
}

// ProjectAll projects every item independently.
func (s *Shape[T]) ProjectAll(items []T, fields string) ([]Record, error) {
	out := make([]Record, 0, len(items))
	for _, it := range items {
		rec, err := s.Project(it, fields)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// UnknownFieldError means projection was asked for a field the shape does
// not have. Requests are validated with HasFields first, so reaching this is
// a server bug rather than bad input.
type UnknownFieldError struct {
	Shape string
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("property %q was not found on %s", e.Field, e.Shape)
}
