package validate

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Violation is one failed rule on one input field.
type Violation struct {
	Field   string
	Code    string
	Message string
}

// Violations collects failures so a request reports all of them at once.
type Violations []Violation

func (v *Violations) Add(field, code, msg string) {
	*v = append(*v, Violation{Field: field, Code: code, Message: msg})
}

func (v Violations) Empty() bool { return len(v) == 0 }

// Required fails on empty or whitespace-only values.
func (v *Violations) Required(field, value, msg string) {
	if strings.TrimSpace(value) == "" {
		v.Add(field, "required", msg)
	}
}

// MaxLength counts characters, not bytes.
func (v *Violations) MaxLength(field, value string, max int, msg string) {
	if utf8.RuneCountInString(value) > max {
		v.Add(field, "max_length", msg)
	}
}

// PageNumber parses a 1-based page number; empty means def.
func PageNumber(raw string, def int) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// PageSize parses a page size; empty means def and anything above max is
// clamped to max.
func PageSize(raw string, def, max int) (int, bool) {
	n, ok := PageNumber(raw, def)
	if !ok {
		return 0, false
	}
	return min(n, max), true
}
