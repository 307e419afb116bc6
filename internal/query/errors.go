package query

import "fmt"

// UnknownSortFieldError is a client error: the sort expression names a field
// the resource does not expose for ordering.
type UnknownSortFieldError struct {
	Field string
}

func (e *UnknownSortFieldError) Error() string {
	return fmt.Sprintf("key mapping for %q is missing", e.Field)
}

// InvalidArgumentError is a caller bug: a page number, page size or offset
// below its minimum.
type InvalidArgumentError struct {
	Name  string
	Value int
	Min   int
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("%s must be >= %d, got %d", e.Name, e.Min, e.Value)
}
