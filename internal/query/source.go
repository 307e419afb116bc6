// Package query holds the lazily evaluated record sources the API pages over,
// and the translation of client sort expressions into storage orderings.
package query

import "context"

// Order is one resolved storage-field ordering.
type Order struct {
	Field string
	Desc  bool
}

// Source is a deferred sequence of records. Building it (filters, ordering)
// does no I/O; Count and Slice execute it.
type Source[T any] interface {
	// OrderBy returns a new source ordered by orders; later entries break
	// ties of earlier ones. It replaces any ordering already set.
	OrderBy(orders []Order) Source[T]
	Count(ctx context.Context) (int, error)
	Slice(ctx context.Context, offset, limit int) ([]T, error)
}

// Snapshotter is implemented by sources that can pin a consistent view of the
// underlying data, so a count and a slice observe the same rows.
type Snapshotter[T any] interface {
	Snapshot(ctx context.Context, fn func(Source[T]) error) error
}
