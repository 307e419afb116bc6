package query

import (
	"context"
	"fmt"
	"slices"
)

// Comparator orders two records by one storage field.
type Comparator[T any] func(a, b T) int

// SliceSource is an in-memory Source. Items are never reordered in place;
// ordering happens on a copy when the source is executed.
type SliceSource[T any] struct {
	items   []T
	fields  map[string]Comparator[T]
	orders  []Order
	counted int // executions of Count, for tests asserting laziness
	sliced  int
}

// FromSlice wraps items. fields lists the storage fields OrderBy may use.
func FromSlice[T any](items []T, fields map[string]Comparator[T]) *SliceSource[T] {
	return &SliceSource[T]{items: items, fields: fields}
}

func (s *SliceSource[T]) OrderBy(orders []Order) Source[T] {
	cp := *s
	cp.orders = append([]Order(nil), orders...)
	cp.counted, cp.sliced = 0, 0
	return &cp
}

func (s *SliceSource[T]) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.counted++
	return len(s.items), nil
}

func (s *SliceSource[T]) Slice(ctx context.Context, offset, limit int) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if offset < 0 {
		return nil, &InvalidArgumentError{Name: "offset", Value: offset}
	}
	s.sliced++
	sorted, err := s.sorted()
	if err != nil {
		return nil, err
	}
	if offset >= len(sorted) {
		return []T{}, nil
	}
	end := len(sorted)
	if limit < end-offset {
		end = offset + limit
	}
	return sorted[offset:end], nil
}

// Executions reports how many times Count and Slice ran.
func (s *SliceSource[T]) Executions() (count, slice int) { return s.counted, s.sliced }

func (s *SliceSource[T]) sorted() ([]T, error) {
	out := slices.Clone(s.items)
	if len(s.orders) == 0 {
		return out, nil
	}
	type step struct {
		cmp  Comparator[T]
		desc bool
	}
	steps := make([]step, len(s.orders))
	for i, o := range s.orders {
		cmp, ok := s.fields[o.Field]
		if !ok {
			return nil, fmt.Errorf("query: no comparator for storage field %q", o.Field)
		}
		steps[i] = step{cmp: cmp, desc: o.Desc}
	}
	slices.SortStableFunc(out, func(a, b T) int {
		for _, st := range steps {
			r := st.cmp(a, b)
			if st.desc {
				r = -r
			}
			if r != 0 {
				return r
			}
		}
		return 0
	})
	return out, nil
}
