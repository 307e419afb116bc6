package query

import (
	"context"
	"math"
)

// Page is one materialized slice of a source plus the numbers needed to
// navigate around it.
type Page[T any] struct {
	Items       []T
	TotalCount  int
	PageSize    int
	CurrentPage int
}

// Metadata is the pagination summary exposed to clients (X-Pagination).
type Metadata struct {
	TotalCount  int `json:"totalCount"`
	PageSize    int `json:"pageSize"`
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
}

// TotalPages is ceil(TotalCount / PageSize); 0 for an empty source.
func (p *Page[T]) TotalPages() int {
	if p.PageSize < 1 {
		return 0
	}
	return (p.TotalCount + p.PageSize - 1) / p.PageSize
}

func (p *Page[T]) HasPrevious() bool { return p.CurrentPage > 1 }

func (p *Page[T]) HasNext() bool { return p.CurrentPage < p.TotalPages() }

func (p *Page[T]) Metadata() Metadata {
	return Metadata{
		TotalCount:  p.TotalCount,
		PageSize:    p.PageSize,
		CurrentPage: p.CurrentPage,
		TotalPages:  p.TotalPages(),
	}
}

// Paginate counts src and loads the requested page. This is where the
// deferred source actually runs. Sources implementing Snapshotter do both
// steps against one snapshot; for others a concurrent write between the
// count and the slice can make the two disagree.
//
// A page past the end is not an error, it is just empty, and its slice is
// never loaded. That includes page numbers whose offset does not fit in an int.
func Paginate[T any](ctx context.Context, src Source[T], pageNumber, pageSize int) (*Page[T], error) {
	if pageNumber < 1 {
		return nil, &InvalidArgumentError{Name: "pageNumber", Value: pageNumber, Min: 1}
	}
	if pageSize < 1 {
		return nil, &InvalidArgumentError{Name: "pageSize", Value: pageSize, Min: 1}
	}

	var page *Page[T]
	run := func(s Source[T]) error {
		total, err := s.Count(ctx)
		if err != nil {
			return err
		}
		page = &Page[T]{Items: []T{}, TotalCount: total, PageSize: pageSize, CurrentPage: pageNumber}
		offset, ok := pageOffset(pageNumber, pageSize)
		if !ok || offset >= total {
			return nil
		}
		items, err := s.Slice(ctx, offset, pageSize)
		if err != nil {
			return err
		}
		if items != nil {
			page.Items = items
		}
		return nil
	}

	var err error
	if snap, ok := src.(Snapshotter[T]); ok {
		err = snap.Snapshot(ctx, run)
	} else {
		err = run(src)
	}
	if err != nil {
		return nil, err
	}
	return page, nil
}

// pageOffset is (pageNumber-1)*pageSize, or false when that overflows.
func pageOffset(pageNumber, pageSize int) (int, bool) {
	if pageNumber-1 > (math.MaxInt-pageSize)/pageSize {
		return 0, false
	}
	return (pageNumber - 1) * pageSize, true
}
