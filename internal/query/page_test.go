package query_test

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/5w1tchy/course-library-api/internal/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numbered(n int) *query.SliceSource[person] {
	people := make([]person, n)
	for i := range people {
		people[i] = person{ID: i + 1}
	}
	return query.FromSlice(people, personFields)
}

func TestPaginate_LastPartialPage(t *testing.T) {
	page, err := query.Paginate[person](context.Background(), numbered(25), 3, 10)
	require.NoError(t, err)

	assert.Len(t, page.Items, 5)
	assert.Equal(t, 21, page.Items[0].ID)
	assert.Equal(t, 25, page.TotalCount)
	assert.Equal(t, 3, page.TotalPages())
	assert.False(t, page.HasNext())
	assert.True(t, page.HasPrevious())
}

func TestPaginate_PastTheEnd(t *testing.T) {
	page, err := query.Paginate[person](context.Background(), numbered(5), 10, 10)
	require.NoError(t, err)

	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.Equal(t, 5, page.TotalCount)
	assert.False(t, page.HasNext())
	assert.True(t, page.HasPrevious())
}

func TestPaginate_HugePageNumber(t *testing.T) {
	src := query.FromSlice([]int{1, 2, 3, 4, 5}, nil)

	for _, n := range []int{400000000000000001, math.MaxInt} {
		page, err := query.Paginate[int](context.Background(), src, n, 25)
		require.NoError(t, err)
		assert.NotNil(t, page.Items)
		assert.Empty(t, page.Items)
		assert.Equal(t, 5, page.TotalCount)
		assert.Equal(t, n, page.CurrentPage)
		assert.False(t, page.HasNext())
	}
	_, sliced := src.Executions()
	assert.Zero(t, sliced, "an offset past the end never loads a slice")
}

func TestSliceSource_NegativeOffset(t *testing.T) {
	_, err := numbered(3).Slice(context.Background(), -25, 25)
	var invalid *query.InvalidArgumentError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "offset", invalid.Name)

	items, err := numbered(3).Slice(context.Background(), 1, math.MaxInt)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestPaginate_Empty(t *testing.T) {
	page, err := query.Paginate[person](context.Background(), numbered(0), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, page.TotalPages())
	assert.False(t, page.HasNext())
	assert.False(t, page.HasPrevious())
	assert.Equal(t, query.Metadata{TotalCount: 0, PageSize: 10, CurrentPage: 1, TotalPages: 0}, page.Metadata())
}

func TestPaginate_InvalidArguments(t *testing.T) {
	src := numbered(3)
	for _, tc := range []struct{ page, size int }{{0, 10}, {1, 0}, {-1, 5}, {2, -3}} {
		_, err := query.Paginate[person](context.Background(), src, tc.page, tc.size)
		var invalid *query.InvalidArgumentError
		assert.ErrorAsf(t, err, &invalid, "page=%d size=%d", tc.page, tc.size)
	}
	count, slice := src.Executions()
	assert.Zero(t, count+slice)
}

func TestPage_TotalPagesArithmetic(t *testing.T) {
	for total := 0; total <= 40; total++ {
		for size := 1; size <= 12; size++ {
			want := total / size
			if total%size != 0 {
				want++
			}
			for current := 1; current <= want+1; current++ {
				p := query.Page[person]{TotalCount: total, PageSize: size, CurrentPage: current}
				require.Equal(t, want, p.TotalPages(), fmt.Sprintf("total=%d size=%d", total, size))
				require.Equal(t, current < want, p.HasNext())
				require.Equal(t, current > 1, p.HasPrevious())
			}
		}
	}
}

func TestPaginate_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	page, err := query.Paginate[person](ctx, numbered(5), 1, 2)
	assert.Nil(t, page)
	assert.ErrorIs(t, err, context.Canceled)
}

type failingSource struct {
	query.Source[person]
	countErr, sliceErr error
}

func (f failingSource) Count(context.Context) (int, error) { return 3, f.countErr }

func (f failingSource) Slice(context.Context, int, int) ([]person, error) { return nil, f.sliceErr }

func TestPaginate_PropagatesStoreErrors(t *testing.T) {
	boom := errors.New("connection reset")

	_, err := query.Paginate[person](context.Background(), failingSource{countErr: boom}, 1, 10)
	assert.Same(t, boom, err)

	_, err = query.Paginate[person](context.Background(), failingSource{sliceErr: boom}, 1, 10)
	assert.Same(t, boom, err)
}

type snapshotSource struct {
	*query.SliceSource[person]
	snapshots int
}

func (s *snapshotSource) Snapshot(ctx context.Context, fn func(query.Source[person]) error) error {
	s.snapshots++
	return fn(s.SliceSource)
}

func TestPaginate_UsesSnapshot(t *testing.T) {
	src := &snapshotSource{SliceSource: numbered(4)}
	page, err := query.Paginate[person](context.Background(), src, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, src.snapshots)
	assert.Len(t, page.Items, 1)
}
