package dbx

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/5w1tchy/course-library-api/internal/query"
)

// Scanner is satisfied by *sql.Row and *sql.Rows.
type Scanner interface {
	Scan(dest ...any) error
}

// Columns maps storage field names to SQL column expressions. It is the only
// way an ordering reaches SQL, so nothing from a request is ever interpolated.
type Columns map[string]string

// UnknownColumnError means an ordering named a storage field that has no
// column. The mappings and the column table disagree: a server bug.
type UnknownColumnError struct {
	Field string
}

func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("dbx: no column for storage field %q", e.Field)
}

// maxPrealloc caps the capacity Slice reserves before rows arrive.
const maxPrealloc = 256

// Select is a deferred SELECT implementing query.Source. Where and OrderBy
// return modified copies; Count and Slice execute.
type Select[T any] struct {
	db      *sql.DB
	run     Runner
	from    string
	list    string
	columns Columns
	scan    func(Scanner) (T, error)
	where   []string
	args    []any
	orders  []query.Order
	unique  string
}

// NewSelect builds "SELECT list FROM from". scan reads one row in list order.
func NewSelect[T any](db *sql.DB, from, list string, columns Columns, scan func(Scanner) (T, error)) *Select[T] {
	return &Select[T]{db: db, run: db, from: from, list: list, columns: columns, scan: scan}
}

// TieBreak names a unique column appended ascending to every non-empty
// ORDER BY, so rows that tie on the requested keys keep one order across
// LIMIT/OFFSET queries.
func (s *Select[T]) TieBreak(col string) *Select[T] {
	cp := s.clone()
	cp.unique = col
	return cp
}

// Where adds a condition ANDed with the others. Each '?' in cond is bound to
// the next arg.
func (s *Select[T]) Where(cond string, args ...any) *Select[T] {
	cp := s.clone()
	var b strings.Builder
	n := len(cp.args)
	for _, r := range cond {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	if n-len(cp.args) != len(args) {
		panic(fmt.Sprintf("dbx: %q has %d placeholders for %d args", cond, n-len(cp.args), len(args)))
	}
	cp.where = append(cp.where, b.String())
	cp.args = append(cp.args, args...)
	return cp
}

func (s *Select[T]) OrderBy(orders []query.Order) query.Source[T] {
	cp := s.clone()
	cp.orders = append([]query.Order(nil), orders...)
	return cp
}

func (s *Select[T]) Count(ctx context.Context) (int, error) {
	var n int
	if err := Get(ctx, s.run, s.CountSQL(), s.args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (s *Select[T]) Slice(ctx context.Context, offset, limit int) ([]T, error) {
	q, err := s.SliceSQL()
	if err != nil {
		return nil, err
	}
	args := append(append([]any(nil), s.args...), limit, offset)
	rows, err := Query(ctx, s.run, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]T, 0, min(limit, maxPrealloc))
	for rows.Next() {
		v, err := s.scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// All runs the select without paging.
func (s *Select[T]) All(ctx context.Context) ([]T, error) {
	q, err := s.baseSQL()
	if err != nil {
		return nil, err
	}
	rows, err := Query(ctx, s.run, q, s.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		v, err := s.scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Snapshot runs fn against a copy bound to a read-only repeatable-read
// transaction, so every read inside fn sees the same data.
func (s *Select[T]) Snapshot(ctx context.Context, fn func(query.Source[T]) error) error {
	if s.db == nil {
		return fn(s)
	}
	return WithinTxOptions(ctx, s.db, SnapshotOptions, func(tx *sql.Tx) error {
		cp := s.clone()
		cp.db, cp.run = nil, tx
		return fn(cp)
	})
}

// CountSQL is the statement Count runs.
func (s *Select[T]) CountSQL() string {
	return "SELECT COUNT(*) FROM " + s.from + s.whereSQL()
}

// SliceSQL is the statement Slice runs; LIMIT and OFFSET are its last two args.
func (s *Select[T]) SliceSQL() (string, error) {
	q, err := s.baseSQL()
	if err != nil {
		return "", err
	}
	n := len(s.args)
	return q + " LIMIT $" + strconv.Itoa(n+1) + " OFFSET $" + strconv.Itoa(n+2), nil
}

func (s *Select[T]) baseSQL() (string, error) {
	q := "SELECT " + s.list + " FROM " + s.from + s.whereSQL()
	if len(s.orders) == 0 {
		return q, nil
	}
	parts := make([]string, len(s.orders))
	for i, o := range s.orders {
		col, ok := s.columns[o.Field]
		if !ok {
			return "", &UnknownColumnError{Field: o.Field}
		}
		dir := " ASC"
		if o.Desc {
			dir = " DESC"
		}
		parts[i] = col + dir
	}
	if s.unique != "" && s.columns[s.orders[len(s.orders)-1].Field] != s.unique {
		parts = append(parts, s.unique+" ASC")
	}
	return q + " ORDER BY " + strings.Join(parts, ", "), nil
}

func (s *Select[T]) whereSQL() string {
	if len(s.where) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(s.where, " AND ")
}

func (s *Select[T]) clone() *Select[T] {
	cp := *s
	cp.where = append([]string(nil), s.where...)
	cp.args = append([]any(nil), s.args...)
	cp.orders = append([]query.Order(nil), s.orders...)
	return &cp
}
