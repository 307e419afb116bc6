package query

import (
	"strings"

	"github.com/5w1tchy/course-library-api/internal/mapping"
)

// Clause is one comma-separated segment of a sort expression.
type Clause struct {
	Field string
	Desc  bool
}

// ParseSort splits "name desc, age" into clauses. Only a literal trailing
// " desc" (case-sensitive) means descending; any other suffix is ascending.
// The field is the clause text before its first space.
func ParseSort(orderBy string) []Clause {
	if strings.TrimSpace(orderBy) == "" {
		return nil
	}
	parts := strings.Split(orderBy, ",")
	out := make([]Clause, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		c := Clause{Field: p, Desc: strings.HasSuffix(p, " desc")}
		if i := strings.IndexByte(p, ' '); i >= 0 {
			c.Field = p[:i]
		}
		out = append(out, c)
	}
	return out
}

// Resolve expands clauses through m into storage orderings, keeping clause
// order and each field's declared destination order. Repeated clauses are
// kept; they only add redundant tie-breakers.
func Resolve(clauses []Clause, m mapping.Mapping) ([]Order, error) {
	var out []Order
	for _, c := range clauses {
		v, ok := m.Lookup(c.Field)
		if !ok {
			return nil, &UnknownSortFieldError{Field: c.Field}
		}
		desc := c.Desc != v.Revert
		for _, dest := range v.Destinations {
			out = append(out, Order{Field: dest, Desc: desc})
		}
	}
	return out, nil
}

// ApplySort orders src by a client sort expression. An empty expression
// returns src as is. Nothing is executed: the result is a new deferred source,
// and on error src is never touched.
func ApplySort[T any](src Source[T], orderBy string, m mapping.Mapping) (Source[T], error) {
	clauses := ParseSort(orderBy)
	if len(clauses) == 0 {
		return src, nil
	}
	orders, err := Resolve(clauses, m)
	if err != nil {
		return nil, err
	}
	return src.OrderBy(orders), nil
}
