package mapping

import (
	"fmt"
	"reflect"
)

type pair struct {
	src, dst reflect.Type
}

func (p pair) String() string { return fmt.Sprintf("<%v,%v>", p.src, p.dst) }

// Entry is one (source shape, destination shape) registration.
type Entry struct {
	key     pair
	mapping Mapping
}

// Register binds a mapping to the (S, D) pair, e.g. Register[AuthorDTO, models.Author].
// S is the client-facing shape, D the stored entity.
func Register[S, D any](m Mapping) Entry {
	return Entry{key: pair{src: reflect.TypeFor[S](), dst: reflect.TypeFor[D]()}, mapping: m}
}

// Registry holds every mapping of the process. It is built once at startup
// and only read afterwards, so it needs no locking.
type Registry struct {
	byPair map[pair]Mapping
}

// NewRegistry fails on the first pair registered twice.
func NewRegistry(entries ...Entry) (*Registry, error) {
	r := &Registry{byPair: make(map[pair]Mapping, len(entries))}
	for _, e := range entries {
		if _, dup := r.byPair[e.key]; dup {
			return nil, &ConfigurationError{Msg: "ambiguous property mapping for " + e.key.String()}
		}
		r.byPair[e.key] = e.mapping
	}
	return r, nil
}

// Get returns the mapping registered for exactly (S, D).
func Get[S, D any](r *Registry) (Mapping, error) {
	key := pair{src: reflect.TypeFor[S](), dst: reflect.TypeFor[D]()}
	m, ok := r.byPair[key]
	if !ok {
		return Mapping{}, &ConfigurationError{Msg: "cannot find exact property mapping instance for " + key.String()}
	}
	return m, nil
}

// IsValid reports whether orderBy only references fields of the (S, D) mapping.
// A missing mapping is a configuration problem, not a client one, so it comes
// back as an error instead of false.
func IsValid[S, D any](r *Registry, orderBy string) (bool, error) {
	m, err := Get[S, D](r)
	if err != nil {
		return false, err
	}
	return m.Valid(orderBy), nil
}
