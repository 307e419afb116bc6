package handlers

import (
	"context"
	"database/sql"
	"errors"

	"github.com/5w1tchy/course-library-api/internal/hateoas"
	"github.com/5w1tchy/course-library-api/internal/mapping"
	"github.com/5w1tchy/course-library-api/internal/query"
	"github.com/5w1tchy/course-library-api/internal/shaping"
)

// Envelope is the body of a linked collection.
type Envelope struct {
	Value []shaping.Record `json:"value"`
	Links []hateoas.Link   `json:"links"`
}

// Listing runs the shaping pipeline over one resource: entity E stored,
// representation D shown to clients.
type Listing[E, D any] struct {
	Mappings *mapping.Registry
	Shape    *shaping.Shape[D]
	ToDTO    func(E) D
}

// Check validates orderBy and fields before anything is queried.
func (l Listing[E, D]) Check(p ResourceParameters) error {
	ok, err := mapping.IsValid[D, E](l.Mappings, p.OrderBy)
	if err != nil {
		return err
	}
	if !ok {
		return BadRequest("The orderBy value %q references a field that cannot be sorted on.", p.OrderBy)
	}
	return l.CheckFields(p.Fields)
}

// CheckFields validates a field selection against the shape.
func (l Listing[E, D]) CheckFields(fields string) error {
	if !l.Shape.HasFields(fields) {
		return BadRequest("Not all requested data shaping fields exist on the resource: %s", fields)
	}
	return nil
}

// Page sorts src, loads the requested page and shapes it. itemLinks, when
// set, adds a "links" key to every record.
func (l Listing[E, D]) Page(ctx context.Context, src query.Source[E], p ResourceParameters, itemLinks func(E) []hateoas.Link) (*query.Page[E], []shaping.Record, error) {
	m, err := mapping.Get[D, E](l.Mappings)
	if err != nil {
		return nil, nil, err
	}
	sorted, err := query.ApplySort(src, p.OrderBy, m)
	if err != nil {
		return nil, nil, err
	}
	page, err := query.Paginate(ctx, sorted, p.PageNumber, p.PageSize)
	if err != nil {
		return nil, nil, err
	}
	records, err := l.Shape.ProjectAll(l.DTOs(page.Items), p.Fields)
	if err != nil {
		return nil, nil, err
	}
	if itemLinks != nil {
		for i, e := range page.Items {
			records[i] = records[i].With("links", itemLinks(e))
		}
	}
	return page, records, nil
}

// One shapes a single entity, with links when links is non-nil.
func (l Listing[E, D]) One(e E, fields string, links []hateoas.Link) (shaping.Record, error) {
	rec, err := l.Shape.Project(l.ToDTO(e), fields)
	if err != nil {
		return shaping.Record{}, err
	}
	if links != nil {
		rec = rec.With("links", links)
	}
	return rec, nil
}

func (l Listing[E, D]) DTOs(items []E) []D {
	out := make([]D, len(items))
	for i, e := range items {
		out[i] = l.ToDTO(e)
	}
	return out
}

func isNotFound(err error) bool { return errors.Is(err, sql.ErrNoRows) }
