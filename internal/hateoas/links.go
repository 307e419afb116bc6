// Package hateoas builds the "links" section of API responses.
package hateoas

import (
	"net/http"
	"net/url"
	"strconv"
)

// Link describes one action available from a resource. Href is nil when the
// route could not be resolved; the link is still emitted (as "href": null).
type Link struct {
	Href   *string `json:"href"`
	Rel    string  `json:"rel"`
	Method string  `json:"method"`
}

// URLFunc resolves a named route and its parameters to an absolute URL.
// Parameters that are not part of the route path become query parameters.
type URLFunc func(route string, params url.Values) (string, bool)

// Ref names a route to link to.
type Ref struct {
	Route  string
	Rel    string
	Method string
	Params url.Values
}

// Builder assembles links through the router's URL generator.
type Builder struct {
	URL URLFunc
}

// PageParam is the query parameter holding the page number.
const PageParam = "pageNumber"

func (b Builder) link(route string, params url.Values, rel, method string) Link {
	l := Link{Rel: rel, Method: method}
	if b.URL == nil {
		return l
	}
	if href, ok := b.URL(route, params); ok {
		l.Href = &href
	}
	return l
}

// Collection links a paged list: self, then nextPage / previousPage when
// those pages exist. Only the page number changes between them.
func (b Builder) Collection(route string, params url.Values, pageNumber int, hasNext, hasPrevious bool) []Link {
	links := []Link{b.link(route, withPage(params, pageNumber), "self", http.MethodGet)}
	if hasNext {
		links = append(links, b.link(route, withPage(params, pageNumber+1), "nextPage", http.MethodGet))
	}
	if hasPrevious {
		links = append(links, b.link(route, withPage(params, pageNumber-1), "previousPage", http.MethodGet))
	}
	return links
}

// Resource links a single resource: self (keeping the field selection when
// one was made) followed by related, in order.
func (b Builder) Resource(self Ref, fields string, related ...Ref) []Link {
	params := cloneValues(self.Params)
	if fields != "" {
		params.Set("fields", fields)
	}
	method := self.Method
	if method == "" {
		method = http.MethodGet
	}
	rel := self.Rel
	if rel == "" {
		rel = "self"
	}
	links := make([]Link, 0, 1+len(related))
	links = append(links, b.link(self.Route, params, rel, method))
	for _, r := range related {
		links = append(links, b.link(r.Route, cloneValues(r.Params), r.Rel, r.Method))
	}
	return links
}

func withPage(params url.Values, page int) url.Values {
	out := cloneValues(params)
	out.Set(PageParam, strconv.Itoa(page))
	return out
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v)+1)
	for k, vs := range v {
		out[k] = append([]string(nil), vs...)
	}
	return out
}
