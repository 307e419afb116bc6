// Package routes names every API endpoint and turns a route name plus
// parameters back into a URL. Handlers link through it; the router mounts it.
package routes

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/5w1tchy/course-library-api/internal/hateoas"
)

const (
	GetAuthors             = "GetAuthors"
	CreateAuthor           = "CreateAuthor"
	GetAuthorsOptions      = "GetAuthorsOptions"
	GetAuthor              = "GetAuthor"
	GetCoursesForAuthor    = "GetCoursesForAuthor"
	CreateCourseForAuthor  = "CreateCourseForAuthor"
	GetCourseForAuthor     = "GetCourseForAuthor"
	UpdateCourseForAuthor  = "UpdateCourseForAuthor"
	DeleteCourseForAuthor  = "DeleteCourseForAuthor"
	GetAuthorCollection    = "GetAuthorCollection"
	CreateAuthorCollection = "CreateAuthorCollection"
)

// Route is one endpoint. Path is the URL template; {name} segments are
// filled from link parameters. Pattern is the ServeMux pattern and defaults
// to "METHOD Path".
type Route struct {
	Name    string
	Method  string
	Path    string
	Pattern string
}

func (r Route) MuxPattern() string {
	if r.Pattern != "" {
		return r.Pattern
	}
	return r.Method + " " + r.Path
}

// All lists the endpoints of the API.
var All = []Route{
	{Name: GetAuthors, Method: http.MethodGet, Path: "/api/authors"},
	{Name: CreateAuthor, Method: http.MethodPost, Path: "/api/authors"},
	{Name: GetAuthorsOptions, Method: http.MethodOptions, Path: "/api/authors"},
	{Name: GetAuthor, Method: http.MethodGet, Path: "/api/authors/{authorId}"},
	{Name: GetCoursesForAuthor, Method: http.MethodGet, Path: "/api/authors/{authorId}/courses"},
	{Name: CreateCourseForAuthor, Method: http.MethodPost, Path: "/api/authors/{authorId}/courses"},
	{Name: GetCourseForAuthor, Method: http.MethodGet, Path: "/api/authors/{authorId}/courses/{courseId}"},
	{Name: UpdateCourseForAuthor, Method: http.MethodPut, Path: "/api/authors/{authorId}/courses/{courseId}"},
	{Name: DeleteCourseForAuthor, Method: http.MethodDelete, Path: "/api/authors/{authorId}/courses/{courseId}"},
	// ServeMux wildcards must span a whole segment, so the parentheses are
	// stripped by the handler.
	{Name: GetAuthorCollection, Method: http.MethodGet, Path: "/api/authorcollections/({authorIds})",
		Pattern: "GET /api/authorcollections/{authorIds}"},
	{Name: CreateAuthorCollection, Method: http.MethodPost, Path: "/api/authorcollections"},
}

// Table resolves route names to URLs.
type Table struct {
	byName map[string]Route
}

func NewTable(routes []Route) (*Table, error) {
	t := &Table{byName: make(map[string]Route, len(routes))}
	for _, r := range routes {
		if _, dup := t.byName[r.Name]; dup {
			return nil, fmt.Errorf("routes: duplicate route name %q", r.Name)
		}
		t.byName[r.Name] = r
	}
	return t, nil
}

// Route returns the named route.
func (t *Table) Route(name string) (Route, bool) {
	r, ok := t.byName[name]
	return r, ok
}

// MustResolve panics when a name is not registered. Called once at startup
// for every route the handlers link to.
func (t *Table) MustResolve(names ...string) {
	for _, n := range names {
		if _, ok := t.byName[n]; !ok {
			panic(fmt.Sprintf("routes: no route named %q", n))
		}
	}
}

// Path fills the template of name. Parameters used by the path are removed
// from the rest, which become the query string. Empty values are skipped.
func (t *Table) Path(name string, params url.Values) (string, bool) {
	r, ok := t.byName[name]
	if !ok {
		return "", false
	}
	rest := make(url.Values, len(params))
	for k, v := range params {
		rest[k] = v
	}

	var b strings.Builder
	tmpl := r.Path
	for {
		open := strings.IndexByte(tmpl, '{')
		if open < 0 {
			b.WriteString(tmpl)
			break
		}
		end := strings.IndexByte(tmpl[open:], '}')
		if end < 0 {
			return "", false
		}
		end += open
		key := tmpl[open+1 : end]
		val := rest.Get(key)
		if val == "" {
			return "", false
		}
		delete(rest, key)
		b.WriteString(tmpl[:open])
		b.WriteString(escapeSegment(val))
		tmpl = tmpl[end+1:]
	}

	for k, vs := range rest {
		if len(vs) == 0 || vs[0] == "" {
			delete(rest, k)
		}
	}
	if q := rest.Encode(); q != "" {
		return b.String() + "?" + q, true
	}
	return b.String(), true
}

// escapeSegment keeps commas readable; they are legal in a path segment.
func escapeSegment(v string) string {
	return strings.ReplaceAll(url.PathEscape(v), "%2C", ",")
}

// URLFunc returns a link resolver rooted at base ("https://api.example.com").
// An empty base produces host-relative links.
func (t *Table) URLFunc(base string) hateoas.URLFunc {
	base = strings.TrimRight(base, "/")
	return func(route string, params url.Values) (string, bool) {
		p, ok := t.Path(route, params)
		if !ok {
			return "", false
		}
		return base + p, true
	}
}

// Linker builds a per-request hateoas.Builder. With a configured public base
// URL every link uses it; otherwise links point at the host the request
// came in on.
type Linker struct {
	Table   *Table
	BaseURL string
}

func (l Linker) For(r *http.Request) hateoas.Builder {
	base := l.BaseURL
	if base == "" && r != nil {
		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		if p := r.Header.Get("X-Forwarded-Proto"); p == "http" || p == "https" {
			scheme = p
		}
		base = scheme + "://" + r.Host
	}
	return hateoas.Builder{URL: l.Table.URLFunc(base)}
}
