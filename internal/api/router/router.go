package router

import (
	"fmt"
	"net/http"

	"github.com/5w1tchy/course-library-api/internal/api/handlers/authors"
	"github.com/5w1tchy/course-library-api/internal/api/handlers/collections"
	"github.com/5w1tchy/course-library-api/internal/api/handlers/courses"
	"github.com/5w1tchy/course-library-api/internal/api/middlewares"
	"github.com/5w1tchy/course-library-api/internal/api/routes"
)

// Handlers are the API endpoints plus the operational ones.
type Handlers struct {
	Authors     *authors.Handler
	Courses     *courses.Handler
	Collections *collections.Handler
	Health      http.Handler
	Metrics     http.Handler

	// Protect wraps every POST, PUT and DELETE route. Nil leaves them open.
	Protect middlewares.Middleware
}

// Router mounts every route of routes.All. A route without a handler is a
// wiring bug and fails here instead of at request time.
func Router(h Handlers) (*http.ServeMux, error) {
	byName := map[string]http.HandlerFunc{}
	if h.Authors != nil {
		byName[routes.GetAuthors] = h.Authors.List
		byName[routes.CreateAuthor] = h.Authors.Create
		byName[routes.GetAuthorsOptions] = h.Authors.Options
		byName[routes.GetAuthor] = h.Authors.Get
	}
	if h.Courses != nil {
		byName[routes.GetCoursesForAuthor] = h.Courses.List
		byName[routes.CreateCourseForAuthor] = h.Courses.Create
		byName[routes.GetCourseForAuthor] = h.Courses.Get
		byName[routes.UpdateCourseForAuthor] = h.Courses.Update
		byName[routes.DeleteCourseForAuthor] = h.Courses.Delete
	}
	if h.Collections != nil {
		byName[routes.GetAuthorCollection] = h.Collections.Get
		byName[routes.CreateAuthorCollection] = h.Collections.Create
	}

	mux := http.NewServeMux()
	for _, rt := range routes.All {
		fn, ok := byName[rt.Name]
		if !ok {
			return nil, fmt.Errorf("router: no handler for route %s", rt.Name)
		}
		var handler http.Handler = fn
		switch rt.Method {
		case http.MethodPost, http.MethodPut, http.MethodDelete:
			if h.Protect != nil {
				handler = h.Protect(handler)
			}
		}
		mux.Handle(rt.MuxPattern(), handler)
	}

	if h.Health != nil {
		mux.Handle("GET /api/healthz", h.Health)
	}
	if h.Metrics != nil {
		mux.Handle("GET /metrics", h.Metrics)
	}
	return mux, nil
}
