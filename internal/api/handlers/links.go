package handlers

import (
	"net/http"
	"net/url"

	"github.com/5w1tchy/course-library-api/internal/api/httpx"
	"github.com/5w1tchy/course-library-api/internal/api/routes"
	"github.com/5w1tchy/course-library-api/internal/hateoas"
	"github.com/5w1tchy/course-library-api/internal/query"
	"github.com/google/uuid"
)

// LinkFunc returns the link builder for one request.
type LinkFunc func(r *http.Request) hateoas.Builder

// LinkedRoutes are the route names handlers link to; the server checks them
// against the route table at startup.
var LinkedRoutes = []string{
	routes.GetAuthors, routes.GetAuthor, routes.CreateCourseForAuthor, routes.GetCoursesForAuthor,
	routes.GetCourseForAuthor, routes.UpdateCourseForAuthor, routes.DeleteCourseForAuthor,
	routes.GetAuthorCollection,
}

func AuthorLinks(b hateoas.Builder, authorID uuid.UUID, fields string) []hateoas.Link {
	p := url.Values{"authorId": {authorID.String()}}
	return b.Resource(hateoas.Ref{Route: routes.GetAuthor, Params: p}, fields,
		hateoas.Ref{Route: routes.CreateCourseForAuthor, Rel: "create_course_for_author", Method: http.MethodPost, Params: p},
		hateoas.Ref{Route: routes.GetCoursesForAuthor, Rel: "courses", Method: http.MethodGet, Params: p},
	)
}

func CourseLinks(b hateoas.Builder, authorID, courseID uuid.UUID, fields string) []hateoas.Link {
	p := url.Values{"authorId": {authorID.String()}, "courseId": {courseID.String()}}
	author := url.Values{"authorId": {authorID.String()}}
	return b.Resource(hateoas.Ref{Route: routes.GetCourseForAuthor, Params: p}, fields,
		hateoas.Ref{Route: routes.UpdateCourseForAuthor, Rel: "update_course", Method: http.MethodPut, Params: p},
		hateoas.Ref{Route: routes.DeleteCourseForAuthor, Rel: "delete_course", Method: http.MethodDelete, Params: p},
		hateoas.Ref{Route: routes.GetAuthor, Rel: "author", Method: http.MethodGet, Params: author},
	)
}

// Href is the resolved URL of a route, or "" when it does not resolve.
func Href(b hateoas.Builder, route string, params url.Values) string {
	if b.URL == nil {
		return ""
	}
	href, _ := b.URL(route, params)
	return href
}

// WritePagination sets the X-Pagination header.
func WritePagination[T any](w http.ResponseWriter, page *query.Page[T]) {
	_ = httpx.SetJSONHeader(w, "X-Pagination", page.Metadata())
}
