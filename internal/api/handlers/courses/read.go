package courses

import (
	"net/http"
	"net/url"

	"github.com/5w1tchy/course-library-api/internal/api/handlers"
	"github.com/5w1tchy/course-library-api/internal/api/httpx"
	"github.com/5w1tchy/course-library-api/internal/api/routes"
	"github.com/5w1tchy/course-library-api/internal/hateoas"
	"github.com/5w1tchy/course-library-api/internal/models"
)

// List serves GET /api/authors/{authorId}/courses.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	p, err := handlers.ParseResourceParameters(r.URL.Query(), "title", h.Paging)
	if err != nil {
		handlers.WriteError(w, r, h.Log, err, "Failed to list courses")
		return
	}
	if err := h.listing.Check(p); err != nil {
		handlers.WriteError(w, r, h.Log, err, "Failed to list courses")
		return
	}
	authorID, ok := h.author(w, r)
	if !ok {
		return
	}

	links := h.Links(r)
	page, records, err := h.listing.Page(r.Context(), h.Store.ForAuthor(authorID), p, func(c models.Course) []hateoas.Link {
		return handlers.CourseLinks(links, c.AuthorID, c.ID, "")
	})
	if err != nil {
		handlers.WriteError(w, r, h.Log, err, "Failed to list courses")
		return
	}

	params := p.Values()
	params.Set("authorId", authorID.String())
	handlers.WritePagination(w, page)
	httpx.WriteJSON(w, http.StatusOK, handlers.Envelope{
		Value: records,
		Links: links.Collection(routes.GetCoursesForAuthor, params, p.PageNumber, page.HasNext(), page.HasPrevious()),
	})
}

// Get serves GET /api/authors/{authorId}/courses/{courseId}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	fields := handlers.QueryGet(r.URL.Query(), "fields")
	if err := h.listing.CheckFields(fields); err != nil {
		handlers.WriteError(w, r, h.Log, err, "Failed to load course")
		return
	}
	authorID, ok := h.author(w, r)
	if !ok {
		return
	}
	id, ok := courseID(w, r)
	if !ok {
		return
	}

	course, err := h.Store.Get(r.Context(), authorID, id)
	if err != nil {
		handlers.WriteError(w, r, h.Log, err, "Failed to load course")
		return
	}
	h.writeCourse(w, r, http.StatusOK, course, fields)
}

// writeCourse writes the shaped course with its links. Created courses also
// get a Location header.
func (h *Handler) writeCourse(w http.ResponseWriter, r *http.Request, status int, c models.Course, fields string) {
	links := h.Links(r)
	rec, err := h.listing.One(c, fields, handlers.CourseLinks(links, c.AuthorID, c.ID, fields))
	if err != nil {
		handlers.WriteError(w, r, h.Log, err, "Failed to load course")
		return
	}
	if status == http.StatusCreated {
		loc := handlers.Href(links, routes.GetCourseForAuthor, url.Values{
			"authorId": {c.AuthorID.String()},
			"courseId": {c.ID.String()},
		})
		if loc != "" {
			w.Header().Set("Location", loc)
		}
	}
	httpx.WriteJSON(w, status, rec)
}
