package courses

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/5w1tchy/course-library-api/internal/api/handlers"
	"github.com/5w1tchy/course-library-api/internal/api/httpx"
	"github.com/5w1tchy/course-library-api/internal/models"
	"github.com/5w1tchy/course-library-api/internal/validate"
	"go.uber.org/zap"
)

// Create serves POST /api/authors/{authorId}/courses.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	authorID, ok := h.author(w, r)
	if !ok {
		return
	}
	in, ok := decodeCourse(w, r)
	if !ok {
		return
	}

	c := models.Course{AuthorID: authorID, Title: in.Title, Description: in.Description}
	if err := h.Store.Create(r.Context(), &c); err != nil {
		handlers.WriteError(w, r, h.Log, err, "Failed to create course")
		return
	}
	h.Log.Info("course created", zap.String("author_id", authorID.String()), zap.String("course_id", c.ID.String()))
	h.writeCourse(w, r, http.StatusCreated, c, "")
}

// Update serves PUT /api/authors/{authorId}/courses/{courseId}. The body
// replaces the course; a course that does not exist yet is created with the
// id from the path.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	authorID, ok := h.author(w, r)
	if !ok {
		return
	}
	id, ok := courseID(w, r)
	if !ok {
		return
	}
	in, ok := decodeCourse(w, r)
	if !ok {
		return
	}

	c := models.Course{ID: id, AuthorID: authorID, Title: in.Title, Description: in.Description}
	err := h.Store.Update(r.Context(), c)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, sql.ErrNoRows):
		if err := h.Store.Create(r.Context(), &c); err != nil {
			handlers.WriteError(w, r, h.Log, err, "Failed to create course")
			return
		}
		h.Log.Info("course upserted", zap.String("author_id", authorID.String()), zap.String("course_id", id.String()))
		h.writeCourse(w, r, http.StatusCreated, c, "")
	default:
		handlers.WriteError(w, r, h.Log, err, "Failed to update course")
	}
}

// Delete serves DELETE /api/authors/{authorId}/courses/{courseId}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	authorID, ok := h.author(w, r)
	if !ok {
		return
	}
	id, ok := courseID(w, r)
	if !ok {
		return
	}
	if err := h.Store.Delete(r.Context(), authorID, id); err != nil {
		handlers.WriteError(w, r, h.Log, err, "Failed to delete course")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeCourse(w http.ResponseWriter, r *http.Request) (models.CourseForCreation, bool) {
	var in models.CourseForCreation
	if err := httpx.DecodeJSON(r, &in); err != nil {
		handlers.WriteDecodeError(w, r, err)
		return in, false
	}
	var v validate.Violations
	handlers.CheckCourse(&v, "", in)
	if !v.Empty() {
		handlers.WriteViolations(w, r, v)
		return in, false
	}
	return in, true
}
