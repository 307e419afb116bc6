// Package courses serves the courses nested under an author.
package courses

import (
	"context"
	"net/http"

	"github.com/5w1tchy/course-library-api/internal/api/apperr"
	"github.com/5w1tchy/course-library-api/internal/api/handlers"
	"github.com/5w1tchy/course-library-api/internal/mapping"
	"github.com/5w1tchy/course-library-api/internal/models"
	"github.com/5w1tchy/course-library-api/internal/query"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Store interface {
	ForAuthor(authorID uuid.UUID) query.Source[models.Course]
	Get(ctx context.Context, authorID, courseID uuid.UUID) (models.Course, error)
	Create(ctx context.Context, c *models.Course) error
	Update(ctx context.Context, c models.Course) error
	Delete(ctx context.Context, authorID, courseID uuid.UUID) error
}

// Authors answers whether the parent author exists.
type Authors interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type Handler struct {
	Store   Store
	Authors Authors
	Links   handlers.LinkFunc
	Paging  handlers.Paging
	Log     *zap.Logger

	listing handlers.Listing[models.Course, models.CourseDTO]
}

func NewHandler(store Store, authors Authors, reg *mapping.Registry, links handlers.LinkFunc, paging handlers.Paging, logger *zap.Logger) *Handler {
	return &Handler{
		Store:   store,
		Authors: authors,
		Links:   links,
		Paging:  paging,
		Log:     logger,
		listing: handlers.Listing[models.Course, models.CourseDTO]{
			Mappings: reg,
			Shape:    models.CourseShape,
			ToDTO:    models.NewCourseDTO,
		},
	}
}

// author resolves {authorId} and makes sure the author exists. It writes the
// response and returns false otherwise.
func (h *Handler) author(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("authorId"))
	if err != nil {
		apperr.NotFound(w, r)
		return uuid.Nil, false
	}
	ok, err := h.Authors.Exists(r.Context(), id)
	if err != nil {
		handlers.WriteError(w, r, h.Log, err, "Failed to load author")
		return uuid.Nil, false
	}
	if !ok {
		apperr.NotFound(w, r)
		return uuid.Nil, false
	}
	return id, true
}

func courseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("courseId"))
	if err != nil {
		apperr.NotFound(w, r)
		return uuid.Nil, false
	}
	return id, true
}
