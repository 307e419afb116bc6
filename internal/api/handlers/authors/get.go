package authors

import (
	"net/http"

	"github.com/5w1tchy/course-library-api/internal/api/apperr"
	"github.com/5w1tchy/course-library-api/internal/api/handlers"
	"github.com/5w1tchy/course-library-api/internal/api/httpx"
	"github.com/5w1tchy/course-library-api/internal/hateoas"
	"github.com/5w1tchy/course-library-api/internal/shaping"
	"github.com/google/uuid"
)

// Get serves GET /api/authors/{authorId}. The Accept header picks the
// representation (friendly or full) and whether links are included.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("authorId"))
	if err != nil {
		apperr.NotFound(w, r)
		return
	}
	rep, ok := negotiate(r.Header.Get("Accept"))
	if !ok {
		apperr.WriteStatus(w, r, http.StatusNotAcceptable, "Not Acceptable",
			"Supported media types: application/json, "+MediaFriendly+", "+MediaHateoas+", "+
				MediaFriendlyHateoas+", "+MediaFull+", "+MediaFullHateoas)
		return
	}

	fields := handlers.QueryGet(r.URL.Query(), "fields")
	if rep.full {
		err = h.full.CheckFields(fields)
	} else {
		err = h.friendly.CheckFields(fields)
	}
	if err != nil {
		handlers.WriteError(w, r, h.Log, err, "Failed to load author")
		return
	}

	author, err := h.Store.Get(r.Context(), id)
	if err != nil {
		handlers.WriteError(w, r, h.Log, err, "Failed to load author")
		return
	}

	var links []hateoas.Link
	if rep.links {
		links = handlers.AuthorLinks(h.Links(r), id, fields)
	}
	var rec shaping.Record
	if rep.full {
		rec, err = h.full.One(author, fields, links)
	} else {
		rec, err = h.friendly.One(author, fields, links)
	}
	if err != nil {
		handlers.WriteError(w, r, h.Log, err, "Failed to load author")
		return
	}
	httpx.WriteJSONAs(w, rep.mediaType, http.StatusOK, rec)
}
