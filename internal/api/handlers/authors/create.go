package authors

import (
	"net/http"
	"net/url"
	"time"

	"github.com/5w1tchy/course-library-api/internal/api/apperr"
	"github.com/5w1tchy/course-library-api/internal/api/handlers"
	"github.com/5w1tchy/course-library-api/internal/api/httpx"
	"github.com/5w1tchy/course-library-api/internal/api/routes"
	"github.com/5w1tchy/course-library-api/internal/models"
	"github.com/5w1tchy/course-library-api/internal/validate"
	"go.uber.org/zap"
)

// Create serves POST /api/authors. The Content-Type selects the body shape:
// the plain one, or the one carrying a date of death.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var (
		author models.Author
		in     models.AuthorForCreation
		dod    *time.Time
		err    error
	)
	switch httpx.MediaType(r.Header.Get("Content-Type")) {
	case MediaJSON, MediaCreate:
		err = httpx.DecodeJSON(r, &in)
		author = in.Author()
	case MediaCreateWithDeathDate:
		var withDeath models.AuthorForCreationWithDateOfDeath
		err = httpx.DecodeJSON(r, &withDeath)
		in, dod = withDeath.AuthorForCreation, withDeath.DateOfDeath
		author = withDeath.Author()
	default:
		apperr.WriteStatus(w, r, http.StatusUnsupportedMediaType, "Unsupported Media Type",
			"Supported media types: application/json, "+MediaCreate+", "+MediaCreateWithDeathDate)
		return
	}
	if err != nil {
		handlers.WriteDecodeError(w, r, err)
		return
	}

	var v validate.Violations
	handlers.CheckAuthor(&v, "", in, dod)
	if !v.Empty() {
		handlers.WriteViolations(w, r, v)
		return
	}

	if err := h.Store.Create(r.Context(), &author); err != nil {
		handlers.WriteError(w, r, h.Log, err, "Failed to create author")
		return
	}
	h.Log.Info("author created", zap.String("author_id", author.ID.String()), zap.Int("courses", len(author.Courses)))

	links := h.Links(r)
	rec, err := h.friendly.One(author, "", handlers.AuthorLinks(links, author.ID, ""))
	if err != nil {
		handlers.WriteError(w, r, h.Log, err, "Failed to create author")
		return
	}
	if loc := handlers.Href(links, routes.GetAuthor, url.Values{"authorId": {author.ID.String()}}); loc != "" {
		w.Header().Set("Location", loc)
	}
	httpx.WriteJSON(w, http.StatusCreated, rec)
}
