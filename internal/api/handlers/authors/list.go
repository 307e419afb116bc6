package authors

import (
	"net/http"
	"strings"

	"github.com/5w1tchy/course-library-api/internal/api/handlers"
	"github.com/5w1tchy/course-library-api/internal/api/httpx"
	"github.com/5w1tchy/course-library-api/internal/api/routes"
	"github.com/5w1tchy/course-library-api/internal/hateoas"
	"github.com/5w1tchy/course-library-api/internal/models"
	authorstore "github.com/5w1tchy/course-library-api/internal/store/authors"
)

// List serves GET/HEAD /api/authors.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p, err := handlers.ParseResourceParameters(q, "name", h.Paging)
	if err != nil {
		handlers.WriteError(w, r, h.Log, err, "Failed to list authors")
		return
	}
	if err := h.friendly.Check(p); err != nil {
		handlers.WriteError(w, r, h.Log, err, "Failed to list authors")
		return
	}

	filter := authorstore.Filter{
		MainCategory: strings.TrimSpace(handlers.QueryGet(q, "mainCategory")),
		SearchQuery:  strings.TrimSpace(handlers.QueryGet(q, "searchQuery")),
	}

	links := h.Links(r)
	page, records, err := h.friendly.Page(r.Context(), h.Store.List(filter), p, func(a models.Author) []hateoas.Link {
		return handlers.AuthorLinks(links, a.ID, "")
	})
	if err != nil {
		handlers.WriteError(w, r, h.Log, err, "Failed to list authors")
		return
	}

	params := p.Values()
	if filter.MainCategory != "" {
		params.Set("mainCategory", filter.MainCategory)
	}
	if filter.SearchQuery != "" {
		params.Set("searchQuery", filter.SearchQuery)
	}

	handlers.WritePagination(w, page)
	httpx.WriteJSON(w, http.StatusOK, handlers.Envelope{
		Value: records,
		Links: links.Collection(routes.GetAuthors, params, p.PageNumber, page.HasNext(), page.HasPrevious()),
	})
}

// Options serves OPTIONS /api/authors.
func (h *Handler) Options(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Allow", "GET,HEAD,POST,OPTIONS")
	w.WriteHeader(http.StatusOK)
}
