// Package collections creates and reads batches of authors addressed by a
// comma separated id list.
package collections

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/5w1tchy/course-library-api/internal/api/apperr"
	"github.com/5w1tchy/course-library-api/internal/api/handlers"
	"github.com/5w1tchy/course-library-api/internal/api/httpx"
	"github.com/5w1tchy/course-library-api/internal/api/routes"
	"github.com/5w1tchy/course-library-api/internal/models"
	"github.com/5w1tchy/course-library-api/internal/validate"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MaxBatch bounds both the ids of a GET and the authors of a POST.
const MaxBatch = 100

type Store interface {
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Author, error)
	CreateMany(ctx context.Context, authors []models.Author) error
}

type Handler struct {
	Store Store
	Links handlers.LinkFunc
	Log   *zap.Logger
	Now   func() time.Time
}

func NewHandler(store Store, links handlers.LinkFunc, logger *zap.Logger) *Handler {
	return &Handler{Store: store, Links: links, Log: logger, Now: time.Now}
}

// ParseIDs reads "(id1,id2,...)". The parentheses are optional.
func ParseIDs(raw string) ([]uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimSuffix(strings.TrimPrefix(raw, "("), ")")
	if strings.TrimSpace(raw) == "" {
		return nil, handlers.BadRequest("At least one author id is required.")
	}
	parts := strings.Split(raw, ",")
	if len(parts) > MaxBatch {
		return nil, handlers.BadRequest("At most %d author ids can be requested at once.", MaxBatch)
	}
	ids := make([]uuid.UUID, 0, len(parts))
	for _, p := range parts {
		id, err := uuid.Parse(strings.TrimSpace(p))
		if err != nil {
			return nil, handlers.BadRequest("%q is not a valid author id.", strings.TrimSpace(p))
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// JoinIDs is the inverse of ParseIDs, without the parentheses; the route
// template adds them.
func JoinIDs(ids []uuid.UUID) string {
	s := make([]string, len(ids))
	for i, id := range ids {
		s[i] = id.String()
	}
	return strings.Join(s, ",")
}

// Get serves GET /api/authorcollections/({authorIds}). Every id must exist;
// the authors come back in the order they were asked for.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ids, err := ParseIDs(r.PathValue("authorIds"))
	if err != nil {
		handlers.WriteError(w, r, h.Log, err, "Failed to load authors")
		return
	}
	found, err := h.Store.ListByIDs(r.Context(), ids)
	if err != nil {
		handlers.WriteError(w, r, h.Log, err, "Failed to load authors")
		return
	}
	byID := make(map[uuid.UUID]models.Author, len(found))
	for _, a := range found {
		byID[a.ID] = a
	}
	ordered := make([]models.Author, 0, len(ids))
	for _, id := range ids {
		a, ok := byID[id]
		if !ok {
			apperr.NotFound(w, r)
			return
		}
		ordered = append(ordered, a)
	}
	h.write(w, r, http.StatusOK, ordered)
}

// Create serves POST /api/authorcollections. The batch is stored atomically.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in []models.AuthorForCreation
	if err := httpx.DecodeJSON(r, &in); err != nil {
		handlers.WriteDecodeError(w, r, err)
		return
	}
	if len(in) == 0 {
		apperr.BadRequest(w, r, "At least one author is required.")
		return
	}
	if len(in) > MaxBatch {
		apperr.BadRequest(w, r, "At most "+strconv.Itoa(MaxBatch)+" authors can be created at once.")
		return
	}

	var v validate.Violations
	for i, a := range in {
		handlers.CheckAuthor(&v, "["+strconv.Itoa(i)+"].", a, nil)
	}
	if !v.Empty() {
		handlers.WriteViolations(w, r, v)
		return
	}

	batch := make([]models.Author, len(in))
	for i, a := range in {
		batch[i] = a.Author()
	}
	if err := h.Store.CreateMany(r.Context(), batch); err != nil {
		handlers.WriteError(w, r, h.Log, err, "Failed to create authors")
		return
	}

	ids := make([]uuid.UUID, len(batch))
	for i, a := range batch {
		ids[i] = a.ID
	}
	h.Log.Info("author collection created", zap.Int("authors", len(batch)))

	loc := handlers.Href(h.Links(r), routes.GetAuthorCollection, url.Values{"authorIds": {JoinIDs(ids)}})
	if loc != "" {
		w.Header().Set("Location", loc)
	}
	h.write(w, r, http.StatusCreated, batch)
}

func (h *Handler) write(w http.ResponseWriter, r *http.Request, status int, authors []models.Author) {
	now := h.Now()
	dtos := make([]models.AuthorDTO, len(authors))
	for i, a := range authors {
		dtos[i] = models.NewAuthorDTO(a, now)
	}
	records, err := models.AuthorShape.ProjectAll(dtos, "")
	if err != nil {
		handlers.WriteError(w, r, h.Log, err, "Failed to load authors")
		return
	}
	httpx.WriteJSON(w, status, records)
}
