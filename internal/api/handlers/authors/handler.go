// Package authors serves /api/authors.
package authors

import (
	"context"
	"time"

	"github.com/5w1tchy/course-library-api/internal/api/handlers"
	"github.com/5w1tchy/course-library-api/internal/mapping"
	"github.com/5w1tchy/course-library-api/internal/models"
	"github.com/5w1tchy/course-library-api/internal/query"
	authorstore "github.com/5w1tchy/course-library-api/internal/store/authors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Store is the author persistence the handlers need.
type Store interface {
	List(f authorstore.Filter) query.Source[models.Author]
	Get(ctx context.Context, id uuid.UUID) (models.Author, error)
	Create(ctx context.Context, a *models.Author) error
}

type Handler struct {
	Store  Store
	Links  handlers.LinkFunc
	Paging handlers.Paging
	Log    *zap.Logger
	Now    func() time.Time

	friendly handlers.Listing[models.Author, models.AuthorDTO]
	full     handlers.Listing[models.Author, models.AuthorFullDTO]
}

func NewHandler(store Store, reg *mapping.Registry, links handlers.LinkFunc, paging handlers.Paging, logger *zap.Logger) *Handler {
	h := &Handler{Store: store, Links: links, Paging: paging, Log: logger, Now: time.Now}
	h.friendly = handlers.Listing[models.Author, models.AuthorDTO]{
		Mappings: reg,
		Shape:    models.AuthorShape,
		ToDTO:    func(a models.Author) models.AuthorDTO { return models.NewAuthorDTO(a, h.Now()) },
	}
	h.full = handlers.Listing[models.Author, models.AuthorFullDTO]{
		Mappings: reg,
		Shape:    models.AuthorFullShape,
		ToDTO:    models.NewAuthorFullDTO,
	}
	return h
}
