package authorstore

import (
	"context"
	"database/sql"
	"strings"

	"github.com/5w1tchy/course-library-api/internal/models"
	"github.com/5w1tchy/course-library-api/internal/query"
	"github.com/5w1tchy/course-library-api/internal/store/dbx"
	"github.com/5w1tchy/course-library-api/internal/store/shared"
	"github.com/google/uuid"
)

const selectList = "a.id, a.first_name, a.last_name, a.date_of_birth, a.date_of_death, a.main_category"

// Columns are the author storage fields that can be ordered on.
var Columns = dbx.Columns{
	models.FieldID:           "a.id",
	models.FieldFirstName:    "a.first_name",
	models.FieldLastName:     "a.last_name",
	models.FieldDateOfBirth:  "a.date_of_birth",
	models.FieldMainCategory: "a.main_category",
}

// Filter narrows the author list. Empty fields do not filter.
type Filter struct {
	MainCategory string
	SearchQuery  string
}

type Store struct{ db *sql.DB }

func New(db *sql.DB) *Store { return &Store{db: db} }

func scanAuthor(s dbx.Scanner) (models.Author, error) {
	var a models.Author
	var dod sql.NullTime
	if err := s.Scan(&a.ID, &a.FirstName, &a.LastName, &a.DateOfBirth, &dod, &a.MainCategory); err != nil {
		return models.Author{}, err
	}
	if dod.Valid {
		t := dod.Time
		a.DateOfDeath = &t
	}
	return a, nil
}

func (s *Store) selectAuthors() *dbx.Select[models.Author] {
	return dbx.NewSelect(s.db, "authors a", selectList, Columns, scanAuthor).TieBreak("a.id")
}

// List builds the filtered author source. Nothing runs until it is paged.
// MainCategory matches exactly; SearchQuery matches a substring of the
// category or either name, ignoring case and accents.
func (s *Store) List(f Filter) query.Source[models.Author] {
	sel := s.selectAuthors()
	if mc := strings.TrimSpace(f.MainCategory); mc != "" {
		sel = sel.Where("a.main_category = ?", mc)
	}
	if q := strings.TrimSpace(f.SearchQuery); q != "" {
		p := shared.ContainsPattern(q)
		sel = sel.Where(`(public.immutable_unaccent(lower(a.main_category)) LIKE ?`+
			` OR public.immutable_unaccent(lower(a.first_name)) LIKE ?`+
			` OR public.immutable_unaccent(lower(a.last_name)) LIKE ?)`, p, p, p)
	}
	return sel
}

// Get returns sql.ErrNoRows when the author does not exist.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (models.Author, error) {
	return scanAuthor(dbx.Get(ctx, s.db, `SELECT `+selectList+` FROM authors a WHERE a.id = $1`, id))
}

func (s *Store) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var ok bool
	err := dbx.Get(ctx, s.db, `SELECT EXISTS (SELECT 1 FROM authors WHERE id = $1)`, id).Scan(&ok)
	return ok, err
}

// ListByIDs returns the authors found among ids, in no particular order.
// Missing ids are simply absent from the result.
func (s *Store) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Author, error) {
	if len(ids) == 0 {
		return []models.Author{}, nil
	}
	return s.selectAuthors().Where("a.id = ANY(?::uuid[])", shared.UUIDArray(ids)).All(ctx)
}

// Create inserts a and its courses in one transaction, assigning their ids.
func (s *Store) Create(ctx context.Context, a *models.Author) error {
	return dbx.WithinTx(ctx, s.db, func(tx *sql.Tx) error {
		return insertAuthor(ctx, tx, a)
	})
}

// CreateMany inserts every author (with courses) atomically.
func (s *Store) CreateMany(ctx context.Context, authors []models.Author) error {
	return dbx.WithinTx(ctx, s.db, func(tx *sql.Tx) error {
		for i := range authors {
			if err := insertAuthor(ctx, tx, &authors[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

func insertAuthor(ctx context.Context, tx *sql.Tx, a *models.Author) error {
	a.ID = uuid.New()
	if _, err := dbx.Exec(ctx, tx, `
INSERT INTO authors (id, first_name, last_name, date_of_birth, date_of_death, main_category)
VALUES ($1, $2, $3, $4, $5, $6)`,
		a.ID, a.FirstName, a.LastName, a.DateOfBirth, a.DateOfDeath, a.MainCategory,
	); err != nil {
		return err
	}
	for i := range a.Courses {
		c := &a.Courses[i]
		c.ID = uuid.New()
		c.AuthorID = a.ID
		if _, err := dbx.Exec(ctx, tx,
			`INSERT INTO courses (id, author_id, title, description) VALUES ($1, $2, $3, $4)`,
			c.ID, c.AuthorID, c.Title, c.Description,
		); err != nil {
			return err
		}
	}
	return nil
}
