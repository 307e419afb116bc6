package coursestore

import (
	"context"
	"database/sql"

	"github.com/5w1tchy/course-library-api/internal/models"
	"github.com/5w1tchy/course-library-api/internal/query"
	"github.com/5w1tchy/course-library-api/internal/store/dbx"
	"github.com/google/uuid"
)

const selectList = "c.id, c.author_id, c.title, c.description"

var Columns = dbx.Columns{
	models.FieldID:          "c.id",
	models.FieldTitle:       "c.title",
	models.FieldDescription: "c.description",
}

type Store struct{ db *sql.DB }

func New(db *sql.DB) *Store { return &Store{db: db} }

func scanCourse(s dbx.Scanner) (models.Course, error) {
	var c models.Course
	err := s.Scan(&c.ID, &c.AuthorID, &c.Title, &c.Description)
	return c, err
}

// ForAuthor is the deferred list of one author's courses.
func (s *Store) ForAuthor(authorID uuid.UUID) query.Source[models.Course] {
	return dbx.NewSelect(s.db, "courses c", selectList, Columns, scanCourse).
		TieBreak("c.id").
		Where("c.author_id = ?", authorID)
}

// Get returns sql.ErrNoRows unless the course exists and belongs to authorID.
func (s *Store) Get(ctx context.Context, authorID, courseID uuid.UUID) (models.Course, error) {
	return scanCourse(dbx.Get(ctx, s.db,
		`SELECT `+selectList+` FROM courses c WHERE c.author_id = $1 AND c.id = $2`, authorID, courseID))
}

// Create inserts c. A zero ID is replaced by a new one.
func (s *Store) Create(ctx context.Context, c *models.Course) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	_, err := dbx.Exec(ctx, s.db,
		`INSERT INTO courses (id, author_id, title, description) VALUES ($1, $2, $3, $4)`,
		c.ID, c.AuthorID, c.Title, c.Description)
	return err
}

// Update replaces title and description; sql.ErrNoRows when nothing matched.
func (s *Store) Update(ctx context.Context, c models.Course) error {
	res, err := dbx.Exec(ctx, s.db,
		`UPDATE courses SET title = $1, description = $2 WHERE author_id = $3 AND id = $4`,
		c.Title, c.Description, c.AuthorID, c.ID)
	if err != nil {
		return err
	}
	return dbx.RowsAffected(res)
}

func (s *Store) Delete(ctx context.Context, authorID, courseID uuid.UUID) error {
	res, err := dbx.Exec(ctx, s.db, `DELETE FROM courses WHERE author_id = $1 AND id = $2`, authorID, courseID)
	if err != nil {
		return err
	}
	return dbx.RowsAffected(res)
}
