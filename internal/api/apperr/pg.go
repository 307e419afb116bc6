package apperr

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Map well-known constraint names to fields (extend as you add constraints)
var constraintField = map[string]string{
	"authors_pkey":           "id",
	"courses_pkey":           "id",
	"courses_author_id_fkey": "authorId",
}

// Guess a field from a column name present in PG error detail
func fieldFromDetail(detail string) string {
	for _, k := range []struct{ col, field string }{
		{"author_id", "authorId"},
		{"first_name", "firstName"},
		{"last_name", "lastName"},
		{"main_category", "mainCategory"},
		{"date_of_birth", "dateOfBirth"},
		{"title", "title"},
		{"description", "description"},
		{"(id)", "id"},
	} {
		if strings.Contains(detail, k.col) {
			return k.field
		}
	}
	return ""
}

func fieldFromConstraint(c string) string {
	if f, ok := constraintField[c]; ok {
		return f
	}
	return ""
}

// FromPG maps a pgconn.PgError to a Problem. Returns (Problem, true) if mapped.
func FromPG(err error) (Problem, bool) {
	var pg *pgconn.PgError
	if !errors.As(err, &pg) {
		return Problem{}, false
	}

	p := Problem{
		Title:  "Database error",
		Status: http.StatusInternalServerError,
	}

	field := fieldFromConstraint(pg.ConstraintName)
	if field == "" && pg.Detail != "" {
		field = fieldFromDetail(pg.Detail)
	}
	one := func(status int, title, fallback, code, msg string) {
		p.Status, p.Title = status, title
		if field == "" {
			field = fallback
		}
		p.FieldErrors = []FieldError{{Field: field, Code: code, Message: msg}}
	}

	switch pg.Code {
	case "23505": // unique_violation
		one(http.StatusConflict, "Conflict", "resource", "unique", "value already exists")
	case "23503": // foreign_key_violation
		one(http.StatusConflict, "Conflict", "resource", "fk", "referenced author does not exist")
	case "23502": // not_null_violation
		if field == "" {
			field = pg.ColumnName
		}
		one(http.StatusBadRequest, "Bad Request", "field", "not_null", "required field is missing")
	case "23514": // check_violation
		one(http.StatusUnprocessableEntity, "Unprocessable Entity", "field", "check", "constraint failed")
	case "22P02": // invalid_text_representation (bad uuid)
		one(http.StatusBadRequest, "Bad Request", "id", "invalid", "invalid format")
	case "22001": // string_data_right_truncation
		one(http.StatusBadRequest, "Bad Request", "field", "too_long", "value is too long")
	case "40001": // serialization_failure
		p.Status, p.Title = http.StatusConflict, "Conflict"
		p.Detail = "transaction conflict, please retry"
		p.Retryable = true
	case "40P01": // deadlock_detected
		p.Status, p.Title = http.StatusConflict, "Conflict"
		p.Detail = "deadlock detected, please retry"
		p.Retryable = true
	}

	return p, true
}

// HandleDBError maps err to a Problem and writes it. Returns true if handled.
// sql.ErrNoRows becomes a 404.
func HandleDBError(w http.ResponseWriter, r *http.Request, err error, fallbackTitle string) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, sql.ErrNoRows) {
		NotFound(w, r)
		return true
	}
	if p, ok := FromPG(err); ok {
		Write(w, r, p)
		return true
	}
	Write(w, r, Problem{Status: http.StatusInternalServerError, Title: fallbackTitle})
	return true
}
