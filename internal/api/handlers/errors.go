package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/5w1tchy/course-library-api/internal/api/apperr"
	"github.com/5w1tchy/course-library-api/internal/mapping"
	"github.com/5w1tchy/course-library-api/internal/query"
	"github.com/5w1tchy/course-library-api/internal/shaping"
	"go.uber.org/zap"
)

// BadRequestError is a client error found before any query ran.
type BadRequestError struct {
	Detail string
}

func (e *BadRequestError) Error() string { return e.Detail }

func BadRequest(format string, args ...any) error {
	return &BadRequestError{Detail: fmt.Sprintf(format, args...)}
}

// WriteError turns a pipeline or store error into a problem response.
// Server-side defects are logged; client errors are not.
func WriteError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error, fallbackTitle string) {
	var (
		bad      *BadRequestError
		sortErr  *query.UnknownSortFieldError
		fieldErr *shaping.UnknownFieldError
		cfgErr   *mapping.ConfigurationError
	)
	switch {
	case errors.As(err, &bad):
		apperr.BadRequest(w, r, bad.Detail)
	case errors.As(err, &sortErr):
		apperr.BadRequest(w, r, sortErr.Error())
	case errors.As(err, &fieldErr), errors.As(err, &cfgErr):
		logger.Error("shaping pipeline defect", zap.String("path", r.URL.Path), zap.Error(err))
		apperr.Internal(w, r)
	default:
		if !isNotFound(err) {
			logger.Error(fallbackTitle, zap.String("path", r.URL.Path), zap.Error(err))
		}
		apperr.HandleDBError(w, r, err, fallbackTitle)
	}
}

// WriteDecodeError answers a body that could not be read as JSON.
func WriteDecodeError(w http.ResponseWriter, r *http.Request, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		apperr.WriteStatus(w, r, http.StatusRequestEntityTooLarge, "Request Entity Too Large",
			fmt.Sprintf("The request body exceeds %d bytes.", tooLarge.Limit))
		return
	}
	apperr.BadRequest(w, r, err.Error())
}
