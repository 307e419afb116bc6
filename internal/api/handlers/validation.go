package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/5w1tchy/course-library-api/internal/api/apperr"
	"github.com/5w1tchy/course-library-api/internal/models"
	"github.com/5w1tchy/course-library-api/internal/validate"
)

const (
	MaxTitleLength       = 50
	MaxDescriptionLength = 1200
	MaxNameLength        = 50
)

// CheckCourse applies the course rules. prefix qualifies field names for
// nested courses ("courses[0].").
func CheckCourse(v *validate.Violations, prefix string, c models.CourseForCreation) {
	v.Required(prefix+"title", c.Title, "You should fill out a title.")
	v.MaxLength(prefix+"title", c.Title, MaxTitleLength, "The title shouldn't have more than 50 characters.")
	v.MaxLength(prefix+"description", c.Description, MaxDescriptionLength, "The description shouldn't have more than 1200 characters.")
	if c.Title == c.Description {
		v.Add(prefix+"course", "different", "The provided description should be different from the title.")
	}
}

// CheckAuthor applies the author rules, nested courses included. prefix
// qualifies field names when the author is one of a batch ("[2].").
func CheckAuthor(v *validate.Violations, prefix string, a models.AuthorForCreation, dateOfDeath *time.Time) {
	v.Required(prefix+"firstName", a.FirstName, "You should fill out a first name.")
	v.MaxLength(prefix+"firstName", a.FirstName, MaxNameLength, "The first name shouldn't have more than 50 characters.")
	v.Required(prefix+"lastName", a.LastName, "You should fill out a last name.")
	v.MaxLength(prefix+"lastName", a.LastName, MaxNameLength, "The last name shouldn't have more than 50 characters.")
	v.Required(prefix+"mainCategory", a.MainCategory, "You should fill out a main category.")
	v.MaxLength(prefix+"mainCategory", a.MainCategory, MaxNameLength, "The main category shouldn't have more than 50 characters.")
	if a.DateOfBirth.IsZero() {
		v.Add(prefix+"dateOfBirth", "required", "You should fill out a date of birth.")
	}
	if dateOfDeath != nil && dateOfDeath.Before(a.DateOfBirth) {
		v.Add(prefix+"dateOfDeath", "range", "The date of death can't be before the date of birth.")
	}
	for i, c := range a.Courses {
		CheckCourse(v, prefix+"courses["+strconv.Itoa(i)+"].", c)
	}
}

// WriteViolations writes the 422 validation problem.
func WriteViolations(w http.ResponseWriter, r *http.Request, v validate.Violations) {
	fields := make([]apperr.FieldError, len(v))
	for i, x := range v {
		fields[i] = apperr.FieldError{Field: x.Field, Code: x.Code, Message: x.Message}
	}
	apperr.Validation(w, r, fields)
}
