package models

import (
	"time"

	"github.com/google/uuid"
)

// Author is the stored author row.
type Author struct {
	ID           uuid.UUID
	FirstName    string
	LastName     string
	DateOfBirth  time.Time
	DateOfDeath  *time.Time
	MainCategory string
	Courses      []Course
}

// Course belongs to exactly one author.
type Course struct {
	ID          uuid.UUID
	AuthorID    uuid.UUID
	Title       string
	Description string
}

// Age is the number of full years between dob and the date of death, or now
// when the author is alive.
func Age(dob time.Time, dod *time.Time, now time.Time) int {
	end := now
	if dod != nil {
		end = *dod
	}
	end = end.In(dob.Location())
	age := end.Year() - dob.Year()
	if end.Month() < dob.Month() || (end.Month() == dob.Month() && end.Day() < dob.Day()) {
		age--
	}
	return age
}
