package models

import (
	"time"

	"github.com/google/uuid"
)

// AuthorDTO is the friendly author representation.
type AuthorDTO struct {
	ID           uuid.UUID
	Name         string
	Age          int
	MainCategory string
}

// AuthorFullDTO exposes the stored author fields as they are.
type AuthorFullDTO struct {
	ID           uuid.UUID
	FirstName    string
	LastName     string
	DateOfBirth  time.Time
	MainCategory string
}

type CourseDTO struct {
	ID          uuid.UUID
	Title       string
	Description string
	AuthorID    uuid.UUID
}

// CourseForCreation is also the PUT body: a full replacement of a course.
type CourseForCreation struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type AuthorForCreation struct {
	FirstName    string              `json:"firstName"`
	LastName     string              `json:"lastName"`
	DateOfBirth  time.Time           `json:"dateOfBirth"`
	MainCategory string              `json:"mainCategory"`
	Courses      []CourseForCreation `json:"courses"`
}

type AuthorForCreationWithDateOfDeath struct {
	AuthorForCreation
	DateOfDeath *time.Time `json:"dateOfDeath"`
}

func NewAuthorDTO(a Author, now time.Time) AuthorDTO {
	return AuthorDTO{
		ID:           a.ID,
		Name:         a.FirstName + " " + a.LastName,
		Age:          Age(a.DateOfBirth, a.DateOfDeath, now),
		MainCategory: a.MainCategory,
	}
}

func NewAuthorFullDTO(a Author) AuthorFullDTO {
	return AuthorFullDTO{
		ID:           a.ID,
		FirstName:    a.FirstName,
		LastName:     a.LastName,
		DateOfBirth:  a.DateOfBirth,
		MainCategory: a.MainCategory,
	}
}

func NewCourseDTO(c Course) CourseDTO {
	return CourseDTO{ID: c.ID, Title: c.Title, Description: c.Description, AuthorID: c.AuthorID}
}

// Author builds the entity to store. Ids are assigned by the store.
func (in AuthorForCreation) Author() Author {
	a := Author{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		DateOfBirth:  in.DateOfBirth,
		MainCategory: in.MainCategory,
	}
	for _, c := range in.Courses {
		a.Courses = append(a.Courses, Course{Title: c.Title, Description: c.Description})
	}
	return a
}

func (in AuthorForCreationWithDateOfDeath) Author() Author {
	a := in.AuthorForCreation.Author()
	a.DateOfDeath = in.DateOfDeath
	return a
}
