package models

import "github.com/5w1tchy/course-library-api/internal/mapping"

// Storage field names used by the mappings. Stores translate them to columns.
const (
	FieldID           = "id"
	FieldFirstName    = "firstName"
	FieldLastName     = "lastName"
	FieldDateOfBirth  = "dateOfBirth"
	FieldMainCategory = "mainCategory"
	FieldTitle        = "title"
	FieldDescription  = "description"
)

// NewMappings registers the sort mappings of every resource. An error here is
// a startup failure.
func NewMappings() (*mapping.Registry, error) {
	author, err := mapping.New(map[string]mapping.Value{
		"id":           mapping.Fields(FieldID),
		"mainCategory": mapping.Fields(FieldMainCategory),
		"age":          mapping.Reverted(FieldDateOfBirth),
		"name":         mapping.Fields(FieldFirstName, FieldLastName),
	})
	if err != nil {
		return nil, err
	}
	authorFull, err := mapping.New(map[string]mapping.Value{
		"id":           mapping.Fields(FieldID),
		"firstName":    mapping.Fields(FieldFirstName),
		"lastName":     mapping.Fields(FieldLastName),
		"dateOfBirth":  mapping.Fields(FieldDateOfBirth),
		"mainCategory": mapping.Fields(FieldMainCategory),
	})
	if err != nil {
		return nil, err
	}
	course, err := mapping.New(map[string]mapping.Value{
		"id":          mapping.Fields(FieldID),
		"title":       mapping.Fields(FieldTitle),
		"description": mapping.Fields(FieldDescription),
	})
	if err != nil {
		return nil, err
	}
	return mapping.NewRegistry(
		mapping.Register[AuthorDTO, Author](author),
		mapping.Register[AuthorFullDTO, Author](authorFull),
		mapping.Register[CourseDTO, Course](course),
	)
}
