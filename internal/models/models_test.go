package models_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/5w1tchy/course-library-api/internal/mapping"
	"github.com/5w1tchy/course-library-api/internal/models"
	"github.com/5w1tchy/course-library-api/internal/query"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func TestAge(t *testing.T) {
	now := date(2024, time.June, 15)
	assert.Equal(t, 44, models.Age(date(1980, time.June, 15), nil, now))
	assert.Equal(t, 43, models.Age(date(1980, time.June, 16), nil, now))
	assert.Equal(t, 44, models.Age(date(1980, time.January, 1), nil, now))

	dod := date(1700, time.March, 1)
	assert.Equal(t, 49, models.Age(date(1650, time.March, 2), &dod, now), "age is frozen at death")
}

func TestNewAuthorDTO(t *testing.T) {
	id := uuid.New()
	dto := models.NewAuthorDTO(models.Author{
		ID: id, FirstName: "Berry", LastName: "Griffin Beak Eldritch",
		DateOfBirth: date(1650, time.July, 23), MainCategory: "Ships",
	}, date(2024, time.January, 1))

	assert.Equal(t, id, dto.ID)
	assert.Equal(t, "Berry Griffin Beak Eldritch", dto.Name)
	assert.Equal(t, 373, dto.Age)
	assert.Equal(t, "Ships", dto.MainCategory)
}

func TestAuthorForCreation_Author(t *testing.T) {
	dod := date(1720, time.May, 1)
	in := models.AuthorForCreationWithDateOfDeath{
		AuthorForCreation: models.AuthorForCreation{
			FirstName: "Anne", LastName: "Bonny", MainCategory: "Rum",
			Courses: []models.CourseForCreation{{Title: "Sailing", Description: "Basics"}},
		},
		DateOfDeath: &dod,
	}
	a := in.Author()
	assert.Equal(t, "Anne", a.FirstName)
	require.Len(t, a.Courses, 1)
	assert.Equal(t, "Sailing", a.Courses[0].Title)
	require.NotNil(t, a.DateOfDeath)
	assert.Equal(t, dod, *a.DateOfDeath)
}

func TestAuthorForCreationWithDateOfDeath_DecodesFlat(t *testing.T) {
	var in models.AuthorForCreationWithDateOfDeath
	require.NoError(t, json.Unmarshal([]byte(`{
		"firstName":"Anne","lastName":"Bonny","dateOfBirth":"1700-03-08T00:00:00Z",
		"mainCategory":"Rum","dateOfDeath":"1782-04-22T00:00:00Z"}`), &in))
	assert.Equal(t, "Anne", in.FirstName)
	require.NotNil(t, in.DateOfDeath)
	assert.Equal(t, 1782, in.DateOfDeath.Year())
}

func TestShapes_DeclaredFields(t *testing.T) {
	assert.Equal(t, []string{"id", "name", "age", "mainCategory"}, models.AuthorShape.Names())
	assert.Equal(t, []string{"id", "firstName", "lastName", "dateOfBirth", "mainCategory"}, models.AuthorFullShape.Names())
	assert.True(t, models.CourseShape.HasFields("title, authorId"))
	assert.False(t, models.AuthorShape.HasFields("firstName"), "friendly shape has no firstName")
	assert.True(t, models.AuthorFullShape.HasFields("firstName"))
}

func TestNewMappings(t *testing.T) {
	reg, err := models.NewMappings()
	require.NoError(t, err)

	m, err := mapping.Get[models.AuthorDTO, models.Author](reg)
	require.NoError(t, err)

	orders, err := query.Resolve(query.ParseSort("age desc, name"), m)
	require.NoError(t, err)
	assert.Equal(t, []query.Order{
		{Field: models.FieldDateOfBirth, Desc: false},
		{Field: models.FieldFirstName},
		{Field: models.FieldLastName},
	}, orders)

	ok, err := mapping.IsValid[models.CourseDTO, models.Course](reg, "title desc")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = mapping.IsValid[models.AuthorDTO, models.Author](reg, "firstName")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = mapping.Get[models.CourseDTO, models.Author](reg)
	var cfg *mapping.ConfigurationError
	assert.ErrorAs(t, err, &cfg)
}
