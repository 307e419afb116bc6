package models

import "github.com/5w1tchy/course-library-api/internal/shaping"

// Field sets clients may select with ?fields=. Output keys are camelCase.
var (
	AuthorShape = shaping.NewShape("AuthorDTO",
		shaping.Field[AuthorDTO]{Name: "id", Get: func(a AuthorDTO) any { return a.ID }},
		shaping.Field[AuthorDTO]{Name: "name", Get: func(a AuthorDTO) any { return a.Name }},
		shaping.Field[AuthorDTO]{Name: "age", Get: func(a AuthorDTO) any { return a.Age }},
		shaping.Field[AuthorDTO]{Name: "mainCategory", Get: func(a AuthorDTO) any { return a.MainCategory }},
	)

	AuthorFullShape = shaping.NewShape("AuthorFullDTO",
		shaping.Field[AuthorFullDTO]{Name: "id", Get: func(a AuthorFullDTO) any { return a.ID }},
		shaping.Field[AuthorFullDTO]{Name: "firstName", Get: func(a AuthorFullDTO) any { return a.FirstName }},
		shaping.Field[AuthorFullDTO]{Name: "lastName", Get: func(a AuthorFullDTO) any { return a.LastName }},
		shaping.Field[AuthorFullDTO]{Name: "dateOfBirth", Get: func(a AuthorFullDTO) any { return a.DateOfBirth }},
		shaping.Field[AuthorFullDTO]{Name: "mainCategory", Get: func(a AuthorFullDTO) any { return a.MainCategory }},
	)

	CourseShape = shaping.NewShape("CourseDTO",
		shaping.Field[CourseDTO]{Name: "id", Get: func(c CourseDTO) any { return c.ID }},
		shaping.Field[CourseDTO]{Name: "title", Get: func(c CourseDTO) any { return c.Title }},
		shaping.Field[CourseDTO]{Name: "description", Get: func(c CourseDTO) any { return c.Description }},
		shaping.Field[CourseDTO]{Name: "authorId", Get: func(c CourseDTO) any { return c.AuthorID }},
	)
)
