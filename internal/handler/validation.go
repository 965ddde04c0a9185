package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"cinetech/internal/domain"
)

// Movie form fields arrive as strings from both HTML forms and the
// JSON API; numeric coercion happens here so the repositories only
// ever see typed input.
type movieForm struct {
	Title      string `json:"title" form:"title"`
	CategoryID string `json:"categoryId" form:"categoryId"`
	Year       string `json:"year" form:"year"`
	Duration   string `json:"duration" form:"duration"`
	Rating     string `json:"rating" form:"rating"`
	Poster     string `json:"poster" form:"poster"`
}

func parseMovieForm(c *fiber.Ctx) (domain.MovieInput, error) {
	var form movieForm
	if err := c.BodyParser(&form); err != nil {
		return domain.MovieInput{}, &domain.ValidationError{Field: "body", Reason: "could not be parsed"}
	}

	year, err := strconv.Atoi(form.Year)
	if err != nil {
		return domain.MovieInput{}, &domain.ValidationError{Field: "year", Reason: "must be a number"}
	}

	rating, err := strconv.ParseFloat(form.Rating, 64)
	if err != nil {
		return domain.MovieInput{}, &domain.ValidationError{Field: "rating", Reason: "must be a number"}
	}

	// Duration is tolerated when missing or malformed.
	duration, err := strconv.Atoi(form.Duration)
	if err != nil {
		duration = 0
	}

	return domain.MovieInput{
		Title:      form.Title,
		CategoryID: form.CategoryID,
		Year:       year,
		Duration:   duration,
		Rating:     rating,
		Poster:     form.Poster,
	}, nil
}

type importForm struct {
	Name      string `json:"name" form:"name"`
	Genre     string `json:"genre" form:"genre"`
	Premiered string `json:"premiered" form:"premiered"`
	Runtime   string `json:"runtime" form:"runtime"`
	Rating    string `json:"rating" form:"rating"`
	Poster    string `json:"poster" form:"poster"`
}

func parseImportForm(c *fiber.Ctx) (domain.ShowRecord, error) {
	var form importForm
	if err := c.BodyParser(&form); err != nil {
		return domain.ShowRecord{}, &domain.ValidationError{Field: "body", Reason: "could not be parsed"}
	}
	if form.Name == "" {
		return domain.ShowRecord{}, &domain.ValidationError{Field: "name", Reason: "must not be empty"}
	}

	record := domain.ShowRecord{
		Name:      form.Name,
		Premiered: form.Premiered,
		Poster:    form.Poster,
	}
	if form.Genre != "" {
		record.Genres = []string{form.Genre}
	}
	if runtime, err := strconv.Atoi(form.Runtime); err == nil {
		record.Runtime = &runtime
	}
	if rating, err := strconv.ParseFloat(form.Rating, 64); err == nil {
		record.Rating = &rating
	}
	return record, nil
}

func parseCredentials(c *fiber.Ctx) (string, string, error) {
	var form struct {
		Username string `json:"username" form:"username"`
		Password string `json:"password" form:"password"`
	}
	if err := c.BodyParser(&form); err != nil {
		return "", "", &domain.ValidationError{Field: "body", Reason: "could not be parsed"}
	}
	return form.Username, form.Password, nil
}
