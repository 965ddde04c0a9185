package domain

import (
	"context"
	"time"
)

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Movie struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	CategoryID string    `json:"categoryId"`
	Year       int       `json:"year"`
	Duration   int       `json:"duration"`
	Rating     float64   `json:"rating"`
	Poster     string    `json:"poster,omitempty"`
	AddedAt    time.Time `json:"addedAt"`
}

// MovieInput carries the mutable fields of a movie. ID and AddedAt are
// always generated by the repository, never supplied by callers.
type MovieInput struct {
	Title      string
	CategoryID string
	Year       int
	Duration   int
	Rating     float64
	Poster     string
}

// Sort modes accepted by MovieRepository.Query. Anything else leaves
// the stored order untouched.
const (
	SortByTitle  = "title"
	SortByRating = "rating"
	SortByYear   = "year"
)

// UnknownCategoryName is how an orphaned category reference resolves
// when a movie points at a category that no longer exists.
const UnknownCategoryName = "Unknown"

type MovieRepository interface {
	GetAll(ctx context.Context) []Movie
	Query(ctx context.Context, search, sortMode string) []Movie
	Create(ctx context.Context, input MovieInput) (*Movie, error)
	Update(ctx context.Context, id string, input MovieInput) (*Movie, error)
	Delete(ctx context.Context, id string) error
	AddFromImport(ctx context.Context, input MovieInput) (*Movie, error)
	AddBulk(ctx context.Context, inputs []MovieInput) int
}

type CategoryRepository interface {
	GetAll(ctx context.Context) []Category
	Add(ctx context.Context, name string) (*Category, error)
	Delete(ctx context.Context, id string) error
	EnsureSeeded(ctx context.Context) error
}
