package domain

import "context"

// ShowRecord is one result from the external show search API, reduced
// to the fields the import path cares about. Runtime and Rating are
// pointers because the API reports null for shows it has no data for.
type ShowRecord struct {
	Name      string   `json:"name"`
	Genres    []string `json:"genres"`
	Premiered string   `json:"premiered"`
	Runtime   *int     `json:"runtime"`
	Rating    *float64 `json:"rating"`
	Poster    string   `json:"poster"`
}

type ShowSearcher interface {
	Search(ctx context.Context, query string) ([]ShowRecord, error)
}
