package service

import (
	"context"

	"cinetech/internal/domain"
)

// Stats holds the read-only aggregates the dashboard consumes.
type Stats struct {
	TotalMovies     int            `json:"totalMovies"`
	TotalCategories int            `json:"totalCategories"`
	AverageRating   float64        `json:"averageRating"`
	ByCategory      map[string]int `json:"byCategory"`
}

type StatsService struct {
	movies     domain.MovieRepository
	categories domain.CategoryRepository
}

func NewStatsService(movies domain.MovieRepository, categories domain.CategoryRepository) *StatsService {
	return &StatsService{movies: movies, categories: categories}
}

// Snapshot recomputes the aggregates from the store on every call.
// Orphaned category references land in an "Unknown" bucket.
func (s *StatsService) Snapshot(ctx context.Context) Stats {
	movies := s.movies.GetAll(ctx)
	categories := s.categories.GetAll(ctx)

	stats := Stats{
		TotalMovies:     len(movies),
		TotalCategories: len(categories),
		ByCategory:      make(map[string]int, len(categories)),
	}

	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
		stats.ByCategory[c.Name] = 0
	}

	var ratingSum float64
	for _, m := range movies {
		ratingSum += m.Rating
		if name, ok := names[m.CategoryID]; ok {
			stats.ByCategory[name]++
		} else {
			stats.ByCategory[domain.UnknownCategoryName]++
		}
	}

	if len(movies) > 0 {
		stats.AverageRating = ratingSum / float64(len(movies))
	}

	return stats
}
