package service

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"cinetech/internal/config"
	"cinetech/internal/domain"
)

const (
	interactiveLimit  = 10
	autoPopulateLimit = 20

	fallbackYear        = 2020
	defaultAutoDuration = 60
)

// ImportService reconciles external show records into the local
// catalog without duplicating entries.
type ImportService struct {
	cfg        *config.Config
	movies     domain.MovieRepository
	categories domain.CategoryRepository
	searcher   domain.ShowSearcher
}

func NewImportService(cfg *config.Config, movies domain.MovieRepository, categories domain.CategoryRepository, searcher domain.ShowSearcher) *ImportService {
	return &ImportService{
		cfg:        cfg,
		movies:     movies,
		categories: categories,
		searcher:   searcher,
	}
}

// Search runs one external query and returns at most interactiveLimit
// records for display.
func (s *ImportService) Search(ctx context.Context, query string) ([]domain.ShowRecord, error) {
	records, err := s.searcher.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("searching shows: %w", err)
	}
	if len(records) > interactiveLimit {
		records = records[:interactiveLimit]
	}
	return records, nil
}

// AddCandidate maps one accepted record with manual-add defaults and
// inserts it through the dedup-aware import path.
func (s *ImportService) AddCandidate(ctx context.Context, record domain.ShowRecord) (*domain.Movie, error) {
	input := s.mapRecord(ctx, record, false)
	return s.movies.AddFromImport(ctx, input)
}

// AutoPopulate fills an empty library with one fixed-query search,
// capped at autoPopulateLimit records. It runs once at startup, is
// never retried, and a failure leaves the library empty.
func (s *ImportService) AutoPopulate(ctx context.Context) int {
	if len(s.movies.GetAll(ctx)) > 0 {
		return 0
	}

	log.WithField("query", s.cfg.AutoPopulateQuery).Info("library empty, auto-populating")

	records, err := s.searcher.Search(ctx, s.cfg.AutoPopulateQuery)
	if err != nil {
		log.WithFields(log.Fields{
			"operation": "auto_populate",
			"error":     err,
		}).Error("auto-populate failed, library stays empty")
		return 0
	}

	if len(records) > autoPopulateLimit {
		records = records[:autoPopulateLimit]
	}

	inputs := make([]domain.MovieInput, 0, len(records))
	for _, record := range records {
		inputs = append(inputs, s.mapRecord(ctx, record, true))
	}

	return s.movies.AddBulk(ctx, inputs)
}

// mapRecord derives a movie from an external record. Auto-population
// fills gaps more generously than a manual add so the seeded library
// does not look empty.
func (s *ImportService) mapRecord(ctx context.Context, record domain.ShowRecord, auto bool) domain.MovieInput {
	return domain.MovieInput{
		Title:      record.Name,
		CategoryID: matchCategory(record.Genres, s.categories.GetAll(ctx)),
		Year:       yearFrom(record.Premiered),
		Duration:   durationFrom(record.Runtime, auto),
		Rating:     ratingFrom(record.Rating, auto),
		Poster:     record.Poster,
	}
}

// yearFrom takes the leading segment of a date like "2019-04-22".
// An absent date falls back to a fixed year, an unparseable one to the
// current year.
func yearFrom(premiered string) int {
	if premiered == "" {
		return fallbackYear
	}
	year, err := strconv.Atoi(strings.SplitN(premiered, "-", 2)[0])
	if err != nil {
		return time.Now().Year()
	}
	return year
}

func durationFrom(runtime *int, auto bool) int {
	if runtime != nil {
		return *runtime
	}
	if auto {
		return defaultAutoDuration
	}
	return 0
}

func ratingFrom(average *float64, auto bool) float64 {
	if average != nil {
		return *average
	}
	if auto {
		return float64(5 + rand.Intn(5))
	}
	return 0
}

// matchCategory resolves the record's primary genre against existing
// categories: exact case-insensitive name match wins, otherwise the
// first category, otherwise an empty reference.
func matchCategory(genres []string, categories []domain.Category) string {
	if len(categories) == 0 {
		return ""
	}
	if len(genres) > 0 {
		for _, c := range categories {
			if strings.EqualFold(c.Name, genres[0]) {
				return c.ID
			}
		}
	}
	return categories[0].ID
}
