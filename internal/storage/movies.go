package storage

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"cinetech/internal/domain"
)

const moviesKey = "movies"

type movieRepository struct {
	mu         sync.Mutex
	store      Store
	categories domain.CategoryRepository
}

// NewMovieRepository builds the movie repository. The category
// repository is only consulted to resolve names during Query; movie
// writes never validate CategoryID against it.
func NewMovieRepository(store Store, categories domain.CategoryRepository) domain.MovieRepository {
	return &movieRepository{store: store, categories: categories}
}

func (r *movieRepository) load() []domain.Movie {
	var movies []domain.Movie
	if !r.store.Get(moviesKey, &movies) {
		return nil
	}
	return movies
}

func (r *movieRepository) save(movies []domain.Movie) {
	r.store.Set(moviesKey, movies)
}

func (r *movieRepository) GetAll(ctx context.Context) []domain.Movie {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

// Query filters by case-insensitive substring match against the title
// or the resolved category name, then sorts a local copy. The stored
// collection is never reordered.
func (r *movieRepository) Query(ctx context.Context, search, sortMode string) []domain.Movie {
	movies := r.GetAll(ctx)
	categories := r.categories.GetAll(ctx)

	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	resolve := func(categoryID string) string {
		if name, ok := names[categoryID]; ok {
			return name
		}
		return domain.UnknownCategoryName
	}

	term := strings.ToLower(strings.TrimSpace(search))
	if term != "" {
		filtered := make([]domain.Movie, 0, len(movies))
		for _, m := range movies {
			if strings.Contains(strings.ToLower(m.Title), term) ||
				strings.Contains(strings.ToLower(resolve(m.CategoryID)), term) {
				filtered = append(filtered, m)
			}
		}
		movies = filtered
	}

	switch sortMode {
	case domain.SortByTitle:
		sort.SliceStable(movies, func(i, j int) bool {
			return strings.ToLower(movies[i].Title) < strings.ToLower(movies[j].Title)
		})
	case domain.SortByRating:
		sort.SliceStable(movies, func(i, j int) bool {
			return movies[i].Rating > movies[j].Rating
		})
	case domain.SortByYear:
		sort.SliceStable(movies, func(i, j int) bool {
			return movies[i].Year > movies[j].Year
		})
	}

	return movies
}

func (r *movieRepository) Create(ctx context.Context, input domain.MovieInput) (*domain.Movie, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validateInput(&input); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	movie := domain.Movie{
		ID:         newMovieID(),
		Title:      input.Title,
		CategoryID: input.CategoryID,
		Year:       input.Year,
		Duration:   input.Duration,
		Rating:     input.Rating,
		Poster:     input.Poster,
		AddedAt:    time.Now().UTC(),
	}

	movies := append(r.load(), movie)
	r.save(movies)

	return &movie, nil
}

// Update overwrites the mutable fields of an existing movie. The
// poster is only replaced when a new one is supplied; ID and AddedAt
// are never touched.
func (r *movieRepository) Update(ctx context.Context, id string, input domain.MovieInput) (*domain.Movie, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validateInput(&input); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	movies := r.load()
	for i := range movies {
		if movies[i].ID != id {
			continue
		}
		movies[i].Title = input.Title
		movies[i].CategoryID = input.CategoryID
		movies[i].Year = input.Year
		movies[i].Duration = input.Duration
		movies[i].Rating = input.Rating
		if input.Poster != "" {
			movies[i].Poster = input.Poster
		}
		r.save(movies)
		updated := movies[i]
		return &updated, nil
	}

	return nil, domain.ErrMovieNotFound
}

func (r *movieRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	movies := r.load()
	kept := movies[:0]
	for _, m := range movies {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	if len(kept) != len(movies) {
		r.save(kept)
	}
	return nil
}

// AddFromImport appends a movie fetched from the external API,
// rejecting case-insensitive title duplicates against the live
// collection.
func (r *movieRepository) AddFromImport(ctx context.Context, input domain.MovieInput) (*domain.Movie, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, &domain.ValidationError{Field: "title", Reason: "must not be empty"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	movies := r.load()
	for _, m := range movies {
		if strings.EqualFold(m.Title, title) {
			return nil, domain.ErrDuplicateTitle
		}
	}

	movie := domain.Movie{
		ID:         newMovieID(),
		Title:      title,
		CategoryID: input.CategoryID,
		Year:       input.Year,
		Duration:   input.Duration,
		Rating:     input.Rating,
		Poster:     input.Poster,
		AddedAt:    time.Now().UTC(),
	}
	r.save(append(movies, movie))

	return &movie, nil
}

// AddBulk imports each entry in sequence against the already-updated
// collection, so duplicates within the batch are rejected like
// pre-existing ones. Returns the number accepted.
func (r *movieRepository) AddBulk(ctx context.Context, inputs []domain.MovieInput) int {
	count := 0
	for _, input := range inputs {
		if _, err := r.AddFromImport(ctx, input); err != nil {
			continue
		}
		count++
	}
	if count > 0 {
		log.WithField("count", count).Info("movies imported in bulk")
	}
	return count
}

func validateInput(input *domain.MovieInput) error {
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return &domain.ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if input.CategoryID == "" {
		return &domain.ValidationError{Field: "category", Reason: "must be selected"}
	}
	return nil
}

func newMovieID() string {
	return "mov_" + uuid.NewString()
}
