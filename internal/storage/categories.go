package storage

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"cinetech/internal/domain"
)

const categoriesKey = "categories"

// Default set written the first time the collection is absent. The
// seed deliberately contains the localized "Comédie" so the rename
// reconciliation below is exercised on a fresh store too.
var seedCategoryNames = []string{"Action", "Drame", "Science-Fiction", "Comédie", "Romance"}

type categoryRepository struct {
	mu    sync.Mutex
	store Store
}

func NewCategoryRepository(store Store) domain.CategoryRepository {
	return &categoryRepository{store: store}
}

func (r *categoryRepository) load() []domain.Category {
	var categories []domain.Category
	if !r.store.Get(categoriesKey, &categories) {
		return nil
	}
	return categories
}

func (r *categoryRepository) save(categories []domain.Category) {
	r.store.Set(categoriesKey, categories)
}

func (r *categoryRepository) GetAll(ctx context.Context) []domain.Category {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

func (r *categoryRepository) Add(ctx context.Context, name string) (*domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &domain.ValidationError{Field: "name", Reason: "must not be empty"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	categories := r.load()
	for _, c := range categories {
		if strings.EqualFold(c.Name, name) {
			return nil, domain.ErrDuplicateCategory
		}
	}

	category := domain.Category{
		ID:   newCategoryID(),
		Name: name,
	}
	categories = append(categories, category)
	r.save(categories)

	return &category, nil
}

func (r *categoryRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	categories := r.load()
	kept := categories[:0]
	for _, c := range categories {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	if len(kept) != len(categories) {
		r.save(kept)
	}
	return nil
}

// EnsureSeeded writes the default set when the collection has never
// been stored, then reconciles the localized comedy duplicate. The
// reconciliation is idempotent: running it twice changes nothing after
// the first run.
func (r *categoryRepository) EnsureSeeded(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var categories []domain.Category
	if !r.store.Get(categoriesKey, &categories) {
		for _, name := range seedCategoryNames {
			categories = append(categories, domain.Category{ID: newCategoryID(), Name: name})
		}
		r.save(categories)
	}

	r.reconcileComedy(categories)
	return nil
}

// reconcileComedy collapses the French and English comedy entries into
// a single canonical "Comedy". Both present: the French one goes. Only
// French: renamed in place. Neither: appended.
func (r *categoryRepository) reconcileComedy(categories []domain.Category) {
	frenchIdx, englishIdx := -1, -1
	for i, c := range categories {
		switch strings.ToLower(c.Name) {
		case "comédie":
			frenchIdx = i
		case "comedy":
			englishIdx = i
		}
	}

	switch {
	case frenchIdx != -1 && englishIdx != -1:
		categories = append(categories[:frenchIdx], categories[frenchIdx+1:]...)
		r.save(categories)
	case frenchIdx != -1:
		categories[frenchIdx].Name = "Comedy"
		r.save(categories)
	case englishIdx == -1:
		categories = append(categories, domain.Category{ID: newCategoryID(), Name: "Comedy"})
		r.save(categories)
	}
}

func newCategoryID() string {
	return "cat_" + uuid.NewString()
}
