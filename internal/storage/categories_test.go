package storage

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"cinetech/internal/domain"
)

func TestCategoryRepository_Add(t *testing.T) {
	repo := NewCategoryRepository(NewMemoryStore())
	ctx := context.Background()

	tests := []struct {
		name           string
		input          string
		wantErr        error
		wantValidation bool
	}{
		{name: "first add", input: "Drama"},
		{name: "exact duplicate", input: "Drama", wantErr: domain.ErrDuplicateCategory},
		{name: "case-insensitive duplicate", input: "drama", wantErr: domain.ErrDuplicateCategory},
		{name: "trimmed duplicate", input: "  Drama  ", wantErr: domain.ErrDuplicateCategory},
		{name: "empty name", input: "   ", wantValidation: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repo.Add(ctx, tt.input)
			if tt.wantValidation {
				var validationErr *domain.ValidationError
				if !errors.As(err, &validationErr) {
					t.Errorf("Add() error = %v, want ValidationError", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Add() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if got := len(repo.GetAll(ctx)); got != 1 {
		t.Errorf("GetAll() count = %d, want 1", got)
	}
}

func TestCategoryRepository_Delete(t *testing.T) {
	repo := NewCategoryRepository(NewMemoryStore())
	ctx := context.Background()

	category, err := repo.Add(ctx, "Horror")
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	if err := repo.Delete(ctx, category.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if got := len(repo.GetAll(ctx)); got != 0 {
		t.Errorf("GetAll() count = %d, want 0", got)
	}

	// Deleting an unknown id is a no-op.
	if err := repo.Delete(ctx, "cat_missing"); err != nil {
		t.Errorf("Delete() on missing id error = %v", err)
	}
}

func TestCategoryRepository_EnsureSeeded(t *testing.T) {
	repo := NewCategoryRepository(NewMemoryStore())
	ctx := context.Background()

	if err := repo.EnsureSeeded(ctx); err != nil {
		t.Fatalf("EnsureSeeded() error = %v", err)
	}

	first := repo.GetAll(ctx)
	if len(first) != len(seedCategoryNames) {
		t.Fatalf("GetAll() count = %d, want %d", len(first), len(seedCategoryNames))
	}

	comedies := 0
	for _, c := range first {
		if c.Name == "Comedy" {
			comedies++
		}
		if c.Name == "Comédie" {
			t.Error("seeded collection still contains the localized comedy entry")
		}
	}
	if comedies != 1 {
		t.Errorf("Comedy count = %d, want 1", comedies)
	}

	// Idempotence: a second run must not change the first run's outcome.
	if err := repo.EnsureSeeded(ctx); err != nil {
		t.Fatalf("EnsureSeeded() second run error = %v", err)
	}
	if second := repo.GetAll(ctx); !reflect.DeepEqual(first, second) {
		t.Errorf("EnsureSeeded() second run changed the collection:\nfirst  = %+v\nsecond = %+v", first, second)
	}
}

func TestCategoryRepository_ComedyReconciliation(t *testing.T) {
	tests := []struct {
		name      string
		existing  []string
		wantNames []string
	}{
		{
			name:      "both variants keeps english",
			existing:  []string{"Action", "Comédie", "Comedy"},
			wantNames: []string{"Action", "Comedy"},
		},
		{
			name:      "french only renamed",
			existing:  []string{"Action", "Comédie"},
			wantNames: []string{"Action", "Comedy"},
		},
		{
			name:      "neither appends english",
			existing:  []string{"Action"},
			wantNames: []string{"Action", "Comedy"},
		},
		{
			name:      "english only untouched",
			existing:  []string{"Action", "Comedy"},
			wantNames: []string{"Action", "Comedy"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewMemoryStore()
			var existing []domain.Category
			for i, name := range tt.existing {
				existing = append(existing, domain.Category{ID: string(rune('a' + i)), Name: name})
			}
			store.Set(categoriesKey, existing)

			repo := NewCategoryRepository(store)
			if err := repo.EnsureSeeded(context.Background()); err != nil {
				t.Fatalf("EnsureSeeded() error = %v", err)
			}

			got := repo.GetAll(context.Background())
			var gotNames []string
			for _, c := range got {
				gotNames = append(gotNames, c.Name)
			}
			if !reflect.DeepEqual(gotNames, tt.wantNames) {
				t.Errorf("names after reconciliation = %v, want %v", gotNames, tt.wantNames)
			}
		})
	}
}
