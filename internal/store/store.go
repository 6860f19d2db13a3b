// Package store provides the persistence layer for catalog records.
package store

import (
	"context"
)

// Record is a value that can be stored by id and copied without aliasing.
type Record[T any] interface {
	GetID() string
	Clone() T
}

// Repository is a storage abstraction for one record domain.
// It abstracts the underlying data store, allowing for different implementations (e.g., in-memory, database).
type Repository[T Record[T]] interface {
	// List returns a consistent snapshot of all records in insertion order.
	// The returned records are copies; callers may not mutate the store through them.
	List(ctx context.Context) ([]T, error)

	// FindByID retrieves a single record by its identifier.
	// Returns the repository's not-found error if no record exists with the given ID.
	FindByID(ctx context.Context, id string) (T, error)

	// Create adds a new record.
	// Returns ErrDuplicateID if the ID is already taken.
	Create(ctx context.Context, rec T) (T, error)

	// Mutate applies fn to a copy of the record and stores the result atomically.
	// If fn returns an error nothing is written and the error is returned unchanged.
	Mutate(ctx context.Context, id string, fn func(*T) error) (T, error)

	// Delete removes a record by its ID.
	// Returns the repository's not-found error if no record exists with the given ID.
	Delete(ctx context.Context, id string) error
}

// SeedIfEmpty fills an empty repository with the given records.
// It returns the number of records inserted.
func SeedIfEmpty[T Record[T]](ctx context.Context, repo Repository[T], records []T) (int, error) {
	existing, err := repo.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}
	for _, rec := range records {
		if _, err := repo.Create(ctx, rec); err != nil {
			return 0, err
		}
	}
	return len(records), nil
}
