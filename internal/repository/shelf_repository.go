package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/shelfmark/catalog-service/internal/domain"
	"github.com/shelfmark/catalog-service/internal/pagination"
)

// ShelfRepository handles shelf persistence.
type ShelfRepository interface {
	// Add inserts a new shelf with a generated ID and returns it.
	// Returns domain.ErrForeignKey if the referenced cabinet does not exist.
	Add(ctx context.Context, create domain.ShelfCreate) (*domain.Shelf, error)

	// GetByID retrieves a shelf by its UUID.
	// Returns domain.ErrNotFound if no matching shelf exists.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Shelf, error)

	// List retrieves a page of shelves joined with their cabinet names,
	// ordered by (cabinet_id, name) so shelves group by cabinet, with the
	// no-cabinet group last. Optionally filtered by a case-insensitive name
	// prefix search.
	List(ctx context.Context, req pagination.Request, query string) ([]*domain.ShelfWithCabinet, pagination.Pagination, error)

	// ListAll retrieves every shelf joined with its cabinet name, in the
	// same (cabinet_id, name) order as List.
	ListAll(ctx context.Context) ([]*domain.ShelfWithCabinet, error)

	// Update applies the present fields of upd and returns the updated shelf.
	// An explicitly null CabinetID detaches the shelf from its cabinet.
	// Returns domain.ErrNotFound if no matching shelf exists and
	// domain.ErrForeignKey if a newly referenced cabinet does not exist.
	Update(ctx context.Context, id uuid.UUID, upd domain.ShelfUpdate) (*domain.Shelf, error)

	// Delete removes a shelf, nulling out the shelf reference of its books
	// first. Returns false (with nil error) when the shelf is absent.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}
