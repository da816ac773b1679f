package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/shelfmark/catalog-service/internal/domain"
	"github.com/shelfmark/catalog-service/internal/pagination"
)

// CabinetRepository handles cabinet persistence.
type CabinetRepository interface {
	// Add inserts a new cabinet with a generated ID and returns it.
	Add(ctx context.Context, create domain.CabinetCreate) (*domain.Cabinet, error)

	// GetByID retrieves a cabinet by its UUID.
	// Returns domain.ErrNotFound if no matching cabinet exists.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Cabinet, error)

	// List retrieves a page of cabinets ordered by name, optionally filtered
	// by a case-insensitive name prefix search.
	List(ctx context.Context, req pagination.Request, query string) ([]*domain.Cabinet, pagination.Pagination, error)

	// ListAll retrieves every cabinet ordered by name.
	ListAll(ctx context.Context) ([]*domain.Cabinet, error)

	// Update applies the present fields of upd and returns the updated cabinet.
	// Returns domain.ErrNotFound if no matching cabinet exists.
	Update(ctx context.Context, id uuid.UUID, upd domain.CabinetUpdate) (*domain.Cabinet, error)

	// Delete removes a cabinet, nulling out the cabinet reference of its
	// shelves first. Returns false (with nil error) when the cabinet is absent.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}
