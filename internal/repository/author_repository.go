package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/shelfmark/catalog-service/internal/domain"
	"github.com/shelfmark/catalog-service/internal/pagination"
)

// AuthorRepository handles author persistence.
type AuthorRepository interface {
	// Add inserts a new author with a generated ID and returns it.
	Add(ctx context.Context, create domain.AuthorCreate) (*domain.Author, error)

	// GetByID retrieves an author by its UUID.
	// Returns domain.ErrNotFound if no matching author exists.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Author, error)

	// List retrieves a page of authors ordered by name, optionally filtered
	// by a case-insensitive name prefix search. The count and page queries
	// share the same filter; the returned pagination reflects the clamped
	// page actually served.
	List(ctx context.Context, req pagination.Request, query string) ([]*domain.Author, pagination.Pagination, error)

	// Update applies the present fields of upd and returns the updated author.
	// Returns domain.ErrNotFound if no matching author exists.
	Update(ctx context.Context, id uuid.UUID, upd domain.AuthorUpdate) (*domain.Author, error)

	// Delete removes an author, nulling out the author reference of its
	// books first. Returns false (with nil error) when the author is absent.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}
