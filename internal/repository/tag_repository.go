package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/shelfmark/catalog-service/internal/domain"
	"github.com/shelfmark/catalog-service/internal/pagination"
)

// TagRepository handles tag persistence. Tag names are unique across the
// catalog and the uniqueness is enforced by the store, not pre-checked.
type TagRepository interface {
	// Add inserts a new tag with a generated ID and returns it.
	// Returns domain.ErrAlreadyExists if a tag with the same name exists.
	Add(ctx context.Context, create domain.TagCreate) (*domain.Tag, error)

	// GetByID retrieves a tag by its UUID.
	// Returns domain.ErrNotFound if no matching tag exists.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Tag, error)

	// GetByIDs retrieves multiple tags by their UUIDs, ordered by name.
	// Missing IDs are silently skipped. Returns an empty slice for empty input.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Tag, error)

	// List retrieves a page of tags ordered by name, optionally filtered by
	// a case-insensitive name prefix search.
	List(ctx context.Context, req pagination.Request, query string) ([]*domain.Tag, pagination.Pagination, error)

	// Update applies the present fields of upd and returns the updated tag.
	// Returns domain.ErrNotFound if no matching tag exists and
	// domain.ErrAlreadyExists if the new name collides.
	Update(ctx context.Context, id uuid.UUID, upd domain.TagUpdate) (*domain.Tag, error)

	// Delete removes a tag; its book associations cascade away with it.
	// Returns false (with nil error) when the tag is absent.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}
