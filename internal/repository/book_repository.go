package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/shelfmark/catalog-service/internal/domain"
	"github.com/shelfmark/catalog-service/internal/pagination"
)

// BookRepository handles book persistence, including the tag association
// table and the joined listing rows.
type BookRepository interface {
	// Add inserts a new book with a generated ID, together with its tag
	// associations, in one transaction. Returns domain.ErrForeignKey if a
	// referenced author, shelf or tag does not exist.
	Add(ctx context.Context, create domain.BookCreate) (*domain.Book, error)

	// GetByID retrieves a book by its UUID, without joined relations.
	// Returns domain.ErrNotFound if no matching book exists.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Book, error)

	// GetDetail retrieves a book joined with its author name, shelf name and
	// tags. Returns domain.ErrNotFound if no matching book exists.
	GetDetail(ctx context.Context, id uuid.UUID) (*domain.BookDetail, error)

	// List retrieves a page of books ordered by title, optionally filtered by
	// a case-insensitive title prefix search. Rows are joined with author and
	// shelf names; the page's tags are fetched with a single batched query,
	// never one query per book. Untagged books carry empty, non-nil tag slices.
	List(ctx context.Context, req pagination.Request, query string) ([]*domain.BookListItem, pagination.Pagination, error)

	// Update applies the present fields of upd and returns the updated book.
	// A present TagIDs, even an empty one, replaces the whole tag set with a
	// delete-and-reinsert of association rows in the same transaction; an
	// absent TagIDs leaves the tag set untouched.
	// Returns domain.ErrNotFound if no matching book exists and
	// domain.ErrForeignKey if a referenced author, shelf or tag is missing.
	Update(ctx context.Context, id uuid.UUID, upd domain.BookUpdate) (*domain.Book, error)

	// Delete removes a book; its tag associations cascade away with it.
	// Returns false (with nil error) when the book is absent.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}
