package httpserver

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/shelfmark/catalog-service/internal/domain"
	"github.com/shelfmark/catalog-service/internal/pagination"
)

// The handler layer depends on these narrow service interfaces so tests can
// substitute fakes. The concrete implementations live in internal/service.

// AuthorService manages authors.
type AuthorService interface {
	Add(ctx context.Context, create domain.AuthorCreate) (*domain.Author, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Author, error)
	List(ctx context.Context, req pagination.Request, query string) ([]*domain.Author, pagination.Pagination, error)
	Update(ctx context.Context, id uuid.UUID, upd domain.AuthorUpdate) (*domain.Author, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// BookService manages books, their tag associations and cover images.
type BookService interface {
	Add(ctx context.Context, create domain.BookCreate) (*domain.Book, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Book, error)
	GetDetail(ctx context.Context, id uuid.UUID) (*domain.BookDetail, error)
	List(ctx context.Context, req pagination.Request, query string) ([]*domain.BookListItem, pagination.Pagination, error)
	Update(ctx context.Context, id uuid.UUID, upd domain.BookUpdate) (*domain.Book, error)
	SetCover(ctx context.Context, id uuid.UUID, filename string, r io.Reader) (*domain.Book, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// ShelfService manages shelves.
type ShelfService interface {
	Add(ctx context.Context, create domain.ShelfCreate) (*domain.Shelf, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Shelf, error)
	List(ctx context.Context, req pagination.Request, query string) ([]*domain.ShelfWithCabinet, pagination.Pagination, error)
	ListAll(ctx context.Context) ([]*domain.ShelfWithCabinet, error)
	Update(ctx context.Context, id uuid.UUID, upd domain.ShelfUpdate) (*domain.Shelf, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// CabinetService manages cabinets.
type CabinetService interface {
	Add(ctx context.Context, create domain.CabinetCreate) (*domain.Cabinet, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Cabinet, error)
	List(ctx context.Context, req pagination.Request, query string) ([]*domain.Cabinet, pagination.Pagination, error)
	ListAll(ctx context.Context) ([]*domain.Cabinet, error)
	Update(ctx context.Context, id uuid.UUID, upd domain.CabinetUpdate) (*domain.Cabinet, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// TagService manages tags.
type TagService interface {
	Add(ctx context.Context, create domain.TagCreate) (*domain.Tag, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Tag, error)
	List(ctx context.Context, req pagination.Request, query string) ([]*domain.Tag, pagination.Pagination, error)
	Update(ctx context.Context, id uuid.UUID, upd domain.TagUpdate) (*domain.Tag, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}
