package service

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/shelfmark/catalog-service/internal/domain"
	"github.com/shelfmark/catalog-service/internal/observability"
	"github.com/shelfmark/catalog-service/internal/pagination"
	"github.com/shelfmark/catalog-service/internal/repository"
)

// CoverStore persists cover images and returns the relative path to embed
// on the book. *covers.Store implements it.
type CoverStore interface {
	Save(filename string, r io.Reader) (string, error)
	Remove(relPath string) error
}

// Books is the book service.
type Books struct {
	repo    repository.BookRepository
	covers  CoverStore
	logger  zerolog.Logger
	metrics *observability.Metrics
}

// NewBooks creates the book service.
func NewBooks(repo repository.BookRepository, covers CoverStore, logger zerolog.Logger, metrics *observability.Metrics) *Books {
	return &Books{
		repo:    repo,
		covers:  covers,
		logger:  logger.With().Str("component", "books_service").Logger(),
		metrics: metrics,
	}
}

// Add creates a new book together with its tag associations.
func (s *Books) Add(ctx context.Context, create domain.BookCreate) (*domain.Book, error) {
	defer observeOp(s.metrics, entityBook, "add", time.Now())

	if err := requireName(create.Title); err != nil {
		return nil, domain.NewValidationError("title", "title is required")
	}

	book, err := s.repo.Add(ctx, create)
	if err != nil {
		return nil, err
	}

	s.metrics.EntitiesCreated.WithLabelValues(entityBook).Inc()
	s.logger.Info().Str("book_id", book.ID.String()).Msg("book created")
	return book, nil
}

// Get retrieves a book by ID, without joined relations.
func (s *Books) Get(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	defer observeOp(s.metrics, entityBook, "get", time.Now())

	book, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.metrics.NotFound.WithLabelValues(entityBook).Inc()
		}
		return nil, err
	}
	return book, nil
}

// GetDetail retrieves a book with its author name, shelf name and tags.
func (s *Books) GetDetail(ctx context.Context, id uuid.UUID) (*domain.BookDetail, error) {
	defer observeOp(s.metrics, entityBook, "get_detail", time.Now())

	detail, err := s.repo.GetDetail(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.metrics.NotFound.WithLabelValues(entityBook).Inc()
		}
		return nil, err
	}
	return detail, nil
}

// List retrieves a page of books with joined names and tags, optionally
// filtered by a title search.
func (s *Books) List(ctx context.Context, req pagination.Request, query string) ([]*domain.BookListItem, pagination.Pagination, error) {
	defer observeOp(s.metrics, entityBook, "list", time.Now())
	countList(s.metrics, entityBook, query)

	return s.repo.List(ctx, req, query)
}

// Update applies a partial update to a book, replacing its tag set when the
// update carries one.
func (s *Books) Update(ctx context.Context, id uuid.UUID, upd domain.BookUpdate) (*domain.Book, error) {
	defer observeOp(s.metrics, entityBook, "update", time.Now())

	book, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.metrics.NotFound.WithLabelValues(entityBook).Inc()
		}
		return nil, err
	}

	s.metrics.EntitiesUpdated.WithLabelValues(entityBook).Inc()
	s.logger.Info().Str("book_id", id.String()).Msg("book updated")
	return book, nil
}

// SetCover stores an uploaded cover image and records its path on the book.
// When the book update fails the stored file is removed again.
func (s *Books) SetCover(ctx context.Context, id uuid.UUID, filename string, r io.Reader) (*domain.Book, error) {
	defer observeOp(s.metrics, entityBook, "set_cover", time.Now())

	path, err := s.covers.Save(filename, r)
	if err != nil {
		return nil, err
	}

	book, err := s.repo.Update(ctx, id, domain.BookUpdate{
		CoverPath: domain.NewField(&path),
	})
	if err != nil {
		if rmErr := s.covers.Remove(path); rmErr != nil {
			s.logger.Warn().Err(rmErr).Str("path", path).Msg("failed to remove orphaned cover")
		}
		if errors.Is(err, domain.ErrNotFound) {
			s.metrics.NotFound.WithLabelValues(entityBook).Inc()
		}
		return nil, err
	}

	s.metrics.CoversStored.Inc()
	s.logger.Info().Str("book_id", id.String()).Str("cover_path", path).Msg("book cover stored")
	return book, nil
}

// Delete removes a book; its tag associations cascade away with it.
// Returns false when the book was absent.
func (s *Books) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	defer observeOp(s.metrics, entityBook, "delete", time.Now())

	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}

	if found {
		s.metrics.EntitiesDeleted.WithLabelValues(entityBook).Inc()
		s.logger.Info().Str("book_id", id.String()).Msg("book deleted")
	} else {
		s.metrics.NotFound.WithLabelValues(entityBook).Inc()
	}
	return found, nil
}
