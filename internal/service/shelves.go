package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/shelfmark/catalog-service/internal/domain"
	"github.com/shelfmark/catalog-service/internal/observability"
	"github.com/shelfmark/catalog-service/internal/pagination"
	"github.com/shelfmark/catalog-service/internal/repository"
)

// Shelves is the shelf service.
type Shelves struct {
	repo    repository.ShelfRepository
	logger  zerolog.Logger
	metrics *observability.Metrics
}

// NewShelves creates the shelf service.
func NewShelves(repo repository.ShelfRepository, logger zerolog.Logger, metrics *observability.Metrics) *Shelves {
	return &Shelves{
		repo:    repo,
		logger:  logger.With().Str("component", "shelves_service").Logger(),
		metrics: metrics,
	}
}

// Add creates a new shelf.
func (s *Shelves) Add(ctx context.Context, create domain.ShelfCreate) (*domain.Shelf, error) {
	defer observeOp(s.metrics, entityShelf, "add", time.Now())

	if err := requireName(create.Name); err != nil {
		return nil, err
	}

	shelf, err := s.repo.Add(ctx, create)
	if err != nil {
		return nil, err
	}

	s.metrics.EntitiesCreated.WithLabelValues(entityShelf).Inc()
	s.logger.Info().Str("shelf_id", shelf.ID.String()).Msg("shelf created")
	return shelf, nil
}

// Get retrieves a shelf by ID.
func (s *Shelves) Get(ctx context.Context, id uuid.UUID) (*domain.Shelf, error) {
	defer observeOp(s.metrics, entityShelf, "get", time.Now())

	shelf, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.metrics.NotFound.WithLabelValues(entityShelf).Inc()
		}
		return nil, err
	}
	return shelf, nil
}

// List retrieves a page of shelves with cabinet names, optionally filtered
// by a name search.
func (s *Shelves) List(ctx context.Context, req pagination.Request, query string) ([]*domain.ShelfWithCabinet, pagination.Pagination, error) {
	defer observeOp(s.metrics, entityShelf, "list", time.Now())
	countList(s.metrics, entityShelf, query)

	return s.repo.List(ctx, req, query)
}

// ListAll retrieves every shelf with its cabinet name, unpaginated.
func (s *Shelves) ListAll(ctx context.Context) ([]*domain.ShelfWithCabinet, error) {
	defer observeOp(s.metrics, entityShelf, "list_all", time.Now())

	return s.repo.ListAll(ctx)
}

// Update applies a partial update to a shelf.
func (s *Shelves) Update(ctx context.Context, id uuid.UUID, upd domain.ShelfUpdate) (*domain.Shelf, error) {
	defer observeOp(s.metrics, entityShelf, "update", time.Now())

	shelf, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.metrics.NotFound.WithLabelValues(entityShelf).Inc()
		}
		return nil, err
	}

	s.metrics.EntitiesUpdated.WithLabelValues(entityShelf).Inc()
	s.logger.Info().Str("shelf_id", id.String()).Msg("shelf updated")
	return shelf, nil
}

// Delete removes a shelf; its books survive detached.
// Returns false when the shelf was absent.
func (s *Shelves) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	defer observeOp(s.metrics, entityShelf, "delete", time.Now())

	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}

	if found {
		s.metrics.EntitiesDeleted.WithLabelValues(entityShelf).Inc()
		s.logger.Info().Str("shelf_id", id.String()).Msg("shelf deleted")
	} else {
		s.metrics.NotFound.WithLabelValues(entityShelf).Inc()
	}
	return found, nil
}
