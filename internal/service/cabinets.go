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

// Cabinets is the cabinet service.
type Cabinets struct {
	repo    repository.CabinetRepository
	logger  zerolog.Logger
	metrics *observability.Metrics
}

// NewCabinets creates the cabinet service.
func NewCabinets(repo repository.CabinetRepository, logger zerolog.Logger, metrics *observability.Metrics) *Cabinets {
	return &Cabinets{
		repo:    repo,
		logger:  logger.With().Str("component", "cabinets_service").Logger(),
		metrics: metrics,
	}
}

// Add creates a new cabinet.
func (s *Cabinets) Add(ctx context.Context, create domain.CabinetCreate) (*domain.Cabinet, error) {
	defer observeOp(s.metrics, entityCabinet, "add", time.Now())

	if err := requireName(create.Name); err != nil {
		return nil, err
	}

	cabinet, err := s.repo.Add(ctx, create)
	if err != nil {
		return nil, err
	}

	s.metrics.EntitiesCreated.WithLabelValues(entityCabinet).Inc()
	s.logger.Info().Str("cabinet_id", cabinet.ID.String()).Msg("cabinet created")
	return cabinet, nil
}

// Get retrieves a cabinet by ID.
func (s *Cabinets) Get(ctx context.Context, id uuid.UUID) (*domain.Cabinet, error) {
	defer observeOp(s.metrics, entityCabinet, "get", time.Now())

	cabinet, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.metrics.NotFound.WithLabelValues(entityCabinet).Inc()
		}
		return nil, err
	}
	return cabinet, nil
}

// List retrieves a page of cabinets, optionally filtered by a name search.
func (s *Cabinets) List(ctx context.Context, req pagination.Request, query string) ([]*domain.Cabinet, pagination.Pagination, error) {
	defer observeOp(s.metrics, entityCabinet, "list", time.Now())
	countList(s.metrics, entityCabinet, query)

	return s.repo.List(ctx, req, query)
}

// ListAll retrieves every cabinet, unpaginated.
func (s *Cabinets) ListAll(ctx context.Context) ([]*domain.Cabinet, error) {
	defer observeOp(s.metrics, entityCabinet, "list_all", time.Now())

	return s.repo.ListAll(ctx)
}

// Update applies a partial update to a cabinet.
func (s *Cabinets) Update(ctx context.Context, id uuid.UUID, upd domain.CabinetUpdate) (*domain.Cabinet, error) {
	defer observeOp(s.metrics, entityCabinet, "update", time.Now())

	cabinet, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.metrics.NotFound.WithLabelValues(entityCabinet).Inc()
		}
		return nil, err
	}

	s.metrics.EntitiesUpdated.WithLabelValues(entityCabinet).Inc()
	s.logger.Info().Str("cabinet_id", id.String()).Msg("cabinet updated")
	return cabinet, nil
}

// Delete removes a cabinet; its shelves survive detached.
// Returns false when the cabinet was absent.
func (s *Cabinets) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	defer observeOp(s.metrics, entityCabinet, "delete", time.Now())

	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}

	if found {
		s.metrics.EntitiesDeleted.WithLabelValues(entityCabinet).Inc()
		s.logger.Info().Str("cabinet_id", id.String()).Msg("cabinet deleted")
	} else {
		s.metrics.NotFound.WithLabelValues(entityCabinet).Inc()
	}
	return found, nil
}
