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

// Authors is the author service.
type Authors struct {
	repo    repository.AuthorRepository
	logger  zerolog.Logger
	metrics *observability.Metrics
}

// NewAuthors creates the author service.
func NewAuthors(repo repository.AuthorRepository, logger zerolog.Logger, metrics *observability.Metrics) *Authors {
	return &Authors{
		repo:    repo,
		logger:  logger.With().Str("component", "authors_service").Logger(),
		metrics: metrics,
	}
}

// Add creates a new author.
func (s *Authors) Add(ctx context.Context, create domain.AuthorCreate) (*domain.Author, error) {
	defer observeOp(s.metrics, entityAuthor, "add", time.Now())

	if err := requireName(create.Name); err != nil {
		return nil, err
	}

	author, err := s.repo.Add(ctx, create)
	if err != nil {
		return nil, err
	}

	s.metrics.EntitiesCreated.WithLabelValues(entityAuthor).Inc()
	s.logger.Info().Str("author_id", author.ID.String()).Msg("author created")
	return author, nil
}

// Get retrieves an author by ID.
func (s *Authors) Get(ctx context.Context, id uuid.UUID) (*domain.Author, error) {
	defer observeOp(s.metrics, entityAuthor, "get", time.Now())

	author, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.metrics.NotFound.WithLabelValues(entityAuthor).Inc()
		}
		return nil, err
	}
	return author, nil
}

// List retrieves a page of authors, optionally filtered by a name search.
func (s *Authors) List(ctx context.Context, req pagination.Request, query string) ([]*domain.Author, pagination.Pagination, error) {
	defer observeOp(s.metrics, entityAuthor, "list", time.Now())
	countList(s.metrics, entityAuthor, query)

	return s.repo.List(ctx, req, query)
}

// Update applies a partial update to an author.
func (s *Authors) Update(ctx context.Context, id uuid.UUID, upd domain.AuthorUpdate) (*domain.Author, error) {
	defer observeOp(s.metrics, entityAuthor, "update", time.Now())

	author, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.metrics.NotFound.WithLabelValues(entityAuthor).Inc()
		}
		return nil, err
	}

	s.metrics.EntitiesUpdated.WithLabelValues(entityAuthor).Inc()
	s.logger.Info().Str("author_id", id.String()).Msg("author updated")
	return author, nil
}

// Delete removes an author. Returns false when the author was absent.
func (s *Authors) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	defer observeOp(s.metrics, entityAuthor, "delete", time.Now())

	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}

	if found {
		s.metrics.EntitiesDeleted.WithLabelValues(entityAuthor).Inc()
		s.logger.Info().Str("author_id", id.String()).Msg("author deleted")
	} else {
		s.metrics.NotFound.WithLabelValues(entityAuthor).Inc()
	}
	return found, nil
}
