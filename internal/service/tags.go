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

// Tags is the tag service.
type Tags struct {
	repo    repository.TagRepository
	logger  zerolog.Logger
	metrics *observability.Metrics
}

// NewTags creates the tag service.
func NewTags(repo repository.TagRepository, logger zerolog.Logger, metrics *observability.Metrics) *Tags {
	return &Tags{
		repo:    repo,
		logger:  logger.With().Str("component", "tags_service").Logger(),
		metrics: metrics,
	}
}

// Add creates a new tag. Duplicate names surface as domain.ErrAlreadyExists
// straight from the store's unique constraint.
func (s *Tags) Add(ctx context.Context, create domain.TagCreate) (*domain.Tag, error) {
	defer observeOp(s.metrics, entityTag, "add", time.Now())

	if err := requireName(create.Name); err != nil {
		return nil, err
	}

	tag, err := s.repo.Add(ctx, create)
	if err != nil {
		return nil, err
	}

	s.metrics.EntitiesCreated.WithLabelValues(entityTag).Inc()
	s.logger.Info().Str("tag_id", tag.ID.String()).Msg("tag created")
	return tag, nil
}

// Get retrieves a tag by ID.
func (s *Tags) Get(ctx context.Context, id uuid.UUID) (*domain.Tag, error) {
	defer observeOp(s.metrics, entityTag, "get", time.Now())

	tag, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.metrics.NotFound.WithLabelValues(entityTag).Inc()
		}
		return nil, err
	}
	return tag, nil
}

// List retrieves a page of tags, optionally filtered by a name search.
func (s *Tags) List(ctx context.Context, req pagination.Request, query string) ([]*domain.Tag, pagination.Pagination, error) {
	defer observeOp(s.metrics, entityTag, "list", time.Now())
	countList(s.metrics, entityTag, query)

	return s.repo.List(ctx, req, query)
}

// Update applies a partial update to a tag.
func (s *Tags) Update(ctx context.Context, id uuid.UUID, upd domain.TagUpdate) (*domain.Tag, error) {
	defer observeOp(s.metrics, entityTag, "update", time.Now())

	tag, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.metrics.NotFound.WithLabelValues(entityTag).Inc()
		}
		return nil, err
	}

	s.metrics.EntitiesUpdated.WithLabelValues(entityTag).Inc()
	s.logger.Info().Str("tag_id", id.String()).Msg("tag updated")
	return tag, nil
}

// Delete removes a tag; book associations cascade away with it.
// Returns false when the tag was absent.
func (s *Tags) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	defer observeOp(s.metrics, entityTag, "delete", time.Now())

	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}

	if found {
		s.metrics.EntitiesDeleted.WithLabelValues(entityTag).Inc()
		s.logger.Info().Str("tag_id", id.String()).Msg("tag deleted")
	} else {
		s.metrics.NotFound.WithLabelValues(entityTag).Inc()
	}
	return found, nil
}
