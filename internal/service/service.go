// Package service implements the catalog's entity services. Each service
// wraps the repository for its entity, adds input checks, logging and
// metrics, and exposes the contract the HTTP layer is built on.
//
// Services are created once at startup with their dependencies injected:
//
//	authors := service.NewAuthors(repository.NewPgAuthorRepository(db), logger, metrics)
package service

import (
	"strings"
	"time"

	"github.com/shelfmark/catalog-service/internal/domain"
	"github.com/shelfmark/catalog-service/internal/observability"
)

// Entity labels used on metrics.
const (
	entityAuthor  = "author"
	entityBook    = "book"
	entityShelf   = "shelf"
	entityCabinet = "cabinet"
	entityTag     = "tag"
)

// observeOp records the duration of a service operation.
func observeOp(m *observability.Metrics, entity, op string, start time.Time) {
	m.OperationDuration.WithLabelValues(entity, op).Observe(time.Since(start).Seconds())
}

// countList bumps the listing counters for an entity, marking the request as
// a search when it carries a non-blank query.
func countList(m *observability.Metrics, entity, query string) {
	m.ListRequests.WithLabelValues(entity).Inc()
	if strings.TrimSpace(query) != "" {
		m.SearchRequests.WithLabelValues(entity).Inc()
	}
}

// requireName rejects blank names before they hit the store.
func requireName(name string) error {
	if strings.TrimSpace(name) == "" {
		return domain.NewValidationError("name", "name is required")
	}
	return nil
}
