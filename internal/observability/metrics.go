package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains all Prometheus metrics for the catalog service.
// Counters are labeled by entity kind (author, book, shelf, cabinet, tag) so a
// single metric covers the five parallel services. All metrics are registered
// via promauto with the default Prometheus registry.
type Metrics struct {
	// EntitiesCreated counts successful create operations, labeled by entity.
	EntitiesCreated *prometheus.CounterVec

	// EntitiesUpdated counts successful update operations, labeled by entity.
	EntitiesUpdated *prometheus.CounterVec

	// EntitiesDeleted counts successful delete operations, labeled by entity.
	EntitiesDeleted *prometheus.CounterVec

	// ListRequests counts listing operations, labeled by entity.
	ListRequests *prometheus.CounterVec

	// SearchRequests counts listing operations that carried a search query, labeled by entity.
	SearchRequests *prometheus.CounterVec

	// NotFound counts get/update/delete operations targeting a missing entity, labeled by entity.
	NotFound *prometheus.CounterVec

	// OperationDuration observes the duration of service operations in seconds,
	// labeled by entity and operation (add, get, list, update, delete).
	OperationDuration *prometheus.HistogramVec

	// CoversStored counts cover images written to the cover store.
	CoversStored prometheus.Counter
}

// NewMetrics creates a new Metrics instance registered with the default
// Prometheus registry. The namespace is used as a prefix for all metric names.
func NewMetrics(namespace string) *Metrics {
	return NewMetricsWithRegistry(namespace, prometheus.DefaultRegisterer)
}

// NewMetricsWithRegistry creates a new Metrics instance registered with the
// given registerer. Tests use this with a fresh registry to avoid duplicate
// registration panics.
func NewMetricsWithRegistry(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		EntitiesCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entities_created_total",
			Help:      "Total number of entities created",
		}, []string{"entity"}),
		EntitiesUpdated: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entities_updated_total",
			Help:      "Total number of entities updated",
		}, []string{"entity"}),
		EntitiesDeleted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entities_deleted_total",
			Help:      "Total number of entities deleted",
		}, []string{"entity"}),
		ListRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "list_requests_total",
			Help:      "Total number of listing operations",
		}, []string{"entity"}),
		SearchRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_requests_total",
			Help:      "Total number of listing operations with a search query",
		}, []string{"entity"}),
		NotFound: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "not_found_total",
			Help:      "Total number of operations targeting a missing entity",
		}, []string{"entity"}),
		OperationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Duration of service operations in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"entity", "operation"}),
		CoversStored: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "covers_stored_total",
			Help:      "Total number of cover images stored",
		}),
	}
}
