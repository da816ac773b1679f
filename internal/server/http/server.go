// Package httpserver provides the HTTP REST API server for the catalog service.
package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/shelfmark/catalog-service/internal/database"
	"github.com/shelfmark/catalog-service/internal/domain"
	"github.com/shelfmark/catalog-service/internal/pagination"
)

// HealthChecker reports store health for the liveness and readiness probes.
// *database.DB implements it.
type HealthChecker interface {
	Health(ctx context.Context) database.HealthStatus
}

// Server is the HTTP REST API server.
type Server struct {
	router     chi.Router
	httpServer *http.Server
	authors    AuthorService
	books      BookService
	shelves    ShelfService
	cabinets   CabinetService
	tags       TagService
	health     HealthChecker
	validate   *validator.Validate
	logger     zerolog.Logger
	maxUpload  int64
}

// Config holds HTTP server configuration.
type Config struct {
	Address         string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	RateLimitRPS    float64
	RateLimitBurst  int
	MaxUploadSize   int64
}

// Services bundles the entity services the server exposes.
type Services struct {
	Authors  AuthorService
	Books    BookService
	Shelves  ShelfService
	Cabinets CabinetService
	Tags     TagService
}

// NewServer creates a new HTTP server with all dependencies.
func NewServer(cfg Config, svcs Services, health HealthChecker, logger zerolog.Logger) *Server {
	s := &Server{
		authors:   svcs.Authors,
		books:     svcs.Books,
		shelves:   svcs.Shelves,
		cabinets:  svcs.Cabinets,
		tags:      svcs.Tags,
		health:    health,
		validate:  validator.New(),
		logger:    logger.With().Str("component", "http-server").Logger(),
		maxUpload: cfg.MaxUploadSize,
	}

	s.router = s.buildRouter(cfg)

	s.httpServer = &http.Server{
		Addr:         cfg.Address,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s
}

// Router exposes the chi router, mainly for tests.
func (s *Server) Router() chi.Router {
	return s.router
}

// buildRouter creates the chi router with all middleware and routes.
func (s *Server) buildRouter(cfg Config) chi.Router {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(correlationIDMiddleware)
	r.Use(jsonContentTypeMiddleware)

	// Health endpoints
	r.Get("/healthz", s.healthHandler)
	r.Get("/readyz", s.readinessHandler)

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.RateLimitRPS > 0 {
			r.Use(rateLimitMiddleware(rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)))
		}

		r.Route("/authors", func(r chi.Router) {
			r.Post("/", s.addAuthor)
			r.Get("/", s.listAuthors)
			r.Get("/{id}", s.getAuthor)
			r.Patch("/{id}", s.updateAuthor)
			r.Delete("/{id}", s.deleteAuthor)
		})

		r.Route("/books", func(r chi.Router) {
			r.Post("/", s.addBook)
			r.Get("/", s.listBooks)
			r.Get("/{id}", s.getBook)
			r.Get("/{id}/detail", s.getBookDetail)
			r.Post("/{id}/cover", s.uploadBookCover)
			r.Patch("/{id}", s.updateBook)
			r.Delete("/{id}", s.deleteBook)
		})

		r.Route("/shelves", func(r chi.Router) {
			r.Post("/", s.addShelf)
			r.Get("/", s.listShelves)
			r.Get("/all", s.listAllShelves)
			r.Get("/{id}", s.getShelf)
			r.Patch("/{id}", s.updateShelf)
			r.Delete("/{id}", s.deleteShelf)
		})

		r.Route("/cabinets", func(r chi.Router) {
			r.Post("/", s.addCabinet)
			r.Get("/", s.listCabinets)
			r.Get("/all", s.listAllCabinets)
			r.Get("/{id}", s.getCabinet)
			r.Patch("/{id}", s.updateCabinet)
			r.Delete("/{id}", s.deleteCabinet)
		})

		r.Route("/tags", func(r chi.Router) {
			r.Post("/", s.addTag)
			r.Get("/", s.listTags)
			r.Get("/{id}", s.getTag)
			r.Patch("/{id}", s.updateTag)
			r.Delete("/{id}", s.deleteTag)
		})
	})

	return r
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.logger.Info().Str("address", s.httpServer.Addr).Msg("HTTP server starting")
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen on HTTP address: %w", err)
	}
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// healthHandler returns basic liveness status.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	health := s.health.Health(r.Context())
	if health.Status == "healthy" {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "database": health.Status})
		return
	}
	writeJSON(w, http.StatusServiceUnavailable, map[string]string{
		"status":   "unhealthy",
		"database": health.Status,
		"error":    health.Error,
	})
}

// readinessHandler returns readiness status.
func (s *Server) readinessHandler(w http.ResponseWriter, r *http.Request) {
	health := s.health.Health(r.Context())
	if health.Status != "healthy" {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status":   "not_ready",
			"database": health.Status,
			"error":    health.Error,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":   "ready",
		"database": "healthy",
	})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	// Best-effort; headers are already sent.
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// writeDomainError maps domain errors onto HTTP status codes.
func writeDomainError(w http.ResponseWriter, logger zerolog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrForeignKey):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		logger.Error().Err(err).Msg("request failed")
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// parseUUID parses the {id} URL parameter.
func parseUUID(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

// parseListParams extracts page, per_page and q from the query string.
func parseListParams(r *http.Request) (pagination.Request, string, error) {
	q := r.URL.Query()

	req := pagination.Request{}
	if raw := q.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return req, "", fmt.Errorf("invalid page %q", raw)
		}
		req.Page = page
	}
	if raw := q.Get("per_page"); raw != "" {
		perPage, err := strconv.Atoi(raw)
		if err != nil {
			return req, "", fmt.Errorf("invalid per_page %q", raw)
		}
		req.PerPage = perPage
	}

	return req, q.Get("q"), nil
}

// decodeJSON decodes a size-limited JSON request body into v, then runs
// struct validation on it.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	defer r.Body.Close()
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid JSON request body")
	}
	if err := s.validate.Struct(v); err != nil {
		return err
	}
	return nil
}

// maxRequestBodySize limits JSON request bodies.
const maxRequestBodySize = 1 << 20 // 1 MB
