package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfmark/catalog-service/internal/domain"
	"github.com/shelfmark/catalog-service/internal/observability"
	"github.com/shelfmark/catalog-service/internal/pagination"
)

// fakeAuthorRepo is a function-backed AuthorRepository for service tests.
type fakeAuthorRepo struct {
	addFn    func(ctx context.Context, create domain.AuthorCreate) (*domain.Author, error)
	getFn    func(ctx context.Context, id uuid.UUID) (*domain.Author, error)
	listFn   func(ctx context.Context, req pagination.Request, query string) ([]*domain.Author, pagination.Pagination, error)
	updateFn func(ctx context.Context, id uuid.UUID, upd domain.AuthorUpdate) (*domain.Author, error)
	deleteFn func(ctx context.Context, id uuid.UUID) (bool, error)
}

func (f *fakeAuthorRepo) Add(ctx context.Context, create domain.AuthorCreate) (*domain.Author, error) {
	return f.addFn(ctx, create)
}

func (f *fakeAuthorRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Author, error) {
	return f.getFn(ctx, id)
}

func (f *fakeAuthorRepo) List(ctx context.Context, req pagination.Request, query string) ([]*domain.Author, pagination.Pagination, error) {
	return f.listFn(ctx, req, query)
}

func (f *fakeAuthorRepo) Update(ctx context.Context, id uuid.UUID, upd domain.AuthorUpdate) (*domain.Author, error) {
	return f.updateFn(ctx, id, upd)
}

func (f *fakeAuthorRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return f.deleteFn(ctx, id)
}

func newTestMetrics() *observability.Metrics {
	return observability.NewMetricsWithRegistry("test", prometheus.NewRegistry())
}

func TestAuthorsAdd(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects blank name before the store", func(t *testing.T) {
		called := false
		repo := &fakeAuthorRepo{
			addFn: func(ctx context.Context, create domain.AuthorCreate) (*domain.Author, error) {
				called = true
				return nil, nil
			},
		}
		svc := NewAuthors(repo, zerolog.Nop(), newTestMetrics())

		author, err := svc.Add(ctx, domain.AuthorCreate{Name: "   "})
		assert.Nil(t, author)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))
		assert.False(t, called)
	})

	t.Run("creates author", func(t *testing.T) {
		repo := &fakeAuthorRepo{
			addFn: func(ctx context.Context, create domain.AuthorCreate) (*domain.Author, error) {
				return &domain.Author{ID: uuid.New(), Name: create.Name}, nil
			},
		}
		svc := NewAuthors(repo, zerolog.Nop(), newTestMetrics())

		author, err := svc.Add(ctx, domain.AuthorCreate{Name: "Clarice Lispector"})
		require.NoError(t, err)
		assert.Equal(t, "Clarice Lispector", author.Name)
	})
}

func TestAuthorsGet(t *testing.T) {
	ctx := context.Background()

	t.Run("passes through not found", func(t *testing.T) {
		id := uuid.New()
		repo := &fakeAuthorRepo{
			getFn: func(ctx context.Context, got uuid.UUID) (*domain.Author, error) {
				assert.Equal(t, id, got)
				return nil, domain.NewNotFoundError("author", got.String())
			},
		}
		svc := NewAuthors(repo, zerolog.Nop(), newTestMetrics())

		author, err := svc.Get(ctx, id)
		assert.Nil(t, author)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})
}

func TestAuthorsList(t *testing.T) {
	ctx := context.Background()

	repo := &fakeAuthorRepo{
		listFn: func(ctx context.Context, req pagination.Request, query string) ([]*domain.Author, pagination.Pagination, error) {
			assert.Equal(t, "le g", query)
			return []*domain.Author{{ID: uuid.New(), Name: "Ursula K. Le Guin"}},
				pagination.Pagination{CurrentPage: 1, TotalPages: 1}, nil
		},
	}
	svc := NewAuthors(repo, zerolog.Nop(), newTestMetrics())

	authors, page, err := svc.List(ctx, pagination.Request{Page: 1, PerPage: 10}, "le g")
	require.NoError(t, err)
	assert.Len(t, authors, 1)
	assert.Equal(t, 1, page.CurrentPage)
}

func TestAuthorsDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("reports found", func(t *testing.T) {
		repo := &fakeAuthorRepo{
			deleteFn: func(ctx context.Context, id uuid.UUID) (bool, error) { return true, nil },
		}
		svc := NewAuthors(repo, zerolog.Nop(), newTestMetrics())

		found, err := svc.Delete(ctx, uuid.New())
		require.NoError(t, err)
		assert.True(t, found)
	})

	t.Run("missing author is false without error", func(t *testing.T) {
		repo := &fakeAuthorRepo{
			deleteFn: func(ctx context.Context, id uuid.UUID) (bool, error) { return false, nil },
		}
		svc := NewAuthors(repo, zerolog.Nop(), newTestMetrics())

		found, err := svc.Delete(ctx, uuid.New())
		require.NoError(t, err)
		assert.False(t, found)
	})
}
