package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfmark/catalog-service/internal/domain"
	"github.com/shelfmark/catalog-service/internal/pagination"
)

func TestNewPgAuthorRepository(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPgAuthorRepository(mock)
	assert.NotNil(t, repo)
	assert.NotNil(t, repo.db)
}

func TestPgAuthorRepository_Add(t *testing.T) {
	ctx := context.Background()

	t.Run("inserts author inside a transaction", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := NewPgAuthorRepository(mock)

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO authors").
			WithArgs(pgxmock.AnyArg(), "Ursula K. Le Guin").
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectCommit()

		author, err := repo.Add(ctx, domain.AuthorCreate{Name: "Ursula K. Le Guin"})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, author.ID)
		assert.Equal(t, "Ursula K. Le Guin", author.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on insert failure", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := NewPgAuthorRepository(mock)

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO authors").
			WithArgs(pgxmock.AnyArg(), "x").
			WillReturnError(errors.New("connection reset"))
		mock.ExpectRollback()

		author, err := repo.Add(ctx, domain.AuthorCreate{Name: "x"})
		assert.Nil(t, author)
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPgAuthorRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("returns author when found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := NewPgAuthorRepository(mock)
		id := uuid.New()

		mock.ExpectQuery("SELECT id, name FROM authors").
			WithArgs(id).
			WillReturnRows(pgxmock.NewRows([]string{"id", "name"}).AddRow(id, "Italo Calvino"))

		author, err := repo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, id, author.ID)
		assert.Equal(t, "Italo Calvino", author.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for missing author", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := NewPgAuthorRepository(mock)
		id := uuid.New()

		mock.ExpectQuery("SELECT id, name FROM authors").
			WithArgs(id).
			WillReturnRows(pgxmock.NewRows([]string{"id", "name"}))

		author, err := repo.GetByID(ctx, id)
		assert.Nil(t, author)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPgAuthorRepository_List(t *testing.T) {
	ctx := context.Background()

	t.Run("search query filters both count and page", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := NewPgAuthorRepository(mock)
		id := uuid.New()

		mock.ExpectQuery("SELECT COUNT").
			WithArgs("han%", "% han%").
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery("SELECT id, name").
			WithArgs("han%", "% han%", 10, 0).
			WillReturnRows(pgxmock.NewRows([]string{"id", "name"}).AddRow(id, "Peter Handke"))

		authors, page, err := repo.List(ctx, pagination.Request{Page: 1, PerPage: 10}, "han")
		require.NoError(t, err)
		require.Len(t, authors, 1)
		assert.Equal(t, "Peter Handke", authors[0].Name)
		assert.Equal(t, pagination.Pagination{CurrentPage: 1, TotalPages: 1}, page)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("page past the end is served as the last page", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := NewPgAuthorRepository(mock)

		mock.ExpectQuery("SELECT COUNT").
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(95))
		// Offset derives from the clamped page 10, not the requested 99.
		mock.ExpectQuery("SELECT id, name").
			WithArgs(10, 90).
			WillReturnRows(pgxmock.NewRows([]string{"id", "name"}).
				AddRow(uuid.New(), "Zadie Smith"))

		authors, page, err := repo.List(ctx, pagination.Request{Page: 99, PerPage: 10}, "")
		require.NoError(t, err)
		assert.Len(t, authors, 1)
		assert.Equal(t, pagination.Pagination{CurrentPage: 10, TotalPages: 10}, page)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty result keeps non-nil slice", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := NewPgAuthorRepository(mock)

		mock.ExpectQuery("SELECT COUNT").
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery("SELECT id, name").
			WithArgs(10, 0).
			WillReturnRows(pgxmock.NewRows([]string{"id", "name"}))

		authors, page, err := repo.List(ctx, pagination.Request{Page: 1, PerPage: 10}, "")
		require.NoError(t, err)
		assert.NotNil(t, authors)
		assert.Empty(t, authors)
		assert.Equal(t, pagination.Pagination{CurrentPage: 1, TotalPages: 1}, page)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPgAuthorRepository_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("updates present fields", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := NewPgAuthorRepository(mock)
		id := uuid.New()

		mock.ExpectBegin()
		mock.ExpectQuery("UPDATE authors").
			WithArgs("Jose Saramago", id).
			WillReturnRows(pgxmock.NewRows([]string{"id", "name"}).AddRow(id, "Jose Saramago"))
		mock.ExpectCommit()

		author, err := repo.Update(ctx, id, domain.AuthorUpdate{Name: domain.NewField("Jose Saramago")})
		require.NoError(t, err)
		assert.Equal(t, "Jose Saramago", author.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty update returns current row without a transaction", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := NewPgAuthorRepository(mock)
		id := uuid.New()

		mock.ExpectQuery("SELECT id, name FROM authors").
			WithArgs(id).
			WillReturnRows(pgxmock.NewRows([]string{"id", "name"}).AddRow(id, "unchanged"))

		author, err := repo.Update(ctx, id, domain.AuthorUpdate{})
		require.NoError(t, err)
		assert.Equal(t, "unchanged", author.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for missing author", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := NewPgAuthorRepository(mock)
		id := uuid.New()

		mock.ExpectBegin()
		mock.ExpectQuery("UPDATE authors").
			WithArgs("x", id).
			WillReturnRows(pgxmock.NewRows([]string{"id", "name"}))
		mock.ExpectRollback()

		author, err := repo.Update(ctx, id, domain.AuthorUpdate{Name: domain.NewField("x")})
		assert.Nil(t, author)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPgAuthorRepository_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("detaches books before deleting", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := NewPgAuthorRepository(mock)
		id := uuid.New()

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE books SET author_id = NULL").
			WithArgs(id).
			WillReturnResult(pgxmock.NewResult("UPDATE", 3))
		mock.ExpectExec("DELETE FROM authors").
			WithArgs(id).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))
		mock.ExpectCommit()

		found, err := repo.Delete(ctx, id)
		require.NoError(t, err)
		assert.True(t, found)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns false for missing author", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := NewPgAuthorRepository(mock)
		id := uuid.New()

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE books SET author_id = NULL").
			WithArgs(id).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		mock.ExpectExec("DELETE FROM authors").
			WithArgs(id).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))
		mock.ExpectCommit()

		found, err := repo.Delete(ctx, id)
		require.NoError(t, err)
		assert.False(t, found)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
