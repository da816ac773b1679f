package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfmark/catalog-service/internal/domain"
)

func TestPgTagRepository_Add(t *testing.T) {
	ctx := context.Background()

	t.Run("inserts tag", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := NewPgTagRepository(mock)

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO tags").
			WithArgs(pgxmock.AnyArg(), "fiction").
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectCommit()

		tag, err := repo.Add(ctx, domain.TagCreate{Name: "fiction"})
		require.NoError(t, err)
		assert.Equal(t, "fiction", tag.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps unique violation to already exists", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := NewPgTagRepository(mock)

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO tags").
			WithArgs(pgxmock.AnyArg(), "fiction").
			WillReturnError(&pgconn.PgError{Code: "23505"})
		mock.ExpectRollback()

		tag, err := repo.Add(ctx, domain.TagCreate{Name: "fiction"})
		assert.Nil(t, tag)
		assert.True(t, errors.Is(err, domain.ErrAlreadyExists))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPgTagRepository_GetByIDs(t *testing.T) {
	ctx := context.Background()

	t.Run("empty input issues no query", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := NewPgTagRepository(mock)

		tags, err := repo.GetByIDs(ctx, nil)
		require.NoError(t, err)
		assert.NotNil(t, tags)
		assert.Empty(t, tags)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("fetches tags with a single batched query", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := NewPgTagRepository(mock)
		ids := []uuid.UUID{uuid.New(), uuid.New()}

		mock.ExpectQuery("SELECT id, name FROM tags").
			WithArgs(ids).
			WillReturnRows(pgxmock.NewRows([]string{"id", "name"}).
				AddRow(ids[0], "fiction").
				AddRow(ids[1], "poetry"))

		tags, err := repo.GetByIDs(ctx, ids)
		require.NoError(t, err)
		require.Len(t, tags, 2)
		assert.Equal(t, "fiction", tags[0].Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPgTagRepository_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("maps unique violation on rename", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := NewPgTagRepository(mock)
		id := uuid.New()

		mock.ExpectBegin()
		mock.ExpectQuery("UPDATE tags").
			WithArgs("taken", id).
			WillReturnError(&pgconn.PgError{Code: "23505"})
		mock.ExpectRollback()

		tag, err := repo.Update(ctx, id, domain.TagUpdate{Name: domain.NewField("taken")})
		assert.Nil(t, tag)
		assert.True(t, errors.Is(err, domain.ErrAlreadyExists))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPgTagRepository_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("returns false for missing tag", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := NewPgTagRepository(mock)
		id := uuid.New()

		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM tags").
			WithArgs(id).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))
		mock.ExpectCommit()

		found, err := repo.Delete(ctx, id)
		require.NoError(t, err)
		assert.False(t, found)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("deletes existing tag without touching associations directly", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := NewPgTagRepository(mock)
		id := uuid.New()

		// Association rows go away via ON DELETE CASCADE, one statement only.
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM tags").
			WithArgs(id).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))
		mock.ExpectCommit()

		found, err := repo.Delete(ctx, id)
		require.NoError(t, err)
		assert.True(t, found)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
