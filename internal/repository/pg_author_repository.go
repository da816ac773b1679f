package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/shelfmark/catalog-service/internal/domain"
	"github.com/shelfmark/catalog-service/internal/pagination"
)

// Compile-time interface verification.
var _ AuthorRepository = (*PgAuthorRepository)(nil)

// PgAuthorRepository is a PostgreSQL implementation of AuthorRepository.
type PgAuthorRepository struct {
	db DB
}

// NewPgAuthorRepository creates a new PostgreSQL author repository.
func NewPgAuthorRepository(db DB) *PgAuthorRepository {
	return &PgAuthorRepository{db: db}
}

// Add inserts a new author with a generated ID.
func (r *PgAuthorRepository) Add(ctx context.Context, create domain.AuthorCreate) (*domain.Author, error) {
	author := &domain.Author{
		ID:   uuid.New(),
		Name: create.Name,
	}

	query := `INSERT INTO authors (id, name) VALUES ($1, $2)`

	err := inTx(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, query, author.ID, author.Name)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add author: %w", err)
	}

	return author, nil
}

// GetByID retrieves an author by its UUID.
func (r *PgAuthorRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Author, error) {
	query := `SELECT id, name FROM authors WHERE id = $1`

	var author domain.Author
	err := r.db.QueryRow(ctx, query, id).Scan(&author.ID, &author.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("author", id.String())
		}
		return nil, fmt.Errorf("failed to get author: %w", err)
	}

	return &author, nil
}

// List retrieves a page of authors ordered by name.
func (r *PgAuthorRepository) List(ctx context.Context, req pagination.Request, query string) ([]*domain.Author, pagination.Pagination, error) {
	req = req.Normalize()

	var conditions []string
	var args []interface{}
	argIndex := 1

	if cond, condArgs, next := searchCondition("name", query, argIndex); cond != "" {
		conditions = append(conditions, cond)
		args = append(args, condArgs...)
		argIndex = next
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	// Count and page queries share the same filter so they stay consistent.
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM authors %s", whereClause)
	var totalCount int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, pagination.Pagination{}, fmt.Errorf("failed to count authors: %w", err)
	}

	page := pagination.Paginate(totalCount, req)

	selectQuery := fmt.Sprintf(`
		SELECT id, name
		FROM authors
		%s
		ORDER BY name ASC
		LIMIT $%d OFFSET $%d`,
		whereClause, argIndex, argIndex+1)
	args = append(args, req.PerPage, page.Offset(req.PerPage))

	rows, err := r.db.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, pagination.Pagination{}, fmt.Errorf("failed to list authors: %w", err)
	}
	defer rows.Close()

	authors := make([]*domain.Author, 0, req.PerPage)
	for rows.Next() {
		var author domain.Author
		if err := rows.Scan(&author.ID, &author.Name); err != nil {
			return nil, pagination.Pagination{}, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, &author)
	}

	if err := rows.Err(); err != nil {
		return nil, pagination.Pagination{}, fmt.Errorf("error iterating authors: %w", err)
	}

	return authors, page, nil
}

// Update applies the present fields of upd to an author.
func (r *PgAuthorRepository) Update(ctx context.Context, id uuid.UUID, upd domain.AuthorUpdate) (*domain.Author, error) {
	var sets []string
	var args []interface{}
	argIndex := 1

	if name, ok := upd.Name.Get(); ok {
		sets = append(sets, fmt.Sprintf("name = $%d", argIndex))
		args = append(args, name)
		argIndex++
	}

	// Nothing present to change, return the current row.
	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}

	query := fmt.Sprintf(`
		UPDATE authors
		SET %s
		WHERE id = $%d
		RETURNING id, name`,
		strings.Join(sets, ", "), argIndex)
	args = append(args, id)

	var author domain.Author
	err := inTx(ctx, r.db, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx, query, args...).Scan(&author.ID, &author.Name)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("author", id.String())
		}
		return nil, fmt.Errorf("failed to update author: %w", err)
	}

	return &author, nil
}

// Delete removes an author after detaching its books.
func (r *PgAuthorRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	var found bool

	err := inTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `UPDATE books SET author_id = NULL WHERE author_id = $1`, id); err != nil {
			return fmt.Errorf("failed to detach books from author: %w", err)
		}

		result, err := tx.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete author: %w", err)
		}

		found = result.RowsAffected() > 0
		return nil
	})
	if err != nil {
		return false, err
	}

	return found, nil
}
