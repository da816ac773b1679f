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
var _ TagRepository = (*PgTagRepository)(nil)

// PgTagRepository is a PostgreSQL implementation of TagRepository.
type PgTagRepository struct {
	db DB
}

// NewPgTagRepository creates a new PostgreSQL tag repository.
func NewPgTagRepository(db DB) *PgTagRepository {
	return &PgTagRepository{db: db}
}

// Add inserts a new tag with a generated ID. Name uniqueness is left to the
// store's unique constraint, not pre-checked.
func (r *PgTagRepository) Add(ctx context.Context, create domain.TagCreate) (*domain.Tag, error) {
	tag := &domain.Tag{
		ID:   uuid.New(),
		Name: create.Name,
	}

	query := `INSERT INTO tags (id, name) VALUES ($1, $2)`

	err := inTx(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, query, tag.ID, tag.Name)
		return err
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.NewAlreadyExistsError("tag", create.Name)
		}
		return nil, fmt.Errorf("failed to add tag: %w", err)
	}

	return tag, nil
}

// GetByID retrieves a tag by its UUID.
func (r *PgTagRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tag, error) {
	query := `SELECT id, name FROM tags WHERE id = $1`

	var tag domain.Tag
	err := r.db.QueryRow(ctx, query, id).Scan(&tag.ID, &tag.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("tag", id.String())
		}
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}

	return &tag, nil
}

// GetByIDs retrieves multiple tags by their UUIDs, ordered by name. Missing
// IDs are silently skipped.
func (r *PgTagRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Tag, error) {
	if len(ids) == 0 {
		return []*domain.Tag{}, nil
	}

	query := `SELECT id, name FROM tags WHERE id = ANY($1) ORDER BY name ASC`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get tags by ids: %w", err)
	}
	defer rows.Close()

	tags := make([]*domain.Tag, 0, len(ids))
	for rows.Next() {
		var tag domain.Tag
		if err := rows.Scan(&tag.ID, &tag.Name); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, &tag)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tags: %w", err)
	}

	return tags, nil
}

// List retrieves a page of tags ordered by name.
func (r *PgTagRepository) List(ctx context.Context, req pagination.Request, query string) ([]*domain.Tag, pagination.Pagination, error) {
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

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM tags %s", whereClause)
	var totalCount int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, pagination.Pagination{}, fmt.Errorf("failed to count tags: %w", err)
	}

	page := pagination.Paginate(totalCount, req)

	selectQuery := fmt.Sprintf(`
		SELECT id, name
		FROM tags
		%s
		ORDER BY name ASC
		LIMIT $%d OFFSET $%d`,
		whereClause, argIndex, argIndex+1)
	args = append(args, req.PerPage, page.Offset(req.PerPage))

	rows, err := r.db.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, pagination.Pagination{}, fmt.Errorf("failed to list tags: %w", err)
	}
	defer rows.Close()

	tags := make([]*domain.Tag, 0, req.PerPage)
	for rows.Next() {
		var tag domain.Tag
		if err := rows.Scan(&tag.ID, &tag.Name); err != nil {
			return nil, pagination.Pagination{}, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, &tag)
	}

	if err := rows.Err(); err != nil {
		return nil, pagination.Pagination{}, fmt.Errorf("error iterating tags: %w", err)
	}

	return tags, page, nil
}

// Update applies the present fields of upd to a tag.
func (r *PgTagRepository) Update(ctx context.Context, id uuid.UUID, upd domain.TagUpdate) (*domain.Tag, error) {
	var sets []string
	var args []interface{}
	argIndex := 1

	if name, ok := upd.Name.Get(); ok {
		sets = append(sets, fmt.Sprintf("name = $%d", argIndex))
		args = append(args, name)
		argIndex++
	}

	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}

	query := fmt.Sprintf(`
		UPDATE tags
		SET %s
		WHERE id = $%d
		RETURNING id, name`,
		strings.Join(sets, ", "), argIndex)
	args = append(args, id)

	var tag domain.Tag
	err := inTx(ctx, r.db, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx, query, args...).Scan(&tag.ID, &tag.Name)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("tag", id.String())
		}
		if isUniqueViolation(err) {
			return nil, domain.NewAlreadyExistsError("tag", upd.Name.Value())
		}
		return nil, fmt.Errorf("failed to update tag: %w", err)
	}

	return &tag, nil
}

// Delete removes a tag; its book associations cascade away in the store.
func (r *PgTagRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	var found bool

	err := inTx(ctx, r.db, func(tx pgx.Tx) error {
		result, err := tx.Exec(ctx, `DELETE FROM tags WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete tag: %w", err)
		}

		found = result.RowsAffected() > 0
		return nil
	})
	if err != nil {
		return false, err
	}

	return found, nil
}
