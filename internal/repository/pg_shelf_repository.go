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
var _ ShelfRepository = (*PgShelfRepository)(nil)

// PgShelfRepository is a PostgreSQL implementation of ShelfRepository.
type PgShelfRepository struct {
	db DB
}

// NewPgShelfRepository creates a new PostgreSQL shelf repository.
func NewPgShelfRepository(db DB) *PgShelfRepository {
	return &PgShelfRepository{db: db}
}

// Add inserts a new shelf with a generated ID.
func (r *PgShelfRepository) Add(ctx context.Context, create domain.ShelfCreate) (*domain.Shelf, error) {
	shelf := &domain.Shelf{
		ID:        uuid.New(),
		Name:      create.Name,
		CabinetID: create.CabinetID,
	}

	query := `INSERT INTO shelves (id, name, cabinet_id) VALUES ($1, $2, $3)`

	err := inTx(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, query, shelf.ID, shelf.Name, shelf.CabinetID)
		return err
	})
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, domain.NewForeignKeyError("shelf", "cabinet")
		}
		return nil, fmt.Errorf("failed to add shelf: %w", err)
	}

	return shelf, nil
}

// GetByID retrieves a shelf by its UUID.
func (r *PgShelfRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Shelf, error) {
	query := `SELECT id, name, cabinet_id FROM shelves WHERE id = $1`

	var shelf domain.Shelf
	err := r.db.QueryRow(ctx, query, id).Scan(&shelf.ID, &shelf.Name, &shelf.CabinetID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("shelf", id.String())
		}
		return nil, fmt.Errorf("failed to get shelf: %w", err)
	}

	return &shelf, nil
}

// List retrieves a page of shelves joined with their cabinet names, grouped
// by cabinet and ordered by name within each group.
func (r *PgShelfRepository) List(ctx context.Context, req pagination.Request, query string) ([]*domain.ShelfWithCabinet, pagination.Pagination, error) {
	req = req.Normalize()

	var conditions []string
	var args []interface{}
	argIndex := 1

	if cond, condArgs, next := searchCondition("s.name", query, argIndex); cond != "" {
		conditions = append(conditions, cond)
		args = append(args, condArgs...)
		argIndex = next
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM shelves s %s", whereClause)
	var totalCount int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, pagination.Pagination{}, fmt.Errorf("failed to count shelves: %w", err)
	}

	page := pagination.Paginate(totalCount, req)

	selectQuery := fmt.Sprintf(`
		SELECT s.id, s.name, s.cabinet_id, c.name
		FROM shelves s
		LEFT JOIN cabinets c ON s.cabinet_id = c.id
		%s
		ORDER BY s.cabinet_id ASC, s.name ASC
		LIMIT $%d OFFSET $%d`,
		whereClause, argIndex, argIndex+1)
	args = append(args, req.PerPage, page.Offset(req.PerPage))

	rows, err := r.db.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, pagination.Pagination{}, fmt.Errorf("failed to list shelves: %w", err)
	}
	defer rows.Close()

	shelves, err := collectShelves(rows, req.PerPage)
	if err != nil {
		return nil, pagination.Pagination{}, err
	}

	return shelves, page, nil
}

// ListAll retrieves every shelf joined with its cabinet name.
func (r *PgShelfRepository) ListAll(ctx context.Context) ([]*domain.ShelfWithCabinet, error) {
	query := `
		SELECT s.id, s.name, s.cabinet_id, c.name
		FROM shelves s
		LEFT JOIN cabinets c ON s.cabinet_id = c.id
		ORDER BY s.cabinet_id ASC, s.name ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list shelves: %w", err)
	}
	defer rows.Close()

	return collectShelves(rows, 0)
}

// collectShelves drains rows into joined shelf records.
func collectShelves(rows pgx.Rows, capacity int) ([]*domain.ShelfWithCabinet, error) {
	shelves := make([]*domain.ShelfWithCabinet, 0, capacity)
	for rows.Next() {
		var shelf domain.ShelfWithCabinet
		if err := rows.Scan(&shelf.ID, &shelf.Name, &shelf.CabinetID, &shelf.CabinetName); err != nil {
			return nil, fmt.Errorf("failed to scan shelf: %w", err)
		}
		shelves = append(shelves, &shelf)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shelves: %w", err)
	}

	return shelves, nil
}

// Update applies the present fields of upd to a shelf. An explicitly null
// CabinetID detaches the shelf from its cabinet.
func (r *PgShelfRepository) Update(ctx context.Context, id uuid.UUID, upd domain.ShelfUpdate) (*domain.Shelf, error) {
	var sets []string
	var args []interface{}
	argIndex := 1

	if name, ok := upd.Name.Get(); ok {
		sets = append(sets, fmt.Sprintf("name = $%d", argIndex))
		args = append(args, name)
		argIndex++
	}
	if cabinetID, ok := upd.CabinetID.Get(); ok {
		sets = append(sets, fmt.Sprintf("cabinet_id = $%d", argIndex))
		args = append(args, cabinetID)
		argIndex++
	}

	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}

	query := fmt.Sprintf(`
		UPDATE shelves
		SET %s
		WHERE id = $%d
		RETURNING id, name, cabinet_id`,
		strings.Join(sets, ", "), argIndex)
	args = append(args, id)

	var shelf domain.Shelf
	err := inTx(ctx, r.db, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx, query, args...).Scan(&shelf.ID, &shelf.Name, &shelf.CabinetID)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("shelf", id.String())
		}
		if isForeignKeyViolation(err) {
			return nil, domain.NewForeignKeyError("shelf", "cabinet")
		}
		return nil, fmt.Errorf("failed to update shelf: %w", err)
	}

	return &shelf, nil
}

// Delete removes a shelf after detaching its books.
func (r *PgShelfRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	var found bool

	err := inTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `UPDATE books SET shelf_id = NULL WHERE shelf_id = $1`, id); err != nil {
			return fmt.Errorf("failed to detach books from shelf: %w", err)
		}

		result, err := tx.Exec(ctx, `DELETE FROM shelves WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete shelf: %w", err)
		}

		found = result.RowsAffected() > 0
		return nil
	})
	if err != nil {
		return false, err
	}

	return found, nil
}
