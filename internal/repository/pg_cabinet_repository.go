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
var _ CabinetRepository = (*PgCabinetRepository)(nil)

// PgCabinetRepository is a PostgreSQL implementation of CabinetRepository.
type PgCabinetRepository struct {
	db DB
}

// NewPgCabinetRepository creates a new PostgreSQL cabinet repository.
func NewPgCabinetRepository(db DB) *PgCabinetRepository {
	return &PgCabinetRepository{db: db}
}

// Add inserts a new cabinet with a generated ID.
func (r *PgCabinetRepository) Add(ctx context.Context, create domain.CabinetCreate) (*domain.Cabinet, error) {
	cabinet := &domain.Cabinet{
		ID:   uuid.New(),
		Name: create.Name,
	}

	query := `INSERT INTO cabinets (id, name) VALUES ($1, $2)`

	err := inTx(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, query, cabinet.ID, cabinet.Name)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add cabinet: %w", err)
	}

	return cabinet, nil
}

// GetByID retrieves a cabinet by its UUID.
func (r *PgCabinetRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Cabinet, error) {
	query := `SELECT id, name FROM cabinets WHERE id = $1`

	var cabinet domain.Cabinet
	err := r.db.QueryRow(ctx, query, id).Scan(&cabinet.ID, &cabinet.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("cabinet", id.String())
		}
		return nil, fmt.Errorf("failed to get cabinet: %w", err)
	}

	return &cabinet, nil
}

// List retrieves a page of cabinets ordered by name.
func (r *PgCabinetRepository) List(ctx context.Context, req pagination.Request, query string) ([]*domain.Cabinet, pagination.Pagination, error) {
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

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM cabinets %s", whereClause)
	var totalCount int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, pagination.Pagination{}, fmt.Errorf("failed to count cabinets: %w", err)
	}

	page := pagination.Paginate(totalCount, req)

	selectQuery := fmt.Sprintf(`
		SELECT id, name
		FROM cabinets
		%s
		ORDER BY name ASC
		LIMIT $%d OFFSET $%d`,
		whereClause, argIndex, argIndex+1)
	args = append(args, req.PerPage, page.Offset(req.PerPage))

	rows, err := r.db.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, pagination.Pagination{}, fmt.Errorf("failed to list cabinets: %w", err)
	}
	defer rows.Close()

	cabinets := make([]*domain.Cabinet, 0, req.PerPage)
	for rows.Next() {
		var cabinet domain.Cabinet
		if err := rows.Scan(&cabinet.ID, &cabinet.Name); err != nil {
			return nil, pagination.Pagination{}, fmt.Errorf("failed to scan cabinet: %w", err)
		}
		cabinets = append(cabinets, &cabinet)
	}

	if err := rows.Err(); err != nil {
		return nil, pagination.Pagination{}, fmt.Errorf("error iterating cabinets: %w", err)
	}

	return cabinets, page, nil
}

// ListAll retrieves every cabinet ordered by name.
func (r *PgCabinetRepository) ListAll(ctx context.Context) ([]*domain.Cabinet, error) {
	query := `SELECT id, name FROM cabinets ORDER BY name ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list cabinets: %w", err)
	}
	defer rows.Close()

	cabinets := make([]*domain.Cabinet, 0)
	for rows.Next() {
		var cabinet domain.Cabinet
		if err := rows.Scan(&cabinet.ID, &cabinet.Name); err != nil {
			return nil, fmt.Errorf("failed to scan cabinet: %w", err)
		}
		cabinets = append(cabinets, &cabinet)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cabinets: %w", err)
	}

	return cabinets, nil
}

// Update applies the present fields of upd to a cabinet.
func (r *PgCabinetRepository) Update(ctx context.Context, id uuid.UUID, upd domain.CabinetUpdate) (*domain.Cabinet, error) {
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
		UPDATE cabinets
		SET %s
		WHERE id = $%d
		RETURNING id, name`,
		strings.Join(sets, ", "), argIndex)
	args = append(args, id)

	var cabinet domain.Cabinet
	err := inTx(ctx, r.db, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx, query, args...).Scan(&cabinet.ID, &cabinet.Name)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("cabinet", id.String())
		}
		return nil, fmt.Errorf("failed to update cabinet: %w", err)
	}

	return &cabinet, nil
}

// Delete removes a cabinet after detaching its shelves. The shelves survive
// with a null cabinet reference.
func (r *PgCabinetRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	var found bool

	err := inTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `UPDATE shelves SET cabinet_id = NULL WHERE cabinet_id = $1`, id); err != nil {
			return fmt.Errorf("failed to detach shelves from cabinet: %w", err)
		}

		result, err := tx.Exec(ctx, `DELETE FROM cabinets WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete cabinet: %w", err)
		}

		found = result.RowsAffected() > 0
		return nil
	})
	if err != nil {
		return false, err
	}

	return found, nil
}
