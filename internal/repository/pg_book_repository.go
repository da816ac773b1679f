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
var _ BookRepository = (*PgBookRepository)(nil)

// PgBookRepository is a PostgreSQL implementation of BookRepository.
type PgBookRepository struct {
	db DB
}

// NewPgBookRepository creates a new PostgreSQL book repository.
func NewPgBookRepository(db DB) *PgBookRepository {
	return &PgBookRepository{db: db}
}

// Add inserts a new book with a generated ID together with its tag
// associations, in one transaction.
func (r *PgBookRepository) Add(ctx context.Context, create domain.BookCreate) (*domain.Book, error) {
	book := &domain.Book{
		ID:               uuid.New(),
		Title:            create.Title,
		CoverPath:        create.CoverPath,
		ShortDescription: create.ShortDescription,
		FullDescription:  create.FullDescription,
		AuthorID:         create.AuthorID,
		ShelfID:          create.ShelfID,
	}

	query := `
		INSERT INTO books (id, title, cover_path, short_description, full_description, author_id, shelf_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	err := inTx(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, query,
			book.ID, book.Title, book.CoverPath,
			book.ShortDescription, book.FullDescription,
			book.AuthorID, book.ShelfID,
		)
		if err != nil {
			return err
		}

		return insertBookTags(ctx, tx, book.ID, create.TagIDs)
	})
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, domain.NewForeignKeyError("book", "author, shelf or tag")
		}
		return nil, fmt.Errorf("failed to add book: %w", err)
	}

	return book, nil
}

// GetByID retrieves a book by its UUID, without joined relations.
func (r *PgBookRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	query := `
		SELECT id, title, cover_path, short_description, full_description, author_id, shelf_id
		FROM books
		WHERE id = $1`

	row := r.db.QueryRow(ctx, query, id)
	book, err := scanBook(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("book", id.String())
		}
		return nil, fmt.Errorf("failed to get book: %w", err)
	}

	return book, nil
}

// GetDetail retrieves a book joined with its author name, shelf name and tags.
func (r *PgBookRepository) GetDetail(ctx context.Context, id uuid.UUID) (*domain.BookDetail, error) {
	query := `
		SELECT b.id, b.title, b.cover_path, b.short_description, b.full_description,
			b.author_id, b.shelf_id, a.name, s.name
		FROM books b
		LEFT JOIN authors a ON b.author_id = a.id
		LEFT JOIN shelves s ON b.shelf_id = s.id
		WHERE b.id = $1`

	row := r.db.QueryRow(ctx, query, id)
	item, err := scanBookListItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("book", id.String())
		}
		return nil, fmt.Errorf("failed to get book detail: %w", err)
	}

	tagsByBook, err := r.tagsForBooks(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	item.Tags = tagsByBook[id]
	if item.Tags == nil {
		item.Tags = []domain.Tag{}
	}

	return &domain.BookDetail{BookListItem: *item}, nil
}

// List retrieves a page of books ordered by title, joined with author and
// shelf names. Tags for the whole page are fetched with one batched query.
func (r *PgBookRepository) List(ctx context.Context, req pagination.Request, query string) ([]*domain.BookListItem, pagination.Pagination, error) {
	req = req.Normalize()

	var conditions []string
	var args []interface{}
	argIndex := 1

	if cond, condArgs, next := searchCondition("b.title", query, argIndex); cond != "" {
		conditions = append(conditions, cond)
		args = append(args, condArgs...)
		argIndex = next
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM books b %s", whereClause)
	var totalCount int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, pagination.Pagination{}, fmt.Errorf("failed to count books: %w", err)
	}

	page := pagination.Paginate(totalCount, req)

	selectQuery := fmt.Sprintf(`
		SELECT b.id, b.title, b.cover_path, b.short_description, b.full_description,
			b.author_id, b.shelf_id, a.name, s.name
		FROM books b
		LEFT JOIN authors a ON b.author_id = a.id
		LEFT JOIN shelves s ON b.shelf_id = s.id
		%s
		ORDER BY b.title ASC
		LIMIT $%d OFFSET $%d`,
		whereClause, argIndex, argIndex+1)
	args = append(args, req.PerPage, page.Offset(req.PerPage))

	rows, err := r.db.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, pagination.Pagination{}, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	items := make([]*domain.BookListItem, 0, req.PerPage)
	bookIDs := make([]uuid.UUID, 0, req.PerPage)
	for rows.Next() {
		item, err := scanBookListItemFromRows(rows)
		if err != nil {
			return nil, pagination.Pagination{}, fmt.Errorf("failed to scan book: %w", err)
		}
		items = append(items, item)
		bookIDs = append(bookIDs, item.ID)
	}

	if err := rows.Err(); err != nil {
		return nil, pagination.Pagination{}, fmt.Errorf("error iterating books: %w", err)
	}

	tagsByBook, err := r.tagsForBooks(ctx, bookIDs)
	if err != nil {
		return nil, pagination.Pagination{}, err
	}

	for _, item := range items {
		item.Tags = tagsByBook[item.ID]
		if item.Tags == nil {
			item.Tags = []domain.Tag{}
		}
	}

	return items, page, nil
}

// tagsForBooks fetches the tags of all given books in one query and groups
// them by book. Books without tags are absent from the returned map.
func (r *PgBookRepository) tagsForBooks(ctx context.Context, bookIDs []uuid.UUID) (map[uuid.UUID][]domain.Tag, error) {
	if len(bookIDs) == 0 {
		return map[uuid.UUID][]domain.Tag{}, nil
	}

	query := `
		SELECT bt.book_id, t.id, t.name
		FROM book_tags bt
		INNER JOIN tags t ON bt.tag_id = t.id
		WHERE bt.book_id = ANY($1)
		ORDER BY t.name ASC`

	rows, err := r.db.Query(ctx, query, bookIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get tags for books: %w", err)
	}
	defer rows.Close()

	tagsByBook := make(map[uuid.UUID][]domain.Tag)
	for rows.Next() {
		var bookID uuid.UUID
		var tag domain.Tag
		if err := rows.Scan(&bookID, &tag.ID, &tag.Name); err != nil {
			return nil, fmt.Errorf("failed to scan book tag: %w", err)
		}
		tagsByBook[bookID] = append(tagsByBook[bookID], tag)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating book tags: %w", err)
	}

	return tagsByBook, nil
}

// Update applies the present fields of upd to a book. A present TagIDs
// replaces the whole tag set inside the same transaction.
func (r *PgBookRepository) Update(ctx context.Context, id uuid.UUID, upd domain.BookUpdate) (*domain.Book, error) {
	var sets []string
	var args []interface{}
	argIndex := 1

	if title, ok := upd.Title.Get(); ok {
		sets = append(sets, fmt.Sprintf("title = $%d", argIndex))
		args = append(args, title)
		argIndex++
	}
	if coverPath, ok := upd.CoverPath.Get(); ok {
		sets = append(sets, fmt.Sprintf("cover_path = $%d", argIndex))
		args = append(args, coverPath)
		argIndex++
	}
	if short, ok := upd.ShortDescription.Get(); ok {
		sets = append(sets, fmt.Sprintf("short_description = $%d", argIndex))
		args = append(args, short)
		argIndex++
	}
	if full, ok := upd.FullDescription.Get(); ok {
		sets = append(sets, fmt.Sprintf("full_description = $%d", argIndex))
		args = append(args, full)
		argIndex++
	}
	if authorID, ok := upd.AuthorID.Get(); ok {
		sets = append(sets, fmt.Sprintf("author_id = $%d", argIndex))
		args = append(args, authorID)
		argIndex++
	}
	if shelfID, ok := upd.ShelfID.Get(); ok {
		sets = append(sets, fmt.Sprintf("shelf_id = $%d", argIndex))
		args = append(args, shelfID)
		argIndex++
	}

	tagIDs, replaceTags := upd.TagIDs.Get()

	if len(sets) == 0 && !replaceTags {
		return r.GetByID(ctx, id)
	}

	var book *domain.Book
	err := inTx(ctx, r.db, func(tx pgx.Tx) error {
		var row pgx.Row
		if len(sets) > 0 {
			query := fmt.Sprintf(`
				UPDATE books
				SET %s
				WHERE id = $%d
				RETURNING id, title, cover_path, short_description, full_description, author_id, shelf_id`,
				strings.Join(sets, ", "), argIndex)
			args = append(args, id)
			row = tx.QueryRow(ctx, query, args...)
		} else {
			// Tag-only update still has to notice a missing book.
			query := `
				SELECT id, title, cover_path, short_description, full_description, author_id, shelf_id
				FROM books
				WHERE id = $1`
			row = tx.QueryRow(ctx, query, id)
		}

		scanned, err := scanBook(row)
		if err != nil {
			return err
		}
		book = scanned

		if replaceTags {
			if _, err := tx.Exec(ctx, `DELETE FROM book_tags WHERE book_id = $1`, id); err != nil {
				return fmt.Errorf("failed to clear book tags: %w", err)
			}
			return insertBookTags(ctx, tx, id, tagIDs)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("book", id.String())
		}
		if isForeignKeyViolation(err) {
			return nil, domain.NewForeignKeyError("book", "author, shelf or tag")
		}
		return nil, fmt.Errorf("failed to update book: %w", err)
	}

	return book, nil
}

// Delete removes a book; association rows cascade away in the store.
func (r *PgBookRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	var found bool

	err := inTx(ctx, r.db, func(tx pgx.Tx) error {
		result, err := tx.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete book: %w", err)
		}

		found = result.RowsAffected() > 0
		return nil
	})
	if err != nil {
		return false, err
	}

	return found, nil
}

// insertBookTags bulk-inserts association rows for a book. A no-op for an
// empty tag list.
func insertBookTags(ctx context.Context, tx pgx.Tx, bookID uuid.UUID, tagIDs []uuid.UUID) error {
	if len(tagIDs) == 0 {
		return nil
	}

	var valueStrings []string
	var args []interface{}
	for i, tagID := range tagIDs {
		valueStrings = append(valueStrings, fmt.Sprintf("($%d, $%d)", i*2+1, i*2+2))
		args = append(args, bookID, tagID)
	}

	query := fmt.Sprintf(`
		INSERT INTO book_tags (book_id, tag_id)
		VALUES %s
		ON CONFLICT (book_id, tag_id) DO NOTHING`,
		strings.Join(valueStrings, ", "))

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert book tags: %w", err)
	}

	return nil
}

// bookScanDest holds the destination pointers for scanning a book row.
type bookScanDest struct {
	book domain.Book
}

// destinations returns the slice of pointers for Scan operations.
func (d *bookScanDest) destinations() []interface{} {
	return []interface{}{
		&d.book.ID, &d.book.Title, &d.book.CoverPath,
		&d.book.ShortDescription, &d.book.FullDescription,
		&d.book.AuthorID, &d.book.ShelfID,
	}
}

// scanBook scans a single row into a Book.
func scanBook(row pgx.Row) (*domain.Book, error) {
	var dest bookScanDest
	if err := row.Scan(dest.destinations()...); err != nil {
		return nil, err
	}
	return &dest.book, nil
}

// bookListScanDest holds the destination pointers for scanning a joined
// book listing row.
type bookListScanDest struct {
	item domain.BookListItem
}

// destinations returns the slice of pointers for Scan operations.
func (d *bookListScanDest) destinations() []interface{} {
	return []interface{}{
		&d.item.ID, &d.item.Title, &d.item.CoverPath,
		&d.item.ShortDescription, &d.item.FullDescription,
		&d.item.AuthorID, &d.item.ShelfID,
		&d.item.AuthorName, &d.item.ShelfName,
	}
}

// scanBookListItem scans a single joined row into a BookListItem.
func scanBookListItem(row pgx.Row) (*domain.BookListItem, error) {
	var dest bookListScanDest
	if err := row.Scan(dest.destinations()...); err != nil {
		return nil, err
	}
	return &dest.item, nil
}

// scanBookListItemFromRows scans the current row from pgx.Rows into a BookListItem.
func scanBookListItemFromRows(rows pgx.Rows) (*domain.BookListItem, error) {
	var dest bookListScanDest
	if err := rows.Scan(dest.destinations()...); err != nil {
		return nil, err
	}
	return &dest.item, nil
}
