//go:build integration

package integration

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfmark/catalog-service/internal/domain"
	"github.com/shelfmark/catalog-service/internal/pagination"
	"github.com/shelfmark/catalog-service/internal/repository"
)

func TestPgAuthorRepository_Integration(t *testing.T) {
	cleanTables(t, "books", "authors")
	repo := repository.NewPgAuthorRepository(testPool)
	ctx := context.Background()

	t.Run("Add and GetByID roundtrip", func(t *testing.T) {
		author, err := repo.Add(ctx, domain.AuthorCreate{Name: "Haruki Murakami"})
		require.NoError(t, err)
		require.NotEqual(t, uuid.Nil, author.ID)

		got, err := repo.GetByID(ctx, author.ID)
		require.NoError(t, err)
		assert.Equal(t, "Haruki Murakami", got.Name)
	})

	t.Run("GetByID missing returns not found", func(t *testing.T) {
		_, err := repo.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Update renames", func(t *testing.T) {
		author, err := repo.Add(ctx, domain.AuthorCreate{Name: "Banana Yoshimto"})
		require.NoError(t, err)

		updated, err := repo.Update(ctx, author.ID, domain.AuthorUpdate{
			Name: domain.NewField("Banana Yoshimoto"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Banana Yoshimoto", updated.Name)
	})

	t.Run("Empty update returns current row", func(t *testing.T) {
		author, err := repo.Add(ctx, domain.AuthorCreate{Name: "Yoko Ogawa"})
		require.NoError(t, err)

		got, err := repo.Update(ctx, author.ID, domain.AuthorUpdate{})
		require.NoError(t, err)
		assert.Equal(t, author.Name, got.Name)
	})

	t.Run("Search matches word prefixes only", func(t *testing.T) {
		cleanTables(t, "books", "authors")
		for _, name := range []string{"Kenzaburo Oe", "Kobo Abe", "Sayaka Murata"} {
			_, err := repo.Add(ctx, domain.AuthorCreate{Name: name})
			require.NoError(t, err)
		}

		// "mura" is a word prefix of "Murata" but an infix of nothing else.
		authors, _, err := repo.List(ctx, pagination.Request{Page: 1, PerPage: 10}, "mura")
		require.NoError(t, err)
		require.Len(t, authors, 1)
		assert.Equal(t, "Sayaka Murata", authors[0].Name)

		// "be" appears inside "Abe" but not at a word start.
		authors, _, err = repo.List(ctx, pagination.Request{Page: 1, PerPage: 10}, "be")
		require.NoError(t, err)
		assert.Empty(t, authors)
	})

	t.Run("Page past the end serves the last page", func(t *testing.T) {
		cleanTables(t, "books", "authors")
		for i := 0; i < 5; i++ {
			_, err := repo.Add(ctx, domain.AuthorCreate{Name: fmt.Sprintf("Author %02d", i)})
			require.NoError(t, err)
		}

		authors, page, err := repo.List(ctx, pagination.Request{Page: 99, PerPage: 2}, "")
		require.NoError(t, err)
		assert.Equal(t, 3, page.CurrentPage)
		assert.Equal(t, 3, page.TotalPages)
		require.Len(t, authors, 1)
		assert.Equal(t, "Author 04", authors[0].Name)
	})

	t.Run("Delete detaches books instead of removing them", func(t *testing.T) {
		cleanTables(t, "books", "authors")
		author, err := repo.Add(ctx, domain.AuthorCreate{Name: "Natsume Soseki"})
		require.NoError(t, err)

		bookRepo := repository.NewPgBookRepository(testPool)
		book, err := bookRepo.Add(ctx, domain.BookCreate{Title: "Kokoro", AuthorID: &author.ID})
		require.NoError(t, err)

		found, err := repo.Delete(ctx, author.ID)
		require.NoError(t, err)
		assert.True(t, found)

		got, err := bookRepo.GetByID(ctx, book.ID)
		require.NoError(t, err)
		assert.Nil(t, got.AuthorID)
	})

	t.Run("Delete missing returns false", func(t *testing.T) {
		found, err := repo.Delete(ctx, uuid.New())
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestCabinetShelfCascade_Integration(t *testing.T) {
	cleanTables(t, "books", "shelves", "cabinets")
	cabinetRepo := repository.NewPgCabinetRepository(testPool)
	shelfRepo := repository.NewPgShelfRepository(testPool)
	bookRepo := repository.NewPgBookRepository(testPool)
	ctx := context.Background()

	t.Run("Shelf joins its cabinet name", func(t *testing.T) {
		cabinet, err := cabinetRepo.Add(ctx, domain.CabinetCreate{Name: "North wall"})
		require.NoError(t, err)

		shelf, err := shelfRepo.Add(ctx, domain.ShelfCreate{Name: "A1", CabinetID: &cabinet.ID})
		require.NoError(t, err)

		shelves, err := shelfRepo.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, shelves, 1)
		assert.Equal(t, shelf.ID, shelves[0].ID)
		require.NotNil(t, shelves[0].CabinetName)
		assert.Equal(t, "North wall", *shelves[0].CabinetName)
	})

	t.Run("Shelf with unknown cabinet is rejected", func(t *testing.T) {
		missing := uuid.New()
		_, err := shelfRepo.Add(ctx, domain.ShelfCreate{Name: "B2", CabinetID: &missing})
		assert.ErrorIs(t, err, domain.ErrForeignKey)
	})

	t.Run("Cabinet delete detaches its shelves", func(t *testing.T) {
		cleanTables(t, "books", "shelves", "cabinets")
		cabinet, err := cabinetRepo.Add(ctx, domain.CabinetCreate{Name: "South wall"})
		require.NoError(t, err)
		shelf, err := shelfRepo.Add(ctx, domain.ShelfCreate{Name: "C3", CabinetID: &cabinet.ID})
		require.NoError(t, err)

		found, err := cabinetRepo.Delete(ctx, cabinet.ID)
		require.NoError(t, err)
		assert.True(t, found)

		got, err := shelfRepo.GetByID(ctx, shelf.ID)
		require.NoError(t, err)
		assert.Nil(t, got.CabinetID)
	})

	t.Run("Shelf delete detaches its books", func(t *testing.T) {
		cleanTables(t, "books", "shelves", "cabinets")
		shelf, err := shelfRepo.Add(ctx, domain.ShelfCreate{Name: "D4"})
		require.NoError(t, err)
		book, err := bookRepo.Add(ctx, domain.BookCreate{Title: "Shelved", ShelfID: &shelf.ID})
		require.NoError(t, err)

		found, err := shelfRepo.Delete(ctx, shelf.ID)
		require.NoError(t, err)
		assert.True(t, found)

		got, err := bookRepo.GetByID(ctx, book.ID)
		require.NoError(t, err)
		assert.Nil(t, got.ShelfID)
	})

	t.Run("Explicit null update detaches a shelf from its cabinet", func(t *testing.T) {
		cleanTables(t, "books", "shelves", "cabinets")
		cabinet, err := cabinetRepo.Add(ctx, domain.CabinetCreate{Name: "East wall"})
		require.NoError(t, err)
		shelf, err := shelfRepo.Add(ctx, domain.ShelfCreate{Name: "E5", CabinetID: &cabinet.ID})
		require.NoError(t, err)

		updated, err := shelfRepo.Update(ctx, shelf.ID, domain.ShelfUpdate{
			CabinetID: domain.NewField[*uuid.UUID](nil),
		})
		require.NoError(t, err)
		assert.Nil(t, updated.CabinetID)
	})
}

func TestPgTagRepository_Integration(t *testing.T) {
	cleanTables(t, "book_tags", "books", "tags")
	repo := repository.NewPgTagRepository(testPool)
	ctx := context.Background()

	t.Run("Duplicate name returns already exists", func(t *testing.T) {
		_, err := repo.Add(ctx, domain.TagCreate{Name: "sci-fi"})
		require.NoError(t, err)

		_, err = repo.Add(ctx, domain.TagCreate{Name: "sci-fi"})
		assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	})

	t.Run("GetByIDs returns tags ordered by name", func(t *testing.T) {
		cleanTables(t, "book_tags", "books", "tags")
		zeta, err := repo.Add(ctx, domain.TagCreate{Name: "zeta"})
		require.NoError(t, err)
		alpha, err := repo.Add(ctx, domain.TagCreate{Name: "alpha"})
		require.NoError(t, err)

		tags, err := repo.GetByIDs(ctx, []uuid.UUID{zeta.ID, alpha.ID})
		require.NoError(t, err)
		require.Len(t, tags, 2)
		assert.Equal(t, "alpha", tags[0].Name)
		assert.Equal(t, "zeta", tags[1].Name)
	})

	t.Run("Delete cascades book associations", func(t *testing.T) {
		cleanTables(t, "book_tags", "books", "tags")
		tag, err := repo.Add(ctx, domain.TagCreate{Name: "horror"})
		require.NoError(t, err)

		bookRepo := repository.NewPgBookRepository(testPool)
		book, err := bookRepo.Add(ctx, domain.BookCreate{Title: "Ring", TagIDs: []uuid.UUID{tag.ID}})
		require.NoError(t, err)

		found, err := repo.Delete(ctx, tag.ID)
		require.NoError(t, err)
		assert.True(t, found)

		detail, err := bookRepo.GetDetail(ctx, book.ID)
		require.NoError(t, err)
		assert.Empty(t, detail.Tags)
		assert.NotNil(t, detail.Tags)
	})
}

func TestPgBookRepository_Integration(t *testing.T) {
	cleanTables(t, "book_tags", "books", "tags", "shelves", "cabinets", "authors")
	repo := repository.NewPgBookRepository(testPool)
	authorRepo := repository.NewPgAuthorRepository(testPool)
	tagRepo := repository.NewPgTagRepository(testPool)
	ctx := context.Background()

	t.Run("Detail joins author name and tags", func(t *testing.T) {
		author, err := authorRepo.Add(ctx, domain.AuthorCreate{Name: "Stanislaw Lem"})
		require.NoError(t, err)
		tag, err := tagRepo.Add(ctx, domain.TagCreate{Name: "first-contact"})
		require.NoError(t, err)

		short := "A planet that thinks."
		book, err := repo.Add(ctx, domain.BookCreate{
			Title:            "Solaris",
			ShortDescription: &short,
			AuthorID:         &author.ID,
			TagIDs:           []uuid.UUID{tag.ID},
		})
		require.NoError(t, err)

		detail, err := repo.GetDetail(ctx, book.ID)
		require.NoError(t, err)
		require.NotNil(t, detail.AuthorName)
		assert.Equal(t, "Stanislaw Lem", *detail.AuthorName)
		require.Len(t, detail.Tags, 1)
		assert.Equal(t, "first-contact", detail.Tags[0].Name)
	})

	t.Run("Unknown tag id rejects the create", func(t *testing.T) {
		_, err := repo.Add(ctx, domain.BookCreate{
			Title:  "Phantom",
			TagIDs: []uuid.UUID{uuid.New()},
		})
		assert.ErrorIs(t, err, domain.ErrForeignKey)
	})

	t.Run("Update replaces the tag set", func(t *testing.T) {
		cleanTables(t, "book_tags", "books", "tags")
		old, err := tagRepo.Add(ctx, domain.TagCreate{Name: "old"})
		require.NoError(t, err)
		fresh, err := tagRepo.Add(ctx, domain.TagCreate{Name: "fresh"})
		require.NoError(t, err)

		book, err := repo.Add(ctx, domain.BookCreate{Title: "Retagged", TagIDs: []uuid.UUID{old.ID}})
		require.NoError(t, err)

		_, err = repo.Update(ctx, book.ID, domain.BookUpdate{
			TagIDs: domain.NewField([]uuid.UUID{fresh.ID}),
		})
		require.NoError(t, err)

		detail, err := repo.GetDetail(ctx, book.ID)
		require.NoError(t, err)
		require.Len(t, detail.Tags, 1)
		assert.Equal(t, "fresh", detail.Tags[0].Name)
	})

	t.Run("Empty tag list clears all associations", func(t *testing.T) {
		cleanTables(t, "book_tags", "books", "tags")
		tag, err := tagRepo.Add(ctx, domain.TagCreate{Name: "temp"})
		require.NoError(t, err)
		book, err := repo.Add(ctx, domain.BookCreate{Title: "Untagged soon", TagIDs: []uuid.UUID{tag.ID}})
		require.NoError(t, err)

		_, err = repo.Update(ctx, book.ID, domain.BookUpdate{
			TagIDs: domain.NewField([]uuid.UUID{}),
		})
		require.NoError(t, err)

		detail, err := repo.GetDetail(ctx, book.ID)
		require.NoError(t, err)
		assert.Empty(t, detail.Tags)
	})

	t.Run("Update without tag field leaves tags untouched", func(t *testing.T) {
		cleanTables(t, "book_tags", "books", "tags")
		tag, err := tagRepo.Add(ctx, domain.TagCreate{Name: "sticky"})
		require.NoError(t, err)
		book, err := repo.Add(ctx, domain.BookCreate{Title: "Before", TagIDs: []uuid.UUID{tag.ID}})
		require.NoError(t, err)

		_, err = repo.Update(ctx, book.ID, domain.BookUpdate{
			Title: domain.NewField("After"),
		})
		require.NoError(t, err)

		detail, err := repo.GetDetail(ctx, book.ID)
		require.NoError(t, err)
		assert.Equal(t, "After", detail.Title)
		require.Len(t, detail.Tags, 1)
	})

	t.Run("List batches tags across the page", func(t *testing.T) {
		cleanTables(t, "book_tags", "books", "tags")
		tag, err := tagRepo.Add(ctx, domain.TagCreate{Name: "shared"})
		require.NoError(t, err)

		_, err = repo.Add(ctx, domain.BookCreate{Title: "Tagged", TagIDs: []uuid.UUID{tag.ID}})
		require.NoError(t, err)
		_, err = repo.Add(ctx, domain.BookCreate{Title: "Bare"})
		require.NoError(t, err)

		books, page, err := repo.List(ctx, pagination.Request{Page: 1, PerPage: 10}, "")
		require.NoError(t, err)
		assert.Equal(t, 1, page.TotalPages)
		require.Len(t, books, 2)

		// Ordered by title: Bare, Tagged.
		assert.Empty(t, books[0].Tags)
		assert.NotNil(t, books[0].Tags)
		require.Len(t, books[1].Tags, 1)
		assert.Equal(t, "shared", books[1].Tags[0].Name)
	})

	t.Run("Delete removes the book and its associations", func(t *testing.T) {
		cleanTables(t, "book_tags", "books", "tags")
		tag, err := tagRepo.Add(ctx, domain.TagCreate{Name: "gone"})
		require.NoError(t, err)
		book, err := repo.Add(ctx, domain.BookCreate{Title: "Doomed", TagIDs: []uuid.UUID{tag.ID}})
		require.NoError(t, err)

		found, err := repo.Delete(ctx, book.ID)
		require.NoError(t, err)
		assert.True(t, found)

		_, err = repo.GetByID(ctx, book.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		// The tag itself survives.
		_, err = tagRepo.GetByID(ctx, tag.ID)
		assert.NoError(t, err)
	})
}
