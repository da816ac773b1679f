// Package domain contains the core entity types of the catalog service and
// the errors shared across layers.
package domain

import (
	"github.com/google/uuid"
)

// Author represents a book author.
type Author struct {
	// ID is the primary key for this author.
	ID uuid.UUID

	// Name is the author's display name.
	Name string
}

// Cabinet represents a physical cabinet holding shelves.
type Cabinet struct {
	// ID is the primary key for this cabinet.
	ID uuid.UUID

	// Name is the cabinet's label.
	Name string
}

// Shelf represents a shelf, optionally placed inside a cabinet.
type Shelf struct {
	// ID is the primary key for this shelf.
	ID uuid.UUID

	// Name is the shelf's label.
	Name string

	// CabinetID references the cabinet holding this shelf. Nil when the shelf
	// is not assigned to any cabinet.
	CabinetID *uuid.UUID
}

// ShelfWithCabinet is a shelf joined with the name of its cabinet for listings.
type ShelfWithCabinet struct {
	Shelf

	// CabinetName is the name of the cabinet holding this shelf.
	// Nil when the shelf is not assigned to any cabinet.
	CabinetName *string
}

// Tag represents a label that can be attached to any number of books.
// Tag names are unique across the catalog.
type Tag struct {
	// ID is the primary key for this tag.
	ID uuid.UUID

	// Name is the tag's unique label.
	Name string
}

// Book represents a catalogued book.
type Book struct {
	// ID is the primary key for this book.
	ID uuid.UUID

	// Title is the book's title.
	Title string

	// CoverPath is the relative path to the stored cover image, if any.
	CoverPath *string

	// ShortDescription is a brief summary shown in listings.
	ShortDescription *string

	// FullDescription is the complete description shown on detail pages.
	FullDescription *string

	// AuthorID references the book's author. Nil when unknown.
	AuthorID *uuid.UUID

	// ShelfID references the shelf the book is placed on. Nil when unplaced.
	ShelfID *uuid.UUID
}

// BookListItem is a book joined with its author name, shelf name and tags,
// as assembled for paginated listings.
type BookListItem struct {
	Book

	// AuthorName is the name of the book's author, nil when the book has none.
	AuthorName *string

	// ShelfName is the name of the shelf the book sits on, nil when unplaced.
	ShelfName *string

	// Tags holds the book's tags. Always non-nil, empty for untagged books.
	Tags []Tag
}

// BookDetail is the fully assembled view of a single book.
type BookDetail struct {
	BookListItem
}

// AuthorCreate holds the fields for creating an author.
type AuthorCreate struct {
	Name string
}

// AuthorUpdate holds the updatable fields of an author. Only fields that were
// present in the request are applied.
type AuthorUpdate struct {
	Name Field[string]
}

// CabinetCreate holds the fields for creating a cabinet.
type CabinetCreate struct {
	Name string
}

// CabinetUpdate holds the updatable fields of a cabinet.
type CabinetUpdate struct {
	Name Field[string]
}

// ShelfCreate holds the fields for creating a shelf.
type ShelfCreate struct {
	Name      string
	CabinetID *uuid.UUID
}

// ShelfUpdate holds the updatable fields of a shelf. CabinetID distinguishes
// an explicit null (detach from cabinet) from an omitted field.
type ShelfUpdate struct {
	Name      Field[string]
	CabinetID Field[*uuid.UUID]
}

// TagCreate holds the fields for creating a tag.
type TagCreate struct {
	Name string
}

// TagUpdate holds the updatable fields of a tag.
type TagUpdate struct {
	Name Field[string]
}

// BookCreate holds the fields for creating a book.
type BookCreate struct {
	Title            string
	CoverPath        *string
	ShortDescription *string
	FullDescription  *string
	AuthorID         *uuid.UUID
	ShelfID          *uuid.UUID
	TagIDs           []uuid.UUID
}

// BookUpdate holds the updatable fields of a book. A present TagIDs, even an
// empty one, replaces the book's whole tag set; an absent TagIDs leaves the
// tag set untouched.
type BookUpdate struct {
	Title            Field[string]
	CoverPath        Field[*string]
	ShortDescription Field[*string]
	FullDescription  Field[*string]
	AuthorID         Field[*uuid.UUID]
	ShelfID          Field[*uuid.UUID]
	TagIDs           Field[[]uuid.UUID]
}
