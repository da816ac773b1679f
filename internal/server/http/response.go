package httpserver

import (
	"github.com/google/uuid"

	"github.com/shelfmark/catalog-service/internal/domain"
	"github.com/shelfmark/catalog-service/internal/pagination"
)

type authorResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type authorListResponse struct {
	Authors    []authorResponse      `json:"authors"`
	Pagination pagination.Pagination `json:"pagination"`
}

type cabinetResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type cabinetListResponse struct {
	Cabinets   []cabinetResponse     `json:"cabinets"`
	Pagination pagination.Pagination `json:"pagination"`
}

type shelfResponse struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	CabinetID *uuid.UUID `json:"cabinet_id"`
}

type shelfWithCabinetResponse struct {
	shelfResponse
	CabinetName *string `json:"cabinet_name"`
}

type shelfListResponse struct {
	Shelves    []shelfWithCabinetResponse `json:"shelves"`
	Pagination pagination.Pagination      `json:"pagination"`
}

type tagResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type tagListResponse struct {
	Tags       []tagResponse         `json:"tags"`
	Pagination pagination.Pagination `json:"pagination"`
}

type bookResponse struct {
	ID               uuid.UUID  `json:"id"`
	Title            string     `json:"title"`
	CoverPath        *string    `json:"cover_path"`
	ShortDescription *string    `json:"short_description"`
	FullDescription  *string    `json:"full_description"`
	AuthorID         *uuid.UUID `json:"author_id"`
	ShelfID          *uuid.UUID `json:"shelf_id"`
}

type bookListItemResponse struct {
	bookResponse
	AuthorName *string       `json:"author_name"`
	ShelfName  *string       `json:"shelf_name"`
	Tags       []tagResponse `json:"tags"`
}

type bookListResponse struct {
	Books      []bookListItemResponse `json:"books"`
	Pagination pagination.Pagination  `json:"pagination"`
}

func domainAuthorToResponse(a *domain.Author) authorResponse {
	return authorResponse{ID: a.ID, Name: a.Name}
}

func domainCabinetToResponse(c *domain.Cabinet) cabinetResponse {
	return cabinetResponse{ID: c.ID, Name: c.Name}
}

func domainShelfToResponse(s *domain.Shelf) shelfResponse {
	return shelfResponse{ID: s.ID, Name: s.Name, CabinetID: s.CabinetID}
}

func domainShelfWithCabinetToResponse(s *domain.ShelfWithCabinet) shelfWithCabinetResponse {
	return shelfWithCabinetResponse{
		shelfResponse: domainShelfToResponse(&s.Shelf),
		CabinetName:   s.CabinetName,
	}
}

func domainTagToResponse(t *domain.Tag) tagResponse {
	return tagResponse{ID: t.ID, Name: t.Name}
}

func domainBookToResponse(b *domain.Book) bookResponse {
	return bookResponse{
		ID:               b.ID,
		Title:            b.Title,
		CoverPath:        b.CoverPath,
		ShortDescription: b.ShortDescription,
		FullDescription:  b.FullDescription,
		AuthorID:         b.AuthorID,
		ShelfID:          b.ShelfID,
	}
}

func domainBookListItemToResponse(b *domain.BookListItem) bookListItemResponse {
	tags := make([]tagResponse, 0, len(b.Tags))
	for i := range b.Tags {
		tags = append(tags, domainTagToResponse(&b.Tags[i]))
	}
	return bookListItemResponse{
		bookResponse: domainBookToResponse(&b.Book),
		AuthorName:   b.AuthorName,
		ShelfName:    b.ShelfName,
		Tags:         tags,
	}
}
