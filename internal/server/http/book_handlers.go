package httpserver

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/shelfmark/catalog-service/internal/domain"
)

type createBookRequest struct {
	Title            string      `json:"title" validate:"required,min=1,max=1000"`
	ShortDescription *string     `json:"short_description"`
	FullDescription  *string     `json:"full_description"`
	AuthorID         *uuid.UUID  `json:"author_id"`
	ShelfID          *uuid.UUID  `json:"shelf_id"`
	TagIDs           []uuid.UUID `json:"tag_ids"`
}

type updateBookRequest struct {
	Title            domain.Field[string]      `json:"title"`
	ShortDescription domain.Field[*string]     `json:"short_description"`
	FullDescription  domain.Field[*string]     `json:"full_description"`
	AuthorID         domain.Field[*uuid.UUID]  `json:"author_id"`
	ShelfID          domain.Field[*uuid.UUID]  `json:"shelf_id"`
	TagIDs           domain.Field[[]uuid.UUID] `json:"tag_ids"`
}

func (s *Server) addBook(w http.ResponseWriter, r *http.Request) {
	var req createBookRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	book, err := s.books.Add(r.Context(), domain.BookCreate{
		Title:            req.Title,
		ShortDescription: req.ShortDescription,
		FullDescription:  req.FullDescription,
		AuthorID:         req.AuthorID,
		ShelfID:          req.ShelfID,
		TagIDs:           req.TagIDs,
	})
	if err != nil {
		writeDomainError(w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, domainBookToResponse(book))
}

func (s *Server) getBook(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	book, err := s.books.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, domainBookToResponse(book))
}

// getBookDetail serves a single book with its author name, shelf name and
// tags joined in.
func (s *Server) getBookDetail(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	detail, err := s.books.GetDetail(r.Context(), id)
	if err != nil {
		writeDomainError(w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, domainBookListItemToResponse(&detail.BookListItem))
}

func (s *Server) listBooks(w http.ResponseWriter, r *http.Request) {
	req, query, err := parseListParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	books, page, err := s.books.List(r.Context(), req, query)
	if err != nil {
		writeDomainError(w, s.logger, err)
		return
	}

	resp := bookListResponse{
		Books:      make([]bookListItemResponse, 0, len(books)),
		Pagination: page,
	}
	for _, b := range books {
		resp.Books = append(resp.Books, domainBookListItemToResponse(b))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) updateBook(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req updateBookRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	book, err := s.books.Update(r.Context(), id, domain.BookUpdate{
		Title:            req.Title,
		ShortDescription: req.ShortDescription,
		FullDescription:  req.FullDescription,
		AuthorID:         req.AuthorID,
		ShelfID:          req.ShelfID,
		TagIDs:           req.TagIDs,
	})
	if err != nil {
		writeDomainError(w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, domainBookToResponse(book))
}

// uploadBookCover accepts a multipart form with a "cover" file part, stores
// the image and records its path on the book.
func (s *Server) uploadBookCover(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("cover")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing cover file")
		return
	}
	defer file.Close()

	book, err := s.books.SetCover(r.Context(), id, header.Filename, file)
	if err != nil {
		writeDomainError(w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, domainBookToResponse(book))
}

func (s *Server) deleteBook(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	found, err := s.books.Delete(r.Context(), id)
	if err != nil {
		writeDomainError(w, s.logger, err)
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "book not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
