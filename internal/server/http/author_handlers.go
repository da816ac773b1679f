package httpserver

import (
	"net/http"

	"github.com/shelfmark/catalog-service/internal/domain"
)

type createAuthorRequest struct {
	Name string `json:"name" validate:"required,min=1,max=500"`
}

type updateAuthorRequest struct {
	Name domain.Field[string] `json:"name"`
}

func (s *Server) addAuthor(w http.ResponseWriter, r *http.Request) {
	var req createAuthorRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	author, err := s.authors.Add(r.Context(), domain.AuthorCreate{Name: req.Name})
	if err != nil {
		writeDomainError(w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, domainAuthorToResponse(author))
}

func (s *Server) getAuthor(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	author, err := s.authors.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, domainAuthorToResponse(author))
}

func (s *Server) listAuthors(w http.ResponseWriter, r *http.Request) {
	req, query, err := parseListParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	authors, page, err := s.authors.List(r.Context(), req, query)
	if err != nil {
		writeDomainError(w, s.logger, err)
		return
	}

	resp := authorListResponse{
		Authors:    make([]authorResponse, 0, len(authors)),
		Pagination: page,
	}
	for _, a := range authors {
		resp.Authors = append(resp.Authors, domainAuthorToResponse(a))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) updateAuthor(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req updateAuthorRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	author, err := s.authors.Update(r.Context(), id, domain.AuthorUpdate{Name: req.Name})
	if err != nil {
		writeDomainError(w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, domainAuthorToResponse(author))
}

func (s *Server) deleteAuthor(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	found, err := s.authors.Delete(r.Context(), id)
	if err != nil {
		writeDomainError(w, s.logger, err)
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "author not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
