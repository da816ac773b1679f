package httpserver

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/shelfmark/catalog-service/internal/domain"
)

type createShelfRequest struct {
	Name      string     `json:"name" validate:"required,min=1,max=500"`
	CabinetID *uuid.UUID `json:"cabinet_id"`
}

type updateShelfRequest struct {
	Name      domain.Field[string]     `json:"name"`
	CabinetID domain.Field[*uuid.UUID] `json:"cabinet_id"`
}

func (s *Server) addShelf(w http.ResponseWriter, r *http.Request) {
	var req createShelfRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	shelf, err := s.shelves.Add(r.Context(), domain.ShelfCreate{
		Name:      req.Name,
		CabinetID: req.CabinetID,
	})
	if err != nil {
		writeDomainError(w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, domainShelfToResponse(shelf))
}

func (s *Server) getShelf(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	shelf, err := s.shelves.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, domainShelfToResponse(shelf))
}

func (s *Server) listShelves(w http.ResponseWriter, r *http.Request) {
	req, query, err := parseListParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	shelves, page, err := s.shelves.List(r.Context(), req, query)
	if err != nil {
		writeDomainError(w, s.logger, err)
		return
	}

	resp := shelfListResponse{
		Shelves:    make([]shelfWithCabinetResponse, 0, len(shelves)),
		Pagination: page,
	}
	for _, sh := range shelves {
		resp.Shelves = append(resp.Shelves, domainShelfWithCabinetToResponse(sh))
	}
	writeJSON(w, http.StatusOK, resp)
}

// listAllShelves serves the full unpaginated shelf list, for pickers.
func (s *Server) listAllShelves(w http.ResponseWriter, r *http.Request) {
	shelves, err := s.shelves.ListAll(r.Context())
	if err != nil {
		writeDomainError(w, s.logger, err)
		return
	}

	out := make([]shelfWithCabinetResponse, 0, len(shelves))
	for _, sh := range shelves {
		out = append(out, domainShelfWithCabinetToResponse(sh))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"shelves": out})
}

func (s *Server) updateShelf(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req updateShelfRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	shelf, err := s.shelves.Update(r.Context(), id, domain.ShelfUpdate{
		Name:      req.Name,
		CabinetID: req.CabinetID,
	})
	if err != nil {
		writeDomainError(w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, domainShelfToResponse(shelf))
}

func (s *Server) deleteShelf(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	found, err := s.shelves.Delete(r.Context(), id)
	if err != nil {
		writeDomainError(w, s.logger, err)
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "shelf not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
