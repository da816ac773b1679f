package httpserver

import (
	"net/http"

	"github.com/shelfmark/catalog-service/internal/domain"
)

type createCabinetRequest struct {
	Name string `json:"name" validate:"required,min=1,max=500"`
}

type updateCabinetRequest struct {
	Name domain.Field[string] `json:"name"`
}

func (s *Server) addCabinet(w http.ResponseWriter, r *http.Request) {
	var req createCabinetRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	cabinet, err := s.cabinets.Add(r.Context(), domain.CabinetCreate{Name: req.Name})
	if err != nil {
		writeDomainError(w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, domainCabinetToResponse(cabinet))
}

func (s *Server) getCabinet(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	cabinet, err := s.cabinets.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, domainCabinetToResponse(cabinet))
}

func (s *Server) listCabinets(w http.ResponseWriter, r *http.Request) {
	req, query, err := parseListParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	cabinets, page, err := s.cabinets.List(r.Context(), req, query)
	if err != nil {
		writeDomainError(w, s.logger, err)
		return
	}

	resp := cabinetListResponse{
		Cabinets:   make([]cabinetResponse, 0, len(cabinets)),
		Pagination: page,
	}
	for _, c := range cabinets {
		resp.Cabinets = append(resp.Cabinets, domainCabinetToResponse(c))
	}
	writeJSON(w, http.StatusOK, resp)
}

// listAllCabinets serves the full unpaginated cabinet list, for pickers.
func (s *Server) listAllCabinets(w http.ResponseWriter, r *http.Request) {
	cabinets, err := s.cabinets.ListAll(r.Context())
	if err != nil {
		writeDomainError(w, s.logger, err)
		return
	}

	out := make([]cabinetResponse, 0, len(cabinets))
	for _, c := range cabinets {
		out = append(out, domainCabinetToResponse(c))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"cabinets": out})
}

func (s *Server) updateCabinet(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req updateCabinetRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	cabinet, err := s.cabinets.Update(r.Context(), id, domain.CabinetUpdate{Name: req.Name})
	if err != nil {
		writeDomainError(w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, domainCabinetToResponse(cabinet))
}

func (s *Server) deleteCabinet(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	found, err := s.cabinets.Delete(r.Context(), id)
	if err != nil {
		writeDomainError(w, s.logger, err)
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "cabinet not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
