package httpserver

import (
	"net/http"

	"github.com/shelfmark/catalog-service/internal/domain"
)

type createTagRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
}

type updateTagRequest struct {
	Name domain.Field[string] `json:"name"`
}

func (s *Server) addTag(w http.ResponseWriter, r *http.Request) {
	var req createTagRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	tag, err := s.tags.Add(r.Context(), domain.TagCreate{Name: req.Name})
	if err != nil {
		writeDomainError(w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, domainTagToResponse(tag))
}

func (s *Server) getTag(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	tag, err := s.tags.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, domainTagToResponse(tag))
}

func (s *Server) listTags(w http.ResponseWriter, r *http.Request) {
	req, query, err := parseListParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	tags, page, err := s.tags.List(r.Context(), req, query)
	if err != nil {
		writeDomainError(w, s.logger, err)
		return
	}

	resp := tagListResponse{
		Tags:       make([]tagResponse, 0, len(tags)),
		Pagination: page,
	}
	for _, t := range tags {
		resp.Tags = append(resp.Tags, domainTagToResponse(t))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) updateTag(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req updateTagRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	tag, err := s.tags.Update(r.Context(), id, domain.TagUpdate{Name: req.Name})
	if err != nil {
		writeDomainError(w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, domainTagToResponse(tag))
}

func (s *Server) deleteTag(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	found, err := s.tags.Delete(r.Context(), id)
	if err != nil {
		writeDomainError(w, s.logger, err)
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "tag not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
