package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"sqlgate/internal/domain"
)

type savedQueryRequest struct {
	Name     string  `json:"name"`
	SQL      string  `json:"sql"`
	Database *string `json:"database"`
}

func savedQueryToAPI(q *domain.SavedQuery) map[string]interface{} {
	out := map[string]interface{}{
		"id":        q.ID,
		"name":      q.Name,
		"sql":       q.SQL,
		"createdAt": q.CreatedAt,
		"updatedAt": q.UpdatedAt,
	}
	if q.DatabaseID != nil {
		out["database"] = *q.DatabaseID
	}
	return out
}

func (h *APIHandler) createSavedQuery(w http.ResponseWriter, r *http.Request) {
	var req savedQueryRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	q, err := h.saved.Create(r.Context(), req.Name, req.SQL, req.Database)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, savedQueryToAPI(q))
}

func (h *APIHandler) getSavedQuery(w http.ResponseWriter, r *http.Request) {
	q, err := h.saved.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, savedQueryToAPI(q))
}

func (h *APIHandler) listSavedQueries(w http.ResponseWriter, r *http.Request) {
	queries, total, err := h.saved.List(r.Context(), pageFromQuery(r))
	if err != nil {
		h.writeError(w, err)
		return
	}

	out := make([]map[string]interface{}, len(queries))
	for i := range queries {
		out[i] = savedQueryToAPI(&queries[i])
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"savedQueries": out,
		"total":        total,
	})
}

func (h *APIHandler) updateSavedQuery(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     *string `json:"name"`
		SQL      *string `json:"sql"`
		Database *string `json:"database"`
	}
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	q, err := h.saved.Update(r.Context(), chi.URLParam(r, "id"), domain.UpdateSavedQueryRequest{
		Name:       req.Name,
		SQL:        req.SQL,
		DatabaseID: req.Database,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, savedQueryToAPI(q))
}

func (h *APIHandler) deleteSavedQuery(w http.ResponseWriter, r *http.Request) {
	if err := h.saved.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
