package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"sqlgate/internal/domain"
)

func databaseToAPI(d domain.Database) map[string]interface{} {
	out := map[string]interface{}{
		"id":      d.ID,
		"name":    d.Name,
		"version": d.Version,
	}
	if d.NumTables != nil {
		out["numTables"] = *d.NumTables
	}
	if d.SizeBytes != nil {
		out["sizeBytes"] = *d.SizeBytes
	}
	return out
}

// listDatabases handles GET /databases: the registry's mirrored view.
func (h *APIHandler) listDatabases(w http.ResponseWriter, r *http.Request) {
	dbs, err := h.registry.List(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	out := make([]map[string]interface{}, len(dbs))
	for i, d := range dbs {
		out[i] = databaseToAPI(d)
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"databases": out})
}

// syncDatabases handles POST /databases/sync: explicit remote discovery.
func (h *APIHandler) syncDatabases(w http.ResponseWriter, r *http.Request) {
	dbs, err := h.registry.Sync(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	out := make([]map[string]interface{}, len(dbs))
	for i, d := range dbs {
		out[i] = databaseToAPI(d)
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"databases": out})
}

// describeSchema handles GET /databases/{id}/schema.
func (h *APIHandler) describeSchema(w http.ResponseWriter, r *http.Request) {
	objects, err := h.registry.Schema(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	out := make([]map[string]interface{}, len(objects))
	for i, obj := range objects {
		out[i] = map[string]interface{}{
			"name":       obj.Name,
			"kind":       obj.Kind,
			"definition": obj.Definition,
		}
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"objects": out})
}
