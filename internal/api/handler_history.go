package api

import "net/http"

// listHistory handles GET /history?limit&offset.
func (h *APIHandler) listHistory(w http.ResponseWriter, r *http.Request) {
	entries, total, err := h.history.List(r.Context(), pageFromQuery(r))
	if err != nil {
		h.writeError(w, err)
		return
	}

	out := make([]map[string]interface{}, len(entries))
	for i, e := range entries {
		item := map[string]interface{}{
			"id":          e.ID,
			"database":    e.DatabaseID,
			"fingerprint": e.Fingerprint,
			"status":      e.Status,
			"rowCount":    e.RowCount,
			"durationMs":  e.DurationMs,
			"createdAt":   e.CreatedAt,
		}
		if e.ErrorMessage != nil {
			item["error"] = *e.ErrorMessage
		}
		out[i] = item
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"history": out,
		"total":   total,
	})
}
