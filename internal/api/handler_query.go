package api

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"sort"
	"strconv"

	"github.com/go-chi/chi/v5"

	"sqlgate/internal/domain"
)

type executeQueryRequest struct {
	SQL      string `json:"sql"`
	Database string `json:"database"`
}

// executeQuery handles POST /query: free-form SQL through the gateway.
func (h *APIHandler) executeQuery(w http.ResponseWriter, r *http.Request) {
	var req executeQueryRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeQueryError(w, err)
		return
	}

	outcome, err := h.gateway.RunQuery(r.Context(), req.Database, req.SQL)
	if err != nil {
		h.writeQueryError(w, err)
		return
	}

	resp := map[string]interface{}{
		"results":       outcome.Rows,
		"executionTime": outcome.ElapsedMs,
		"rowCount":      outcome.RowCount,
		"cached":        outcome.FromCache,
	}
	if outcome.Changes != nil {
		resp["changes"] = *outcome.Changes
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// exportQueryCSV handles GET /query/export?database&sql: the same gateway
// path (cache included) rendered as a CSV download.
func (h *APIHandler) exportQueryCSV(w http.ResponseWriter, r *http.Request) {
	database := r.URL.Query().Get("database")
	sqlText := r.URL.Query().Get("sql")

	outcome, err := h.gateway.RunQuery(r.Context(), database, sqlText)
	if err != nil {
		h.writeQueryError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="query-results.csv"`)

	cw := csv.NewWriter(w)
	header := columnOrder(outcome.Rows)
	if err := cw.Write(header); err != nil {
		h.logger.Warn("write csv header failed", "error", err)
		return
	}
	for _, row := range outcome.Rows {
		record := make([]string, len(header))
		for i, col := range header {
			record[i] = formatCSVValue(row[col])
		}
		if err := cw.Write(record); err != nil {
			h.logger.Warn("write csv row failed", "error", err)
			return
		}
	}
	cw.Flush()
}

// browseTable handles GET /databases/{id}/tables/{name}/rows.
func (h *APIHandler) browseTable(w http.ResponseWriter, r *http.Request) {
	databaseID := chi.URLParam(r, "id")
	tableName := chi.URLParam(r, "name")

	limit := 50
	offset := 0
	var err error
	if v := r.URL.Query().Get("limit"); v != "" {
		if limit, err = strconv.Atoi(v); err != nil {
			h.writeQueryError(w, domain.ErrValidation("limit must be an integer"))
			return
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if offset, err = strconv.Atoi(v); err != nil {
			h.writeQueryError(w, domain.ErrValidation("offset must be an integer"))
			return
		}
	}

	result, err := h.browse.Browse(r.Context(), databaseID, tableName, limit, offset)
	if err != nil {
		h.writeQueryError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"rows":     result.Rows,
		"rowCount": result.RowCount,
		"pageSize": result.PageSize,
	})
}

// columnOrder returns a stable header for rows whose maps carry no column
// ordering: every key seen across the result, sorted.
func columnOrder(rows []domain.Row) []string {
	seen := map[string]struct{}{}
	for _, row := range rows {
		for col := range row {
			seen[col] = struct{}{}
		}
	}
	cols := make([]string, 0, len(seen))
	for col := range seen {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	return cols
}

func formatCSVValue(v interface{}) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}
