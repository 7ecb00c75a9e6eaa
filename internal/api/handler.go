// Package api implements the HTTP surface of the gateway.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"sqlgate/internal/domain"
	"sqlgate/internal/service/credential"
	"sqlgate/internal/service/query"
	"sqlgate/internal/service/registry"
	"sqlgate/internal/service/workspace"
)

// APIHandler holds the services backing the HTTP routes.
type APIHandler struct {
	gateway     *query.GatewayService
	browse      *query.BrowseService
	credentials *credential.Service
	registry    *registry.Service
	saved       *workspace.SavedQueryService
	history     *workspace.HistoryService
	logger      *slog.Logger
}

// NewHandler creates an APIHandler.
func NewHandler(
	gateway *query.GatewayService,
	browse *query.BrowseService,
	credentials *credential.Service,
	reg *registry.Service,
	saved *workspace.SavedQueryService,
	history *workspace.HistoryService,
	logger *slog.Logger,
) *APIHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &APIHandler{
		gateway:     gateway,
		browse:      browse,
		credentials: credentials,
		registry:    reg,
		saved:       saved,
		history:     history,
		logger:      logger,
	}
}

// Routes registers all API routes on the given router.
func (h *APIHandler) Routes(r chi.Router) {
	r.Post("/query", h.executeQuery)
	r.Get("/query/export", h.exportQueryCSV)

	r.Get("/databases", h.listDatabases)
	r.Post("/databases/sync", h.syncDatabases)
	r.Get("/databases/{id}/schema", h.describeSchema)
	r.Get("/databases/{id}/tables/{name}/rows", h.browseTable)

	r.Get("/credentials", h.getCredential)
	r.Put("/credentials", h.setCredential)
	r.Delete("/credentials", h.clearCredential)

	r.Get("/saved-queries", h.listSavedQueries)
	r.Post("/saved-queries", h.createSavedQuery)
	r.Get("/saved-queries/{id}", h.getSavedQuery)
	r.Put("/saved-queries/{id}", h.updateSavedQuery)
	r.Delete("/saved-queries/{id}", h.deleteSavedQuery)

	r.Get("/history", h.listHistory)
}

// writeJSON encodes v with the given status. Encoding failures are logged,
// not surfaced: headers are already gone by then.
func (h *APIHandler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn("encode response failed", "error", err)
	}
}

// writeError maps err onto the response taxonomy: 400 for validation and
// user SQL mistakes, 404/409 for CRUD surfaces, 500 for everything else with
// a generic message.
func (h *APIHandler) writeError(w http.ResponseWriter, err error) {
	status := httpStatusFromError(err)
	h.writeJSON(w, status, map[string]interface{}{
		"code":    status,
		"message": clientMessage(err),
	})
}

// writeQueryError is writeError with the well-formed outcome shape query
// consumers rely on: rows always present, never missing fields.
func (h *APIHandler) writeQueryError(w http.ResponseWriter, err error) {
	status := httpStatusFromError(err)
	h.writeJSON(w, status, map[string]interface{}{
		"code":     status,
		"message":  clientMessage(err),
		"results":  []domain.Row{},
		"rowCount": 0,
	})
}

func decodeBody(r *http.Request, v interface{}) error {
	defer r.Body.Close() //nolint:errcheck
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return domain.ErrValidation("invalid request body: %v", err)
	}
	return nil
}

// pageFromQuery extracts limit/offset pagination from query parameters.
func pageFromQuery(r *http.Request) domain.PageRequest {
	page := domain.PageRequest{}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			page.MaxResults = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			page.Skip = n
		}
	}
	return page
}
