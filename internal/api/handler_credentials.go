package api

import "net/http"

type setCredentialRequest struct {
	AccountID string `json:"accountId"`
	Token     string `json:"token"`
}

// getCredential handles GET /credentials. The token is redacted; it never
// leaves the server once stored.
func (h *APIHandler) getCredential(w http.ResponseWriter, r *http.Request) {
	cred, err := h.credentials.Describe(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	if cred == nil {
		h.writeJSON(w, http.StatusOK, map[string]interface{}{"configured": false})
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"configured": true,
		"accountId":  cred.AccountID,
		"token":      cred.Token,
		"updatedAt":  cred.UpdatedAt,
	})
}

// setCredential handles PUT /credentials: replaces the active credential set.
func (h *APIHandler) setCredential(w http.ResponseWriter, r *http.Request) {
	var req setCredentialRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	if err := h.credentials.SetActive(r.Context(), req.AccountID, req.Token); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"configured": true, "accountId": req.AccountID})
}

// clearCredential handles DELETE /credentials.
func (h *APIHandler) clearCredential(w http.ResponseWriter, r *http.Request) {
	if err := h.credentials.Clear(r.Context()); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"configured": false})
}
