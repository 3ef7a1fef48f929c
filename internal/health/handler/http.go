// Package handler serves liveness and readiness probes.
package handler

import (
	"net/http"

	"marketing-dashboard/backend/internal/db"
	"marketing-dashboard/backend/internal/httpx"
)

type Handler struct {
	store *db.Handle
}

// NewHandler returns a health handler probing the given store handle.
func NewHandler(store *db.Handle) *Handler {
	return &Handler{store: store}
}

type statusResponse struct {
	Status string `json:"status"`
}

// Live reports process liveness. It never touches dependencies.
func (h *Handler) Live(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}

// Ready reports whether the store is reachable. The API stays up without the
// store, but a not-ready signal lets orchestrators hold traffic during outages.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if _, err := h.store.Get(r.Context()); err != nil {
		httpx.WriteJSON(w, http.StatusServiceUnavailable, statusResponse{Status: "store unavailable"})
		return
	}
	httpx.WriteJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}
