package handlers

import (
	"net/http"
	"time"

	"github.com/morada-labs/morada/pkg/listing/store"
)

// HealthHandler handles liveness and readiness endpoints.
type HealthHandler struct {
	store   store.Store
	version string
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(s store.Store, version string) *HealthHandler {
	return &HealthHandler{store: s, version: version}
}

// HealthResponse is the body returned by the health endpoints.
type HealthResponse struct {
	Status    string    `json:"status"`
	Version   string    `json:"version,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Error     string    `json:"error,omitempty"`
}

// Health handles GET /health. Liveness only, no dependencies checked.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	WriteJSONOK(w, HealthResponse{
		Status:    "healthy",
		Version:   h.version,
		Timestamp: time.Now().UTC(),
	})
}

// Ready handles GET /health/ready. Verifies the database connection.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		WriteJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:    "unhealthy",
			Timestamp: time.Now().UTC(),
			Error:     "database unreachable",
		})
		return
	}

	WriteJSONOK(w, HealthResponse{
		Status:    "healthy",
		Version:   h.version,
		Timestamp: time.Now().UTC(),
	})
}
