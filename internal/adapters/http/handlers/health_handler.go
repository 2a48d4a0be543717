package handlers

import (
	"net/http"

	"github.com/irebix/LayerVisSync/internal/adapters/http/dto"
	"github.com/irebix/LayerVisSync/internal/ports"
)

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	registry ports.HealthRegistry
}

// NewHealthHandler returns a HealthHandler reporting on registry.
func NewHealthHandler(registry ports.HealthRegistry) *HealthHandler {
	return &HealthHandler{registry: registry}
}

// Liveness handles GET /health/live. The process answering is enough.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, dto.HealthResponse{Status: dto.HealthOK})
}

// Readiness handles GET /health/ready: 200 when every registered check
// passes, 503 with the failing check messages otherwise.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	resp := dto.ToReadinessResponse(h.registry.CheckAll(r.Context()))

	code := http.StatusOK
	if resp.Status != dto.HealthReady {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, r, code, resp)
}
