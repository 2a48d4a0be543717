// Package handlers provides HTTP request handlers for the service's API endpoints.
package handlers

import (
	"net/http"

	"github.com/irebix/LayerVisSync/internal/adapters/http/dto"
	"github.com/irebix/LayerVisSync/internal/ports"
)

// SyncHandler serves the sync panel: selection, toggle and group actions.
type SyncHandler struct {
	svc ports.SyncService
}

// NewSyncHandler creates a new SyncHandler with the given service port.
func NewSyncHandler(svc ports.SyncService) *SyncHandler {
	return &SyncHandler{svc: svc}
}

// Selection handles GET /api/v1/selection.
func (h *SyncHandler) Selection(w http.ResponseWriter, r *http.Request) {
	infos, err := h.svc.SelectedLayers(r.Context())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ToSelectionResponse(infos))
}

// Status handles GET /api/v1/sync/status.
func (h *SyncHandler) Status(w http.ResponseWriter, r *http.Request) {
	status, err := h.svc.Status(r.Context())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ToStatusResponse(status))
}

// Toggle handles POST /api/v1/sync/toggle.
func (h *SyncHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ToggleSyncForSelection(r.Context())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ToToggleResponse(result))
}

// ListGroups handles GET /api/v1/groups.
func (h *SyncHandler) ListGroups(w http.ResponseWriter, r *http.Request) {
	clusters, err := h.svc.Clusters(r.Context())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ToGroupListResponse(clusters))
}

// SetGroupVisibility handles PUT /api/v1/groups/{index}/visibility.
func (h *SyncHandler) SetGroupVisibility(w http.ResponseWriter, r *http.Request) {
	index, err := parseGroupIndex(r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.SetGroupVisibilityRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	cluster, err := h.svc.SetGroupVisibility(r.Context(), index, *req.Visible)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ToGroupResponse(cluster))
}

// ToggleGroupVisibility handles POST /api/v1/groups/{index}/visibility/toggle.
func (h *SyncHandler) ToggleGroupVisibility(w http.ResponseWriter, r *http.Request) {
	index, err := parseGroupIndex(r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	cluster, err := h.svc.ToggleGroupVisibility(r.Context(), index)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ToGroupResponse(cluster))
}

// DeleteGroup handles DELETE /api/v1/groups/{index}.
func (h *SyncHandler) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	index, err := parseGroupIndex(r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	if err := h.svc.DeleteGroup(r.Context(), index); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
