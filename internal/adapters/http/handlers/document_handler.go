package handlers

import (
	"net/http"

	"github.com/irebix/LayerVisSync/internal/adapters/http/dto"
	"github.com/irebix/LayerVisSync/internal/ports"
)

// DocumentHandler exposes host-native document edits. These requests stand
// in for the host's own UI: they change the document directly and the sync
// engine only notices through its detection and refresh ticks.
type DocumentHandler struct {
	editor ports.DocumentEditor
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(editor ports.DocumentEditor) *DocumentHandler {
	return &DocumentHandler{editor: editor}
}

// Tree handles GET /api/v1/document/layers.
func (h *DocumentHandler) Tree(w http.ResponseWriter, r *http.Request) {
	nodes, err := h.editor.Tree(r.Context())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ToTreeResponse(nodes))
}

// AddLayer handles POST /api/v1/document/layers.
func (h *DocumentHandler) AddLayer(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateLayerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	id, err := h.editor.AddLayer(r.Context(), req.ToSpec())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.CreatedLayerResponse{ID: int64(id)})
}

// UpdateLayer handles PATCH /api/v1/document/layers/{id}.
func (h *DocumentHandler) UpdateLayer(w http.ResponseWriter, r *http.Request) {
	id, err := parseLayerID(r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.UpdateLayerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.editor.UpdateLayer(r.Context(), id, req.ToPatch()); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RemoveLayer handles DELETE /api/v1/document/layers/{id}.
func (h *DocumentHandler) RemoveLayer(w http.ResponseWriter, r *http.Request) {
	id, err := parseLayerID(r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	if err := h.editor.RemoveLayer(r.Context(), id); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Select handles PUT /api/v1/document/selection.
func (h *DocumentHandler) Select(w http.ResponseWriter, r *http.Request) {
	var req dto.SelectionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.editor.Select(r.Context(), req.LayerIDs()); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
