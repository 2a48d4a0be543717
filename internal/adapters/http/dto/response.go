// Package dto provides HTTP request/response data transfer objects and
// RFC 9457 Problem Details error responses for the inbound HTTP adapter layer.
package dto

import (
	"time"

	"github.com/irebix/LayerVisSync/internal/domain/layer"
	"github.com/irebix/LayerVisSync/internal/domain/syncgroup"
	"github.com/irebix/LayerVisSync/internal/ports"
)

// LayerResponse represents a single layer in HTTP responses.
type LayerResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Path     string `json:"path"`
	Visible  bool   `json:"visible"`
	Selected bool   `json:"selected"`
}

// ToLayerResponse converts a layer snapshot to an HTTP response DTO.
func ToLayerResponse(info layer.Info) LayerResponse {
	return LayerResponse{
		ID:       int64(info.ID),
		Name:     info.Name,
		Path:     info.Path,
		Visible:  info.Visible,
		Selected: info.Selected,
	}
}

func toLayerResponses(infos []layer.Info) []LayerResponse {
	out := make([]LayerResponse, len(infos))
	for i, info := range infos {
		out[i] = ToLayerResponse(info)
	}
	return out
}

// SelectionResponse lists the selected layers.
type SelectionResponse struct {
	Layers []LayerResponse `json:"layers"`
	Count  int             `json:"count"`
}

// ToSelectionResponse converts selected layer snapshots to an HTTP response DTO.
func ToSelectionResponse(infos []layer.Info) SelectionResponse {
	return SelectionResponse{Layers: toLayerResponses(infos), Count: len(infos)}
}

// StatusResponse summarizes the sync session for the panel.
type StatusResponse struct {
	SessionID  string `json:"session_id"`
	DocumentID string `json:"document_id"`
	Mode       string `json:"mode"`
	Selected   int    `json:"selected"`
	Groups     int    `json:"groups"`
	Tracked    int    `json:"tracked"`
	LastTick   string `json:"last_tick,omitempty"`
	LastError  string `json:"last_error,omitempty"`
}

// ToStatusResponse converts a ports.SyncStatus to an HTTP response DTO.
func ToStatusResponse(s ports.SyncStatus) StatusResponse {
	resp := StatusResponse{
		SessionID:  s.SessionID,
		DocumentID: s.DocumentID,
		Mode:       string(s.Mode),
		Selected:   s.Selected,
		Groups:     s.Groups,
		Tracked:    s.Tracked,
		LastError:  s.LastError,
	}
	if !s.LastTick.IsZero() {
		resp.LastTick = s.LastTick.UTC().Format(time.RFC3339Nano)
	}
	return resp
}

// ToggleResponse reports what a sync toggle did.
type ToggleResponse struct {
	Mode   string  `json:"mode"`
	Layers []int64 `json:"layers"`
}

// ToToggleResponse converts a ports.ToggleResult to an HTTP response DTO.
func ToToggleResponse(r ports.ToggleResult) ToggleResponse {
	ids := make([]int64, len(r.Layers))
	for i, id := range r.Layers {
		ids[i] = int64(id)
	}
	return ToggleResponse{Mode: string(r.Mode), Layers: ids}
}

// GroupResponse represents one sync group in HTTP responses.
type GroupResponse struct {
	Index      int             `json:"index"`
	AllVisible bool            `json:"all_visible"`
	Members    []LayerResponse `json:"members"`
}

// ToGroupResponse converts a cluster to an HTTP response DTO.
func ToGroupResponse(c syncgroup.Cluster) GroupResponse {
	return GroupResponse{
		Index:      c.Index,
		AllVisible: c.AllVisible(),
		Members:    toLayerResponses(c.Members),
	}
}

// GroupListResponse lists sync groups in canonical order.
type GroupListResponse struct {
	Groups []GroupResponse `json:"groups"`
	Count  int             `json:"count"`
}

// ToGroupListResponse converts clusters to an HTTP list response DTO.
func ToGroupListResponse(clusters []syncgroup.Cluster) GroupListResponse {
	groups := make([]GroupResponse, len(clusters))
	for i, c := range clusters {
		groups[i] = ToGroupResponse(c)
	}
	return GroupListResponse{Groups: groups, Count: len(groups)}
}

// NodeResponse is one layer of the document tree.
type NodeResponse struct {
	ID       int64          `json:"id"`
	Name     string         `json:"name"`
	Visible  bool           `json:"visible"`
	Selected bool           `json:"selected"`
	Tag      string         `json:"tag,omitempty"`
	Children []NodeResponse `json:"children,omitempty"`
}

// TreeResponse is the whole document tree.
type TreeResponse struct {
	Layers []NodeResponse `json:"layers"`
}

// ToTreeResponse converts a tree snapshot to an HTTP response DTO.
func ToTreeResponse(nodes []layer.Node) TreeResponse {
	return TreeResponse{Layers: toNodeResponses(nodes)}
}

func toNodeResponses(nodes []layer.Node) []NodeResponse {
	out := make([]NodeResponse, len(nodes))
	for i, n := range nodes {
		out[i] = NodeResponse{
			ID:       int64(n.ID),
			Name:     n.Name,
			Visible:  n.Visible,
			Selected: n.Selected,
			Tag:      n.Tag,
		}
		if len(n.Children) > 0 {
			out[i].Children = toNodeResponses(n.Children)
		}
	}
	return out
}

// CreatedLayerResponse returns the host-assigned id of a new layer.
type CreatedLayerResponse struct {
	ID int64 `json:"id"`
}

// Health probe states.
const (
	HealthOK       = "ok"
	HealthReady    = "ready"
	HealthNotReady = "not_ready"
)

// HealthResponse is the body of both health probes. Checks maps each
// component to "ok" or its failure message.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// ToReadinessResponse summarizes registry results.
func ToReadinessResponse(results map[string]error) HealthResponse {
	resp := HealthResponse{Status: HealthReady, Checks: make(map[string]string, len(results))}
	for name, err := range results {
		if err != nil {
			resp.Checks[name] = err.Error()
			resp.Status = HealthNotReady
			continue
		}
		resp.Checks[name] = HealthOK
	}
	return resp
}
