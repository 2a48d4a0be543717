package dto

import (
	"fmt"
	"strings"

	"github.com/irebix/LayerVisSync/internal/domain"
	"github.com/irebix/LayerVisSync/internal/domain/layer"
)

const (
	msgRequired     = "is required"
	msgMustNotEmpty = "must not be empty"
	msgNotNegative  = "must not be negative"
)

// SetGroupVisibilityRequest is the body of PUT /api/v1/groups/{index}/visibility.
type SetGroupVisibilityRequest struct {
	Visible *bool `json:"visible"`
}

// Validate checks that the target state is present.
func (r *SetGroupVisibilityRequest) Validate() error {
	if r.Visible == nil {
		return domain.NewValidationError("visible", msgRequired)
	}
	return nil
}

// CreateLayerRequest is the body of POST /api/v1/document/layers.
// Visible defaults to true; a zero Parent adds a top-level layer.
type CreateLayerRequest struct {
	Name    string `json:"name"`
	Visible *bool  `json:"visible,omitempty"`
	Parent  int64  `json:"parent,omitempty"`
}

// Validate checks that required fields are present.
func (r *CreateLayerRequest) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(r.Name) == "" {
		fields["name"] = msgRequired
	}
	if r.Parent < 0 {
		fields["parent"] = msgNotNegative
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// ToSpec converts the request to a layer.Spec.
func (r *CreateLayerRequest) ToSpec() layer.Spec {
	visible := true
	if r.Visible != nil {
		visible = *r.Visible
	}
	return layer.Spec{Name: r.Name, Visible: visible, Parent: layer.ID(r.Parent)}
}

// UpdateLayerRequest is the body of PATCH /api/v1/document/layers/{id}.
// All fields are optional; nil means "do not change this field.".
type UpdateLayerRequest struct {
	Name    *string `json:"name,omitempty"`
	Visible *bool   `json:"visible,omitempty"`
	Parent  *int64  `json:"parent,omitempty"`
}

// Validate checks that any provided fields have valid values and that at
// least one field is set.
func (r *UpdateLayerRequest) Validate() error {
	fields := make(map[string]string)

	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		fields["name"] = msgMustNotEmpty
	}
	if r.Parent != nil && *r.Parent < 0 {
		fields["parent"] = msgNotNegative
	}
	if r.Name == nil && r.Visible == nil && r.Parent == nil {
		fields["body"] = "must change at least one of name, visible, parent"
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// ToPatch converts the request to a layer.Patch.
func (r *UpdateLayerRequest) ToPatch() layer.Patch {
	p := layer.Patch{Name: r.Name, Visible: r.Visible}
	if r.Parent != nil {
		parent := layer.ID(*r.Parent)
		p.Parent = &parent
	}
	return p
}

// SelectionRequest is the body of PUT /api/v1/document/selection. An empty
// list clears the selection.
type SelectionRequest struct {
	IDs []int64 `json:"ids"`
}

// Validate checks that every id is positive and listed once.
func (r *SelectionRequest) Validate() error {
	if r.IDs == nil {
		return domain.NewValidationError("ids", msgRequired)
	}

	fields := make(map[string]string)
	seen := make(map[int64]bool, len(r.IDs))
	for i, id := range r.IDs {
		field := fmt.Sprintf("ids[%d]", i)
		switch {
		case id <= 0:
			fields[field] = "must be positive"
		case seen[id]:
			fields[field] = fmt.Sprintf("duplicate id %d", id)
		}
		seen[id] = true
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// LayerIDs converts the request ids to layer ids.
func (r *SelectionRequest) LayerIDs() []layer.ID {
	ids := make([]layer.ID, len(r.IDs))
	for i, id := range r.IDs {
		ids[i] = layer.ID(id)
	}
	return ids
}
