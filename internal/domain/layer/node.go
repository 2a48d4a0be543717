package layer

import (
	"errors"
	"strings"

	"github.com/irebix/LayerVisSync/internal/domain"
)

// Node is a detached snapshot of a layer subtree.
type Node struct {
	ID       ID
	Name     string
	Visible  bool
	Selected bool
	Tag      string
	Children []Node
}

// Spec describes a layer to create through the host's native editing.
// A zero Parent adds the layer at the top level.
type Spec struct {
	Name    string
	Visible bool
	Parent  ID
}

// Validate checks that the spec can be applied.
func (s Spec) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return domain.NewValidationError("name", "must not be empty")
	}
	if s.Parent < 0 {
		return domain.NewValidationError("parent", "must not be negative")
	}
	return nil
}

// Patch is a partial native edit of a layer. Nil fields are left unchanged.
// A Parent of zero moves the layer to the top level.
type Patch struct {
	Name    *string
	Visible *bool
	Parent  *ID
}

// Validate checks that the patch can be applied.
func (p Patch) Validate() error {
	var errs []error
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		errs = append(errs, domain.NewValidationError("name", "must not be empty"))
	}
	if p.Parent != nil && *p.Parent < 0 {
		errs = append(errs, domain.NewValidationError("parent", "must not be negative"))
	}
	if p.Name == nil && p.Visible == nil && p.Parent == nil {
		errs = append(errs, domain.NewValidationError("patch", "must change at least one field"))
	}
	return errors.Join(errs...)
}
