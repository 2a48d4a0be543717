// Package layer defines the capability interface through which the sync
// engine sees host document layers, plus the write directives it sends back.
package layer

import (
	"fmt"
	"strings"
)

// ID is the host-assigned layer identity. It is stable for the lifetime of a
// layer and unique within a document.
type ID int64

// PathSeparator joins ancestor names in a layer path.
const PathSeparator = " / "

// Handle is the view of a live host layer. Handles are owned by the host and
// referenced, never owned, by the engine. Reads reflect the host's current
// state at call time.
type Handle interface {
	ID() ID
	Name() string
	Visible() bool
	Selected() bool
	Tag() string

	// SetVisible writes the visibility flag. Hosts only accept it inside an
	// exclusive transaction.
	SetVisible(visible bool) error

	// Parent returns nil for top-level layers.
	Parent() Handle

	// Children returns nested layers in host order. Leaf layers return an
	// empty slice.
	Children() []Handle
}

// Info is a detached snapshot of a layer for presentation.
type Info struct {
	ID       ID
	Name     string
	Path     string
	Visible  bool
	Selected bool
}

// Describe snapshots h.
func Describe(h Handle) Info {
	return Info{
		ID:       h.ID(),
		Name:     h.Name(),
		Path:     Path(h),
		Visible:  h.Visible(),
		Selected: h.Selected(),
	}
}

// Path returns the ancestor names of h, outermost first, joined with
// PathSeparator.
func Path(h Handle) string {
	var names []string
	for cur := h; cur != nil; cur = cur.Parent() {
		names = append(names, cur.Name())
	}
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return strings.Join(names, PathSeparator)
}

// Field names a writable layer attribute.
type Field string

// Writable fields.
const (
	FieldVisible Field = "visible"
	FieldTag     Field = "tag"
)

// Directive is one entry of a batched host write.
type Directive struct {
	Target ID
	Field  Field
	Value  any
}

// SetVisible builds a visibility directive.
func SetVisible(id ID, visible bool) Directive {
	return Directive{Target: id, Field: FieldVisible, Value: visible}
}

// SetTag builds a marker-tag directive. An empty tag clears the marker.
func SetTag(id ID, tag string) Directive {
	return Directive{Target: id, Field: FieldTag, Value: tag}
}

func (d Directive) String() string {
	return fmt.Sprintf("set layer %d %s=%v", d.Target, d.Field, d.Value)
}
