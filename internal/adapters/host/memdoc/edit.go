package memdoc

import (
	"context"
	"fmt"
	"slices"

	"github.com/irebix/LayerVisSync/internal/domain"
	"github.com/irebix/LayerVisSync/internal/domain/layer"
)

// Native edits take the exclusive scope like the host UI does, so they never
// interleave with a transaction.

// Tree implements ports.DocumentEditor.
func (d *Document) Tree(ctx context.Context) ([]layer.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if d.closed.Load() {
		return nil, fmt.Errorf("document %s: %w", d.id, domain.ErrUnavailable)
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	return snapshot(d.roots), nil
}

// AddLayer implements ports.DocumentEditor. The layer is appended to its
// parent's children.
func (d *Document) AddLayer(ctx context.Context, spec layer.Spec) (layer.ID, error) {
	if err := spec.Validate(); err != nil {
		return 0, err
	}
	release, err := d.acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer release()

	d.mu.Lock()
	defer d.mu.Unlock()

	var parent *node
	if spec.Parent != 0 {
		p, ok := d.nodes[spec.Parent]
		if !ok {
			return 0, fmt.Errorf("parent layer %d: %w", spec.Parent, domain.ErrNotFound)
		}
		parent = p
	}

	n := &node{doc: d, id: d.allocID(0), name: spec.Name, visible: spec.Visible}
	d.attach(n, parent)
	d.nodes[n.id] = n
	return n.id, nil
}

// UpdateLayer implements ports.DocumentEditor.
func (d *Document) UpdateLayer(ctx context.Context, id layer.ID, patch layer.Patch) error {
	if err := patch.Validate(); err != nil {
		return err
	}
	release, err := d.acquire(ctx)
	if err != nil {
		return err
	}
	defer release()

	d.mu.Lock()
	defer d.mu.Unlock()

	n, ok := d.nodes[id]
	if !ok {
		return fmt.Errorf("layer %d: %w", id, domain.ErrNotFound)
	}

	if patch.Parent != nil {
		var parent *node
		if *patch.Parent != 0 {
			p, ok := d.nodes[*patch.Parent]
			if !ok {
				return fmt.Errorf("parent layer %d: %w", *patch.Parent, domain.ErrNotFound)
			}
			if p == n || isAncestor(n, p) {
				return domain.NewValidationError("parent", fmt.Sprintf("layer %d cannot contain itself", id))
			}
			parent = p
		}
		d.detachNode(n)
		d.attach(n, parent)
	}
	if patch.Name != nil {
		n.name = *patch.Name
	}
	if patch.Visible != nil {
		n.visible = *patch.Visible
	}
	return nil
}

// RemoveLayer implements ports.DocumentEditor.
func (d *Document) RemoveLayer(ctx context.Context, id layer.ID) error {
	release, err := d.acquire(ctx)
	if err != nil {
		return err
	}
	defer release()

	d.mu.Lock()
	defer d.mu.Unlock()

	n, ok := d.nodes[id]
	if !ok {
		return fmt.Errorf("layer %d: %w", id, domain.ErrNotFound)
	}
	d.detachNode(n)
	d.forget(n)
	return nil
}

// Select implements ports.DocumentEditor.
func (d *Document) Select(ctx context.Context, ids []layer.ID) error {
	release, err := d.acquire(ctx)
	if err != nil {
		return err
	}
	defer release()

	d.mu.Lock()
	defer d.mu.Unlock()

	want := layer.NewSet(ids...)
	for id := range want {
		if _, ok := d.nodes[id]; !ok {
			return fmt.Errorf("layer %d: %w", id, domain.ErrNotFound)
		}
	}
	for id, n := range d.nodes {
		n.selected = want.Has(id)
	}
	return nil
}

// allocID returns want when it is positive and free, otherwise the next
// unused id. d.mu must be held.
func (d *Document) allocID(want layer.ID) layer.ID {
	if want > 0 {
		if _, taken := d.nodes[want]; !taken {
			if want >= d.nextID {
				d.nextID = want + 1
			}
			return want
		}
	}
	for {
		id := d.nextID
		d.nextID++
		if _, taken := d.nodes[id]; !taken {
			return id
		}
	}
}

// attach appends n to parent, or to the top level when parent is nil.
// d.mu must be held.
func (d *Document) attach(n, parent *node) {
	n.parent = parent
	if parent == nil {
		d.roots = append(d.roots, n)
		return
	}
	parent.children = append(parent.children, n)
}

// detachNode unlinks n from its parent or from the top level.
// d.mu must be held.
func (d *Document) detachNode(n *node) {
	if n.parent == nil {
		d.roots = slices.DeleteFunc(d.roots, func(c *node) bool { return c == n })
		return
	}
	n.parent.children = slices.DeleteFunc(n.parent.children, func(c *node) bool { return c == n })
	n.parent = nil
}

// forget removes n and its descendants from the id index.
// d.mu must be held.
func (d *Document) forget(n *node) {
	stack := []*node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		delete(d.nodes, cur.id)
		stack = append(stack, cur.children...)
	}
}

// isAncestor reports whether a is an ancestor of n.
func isAncestor(a, n *node) bool {
	for p := n.parent; p != nil; p = p.parent {
		if p == a {
			return true
		}
	}
	return false
}

func snapshot(nodes []*node) []layer.Node {
	out := make([]layer.Node, len(nodes))
	for i, n := range nodes {
		out[i] = layer.Node{
			ID:       n.id,
			Name:     n.name,
			Visible:  n.visible,
			Selected: n.selected,
			Tag:      n.tag,
			Children: snapshot(n.children),
		}
	}
	return out
}
