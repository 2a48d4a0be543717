// Package memdoc is an in-process model of the host document. It serves the
// Document and DocumentEditor ports: a mutable layer tree, an exclusive modal
// scope whose writes apply as one undo step, and batched directive writes.
//
// Handles returned by Layers are the document's own layer objects, so they
// stay valid across calls and always read the current state.
package memdoc

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/irebix/LayerVisSync/internal/domain"
	"github.com/irebix/LayerVisSync/internal/domain/layer"
	"github.com/irebix/LayerVisSync/internal/platform/txn"
	"github.com/irebix/LayerVisSync/internal/ports"
)

// Compile-time checks.
var (
	_ ports.Document       = (*Document)(nil)
	_ ports.DocumentEditor = (*Document)(nil)
	_ layer.Handle         = (*node)(nil)
)

// errOutsideScope is returned for writes made outside RunExclusive.
var errOutsideScope = fmt.Errorf("write outside exclusive scope: %w", domain.ErrForbidden)

// BatchHook runs before a batch is applied. A non-nil error rejects the
// whole batch.
type BatchHook func(ctx context.Context, directives []layer.Directive) error

// Step is one entry of the document's undo history.
type Step struct {
	Label  string
	Writes int
}

// Option configures a Document.
type Option func(*Document)

// WithID sets the document id. The default is "untitled".
func WithID(id string) Option {
	return func(d *Document) { d.id = id }
}

// WithBatchHook installs a hook that sees every batch before it applies.
func WithBatchHook(hook BatchHook) Option {
	return func(d *Document) { d.batchHook = hook }
}

// Document is a thread-safe layer tree.
type Document struct {
	id        string
	batchHook BatchHook

	// modal is the exclusive scope. Transactions and native edits hold it.
	modal  chan struct{}
	active atomic.Pointer[txn.Journal]
	closed atomic.Bool

	mu      sync.RWMutex
	roots   []*node
	nodes   map[layer.ID]*node
	nextID  layer.ID
	history []Step
}

// New creates an empty document.
func New(opts ...Option) *Document {
	d := &Document{
		id:     "untitled",
		modal:  make(chan struct{}, 1),
		nodes:  make(map[layer.ID]*node),
		nextID: 1,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// ID implements ports.Document.
func (d *Document) ID() string { return d.id }

// Close makes every later query fail with domain.ErrUnavailable.
func (d *Document) Close() { d.closed.Store(true) }

// Layers implements ports.Document.
func (d *Document) Layers(ctx context.Context) ([]layer.Handle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if d.closed.Load() {
		return nil, fmt.Errorf("document %s: %w", d.id, domain.ErrUnavailable)
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]layer.Handle, len(d.roots))
	for i, n := range d.roots {
		out[i] = n
	}
	return out, nil
}

// RunExclusive implements ports.Document. Writes made through BatchPlay or
// Handle.SetVisible inside fn are journaled; if fn fails or a write fails,
// the journal is undone in reverse order and no change remains.
func (d *Document) RunExclusive(ctx context.Context, label string, fn func(ctx context.Context) error) error {
	release, err := d.acquire(ctx)
	if err != nil {
		return err
	}
	defer release()

	j := txn.New(label)
	d.active.Store(j)
	defer d.active.Store(nil)

	err = fn(txn.WithJournal(ctx, j))
	if err == nil && j.Failed() {
		err = errors.New("a write in the transaction failed")
	}
	if err != nil {
		n := j.Undo(ctx)
		j.Close()
		return fmt.Errorf("%s: rolled back %d writes: %w", label, n, err)
	}

	if n := j.Close(); n > 0 {
		d.mu.Lock()
		d.history = append(d.history, Step{Label: label, Writes: n})
		d.mu.Unlock()
	}
	return nil
}

// BatchPlay implements ports.Document. The directives are validated as a
// whole before any of them applies.
func (d *Document) BatchPlay(ctx context.Context, directives []layer.Directive) error {
	j, ok := txn.FromContext(ctx)
	if !ok || j != d.active.Load() {
		return errOutsideScope
	}
	if d.batchHook != nil {
		if err := d.batchHook(ctx, directives); err != nil {
			return fmt.Errorf("batch rejected: %w", err)
		}
	}

	actions, err := d.prepare(directives)
	if err != nil {
		return err
	}
	for _, a := range actions {
		if err := j.Stage(a); err != nil {
			return err
		}
	}
	return j.Flush(ctx)
}

// History returns the undo steps committed so far, oldest first.
func (d *Document) History() []Step {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]Step, len(d.history))
	copy(out, d.history)
	return out
}

// Lookup returns the live handle for id.
func (d *Document) Lookup(id layer.ID) (layer.Handle, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	n, ok := d.nodes[id]
	if !ok {
		return nil, false
	}
	return n, true
}

// acquire takes the exclusive scope, waiting until ctx is done.
func (d *Document) acquire(ctx context.Context) (func(), error) {
	if d.closed.Load() {
		return nil, fmt.Errorf("document %s: %w", d.id, domain.ErrUnavailable)
	}
	select {
	case d.modal <- struct{}{}:
		return func() { <-d.modal }, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("acquiring exclusive scope: %w: %w", domain.ErrConflict, ctx.Err())
	}
}

// node is one layer of the document.
type node struct {
	doc      *Document
	id       layer.ID
	name     string
	visible  bool
	selected bool
	tag      string
	parent   *node
	children []*node
}

func (n *node) ID() layer.ID { return n.id }

func (n *node) Name() string {
	n.doc.mu.RLock()
	defer n.doc.mu.RUnlock()
	return n.name
}

func (n *node) Visible() bool {
	n.doc.mu.RLock()
	defer n.doc.mu.RUnlock()
	return n.visible
}

func (n *node) Selected() bool {
	n.doc.mu.RLock()
	defer n.doc.mu.RUnlock()
	return n.selected
}

func (n *node) Tag() string {
	n.doc.mu.RLock()
	defer n.doc.mu.RUnlock()
	return n.tag
}

// SetVisible writes through the active exclusive scope.
func (n *node) SetVisible(visible bool) error {
	j := n.doc.active.Load()
	if j == nil {
		return errOutsideScope
	}
	a, err := n.doc.prepare([]layer.Directive{layer.SetVisible(n.id, visible)})
	if err != nil {
		return err
	}
	if err := j.Stage(a[0]); err != nil {
		return err
	}
	return j.Flush(context.Background())
}

// Parent returns nil for top-level layers.
func (n *node) Parent() layer.Handle {
	n.doc.mu.RLock()
	defer n.doc.mu.RUnlock()
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *node) Children() []layer.Handle {
	n.doc.mu.RLock()
	defer n.doc.mu.RUnlock()
	out := make([]layer.Handle, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}
