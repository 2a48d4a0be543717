// Package directory maintains the flattened id to handle index of the host
// layer tree.
package directory

import (
	"context"
	"log/slog"
	"slices"
	"strconv"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/irebix/LayerVisSync/internal/domain/layer"
	"github.com/irebix/LayerVisSync/internal/platform/logging"
	"github.com/irebix/LayerVisSync/internal/ports"
)

// Directory indexes every layer of a document, nested ones included.
// Refresh reports a rebuild only when the tree's structural fingerprint
// changed. It never writes to the document. Directory is safe for
// concurrent use.
type Directory struct {
	doc ports.Document

	mu          sync.RWMutex
	index       map[layer.ID]layer.Handle
	order       []layer.Handle
	fingerprint uint64
	stale       bool
}

// New creates an empty directory over doc. The first Refresh populates it.
func New(doc ports.Document) *Directory {
	return &Directory{
		doc:   doc,
		index: make(map[layer.ID]layer.Handle),
		stale: true,
	}
}

// Refresh walks the document tree and installs the handles it found. It
// reports whether the structure changed since the previous Refresh, or
// whether the directory was invalidated. Host errors are logged and leave
// the previous index in place.
func (d *Directory) Refresh(ctx context.Context) bool {
	logger := logging.FromContext(ctx)

	roots, err := d.doc.Layers(ctx)
	if err != nil {
		logger.WarnContext(ctx, "layer query failed, keeping previous directory",
			slog.String("operation", "Directory.Refresh"),
			slog.String("document_id", d.doc.ID()),
			slog.Any("error", err),
		)
		return false
	}

	order, index, duplicates := flatten(roots)
	fp := fingerprint(order)

	d.mu.Lock()
	defer d.mu.Unlock()

	// A layer removed and re-added under the same id and parent keeps the
	// fingerprint but not the handle, so handles are always replaced.
	d.index = index
	d.order = order
	if !d.stale && fp == d.fingerprint {
		return false
	}
	d.fingerprint = fp
	d.stale = false

	for _, id := range duplicates {
		logger.WarnContext(ctx, "duplicate layer id in document tree",
			slog.String("operation", "Directory.Refresh"),
			slog.String("document_id", d.doc.ID()),
			slog.Int64("layer_id", int64(id)),
		)
	}
	logger.DebugContext(ctx, "layer directory rebuilt",
		slog.String("document_id", d.doc.ID()),
		slog.Int("layers", len(order)),
	)
	return true
}

// Invalidate forces the next Refresh to rebuild even if the fingerprint is
// unchanged.
func (d *Directory) Invalidate() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stale = true
}

// Get returns the handle for id.
func (d *Directory) Get(id layer.ID) (layer.Handle, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	h, ok := d.index[id]
	return h, ok
}

// Flattened returns every layer exactly once, parents before their
// descendants.
func (d *Directory) Flattened() []layer.Handle {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.order)
}

// IDs returns the set of indexed ids.
func (d *Directory) IDs() layer.Set {
	d.mu.RLock()
	defer d.mu.RUnlock()
	s := make(layer.Set, len(d.index))
	for id := range d.index {
		s.Add(id)
	}
	return s
}

// flatten walks the tree depth first with an explicit stack. Layers whose id
// was already seen are skipped and reported.
func flatten(roots []layer.Handle) ([]layer.Handle, map[layer.ID]layer.Handle, []layer.ID) {
	index := make(map[layer.ID]layer.Handle)
	var order []layer.Handle
	var duplicates []layer.ID

	stack := make([]layer.Handle, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, roots[i])
	}

	for len(stack) > 0 {
		h := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if h == nil {
			continue
		}

		id := h.ID()
		if _, seen := index[id]; seen {
			duplicates = append(duplicates, id)
			continue
		}
		index[id] = h
		order = append(order, h)

		children := h.Children()
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
	return order, index, duplicates
}

// fingerprint hashes the sorted id:parent pairs of the tree. Renames and
// visibility changes do not alter it; adds, removes and moves do.
func fingerprint(order []layer.Handle) uint64 {
	type edge struct{ id, parent layer.ID }

	edges := make([]edge, 0, len(order))
	for _, h := range order {
		var parent layer.ID
		if p := h.Parent(); p != nil {
			parent = p.ID()
		}
		edges = append(edges, edge{id: h.ID(), parent: parent})
	}
	slices.SortFunc(edges, func(a, b edge) int {
		switch {
		case a.id < b.id:
			return -1
		case a.id > b.id:
			return 1
		default:
			return 0
		}
	})

	digest := xxhash.New()
	buf := make([]byte, 0, 48)
	for _, e := range edges {
		buf = buf[:0]
		buf = strconv.AppendInt(buf, int64(e.id), 10)
		buf = append(buf, ':')
		buf = strconv.AppendInt(buf, int64(e.parent), 10)
		buf = append(buf, ',')
		_, _ = digest.Write(buf)
	}
	return digest.Sum64()
}
