package directory

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/irebix/LayerVisSync/internal/domain"
	"github.com/irebix/LayerVisSync/internal/domain/layer"
)

type fakeLayer struct {
	id       layer.ID
	name     string
	visible  bool
	parent   *fakeLayer
	children []*fakeLayer
}

func (l *fakeLayer) ID() layer.ID   { return l.id }
func (l *fakeLayer) Name() string   { return l.name }
func (l *fakeLayer) Visible() bool  { return l.visible }
func (l *fakeLayer) Selected() bool { return false }
func (l *fakeLayer) Tag() string    { return "" }

func (l *fakeLayer) SetVisible(v bool) error {
	l.visible = v
	return nil
}

func (l *fakeLayer) Children() []layer.Handle {
	out := make([]layer.Handle, len(l.children))
	for i, c := range l.children {
		out[i] = c
	}
	return out
}

func (l *fakeLayer) Parent() layer.Handle {
	if l.parent == nil {
		return nil
	}
	return l.parent
}

func (l *fakeLayer) add(children ...*fakeLayer) *fakeLayer {
	for _, c := range children {
		c.parent = l
		l.children = append(l.children, c)
	}
	return l
}

type fakeDoc struct {
	roots []*fakeLayer
	err   error
	calls int
}

func (d *fakeDoc) ID() string { return "doc-1" }

func (d *fakeDoc) Layers(_ context.Context) ([]layer.Handle, error) {
	d.calls++
	if d.err != nil {
		return nil, d.err
	}
	out := make([]layer.Handle, len(d.roots))
	for i, r := range d.roots {
		out[i] = r
	}
	return out, nil
}

func (d *fakeDoc) RunExclusive(ctx context.Context, _ string, fn func(context.Context) error) error {
	return fn(ctx)
}

func (d *fakeDoc) BatchPlay(_ context.Context, _ []layer.Directive) error { return nil }

// newTree builds:
//
//	1 Background
//	2 Group
//	  3 Eyes
//	  4 Inner
//	    5 Pupil
func newTree() *fakeDoc {
	inner := (&fakeLayer{id: 4, name: "Inner"}).add(&fakeLayer{id: 5, name: "Pupil"})
	group := (&fakeLayer{id: 2, name: "Group"}).add(&fakeLayer{id: 3, name: "Eyes"}, inner)
	return &fakeDoc{roots: []*fakeLayer{{id: 1, name: "Background"}, group}}
}

func ids(hs []layer.Handle) []layer.ID {
	out := make([]layer.ID, len(hs))
	for i, h := range hs {
		out[i] = h.ID()
	}
	return out
}

func TestDirectory_Refresh_IndexesNestedLayers(t *testing.T) {
	t.Parallel()

	d := New(newTree())
	if !d.Refresh(context.Background()) {
		t.Fatal("first Refresh() = false, want true")
	}

	want := []layer.ID{1, 2, 3, 4, 5}
	if diff := cmp.Diff(want, ids(d.Flattened())); diff != "" {
		t.Errorf("Flattened() mismatch (-want +got):\n%s", diff)
	}

	h, ok := d.Get(5)
	if !ok {
		t.Fatal("Get(5) not found")
	}
	if got := layer.Path(h); got != "Group / Inner / Pupil" {
		t.Errorf("Path(5) = %q, want %q", got, "Group / Inner / Pupil")
	}
	if _, ok := d.Get(99); ok {
		t.Error("Get(99) found, want absent")
	}
}

func TestDirectory_Refresh_ShortCircuitsOnSameStructure(t *testing.T) {
	t.Parallel()

	doc := newTree()
	d := New(doc)
	d.Refresh(context.Background())
	fp := d.fingerprint

	// Renames and visibility changes keep the structure.
	doc.roots[0].name = "Paper"
	doc.roots[0].visible = true

	if d.Refresh(context.Background()) {
		t.Error("Refresh() after rename = true, want false")
	}
	if d.fingerprint != fp {
		t.Error("fingerprint changed after rename")
	}
}

func TestDirectory_Refresh_ReplacesHandles(t *testing.T) {
	t.Parallel()

	doc := newTree()
	d := New(doc)
	d.Refresh(context.Background())

	// Same id under the same parent, but a different layer.
	readded := &fakeLayer{id: 1, name: "Background", visible: true}
	doc.roots[0] = readded

	if d.Refresh(context.Background()) {
		t.Error("Refresh() after re-add = true, want false")
	}
	h, ok := d.Get(1)
	if !ok {
		t.Fatal("Get(1) not found")
	}
	if h != layer.Handle(readded) {
		t.Error("Get(1) returned the removed handle")
	}
	if !h.Visible() {
		t.Error("Get(1).Visible() = false, want true")
	}
}

func TestDirectory_Refresh_DetectsStructuralChanges(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*fakeDoc)
		want   []layer.ID
	}{
		{
			name: "layer added",
			mutate: func(d *fakeDoc) {
				d.roots = append(d.roots, &fakeLayer{id: 6, name: "New"})
			},
			want: []layer.ID{1, 2, 3, 4, 5, 6},
		},
		{
			name: "layer removed",
			mutate: func(d *fakeDoc) {
				d.roots[1].children = d.roots[1].children[:1]
			},
			want: []layer.ID{1, 2, 3},
		},
		{
			name: "layer reparented",
			mutate: func(d *fakeDoc) {
				eyes := d.roots[1].children[0]
				d.roots[1].children = d.roots[1].children[1:]
				eyes.parent = nil
				d.roots = append(d.roots, eyes)
			},
			want: []layer.ID{1, 2, 4, 5, 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := newTree()
			d := New(doc)
			d.Refresh(context.Background())

			tt.mutate(doc)
			if !d.Refresh(context.Background()) {
				t.Fatal("Refresh() = false, want true")
			}
			if diff := cmp.Diff(tt.want, ids(d.Flattened())); diff != "" {
				t.Errorf("Flattened() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDirectory_Refresh_HostErrorKeepsCache(t *testing.T) {
	t.Parallel()

	doc := newTree()
	d := New(doc)
	d.Refresh(context.Background())

	doc.err = errors.Join(domain.ErrUnavailable, errors.New("document closed"))
	if d.Refresh(context.Background()) {
		t.Error("Refresh() on host error = true, want false")
	}
	if got := len(d.IDs()); got != 5 {
		t.Errorf("len(IDs()) = %d, want 5", got)
	}
}

func TestDirectory_Invalidate(t *testing.T) {
	t.Parallel()

	d := New(newTree())
	d.Refresh(context.Background())
	d.Invalidate()

	if !d.Refresh(context.Background()) {
		t.Error("Refresh() after Invalidate = false, want true")
	}
}

func TestDirectory_IDs(t *testing.T) {
	t.Parallel()

	d := New(newTree())
	d.Refresh(context.Background())

	if !d.IDs().Equal(layer.NewSet(1, 2, 3, 4, 5)) {
		t.Errorf("IDs() = %v, want 1..5", d.IDs().Sorted())
	}
}

func TestDirectory_EmptyDocument(t *testing.T) {
	t.Parallel()

	d := New(&fakeDoc{})
	d.Refresh(context.Background())

	if got := len(d.IDs()); got != 0 {
		t.Errorf("len(IDs()) = %d, want 0", got)
	}
	if got := d.Flattened(); len(got) != 0 {
		t.Errorf("Flattened() = %v, want empty", got)
	}
}

func TestFingerprint_DuplicateIDs(t *testing.T) {
	t.Parallel()

	doc := &fakeDoc{roots: []*fakeLayer{{id: 1, name: "A"}, {id: 1, name: "B"}}}
	d := New(doc)
	d.Refresh(context.Background())

	if got := len(d.IDs()); got != 1 {
		t.Errorf("len(IDs()) = %d, want 1", got)
	}
	h, _ := d.Get(1)
	if h.Name() != "A" {
		t.Errorf("Get(1).Name() = %q, want %q", h.Name(), "A")
	}
}
