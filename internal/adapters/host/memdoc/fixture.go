package memdoc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/irebix/LayerVisSync/internal/domain"
	"github.com/irebix/LayerVisSync/internal/domain/layer"
)

// Fixture is the YAML form of a document:
//
//	document: poster
//	layers:
//	  - id: 1
//	    name: Background
//	    visible: true
//	  - name: Face
//	    children:
//	      - name: Eyes
//	        selected: true
//
// Layers without an id get the next free one.
type Fixture struct {
	Document string         `yaml:"document"`
	Layers   []FixtureLayer `yaml:"layers"`
}

// FixtureLayer is one layer of a Fixture.
type FixtureLayer struct {
	ID       int64          `yaml:"id,omitempty"`
	Name     string         `yaml:"name"`
	Visible  *bool          `yaml:"visible,omitempty"`
	Selected bool           `yaml:"selected,omitempty"`
	Tag      string         `yaml:"tag,omitempty"`
	Children []FixtureLayer `yaml:"children,omitempty"`
}

// visible defaults to true, as new host layers are shown.
func (l FixtureLayer) visible() bool {
	return l.Visible == nil || *l.Visible
}

// DecodeFixture reads a fixture from r.
func DecodeFixture(r io.Reader) (Fixture, error) {
	var f Fixture
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return Fixture{}, nil
		}
		return Fixture{}, fmt.Errorf("decoding fixture: %w", err)
	}
	if err := f.validate(); err != nil {
		return Fixture{}, err
	}
	return f, nil
}

// ReadFixture loads a fixture file.
func ReadFixture(path string) (Fixture, error) {
	file, err := os.Open(path)
	if err != nil {
		return Fixture{}, fmt.Errorf("opening fixture: %w", err)
	}
	defer file.Close()
	return DecodeFixture(file)
}

// validate rejects duplicate or negative ids and unnamed layers.
func (f Fixture) validate() error {
	seen := make(map[int64]bool)
	stack := make([]FixtureLayer, 0, len(f.Layers))
	stack = append(stack, f.Layers...)

	var errs []error
	for len(stack) > 0 {
		l := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch {
		case l.ID < 0:
			errs = append(errs, domain.NewValidationError("id", fmt.Sprintf("layer %q has negative id %d", l.Name, l.ID)))
		case l.ID > 0 && seen[l.ID]:
			errs = append(errs, domain.NewValidationError("id", fmt.Sprintf("duplicate layer id %d", l.ID)))
		}
		seen[l.ID] = true
		if l.Name == "" {
			errs = append(errs, domain.NewValidationError("name", fmt.Sprintf("layer %d has no name", l.ID)))
		}
		stack = append(stack, l.Children...)
	}
	return errors.Join(errs...)
}

// FromFixture builds a document from f.
func FromFixture(f Fixture, opts ...Option) *Document {
	if f.Document != "" {
		opts = append([]Option{WithID(f.Document)}, opts...)
	}
	d := New(opts...)
	d.mu.Lock()
	defer d.mu.Unlock()
	d.build(f, nil)
	return d
}

// Apply reshapes the document to match f as a native edit. Layers are
// matched by id: matched layers keep their handle and take the fixture's
// name, visibility, selection, tag and position; layers missing from f are
// removed; new layers are added.
func (d *Document) Apply(ctx context.Context, f Fixture) error {
	if err := f.validate(); err != nil {
		return err
	}
	release, err := d.acquire(ctx)
	if err != nil {
		return err
	}
	defer release()

	d.mu.Lock()
	defer d.mu.Unlock()
	d.build(f, d.nodes)
	return nil
}

// build replaces the tree with f, reusing nodes from existing by id.
// d.mu must be held.
func (d *Document) build(f Fixture, existing map[layer.ID]*node) {
	type frame struct {
		spec   FixtureLayer
		parent *node
	}

	d.roots = nil
	d.nodes = make(map[layer.ID]*node, len(existing))

	// Reserve fixture ids first so generated ids never collide with them.
	reserved := make(layer.Set)
	stack := make([]frame, 0, len(f.Layers))
	for i := len(f.Layers) - 1; i >= 0; i-- {
		stack = append(stack, frame{spec: f.Layers[i]})
	}
	for _, fr := range stack {
		markIDs(fr.spec, reserved)
	}
	for id := range reserved {
		if id >= d.nextID {
			d.nextID = id + 1
		}
	}

	for len(stack) > 0 {
		fr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		var n *node
		id := layer.ID(fr.spec.ID)
		if prev, ok := existing[id]; ok && id > 0 {
			n = prev
			n.children = nil
		} else {
			if id <= 0 {
				id = d.allocFree(reserved)
			}
			n = &node{doc: d, id: id}
		}
		n.name = fr.spec.Name
		n.visible = fr.spec.visible()
		n.selected = fr.spec.Selected
		n.tag = fr.spec.Tag

		d.attach(n, fr.parent)
		d.nodes[n.id] = n

		for i := len(fr.spec.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{spec: fr.spec.Children[i], parent: n})
		}
	}
}

// allocFree returns the next id that is neither indexed nor reserved.
func (d *Document) allocFree(reserved layer.Set) layer.ID {
	for {
		id := d.nextID
		d.nextID++
		if _, taken := d.nodes[id]; !taken && !reserved.Has(id) {
			return id
		}
	}
}

func markIDs(l FixtureLayer, into layer.Set) {
	stack := []FixtureLayer{l}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur.ID > 0 {
			into.Add(layer.ID(cur.ID))
		}
		stack = append(stack, cur.Children...)
	}
}
