// Package syncgroup holds the sync-group membership graph and the pure
// detection and propagation planning built on top of it.
//
// The registry stores each group as a fully connected clique: for a group
// {A, B, C}, partners[A] = {B, C}, partners[B] = {A, C} and so on. Every
// mutation leaves the relation symmetric and removes members whose partner
// set would become empty.
package syncgroup

import (
	"fmt"

	"github.com/irebix/LayerVisSync/internal/domain"
	"github.com/irebix/LayerVisSync/internal/domain/layer"
)

// MinGroupSize is the smallest number of layers a sync group can hold.
const MinGroupSize = 2

// Registry stores the partner graph and the last visibility the engine
// observed or wrote for every tracked layer. It is not safe for concurrent
// use; the engine serializes access.
type Registry struct {
	partners map[layer.ID]layer.Set
	baseline map[layer.ID]bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		partners: make(map[layer.ID]layer.Set),
		baseline: make(map[layer.ID]bool),
	}
}

// Link makes ids one fully connected group and records each member's current
// visibility as its baseline. Members are first detached from any previous
// group; partners left alone by that detachment are dropped.
func (r *Registry) Link(ids []layer.ID, visibility map[layer.ID]bool) error {
	members := layer.NewSet(ids...)
	if len(members) < MinGroupSize {
		return domain.NewValidationError("layers",
			fmt.Sprintf("a sync group needs at least %d layers, got %d", MinGroupSize, len(members)))
	}

	for id := range members {
		r.detach(id)
	}

	for id := range members {
		p := make(layer.Set, len(members)-1)
		for other := range members {
			if other != id {
				p.Add(other)
			}
		}
		r.partners[id] = p
		r.baseline[id] = visibility[id]
	}
	return nil
}

// Unlink dissolves every group touched by ids. A group is touched when one of
// its members is in ids or lists one of ids as a partner. The whole connected
// group is removed, including members not named in ids. It returns the
// removed ids in ascending order.
func (r *Registry) Unlink(ids []layer.ID) []layer.ID {
	input := layer.NewSet(ids...)

	var seeds []layer.ID
	for id, p := range r.partners {
		if input.Has(id) {
			seeds = append(seeds, id)
			continue
		}
		for q := range p {
			if input.Has(q) {
				seeds = append(seeds, id)
				break
			}
		}
	}
	return r.teardown(seeds)
}

// RemoveCluster removes ids and everything reachable from them through the
// partner graph. It returns the removed ids in ascending order.
func (r *Registry) RemoveCluster(ids []layer.ID) []layer.ID {
	return r.teardown(ids)
}

// IsExactMatch reports whether some member of ids already belongs to a group
// whose members are exactly ids.
func (r *Registry) IsExactMatch(ids []layer.ID) bool {
	want := layer.NewSet(ids...)
	for id := range want {
		p, ok := r.partners[id]
		if !ok || len(p)+1 != len(want) {
			continue
		}
		match := true
		for q := range p {
			if !want.Has(q) {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// Reconcile prunes the registry to the layers in valid. Absent ids are
// dropped, surviving partner sets are filtered, and members left without
// partners are deleted. It returns the dropped ids in ascending order.
// Calling it again with the same set is a no-op.
func (r *Registry) Reconcile(valid layer.Set) []layer.ID {
	dropped := make(layer.Set)

	for id := range r.partners {
		if !valid.Has(id) {
			r.drop(id)
			dropped.Add(id)
		}
	}
	for id := range r.baseline {
		if _, ok := r.partners[id]; !ok {
			delete(r.baseline, id)
		}
	}

	for changed := true; changed; {
		changed = false
		for id, p := range r.partners {
			for q := range p {
				if _, tracked := r.partners[q]; !tracked || !valid.Has(q) {
					delete(p, q)
				}
			}
			if len(p) == 0 {
				r.drop(id)
				dropped.Add(id)
				changed = true
			}
		}
	}
	return dropped.Sorted()
}

// Clusters returns the connected components of the partner graph. Each
// component is sorted ascending and components are ordered by their smallest
// id, so the enumeration is stable and free of duplicates. Components are
// found by transitive closure, which also covers groups that stopped being
// cliques.
func (r *Registry) Clusters() [][]layer.ID {
	visited := make(layer.Set, len(r.partners))
	var clusters [][]layer.ID

	for _, id := range r.Tracked() {
		if visited.Has(id) {
			continue
		}
		component := make(layer.Set)
		r.walk(id, func(cur layer.ID) {
			visited.Add(cur)
			component.Add(cur)
		})
		clusters = append(clusters, component.Sorted())
	}
	return clusters
}

// Tracked returns every id that belongs to a group, ascending.
func (r *Registry) Tracked() []layer.ID {
	s := make(layer.Set, len(r.partners))
	for id := range r.partners {
		s.Add(id)
	}
	return s.Sorted()
}

// IsTracked reports whether id belongs to a group.
func (r *Registry) IsTracked(id layer.ID) bool {
	_, ok := r.partners[id]
	return ok
}

// Partners returns the partners of id, ascending. Untracked ids have none.
func (r *Registry) Partners(id layer.ID) []layer.ID {
	p, ok := r.partners[id]
	if !ok {
		return nil
	}
	return p.Sorted()
}

// Baseline returns the recorded visibility of id.
func (r *Registry) Baseline(id layer.ID) (visible, ok bool) {
	visible, ok = r.baseline[id]
	return visible, ok
}

// SetBaseline records visible for a tracked id. Untracked ids are ignored and
// reported with false.
func (r *Registry) SetBaseline(id layer.ID, visible bool) bool {
	if !r.IsTracked(id) {
		return false
	}
	r.baseline[id] = visible
	return true
}

// Len returns the number of tracked layers.
func (r *Registry) Len() int {
	return len(r.partners)
}

// Verify checks the registry invariants: the partner relation is symmetric,
// no partner set is empty or self-referencing, and baselines exist exactly
// for tracked ids.
func (r *Registry) Verify() error {
	for id, p := range r.partners {
		if len(p) == 0 {
			return fmt.Errorf("layer %d has an empty partner set", id)
		}
		if p.Has(id) {
			return fmt.Errorf("layer %d lists itself as a partner", id)
		}
		for q := range p {
			back, ok := r.partners[q]
			if !ok || !back.Has(id) {
				return fmt.Errorf("partner relation %d -> %d is not symmetric", id, q)
			}
		}
		if _, ok := r.baseline[id]; !ok {
			return fmt.Errorf("layer %d has no baseline", id)
		}
	}
	if len(r.baseline) != len(r.partners) {
		return fmt.Errorf("%d baselines for %d tracked layers", len(r.baseline), len(r.partners))
	}
	return nil
}

// detach removes id from its group while keeping the relation symmetric.
// Former partners left without partners are dropped.
func (r *Registry) detach(id layer.ID) {
	p, ok := r.partners[id]
	if !ok {
		return
	}
	r.drop(id)
	for q := range p {
		qp, ok := r.partners[q]
		if !ok {
			continue
		}
		delete(qp, id)
		if len(qp) == 0 {
			r.drop(q)
		}
	}
}

// teardown removes every id reachable from seeds.
func (r *Registry) teardown(seeds []layer.ID) []layer.ID {
	removed := make(layer.Set)
	for _, seed := range seeds {
		if removed.Has(seed) {
			continue
		}
		r.walk(seed, removed.Add)
	}
	for id := range removed {
		r.drop(id)
	}
	return removed.Sorted()
}

// walk visits start and every tracked id reachable from it, once each.
// Untracked starts are ignored.
func (r *Registry) walk(start layer.ID, visit func(layer.ID)) {
	if !r.IsTracked(start) {
		return
	}
	seen := layer.NewSet(start)
	stack := []layer.ID{start}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		visit(cur)
		for q := range r.partners[cur] {
			if seen.Has(q) || !r.IsTracked(q) {
				continue
			}
			seen.Add(q)
			stack = append(stack, q)
		}
	}
}

func (r *Registry) drop(id layer.ID) {
	delete(r.partners, id)
	delete(r.baseline, id)
}
