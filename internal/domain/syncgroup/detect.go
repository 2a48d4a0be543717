package syncgroup

import (
	"github.com/irebix/LayerVisSync/internal/domain/layer"
)

// Flip is a detected mismatch between a tracked layer's live visibility and
// its baseline.
type Flip struct {
	ID       layer.ID
	Group    []layer.ID
	NewState bool
}

// LookupFunc reports the live visibility of a layer. ok is false when the
// layer is not in the current directory snapshot.
type LookupFunc func(id layer.ID) (visible, ok bool)

// Detect compares every tracked layer against its baseline and returns the
// flips for one tick. Tracked ids are visited in ascending order. Once an id
// produced a flip, neither it nor its partners are considered again, so the
// lowest flipped id of a group decides the group's new state.
func Detect(reg *Registry, live LookupFunc) []Flip {
	handled := make(layer.Set)
	var flips []Flip

	for _, id := range reg.Tracked() {
		if handled.Has(id) {
			continue
		}
		visible, ok := live(id)
		if !ok {
			continue
		}
		baseline, _ := reg.Baseline(id)
		if visible == baseline {
			continue
		}

		group := reg.Partners(id)
		flips = append(flips, Flip{ID: id, Group: group, NewState: visible})
		handled.Add(id)
		for _, q := range group {
			handled.Add(q)
		}
	}
	return flips
}

// BaselineUpdate is a baseline value to record once a plan has been applied.
type BaselineUpdate struct {
	ID      layer.ID
	Visible bool
}

// Plan is the outcome of propagation planning: the writes to issue in one
// atomic host transaction and the baselines to record after it commits.
type Plan struct {
	Writes    []layer.Directive
	Baselines []BaselineUpdate
}

// Empty reports whether the plan neither writes nor records anything.
func (p Plan) Empty() bool {
	return len(p.Writes) == 0 && len(p.Baselines) == 0
}

// PlanPropagation turns flips into writes. For each flip, every group member
// whose live visibility differs from the new state gets one write. Members
// already at the new state get no write, but their baseline is still
// recorded. The origin's baseline is recorded as well. Writes keep the order
// in which flips were detected; a layer is planned at most once.
func PlanPropagation(flips []Flip, live LookupFunc) Plan {
	var plan Plan
	planned := make(layer.Set)

	record := func(id layer.ID, state bool) {
		if planned.Has(id) {
			return
		}
		planned.Add(id)
		plan.Baselines = append(plan.Baselines, BaselineUpdate{ID: id, Visible: state})
	}

	for _, f := range flips {
		record(f.ID, f.NewState)
		for _, target := range f.Group {
			if planned.Has(target) {
				continue
			}
			visible, ok := live(target)
			if !ok {
				continue
			}
			if visible != f.NewState {
				plan.Writes = append(plan.Writes, layer.SetVisible(target, f.NewState))
			}
			record(target, f.NewState)
		}
	}
	return plan
}

// PlanGroupVisibility builds the plan that sets every member of ids to
// visible. It follows the same rules as PlanPropagation.
func PlanGroupVisibility(ids []layer.ID, visible bool, live LookupFunc) Plan {
	var plan Plan
	for _, id := range ids {
		current, ok := live(id)
		if !ok {
			continue
		}
		if current != visible {
			plan.Writes = append(plan.Writes, layer.SetVisible(id, visible))
		}
		plan.Baselines = append(plan.Baselines, BaselineUpdate{ID: id, Visible: visible})
	}
	return plan
}
