package syncgroup

import (
	"github.com/irebix/LayerVisSync/internal/domain/layer"
)

// Mode is the action a sync toggle would take for the current selection.
type Mode string

const (
	// ModeLink links the selection into a new group.
	ModeLink Mode = "link"
	// ModeUnlink dissolves the group that exactly matches the selection.
	ModeUnlink Mode = "unlink"
)

// ModeFor returns the toggle mode for a selection.
func ModeFor(reg *Registry, selected []layer.ID) Mode {
	if reg.IsExactMatch(selected) {
		return ModeUnlink
	}
	return ModeLink
}

// Cluster is a display projection of one connected sync group. Index is
// 1-based over the canonical cluster order.
type Cluster struct {
	Index   int
	Members []layer.Info
}

// IDs returns the member ids in member order.
func (c Cluster) IDs() []layer.ID {
	ids := make([]layer.ID, len(c.Members))
	for i, m := range c.Members {
		ids[i] = m.ID
	}
	return ids
}

// AllVisible reports whether every member is visible. An empty cluster is
// not visible.
func (c Cluster) AllVisible() bool {
	if len(c.Members) == 0 {
		return false
	}
	for _, m := range c.Members {
		if !m.Visible {
			return false
		}
	}
	return true
}

// DescribeFunc resolves a layer id to its display snapshot. ok is false when
// the layer is missing from the directory.
type DescribeFunc func(id layer.ID) (info layer.Info, ok bool)

// Project derives the display clusters from the registry. Members missing
// from the directory are left out; clusters with no resolvable members are
// skipped without consuming an index.
func Project(reg *Registry, describe DescribeFunc) []Cluster {
	var out []Cluster
	for _, ids := range reg.Clusters() {
		members := make([]layer.Info, 0, len(ids))
		for _, id := range ids {
			if info, ok := describe(id); ok {
				members = append(members, info)
			}
		}
		if len(members) == 0 {
			continue
		}
		out = append(out, Cluster{Index: len(out) + 1, Members: members})
	}
	return out
}
