package diagnostics

import (
	"sort"

	"github.com/calligan/netgraph/pkg/topology"
)

// walker runs reachability traversals over one view with an optional set of
// links treated as failed. Connectivity is undirected: a failed uplink cuts
// a subtree off whichever way the CONNECTS_TO edges point.
type walker struct {
	view    *topology.View
	blocked map[string]bool
	visited int
}

func newWalker(v *topology.View, blocked map[string]bool) *walker {
	return &walker{view: v, blocked: blocked}
}

// usable reports whether the pair (a, b) is still traversable. A pair with
// parallel links survives as long as one link is not blocked; a pure logical
// adjacency with no link entity is always traversable.
func (w *walker) usable(a, b string) bool {
	links := w.view.LinksBetween(a, b)
	if len(links) == 0 {
		return true
	}
	for _, l := range links {
		if !w.blocked[l.ID] {
			return true
		}
	}
	return false
}

// reachable returns the set of devices reachable from the given starting
// devices over usable pairs.
func (w *walker) reachable(from []string) map[string]bool {
	seen := make(map[string]bool, len(from))
	queue := make([]string, 0, len(from))
	for _, id := range from {
		if !seen[id] {
			seen[id] = true
			queue = append(queue, id)
		}
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		w.visited++
		for _, adj := range [][]string{w.view.Upstream(cur), w.view.Downstream(cur)} {
			for _, next := range adj {
				if !seen[next] && w.usable(cur, next) {
					seen[next] = true
					queue = append(queue, next)
				}
			}
		}
	}
	return seen
}

// rootSet returns the devices with no upstream CONNECTS_TO edge, sorted.
// These are the tree roots paths are traced toward.
func rootSet(v *topology.View) []string {
	roots := make([]string, 0, 1)
	for _, d := range v.Devices() {
		if len(v.Upstream(d.ID)) == 0 {
			roots = append(roots, d.ID)
		}
	}
	return roots
}

// affected computes the devices and services that lose connectivity when the
// blocked links fail. A device counts when it was reachable from the root set
// before and is not after. Hosts in a component without a root (a cycle)
// never reach the root set either way; for those the device's own reachable
// set is compared instead, so shrinking a ring still registers.
func affected(v *topology.View, blocked map[string]bool) (devices, services []string, visited int) {
	base := newWalker(v, nil)
	after := newWalker(v, blocked)

	roots := rootSet(v)
	baseReach := base.reachable(roots)
	afterReach := after.reachable(roots)

	deviceCut := make(map[string]bool)
	for _, d := range v.Devices() {
		if baseReach[d.ID] && !afterReach[d.ID] {
			deviceCut[d.ID] = true
		}
	}
	visited = base.visited + after.visited

	for _, svc := range v.Services() {
		host := svc.Host
		switch {
		case deviceCut[host]:
			services = append(services, svc.ID)
		case !baseReach[host]:
			// Rootless component fallback.
			b := newWalker(v, nil)
			a := newWalker(v, blocked)
			before := b.reachable([]string{host})
			now := a.reachable([]string{host})
			visited += b.visited + a.visited
			if len(now) < len(before) {
				services = append(services, svc.ID)
			}
		}
	}

	for id := range deviceCut {
		devices = append(devices, id)
	}
	sort.Strings(devices)
	sort.Strings(services)
	return devices, services, visited
}
