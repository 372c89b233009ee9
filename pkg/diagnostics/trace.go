package diagnostics

import (
	"time"

	"github.com/calligan/netgraph/pkg/topology"
)

// ServicePath traces the upstream route from a service to the network root:
// service, its host, then one upstream hop at a time following incoming
// CONNECTS_TO edges.
//
// When a device has several unvisited upstream neighbors, the one with the
// fewest downstream edges wins (closest to a pure uplink); ties break on
// lexical device ID. The fixed tie-break makes repeated traces over the same
// topology return the identical sequence. No device is visited twice, so a
// miswired cycle terminates instead of looping.
func (e *Engine) ServicePath(serviceID string) (*PathTrace, error) {
	start := time.Now()
	v, err := e.snapshot("ServicePath")
	if err != nil {
		e.record("upstream_path", start, 0, err)
		return nil, err
	}

	svc, err := v.FindServiceByName(serviceID)
	if err != nil {
		e.record("upstream_path", start, 0, err)
		return nil, err
	}
	host, err := v.GetDevice(svc.Host)
	if err != nil {
		e.record("upstream_path", start, 0, err)
		return nil, err
	}

	if len(v.Upstream(host.ID)) == 0 && len(v.Downstream(host.ID)) == 0 {
		err = topology.NewError("ServicePath").Service(svc.ID).
			Context("host " + host.ID + " has no connectivity").
			Cause(topology.ErrPathNotFound).Err()
		e.record("upstream_path", start, 1, err)
		return nil, err
	}

	visited := map[string]bool{host.ID: true}
	hops := []string{host.Name}
	cur := host.ID
	for {
		next := pickUpstream(v, cur, visited)
		if next == "" {
			break
		}
		visited[next] = true
		d, gerr := v.GetDevice(next)
		if gerr != nil {
			break
		}
		hops = append(hops, d.Name)
		cur = next
	}

	trace := &PathTrace{Service: svc.Name, Host: host.Name, Hops: hops}
	e.record("upstream_path", start, len(visited), nil)
	return trace, nil
}

// pickUpstream selects the next hop toward the root: the unvisited upstream
// neighbor with the fewest downstream edges. Upstream lists are sorted, so
// on a tie the lexically smallest ID is kept.
func pickUpstream(v *topology.View, deviceID string, visited map[string]bool) string {
	best := ""
	bestFan := -1
	for _, up := range v.Upstream(deviceID) {
		if visited[up] {
			continue
		}
		fan := len(v.Downstream(up))
		if best == "" || fan < bestFan {
			best = up
			bestFan = fan
		}
	}
	return best
}
