package topology

import (
	"sort"

	"github.com/go-playground/validator/v10"
)

// validate is the shared struct validator for load-time field checks.
var validate = validator.New()

// Load bulk-inserts a full topology, replacing whatever was loaded before.
// The new state is validated completely before publication: on any failure a
// *ValidationError describing every problem is returned and the prior state
// remains queryable (replace-on-success).
func (s *Store) Load(topo *Topology) error {
	state, err := buildState(topo)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.publish(state)
	return nil
}

// buildState validates the topology and materializes the derived indexes.
func buildState(topo *Topology) (*graphState, error) {
	verr := &ValidationError{}
	if topo == nil {
		verr.addProblem("topology is nil")
		return nil, verr
	}

	state := emptyState()
	state.connections = make([]Connection, len(topo.Connections))
	copy(state.connections, topo.Connections)

	// Field-level validation first, then referential integrity over the
	// full entity set.
	for i := range topo.Devices {
		d := topo.Devices[i]
		if err := validate.Struct(d); err != nil {
			verr.addProblem("device %q: %v", d.ID, firstValidationIssue(err))
			continue
		}
		if _, dup := state.devices[d.ID]; dup {
			verr.addProblem("duplicate device id %q", d.ID)
			continue
		}
		dev := d
		state.devices[d.ID] = &dev
	}

	for i := range topo.Links {
		l := topo.Links[i]
		if err := validate.Struct(l); err != nil {
			verr.addProblem("link %q: %v", l.ID, firstValidationIssue(err))
			continue
		}
		if _, dup := state.links[l.ID]; dup {
			verr.addProblem("duplicate link id %q", l.ID)
			continue
		}
		if _, ok := state.devices[l.Source]; !ok {
			verr.addDangling("link", l.ID, "source", l.Source)
		}
		if _, ok := state.devices[l.Target]; !ok {
			verr.addDangling("link", l.ID, "target", l.Target)
		}
		lnk := l
		state.links[l.ID] = &lnk
	}

	for i := range topo.Services {
		svc := topo.Services[i]
		if err := validate.Struct(svc); err != nil {
			verr.addProblem("service %q: %v", svc.ID, firstValidationIssue(err))
			continue
		}
		if _, dup := state.services[svc.ID]; dup {
			verr.addProblem("duplicate service id %q", svc.ID)
			continue
		}
		if _, ok := state.devices[svc.Host]; !ok {
			verr.addDangling("service", svc.ID, "host", svc.Host)
		}
		sv := svc
		state.services[svc.ID] = &sv
	}

	runsOn := make(map[string]int)
	for i := range topo.Connections {
		c := topo.Connections[i]
		if err := validate.Struct(c); err != nil {
			verr.addProblem("connection %s->%s: %v", c.From, c.To, firstValidationIssue(err))
			continue
		}
		switch c.Relation {
		case RelationConnectsTo:
			if _, ok := state.devices[c.From]; !ok {
				verr.addDangling("connection", c.From+"->"+c.To, "from", c.From)
				continue
			}
			if _, ok := state.devices[c.To]; !ok {
				verr.addDangling("connection", c.From+"->"+c.To, "to", c.To)
				continue
			}
			state.downstream[c.From] = append(state.downstream[c.From], c.To)
			state.upstream[c.To] = append(state.upstream[c.To], c.From)
		case RelationRunsOn:
			svc, ok := state.services[c.From]
			if !ok {
				verr.addDangling("connection", c.From+"->"+c.To, "from", c.From)
				continue
			}
			if _, ok := state.devices[c.To]; !ok {
				verr.addDangling("connection", c.From+"->"+c.To, "to", c.To)
				continue
			}
			runsOn[c.From]++
			if svc.Host != c.To {
				verr.addProblem("service %q runs on %q but RUNS_ON edge targets %q", svc.ID, svc.Host, c.To)
			}
		}
	}

	// A service declared with a host but without a RUNS_ON edge gets one
	// implicitly from its Host field; more than one edge is a modelling
	// error (every service runs on exactly one device).
	for id, n := range runsOn {
		if n > 1 {
			verr.addProblem("service %q has %d RUNS_ON edges, want exactly 1", id, n)
		}
	}

	if !verr.empty() {
		return nil, verr
	}

	for _, svc := range state.services {
		state.hostServices[svc.Host] = append(state.hostServices[svc.Host], svc.ID)
	}
	for _, l := range state.links {
		key := canonicalPair(l.Source, l.Target)
		state.linksByPair[key] = append(state.linksByPair[key], l)
	}

	// Sorted adjacency keeps traversal order reproducible for a fixed
	// input set.
	for _, m := range []map[string][]string{state.upstream, state.downstream, state.hostServices} {
		for k := range m {
			sort.Strings(m[k])
			m[k] = dedupeSorted(m[k])
		}
	}
	for _, ls := range state.linksByPair {
		sort.Slice(ls, func(i, j int) bool { return ls[i].ID < ls[j].ID })
	}

	return state, nil
}

func dedupeSorted(xs []string) []string {
	out := xs[:0]
	for i, x := range xs {
		if i == 0 || xs[i-1] != x {
			out = append(out, x)
		}
	}
	return out
}

// firstValidationIssue flattens a validator error to its first field issue;
// one precise message beats ten generic ones in a load report.
func firstValidationIssue(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return err.Error()
	}
	e := verrs[0]
	switch e.Tag() {
	case "required":
		return e.Field() + ": field is required"
	case "oneof":
		return e.Field() + ": must be one of " + e.Param()
	case "gte":
		return e.Field() + ": must be at least " + e.Param()
	case "lte":
		return e.Field() + ": must not exceed " + e.Param()
	default:
		return e.Field() + ": validation failed (" + e.Tag() + ")"
	}
}
