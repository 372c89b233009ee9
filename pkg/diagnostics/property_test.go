package diagnostics

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/calligan/netgraph/pkg/topology"
)

// randomTree builds a random tree-shaped fabric of n devices rooted at d00,
// one link per CONNECTS_TO edge, a service on every leaf. Returns the
// topology plus the parent index of each device for computing expected
// subtrees.
func randomTree(n int, seed int64) (*topology.Topology, []int) {
	rng := rand.New(rand.NewSource(seed))
	topo := &topology.Topology{}
	parents := make([]int, n)
	parents[0] = -1

	hasChild := make([]bool, n)
	for i := 0; i < n; i++ {
		topo.Devices = append(topo.Devices, topology.Device{
			ID:   fmt.Sprintf("d%02d", i),
			Kind: "switch",
			Name: fmt.Sprintf("device-%02d", i),
		})
	}
	for i := 1; i < n; i++ {
		parent := rng.Intn(i)
		parents[i] = parent
		hasChild[parent] = true
		from := fmt.Sprintf("d%02d", parent)
		to := fmt.Sprintf("d%02d", i)
		topo.Connections = append(topo.Connections, topology.Connection{
			From: from, To: to, Relation: topology.RelationConnectsTo,
		})
		topo.Links = append(topo.Links, topology.Link{
			ID:             fmt.Sprintf("link-%02d-%02d", parent, i),
			Source:         from,
			Target:         to,
			UtilizationPct: float64(rng.Intn(60)),
		})
	}
	for i := 1; i < n; i++ {
		if hasChild[i] {
			continue
		}
		id := fmt.Sprintf("svc-%02d", i)
		topo.Services = append(topo.Services, topology.Service{
			ID: id, Name: id, Criticality: topology.CriticalityStandard, Host: fmt.Sprintf("d%02d", i),
		})
		topo.Connections = append(topo.Connections, topology.Connection{
			From: id, To: fmt.Sprintf("d%02d", i), Relation: topology.RelationRunsOn,
		})
	}
	return topo, parents
}

// subtreeServices returns the IDs of services hosted at or below device
// index root in the tree described by parents.
func subtreeServices(topo *topology.Topology, parents []int, root int) map[string]bool {
	inSubtree := make([]bool, len(parents))
	inSubtree[root] = true
	for i := root + 1; i < len(parents); i++ {
		if parents[i] >= 0 && inSubtree[parents[i]] {
			inSubtree[i] = true
		}
	}
	out := make(map[string]bool)
	for _, svc := range topo.Services {
		var idx int
		fmt.Sscanf(svc.Host, "d%02d", &idx)
		if inSubtree[idx] {
			out[svc.ID] = true
		}
	}
	return out
}

func subsetOf(a, b []string) bool {
	set := make(map[string]bool, len(b))
	for _, id := range b {
		set[id] = true
	}
	for _, id := range a {
		if !set[id] {
			return false
		}
	}
	return true
}

// TestImpactInvariants verifies the blast-radius laws on random tree
// fabrics, where the expected answer can be computed independently.
func TestImpactInvariants(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping property-based test in short mode")
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	properties.Property("blast radius of a tree link is exactly its subtree", prop.ForAll(
		func(n int, seed int64) bool {
			topo, parents := randomTree(n, seed)
			store := topology.NewStore()
			if err := store.Load(topo); err != nil {
				return false
			}
			engine := NewEngine(store)
			for _, l := range topo.Links {
				impact, err := engine.BlastRadius(l.ID)
				if err != nil {
					return false
				}
				var childIdx int
				fmt.Sscanf(l.Target, "d%02d", &childIdx)
				want := subtreeServices(topo, parents, childIdx)
				if len(impact.AffectedServices) != len(want) {
					return false
				}
				for _, id := range impact.AffectedServices {
					if !want[id] {
						return false
					}
				}
			}
			return true
		},
		gen.IntRange(3, 20),
		gen.Int64(),
	))

	properties.Property("adding a failure never shrinks the affected set", prop.ForAll(
		func(n int, seed int64, pick int) bool {
			topo, _ := randomTree(n, seed)
			store := topology.NewStore()
			if err := store.Load(topo); err != nil {
				return false
			}
			engine := NewEngine(store)

			rng := rand.New(rand.NewSource(seed ^ 0x5eed))
			var subset []string
			for _, l := range topo.Links {
				if rng.Intn(2) == 0 {
					subset = append(subset, l.ID)
				}
			}
			extra := topo.Links[pick%len(topo.Links)].ID

			base := []string{}
			if len(subset) > 0 {
				impact, err := engine.ImpactOfFailures(subset)
				if err != nil {
					return false
				}
				base = impact.AffectedServices
			}
			wider, err := engine.ImpactOfFailures(append(subset, extra))
			if err != nil {
				return false
			}
			return subsetOf(base, wider.AffectedServices)
		},
		gen.IntRange(3, 20),
		gen.Int64(),
		gen.IntRange(0, 1<<20),
	))

	properties.Property("health verdict renders identically across runs", prop.ForAll(
		func(n int, seed int64) bool {
			topo, _ := randomTree(n, seed)
			store := topology.NewStore()
			if err := store.Load(topo); err != nil {
				return false
			}
			engine := NewEngine(store)
			first, err := engine.NetworkHealth()
			if err != nil {
				return false
			}
			for i := 0; i < 3; i++ {
				again, err := engine.NetworkHealth()
				if err != nil || again.String() != first.String() {
					return false
				}
			}
			return true
		},
		gen.IntRange(3, 20),
		gen.Int64(),
	))

	properties.TestingRun(t)
}
