// Package topology holds the typed network property graph (devices, links,
// services, connections) and exposes the traversal primitives the diagnostic
// engine is built on.
//
// The store is read-mostly: queries run concurrently against an immutable
// published state, while mutations (Load, simulated status changes) build a
// new state under an exclusive lock and swap it in atomically. A Snapshot
// taken before a mutation keeps observing the old generation, so a
// multi-step diagnostic never sees a half-mutated graph.
package topology

import (
	"sort"
	"sync"
)

// Store owns the topology graph. The zero value is not usable; construct
// with NewStore.
type Store struct {
	mu         sync.RWMutex
	thresholds Thresholds
	state      *graphState
	generation uint64
}

// graphState is an immutable snapshot of the loaded topology. Once published
// to Store.state it is never mutated; mutators clone what they change.
type graphState struct {
	devices     map[string]*Device
	links       map[string]*Link
	services    map[string]*Service
	connections []Connection

	// Adjacency derived from CONNECTS_TO edges. Upstream of X are the From
	// sides of edges pointing at X; downstream the To sides of edges
	// leaving X. All slices are sorted for reproducible traversal order.
	upstream   map[string][]string
	downstream map[string][]string

	// linksByPair indexes links by their canonical endpoint pair so a
	// CONNECTS_TO edge can be matched to the link(s) carrying it. Parallel
	// links between the same pair are legal (redundant uplinks).
	linksByPair map[pairKey][]*Link

	hostServices map[string][]string
}

// Option configures a Store.
type Option func(*Store)

// WithThresholds overrides the utilization thresholds used to derive link
// status when no explicit status is stored.
func WithThresholds(t Thresholds) Option {
	return func(s *Store) { s.thresholds = t }
}

// NewStore creates an empty store. Queries against an empty store return
// ErrNotLoaded-wrapped or not-found errors until Load succeeds.
func NewStore(opts ...Option) *Store {
	s := &Store{
		thresholds: DefaultThresholds(),
		state:      emptyState(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func emptyState() *graphState {
	return &graphState{
		devices:      make(map[string]*Device),
		links:        make(map[string]*Link),
		services:     make(map[string]*Service),
		upstream:     make(map[string][]string),
		downstream:   make(map[string][]string),
		linksByPair:  make(map[pairKey][]*Link),
		hostServices: make(map[string][]string),
	}
}

// Thresholds returns the configured derivation thresholds.
func (s *Store) Thresholds() Thresholds {
	return s.thresholds
}

// Snapshot returns an immutable point-in-time view of the graph. The view
// stays valid (and stale) across later mutations.
func (s *Store) Snapshot() *View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return &View{state: s.state, thresholds: s.thresholds, generation: s.generation}
}

// publish swaps in a new state generation. Callers hold s.mu.
func (s *Store) publish(state *graphState) {
	s.state = state
	s.generation++
}

// Reset drops the loaded topology. A subsequent Load restores service.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.publish(emptyState())
}

// SetLinkStatus overrides a link's stored status, as a failure simulation
// harness would. Passing an empty status clears the override so the status
// derives from utilization again.
func (s *Store) SetLinkStatus(id string, status LinkStatus) error {
	return s.mutateLink("SetLinkStatus", id, func(l *Link) {
		l.Status = status
	})
}

// SetLinkUtilization updates a link's utilization percentage.
func (s *Store) SetLinkUtilization(id string, pct float64) error {
	return s.mutateLink("SetLinkUtilization", id, func(l *Link) {
		l.UtilizationPct = pct
	})
}

// mutateLink clones the link map, applies fn to the named link and publishes
// a new generation. Snapshots taken earlier are unaffected.
func (s *Store) mutateLink(op, id string, fn func(*Link)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.state.links[id]
	if !ok {
		return LinkNotFoundError(op, id)
	}

	updated := *old
	fn(&updated)

	next := *s.state
	next.links = make(map[string]*Link, len(s.state.links))
	for k, v := range s.state.links {
		next.links[k] = v
	}
	next.links[id] = &updated

	next.linksByPair = make(map[pairKey][]*Link, len(s.state.linksByPair))
	for _, l := range next.links {
		key := canonicalPair(l.Source, l.Target)
		next.linksByPair[key] = append(next.linksByPair[key], l)
	}
	for _, ls := range next.linksByPair {
		sort.Slice(ls, func(i, j int) bool { return ls[i].ID < ls[j].ID })
	}

	s.publish(&next)
	return nil
}

// Export returns a deep, sorted copy of the loaded topology, the raw dump
// an unlucky downstream consumer would have to parse itself.
func (s *Store) Export() *Topology {
	return s.Snapshot().Export()
}
