// Package diagnostics computes final diagnostic answers over the topology
// graph: health summaries, upstream path traces, blast-radius analysis and
// per-service diagnosis. Every operation is a bounded, synchronous traversal
// of a single store snapshot, so concurrent calls and concurrent topology
// mutations never interleave inside one answer.
package diagnostics

import (
	"time"

	"github.com/calligan/netgraph/pkg/logging"
	"github.com/calligan/netgraph/pkg/metrics"
	"github.com/calligan/netgraph/pkg/topology"
)

// Engine answers diagnostic queries against a topology store.
type Engine struct {
	store   *topology.Store
	log     logging.Logger
	metrics *metrics.Registry
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(l logging.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithMetrics sets the metrics registry queries are recorded to.
func WithMetrics(r *metrics.Registry) Option {
	return func(e *Engine) { e.metrics = r }
}

// NewEngine creates a diagnostic engine over the given store.
func NewEngine(store *topology.Store, opts ...Option) *Engine {
	e := &Engine{
		store: store,
		log:   logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// snapshot returns a loaded view or ErrNotLoaded.
func (e *Engine) snapshot(op string) (*topology.View, error) {
	v := e.store.Snapshot()
	if v.Stats().Devices == 0 {
		return nil, topology.NewError(op).Topology().Cause(topology.ErrNotLoaded).Err()
	}
	return v, nil
}

// record logs and records one query execution.
func (e *Engine) record(queryType string, start time.Time, visited int, err error) {
	elapsed := time.Since(start)
	status := "ok"
	if err != nil {
		status = "error"
		e.log.Debug("query failed",
			logging.Query(queryType),
			logging.Error(err),
			logging.Latency(elapsed))
	} else {
		e.log.Debug("query executed",
			logging.Query(queryType),
			logging.Int("nodes_visited", visited),
			logging.Latency(elapsed))
	}
	if e.metrics != nil {
		e.metrics.RecordQuery(queryType, status, elapsed, visited)
	}
}

// RawTopology returns the full entity dump: every device, link, service and
// connection, for consumers that want to interpret the graph themselves.
func (e *Engine) RawTopology() (*topology.Topology, error) {
	start := time.Now()
	v, err := e.snapshot("RawTopology")
	if err != nil {
		e.record("raw_topology", start, 0, err)
		return nil, err
	}
	topo := v.Export()
	e.record("raw_topology", start, len(topo.Devices), nil)
	return topo, nil
}
