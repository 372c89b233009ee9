package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initQueryMetrics() {
	r.QueriesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "netgraph_queries_total",
			Help: "Total number of diagnostic queries executed",
		},
		[]string{"query_type", "status"},
	)

	r.QueryDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "netgraph_query_duration_seconds",
			Help:    "Diagnostic query execution duration in seconds",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.05, 0.1, 0.5, 1.0},
		},
		[]string{"query_type"},
	)

	r.QueryNodesVisited = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "netgraph_query_nodes_visited",
			Help:    "Number of graph nodes visited per query",
			Buckets: []float64{10, 50, 100, 500, 1000, 5000},
		},
		[]string{"query_type"},
	)

	r.SlowQueries = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "netgraph_slow_queries_total",
			Help: "Total number of slow diagnostic queries (>1s)",
		},
		[]string{"query_type"},
	)
}
