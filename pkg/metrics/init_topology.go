package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initTopologyMetrics() {
	r.TopologyDevices = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "netgraph_topology_devices",
			Help: "Number of devices in the loaded topology",
		},
	)

	r.TopologyLinks = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "netgraph_topology_links",
			Help: "Number of links in the loaded topology",
		},
	)

	r.TopologyServices = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "netgraph_topology_services",
			Help: "Number of services in the loaded topology",
		},
	)

	r.TopologyLinksByStatus = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "netgraph_topology_links_by_status",
			Help: "Number of links per effective status",
		},
		[]string{"status"},
	)

	r.TopologyLoadsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "netgraph_topology_loads_total",
			Help: "Total number of topology load attempts",
		},
		[]string{"status"},
	)

	r.TopologyGeneration = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "netgraph_topology_generation",
			Help: "Current topology state generation",
		},
	)
}
