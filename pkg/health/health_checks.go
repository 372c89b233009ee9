package health

import (
	"fmt"
	"runtime"

	"github.com/calligan/netgraph/pkg/topology"
)

// TopologyCheck reports whether a topology is loaded and how big it is. A
// store with zero devices makes the server unready: every diagnostic would
// fail anyway.
func TopologyCheck(stats func() topology.Stats) CheckFunc {
	return func() Check {
		check := Check{
			Name:    "topology",
			Details: make(map[string]any),
		}

		s := stats()
		check.Details["devices"] = s.Devices
		check.Details["links"] = s.Links
		check.Details["services"] = s.Services

		if s.Devices == 0 {
			check.Status = StatusUnhealthy
			check.Message = "No topology loaded"
		} else {
			check.Status = StatusHealthy
			check.Message = fmt.Sprintf("%d devices, %d links, %d services", s.Devices, s.Links, s.Services)
		}
		return check
	}
}

// LinkStatusCheck mirrors the state of the monitored network into the
// process health report: dead links degrade it without making the process
// itself unhealthy.
func LinkStatusCheck(downLinks func() []*topology.Link) CheckFunc {
	return func() Check {
		check := Check{
			Name:    "links",
			Details: make(map[string]any),
		}

		down := downLinks()
		check.Details["down_links"] = len(down)

		if len(down) > 0 {
			ids := make([]string, 0, len(down))
			for _, l := range down {
				ids = append(ids, l.ID)
			}
			check.Status = StatusDegraded
			check.Message = "Dead links in topology"
			check.Details["ids"] = ids
		} else {
			check.Status = StatusHealthy
			check.Message = "All links operational"
		}
		return check
	}
}

// MemoryCheck reports Go heap usage.
func MemoryCheck() CheckFunc {
	return func() Check {
		check := Check{
			Name:    "memory",
			Details: make(map[string]any),
		}

		var m runtime.MemStats
		runtime.ReadMemStats(&m)

		check.Details["alloc_bytes"] = m.Alloc
		check.Details["sys_bytes"] = m.Sys

		usagePercent := float64(m.Alloc) / float64(m.Sys) * 100
		if usagePercent > 90 {
			check.Status = StatusDegraded
			check.Message = "High memory usage"
		} else {
			check.Status = StatusHealthy
			check.Message = "Memory usage normal"
		}
		return check
	}
}
