package topology

import (
	"sort"
)

// View is an immutable point-in-time snapshot of the graph. All traversal
// primitives hang off the view so a multi-step diagnostic reads a single
// generation of the topology.
type View struct {
	state      *graphState
	thresholds Thresholds
	generation uint64
}

// Generation identifies the state generation this view observes.
func (v *View) Generation() uint64 {
	return v.generation
}

// Thresholds returns the derivation thresholds in effect for this view.
func (v *View) Thresholds() Thresholds {
	return v.thresholds
}

// Neighbor pairs a directly connected device with the link(s) carrying the
// connection. Links is empty when the CONNECTS_TO edge has no matching link
// entity (pure logical adjacency).
type Neighbor struct {
	Device *Device
	Links  []*Link
}

// Stats summarizes entity counts.
type Stats struct {
	Devices     int `json:"devices"`
	Links       int `json:"links"`
	Services    int `json:"services"`
	Connections int `json:"connections"`
}

// GetDevice returns the device with the given ID.
func (v *View) GetDevice(id string) (*Device, error) {
	d, ok := v.state.devices[id]
	if !ok {
		return nil, DeviceNotFoundError("GetDevice", id)
	}
	return d, nil
}

// GetLink returns the link with the given ID.
func (v *View) GetLink(id string) (*Link, error) {
	l, ok := v.state.links[id]
	if !ok {
		return nil, LinkNotFoundError("GetLink", id)
	}
	return l, nil
}

// GetService returns the service with the given ID.
func (v *View) GetService(id string) (*Service, error) {
	s, ok := v.state.services[id]
	if !ok {
		return nil, ServiceNotFoundError("GetService", id)
	}
	return s, nil
}

// FindServiceByName returns the first service whose Name matches, for
// callers that address services the way the demo does (by name). IDs are
// tried first.
func (v *View) FindServiceByName(name string) (*Service, error) {
	if s, ok := v.state.services[name]; ok {
		return s, nil
	}
	ids := make([]string, 0, len(v.state.services))
	for id := range v.state.services {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if v.state.services[id].Name == name {
			return v.state.services[id], nil
		}
	}
	return nil, ServiceNotFoundError("FindServiceByName", name)
}

// ServiceHost returns the device a service runs on.
func (v *View) ServiceHost(serviceID string) (*Device, error) {
	svc, err := v.GetService(serviceID)
	if err != nil {
		return nil, err
	}
	host, ok := v.state.devices[svc.Host]
	if !ok {
		// Unreachable after a successful Load; kept as a guard.
		return nil, DeviceNotFoundError("ServiceHost", svc.Host)
	}
	return host, nil
}

// Neighbors returns the devices directly connected to deviceID via
// CONNECTS_TO, in sorted order, each paired with the connecting links.
func (v *View) Neighbors(deviceID string) ([]Neighbor, error) {
	if _, ok := v.state.devices[deviceID]; !ok {
		return nil, DeviceNotFoundError("Neighbors", deviceID)
	}

	seen := make(map[string]bool)
	ids := make([]string, 0, len(v.state.upstream[deviceID])+len(v.state.downstream[deviceID]))
	for _, adj := range [][]string{v.state.upstream[deviceID], v.state.downstream[deviceID]} {
		for _, id := range adj {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	sort.Strings(ids)

	neighbors := make([]Neighbor, 0, len(ids))
	for _, id := range ids {
		neighbors = append(neighbors, Neighbor{
			Device: v.state.devices[id],
			Links:  v.state.linksByPair[canonicalPair(deviceID, id)],
		})
	}
	return neighbors, nil
}

// Upstream returns the IDs of the devices directly upstream of deviceID
// (the From sides of its incoming CONNECTS_TO edges), sorted.
func (v *View) Upstream(deviceID string) []string {
	return v.state.upstream[deviceID]
}

// Downstream returns the IDs of the devices directly downstream of
// deviceID, sorted.
func (v *View) Downstream(deviceID string) []string {
	return v.state.downstream[deviceID]
}

// LinksBetween returns the links whose endpoint pair matches {a, b},
// regardless of stored direction.
func (v *View) LinksBetween(a, b string) []*Link {
	return v.state.linksByPair[canonicalPair(a, b)]
}

// LinksByStatus returns all links whose effective status matches, sorted by
// ID for reproducible output.
func (v *View) LinksByStatus(status LinkStatus) []*Link {
	out := make([]*Link, 0)
	for _, l := range v.state.links {
		if l.EffectiveStatus(v.thresholds) == status {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Links returns all links sorted by ID.
func (v *View) Links() []*Link {
	out := make([]*Link, 0, len(v.state.links))
	for _, l := range v.state.links {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Services returns all services sorted by ID.
func (v *View) Services() []*Service {
	out := make([]*Service, 0, len(v.state.services))
	for _, s := range v.state.services {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Devices returns all devices sorted by ID.
func (v *View) Devices() []*Device {
	out := make([]*Device, 0, len(v.state.devices))
	for _, d := range v.state.devices {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ServicesOn returns the IDs of services hosted on a device, sorted.
func (v *View) ServicesOn(deviceID string) []string {
	return v.state.hostServices[deviceID]
}

// Stats returns entity counts for this view.
func (v *View) Stats() Stats {
	return Stats{
		Devices:     len(v.state.devices),
		Links:       len(v.state.links),
		Services:    len(v.state.services),
		Connections: len(v.state.connections),
	}
}

// Export returns a deep, sorted copy of the topology this view observes.
func (v *View) Export() *Topology {
	topo := &Topology{
		Connections: make([]Connection, len(v.state.connections)),
	}
	for _, d := range v.Devices() {
		topo.Devices = append(topo.Devices, *d)
	}
	for _, l := range v.Links() {
		topo.Links = append(topo.Links, *l)
	}
	for _, s := range v.Services() {
		topo.Services = append(topo.Services, *s)
	}
	copy(topo.Connections, v.state.connections)
	topo.Sort()
	return topo
}

// Store-level conveniences that snapshot per call. Callers needing a
// consistent multi-step read should take a Snapshot themselves.

// GetDevice returns the device with the given ID.
func (s *Store) GetDevice(id string) (*Device, error) {
	return s.Snapshot().GetDevice(id)
}

// GetLink returns the link with the given ID.
func (s *Store) GetLink(id string) (*Link, error) {
	return s.Snapshot().GetLink(id)
}

// GetService returns the service with the given ID.
func (s *Store) GetService(id string) (*Service, error) {
	return s.Snapshot().GetService(id)
}

// ServiceHost returns the device a service runs on.
func (s *Store) ServiceHost(serviceID string) (*Device, error) {
	return s.Snapshot().ServiceHost(serviceID)
}

// Neighbors returns the directly connected devices with their links.
func (s *Store) Neighbors(deviceID string) ([]Neighbor, error) {
	return s.Snapshot().Neighbors(deviceID)
}

// LinksByStatus returns all links with the given effective status.
func (s *Store) LinksByStatus(status LinkStatus) []*Link {
	return s.Snapshot().LinksByStatus(status)
}

// Stats returns entity counts.
func (s *Store) Stats() Stats {
	return s.Snapshot().Stats()
}
