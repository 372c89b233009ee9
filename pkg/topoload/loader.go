// Package topoload reads topology files. The engine itself never touches
// I/O; binaries parse a YAML file (or fall back to the embedded demo fabric)
// and hand the result to the store.
package topoload

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/calligan/netgraph/pkg/topology"
)

//go:embed demo.yaml
var demoYAML []byte

// Parse decodes a YAML topology document. Referential integrity is not
// checked here; the store validates on Load.
func Parse(data []byte) (*topology.Topology, error) {
	var topo topology.Topology
	if err := yaml.Unmarshal(data, &topo); err != nil {
		return nil, fmt.Errorf("parse topology: %w", err)
	}
	return &topo, nil
}

// LoadFile reads and parses a YAML topology file.
func LoadFile(path string) (*topology.Topology, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read topology file: %w", err)
	}
	topo, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return topo, nil
}

// Demo returns the embedded datacenter demo topology: 13 devices, 12 links,
// 7 services, with one link derived DOWN and one explicitly DEGRADED.
func Demo() *topology.Topology {
	topo, err := Parse(demoYAML)
	if err != nil {
		// The demo file ships inside the binary; failing to parse it is a
		// build defect, not a runtime condition.
		panic(fmt.Sprintf("embedded demo topology is invalid: %v", err))
	}
	return topo
}
