package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/calligan/netgraph/pkg/diagnostics"
	"github.com/calligan/netgraph/pkg/topoload"
	"github.com/calligan/netgraph/pkg/topology"
)

const usage = `netgraph - network knowledge-graph diagnostics

Usage:
  netgraph [flags] health
  netgraph [flags] path <service>
  netgraph [flags] blast <link>
  netgraph [flags] diagnose <service> [issue]
  netgraph [flags] impact <link> [link...]
  netgraph [flags] dump

Flags:
  -topology path   Topology YAML file (embedded demo fabric when empty)
`

func main() {
	topoPath := flag.String("topology", "", "Topology YAML file")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	topo := topoload.Demo()
	if *topoPath != "" {
		loaded, err := topoload.LoadFile(*topoPath)
		if err != nil {
			fatal(err)
		}
		topo = loaded
	}

	store := topology.NewStore()
	if err := store.Load(topo); err != nil {
		fatal(err)
	}
	engine := diagnostics.NewEngine(store)

	switch cmd, rest := args[0], args[1:]; cmd {
	case "health":
		summary, err := engine.NetworkHealth()
		if err != nil {
			fatal(err)
		}
		fmt.Println(summary)

	case "path":
		if len(rest) != 1 {
			fatal(fmt.Errorf("path needs exactly one service"))
		}
		trace, err := engine.ServicePath(rest[0])
		if err != nil {
			fatal(err)
		}
		fmt.Println(trace)

	case "blast":
		if len(rest) != 1 {
			fatal(fmt.Errorf("blast needs exactly one link"))
		}
		impact, err := engine.BlastRadius(rest[0])
		if err != nil {
			fatal(err)
		}
		fmt.Println(impact)

	case "diagnose":
		if len(rest) < 1 || len(rest) > 2 {
			fatal(fmt.Errorf("diagnose needs a service and an optional issue"))
		}
		issue := "timeout"
		if len(rest) == 2 {
			issue = rest[1]
		}
		diag, err := engine.DiagnoseService(rest[0], issue)
		if err != nil {
			fatal(err)
		}
		fmt.Println(diag)

	case "impact":
		if len(rest) == 0 {
			fatal(fmt.Errorf("impact needs at least one link"))
		}
		impact, err := engine.ImpactOfFailures(rest)
		if err != nil {
			fatal(err)
		}
		fmt.Println(impact)

	case "dump":
		raw, err := engine.RawTopology()
		if err != nil {
			fatal(err)
		}
		out, err := json.MarshalIndent(raw, "", "  ")
		if err != nil {
			fatal(err)
		}
		fmt.Println(string(out))

	default:
		flag.Usage()
		os.Exit(2)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "netgraph: %v\n", err)
	os.Exit(1)
}
