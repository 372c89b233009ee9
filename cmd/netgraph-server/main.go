package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/calligan/netgraph/pkg/api"
	"github.com/calligan/netgraph/pkg/logging"
	"github.com/calligan/netgraph/pkg/metrics"
	"github.com/calligan/netgraph/pkg/topoload"
	"github.com/calligan/netgraph/pkg/topology"
)

func main() {
	port := flag.Int("port", 8080, "Server port")
	topoPath := flag.String("topology", "", "Topology YAML file (embedded demo fabric when empty)")
	logLevel := flag.String("log-level", os.Getenv("LOG_LEVEL"), "Log level (DEBUG, INFO, WARN, ERROR)")
	warnPct := flag.Float64("warn-pct", 70, "Utilization percentage that derives DEGRADED")
	critPct := flag.Float64("crit-pct", 85, "Utilization percentage that derives DOWN")
	flag.Parse()

	base := logging.NewDefaultLogger()
	if *logLevel != "" {
		base.SetLevel(logging.ParseLevel(*logLevel))
	}
	log := base.With(logging.Component("netgraph-server"))

	topo := topoload.Demo()
	source := "embedded demo"
	if *topoPath != "" {
		loaded, err := topoload.LoadFile(*topoPath)
		if err != nil {
			log.Error("failed to read topology", logging.Error(err))
			os.Exit(1)
		}
		topo = loaded
		source = *topoPath
	}

	store := topology.NewStore(topology.WithThresholds(topology.Thresholds{
		WarningPct:  *warnPct,
		CriticalPct: *critPct,
	}))
	if err := store.Load(topo); err != nil {
		log.Error("topology rejected", logging.Error(err))
		os.Exit(1)
	}

	registry := metrics.DefaultRegistry()
	stats := store.Stats()
	registry.RecordTopologyLoad(true, stats.Devices, stats.Links, stats.Services)
	log.Info("topology loaded",
		logging.String("source", source),
		logging.Int("devices", stats.Devices),
		logging.Int("links", stats.Links),
		logging.Int("services", stats.Services))

	server := api.NewServer(store,
		api.WithLogger(log),
		api.WithMetrics(registry),
		api.WithPort(*port),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil {
		log.Error("server failed", logging.Error(err))
		os.Exit(1)
	}
	log.Info("shutdown complete")
}
