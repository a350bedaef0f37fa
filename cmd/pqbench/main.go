// ════════════════════════════════════════════════════════════════════════════════════════════════
// pqbench - Strategy Comparison Harness
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Component: Performance comparison of the priority queue storage strategies
//
// Description:
//   Replays the configured workloads against every configured strategy in parallel,
//   cross-checks the dequeue sequences by digest, records timings in SQLite and prints
//   a JSON report on stdout.
//
// Phases:
//   - Phase 1: Load and validate the YAML configuration
//   - Phase 2: Run each workload on all strategies (one goroutine per strategy)
//   - Phase 3: Verify digests agree, persist runs, emit the report
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-kit/log/level"

	"github.com/codewanderer42820/pqueue/debug"
)

func main() {
	var (
		configPath  = flag.String("config", "pqbench.yaml", "path to the YAML configuration")
		metricsAddr = flag.String("metrics-addr", "", "serve Prometheus metrics on this address and wait for a signal after the runs")
		quiet       = flag.Bool("quiet", false, "only log errors")
	)
	flag.Parse()

	if *quiet {
		debug.SetLogger(debug.NewLogger(os.Stderr, level.AllowError()))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *configPath, *metricsAddr, os.Stdout); err != nil {
		debug.DropError("FATAL", err)
		stop()
		os.Exit(1)
	}
}
