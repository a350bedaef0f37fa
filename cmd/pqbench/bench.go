package main

import (
	"context"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/efficientgo/core/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sugawarayuuta/sonnet"
	"golang.org/x/sync/errgroup"

	"github.com/codewanderer42820/pqueue"
	"github.com/codewanderer42820/pqueue/config"
	"github.com/codewanderer42820/pqueue/debug"
	"github.com/codewanderer42820/pqueue/metrics"
	"github.com/codewanderer42820/pqueue/resultdb"
	"github.com/codewanderer42820/pqueue/strategy"
	"github.com/codewanderer42820/pqueue/workload"
)

var ErrDigestMismatch = errors.Newf("pqbench: strategies disagree on dequeue order")

// Report is the JSON document written to stdout.
type Report struct {
	PageSize  int              `json:"page_size"`
	Workloads []WorkloadReport `json:"workloads"`
}

type WorkloadReport struct {
	Name   string         `json:"name"`
	Digest string         `json:"digest"`
	Runs   []resultdb.Run `json:"runs"`
}

// run executes every configured workload and writes the report to out.
func run(ctx context.Context, configPath, metricsAddr string, out io.Writer) error {
	debug.DropMessage("INIT", "loading "+configPath)
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	if metricsAddr != "" {
		srv, err := serveMetrics(metricsAddr, reg)
		if err != nil {
			return err
		}
		defer srv.Close()
	}

	db, err := resultdb.Open(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	pageSize := cfg.PageSize.Resolve()
	report := Report{PageSize: pageSize}
	for _, w := range cfg.Workloads {
		wr, err := bench(ctx, db, m, cfg.Strategies, pageSize, w)
		if err != nil {
			return errors.Wrapf(err, "workload %s", w.Name)
		}
		report.Workloads = append(report.Workloads, wr)
	}

	b, err := sonnet.Marshal(report)
	if err != nil {
		return errors.Wrap(err, "pqbench: encode report")
	}
	if _, err := out.Write(append(b, '\n')); err != nil {
		return err
	}

	if metricsAddr != "" {
		debug.DropMessage("METRICS", "runs finished; serving until interrupted")
		<-ctx.Done()
	}
	return nil
}

// bench runs one workload on every strategy concurrently. Each goroutine
// owns its queue; only the metrics collectors are shared.
func bench(ctx context.Context, db *resultdb.DB, m *metrics.Metrics, kinds []strategy.Kind, pageSize int, w workload.Spec) (WorkloadReport, error) {
	ops := workload.Generate(w)
	runs := make([]resultdb.Run, len(kinds))

	g, gctx := errgroup.WithContext(ctx)
	for i, kind := range kinds {
		g.Go(func() error {
			q, err := pqueue.New(pqueue.Options[int64]{
				Strategy: kind,
				PageSize: pageSize,
				Metrics:  m,
				Name:     w.Name + "/" + kind.String(),
			})
			if err != nil {
				return err
			}
			started := time.Now()
			res, err := workload.Run(gctx, q, ops)
			if err != nil {
				return errors.Wrapf(err, "strategy %s", kind)
			}
			runs[i] = resultdb.Run{
				StartedAt: started,
				Workload:  w.Name,
				Strategy:  kind.String(),
				PageSize:  pageSize,
				Ops:       len(ops),
				MaxLen:    res.MaxLen,
				Elapsed:   res.Elapsed,
				Digest:    res.Digest.String(),
			}
			debug.DropFields("RUN", "workload", w.Name, "strategy", kind, "ops", len(ops), "elapsed", res.Elapsed)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return WorkloadReport{}, err
	}

	if err := checkDigests(runs); err != nil {
		return WorkloadReport{}, errors.Wrapf(err, "workload %s", w.Name)
	}

	for i := range runs {
		rec, err := db.Record(ctx, runs[i])
		if err != nil {
			return WorkloadReport{}, err
		}
		runs[i] = rec
	}
	return WorkloadReport{Name: w.Name, Digest: runs[0].Digest, Runs: runs}, nil
}

// checkDigests fails with ErrDigestMismatch naming the first run whose
// dequeue order differs from runs[0].
func checkDigests(runs []resultdb.Run) error {
	if len(runs) < 2 {
		return nil
	}
	for _, r := range runs[1:] {
		if r.Digest != runs[0].Digest {
			return errors.Wrapf(ErrDigestMismatch, "%s=%s %s=%s",
				runs[0].Strategy, runs[0].Digest, r.Strategy, r.Digest)
		}
	}
	return nil
}

func serveMetrics(addr string, reg *prometheus.Registry) (*http.Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errors.Wrapf(err, "pqbench: listen %s", addr)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != http.ErrServerClosed {
			debug.DropError("METRICS", err)
		}
	}()
	debug.DropMessage("METRICS", "serving on "+ln.Addr().String())
	return srv, nil
}
