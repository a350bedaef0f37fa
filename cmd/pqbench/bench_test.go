package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sugawarayuuta/sonnet"

	"github.com/codewanderer42820/pqueue/debug"
	"github.com/codewanderer42820/pqueue/metrics"
	"github.com/codewanderer42820/pqueue/resultdb"
	"github.com/codewanderer42820/pqueue/strategy"
	"github.com/codewanderer42820/pqueue/workload"
)

func TestRun(t *testing.T) {
	prev := debug.Logger()
	debug.SetLogger(nil)
	t.Cleanup(func() { debug.SetLogger(prev) })

	dir := t.TempDir()
	dbPath := filepath.Join(dir, "runs.db")
	cfgPath := filepath.Join(dir, "bench.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
page_size: 4
database: `+dbPath+`
workloads:
  - {name: rand, pattern: random, count: 3000, seed: 4, interleave: 0.3}
  - {name: saw, pattern: sawtooth, count: 1500}
`), 0o644))

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), cfgPath, "", &out))

	var report Report
	require.NoError(t, sonnet.Unmarshal(out.Bytes(), &report))
	assert.Equal(t, 4, report.PageSize)
	require.Len(t, report.Workloads, 2)
	for _, w := range report.Workloads {
		require.Len(t, w.Runs, len(strategy.Kinds))
		for _, r := range w.Runs {
			assert.Equal(t, w.Digest, r.Digest)
			assert.Positive(t, r.ID)
		}
	}

	db, err := resultdb.Open(context.Background(), dbPath)
	require.NoError(t, err)
	defer db.Close()
	runs, err := db.Runs(context.Background(), "saw")
	require.NoError(t, err)
	assert.Len(t, runs, len(strategy.Kinds))
}

func TestBenchSingleStrategy(t *testing.T) {
	ctx := context.Background()
	db, err := resultdb.Open(ctx, filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer db.Close()

	spec := workload.Spec{Name: "asc", Pattern: workload.Ascending, Count: 100, Seed: 1}
	wr, err := bench(ctx, db, metrics.New(prometheus.NewRegistry()), []strategy.Kind{strategy.BHeap}, 8, spec)
	require.NoError(t, err)
	require.Len(t, wr.Runs, 1)
	assert.Equal(t, 200, wr.Runs[0].Ops)
	assert.Equal(t, 100, wr.Runs[0].MaxLen)
	assert.Equal(t, "bheap", wr.Runs[0].Strategy)
}

func TestRunBadConfig(t *testing.T) {
	err := run(context.Background(), filepath.Join(t.TempDir(), "nope.yaml"), "", &bytes.Buffer{})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCheckDigests(t *testing.T) {
	run := func(kind, digest string) resultdb.Run {
		return resultdb.Run{Workload: "w", Strategy: kind, Digest: digest}
	}
	tests := []struct {
		name    string
		runs    []resultdb.Run
		wantErr bool
	}{
		{"none", nil, false},
		{"single", []resultdb.Run{run("bheap", "aa")}, false},
		{"agree", []resultdb.Run{run("binary-heap", "aa"), run("array", "aa"), run("bheap", "aa")}, false},
		{"last differs", []resultdb.Run{run("binary-heap", "aa"), run("array", "aa"), run("bheap", "bb")}, true},
		{"second differs", []resultdb.Run{run("binary-heap", "aa"), run("array", "cc"), run("bheap", "aa")}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkDigests(tt.runs)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrDigestMismatch)
			assert.Contains(t, err.Error(), tt.runs[0].Strategy)
		})
	}
}
