// Package config loads the YAML file that drives the pqbench harness.
//
//	strategies: [binaryheap, array, bheap]
//	page_size: auto            # or a power of two >= 4
//	database: pqbench.db
//	workloads_file: workloads.json
//	workloads:
//	  - {name: random-10k, pattern: random, count: 10000, seed: 7, interleave: 0.25}
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"unsafe"

	"github.com/efficientgo/core/errors"
	"gopkg.in/yaml.v3"

	"github.com/codewanderer42820/pqueue/bheap"
	"github.com/codewanderer42820/pqueue/compare"
	"github.com/codewanderer42820/pqueue/constants"
	"github.com/codewanderer42820/pqueue/strategy"
	"github.com/codewanderer42820/pqueue/sysinfo"
	"github.com/codewanderer42820/pqueue/workload"
)

var ErrInvalid = errors.Newf("config: invalid")

// PageSize is a B-Heap page size that may be left to the host ("auto").
type PageSize struct {
	Slots int
	Auto  bool
}

func (p *PageSize) UnmarshalYAML(node *yaml.Node) error {
	if node.Value == "auto" {
		*p = PageSize{Auto: true}
		return nil
	}
	n, err := strconv.Atoi(node.Value)
	if err != nil {
		return errors.Wrapf(ErrInvalid, "page_size %q: want an integer or auto", node.Value)
	}
	*p = PageSize{Slots: n}
	return nil
}

// Resolve returns the page size in slots for the harness' int64 values.
func (p PageSize) Resolve() int {
	switch {
	case p.Auto:
		return sysinfo.SlotsPerPage(unsafe.Sizeof(int64(0)))
	case p.Slots == 0:
		return constants.DefaultPageSize
	}
	return p.Slots
}

// Config is the harness configuration.
type Config struct {
	Strategies    []strategy.Kind `yaml:"strategies"`
	PageSize      PageSize        `yaml:"page_size"`
	Database      string          `yaml:"database"`
	WorkloadsFile string          `yaml:"workloads_file"`
	Workloads     []workload.Spec `yaml:"workloads"`
}

// Load reads path, merges workloads_file (resolved relative to path) and
// returns a validated config with defaults applied.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "config: open")
	}
	defer f.Close()

	var cfg Config
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, errors.Wrapf(err, "config: decode %s", path)
	}

	if cfg.WorkloadsFile != "" {
		wpath := cfg.WorkloadsFile
		if !filepath.IsAbs(wpath) {
			wpath = filepath.Join(filepath.Dir(path), wpath)
		}
		wf, err := os.Open(wpath)
		if err != nil {
			return nil, errors.Wrap(err, "config: open workloads_file")
		}
		defer wf.Close()
		specs, err := workload.Load(wf)
		if err != nil {
			return nil, errors.Wrapf(err, "config: %s", wpath)
		}
		cfg.Workloads = append(cfg.Workloads, specs...)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if len(c.Strategies) == 0 {
		c.Strategies = append([]strategy.Kind(nil), strategy.Kinds...)
	}
	if c.Database == "" {
		c.Database = constants.DefaultDatabasePath
	}
	for i := range c.Workloads {
		c.Workloads[i].Normalize()
	}
}

// Validate checks the page size, that every strategy can be built with it
// and that workloads are well formed and uniquely named.
func (c *Config) Validate() error {
	if len(c.Workloads) == 0 {
		return errors.Wrap(ErrInvalid, "no workloads")
	}
	// The page size lands in every report row, so it must be valid even
	// when no B-Heap runs.
	pageSize := c.PageSize.Resolve()
	if _, err := bheap.New(compare.Ascending[int64], pageSize); err != nil {
		return invalid(err, "page_size %d", pageSize)
	}
	for _, kind := range c.Strategies {
		if _, err := strategy.New(kind, compare.Ascending[int64], pageSize, nil); err != nil {
			return invalid(err, "strategy %s", kind)
		}
	}
	seen := make(map[string]bool, len(c.Workloads))
	for _, w := range c.Workloads {
		if err := w.Validate(); err != nil {
			return invalid(err, "workload %q", w.Name)
		}
		if seen[w.Name] {
			return errors.Wrapf(ErrInvalid, "duplicate workload %q", w.Name)
		}
		seen[w.Name] = true
	}
	return nil
}

// invalid marks cause as a configuration error while keeping it matchable
// with errors.Is.
func invalid(cause error, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %w", ErrInvalid, fmt.Sprintf(format, args...), cause)
}
