// Package workload generates reproducible operation scripts for comparing
// queue strategies and runs them against a pqueue.PriorityQueue.
//
// Every run folds its dequeue sequence into a SHA3-256 digest. Strategies
// that honor the heap order produce identical sequences for the same
// script, so differing digests expose an ordering bug without storing the
// sequences themselves.
package workload

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"io"
	"math/rand"
	"time"

	"github.com/efficientgo/core/errors"
	"github.com/sugawarayuuta/sonnet"
	"golang.org/x/crypto/sha3"

	"github.com/codewanderer42820/pqueue"
	"github.com/codewanderer42820/pqueue/constants"
)

// Pattern names the shape of the generated values.
type Pattern string

const (
	Ascending  Pattern = "ascending"  // already in priority order
	Descending Pattern = "descending" // worst case for sift-up
	Random     Pattern = "random"
	Duplicates Pattern = "duplicates" // few distinct values
	Sawtooth   Pattern = "sawtooth"   // descending runs on a rising baseline
)

var patterns = map[Pattern]bool{
	Ascending: true, Descending: true, Random: true, Duplicates: true, Sawtooth: true,
}

var (
	ErrInvalidSpec = errors.Newf("workload: invalid spec")
	ErrUnderflow   = errors.Newf("workload: script dequeued from an empty queue")
)

// Spec describes one workload.
type Spec struct {
	Name    string  `json:"name" yaml:"name"`
	Pattern Pattern `json:"pattern" yaml:"pattern"`
	Count   int     `json:"count" yaml:"count"` // values queued
	Seed    int64   `json:"seed" yaml:"seed"`

	// Interleave is the probability of a dequeue following each queue.
	// Whatever is left is drained at the end.
	Interleave float64 `json:"interleave" yaml:"interleave"`
}

// Normalize fills defaults for omitted fields.
func (s *Spec) Normalize() {
	if s.Count == 0 {
		s.Count = constants.DefaultWorkloadCount
	}
	if s.Seed == 0 {
		s.Seed = constants.DefaultSeed
	}
	if s.Pattern == "" {
		s.Pattern = Random
	}
}

// Validate reports the first problem with s.
func (s Spec) Validate() error {
	switch {
	case s.Name == "":
		return errors.Wrap(ErrInvalidSpec, "missing name")
	case !patterns[s.Pattern]:
		return errors.Wrapf(ErrInvalidSpec, "%q: unknown pattern %q", s.Name, s.Pattern)
	case s.Count <= 0:
		return errors.Wrapf(ErrInvalidSpec, "%q: count must be positive", s.Name)
	case s.Interleave < 0 || s.Interleave > 1:
		return errors.Wrapf(ErrInvalidSpec, "%q: interleave must be within [0, 1]", s.Name)
	}
	return nil
}

// Load decodes a JSON array of specs, normalizes and validates each.
func Load(r io.Reader) ([]Spec, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "workload: read")
	}
	var specs []Spec
	if err := sonnet.Unmarshal(raw, &specs); err != nil {
		return nil, errors.Wrap(err, "workload: decode")
	}
	for i := range specs {
		specs[i].Normalize()
		if err := specs[i].Validate(); err != nil {
			return nil, err
		}
	}
	return specs, nil
}

// ============================================================================
// SCRIPTS
// ============================================================================

type OpKind uint8

const (
	OpQueue OpKind = iota
	OpDequeue
)

// Op is one scripted queue operation. Value is unused for OpDequeue.
type Op struct {
	Kind  OpKind
	Value int64
}

// Generate expands s into a deterministic script: Count queues, dequeues
// interleaved with probability Interleave, then a full drain.
func Generate(s Spec) []Op {
	rng := rand.New(rand.NewSource(s.Seed))
	ops := make([]Op, 0, 2*s.Count)
	pending := 0
	for i := range s.Count {
		ops = append(ops, Op{Kind: OpQueue, Value: value(s, i, rng)})
		pending++
		if s.Interleave > 0 && rng.Float64() < s.Interleave {
			ops = append(ops, Op{Kind: OpDequeue})
			pending--
		}
	}
	for ; pending > 0; pending-- {
		ops = append(ops, Op{Kind: OpDequeue})
	}
	return ops
}

func value(s Spec, i int, rng *rand.Rand) int64 {
	switch s.Pattern {
	case Ascending:
		return int64(i)
	case Descending:
		return int64(s.Count - i)
	case Duplicates:
		return rng.Int63n(int64(max(s.Count/64, 2)))
	case Sawtooth:
		return int64(i/256*64 + (255 - i%256))
	}
	return rng.Int63n(int64(s.Count) * 4)
}

// ============================================================================
// EXECUTION
// ============================================================================

// Digest is the SHA3-256 of a dequeue sequence, each value big-endian.
type Digest [32]byte

func (d Digest) String() string { return hex.EncodeToString(d[:]) }

// Result summarizes one scripted run.
type Result struct {
	Queued   int
	Dequeued int
	MaxLen   int
	Digest   Digest
	Elapsed  time.Duration
}

// cancelCheckMask sets how often Run polls ctx: every 4096 ops.
const cancelCheckMask = 1<<12 - 1

// Run replays ops against q. It fails on ctx cancellation or when the
// script dequeues from an empty queue.
func Run(ctx context.Context, q *pqueue.PriorityQueue[int64], ops []Op) (Result, error) {
	var (
		res Result
		buf [8]byte
	)
	h := sha3.New256()
	start := time.Now()
	for i, op := range ops {
		if i&cancelCheckMask == 0 {
			if err := ctx.Err(); err != nil {
				return res, err
			}
		}
		switch op.Kind {
		case OpQueue:
			q.Queue(op.Value)
			res.Queued++
			res.MaxLen = max(res.MaxLen, q.Len())
		case OpDequeue:
			v, err := q.Dequeue()
			if err != nil {
				return res, errors.Wrapf(ErrUnderflow, "op %d: %v", i, err)
			}
			binary.BigEndian.PutUint64(buf[:], uint64(v))
			h.Write(buf[:])
			res.Dequeued++
		}
	}
	res.Elapsed = time.Since(start)
	h.Sum(res.Digest[:0])
	return res, nil
}

// DigestOf hashes values the same way Run does.
func DigestOf(values []int64) Digest {
	var (
		d   Digest
		buf [8]byte
	)
	h := sha3.New256()
	for _, v := range values {
		binary.BigEndian.PutUint64(buf[:], uint64(v))
		h.Write(buf[:])
	}
	h.Sum(d[:0])
	return d
}
