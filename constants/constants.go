// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: constants.go - Queue geometry & harness tunables
//
// Purpose:
//   - Defines the B-Heap page geometry defaults shared by bheap, strategy and
//     the facade.
//   - Holds the defaults used by the pqbench harness when a config omits them.
//
// Notes:
//   - Page sizes are counted in slots, not bytes. 512 slots of an 8-byte value
//     fill one 4 KiB OS page, which is where the default comes from.
//
// ⚠️ No runtime logic here - all values must be compile-time resolvable
// ─────────────────────────────────────────────────────────────────────────────

package constants

// ──────────────────────────── B-Heap Geometry ─────────────────────────────

const (
	// DefaultPageSize is the slot count of one B-Heap page when none is given.
	DefaultPageSize = 512

	// MinPageSize is the smallest page the page-aware index math supports.
	// Pages of 1 or 2 slots leave no room for the two chained entry slots
	// every non-root page starts with, and the parent/child links stop
	// agreeing with each other.
	MinPageSize = 4

	// MaxPageSize caps one page at 16Mi slots. Larger pages could not be
	// allocated on the first Queue, so they are rejected at construction.
	MaxPageSize = 1 << 24
)

var _ [-int(DefaultPageSize & (DefaultPageSize - 1))]byte // must stay a power of two
var _ [-int(MinPageSize & (MinPageSize - 1))]byte
var _ [DefaultPageSize - MinPageSize]byte
var _ [-int(MaxPageSize & (MaxPageSize - 1))]byte

const _ uint = MaxPageSize - DefaultPageSize // default must not exceed the cap

// ─────────────────────────── Harness Defaults ─────────────────────────────

const (
	// DefaultDatabasePath is where pqbench records runs when the config is silent.
	DefaultDatabasePath = "pqbench.db"

	// DefaultWorkloadCount is the operation count for workloads that omit it.
	DefaultWorkloadCount = 10_000

	// DefaultSeed keeps generated workloads reproducible across runs.
	DefaultSeed = 69
)
