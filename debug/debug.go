// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: debug.go - cold-path structured logging
//
// Purpose:
//   - Logs setup, configuration and harness events as logfmt lines.
//   - Used only in cold paths: config loading, run boundaries, failures.
//
// Notes:
//   - Backed by go-kit/log; the sink is swappable for tests and -quiet runs.
//   - Queue operations never log.
// ─────────────────────────────────────────────────────────────────────────────

package debug

import (
	"io"
	"os"
	"sync/atomic"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

var current atomic.Pointer[log.Logger]

func init() {
	SetLogger(NewLogger(os.Stderr, level.AllowInfo()))
}

// NewLogger returns a timestamped logfmt logger writing to w, filtered by
// the given level option (level.AllowInfo(), level.AllowDebug(), ...).
func NewLogger(w io.Writer, allow level.Option) log.Logger {
	l := log.NewLogfmtLogger(log.NewSyncWriter(w))
	l = log.With(l, "ts", log.DefaultTimestampUTC)
	return level.NewFilter(l, allow)
}

// SetLogger replaces the package sink. A nil logger silences output.
func SetLogger(l log.Logger) {
	if l == nil {
		l = log.NewNopLogger()
	}
	current.Store(&l)
}

// Logger returns the active sink.
func Logger() log.Logger {
	return *current.Load()
}

// DropMessage logs an informational event tagged with prefix.
func DropMessage(prefix, message string) {
	_ = level.Info(Logger()).Log("tag", prefix, "msg", message)
}

// DropError logs err tagged with prefix. With a nil err only the prefix is
// logged, which serves as a cheap trace marker.
func DropError(prefix string, err error) {
	if err != nil {
		_ = level.Error(Logger()).Log("tag", prefix, "err", err)
		return
	}
	_ = level.Warn(Logger()).Log("tag", prefix)
}

// DropFields logs an informational event with extra key/value pairs.
func DropFields(prefix string, keyvals ...any) {
	_ = level.Info(Logger()).Log(append([]any{"tag", prefix}, keyvals...)...)
}
