package debug

import (
	"bytes"
	"errors"
	"testing"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T, allow level.Option) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := Logger()
	SetLogger(level.NewFilter(log.NewLogfmtLogger(&buf), allow))
	t.Cleanup(func() { SetLogger(prev) })
	return &buf
}

func TestDropMessage(t *testing.T) {
	buf := capture(t, level.AllowInfo())
	DropMessage("INIT", "loading config")
	assert.Equal(t, "level=info tag=INIT msg=\"loading config\"\n", buf.String())
}

func TestDropError(t *testing.T) {
	buf := capture(t, level.AllowInfo())
	DropError("CONFIG", errors.New("bad page size"))
	DropError("GC", nil)
	assert.Equal(t, "level=error tag=CONFIG err=\"bad page size\"\nlevel=warn tag=GC\n", buf.String())
}

func TestDropFieldsFiltered(t *testing.T) {
	buf := capture(t, level.AllowError())
	DropFields("RUN", "strategy", "bheap", "ops", 10)
	assert.Empty(t, buf.String())

	DropError("RUN", errors.New("digest mismatch"))
	assert.Contains(t, buf.String(), "digest mismatch")
}

func TestSetLoggerNil(t *testing.T) {
	prev := Logger()
	t.Cleanup(func() { SetLogger(prev) })
	SetLogger(nil)
	assert.NotPanics(t, func() { DropMessage("X", "y") })
}
