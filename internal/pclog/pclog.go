// Package pclog centralizes the interpreter's tracing setup so every
// package can obtain a leveled, named tracer the same way the terex
// packages in the gorgo toolchain do (tracer() per package, backed by a
// single process-wide gologadapter sink selected through gtrace).
package pclog

import (
	"sync"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
)

var initOnce sync.Once

// Init installs the gologadapter backend as PurC-Go's syntax/runtime tracer
// and sets the process-wide trace level. Safe to call more than once; only
// the first call has effect.
func Init(level tracing.TraceLevel) {
	initOnce.Do(func() {
		gtrace.SyntaxTracer = gologadapter.New()
	})
	gtrace.SyntaxTracer.SetTraceLevel(level)
}

// Tracer returns the named tracer for a package, e.g. "purc.coroutine".
// Packages call this once from a package-level tracer() helper, mirroring
// the gorgo convention.
func Tracer(name string) tracing.Trace {
	return tracing.Select(name)
}
