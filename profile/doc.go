// Package profile provides optional runtime profiling for gpp.
//
// Profiling is compiled in only when building with the "pprof" build tag:
//
//	go build -tags pprof .
//
// Without the tag, [Profiler.Start] always returns a no-op [Stopper] and
// [Modes] reports no supported modes.
//
// With the tag, profiles are collected by [github.com/pkg/profile] and written
// to the configured directory with names matching the mode (cpu.pprof,
// mem.pprof, ...). Analyze them with go tool pprof:
//
//	gpp --pprof-mode cpu --pprof-dir ./prof big.gpp out.s
//	go tool pprof -http=: ./prof/cpu.pprof
//
// The parse cache and the expander are the usual targets; "cpu" and "allocs"
// cover most questions.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
