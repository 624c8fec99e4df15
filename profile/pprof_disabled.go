//go:build !pprof

package profile

const enabled = false

// Modes returns nil: profiling support was not compiled in.
func Modes() []string { return nil }

func start(Profiler) Stopper { return nop{} }
