package profile

// Stopper ends a profiling session and flushes its output.
type Stopper interface{ Stop() }

// Profiler describes a profiling session.
//
// Mode selects one of [Modes]; an empty or unknown mode disables profiling.
// Path is the output directory, or the working directory when empty.
type Profiler struct {
	Mode  string
	Path  string
	Quiet bool
}

// Start begins profiling and returns a [Stopper] that must be called before
// the process exits. Both Start and Stop are always safe to call, even when
// profiling support was not compiled in.
func (p Profiler) Start() Stopper {
	if p.Mode == "" {
		return nop{}
	}

	return start(p)
}

// Enabled reports whether profiling support was compiled in.
func Enabled() bool { return enabled }

type nop struct{}

func (nop) Stop() {}
