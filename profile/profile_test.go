package profile

import (
	"slices"
	"testing"
)

func TestProfiler_EmptyModeIsNoop(t *testing.T) {
	s := Profiler{Path: t.TempDir()}.Start()

	if _, ok := s.(nop); !ok {
		t.Fatalf("Start() = %T, want nop", s)
	}

	s.Stop()
	s.Stop()
}

func TestProfiler_UnknownMode(t *testing.T) {
	s := Profiler{Mode: "bogus", Path: t.TempDir(), Quiet: true}.Start()
	defer s.Stop()

	if _, ok := s.(nop); !ok {
		t.Fatalf("Start() = %T, want nop", s)
	}
}

func TestModes(t *testing.T) {
	modes := Modes()

	if !Enabled() {
		if len(modes) != 0 {
			t.Errorf("Modes() = %v without %s tag", modes, Tag)
		}

		return
	}

	if !slices.IsSorted(modes) || !slices.Contains(modes, "cpu") {
		t.Errorf("Modes() = %v", modes)
	}
}
