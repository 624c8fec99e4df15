package repl

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestHistory_Persistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)

	h := NewHistory(path)
	if err := h.Load(); err != nil {
		t.Fatalf("Load() on missing file: %v", err)
	}

	for _, line := range []string{"a", "b", "b", "  ", "c", "a"} {
		if _, err := h.Write(line); err != nil {
			t.Fatal(err)
		}
	}

	want := []string{"b", "c", "a"}
	if got := h.Entries(); !slices.Equal(got, want) {
		t.Fatalf("Entries() = %q, want %q", got, want)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if string(data) != "b\nc\na\n" {
		t.Errorf("history file = %q", data)
	}

	reloaded := NewHistory(path)
	if err := reloaded.Load(); err != nil {
		t.Fatal(err)
	}

	if got := reloaded.Entries(); !slices.Equal(got, want) {
		t.Errorf("reloaded Entries() = %q, want %q", got, want)
	}
}

func TestHistory_Line(t *testing.T) {
	h := NewHistory("")
	_, _ = h.Write("first")
	_, _ = h.Write("second")

	if line, err := h.Line(0); err != nil || line != "first" {
		t.Errorf("Line(0) = %q, %v", line, err)
	}

	for _, i := range []int{-1, 2} {
		if _, err := h.Line(i); err != ErrHistoryIndex {
			t.Errorf("Line(%d) error = %v, want ErrHistoryIndex", i, err)
		}
	}
}
