package log

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

// Buffers are not terminals, so the pretty handler emits no escape codes.

func TestPretty_Text(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithTimeLayout("none"))
	logger.Info("expanded", slog.Int("lines", 4), slog.Bool("ok", true))

	want := "level=INFO msg=expanded lines=4 ok=true\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPretty_JSONBlock(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithTimeLayout("none"), WithFormat(FormatJSON))
	logger.Warn("slow", slog.String("file", "a.gpp"))

	want := "{\n  level: WARN,\n  msg: slow,\n  file: a.gpp\n}\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPretty_Groups(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithTimeLayout("none"))
	grouped := slog.New(logger.Handler().WithGroup("loop")).
		With(slog.Int("depth", 2))
	grouped.Info("enter", slog.Group("var", slog.Int("i", 0)))

	got := buf.String()
	for _, want := range []string{"loop.depth=2", "loop.var.i=0"} {
		if !strings.Contains(got, want) {
			t.Errorf("output %q does not contain %q", got, want)
		}
	}
}

func TestPretty_Error(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithTimeLayout("none"))
	logger.Error("failed", slog.Any("error", errors.New("boom")))

	if !strings.Contains(buf.String(), "error=boom") {
		t.Errorf("got %q", buf.String())
	}
}
