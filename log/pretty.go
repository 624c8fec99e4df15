package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// palette holds the styles used to colorize a record. Styles are bound to a
// renderer for the handler's writer, so colors are dropped automatically when
// the writer is not a terminal.
type palette struct {
	key, str, num, boolTrue, boolFalse, other lipgloss.Style
	level                                     map[slog.Level]lipgloss.Style
}

func newPalette(w io.Writer) palette {
	r := lipgloss.NewRenderer(w)
	fg := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}

	return palette{
		key:       fg("8"),
		str:       fg("6"),
		num:       fg("3"),
		boolTrue:  fg("2"),
		boolFalse: fg("1"),
		other:     fg("5"),
		level: map[slog.Level]lipgloss.Style{
			slog.Level(LevelTrace): fg("8"),
			slog.LevelDebug:        fg("4"),
			slog.LevelInfo:         fg("2"),
			slog.LevelWarn:         fg("3").Bold(true),
			slog.LevelError:        fg("1").Bold(true),
		},
	}
}

func (p palette) forLevel(l slog.Level) lipgloss.Style {
	for _, at := range []slog.Level{
		slog.LevelError,
		slog.LevelWarn,
		slog.LevelInfo,
		slog.LevelDebug,
	} {
		if l >= at {
			return p.level[at]
		}
	}

	return p.level[slog.Level(LevelTrace)]
}

// prettyHandler is a colorized [slog.Handler]. In text mode each record is
// one line of key=value pairs; in JSON mode each record is an indented,
// brace-delimited block with one key per line.
type prettyHandler struct {
	opts   *slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	colors palette
	json   bool
	attrs  []slog.Attr
	group  string // dotted prefix for attributes added after WithGroup
}

func newPrettyHandler(w io.Writer, opts *slog.HandlerOptions, json bool) *prettyHandler {
	return &prettyHandler{
		opts:   opts,
		mu:     &sync.Mutex{},
		w:      w,
		colors: newPalette(w),
		json:   json,
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	threshold := slog.LevelInfo
	if h.opts.Level != nil {
		threshold = h.opts.Level.Level()
	}

	return level >= threshold
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = slices.Clip(h.attrs)

	for _, a := range attrs {
		a.Key = h.group + a.Key
		clone.attrs = append(clone.attrs, a)
	}

	return &clone
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	clone := *h
	clone.group = h.group + name + "."

	return &clone
}

// field is a rendered key and value.
type field struct{ key, value string }

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	var fields []field

	builtin := func(a slog.Attr) {
		if h.opts.ReplaceAttr != nil {
			a = h.opts.ReplaceAttr(nil, a)
		}

		if a.Key == "" {
			return
		}

		if a.Key == slog.LevelKey {
			fields = append(fields, field{
				a.Key, h.colors.forLevel(r.Level).Render(a.Value.String()),
			})

			return
		}

		fields = h.appendAttr(fields, "", a)
	}

	if !r.Time.IsZero() {
		builtin(slog.Time(slog.TimeKey, r.Time))
	}

	builtin(slog.Any(slog.LevelKey, r.Level))

	if h.opts.AddSource && r.PC != 0 {
		if src := r.Source(); src != nil {
			builtin(slog.String(slog.SourceKey,
				src.File+":"+strconv.Itoa(src.Line)))
		}
	}

	builtin(slog.String(slog.MessageKey, r.Message))

	for _, a := range h.attrs {
		fields = h.appendAttr(fields, "", a)
	}

	r.Attrs(func(a slog.Attr) bool {
		fields = h.appendAttr(fields, h.group, a)

		return true
	})

	buf := new(bytes.Buffer)

	if h.json {
		h.writeBlock(buf, fields)
	} else {
		h.writeLine(buf, fields)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

// appendAttr renders a, flattening groups into dotted keys.
func (h *prettyHandler) appendAttr(fields []field, prefix string, a slog.Attr) []field {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return fields
	}

	if a.Value.Kind() == slog.KindGroup {
		inner := prefix
		if a.Key != "" {
			inner += a.Key + "."
		}

		for _, ga := range a.Value.Group() {
			fields = h.appendAttr(fields, inner, ga)
		}

		return fields
	}

	return append(fields, field{prefix + a.Key, h.renderValue(a.Value)})
}

func (h *prettyHandler) renderValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		return h.colors.str.Render(v.String())

	case slog.KindInt64, slog.KindUint64, slog.KindFloat64:
		return h.colors.num.Render(v.String())

	case slog.KindBool:
		if v.Bool() {
			return h.colors.boolTrue.Render("true")
		}

		return h.colors.boolFalse.Render("false")

	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			return h.colors.boolFalse.Render(err.Error())
		}

		return h.colors.other.Render(fmt.Sprint(v.Any()))

	default:
		return h.colors.other.Render(v.String())
	}
}

func (h *prettyHandler) writeLine(buf *bytes.Buffer, fields []field) {
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(' ')
		}

		buf.WriteString(h.colors.key.Render(f.key))
		buf.WriteByte('=')
		buf.WriteString(f.value)
	}

	buf.WriteByte('\n')
}

func (h *prettyHandler) writeBlock(buf *bytes.Buffer, fields []field) {
	lines := make([]string, len(fields))
	for i, f := range fields {
		lines[i] = "  " + h.colors.key.Render(f.key) + ": " + f.value
	}

	buf.WriteString("{\n")
	buf.WriteString(strings.Join(lines, ",\n"))
	buf.WriteString("\n}\n")
}
