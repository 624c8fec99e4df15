package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// Format writes the tree in canonical template syntax. Parsing the output
// yields a tree with the same blocks (line numbers aside): comments and
// blank lines are dropped, headers are normalized, and loop bodies are
// indented by indent spaces per level.
func (t *Tree) Format(_ context.Context, w io.Writer, indent int) error {
	var sb strings.Builder

	formatBlocks(&sb, t.Blocks, indent, 0)

	_, err := io.WriteString(w, sb.String())

	return err
}

func formatBlocks(sb *strings.Builder, blocks []*Block, indent, depth int) {
	pad := strings.Repeat(" ", indent*depth)

	for _, b := range blocks {
		sb.WriteString(pad)

		if b.Kind != KindLoop {
			sb.WriteString(b.Text)
			sb.WriteByte('\n')

			continue
		}

		sb.WriteString(FormatHeader(b.Loop))
		sb.WriteByte('\n')
		formatBlocks(sb, b.Loop.Body, indent, depth+1)
		sb.WriteString(pad)
		sb.WriteString("}\n")
	}
}

// FormatHeader returns the canonical header line of loop.
func FormatHeader(loop *Loop) string {
	name := func(i int) string {
		if i < len(loop.Names) {
			return loop.Names[i]
		}

		return ""
	}

	inits := make([]string, len(loop.Init))
	for i, v := range loop.Init {
		inits[i] = strconv.Itoa(v)
		if n := name(i); n != "" {
			inits[i] = n + " = " + inits[i]
		}
	}

	cond := loop.Op.String() + " " + strconv.Itoa(loop.Limit)
	if n := name(0); n != "" {
		cond = n + " " + cond
	}

	step := make([]string, len(loop.Step))
	for i, d := range loop.Step {
		n := name(i)

		switch {
		case n == "":
			step[i] = strconv.Itoa(d)

		case d < 0:
			step[i] = n + " -= " + strconv.Itoa(-d)

		default:
			step[i] = n + " += " + strconv.Itoa(d)
		}
	}

	return fmt.Sprintf("$for (%s; %s; %s) {",
		strings.Join(inits, ", "), cond, strings.Join(step, ", "))
}

// FormatJSON writes the tree as JSON to the writer. Comparison operators
// are written as-is rather than HTML-escaped.
func (t *Tree) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	if indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", indent))
	}

	return enc.Encode(t.ToNative())
}

// FormatYAML writes the tree as YAML to the writer.
func (t *Tree) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(ctx, t.ToNative(), opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(yamlData))

	return err
}
