package lang

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// expander carries the state of a single expansion.
type expander struct {
	ctx   context.Context
	tree  *Tree
	lines []string
	iters int // total loop iterations, for logging
}

// Expand writes the expansion of t to w: one emitted statement per line with
// a single trailing newline. Options override those given to the parser for
// this expansion only.
//
// Output is accumulated in memory and written once; nothing is written if
// expansion fails.
func (t *Tree) Expand(ctx context.Context, w io.Writer, opts ...Option) error {
	s, err := t.ExpandString(ctx, opts...)
	if err != nil {
		return err
	}

	_, err = io.WriteString(w, s)

	return err
}

// ExpandString returns the expansion of t. See [Tree.Expand].
func (t *Tree) ExpandString(ctx context.Context, opts ...Option) (string, error) {
	view := *t
	applyOptions(&view, opts...)

	x := expander{ctx: ctx, tree: &view}

	view.logger.TraceContext(ctx, "expand start",
		slog.Int("blocks", len(t.Blocks)),
		slog.Int("max_iterations", view.opts.maxIterations),
	)

	for _, b := range t.Blocks {
		if err := x.block(b, nil); err != nil {
			return "", err
		}
	}

	view.logger.TraceContext(ctx, "expand complete",
		slog.Int("lines", len(x.lines)),
		slog.Int("iterations", x.iters),
	)

	return strings.Join(x.lines, "\n") + "\n", nil
}

// block expands b with the induction-variable vector of all enclosing loops,
// outermost first.
func (x *expander) block(b *Block, vec []int) error {
	switch b.Kind {
	case KindLiteral:
		line, err := substitute(b.Text, vec)
		if err != nil {
			return ErrSubstitution.At(b.Line).Wrap(err)
		}

		x.lines = append(x.lines, terminate(line))

		return nil

	case KindLoop:
		return x.loop(b, vec)

	default:
		return fmt.Errorf("invalid block kind %d at line %d", b.Kind, b.Line)
	}
}

func (x *expander) loop(b *Block, outer []int) error {
	loop := b.Loop
	limit := x.tree.opts.maxIterations

	cur := make([]int, len(loop.Init))
	copy(cur, loop.Init)

	scope := make([]int, len(outer)+len(cur))
	copy(scope, outer)

	for n := 0; loop.Op.Holds(cur[0], loop.Limit); n++ {
		if limit > 0 && n >= limit {
			return ErrIterationLimit.At(b.Line).
				With(slog.Int("limit", limit))
		}

		if err := x.ctx.Err(); err != nil {
			return WrapError(err).At(b.Line)
		}

		copy(scope[len(outer):], cur)

		for _, child := range loop.Body {
			if err := x.block(child, scope); err != nil {
				return err
			}
		}

		for i, d := range loop.Step {
			cur[i] += d
		}

		x.iters++
	}

	return nil
}
