package lang

import (
	"context"
	"log/slog"
	"strings"
)

const (
	loopMarker    = '$'
	closeMarker   = '}'
	commentMarker = '#'
)

// frame is an open block on the parser stack.
type frame struct {
	line int
	body *[]*Block
}

// Parse builds a [Tree] from normalized lines (see [Lines]). Line numbers in
// the tree and in errors are 1-based indices into lines.
//
// Parse never caches; use [ParseString] or [ParseReader] for cached parsing.
func Parse(ctx context.Context, lines []string, opts ...Option) (*Tree, error) {
	t := new(Tree)

	applyDefaults(t)
	applyOptions(t, opts...)

	blocks, err := parseLines(ctx, lines, t)
	if err != nil {
		return nil, err
	}

	t.Blocks = blocks

	return t, nil
}

// parseLines runs the block parser. t supplies the logger only.
func parseLines(ctx context.Context, lines []string, t *Tree) ([]*Block, error) {
	var root []*Block

	stack := []frame{{line: 0, body: &root}}

	for i, raw := range lines {
		lineno := i + 1
		text := strings.TrimSpace(raw)

		if text == "" || text[0] == commentMarker {
			continue
		}

		top := stack[len(stack)-1]

		switch text[0] {
		case loopMarker:
			loop, err := ParseHeader(text)
			if err != nil {
				return nil, ErrParse.At(lineno).Wrap(err)
			}

			*top.body = append(*top.body, &Block{
				Kind: KindLoop,
				Line: lineno,
				Loop: loop,
			})

			stack = append(stack, frame{line: lineno, body: &loop.Body})

			t.logger.TraceContext(ctx, "open loop",
				slog.Int("line", lineno),
				slog.Int("arity", loop.Arity()),
				slog.Int("depth", len(stack)-1),
			)

		case closeMarker:
			if len(stack) == 1 {
				return nil, ErrParse.At(lineno).Wrap(ErrUnmatchedClose)
			}

			stack = stack[:len(stack)-1]

			t.logger.TraceContext(ctx, "close loop",
				slog.Int("line", lineno),
				slog.Int("opened", top.line),
			)

		default:
			*top.body = append(*top.body, &Block{
				Kind: KindLiteral,
				Line: lineno,
				Text: text,
			})
		}
	}

	if len(stack) > 1 {
		return nil, ErrParse.At(stack[1].line).Wrap(ErrUnclosedLoop).
			With(slog.Int("unclosed", len(stack)-1))
	}

	t.logger.TraceContext(ctx, "parse complete",
		slog.Int("lines", len(lines)),
		slog.Int("blocks", len(root)),
	)

	return root, nil
}
