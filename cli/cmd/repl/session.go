package repl

import (
	"context"
	"strings"

	"github.com/ardnew/gpp/lang"
)

// Session accumulates template lines until every loop opened in them is
// closed, then expands them as one template.
type Session struct {
	opts    []lang.Option
	pending []string
	depth   int
	last    string
}

// NewSession returns an empty session whose templates are parsed and
// expanded with opts.
func NewSession(opts ...lang.Option) *Session {
	return &Session{opts: opts}
}

// Feed adds one line to the session. Once the buffered lines close every loop
// they open, the buffer is expanded and cleared, and ok is true. The buffer
// is cleared on error as well.
func (s *Session) Feed(ctx context.Context, line string) (out string, ok bool, err error) {
	s.pending = append(s.pending, line)

	// A single input line may hold several template lines joined by \n.
	for _, l := range lang.Lines(line) {
		text := strings.TrimSpace(l)
		if text == "" || text[0] == '#' {
			continue
		}

		switch text[0] {
		case '$':
			s.depth++
		case '}':
			s.depth--
		}
	}

	if s.depth > 0 {
		return "", false, nil
	}

	source := strings.Join(s.pending, "\n")
	s.pending, s.depth = nil, 0

	out, err = s.Run(ctx, source)

	return out, true, err
}

// Run parses and expands a complete template. The expansion is returned
// without its trailing newline. On success source becomes the session's
// last template.
func (s *Session) Run(ctx context.Context, source string) (string, error) {
	tree, err := lang.ParseString(ctx, source, s.opts...)
	if err != nil {
		return "", err
	}

	out, err := tree.ExpandString(ctx)
	if err != nil {
		return "", err
	}

	s.last = source

	return strings.TrimSuffix(out, "\n"), nil
}

// Depth returns the number of loops opened but not yet closed by the
// buffered lines.
func (s *Session) Depth() int { return s.depth }

// Pending returns the buffered lines of an incomplete template.
func (s *Session) Pending() string { return strings.Join(s.pending, "\n") }

// Last returns the source of the most recently expanded template.
func (s *Session) Last() string { return s.last }

// Reset discards buffered lines.
func (s *Session) Reset() {
	s.pending, s.depth = nil, 0
}

// Show returns the last template in canonical syntax, or "" if nothing has
// been expanded yet.
func (s *Session) Show(ctx context.Context) (string, error) {
	if s.last == "" {
		return "", nil
	}

	tree, err := lang.ParseString(ctx, s.last, s.opts...)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	if err := tree.Format(ctx, &sb, 2); err != nil {
		return "", err
	}

	return strings.TrimSuffix(sb.String(), "\n"), nil
}
