package lang

import (
	"iter"

	"github.com/ardnew/gpp/log"
)

// Tree is the parsed form of a template: the top-level blocks in source
// order. The root itself is never a loop.
//
// A Tree is immutable once returned by the parser and may be expanded any
// number of times, including concurrently.
type Tree struct {
	Blocks []*Block
	opts   options
	logger log.Logger
}

// All returns an iterator over all blocks in the tree in depth-first source
// order.
func (t *Tree) All() iter.Seq[*Block] {
	return func(yield func(*Block) bool) {
		walk(t.Blocks, yield)
	}
}

func walk(blocks []*Block, yield func(*Block) bool) bool {
	for _, b := range blocks {
		if !yield(b) {
			return false
		}

		if b.Kind == KindLoop && !walk(b.Loop.Body, yield) {
			return false
		}
	}

	return true
}

// Kind indicates which variant a [Block] holds.
type Kind int

const (
	// KindLiteral is a line of text emitted with parameter substitution.
	KindLiteral Kind = iota

	// KindLoop is a counted loop whose body is expanded once per iteration.
	KindLoop
)

// String returns a string representation of the block kind.
func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "Literal"

	case KindLoop:
		return "Loop"

	default:
		return "Unknown"
	}
}

// Block is a parsed template unit.
type Block struct {
	Kind Kind
	Line int // 1-based line number in the normalized source

	// Exactly one of these is meaningful based on Kind
	Text string // For literals (trimmed)
	Loop *Loop  // For loops
}

// Loop is the induction-variable program of a loop block.
//
// Init and Step always have the same length, the loop's arity. Op and Limit
// test only the first induction variable; the others advance by their step
// alone.
type Loop struct {
	Names []string // Variable names from the header ("" where unnamed)
	Init  []int
	Op    Op
	Limit int
	Step  []int
	Body  []*Block
}

// Arity returns the number of induction variables the loop declares.
func (l *Loop) Arity() int { return len(l.Init) }

// Op is the comparison applied to the first induction variable.
type Op int

const (
	OpLess Op = iota
	OpLessEqual
	OpGreater
	OpGreaterEqual
)

// String returns the operator's template syntax.
func (op Op) String() string {
	switch op {
	case OpLess:
		return "<"

	case OpLessEqual:
		return "<="

	case OpGreater:
		return ">"

	case OpGreaterEqual:
		return ">="

	default:
		return "?"
	}
}

// Holds reports whether cur compares to limit according to op.
func (op Op) Holds(cur, limit int) bool {
	switch op {
	case OpLess:
		return cur < limit

	case OpLessEqual:
		return cur <= limit

	case OpGreater:
		return cur > limit

	case OpGreaterEqual:
		return cur >= limit

	default:
		return false
	}
}

// DefaultMaxIterations is the default ceiling on iterations of a single loop
// activation. Users may modify this before parsing to change the default.
var DefaultMaxIterations = 1 << 20

// options holds parse and expansion configuration.
type options struct {
	maxIterations int
}

// Option configures parsing or expansion behavior.
type Option func(*Tree)

// WithMaxIterations sets the maximum number of iterations a single loop
// activation may run before expansion fails with [ErrIterationLimit].
// A non-positive value disables the ceiling.
func WithMaxIterations(n int) Option {
	return func(t *Tree) {
		t.opts.maxIterations = n
	}
}

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(t *Tree) {
		t.logger = logger
	}
}

// applyDefaults sets default option values on a tree.
func applyDefaults(t *Tree) {
	t.opts.maxIterations = DefaultMaxIterations
}

// applyOptions applies functional options to a tree.
func applyOptions(t *Tree, opts ...Option) {
	for _, opt := range opts {
		opt(t)
	}
}
