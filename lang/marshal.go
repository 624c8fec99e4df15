package lang

import (
	"encoding/json"
)

// MarshalJSON implements json.Marshaler for Tree.
func (t *Tree) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.ToNative())
}

// ToNative converts the tree to native Go values: a slice with one map per
// top-level block.
func (t *Tree) ToNative() []any {
	return blocksToNative(t.Blocks)
}

func blocksToNative(blocks []*Block) []any {
	result := make([]any, len(blocks))

	for i, b := range blocks {
		result[i] = b.ToNative()
	}

	return result
}

// ToNative converts a Block to a native map.
//
// Literals become {line, text}; loops become {line, loop} where loop holds
// the induction-variable program and its body.
func (b *Block) ToNative() map[string]any {
	switch b.Kind {
	case KindLiteral:
		return map[string]any{
			"line": b.Line,
			"text": b.Text,
		}

	case KindLoop:
		loop := map[string]any{
			"init":  b.Loop.Init,
			"op":    b.Loop.Op.String(),
			"limit": b.Loop.Limit,
			"step":  b.Loop.Step,
			"body":  blocksToNative(b.Loop.Body),
		}

		if hasNames(b.Loop.Names) {
			loop["names"] = b.Loop.Names
		}

		return map[string]any{
			"line": b.Line,
			"loop": loop,
		}

	default:
		return map[string]any{"line": b.Line}
	}
}

func hasNames(names []string) bool {
	for _, name := range names {
		if name != "" {
			return true
		}
	}

	return false
}
