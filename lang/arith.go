package lang

import (
	"errors"
	"fmt"
	"strings"

	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/parser"
)

var (
	errEmptyExpr    = errors.New("empty expression")
	errDivideByZero = errors.New("integer divide by zero")
)

// evalInt evaluates an integer arithmetic expression.
//
// The source is parsed with expr-lang's parser, but the resulting tree is
// walked here rather than compiled: only integer literals, identifiers bound
// in vars, unary + and -, and binary + - * / % are accepted. Division and
// modulo floor toward negative infinity.
func evalInt(source string, vars map[string]int) (int, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return 0, errEmptyExpr
	}

	tree, err := parser.Parse(source)
	if err != nil {
		return 0, err
	}

	return evalNode(tree.Node, vars)
}

func evalNode(node ast.Node, vars map[string]int) (int, error) {
	switch n := node.(type) {
	case *ast.IntegerNode:
		return n.Value, nil

	case *ast.IdentifierNode:
		v, ok := vars[n.Value]
		if !ok {
			return 0, fmt.Errorf("unknown identifier %q", n.Value)
		}

		return v, nil

	case *ast.UnaryNode:
		x, err := evalNode(n.Node, vars)
		if err != nil {
			return 0, err
		}

		switch n.Operator {
		case "-":
			return -x, nil

		case "+":
			return x, nil
		}

		return 0, fmt.Errorf("unsupported operator %q", n.Operator)

	case *ast.BinaryNode:
		return evalBinary(n, vars)

	default:
		return 0, fmt.Errorf("unsupported expression %v", node)
	}
}

func evalBinary(n *ast.BinaryNode, vars map[string]int) (int, error) {
	lhs, err := evalNode(n.Left, vars)
	if err != nil {
		return 0, err
	}

	rhs, err := evalNode(n.Right, vars)
	if err != nil {
		return 0, err
	}

	switch n.Operator {
	case "+":
		return lhs + rhs, nil

	case "-":
		return lhs - rhs, nil

	case "*":
		return lhs * rhs, nil

	case "/":
		if rhs == 0 {
			return 0, errDivideByZero
		}

		return floorDiv(lhs, rhs), nil

	case "%":
		if rhs == 0 {
			return 0, errDivideByZero
		}

		return lhs - rhs*floorDiv(lhs, rhs), nil
	}

	return 0, fmt.Errorf("unsupported operator %q", n.Operator)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}

	return q
}

// affine reports the coefficient and constant of an expression that is
// linear in the identifier name, i.e. source ≡ coef*name + konst. Any other
// identifier, or a product or quotient involving name, is rejected.
func affine(source, name string) (coef, konst int, err error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return 0, 0, errEmptyExpr
	}

	tree, err := parser.Parse(source)
	if err != nil {
		return 0, 0, err
	}

	return affineNode(tree.Node, name)
}

func affineNode(node ast.Node, name string) (coef, konst int, err error) {
	switch n := node.(type) {
	case *ast.IdentifierNode:
		if n.Value == name {
			return 1, 0, nil
		}

	case *ast.UnaryNode:
		c, k, err := affineNode(n.Node, name)
		if err != nil {
			return 0, 0, err
		}

		switch n.Operator {
		case "-":
			return -c, -k, nil

		case "+":
			return c, k, nil
		}

	case *ast.BinaryNode:
		lc, lk, err := affineNode(n.Left, name)
		if err != nil {
			return 0, 0, err
		}

		rc, rk, err := affineNode(n.Right, name)
		if err != nil {
			return 0, 0, err
		}

		switch n.Operator {
		case "+":
			return lc + rc, lk + rk, nil

		case "-":
			return lc - rc, lk - rk, nil

		case "*":
			if lc != 0 && rc != 0 {
				return 0, 0, fmt.Errorf("product is not linear in %q", name)
			}

			return lc*rk + rc*lk, lk * rk, nil
		}
	}

	// Everything else must be free of name.
	k, err := evalNode(node, nil)
	if err != nil {
		return 0, 0, err
	}

	return 0, k, nil
}
