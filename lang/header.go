package lang

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
)

var (
	headerPrefix = regexp.MustCompile(`^\$\s*for\b`)
	identifier   = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*`)
)

// ParseHeader parses a loop header of the form
//
//	$for ( INIT ; COND ; STEP ) {
//
// into a [Loop] with an empty body. The returned error is one of the
// ErrHeader* reasons; callers attach the source line.
func ParseHeader(header string) (*Loop, error) {
	h := strings.TrimSpace(header)

	loc := headerPrefix.FindStringIndex(h)
	if loc == nil {
		return nil, ErrHeaderPrefix.With(slog.String("header", h))
	}

	lparen := strings.IndexByte(h, '(')
	rparen := strings.LastIndexByte(h, ')')

	if lparen < 0 || rparen < lparen ||
		strings.TrimSpace(h[loc[1]:lparen]) != "" {
		return nil, ErrHeaderParen.With(slog.String("header", h))
	}

	if strings.TrimSpace(h[rparen+1:]) != "{" {
		return nil, ErrHeaderBrace.With(slog.String("header", h))
	}

	clauses := strings.Split(h[lparen+1:rparen], ";")
	if len(clauses) != 3 {
		return nil, ErrHeaderClauses.With(slog.Int("clauses", len(clauses)))
	}

	var (
		loop Loop
		err  error
	)

	loop.Names, loop.Init, err = parseInit(clauses[0])
	if err != nil {
		return nil, err
	}

	bound := make(map[string]int, len(loop.Names))
	for i, name := range loop.Names {
		if name != "" {
			bound[name] = loop.Init[i]
		}
	}

	loop.Op, loop.Limit, err = parseCond(clauses[1], loop.Names[0], bound)
	if err != nil {
		return nil, err
	}

	loop.Step, err = parseStep(clauses[2], loop.Names)
	if err != nil {
		return nil, err
	}

	return &loop, nil
}

// parseInit parses the comma-separated "[name =] expr" items of an init
// clause. Expressions may refer to variables initialized earlier in the same
// clause.
func parseInit(clause string) (names []string, values []int, err error) {
	vars := make(map[string]int)

	for item := range strings.SplitSeq(clause, ",") {
		name, rhs := splitAssign(item)

		if name != "" {
			if _, dup := vars[name]; dup {
				return nil, nil, ErrHeaderExpr.Wrap(
					fmt.Errorf("%q: induction variable declared twice", name),
				)
			}
		}

		v, err := evalInt(rhs, vars)
		if err != nil {
			return nil, nil, ErrHeaderExpr.Wrap(
				fmt.Errorf("%q: %w", strings.TrimSpace(item), err),
			)
		}

		if name != "" {
			vars[name] = v
		}

		names = append(names, name)
		values = append(values, v)
	}

	return names, values, nil
}

// parseCond parses "[name] OP expr". If a name is present it must be the
// first induction variable's. The limit is evaluated once, against the
// initial values in vars.
func parseCond(clause, first string, vars map[string]int) (Op, int, error) {
	c := strings.TrimSpace(clause)

	if name := identifier.FindString(c); name != "" {
		if name != first {
			return 0, 0, ErrHeaderCond.Wrap(
				fmt.Errorf("%q: only the first induction variable may be tested", c),
			)
		}

		c = strings.TrimSpace(c[len(name):])
	}

	var op Op

	switch {
	case strings.HasPrefix(c, "<="):
		op, c = OpLessEqual, c[2:]

	case strings.HasPrefix(c, ">="):
		op, c = OpGreaterEqual, c[2:]

	case strings.HasPrefix(c, "<"):
		op, c = OpLess, c[1:]

	case strings.HasPrefix(c, ">"):
		op, c = OpGreater, c[1:]

	default:
		return 0, 0, ErrHeaderCond.Wrap(
			fmt.Errorf("%q: expected one of < <= > >=", strings.TrimSpace(clause)),
		)
	}

	limit, err := evalInt(c, vars)
	if err != nil {
		return 0, 0, ErrHeaderExpr.Wrap(
			fmt.Errorf("%q: %w", strings.TrimSpace(c), err),
		)
	}

	return op, limit, nil
}

// parseStep parses one step item per induction variable.
func parseStep(clause string, names []string) ([]int, error) {
	items := strings.Split(clause, ",")
	if len(items) != len(names) {
		return nil, ErrHeaderArity.Wrap(
			fmt.Errorf("%d steps for %d induction variables", len(items), len(names)),
		)
	}

	steps := make([]int, len(items))

	for i, item := range items {
		d, err := parseStepItem(strings.TrimSpace(item), names[i])
		if err != nil {
			return nil, err
		}

		steps[i] = d
	}

	return steps, nil
}

// parseStepItem returns the constant delta described by one step item:
// "expr", "name++", "name--", "name += expr", "name -= expr", or
// "name = <expr linear in name with coefficient 1>".
func parseStepItem(item, name string) (int, error) {
	target := func(s string) error {
		s = strings.TrimSpace(s)
		if name == "" || s != name {
			return ErrHeaderStep.Wrap(
				fmt.Errorf("%q: assigns %q, expected %q", item, s, name),
			)
		}

		return nil
	}

	constant := func(s string) (int, error) {
		v, err := evalInt(s, nil)
		if err != nil {
			return 0, ErrHeaderExpr.Wrap(fmt.Errorf("%q: %w", item, err))
		}

		return v, nil
	}

	switch {
	case strings.HasSuffix(item, "++"):
		return 1, target(item[:len(item)-2])

	case strings.HasSuffix(item, "--"):
		return -1, target(item[:len(item)-2])
	}

	if lhs, rhs, ok := strings.Cut(item, "+="); ok {
		if err := target(lhs); err != nil {
			return 0, err
		}

		return constant(rhs)
	}

	if lhs, rhs, ok := strings.Cut(item, "-="); ok {
		if err := target(lhs); err != nil {
			return 0, err
		}

		v, err := constant(rhs)

		return -v, err
	}

	lhs, rhs := splitAssign(item)
	if lhs == "" {
		return constant(rhs)
	}

	if err := target(lhs); err != nil {
		return 0, err
	}

	coef, delta, err := affine(rhs, name)
	if err != nil {
		return 0, ErrHeaderExpr.Wrap(fmt.Errorf("%q: %w", item, err))
	}

	if coef != 1 {
		return 0, ErrHeaderStep.Wrap(fmt.Errorf("%q", item))
	}

	return delta, nil
}

// splitAssign splits "name = expr" into its parts. If item is not an
// assignment to a plain identifier, name is empty and expr is item.
func splitAssign(item string) (name, expr string) {
	lhs, rhs, ok := strings.Cut(item, "=")
	if !ok || strings.HasPrefix(rhs, "=") {
		return "", item
	}

	lhs = strings.TrimSpace(lhs)
	if lhs == "" || identifier.FindString(lhs) != lhs {
		return "", item
	}

	return lhs, rhs
}
