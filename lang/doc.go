// Package lang implements the gpp template language: a line-oriented macro
// language of literal lines and bounded, possibly nested, counted loops.
//
// # Pipeline
//
//	source ─▶ Lines ─▶ Parse ─▶ Tree ─▶ Expand ─▶ output
//
// [Lines] splits source on newlines and on the escaped sequence `\n`.
// [Parse] builds a [Tree] of [Block] values with an explicit stack of open
// loops; each loop header is parsed by [ParseHeader]. [Tree.Expand] walks
// the tree depth-first and emits one statement per line.
//
// # Grammar
//
// Informal, one construct per line (leading and trailing space ignored):
//
//	Comment  → '#' <any>
//	Open     → '$' 'for' '(' Init ';' Cond ';' Step ')' '{'
//	Close    → '}' <any>
//	Literal  → <any other non-empty line>
//	Init     → InitItem (',' InitItem)*
//	InitItem → [Identifier '='] Expr
//	Cond     → [Identifier] ('<' | '<=' | '>' | '>=') Expr
//	Step     → StepItem (',' StepItem)*
//	StepItem → Expr | Identifier ('++' | '--')
//	         | Identifier ('+=' | '-=') Expr
//	         | Identifier '=' Expr
//
// Expr is integer arithmetic: literals, identifiers, unary + and -, binary
// + - * / % and parentheses. Expressions are parsed with expr-lang's parser
// and evaluated by a small walker that accepts nothing else. Identifiers in
// Init name variables initialized earlier in the same clause; in Cond they
// name any initialized variable and take its initial value, so the limit is
// fixed before the first iteration.
//
// # Example
//
//	# unrolled row loads
//	$for (i = 0, r = 8; i < 4; i++, r += 2) {
//	  mov (8) m%2<1>:ud g%1<8,8,1>:ud
//	}
//
// expands to
//
//	mov (8) m8<1>:ud g0<8,8,1>:ud;
//	mov (8) m10<1>:ud g1<8,8,1>:ud;
//	mov (8) m12<1>:ud g2<8,8,1>:ud;
//	mov (8) m14<1>:ud g3<8,8,1>:ud;
//
// # Parameters
//
// A literal may reference %1, %2, ... : the induction variables of all
// enclosing loops, outermost loop first. Sibling loops do not share
// numbering.
//
// # Termination
//
// Every emitted line receives a trailing ';' unless it already ends in ';',
// ':' or '\', or begins with '.'.
package lang
