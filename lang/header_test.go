package lang

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseHeader(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   *Loop
	}{
		{
			name:   "named ascending",
			header: "$for (i = 0; i < 3; i++) {",
			want: &Loop{
				Names: []string{"i"}, Init: []int{0},
				Op: OpLess, Limit: 3, Step: []int{1},
			},
		},
		{
			name:   "unnamed compact",
			header: "$for(0;<3;1){",
			want: &Loop{
				Names: []string{""}, Init: []int{0},
				Op: OpLess, Limit: 3, Step: []int{1},
			},
		},
		{
			name:   "descending",
			header: "$for (i = 5; i > 2; i--) {",
			want: &Loop{
				Names: []string{"i"}, Init: []int{5},
				Op: OpGreater, Limit: 2, Step: []int{-1},
			},
		},
		{
			name:   "two variables",
			header: "$for (i = 0, j = 8; i < 2; i += 1, j -= 4) {",
			want: &Loop{
				Names: []string{"i", "j"}, Init: []int{0, 8},
				Op: OpLess, Limit: 2, Step: []int{1, -4},
			},
		},
		{
			name:   "assignment step",
			header: "$for (i = 0; i < 4; i = i + 2) {",
			want: &Loop{
				Names: []string{"i"}, Init: []int{0},
				Op: OpLess, Limit: 4, Step: []int{2},
			},
		},
		{
			name:   "init refers to earlier variable",
			header: "$for (a = 2, b = a * 3; a <= 6; a += 2, b++) {",
			want: &Loop{
				Names: []string{"a", "b"}, Init: []int{2, 6},
				Op: OpLessEqual, Limit: 6, Step: []int{2, 1},
			},
		},
		{
			name:   "limit expression",
			header: "  $ for ( r = 16 ; r >= 2 * 4 ; r -= 2 ) {  ",
			want: &Loop{
				Names: []string{"r"}, Init: []int{16},
				Op: OpGreaterEqual, Limit: 8, Step: []int{-2},
			},
		},
		{
			name:   "limit refers to init variable",
			header: "$for (i = 0, n = 4; i < n; i++, n += 0) {",
			want: &Loop{
				Names: []string{"i", "n"}, Init: []int{0, 4},
				Op: OpLess, Limit: 4, Step: []int{1, 0},
			},
		},
		{
			name:   "limit uses initial value only",
			header: "$for (i = 1, n = 3; i <= n * 2; i++, n++) {",
			want: &Loop{
				Names: []string{"i", "n"}, Init: []int{1, 3},
				Op: OpLessEqual, Limit: 6, Step: []int{1, 1},
			},
		},
		{
			name:   "mixed named and unnamed",
			header: "$for (i = 0, 100; i < 2; i++, -10) {",
			want: &Loop{
				Names: []string{"i", ""}, Init: []int{0, 100},
				Op: OpLess, Limit: 2, Step: []int{1, -10},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHeader(tt.header)
			if err != nil {
				t.Fatalf("ParseHeader(%q) failed: %v", tt.header, err)
			}

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseHeader(%q) mismatch (-want +got):\n%s", tt.header, diff)
			}

			if got.Arity() != len(tt.want.Init) {
				t.Errorf("Arity() = %d, want %d", got.Arity(), len(tt.want.Init))
			}
		})
	}
}

func TestParseHeader_Errors(t *testing.T) {
	tests := []struct {
		header string
		want   error
	}{
		{"for (i = 0; i < 1; i++) {", ErrHeaderPrefix},
		{"$foreach (i = 0; i < 1; i++) {", ErrHeaderPrefix},
		{"$for i = 0; i < 1; i++ {", ErrHeaderParen},
		{"$for x (i = 0; i < 1; i++) {", ErrHeaderParen},
		{"$for (i = 0; i < 1; i++)", ErrHeaderBrace},
		{"$for (i = 0; i < 1; i++) { x", ErrHeaderBrace},
		{"$for (i = 0; i < 1) {", ErrHeaderClauses},
		{"$for (i = 0; i < 1; i++; i++) {", ErrHeaderClauses},
		{"$for (i = 0; j < 1; i++) {", ErrHeaderCond},
		{"$for (i = 0; i == 1; i++) {", ErrHeaderCond},
		{"$for (0; i < 3; 1) {", ErrHeaderCond},
		{"$for (i = x; i < 1; i++) {", ErrHeaderExpr},
		{"$for (i = 0; i < n; i++) {", ErrHeaderExpr},
		{"$for (i = 0; i < 1 / 0; i++) {", ErrHeaderExpr},
		{"$for (i = 0, i = 1; i < 1; i++, i++) {", ErrHeaderExpr},
		{"$for (i = 0; i < 1; i += j) {", ErrHeaderExpr},
		{"$for (i = 0, j = 0; i < 1; i++) {", ErrHeaderArity},
		{"$for (i = 0; i < 1; i++, 1) {", ErrHeaderArity},
		{"$for (i = 0; i < 1; j++) {", ErrHeaderStep},
		{"$for (i = 1; i < 64; i = i * 2) {", ErrHeaderStep},
		{"$for (0; < 1; x++) {", ErrHeaderStep},
	}

	for _, tt := range tests {
		_, err := ParseHeader(tt.header)
		if !errors.Is(err, tt.want) {
			t.Errorf("ParseHeader(%q) error = %v, want %v", tt.header, err, tt.want)
		}
	}
}

func TestOp_Holds(t *testing.T) {
	tests := []struct {
		op         Op
		cur, limit int
		want       bool
	}{
		{OpLess, 1, 2, true},
		{OpLess, 2, 2, false},
		{OpLessEqual, 2, 2, true},
		{OpLessEqual, 3, 2, false},
		{OpGreater, 3, 2, true},
		{OpGreater, 2, 2, false},
		{OpGreaterEqual, 2, 2, true},
		{OpGreaterEqual, 1, 2, false},
		{Op(99), 0, 1, false},
	}

	for _, tt := range tests {
		if got := tt.op.Holds(tt.cur, tt.limit); got != tt.want {
			t.Errorf("%d %v %d = %v, want %v", tt.cur, tt.op, tt.limit, got, tt.want)
		}
	}
}
