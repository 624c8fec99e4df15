package lang

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func expandSource(t *testing.T, source string, opts ...Option) (string, error) {
	t.Helper()

	tree, err := ParseString(context.Background(), source, opts...)
	if err != nil {
		return "", err
	}

	return tree.ExpandString(context.Background())
}

func TestExpand(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "empty source",
			source: "",
			want:   "\n",
		},
		{
			name:   "comments only",
			source: "# nothing\n\n",
			want:   "\n",
		},
		{
			name:   "literals",
			source: "mov r0, r1\nlabel:\n.align 16\nret;\n",
			want:   "mov r0, r1;\nlabel:\n.align 16\nret;\n",
		},
		{
			name:   "zero iterations",
			source: "$for (i = 0; i < 0; i++) {\nx%1\n}\n",
			want:   "\n",
		},
		{
			name:   "single loop",
			source: "$for (i = 0; i < 3; i++) {\nx%1\n}\n",
			want:   "x0;\nx1;\nx2;\n",
		},
		{
			name:   "escaped newlines",
			source: `$for (i = 0; i < 3; i++) {\nx%1\n}`,
			want:   "x0;\nx1;\nx2;\n",
		},
		{
			name:   "nested",
			source: "$for (i = 0; i < 2; i++) {\n  $for (j = 0; j < 2; j++) {\n    v%1_%2\n  }\n}\n",
			want:   "v0_0;\nv0_1;\nv1_0;\nv1_1;\n",
		},
		{
			name:   "descending",
			source: "$for (i = 5; i > 2; i--) {\ny%1\n}\n",
			want:   "y5;\ny4;\ny3;\n",
		},
		{
			name:   "inclusive bound",
			source: "$for (i = 0; i <= 4; i += 2) {\nz%1\n}\n",
			want:   "z0;\nz2;\nz4;\n",
		},
		{
			name:   "secondary variable",
			source: "$for (i = 0, r = 8; i < 3; i++, r += 2) {\nmov m%2, g%1\n}\n",
			want:   "mov m8, g0;\nmov m10, g1;\nmov m12, g2;\n",
		},
		{
			name:   "unnamed variables",
			source: "$for (0, 100; < 2; 1, -10) {\n%1:%2\n}\n",
			want:   "0:100;\n1:90;\n",
		},
		{
			name:   "limit from init variable",
			source: "$for (i = 0, n = 3; i < n; i++, n += 0) {\nq%1\n}\n",
			want:   "q0;\nq1;\nq2;\n",
		},
		{
			name:   "sibling loops restart numbering",
			source: "$for (i = 0; i < 1; i++) {\na%1\n}\n$for (j = 5; j < 6; j++) {\nb%1\n}\n",
			want:   "a0;\nb5;\n",
		},
		{
			name:   "outer body around inner loop",
			source: "$for (i = 0; i < 2; i++) {\nbegin%1\n$for (j = 0; j < 1; j++) {\nin%1%2\n}\nend%1\n}\n",
			want:   "begin0;\nin00;\nend0;\nbegin1;\nin10;\nend1;\n",
		},
		{
			name:   "percent without digits",
			source: "$for (i = 0; i < 1; i++) {\nmod r%1, 50%\n}\n",
			want:   "mod r0, 50%;\n",
		},
		{
			name:   "continuation",
			source: "$for (i = 0; i < 2; i++) {\nadd r%1, \\\n}\n",
			want:   "add r0, \\\nadd r1, \\\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := expandSource(t, tt.source)
			if err != nil {
				t.Fatalf("expand failed: %v", err)
			}

			if got != tt.want {
				t.Errorf("expand(%q)\n got %q\nwant %q", tt.source, got, tt.want)
			}
		})
	}
}

func TestExpand_Idempotent(t *testing.T) {
	source := "$for (i = 0; i < 3; i++) {\nlabel%1:\nmov r%1, r0\n.loc %1\n}\n"

	first, err := expandSource(t, source)
	if err != nil {
		t.Fatalf("expand failed: %v", err)
	}

	second, err := expandSource(t, first)
	if err != nil {
		t.Fatalf("re-expand failed: %v", err)
	}

	if first != second {
		t.Errorf("re-expansion changed output\nfirst  %q\nsecond %q", first, second)
	}
}

func TestExpand_Repeatable(t *testing.T) {
	tree, err := ParseString(context.Background(), "$for (i = 0; i < 4; i++) {\nr%1\n}\n")
	if err != nil {
		t.Fatalf("ParseString failed: %v", err)
	}

	want := "r0;\nr1;\nr2;\nr3;\n"

	for range 3 {
		got, err := tree.ExpandString(context.Background())
		if err != nil {
			t.Fatalf("ExpandString failed: %v", err)
		}

		if got != want {
			t.Errorf("ExpandString = %q, want %q", got, want)
		}
	}
}

func TestExpand_Writer(t *testing.T) {
	tree, err := ParseString(context.Background(), "$for (i = 1; i < 3; i++) {\nr%1\n}\n")
	if err != nil {
		t.Fatalf("ParseString failed: %v", err)
	}

	var buf bytes.Buffer
	if err := tree.Expand(context.Background(), &buf); err != nil {
		t.Fatalf("Expand failed: %v", err)
	}

	if got := buf.String(); got != "r1;\nr2;\n" {
		t.Errorf("Expand wrote %q", got)
	}
}

func TestExpand_NothingWrittenOnError(t *testing.T) {
	tree, err := ParseString(context.Background(), "ok\n$for (i = 0; i < 2; i++) {\nr%2\n}\n")
	if err != nil {
		t.Fatalf("ParseString failed: %v", err)
	}

	var buf bytes.Buffer
	if err := tree.Expand(context.Background(), &buf); err == nil {
		t.Fatal("expected error")
	}

	if buf.Len() != 0 {
		t.Errorf("partial output written: %q", buf.String())
	}
}

func TestExpand_SubstitutionErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		line   int
	}{
		{"top level param", "mov r%1, r0\n", 1},
		{"beyond arity", "$for (i = 0; i < 1; i++) {\nok %1\nbad %2\n}\n", 3},
		{"zero param", "$for (i = 0; i < 1; i++) {\n%0\n}\n", 2},
		{"greedy digits", "$for (i = 0; i < 1; i++) {\nr%10\n}\n", 2},
		{
			"sibling scope",
			"$for (i = 0; i < 1; i++) {\n$for (j = 0; j < 1; j++) {\n}\nr%2\n}\n",
			4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := expandSource(t, tt.source)
			if !errors.Is(err, ErrSubstitution) || !errors.Is(err, ErrParamRange) {
				t.Fatalf("error = %v, want %v: %v", err, ErrSubstitution, ErrParamRange)
			}

			var lerr *Error
			if !errors.As(err, &lerr) || lerr.Line() != tt.line {
				t.Errorf("error %v does not cite line %d", err, tt.line)
			}
		})
	}
}

func TestExpand_ZeroIterationsSkipsBody(t *testing.T) {
	// The body would fail substitution if it were ever expanded.
	got, err := expandSource(t, "$for (i = 0; i < 0; i++) {\nr%5\n}\nafter\n")
	if err != nil {
		t.Fatalf("expand failed: %v", err)
	}

	if got != "after;\n" {
		t.Errorf("got %q", got)
	}
}

func TestExpand_IterationLimit(t *testing.T) {
	tree, err := ParseString(context.Background(),
		"x\n$for (i = 0; i < 10; i++) {\nr%1\n}\n", WithMaxIterations(3))
	if err != nil {
		t.Fatalf("ParseString failed: %v", err)
	}

	_, err = tree.ExpandString(context.Background())
	if !errors.Is(err, ErrIterationLimit) {
		t.Fatalf("error = %v, want %v", err, ErrIterationLimit)
	}

	var lerr *Error
	if !errors.As(err, &lerr) || lerr.Line() != 2 {
		t.Errorf("error %v does not cite line 2", err)
	}

	// Options given at expansion override those given at parse time.
	got, err := tree.ExpandString(context.Background(), WithMaxIterations(0))
	if err != nil {
		t.Fatalf("unlimited expansion failed: %v", err)
	}

	if n := strings.Count(got, "\n"); n != 11 {
		t.Errorf("got %d lines, want 11", n)
	}
}

func TestExpand_NonTerminating(t *testing.T) {
	_, err := expandSource(t, "$for (i = 0; i < 1; 0) {\nspin\n}\n", WithMaxIterations(100))
	if !errors.Is(err, ErrIterationLimit) {
		t.Errorf("error = %v, want %v", err, ErrIterationLimit)
	}
}

func TestExpand_Canceled(t *testing.T) {
	tree, err := ParseString(context.Background(), "$for (i = 0; i < 2; i++) {\nr%1\n}\n")
	if err != nil {
		t.Fatalf("ParseString failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = tree.ExpandString(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want %v", err, context.Canceled)
	}
}
