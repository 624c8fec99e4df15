package lang

import (
	"errors"
	"testing"
)

func TestSubstitute(t *testing.T) {
	tests := []struct {
		text string
		vec  []int
		want string
	}{
		{"no params", nil, "no params"},
		{"r%1", []int{4}, "r4"},
		{"r%1, r%2", []int{4, -2}, "r4, r-2"},
		{"%2%1", []int{1, 2}, "21"},
		{"m%2<1>:ud g%1<8,8,1>:ud", []int{0, 8}, "m8<1>:ud g0<8,8,1>:ud"},
		{"50% off", []int{1}, "50% off"},
		{"%", nil, "%"},
		{"%%1", []int{3}, "%3"},
		{"x%1%", []int{3}, "x3%"},
		{
			"%10",
			[]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
			"10",
		},
		{
			"%11",
			[]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11},
			"11",
		},
	}

	for _, tt := range tests {
		got, err := substitute(tt.text, tt.vec)
		if err != nil {
			t.Errorf("substitute(%q, %v) unexpected error: %v", tt.text, tt.vec, err)

			continue
		}

		if got != tt.want {
			t.Errorf("substitute(%q, %v) = %q, want %q", tt.text, tt.vec, got, tt.want)
		}
	}
}

func TestSubstitute_Errors(t *testing.T) {
	tests := []struct {
		text string
		vec  []int
	}{
		{"r%1", nil},
		{"r%2", []int{1}},
		{"r%0", []int{1}},
		{"r%10", []int{1}},
		{"r%99999999999999999999999", []int{1}},
	}

	for _, tt := range tests {
		_, err := substitute(tt.text, tt.vec)
		if !errors.Is(err, ErrParamRange) {
			t.Errorf("substitute(%q, %v) error = %v, want %v",
				tt.text, tt.vec, err, ErrParamRange)
		}
	}
}

func TestTerminate(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"", ""},
		{"mov r0, r1", "mov r0, r1;"},
		{"mov r0, r1;", "mov r0, r1;"},
		{"loop_start:", "loop_start:"},
		{`add r0, \`, `add r0, \`},
		{".align 16", ".align 16"},
		{".", "."},
		{"a;b", "a;b;"},
		{"a: b", "a: b;"},
		{"x.y", "x.y;"},
	}

	for _, tt := range tests {
		if got := terminate(tt.line); got != tt.want {
			t.Errorf("terminate(%q) = %q, want %q", tt.line, got, tt.want)
		}
	}
}
