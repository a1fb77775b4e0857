package lambda

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"x", "x"},
		{"x: x", "(x: x)"},
		{"x: y: x", "(x: (y: x))"},
		{"f a b", "((f a) b)"},
		{"f (a b)", "(f (a b))"},
		{"x y: z a", "(x (y: (z a)))"},
		{"(x: x) (y: y)", "((x: x) (y: y))"},
		{"let x = a; in x", "((x: x) a)"},
		{"let i = x: x; k = x: y: x; in k i", "((i: ((k: (k i)) (x: (y: x)))) (x: x))"},
		{"let x = a in x", "((x: x) a)"},
		{"succ0 + 1", "((succ0 +) 1)"},
	}
	for _, tt := range tests {
		term, err := Parse(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, term.String(), tt.input)
	}
}

func TestParseErrors(t *testing.T) {
	for _, input := range []string{"", "(x", "x)", "x: ", "let x a in x", "let = a; in x", ":"} {
		_, err := Parse(input)
		assert.ErrorIs(t, err, ErrSyntax, "input %q", input)
	}
}

func TestFreeVars(t *testing.T) {
	term, err := Parse("x: f x (y: y z) y")
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"f": true, "z": true, "y": true}, FreeVars(term))
}
