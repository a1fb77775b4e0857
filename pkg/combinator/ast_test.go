package combinator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApp(t *testing.T) {
	_, err := NewApp()
	assert.ErrorIs(t, err, ErrEmptyTerm)

	_, err = NewApp(NewAtom("x"), App{})
	assert.ErrorIs(t, err, ErrEmptyTerm)

	single, err := NewApp(NewAtom("x"))
	require.NoError(t, err)
	assert.Equal(t, NewAtom("x"), single)
}

func TestAppIsImmutable(t *testing.T) {
	items := []Term{NewAtom("K"), NewAtom("x"), NewAtom("y")}
	app := MustApp(items...).(App)
	items[0] = NewAtom("I")

	got := app.Items()
	got[1] = NewAtom("z")
	assert.Equal(t, "Kxy", app.String())
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(App{}))
	assert.False(t, IsEmpty(NewAtom("x")))
	assert.False(t, IsEmpty(MustParse("xy")))
	assert.True(t, IsAtom(NewAtom("x")))
	assert.False(t, IsAtom(MustParse("xy")))
}

func TestSpine(t *testing.T) {
	head, args := Spine(MustParse("((Sa)b)(cd)e"))
	assert.Equal(t, NewAtom("S"), head)
	require.Len(t, args, 4)
	assert.Equal(t, "a", args[0].String())
	assert.Equal(t, "b", args[1].String())
	assert.Equal(t, "cd", args[2].String())
	assert.Equal(t, "e", args[3].String())

	head, args = Spine(NewAtom("x"))
	assert.Equal(t, NewAtom("x"), head)
	assert.Empty(t, args)
}

func TestApplyFlattensHead(t *testing.T) {
	got := Apply(MustParse("Kx"), NewAtom("y"))
	assert.Equal(t, "Kxy", got.String())

	got = Apply(NewAtom("x"), MustParse("yz"))
	assert.Equal(t, "x(yz)", got.String())

	assert.Equal(t, NewAtom("x"), Apply(NewAtom("x")))
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(MustParse("S(Kx)y"), MustParse("S (K x) y")))
	assert.False(t, Equal(MustParse("S(Kx)y"), MustParse("SKxy")))
	assert.False(t, Equal(NewAtom("x"), MustParse("xy")))
	assert.False(t, Equal(NewAtom("x"), nil))
	assert.True(t, Equal(nil, nil))
}

func TestPrintMinimalParens(t *testing.T) {
	tests := []struct {
		term Term
		want string
	}{
		{NewAtom("x"), "x"},
		{MustApp(NewAtom("x"), NewAtom("y")), "xy"},
		{MustApp(NewAtom("x"), MustApp(NewAtom("y"), NewAtom("z"))), "x(yz)"},
		{MustApp(MustApp(NewAtom("x"), NewAtom("y")), NewAtom("z")), "(xy)z"},
		{MustApp(NewAtom("S"), MustApp(NewAtom("K"), MustApp(NewAtom("S"), NewAtom("I")))), "S(K(SI))"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.term.String())
		assert.Equal(t, tt.want, Print(tt.term))
	}
	assert.Equal(t, "", Print(nil))
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		"x",
		"SKKx",
		"S(Kx)(yz)",
		"(xy)z",
		"x(y(z(ab)))c",
		"S(K(SI))K(ab)c",
		"((SI)I)(SII)",
	}
	for _, input := range inputs {
		term := MustParse(input)
		again, err := Parse(Print(term))
		require.NoError(t, err, input)
		assert.True(t, Equal(term, again), "%q: %s != %s", input, term, again)
	}
}
