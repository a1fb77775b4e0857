package reducer

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vic/goski/pkg/combinator"
)

func parse(t *testing.T, s string) combinator.Term {
	t.Helper()
	term, err := combinator.Parse(s)
	require.NoError(t, err, s)
	return term
}

// stepOnce asserts that input has a redex and contracts to want in one step.
func stepOnce(t *testing.T, reg *Registry, input, want string) {
	t.Helper()
	term := parse(t, input)
	require.True(t, HasWeakRedex(reg, term), "%s should have a redex", input)
	next, _, err := Step(reg, term)
	require.NoError(t, err)
	assert.Equal(t, want, next.String(), "step of %s", input)
}

func normalize(t *testing.T, m *Machine, input string) (combinator.Term, error) {
	t.Helper()
	return m.Normalize(context.Background(), parse(t, input))
}

func TestIContraction(t *testing.T) {
	reg := SKI()
	stepOnce(t, reg, "Ix", "x")
	stepOnce(t, reg, "I(xy)", "xy")
	stepOnce(t, reg, "I(S(Kx))", "S(Kx)")
}

func TestKContraction(t *testing.T) {
	reg := SKI()
	stepOnce(t, reg, "Kxy", "x")
	stepOnce(t, reg, "K(ab)(cd)", "ab")
}

func TestSContraction(t *testing.T) {
	reg := SKI()
	stepOnce(t, reg, "Sxyz", "xz(yz)")
	stepOnce(t, reg, "S(ab)cd", "abd(cd)")
}

func TestExcessArguments(t *testing.T) {
	reg := SKI()
	stepOnce(t, reg, "Ixy", "xy")
	stepOnce(t, reg, "Kxyzw", "xzw")
	stepOnce(t, reg, "Sxyzw", "xz(yz)w")
}

func TestNestedHeadIsFlattened(t *testing.T) {
	reg := SKI()
	stepOnce(t, reg, "((Kx)y)z", "xz")
	stepOnce(t, reg, "(Ix)y", "xy")
}

func TestRedexInArgumentPosition(t *testing.T) {
	reg := SKI()
	stepOnce(t, reg, "x(Iy)(Kab)", "xy(Kab)")
	stepOnce(t, reg, "xy(Kab)", "xya")
	stepOnce(t, reg, "S(Ix)", "Sx")
	stepOnce(t, reg, "x(y(z(Iw)))", "x(y(zw))")
	// The reduct of an argument stays grouped.
	stepOnce(t, reg, "x(I(yz))", "x(yz)")
	stepOnce(t, reg, "x(Iyz)", "x(yz)")
}

func TestFreeVariablesAreInert(t *testing.T) {
	reg := SKI()
	for _, input := range []string{"x", "xy", "xKab", "fIII", "x(SK)(Ka)", "S", "Kx", "SKx"} {
		term := parse(t, input)
		assert.False(t, HasWeakRedex(reg, term), input)

		_, _, err := Step(reg, term)
		assert.ErrorIs(t, err, ErrNoRedex, input)
	}
}

func TestSKKIsIdentity(t *testing.T) {
	m := NewMachine(SKI())
	nf, err := normalize(t, m, "SKKx")
	require.NoError(t, err)
	assert.Equal(t, "x", nf.String())

	stats := m.GetStats()
	assert.Equal(t, uint64(2), stats.TotalReductions)
	assert.Equal(t, map[string]uint64{"S": 1, "K": 1}, stats.ByCombinator)
}

func TestNormalForms(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"x", "x"},
		{"Ix", "x"},
		{"KIxy", "y"},
		{"SIIx", "xx"},
		{"SKSx", "x"},
		{"S(K(SI))Kab", "ba"},
		{"x(Iy)(Kab)", "xya"},
		{"S(KS)Kfgx", "f(gx)"},
	}
	for _, tt := range tests {
		m := NewMachine(SKI())
		nf, err := normalize(t, m, tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, nf.String(), tt.input)
	}
}

func TestExtendedCombinators(t *testing.T) {
	reg := Extended()
	stepOnce(t, reg, "Bfgx", "f(gx)")
	stepOnce(t, reg, "Bf(gh)x", "f(ghx)")
	stepOnce(t, reg, "Cfxy", "fyx")
	stepOnce(t, reg, "Wfx", "fxx")
}

func TestCustomCombinator(t *testing.T) {
	reg := NewRegistry()
	tmpl, err := ParseTemplate("00")
	require.NoError(t, err)
	require.NoError(t, reg.Register("M", 1, tmpl...))

	stepOnce(t, reg, "Mx", "xx")
	// S is not registered here, so it is a free variable.
	assert.False(t, HasWeakRedex(reg, parse(t, "Sxyz")))

	m := NewMachine(reg, WithMaxSteps(10))
	last, err := normalize(t, m, "MM")
	assert.ErrorIs(t, err, ErrBudgetExceeded)
	assert.Equal(t, "MM", last.String())
}

func TestNormalizeIsIdempotent(t *testing.T) {
	m := NewMachine(SKI())
	nf, err := normalize(t, m, "S(K(SI))Kab")
	require.NoError(t, err)
	before := m.GetStats().TotalReductions

	again, err := m.Normalize(context.Background(), nf)
	require.NoError(t, err)
	assert.True(t, combinator.Equal(nf, again))
	assert.Equal(t, before, m.GetStats().TotalReductions)
}

func TestNormalizeRejectsEmpty(t *testing.T) {
	m := NewMachine(nil)
	_, err := m.Normalize(context.Background(), combinator.App{})
	assert.ErrorIs(t, err, combinator.ErrEmptyTerm)
	_, err = m.Normalize(context.Background(), nil)
	assert.ErrorIs(t, err, combinator.ErrEmptyTerm)
}

func TestTraceHook(t *testing.T) {
	var steps []int
	var terms []string
	m := NewMachine(SKI(), WithTrace(func(step int, term string) {
		steps = append(steps, step)
		terms = append(terms, term)
	}))
	nf, err := normalize(t, m, "SKKx")
	require.NoError(t, err)
	assert.Equal(t, "x", nf.String())
	assert.Equal(t, []int{0, 1, 2}, steps)
	assert.Equal(t, []string{"SKKx", "Kx(Kx)", "x"}, terms)
}

func TestTraceHookOnNormalForm(t *testing.T) {
	var calls int
	m := NewMachine(SKI(), WithTrace(func(int, string) { calls++ }))
	_, err := normalize(t, m, "xy")
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestTraceHookDoesNotChangeResult(t *testing.T) {
	plain := NewMachine(SKI())
	traced := NewMachine(SKI(), WithTrace(func(int, string) {}))
	a, err := normalize(t, plain, "S(KS)Kfgx")
	require.NoError(t, err)
	b, err := normalize(t, traced, "S(KS)Kfgx")
	require.NoError(t, err)
	assert.True(t, combinator.Equal(a, b))
}

func TestStepBudget(t *testing.T) {
	for _, n := range []int{1, 5, 50} {
		var calls int
		m := NewMachine(SKI(), WithMaxSteps(n), WithTrace(func(int, string) { calls++ }))
		last, err := normalize(t, m, "SII(SII)")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrBudgetExceeded))

		var budget *BudgetError
		require.True(t, errors.As(err, &budget))
		assert.Equal(t, n, budget.Steps)
		assert.True(t, combinator.Equal(last, budget.Term))
		assert.True(t, m.HasWeakRedex(last))
		assert.Equal(t, uint64(n), m.GetStats().TotalReductions)
		assert.Equal(t, n+1, calls)
	}
}

func TestStepBudgetNotHitAtNormalForm(t *testing.T) {
	m := NewMachine(SKI(), WithMaxSteps(2))
	nf, err := normalize(t, m, "SKKx")
	require.NoError(t, err)
	assert.Equal(t, "x", nf.String())
}

func TestTimeBudget(t *testing.T) {
	m := NewMachine(SKI(), WithTimeout(20*time.Millisecond))
	last, err := normalize(t, m, "SII(SII)")
	require.ErrorIs(t, err, ErrBudgetExceeded)
	require.NotNil(t, last)

	var budget *BudgetError
	require.True(t, errors.As(err, &budget))
	assert.Equal(t, "time limit reached", budget.Reason)
}

func TestContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := NewMachine(SKI())
	last, err := m.Normalize(ctx, parse(t, "SII(SII)"))
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, err, ErrBudgetExceeded)
	assert.Equal(t, "SII(SII)", last.String())
}

func TestTraceSnapshot(t *testing.T) {
	m := NewMachine(SKI())
	assert.Nil(t, m.TraceSnapshot())

	m.EnableTrace(10)
	_, err := normalize(t, m, "x(SKKy)")
	require.NoError(t, err)

	events := m.TraceSnapshot()
	require.Len(t, events, 2)
	assert.Equal(t, "S", events[0].Combinator)
	assert.Equal(t, 1, events[0].Depth)
	assert.Equal(t, 3, events[0].Args)
	assert.Equal(t, uint64(1), events[0].Step)
	assert.Equal(t, "K", events[1].Combinator)
	assert.Equal(t, 2, events[1].Size)

	m.DisableTrace()
	assert.Nil(t, m.TraceSnapshot())
}

func TestTraceSnapshotCapacity(t *testing.T) {
	m := NewMachine(SKI(), WithMaxSteps(20))
	m.EnableTrace(3)
	_, _ = normalize(t, m, "SII(SII)")
	assert.Len(t, m.TraceSnapshot(), 3)
}

func TestResetStats(t *testing.T) {
	m := NewMachine(SKI())
	_, err := normalize(t, m, "SKKx")
	require.NoError(t, err)
	m.ResetStats()
	assert.Equal(t, Stats{TotalReductions: 0, ByCombinator: map[string]uint64{}}, m.GetStats())
}

func TestNewMachineFreezesRegistry(t *testing.T) {
	reg := SKI()
	NewMachine(reg)
	assert.ErrorIs(t, reg.Register("M", 1, Arg(0), Arg(0)), ErrRegistryFrozen)
}

func TestDeepArgumentNesting(t *testing.T) {
	depth := 50000
	input := strings.Repeat("x(", depth) + "Iy" + strings.Repeat(")", depth)
	m := NewMachine(SKI())
	nf, err := normalize(t, m, input)
	require.NoError(t, err)

	want := strings.Repeat("x(", depth-1) + "xy" + strings.Repeat(")", depth-1)
	assert.Equal(t, want, nf.String())
	assert.Equal(t, uint64(1), m.GetStats().TotalReductions)
}

func TestLongNestedHead(t *testing.T) {
	length := 50000
	term := combinator.Term(combinator.NewAtom("I"))
	for i := 0; i < length; i++ {
		term = combinator.MustApp(term, combinator.NewAtom("x"))
	}
	m := NewMachine(SKI())
	nf, err := m.Normalize(context.Background(), term)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("x", length), nf.String())
}
