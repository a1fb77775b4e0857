package gentests

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vic/goski/pkg/combinator"
	"github.com/vic/goski/pkg/lambda"
	"github.com/vic/goski/pkg/reducer"
)

const maxSteps = 100000

// CheckReduction reduces the combinator term in inputStr and compares its
// weak normal form with outputStr.
func CheckReduction(t *testing.T, testName string, inputStr string, outputStr string) {
	t.Helper()

	term, err := combinator.Parse(strings.TrimSpace(inputStr))
	require.NoError(t, err, "parse input")
	expected, err := combinator.Parse(strings.TrimSpace(outputStr))
	require.NoError(t, err, "parse expected output")

	check(t, testName, reducer.SKI(), term, expected)
}

// CheckLambdaReduction is CheckReduction for lambda terms: both sides are
// translated by bracket abstraction first.
func CheckLambdaReduction(t *testing.T, testName string, inputStr string, outputStr string) {
	t.Helper()
	reg := reducer.SKI()

	translate := func(src string) combinator.Term {
		lt, err := lambda.Parse(strings.TrimSpace(src))
		require.NoError(t, err, "parse %q", src)
		ct, err := lambda.ToCombinator(lt, reg)
		require.NoError(t, err, "translate %q", src)
		return ct
	}

	check(t, testName, reg, translate(inputStr), translate(outputStr))
}

func check(t *testing.T, testName string, reg *reducer.Registry, term, expected combinator.Term) {
	t.Helper()
	m := reducer.NewMachine(reg, reducer.WithMaxSteps(maxSteps))

	start := time.Now()
	actual, err := m.Normalize(context.Background(), term)
	elapsed := time.Since(start)
	require.NoError(t, err, "reduce %s", term)

	require.Equal(t, expected.String(), actual.String(), "Mismatch in %s:\nInput: %s", testName, term)
	require.False(t, m.HasWeakRedex(actual), "%s: result still has a redex", testName)

	stats := m.GetStats()
	t.Logf("%s: %d reductions in %v", testName, stats.TotalReductions, elapsed)
}
