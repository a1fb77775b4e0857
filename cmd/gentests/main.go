package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vic/goski/pkg/combinator"
	"github.com/vic/goski/pkg/lambda"
)

type TestCase struct {
	Name   string
	Input  string
	Output string
	Lambda bool
}

const testTemplate = `package gentests

import _ "embed"
import "testing"
import "github.com/vic/goski/cmd/gentests/helper"

//go:embed input.%[3]s
var input string

//go:embed output.%[3]s
var output string

func Test_%[1]s_Reduction(t *testing.T) {
	gentests.%[2]s(t, "%[1]s", input, output)
}
`

func main() {
	tests := []TestCase{
		// Basis
		{Name: "001_i", Input: "Ix", Output: "x"},
		{Name: "002_k", Input: "Kxy", Output: "x"},
		{Name: "003_s", Input: "Sxyz", Output: "xz(yz)"},
		{Name: "004_skk", Input: "SKKx", Output: "x"},

		// Spines
		{Name: "005_excess", Input: "Ixy", Output: "xy"},
		{Name: "006_nested_head", Input: "(Ix)y", Output: "xy"},
		{Name: "007_free_inert", Input: "xKab", Output: "xKab"},
		{Name: "008_arg_redex", Input: "x(Iy)(Kab)", Output: "xya"},
		{Name: "009_nested_arg", Input: "x(I(yz))", Output: "x(yz)"},

		// Derived
		{Name: "010_sksk", Input: "SKSx", Output: "x"},
		{Name: "011_swap", Input: "S(K(SI))Kab", Output: "ba"},
		{Name: "012_compose", Input: "S(KS)Kfgx", Output: "f(gx)"},
		{Name: "013_partial", Input: "SK", Output: "SK"},
		{Name: "014_ki", Input: "KIxy", Output: "y"},
		{Name: "015_sii", Input: "SIIx", Output: "xx"},

		// Lambda terms, translated by bracket abstraction
		{Name: "020_id_id", Input: "(x: x) (y: y)", Output: "z: z", Lambda: true},
		{Name: "021_k", Input: "(x: y: x) a b", Output: "a", Lambda: true},
		{Name: "022_erase_complex", Input: "(x: y: x) a ((z: z) b)", Output: "a", Lambda: true},
		{Name: "023_s", Input: "(x: y: z: x z (y z)) (a: b: a) (c: d: c) e", Output: "e", Lambda: true},
		{Name: "030_zero", Input: "(f: x: x) f x", Output: "x", Lambda: true},
		{Name: "031_one", Input: "(f: x: f x) f x", Output: "f x", Lambda: true},
		{Name: "032_two", Input: "(f: x: f (f x)) f x", Output: "f (f x)", Lambda: true},
		{Name: "033_succ_0", Input: "(n: f: x: f (n f x)) (f: x: x) f x", Output: "f x", Lambda: true},
		{Name: "034_succ_1", Input: "(n: f: x: f (n f x)) (f: x: f x) f x", Output: "f (f x)", Lambda: true},
		{Name: "040_not_true", Input: "(b: b (x: y: y) (x: y: x)) (x: y: x) a b", Output: "b", Lambda: true},
		{Name: "041_and_true_false", Input: "(p: q: p q p) (x: y: x) (x: y: y) a b", Output: "b", Lambda: true},
		{Name: "050_pair_fst", Input: "(p: p (x: y: x)) ((x: y: f: f x y) a b)", Output: "a", Lambda: true},
		{Name: "051_pair_snd", Input: "(p: p (x: y: y)) ((x: y: f: f x y) a b)", Output: "b", Lambda: true},
		{Name: "060_let_id", Input: "let i = x: x; in i a", Output: "a", Lambda: true},
		{Name: "061_let_nested", Input: "let x = a; in let y = b; in x", Output: "a", Lambda: true},
		{Name: "062_let_shadow", Input: "let x = a; in let x = b; in x", Output: "b", Lambda: true},
		{Name: "070_share_complex", Input: "(x: x (x a)) (y: y)", Output: "a", Lambda: true},
		{Name: "071_erase_shared", Input: "(x: y: y) ((z: z) a) b", Output: "b", Lambda: true},
		{Name: "080_nested_app", Input: "(x: y: x y) a b", Output: "a b", Lambda: true},
	}

	baseDir := "cmd/gentests/generated"
	os.MkdirAll(baseDir, 0755)

	for _, tc := range tests {
		dir := filepath.Join(baseDir, tc.Name)
		os.MkdirAll(dir, 0755)

		in, out, err := canonical(tc)
		if err != nil {
			fmt.Printf("Error in %s: %v\n", tc.Name, err)
			continue
		}

		ext, check := "ski", "CheckReduction"
		if tc.Lambda {
			ext, check = "lam", "CheckLambdaReduction"
		}
		testGo := fmt.Sprintf(testTemplate, tc.Name, check, ext)

		os.WriteFile(filepath.Join(dir, "input."+ext), []byte(in+"\n"), 0644)
		os.WriteFile(filepath.Join(dir, "output."+ext), []byte(out+"\n"), 0644)
		os.WriteFile(filepath.Join(dir, "reduction_test.go"), []byte(testGo), 0644)
	}

	fmt.Printf("Generated %d tests\n", len(tests))
}

// canonical parses both sides of a case and renders them back.
func canonical(tc TestCase) (string, string, error) {
	if tc.Lambda {
		in, err := lambda.Parse(tc.Input)
		if err != nil {
			return "", "", fmt.Errorf("input: %w", err)
		}
		out, err := lambda.Parse(tc.Output)
		if err != nil {
			return "", "", fmt.Errorf("output: %w", err)
		}
		return in.String(), out.String(), nil
	}
	in, err := combinator.Parse(tc.Input)
	if err != nil {
		return "", "", fmt.Errorf("input: %w", err)
	}
	out, err := combinator.Parse(tc.Output)
	if err != nil {
		return "", "", fmt.Errorf("output: %w", err)
	}
	return in.String(), out.String(), nil
}
