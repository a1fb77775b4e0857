package compiler

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/vic/goski/pkg/combinator"
	"github.com/vic/goski/pkg/lambda"
	"github.com/vic/goski/pkg/reducer"
)

// Compiler turns a term source file into a Go program that prints the
// term's weak normal form, and invokes go build on it.
type Compiler struct {
	SourceFile string
	OutputName string
	GoFlags    []string // Passed directly to go build
	KeepTemp   bool     // For debugging

	// Registry the program reduces under; SKI when nil.
	Registry *reducer.Registry
	// MaxSteps bounds the reduction in the built program; 0 is unbounded.
	MaxSteps int
	// Lambda reads the source as a lambda term and translates it first.
	Lambda bool
}

// Load reads and parses the source file.
func (c *Compiler) Load() (combinator.Term, error) {
	source, err := os.ReadFile(c.SourceFile)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read source")
	}
	text := strings.TrimSpace(string(source))

	if !c.Lambda {
		term, err := combinator.Parse(text)
		if err != nil {
			return nil, errors.Wrap(err, "parse error")
		}
		return term, nil
	}

	lt, err := lambda.Parse(text)
	if err != nil {
		return nil, errors.Wrap(err, "parse error")
	}
	term, err := lambda.ToCombinator(lt, c.registry())
	if err != nil {
		return nil, errors.Wrap(err, "translate")
	}
	return term, nil
}

func (c *Compiler) registry() *reducer.Registry {
	if c.Registry == nil {
		return reducer.SKI()
	}
	return c.Registry
}

// Compile generates the program and builds it.
// Returns the output binary path on success.
func (c *Compiler) Compile() (string, error) {
	term, err := c.Load()
	if err != nil {
		return "", err
	}

	gen := CodeGenerator{
		SourceFile: filepath.Base(c.SourceFile),
		Registry:   c.registry(),
		MaxSteps:   c.MaxSteps,
	}
	goCode, err := gen.Generate(term)
	if err != nil {
		return "", err
	}

	outputName := c.OutputName
	if outputName == "" {
		// Default: strip the source extension
		outputName = strings.TrimSuffix(filepath.Base(c.SourceFile), filepath.Ext(c.SourceFile))
	}

	// The generated file lives next to the output, go build needs it
	// inside the module.
	outputDir := filepath.Dir(outputName)
	if outputDir == "." || outputDir == "" {
		outputDir, _ = os.Getwd()
	}

	tmpFile, err := os.CreateTemp(outputDir, "goski-*.go")
	if err != nil {
		return "", errors.Wrap(err, "failed to create temp file")
	}
	tmpPath := tmpFile.Name()
	defer func() {
		tmpFile.Close()
		if !c.KeepTemp {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.WriteString(goCode); err != nil {
		return "", errors.Wrap(err, "failed to write generated code")
	}
	tmpFile.Close()

	buildDir := outputDir
	if goModDir := findGoModDir(c.SourceFile); goModDir != "" {
		buildDir = goModDir
	}

	args := []string{"build", "-o", outputName}
	args = append(args, c.GoFlags...)
	if buildDir != outputDir {
		args = append(args, tmpPath)
	} else {
		args = append(args, filepath.Base(tmpPath))
	}

	cmd := exec.Command("go", args...)
	cmd.Dir = buildDir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if c.KeepTemp {
		fmt.Fprintf(os.Stderr, "Build dir: %s\n", buildDir)
		fmt.Fprintf(os.Stderr, "Build cmd: go %s\n", strings.Join(args, " "))
	}

	if err := cmd.Run(); err != nil {
		return "", errors.Wrap(err, "go build failed")
	}

	if !filepath.IsAbs(outputName) {
		outputName = filepath.Join(outputDir, filepath.Base(outputName))
	}

	if c.KeepTemp {
		fmt.Fprintf(os.Stderr, "Generated code kept at: %s\n", tmpPath)
	}

	return outputName, nil
}

// findGoModDir searches for go.mod starting from the given path
func findGoModDir(startPath string) string {
	dir := filepath.Dir(startPath)
	if !filepath.IsAbs(dir) {
		if abs, err := filepath.Abs(dir); err == nil {
			dir = abs
		}
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
