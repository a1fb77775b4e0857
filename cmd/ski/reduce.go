package main

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/kr/pretty"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/vic/goski/pkg/combinator"
	"github.com/vic/goski/pkg/lambda"
	"github.com/vic/goski/pkg/reducer"
	"golang.org/x/sync/errgroup"
)

type reduceOptions struct {
	Files    []string
	MaxSteps int
	Timeout  time.Duration
	Trace    bool
	Stats    bool
	Lambda   bool
}

var (
	statsTitle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	statsName   = lipgloss.NewStyle().Foreground(lipgloss.Color("117"))
	statsDim    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statsBorder = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

func reduceCmd(opts *Options) *cobra.Command {
	var ropts reduceOptions

	cmd := &cobra.Command{
		Use:   "reduce [flags] [term...]",
		Short: "Reduce terms to weak normal form",
		Long: `Reduce each term to weak normal form and print it.

Terms come from the arguments, from files given with -f, or one per line
from stdin when neither is given. Several terms are reduced concurrently
and printed in input order.`,
		Example: `  # Reduce a term
  ski reduce SKKx

  # Show every step
  ski reduce --trace 'S(K(SI))Kab'

  # Give up after 100 steps
  ski reduce --max-steps 100 'SII(SII)'

  # Reduce a lambda term via bracket abstraction
  ski reduce --lambda '(x: y: x) a b'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReduce(cmd, opts, ropts, args)
		},
	}

	cmd.Flags().StringArrayVarP(&ropts.Files, "file", "f", nil, "Read a term from a file (repeatable)")
	cmd.Flags().IntVar(&ropts.MaxSteps, "max-steps", 0, "Stop after this many steps (0 uses the config)")
	cmd.Flags().DurationVar(&ropts.Timeout, "timeout", 0, "Stop after this much time (0 uses the config)")
	cmd.Flags().BoolVar(&ropts.Trace, "trace", false, "Print every intermediate term with its step number")
	cmd.Flags().BoolVar(&ropts.Stats, "stats", false, "Print contraction counts to stderr")
	cmd.Flags().BoolVar(&ropts.Lambda, "lambda", false, "Read lambda terms and translate them before reducing")

	return cmd
}

type reduction struct {
	term   combinator.Term
	out    bytes.Buffer
	result combinator.Term
	stats  reducer.Stats
	err    error
}

func runReduce(cmd *cobra.Command, opts *Options, ropts reduceOptions, args []string) error {
	cfg, reg, err := loadRegistry(opts)
	if err != nil {
		return err
	}
	if ropts.MaxSteps > 0 {
		cfg.MaxSteps = ropts.MaxSteps
	}
	if ropts.Timeout > 0 {
		cfg.Timeout.Duration = ropts.Timeout
	}
	trace := ropts.Trace || cfg.Trace

	inputs, err := readInputs(cmd.InOrStdin(), ropts.Files, args)
	if err != nil {
		return err
	}

	runs := make([]*reduction, len(inputs))
	for i, input := range inputs {
		term, err := parseInput(input, ropts.Lambda, reg)
		if err != nil {
			return err
		}
		slog.Debug("parsed term", "input", input, "ast", pretty.Sprint(term))
		runs[i] = &reduction{term: term}
	}

	// Shared read-only by every machine.
	reg.Freeze()

	eg, ctx := errgroup.WithContext(cmd.Context())
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for _, run := range runs {
		eg.Go(func() error {
			return run.reduce(ctx, reg, cfg.MachineOptions(), trace)
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	stdout := cmd.OutOrStdout()
	var firstErr error
	for i, run := range runs {
		if _, err := io.Copy(stdout, &run.out); err != nil {
			return err
		}
		if ropts.Stats {
			writeStats(cmd.ErrOrStderr(), reg, inputs[i], run.stats)
		}
		if run.err != nil && firstErr == nil {
			firstErr = run.err
		}
	}
	return firstErr
}

func (r *reduction) reduce(ctx context.Context, reg *reducer.Registry, opts []reducer.Option, trace bool) error {
	if trace {
		opts = append(opts, reducer.WithTrace(func(step int, term string) {
			fmt.Fprintf(&r.out, "%d %s\n", step, term)
		}))
	}
	m := reducer.NewMachine(reg, append(opts, reducer.WithLogger(slog.Default()))...)

	start := time.Now()
	r.result, r.err = m.Normalize(ctx, r.term)
	r.stats = m.GetStats()
	slog.Debug("reduced", "steps", r.stats.TotalReductions, "elapsed", time.Since(start))

	var budget *reducer.BudgetError
	if r.err != nil && !errors.As(r.err, &budget) {
		return r.err
	}
	// A budget failure still prints the term reached.
	fmt.Fprintln(&r.out, r.result)
	return nil
}

func parseInput(input string, isLambda bool, reg *reducer.Registry) (combinator.Term, error) {
	if !isLambda {
		term, err := combinator.Parse(input)
		if err != nil {
			return nil, errors.Wrapf(err, "parse %q", input)
		}
		return term, nil
	}
	lt, err := lambda.Parse(input)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %q", input)
	}
	term, err := lambda.ToCombinator(lt, reg)
	if err != nil {
		return nil, errors.Wrapf(err, "translate %q", input)
	}
	return term, nil
}

// readInputs returns the terms to work on: the args, then each file. With
// neither, every non-blank line of stdin is a term.
func readInputs(stdin io.Reader, files, args []string) ([]string, error) {
	inputs := append([]string(nil), args...)
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read term")
		}
		inputs = append(inputs, strings.TrimSpace(string(data)))
	}
	if len(inputs) > 0 {
		return inputs, nil
	}

	scanner := bufio.NewScanner(stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			inputs = append(inputs, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read stdin")
	}
	if len(inputs) == 0 {
		return nil, errors.New("no terms given")
	}
	return inputs, nil
}

func writeStats(w io.Writer, reg *reducer.Registry, input string, stats reducer.Stats) {
	var sb strings.Builder
	sb.WriteString(statsTitle.Render("Stats") + " " + statsDim.Render(input) + "\n")
	fmt.Fprintf(&sb, "Total Reductions: %d", stats.TotalReductions)
	for _, name := range reg.Names() {
		if n := stats.ByCombinator[name]; n > 0 {
			fmt.Fprintf(&sb, "\n  %s %6d", statsName.Render(name), n)
		}
	}
	fmt.Fprintln(w, statsBorder.Render(sb.String()))
}
