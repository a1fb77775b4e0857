package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vic/goski/pkg/compiler"
)

func compileCmd(opts *Options) *cobra.Command {
	var (
		output   string
		keepTemp bool
		isLambda bool
		maxSteps int
	)

	cmd := &cobra.Command{
		Use:   "compile [flags] file [-- go build flags]",
		Short: "Build a program that prints the normal form of a term",
		Long: `Compile embeds the term and the active combinators in a Go program
and runs go build on it. The source file must live inside a Go module that
can import this one.`,
		Example: `  ski compile swap.ski -o swap
  ./swap   # ba`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, reg, err := loadRegistry(opts)
			if err != nil {
				return err
			}
			if maxSteps == 0 {
				maxSteps = cfg.MaxSteps
			}
			c := compiler.Compiler{
				SourceFile: args[0],
				OutputName: output,
				GoFlags:    args[1:],
				KeepTemp:   keepTemp,
				Registry:   reg,
				MaxSteps:   maxSteps,
				Lambda:     isLambda,
			}
			built, err := c.Compile()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), built)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output binary (defaults to the source name)")
	cmd.Flags().BoolVar(&keepTemp, "keep-temp", false, "Keep the generated Go file")
	cmd.Flags().BoolVar(&isLambda, "lambda", false, "Source is a lambda term")
	cmd.Flags().IntVar(&maxSteps, "max-steps", 0, "Step bound of the built program (0 uses the config)")
	return cmd
}
