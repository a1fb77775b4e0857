package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/vic/goski/pkg/combinator"
)

func fmtCmd() *cobra.Command {
	var files []string

	cmd := &cobra.Command{
		Use:   "fmt [flags] [term...]",
		Short: "Print terms with minimal parentheses",
		Example: `  # Drop redundant parentheses
  ski fmt 'S (K x) (y  z)'   # S(Kx)(yz)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := readInputs(cmd.InOrStdin(), files, args)
			if err != nil {
				return err
			}
			for _, input := range inputs {
				term, err := combinator.Parse(input)
				if err != nil {
					return errors.Wrapf(err, "parse %q", input)
				}
				fmt.Fprintln(cmd.OutOrStdout(), combinator.Print(term))
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&files, "file", "f", nil, "Read a term from a file (repeatable)")
	return cmd
}
