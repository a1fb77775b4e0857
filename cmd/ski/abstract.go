package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func abstractCmd(opts *Options) *cobra.Command {
	var files []string

	cmd := &cobra.Command{
		Use:   "abstract [flags] [lambda-term...]",
		Short: "Translate lambda terms to combinators",
		Example: `  ski abstract 'x: y: x'          # K
  ski abstract 'x: y: z: x z (y z)'   # S`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, reg, err := loadRegistry(opts)
			if err != nil {
				return err
			}
			inputs, err := readInputs(cmd.InOrStdin(), files, args)
			if err != nil {
				return err
			}
			for _, input := range inputs {
				term, err := parseInput(input, true, reg)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), term)
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&files, "file", "f", nil, "Read a term from a file (repeatable)")
	return cmd
}
