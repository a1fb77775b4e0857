package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func combinatorsCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "combinators",
		Short: "List the active combinators and their rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, reg, err := loadRegistry(opts)
			if err != nil {
				return err
			}
			for _, name := range reg.Names() {
				c, _ := reg.Lookup(name)
				fmt.Fprintf(cmd.OutOrStdout(), "%s %d %s\n", c.Name, c.Arity, c.Rule())
			}
			return nil
		},
	}
}
