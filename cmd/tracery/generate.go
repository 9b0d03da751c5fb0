package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func (a *app) generateCmd() *cobra.Command {
	var (
		src   source
		count int
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Expand the origin symbol",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return fmt.Errorf("count must be at least 1, got %d", count)
			}
			g, err := a.load(cmd.Context(), cmd, &src)
			if err != nil {
				return err
			}
			for i := 0; i < count; i++ {
				fmt.Fprintln(a.out, g.Generate())
			}
			return nil
		},
	}
	src.bind(cmd)
	cmd.Flags().IntVarP(&count, "count", "n", 1, "Number of texts to generate")
	return cmd
}

func (a *app) resolveCmd() *cobra.Command {
	var src source

	cmd := &cobra.Command{
		Use:   "resolve TEXT...",
		Short: "Expand the tags and actions in TEXT",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.load(cmd.Context(), cmd, &src)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, g.Resolve(strings.Join(args, " ")))
			return nil
		},
	}
	src.bind(cmd)
	return cmd
}
