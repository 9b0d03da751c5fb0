package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"nickandperla.net/tracery/internal/grammar"
	"nickandperla.net/tracery/internal/store"
)

func (a *app) grammarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grammar",
		Short: "Manage the grammar library",
	}
	cmd.AddCommand(a.grammarPutCmd(), a.grammarGetCmd(), a.grammarListCmd(), a.grammarDeleteCmd())
	return cmd
}

func (a *app) grammarPutCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "put NAME FILE",
		Short: "Store a grammar file under NAME",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, path := args[0], args[1]

			f := grammar.FormatFromPath(path)
			if format != "" {
				var ok bool
				if f, ok = grammar.ParseFormat(format); !ok {
					return fmt.Errorf("unknown format: %s (use json, yaml or hcl)", format)
				}
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			// Refuse sources that would not load later
			if _, err := grammar.Load(data, f); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			s, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			e := &store.Entry{Name: name, Format: string(f), Source: string(data)}
			if err := s.Put(cmd.Context(), e); err != nil {
				return err
			}
			a.logger.Info("grammar stored", "name", name, "revision", e.Revision)
			fmt.Fprintf(a.out, "%s %s\n", name, e.Revision)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "Source format, overriding the file extension")
	return cmd
}

func (a *app) grammarGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get NAME",
		Short: "Print a stored grammar source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			e, err := store.Lookup(cmd.Context(), s, args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(a.out, e.Source)
			return nil
		},
	}
}

func (a *app) grammarListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored grammars",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			entries, err := s.List(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tFORMAT\tSIZE\tUPDATED")
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Name, e.Format,
					humanize.Bytes(uint64(len(e.Source))), humanize.Time(e.UpdatedAt))
			}
			return w.Flush()
		},
	}
}

func (a *app) grammarDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete NAME",
		Short: "Remove a stored grammar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			if _, err := store.Lookup(cmd.Context(), s, args[0]); err != nil {
				return err
			}
			return s.Delete(cmd.Context(), args[0])
		},
	}
}
