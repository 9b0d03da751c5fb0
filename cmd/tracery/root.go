package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"nickandperla.net/tracery/internal/config"
	"nickandperla.net/tracery/internal/store"
	"nickandperla.net/tracery/pkg/tracery"
)

// app carries settings shared by every subcommand.
type app struct {
	cfg       config.Config
	storeType string
	logger    *slog.Logger
	in        io.Reader
	out       io.Writer
	errOut    io.Writer
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	a := &app{cfg: config.FromEnv(), in: in, out: out, errOut: errOut}
	a.storeType = string(a.cfg.Store)

	cmd := &cobra.Command{
		Use:   "tracery",
		Short: "Expand text with generative grammars",
		Long: `tracery expands #symbol# tags and [key:value] actions against a grammar.

Grammars are JSON, YAML or HCL objects mapping symbols to rules. They can be
read from a file with -f or from the grammar library with -g. Without either,
a small built-in story grammar is used.

Examples:
  # Expand the origin symbol of a grammar file
  tracery generate -f story.json

  # Same output on every run
  tracery generate -f story.yaml --seed 7 -n 3

  # Store a grammar and use it by name
  tracery grammar put story story.hcl
  tracery resolve -g story "#hero.capitalize# rides on"`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.cfg.Store = config.ParseStoreType(a.storeType)
			a.logger = a.cfg.Logger(a.errOut)
		},
	}
	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.storeType, "store", a.storeType, "Grammar store: sqlite, postgres or memory (env TRACERY_STORE)")
	flags.StringVar(&a.cfg.DBPath, "db", a.cfg.DBPath, "SQLite database path (env TRACERY_DB)")
	flags.StringVar(&a.cfg.PostgresDSN, "pg-dsn", a.cfg.PostgresDSN, "PostgreSQL connection string (env TRACERY_PG_DSN)")
	flags.StringVar(&a.cfg.LogLevel, "log-level", a.cfg.LogLevel, "Log level: debug, info, warn or error (env TRACERY_LOG_LEVEL)")
	flags.StringVar(&a.cfg.LogFormat, "log-format", a.cfg.LogFormat, "Log format: text or json (env TRACERY_LOG_FORMAT)")

	cmd.AddCommand(
		a.generateCmd(),
		a.resolveCmd(),
		a.replCmd(),
		a.grammarCmd(),
	)
	return cmd
}

// source names where a command reads its grammar from.
type source struct {
	file string
	name string
	seed uint64
}

func (s *source) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&s.file, "file", "f", "", "Grammar file (.json, .yaml, .yml or .hcl)")
	cmd.Flags().StringVarP(&s.name, "grammar", "g", "", "Name of a stored grammar")
	cmd.Flags().Uint64Var(&s.seed, "seed", 0, "Random seed for repeatable output")
	cmd.MarkFlagsMutuallyExclusive("file", "grammar")
}

// load opens the grammar a command was pointed at.
func (a *app) load(ctx context.Context, cmd *cobra.Command, src *source) (*tracery.Grammar, error) {
	opts := []tracery.Option{tracery.WithLogger(a.logger)}
	if cmd.Flags().Changed("seed") {
		opts = append(opts, tracery.WithSeed(src.seed))
	}

	switch {
	case src.file != "":
		return tracery.NewFromFile(src.file, opts...)
	case src.name != "":
		s, err := a.openStore(ctx)
		if err != nil {
			return nil, err
		}
		defer s.Close()
		return tracery.FromStore(ctx, s, src.name, opts...)
	default:
		return tracery.Default(opts...)
	}
}

func (a *app) openStore(ctx context.Context) (store.Store, error) {
	a.logger.Debug("opening grammar store", "store", a.cfg.Store)
	return a.cfg.OpenStore(ctx)
}
