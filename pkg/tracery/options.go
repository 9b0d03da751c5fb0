package tracery

import (
	"log/slog"

	"nickandperla.net/tracery/internal/eval"
	"nickandperla.net/tracery/internal/grammar"
	"nickandperla.net/tracery/internal/modifier"
	"nickandperla.net/tracery/internal/random"
	"nickandperla.net/tracery/internal/store"
)

// Option configures a Grammar.
type Option func(*config)

type config struct {
	format    grammar.Format
	seed      *uint64
	rand      random.Source
	logger    *slog.Logger
	modifiers map[string]modifier.Func
	maxDepth  int
}

// Format names a grammar source format: "json", "yaml" or "hcl".
type Format = grammar.Format

// Source formats.
const (
	JSON = grammar.JSON
	YAML = grammar.YAML
	HCL  = grammar.HCL
)

// Source picks between rule alternatives.
type Source = random.Source

// Modifier transforms an expanded symbol.
type Modifier = modifier.Func

// Store interface for grammar libraries.
type Store = store.Store

// Entry is one stored grammar source.
type Entry = store.Entry

// Origin is the symbol Generate expands.
const Origin = eval.Origin

// ErrLoad is wrapped by errors for unusable grammar sources.
var ErrLoad = grammar.ErrLoad

// ErrNotFound is returned by FromStore for unknown names.
var ErrNotFound = store.ErrNotFound

// WithFormat sets the source format. JSON is the default.
func WithFormat(f Format) Option {
	return func(c *config) {
		c.format = f
	}
}

// WithSeed seeds the random source once at construction.
func WithSeed(seed uint64) Option {
	return func(c *config) {
		c.seed = &seed
	}
}

// WithRandom replaces the random source. Symbols with a single
// alternative, whether written as a string or a one-element array, never
// consume a draw.
func WithRandom(src Source) Option {
	return func(c *config) {
		c.rand = src
	}
}

// WithLogger sets the logger for resolution diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithModifiers registers extra modifiers. Names that match a built-in
// replace it.
func WithModifiers(mods map[string]Modifier) Option {
	return func(c *config) {
		if c.modifiers == nil {
			c.modifiers = make(map[string]modifier.Func, len(mods))
		}
		for name, fn := range mods {
			c.modifiers[name] = fn
		}
	}
}

// WithMaxDepth caps nested symbol expansion. Zero means no limit.
func WithMaxDepth(n int) Option {
	return func(c *config) {
		c.maxDepth = n
	}
}

// NewPCG returns the default seeded random source.
func NewPCG(seed uint64) Source {
	return random.NewPCG(seed)
}

func (c *config) evalOptions() []eval.Option {
	opts := []eval.Option{eval.WithMaxDepth(c.maxDepth)}
	if c.rand != nil {
		opts = append(opts, eval.WithRandom(c.rand))
	}
	if c.logger != nil {
		opts = append(opts, eval.WithLogger(c.logger))
	}
	if len(c.modifiers) > 0 {
		opts = append(opts, eval.WithModifiers(c.modifiers))
	}
	return opts
}
