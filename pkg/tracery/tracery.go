// Package tracery expands text against a generative grammar.
//
// A grammar maps symbols to alternative rules. Text containing #symbol#
// tags and [key:value] actions is expanded by picking rules at random and
// resolving them recursively:
//
//	g, err := tracery.New([]byte(`{"origin": "hello #name#", "name": ["world", "there"]}`))
//	if err != nil {
//		return err
//	}
//	fmt.Println(g.Generate())
package tracery

import (
	"context"
	"fmt"
	"os"
	"sync"

	"nickandperla.net/tracery/internal/eval"
	"nickandperla.net/tracery/internal/grammar"
	"nickandperla.net/tracery/internal/store"
)

// Grammar is a loaded rule set bound to a random source.
// Calls are serialized, so a Grammar may be shared between goroutines.
type Grammar struct {
	mu    sync.Mutex
	rules grammar.Grammar
	eval  *eval.Evaluator
}

// New loads a grammar from source.
func New(source []byte, opts ...Option) (*Grammar, error) {
	c := &config{format: grammar.JSON}
	for _, opt := range opts {
		opt(c)
	}

	rules, err := grammar.Load(source, c.format)
	if err != nil {
		return nil, err
	}

	g := &Grammar{
		rules: rules,
		eval:  eval.New(rules, c.evalOptions()...),
	}
	if c.seed != nil {
		g.eval.Seed(*c.seed)
	}
	return g, nil
}

// NewFromFile loads a grammar file. The format comes from the extension
// unless WithFormat is given.
func NewFromFile(path string, opts ...Option) (*Grammar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	opts = append([]Option{WithFormat(grammar.FormatFromPath(path))}, opts...)
	g, err := New(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// FromStore loads the named grammar from s.
func FromStore(ctx context.Context, s Store, name string, opts ...Option) (*Grammar, error) {
	e, err := store.Lookup(ctx, s, name)
	if err != nil {
		return nil, err
	}
	f, ok := grammar.ParseFormat(e.Format)
	if !ok {
		return nil, fmt.Errorf("%w: grammar %s has unknown format %q", ErrLoad, name, e.Format)
	}
	opts = append([]Option{WithFormat(f)}, opts...)
	g, err := New([]byte(e.Source), opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return g, nil
}

// Resolve expands every tag and action in text.
func (g *Grammar) Resolve(text string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.eval.Resolve(text)
}

// ResolveSeed reseeds the random source and expands text. The same seed
// and text always give the same result.
func (g *Grammar) ResolveSeed(text string, seed uint64) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.eval.ResolveSeed(text, seed)
}

// Generate expands the origin symbol.
func (g *Grammar) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.eval.Generate()
}

// GenerateSeed reseeds the random source and expands the origin symbol.
func (g *Grammar) GenerateSeed(seed uint64) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.eval.Seed(seed)
	return g.eval.Generate()
}

// Seed reseeds the random source.
func (g *Grammar) Seed(seed uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.eval.Seed(seed)
}

// AddModifier registers or replaces a modifier.
func (g *Grammar) AddModifier(name string, fn Modifier) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.eval.AddModifier(name, fn)
}

// Symbols returns the grammar's symbol names in sorted order.
func (g *Grammar) Symbols() []string {
	return g.rules.Symbols()
}

// Rules returns a copy of the alternatives for symbol.
func (g *Grammar) Rules(symbol string) ([]string, bool) {
	rules, ok := g.rules.Rules(symbol)
	if !ok {
		return nil, false
	}
	return append([]string(nil), rules...), true
}
