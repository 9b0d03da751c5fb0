// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package eval implements the tracery resolution engine.
package eval

import (
	"log/slog"
	"strings"

	"nickandperla.net/tracery/internal/modifier"
	"nickandperla.net/tracery/internal/random"
	"nickandperla.net/tracery/internal/scanner"
	"nickandperla.net/tracery/internal/token"
)

// Origin is the entry symbol expanded by Generate.
const Origin = "origin"

// Rules is the static rule set the evaluator reads from.
type Rules interface {
	Rules(symbol string) ([]string, bool)
}

type noRules struct{}

func (noRules) Rules(string) ([]string, bool) { return nil, false }

// Evaluator expands tags and actions against a rule set.
// An Evaluator is not safe for concurrent use.
type Evaluator struct {
	rules     Rules
	saves     *SaveData
	rand      random.Source
	modifiers map[string]modifier.Func
	logger    *slog.Logger
	maxDepth  int // 0 means unlimited
	depth     int // Current symbol expansion depth
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithRandom sets the source used to pick between alternatives.
// Symbols with a single alternative never consume a draw.
func WithRandom(src random.Source) Option {
	return func(e *Evaluator) { e.rand = src }
}

// WithModifiers registers additional modifiers, overriding built-ins with
// the same name.
func WithModifiers(mods map[string]modifier.Func) Option {
	return func(e *Evaluator) {
		for name, fn := range mods {
			e.modifiers[name] = fn
		}
	}
}

// WithLogger sets the logger for resolution diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(e *Evaluator) { e.logger = l }
}

// WithMaxDepth limits nested symbol expansion. Symbols past the limit are
// emitted by name.
func WithMaxDepth(n int) Option {
	return func(e *Evaluator) { e.maxDepth = n }
}

// New creates a new Evaluator over rules.
func New(rules Rules, opts ...Option) *Evaluator {
	e := &Evaluator{
		rules:     rules,
		saves:     NewSaveData(),
		modifiers: modifier.Builtins(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rules == nil {
		e.rules = noRules{}
	}
	if e.rand == nil {
		e.rand = random.NewTimeSeeded()
	}
	if e.logger == nil {
		e.logger = slog.New(slog.DiscardHandler)
	}
	return e
}

// AddModifier registers or replaces one modifier.
func (e *Evaluator) AddModifier(name string, fn modifier.Func) {
	e.modifiers[name] = fn
}

// Seed reseeds the random source.
func (e *Evaluator) Seed(seed uint64) {
	e.rand.Seed(seed)
}

// Resolve expands every tag and action in text.
// Saves made during the call are gone when it returns.
func (e *Evaluator) Resolve(text string) string {
	return scanner.CollapseEscapes(e.expand(text))
}

// ResolveSeed reseeds the random source, then resolves text.
func (e *Evaluator) ResolveSeed(text string, seed uint64) string {
	e.Seed(seed)
	return e.Resolve(text)
}

// Generate expands the origin symbol.
func (e *Evaluator) Generate() string {
	return e.Resolve(string(token.Tag) + Origin + string(token.Tag))
}

// expand resolves s in a scope of its own.
func (e *Evaluator) expand(s string) string {
	sc := e.openScope()
	defer sc.release()
	return e.expandIn(s, sc)
}

// expandIn resolves s left to right. Actions save into sc, so their values
// stay visible for the rest of s and for as long as sc is open.
func (e *Evaluator) expandIn(s string, sc *scope) string {
	var out strings.Builder
	scan := scanner.NewFromString(s)

	for {
		item := scan.Next()

		switch item.Token {
		case token.EOF:
			return out.String()

		case token.TEXT:
			if item.Unbalanced {
				e.logger.Debug("unbalanced delimiter", "delimiter", item.Value, "pos", item.Pos)
			}
			out.WriteString(item.Value)

		case token.ACTION:
			// Actions produce no text
			e.act(item.Value, sc)

		case token.TAG:
			out.WriteString(e.tag(item.Value))
		}
	}
}

// tag resolves the content of a #...# construct. Actions written inside the
// tag stay open until the symbol and its modifiers have been resolved.
func (e *Evaluator) tag(content string) string {
	sc := e.openScope()
	defer sc.release()
	return e.modify(e.expandIn(content, sc))
}
