// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package eval

import (
	"nickandperla.net/tracery/internal/scanner"
	"nickandperla.net/tracery/internal/token"
)

// modify splits "symbol.mod1.mod2" on live dots, resolves the symbol and
// applies the modifiers left to right. Unknown modifiers are skipped.
func (e *Evaluator) modify(text string) string {
	parts := scanner.SplitLive(text, token.Modifier)
	out := e.symbol(parts[0])

	for _, name := range parts[1:] {
		fn, ok := e.modifiers[name]
		if !ok {
			e.logger.Debug("unknown modifier", "modifier", name, "symbol", parts[0])
			continue
		}
		out = fn(out)
	}
	return out
}

// symbol resolves a bare symbol name: the latest save wins, then the
// grammar, then the name itself.
func (e *Evaluator) symbol(name string) string {
	if v, ok := e.saves.Peek(name); ok {
		return v
	}

	rules, ok := e.rules.Rules(name)
	if !ok || len(rules) == 0 {
		e.logger.Debug("unknown symbol", "symbol", name)
		return name
	}

	if e.maxDepth > 0 && e.depth >= e.maxDepth {
		e.logger.Warn("expansion depth limit reached", "symbol", name, "limit", e.maxDepth)
		return name
	}

	rule := rules[0]
	if len(rules) > 1 {
		rule = rules[e.rand.Intn(len(rules))]
	}

	e.depth++
	defer func() { e.depth-- }()
	return e.expand(rule)
}
