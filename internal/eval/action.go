// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package eval

import (
	"nickandperla.net/tracery/internal/scanner"
	"nickandperla.net/tracery/internal/token"
)

// act runs the content of a [...] construct.
//
//	[key:a,b]  save each resolved option under key
//	[key:POP]  drop the most recent save for key
//	[#rule#]   resolve for side effects only
func (e *Evaluator) act(content string, sc *scope) {
	if content == "" {
		e.logger.Debug("empty action")
		return
	}

	// Nested tags and actions are resolved before the key is split off.
	resolved := e.expand(content)

	key, value, found := scanner.Cut(resolved, token.KeyValue)
	if !found {
		_ = e.modify(resolved)
		return
	}
	if key == "" {
		e.logger.Debug("malformed action", "content", content)
		return
	}

	if value == token.Pop {
		e.saves.Pop(key)
		sc.forget(key)
		return
	}

	for _, option := range scanner.SplitLive(value, token.Option) {
		sc.push(key, e.expand(option))
	}
}
