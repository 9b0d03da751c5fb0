// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package tracery

import "nickandperla.net/tracery/internal/stdlib"

// DefaultGrammar is the JSON source of the built-in story grammar, used
// when no other grammar is given.
var DefaultGrammar = string(stdlib.Default)

// Default loads the built-in story grammar.
func Default(opts ...Option) (*Grammar, error) {
	opts = append([]Option{WithFormat(JSON)}, opts...)
	return New(stdlib.Default, opts...)
}
