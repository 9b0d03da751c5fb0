// Package stdlib holds the grammar used when none is given.
package stdlib

import _ "embed"

// DefaultName is the name the default grammar is shown under.
const DefaultName = "default"

// Default is a small story grammar in JSON.
//
//go:embed default.json
var Default []byte
