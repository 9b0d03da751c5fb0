// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package grammar loads tracery rule sets from structured data.
package grammar

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// ErrLoad is wrapped by every error that makes a source unusable.
var ErrLoad = errors.New("grammar load error")

// Grammar maps a symbol to its alternative expansions.
// Every symbol has at least one alternative. A Grammar is not modified
// after it is loaded.
type Grammar map[string][]string

// Rules returns the alternatives for symbol.
func (g Grammar) Rules(symbol string) ([]string, bool) {
	rules, ok := g[symbol]
	return rules, ok
}

// Symbols returns the symbol names in sorted order.
func (g Grammar) Symbols() []string {
	names := make([]string, 0, len(g))
	for name := range g {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Format names a structured-data source format.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
	HCL  Format = "hcl"
)

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, bool) {
	switch strings.ToLower(s) {
	case "json":
		return JSON, true
	case "yaml", "yml":
		return YAML, true
	case "hcl":
		return HCL, true
	default:
		return JSON, false
	}
}

// FormatFromPath picks a format from a file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	f, _ := ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
	return f
}

// Parse decodes data in the given format.
func Parse(data []byte, f Format) (Node, error) {
	switch f {
	case JSON, "":
		return ParseJSON(data)
	case YAML:
		return ParseYAML(data)
	case HCL:
		return ParseHCL(data, "grammar.hcl")
	}
	return nil, fmt.Errorf("%w: unknown format %q", ErrLoad, f)
}

// Load decodes data and builds a Grammar from it.
func Load(data []byte, f Format) (Grammar, error) {
	root, err := Parse(data, f)
	if err != nil {
		return nil, err
	}
	return FromNode(root)
}

// FromNode builds a Grammar from an object whose values are strings or
// arrays of strings. A single string becomes a one-element rule list.
func FromNode(root Node) (Grammar, error) {
	if root == nil || !root.IsObject() {
		return nil, fmt.Errorf("%w: root is not an object", ErrLoad)
	}

	g := make(Grammar)
	for _, key := range root.Keys() {
		v := root.Get(key)
		switch {
		case v.IsString():
			g[key] = []string{v.String()}

		case v.IsArray():
			n := v.Len()
			if n == 0 {
				return nil, fmt.Errorf("%w: symbol '%s' has no rules", ErrLoad, key)
			}
			rules := make([]string, n)
			for i := 0; i < n; i++ {
				item := v.Item(i)
				if !item.IsString() {
					return nil, fmt.Errorf("%w: symbol '%s' rule %d is not a string", ErrLoad, key, i)
				}
				rules[i] = item.String()
			}
			g[key] = rules

		default:
			return nil, fmt.Errorf("%w: symbol '%s' must be a string or an array of strings", ErrLoad, key)
		}
	}
	return g, nil
}
