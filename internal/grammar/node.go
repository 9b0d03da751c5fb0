// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package grammar

import "sort"

// Node is a decoded structured-data value. The grammar loader only needs
// objects, arrays and strings; every decoder produces the same tree shape.
type Node interface {
	IsObject() bool
	HasKey(key string) bool
	// Get returns the child at key, or nil if the node is not an object or
	// has no such key.
	Get(key string) Node
	// Keys returns the object keys in sorted order.
	Keys() []string
	IsArray() bool
	IsString() bool
	// Len returns the number of array items.
	Len() int
	// Item returns the array item at i.
	Item(i int) Node
	// String returns the string value, or "" for non-strings.
	String() string
}

// tree is a Node over the generic values produced by the decoders:
// map[string]any, []any, string and scalars.
type tree struct {
	v any
}

func newTree(v any) Node {
	return tree{v: v}
}

func (t tree) IsObject() bool {
	_, ok := t.v.(map[string]any)
	return ok
}

func (t tree) HasKey(key string) bool {
	m, ok := t.v.(map[string]any)
	if !ok {
		return false
	}
	_, ok = m[key]
	return ok
}

func (t tree) Get(key string) Node {
	m, ok := t.v.(map[string]any)
	if !ok {
		return nil
	}
	v, ok := m[key]
	if !ok {
		return nil
	}
	return tree{v: v}
}

func (t tree) Keys() []string {
	m, ok := t.v.(map[string]any)
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (t tree) IsArray() bool {
	_, ok := t.v.([]any)
	return ok
}

func (t tree) IsString() bool {
	_, ok := t.v.(string)
	return ok
}

func (t tree) Len() int {
	a, ok := t.v.([]any)
	if !ok {
		return 0
	}
	return len(a)
}

func (t tree) Item(i int) Node {
	a, ok := t.v.([]any)
	if !ok || i < 0 || i >= len(a) {
		return nil
	}
	return tree{v: a[i]}
}

func (t tree) String() string {
	s, _ := t.v.(string)
	return s
}
