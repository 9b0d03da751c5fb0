// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package token defines tracery token kinds and delimiter constants.
package token

// Token represents the kind of a bracketed construct.
type Token int

const (
	EOF Token = iota
	TEXT
	ACTION // [key:value,...] or [key:POP] or [#flatten#]
	TAG    // #symbol.modifier...#
)

// Delimiter bytes. All of them are ASCII so the scanner works on bytes.
const (
	ActionOpen  = '['
	ActionClose = ']'
	Tag         = '#'
	Modifier    = '.'
	Escape      = '\\'
	KeyValue    = ':'
	Option      = ','
)

// Pop is the action value that removes the most recent save for a key.
const Pop = "POP"

// IsOpen returns true if the byte starts an action or a tag.
func IsOpen(b byte) bool {
	return b == ActionOpen || b == Tag
}

// FromOpen returns the construct kind for an opening delimiter.
func FromOpen(b byte) Token {
	switch b {
	case ActionOpen:
		return ACTION
	case Tag:
		return TAG
	}
	return TEXT
}

// Close returns the closing delimiter for the construct kind.
func (t Token) Close() byte {
	switch t {
	case ACTION:
		return ActionClose
	case TAG:
		return Tag
	}
	return 0
}

// String returns the string representation of a token.
func (t Token) String() string {
	switch t {
	case EOF:
		return "EOF"
	case TEXT:
		return "TEXT"
	case ACTION:
		return "ACTION"
	case TAG:
		return "TAG"
	}
	return "UNKNOWN"
}
