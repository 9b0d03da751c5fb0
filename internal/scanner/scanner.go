// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package scanner splits tracery input into text runs, actions and tags.
//
// Delimiters are live only when preceded by an even number of backslashes.
// Escaped delimiters are never consumed; they stay in the text, backslash
// included.
package scanner

import (
	"strings"

	"nickandperla.net/tracery/internal/token"
)

// Scanner walks a string and yields items left to right.
type Scanner struct {
	src string
	pos int
}

// Item represents a scanned construct.
type Item struct {
	Token token.Token
	// Value is the literal text for TEXT and the inner content (without
	// delimiters) for ACTION and TAG.
	Value string
	// Pos is the byte offset where the item started.
	Pos int
	// Unbalanced is set on a one-byte TEXT item holding an opening
	// delimiter that had no matching close.
	Unbalanced bool
}

// Span is the location of one balanced construct in its source string.
// Start is the offset of the opening delimiter and End the offset of the
// closing one.
type Span struct {
	Token token.Token
	Start int
	End   int
}

// Content returns the text between the delimiters of the span.
func (sp Span) Content(s string) string {
	return s[sp.Start+1 : sp.End]
}

// NewFromString creates a new Scanner over s.
func NewFromString(s string) *Scanner {
	return &Scanner{src: s}
}

// Pos returns the current byte offset.
func (s *Scanner) Pos() int {
	return s.pos
}

// Next returns the next item from the input. Every call consumes at least
// one byte until EOF is returned.
func (s *Scanner) Next() Item {
	start := s.pos
	if start >= len(s.src) {
		return Item{Token: token.EOF, Pos: start}
	}

	open := NextOpen(s.src, start)
	if open < 0 {
		s.pos = len(s.src)
		return Item{Token: token.TEXT, Value: s.src[start:], Pos: start}
	}
	if open > start {
		s.pos = open
		return Item{Token: token.TEXT, Value: s.src[start:open], Pos: start}
	}

	span, ok := Extract(s.src, open)
	if !ok {
		s.pos = open + 1
		return Item{Token: token.TEXT, Value: s.src[open : open+1], Pos: open, Unbalanced: true}
	}
	s.pos = span.End + 1
	return Item{Token: span.Token, Value: span.Content(s.src), Pos: open}
}

// IsLive reports whether the byte at i is preceded by an even number of
// consecutive escape characters.
func IsLive(s string, i int) bool {
	n := 0
	for k := i - 1; k >= 0 && s[k] == token.Escape; k-- {
		n++
	}
	return n%2 == 0
}

// NextOpen returns the offset of the next live '[' or '#' at or after from,
// or -1 if there is none.
func NextOpen(s string, from int) int {
	for i := from; i < len(s); i++ {
		if token.IsOpen(s[i]) && IsLive(s, i) {
			return i
		}
	}
	return -1
}

// Extract finds the balanced construct opened at s[open].
// Live brackets nest regardless of the outer kind, so actions can sit inside
// tags and tags inside actions. The span closes on the first live closing
// delimiter at depth zero. It fails on end of input or on a live ']' that
// has nothing to close.
func Extract(s string, open int) (Span, bool) {
	kind := token.FromOpen(s[open])
	closing := kind.Close()
	if closing == 0 {
		return Span{}, false
	}

	depth := 0
	for j := open + 1; j < len(s); j++ {
		c := s[j]
		if c != token.ActionOpen && c != token.ActionClose && c != token.Tag {
			continue
		}
		if !IsLive(s, j) {
			continue
		}
		switch {
		case c == closing && depth == 0:
			return Span{Token: kind, Start: open, End: j}, true
		case c == token.ActionOpen:
			depth++
		case c == token.ActionClose:
			depth--
			if depth < 0 {
				return Span{}, false
			}
		}
	}
	return Span{}, false
}

// IndexLive returns the offset of the first live sep in s, or -1.
func IndexLive(s string, sep byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == sep && IsLive(s, i) {
			return i
		}
	}
	return -1
}

// Cut slices s around the first live sep.
func Cut(s string, sep byte) (before, after string, found bool) {
	if i := IndexLive(s, sep); i >= 0 {
		return s[:i], s[i+1:], true
	}
	return s, "", false
}

// SplitLive splits s on every live sep. It always returns at least one
// element.
func SplitLive(s string, sep byte) []string {
	var parts []string
	last := 0
	for i := 0; i < len(s); i++ {
		if s[i] == sep && IsLive(s, i) {
			parts = append(parts, s[last:i])
			last = i + 1
		}
	}
	return append(parts, s[last:])
}

// CollapseEscapes turns every doubled escape into a single literal one.
// Other escapes are kept so escaped delimiters survive verbatim.
func CollapseEscapes(s string) string {
	if !strings.Contains(s, `\\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == token.Escape && i+1 < len(s) && s[i+1] == token.Escape {
			b.WriteByte(token.Escape)
			i++
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
