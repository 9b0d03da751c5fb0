// Package modifier holds the built-in English text modifiers.
//
// Every modifier is total: it accepts any string, including the empty one.
package modifier

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Func transforms the text produced for a tag.
type Func func(string) string

// Builtins returns a fresh table of the built-in modifiers.
func Builtins() map[string]Func {
	return map[string]Func{
		"capitalize":    Capitalize,
		"capitalizeAll": CapitalizeAll,
		"uppercase":     Uppercase,
		"lowercase":     Lowercase,
		"a":             A,
		"s":             S,
		"firstS":        FirstS,
		"ed":            Ed,
		"inQuotes":      InQuotes,
		"comma":         Comma,
		"beeSpeak":      BeeSpeak,
	}
}

// Capitalize upper-cases the first letter.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeRuneInString(s)
	return Uppercase(s[:size]) + s[size:]
}

// Uppercase upper-cases all of s.
// Casers keep state, so each call gets its own.
func Uppercase(s string) string {
	return cases.Upper(language.English).String(s)
}

// Lowercase lower-cases all of s.
func Lowercase(s string) string {
	return cases.Lower(language.English).String(s)
}

// CapitalizeAll upper-cases the first letter of every word.
func CapitalizeAll(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	capNext := true
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			capNext = true
			b.WriteRune(r)
			continue
		}
		if capNext {
			r = unicode.ToUpper(r)
			capNext = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// A prefixes the indefinite article.
func A(s string) string {
	if s != "" {
		lead := strings.ToLower(s)
		if lead[0] == 'u' && len(lead) > 2 && lead[2] == 'i' {
			// "unicorn", "university"
			return "a " + s
		}
		if isVowel(lead[0]) {
			return "an " + s
		}
	}
	return "a " + s
}

// S pluralizes a single word.
func S(s string) string {
	if s == "" {
		return s
	}
	switch s[len(s)-1] {
	case 's', 'h', 'x':
		return s + "es"
	case 'y':
		if !precededByVowel(s) {
			return s[:len(s)-1] + "ies"
		}
		return s + "s"
	}
	return s + "s"
}

// FirstS pluralizes the first word of s.
func FirstS(s string) string {
	first, rest, found := strings.Cut(s, " ")
	if !found || first == "" {
		return S(s)
	}
	return S(first) + " " + rest
}

// Ed puts the first word of s in the past tense.
func Ed(s string) string {
	if s == "" {
		return s
	}
	word, rest, found := strings.Cut(s, " ")
	if word == "" {
		return s
	}
	if found {
		rest = " " + rest
	}
	switch word[len(word)-1] {
	case 'e':
		word += "d"
	case 'y':
		if !precededByVowel(word) {
			word = word[:len(word)-1] + "ied"
		} else {
			word += "ed"
		}
	default:
		word += "ed"
	}
	return word + rest
}

// InQuotes wraps s in double quotes.
func InQuotes(s string) string {
	return `"` + s + `"`
}

// Comma appends a comma unless s already ends in punctuation.
func Comma(s string) string {
	if s == "" {
		return s
	}
	switch s[len(s)-1] {
	case ',', '.', '?', '!':
		return s
	}
	return s + ","
}

// BeeSpeak buzzes every s.
func BeeSpeak(s string) string {
	return strings.ReplaceAll(s, "s", "zzz")
}

func isVowel(b byte) bool {
	switch b {
	case 'a', 'e', 'i', 'o', 'u', 'A', 'E', 'I', 'O', 'U':
		return true
	}
	return false
}

func precededByVowel(s string) bool {
	return len(s) >= 2 && isVowel(s[len(s)-2])
}
