// Package textutil converts between the text forms a resource name takes:
// what users type, the normalized lookup key, the API form and display text.
package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Latin combining diacritics only; kana voicing marks must survive.
var diacritics = runes.Predicate(func(r rune) bool { return r >= 0x0300 && r <= 0x036F })

// Key normalizes user text into the canonical lookup key: compatibility forms
// folded, Latin diacritics removed, case folded, everything except letters
// and digits dropped.
// "Mr. Mime" -> "mrmime", "Fire Red" -> "firered", "Flabébé" -> "flabebe".
func Key(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(diacritics), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}

	folded := cases.Fold().String(stripped)
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FlexForm derives an API form from display text: "Mr. Mime" -> "mr-mime".
func FlexForm(display string) string {
	stripped, _, err := transform.String(transform.Chain(norm.NFKD, runes.Remove(diacritics), norm.NFC), display)
	if err != nil {
		stripped = display
	}

	var b strings.Builder
	for _, w := range strings.Fields(cases.Fold().String(stripped)) {
		var word strings.Builder
		for _, r := range w {
			if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' {
				word.WriteRune(r)
			}
		}
		if word.Len() == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('-')
		}
		b.WriteString(word.String())
	}
	return b.String()
}

// Proper turns an API form into display text: "fire-red" -> "Fire Red".
func Proper(flex string) string {
	words := strings.FieldsFunc(flex, func(r rune) bool { return r == '-' || r == '_' || r == ' ' })
	title := cases.Title(language.Und, cases.NoLower)
	for i, w := range words {
		words[i] = title.String(w)
	}
	return strings.Join(words, " ")
}

// Generation extracts the roman numeral of an API generation name:
// "generation-iv" -> "IV".
func Generation(name string) string {
	i := strings.LastIndex(name, "-")
	if i < 0 {
		return strings.ToUpper(name)
	}
	return strings.ToUpper(name[i+1:])
}

// Tokens splits a message body on commas, trimming space and dropping empty tokens.
func Tokens(body string) []string {
	parts := strings.Split(body, ",")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tokens = append(tokens, p)
		}
	}
	return tokens
}

// CollapseSpace trims s and replaces inner whitespace runs with one space.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
