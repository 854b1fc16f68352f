package rebus

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Norwegian function words that carry no signal when matching guesses.
var stopwords = map[string]bool{
	"og": true, "på": true, "med": true, "i": true, "en": true, "et": true,
	"for": true, "til": true, "av": true, "den": true, "det": true,
	"er": true, "the": true,
}

var foldMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases s, folds accented letters to their base form while
// keeping æ/ø/å, drops everything outside [a-zæøå0-9 ] and collapses
// whitespace. Idempotent and total over any input.
func Normalize(s string) string {
	s = norm.NFC.String(strings.ToLower(s))

	var b strings.Builder
	b.Grow(len(s))
	lastSpace := true
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == 'æ', r == 'ø', r == 'å':
			b.WriteRune(r)
			lastSpace = false
		case unicode.IsSpace(r):
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
		case unicode.IsLetter(r):
			if f := foldRune(r); f != 0 {
				b.WriteRune(f)
				lastSpace = false
			}
		}
	}
	return strings.TrimRight(b.String(), " ")
}

// foldRune maps an accented letter to its ascii base (é -> e). Letters with
// no ascii base fold to 0 and are dropped.
func foldRune(r rune) rune {
	folded, _, err := transform.String(foldMarks, string(r))
	if err != nil {
		return 0
	}
	for _, fr := range folded {
		if fr >= 'a' && fr <= 'z' {
			return fr
		}
		break
	}
	return 0
}

// Tokenize normalizes s, splits it on whitespace and drops stopwords.
func Tokenize(s string) []string {
	fields := strings.Fields(Normalize(s))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if stopwords[f] {
			continue
		}
		out = append(out, f)
	}
	return out
}
