// Package vocab turns saved notes into the list of words to highlight.
package vocab

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/vocabmark/vocabmark/internal/notes"
)

// MinWordLength is the shortest word kept, exclusive: words need more runes.
const MinWordLength = 2

// separator reports whether r splits words: any Unicode space, a byte order
// mark or a comma.
func separator(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF' || r == ','
}

// Tokens splits one note's text into normalized candidate words.
func Tokens(text string) []string {
	var out []string
	for _, part := range strings.FieldsFunc(text, separator) {
		word := strings.ToLower(strings.TrimSpace(part))
		if utf8.RuneCountInString(word) > MinWordLength {
			out = append(out, word)
		}
	}
	return out
}

// Build returns the words of all notes, deduplicated in first-seen order.
// The order is the tie-break when two words can match the same text.
func Build(list []notes.Note) []string {
	var words []string
	seen := make(map[string]struct{})
	for _, n := range list {
		for _, w := range Tokens(n.Text) {
			if _, ok := seen[w]; ok {
				continue
			}
			seen[w] = struct{}{}
			words = append(words, w)
		}
	}
	return words
}
