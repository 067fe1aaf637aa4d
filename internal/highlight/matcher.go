package highlight

import "regexp"

// Segment is one piece of a split text unit.
type Segment struct {
	Text  string
	Match bool
}

// Pattern compiles the whole-word, case-insensitive matcher for word. Every
// metacharacter in word is matched literally.
//
// Boundaries follow regexp's \b: a transition between [0-9A-Za-z_] and
// anything else. So "cat" is found in "cat's" but not in "category" or
// "cat_food", and a word ending in punctuation such as "c++" is only found
// when a word character follows it ("c++11"), never before a space.
func Pattern(word string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(word) + `\b`)
}

// Split matches word against text. It returns false when nothing matches;
// otherwise the segments alternate literal and matched text (literal pieces
// may be empty) and concatenate back to text.
func Split(word, text string) ([]Segment, bool) {
	if word == "" {
		return nil, false
	}
	return split(Pattern(word), text)
}

func split(re *regexp.Regexp, text string) ([]Segment, bool) {
	locs := re.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return nil, false
	}
	segs := make([]Segment, 0, 2*len(locs)+1)
	prev := 0
	for _, loc := range locs {
		segs = append(segs,
			Segment{Text: text[prev:loc[0]]},
			Segment{Text: text[loc[0]:loc[1]], Match: true},
		)
		prev = loc[1]
	}
	segs = append(segs, Segment{Text: text[prev:]})
	return segs, true
}
