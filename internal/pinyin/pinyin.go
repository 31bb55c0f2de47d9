// Package pinyin normalizes pinyin syllables into a toneless base plus a
// tone number, which is the form the distractor heuristics and search keys
// operate on.
package pinyin

import "strings"

// Tone numbering: 1-4 are the marked tones, 0 is neutral.
const NeutralTone = 0

// accentToBase maps accented vowels to their base letter and tone.
// ü and its tonal forms normalize to "v".
var accentToBase = map[rune]struct {
	base rune
	tone int
}{
	'ā': {'a', 1}, 'á': {'a', 2}, 'ǎ': {'a', 3}, 'à': {'a', 4}, 'ă': {'a', 3},
	'ē': {'e', 1}, 'é': {'e', 2}, 'ě': {'e', 3}, 'è': {'e', 4}, 'ĕ': {'e', 3},
	'ī': {'i', 1}, 'í': {'i', 2}, 'ǐ': {'i', 3}, 'ì': {'i', 4}, 'ĭ': {'i', 3},
	'ō': {'o', 1}, 'ó': {'o', 2}, 'ǒ': {'o', 3}, 'ò': {'o', 4}, 'ŏ': {'o', 3},
	'ū': {'u', 1}, 'ú': {'u', 2}, 'ǔ': {'u', 3}, 'ù': {'u', 4}, 'ŭ': {'u', 3},
	'ǖ': {'v', 1}, 'ǘ': {'v', 2}, 'ǚ': {'v', 3}, 'ǜ': {'v', 4},
	'ü': {'v', 0},
}

// Syllable is a pinyin reading decomposed into toneless base and tone number.
type Syllable struct {
	Base string
	Tone int
}

// Key renders the numeric-tone form used for index keys, e.g. "ke3", "ma0".
func (s Syllable) Key() string {
	return s.Base + string(rune('0'+s.Tone))
}

// Parse decomposes a stored pinyin reading (e.g. "bà", "lǜ", "ma") into its
// toneless base and tone. The input is trimmed and lower-cased; ü maps to v.
// Returns ok=false for empty or malformed input.
func Parse(raw string) (Syllable, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return Syllable{}, false
	}

	var b strings.Builder
	tone := NeutralTone
	for _, r := range s {
		if m, found := accentToBase[r]; found {
			b.WriteRune(m.base)
			if m.tone != NeutralTone {
				tone = m.tone
			}
			continue
		}
		b.WriteRune(r)
	}

	base := b.String()
	if !validBase(base) {
		return Syllable{}, false
	}
	return Syllable{Base: base, Tone: tone}, true
}

// validBase reports whether the toneless form contains only ASCII letters.
func validBase(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// Equal reports whether two raw readings denote the same syllable after
// normalization. Falls back to a trimmed case-insensitive comparison when
// either side fails to parse.
func Equal(a, b string) bool {
	sa, okA := Parse(a)
	sb, okB := Parse(b)
	if okA && okB {
		return sa == sb
	}
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
