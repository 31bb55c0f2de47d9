// Package charmeta models the read-only character metadata the practice
// engine draws on: readings, radical, stroke count, structure, example words
// and glosses, plus a frequency rank used to bound new-item sampling.
package charmeta

import (
	"sort"
	"strings"

	"github.com/abhisek/hanzimem/internal/pinyin"
)

// MaxExampleWords caps the example words shown with a character.
const MaxExampleWords = 3

// Provenance records where an attribute value came from. The source data
// encoded this as inline string markers; here it is an explicit tag.
type Provenance string

const (
	ProvenancePage      Provenance = "page_sourced"
	ProvenanceCorrected Provenance = "corrected"
)

// Field is a textual attribute together with its provenance.
type Field struct {
	Value      string     `json:"value"`
	Provenance Provenance `json:"provenance"`
}

// CharacterItem is one character's metadata. Readings are ordered; only the
// first is ever treated as correct. Every other reading is permanently
// excluded from the distractor universe for this character.
type CharacterItem struct {
	Character       string   `json:"character"`
	Readings        []string `json:"readings"`
	Radical         Field    `json:"radical"`
	StrokeCount     int      `json:"stroke_count"`
	Structure       Field    `json:"structure"`
	ExampleWords    []string `json:"example_words"`
	ExampleSentence Field    `json:"example_sentence"`
	Gloss           Field    `json:"gloss"`
	GlossZh         Field    `json:"gloss_zh"`
	FrequencyRank   int      `json:"frequency_rank"`
}

// CorrectReading returns the canonical reading, or "" if none is recorded.
func (c *CharacterItem) CorrectReading() string {
	if len(c.Readings) == 0 {
		return ""
	}
	return strings.TrimSpace(c.Readings[0])
}

// OtherReadings returns every reading except the canonical one.
func (c *CharacterItem) OtherReadings() []string {
	if len(c.Readings) < 2 {
		return nil
	}
	out := make([]string, 0, len(c.Readings)-1)
	for _, r := range c.Readings[1:] {
		r = strings.TrimSpace(r)
		if r != "" {
			out = append(out, r)
		}
	}
	return out
}

// Polyphonic reports whether the character has more than one reading.
func (c *CharacterItem) Polyphonic() bool {
	return len(c.OtherReadings()) > 0
}

// Presentable reports whether the character can be served as a recall item:
// it needs a parseable canonical reading, and a polyphonic character is
// eligible only when example words exist to fix which reading is meant.
func (c *CharacterItem) Presentable() bool {
	if _, ok := pinyin.Parse(c.CorrectReading()); !ok {
		return false
	}
	if c.Polyphonic() && len(c.ExampleWords) == 0 {
		return false
	}
	return true
}

// NormalizeExampleWords dedupes, orders shortest-first, and caps the word
// list. Ties keep their original relative order.
func NormalizeExampleWords(words []string) []string {
	seen := make(map[string]bool, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" || seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return len([]rune(out[i])) < len([]rune(out[j]))
	})
	if len(out) > MaxExampleWords {
		out = out[:MaxExampleWords]
	}
	return out
}
