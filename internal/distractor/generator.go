// Package distractor produces plausible wrong pinyin answers for a recall
// question. Candidates are drawn from priority-ordered heuristic sources and
// tagged with their provenance for the debug trace.
package distractor

import (
	"math/rand"

	"github.com/abhisek/hanzimem/internal/charmeta"
	"github.com/abhisek/hanzimem/internal/pinyin"
)

// Count is the target number of distractors per question.
const Count = 3

// rankBandWidth bounds the frequency-rank distance for fallback candidates.
const rankBandWidth = 500

// Source identifies the heuristic that produced a distractor.
type Source string

const (
	SourceSameSyllable  Source = "same_syllable"  // same base, different tone
	SourceToneConfusion Source = "tone_confusion" // same base, commonly-confused tone
	SourceSameTone      Source = "same_tone"      // same tone, different base
	SourceFrequencyBand Source = "frequency_band" // random reading from a nearby rank band
)

// toneConfusions maps a tone to the tone learners most often confuse it
// with: 2↔3 and 1↔4.
var toneConfusions = map[int]int{1: 4, 2: 3, 3: 2, 4: 1}

// Distractor is one wrong answer with its provenance.
type Distractor struct {
	Reading string
	Source  Source
}

// Generator builds distractor sets from a prebuilt reading index.
type Generator struct {
	index *charmeta.Index
}

// New creates a Generator over the given index.
func New(index *charmeta.Index) *Generator {
	return &Generator{index: index}
}

// Generate returns up to Count distractors for the item's correct reading.
// The correct reading and every other reading of the (polyphonic) character
// are excluded regardless of source. Fewer than Count sets degraded=true.
// The rng only influences the fallback source; the heuristic sources are
// fully deterministic.
func (g *Generator) Generate(item *charmeta.CharacterItem, rng *rand.Rand) (result []Distractor, degraded bool) {
	correct := item.CorrectReading()
	exclude := newExclusionSet(correct, item.OtherReadings())

	add := func(reading string, source Source) bool {
		if exclude.contains(reading) {
			return false
		}
		exclude.add(reading)
		result = append(result, Distractor{Reading: reading, Source: source})
		return len(result) >= Count
	}

	syl, parsed := pinyin.Parse(correct)

	// Same syllable, different tone. The commonly-confused tone is tried
	// first so it is biased into the pool.
	if parsed {
		confused, hasConfusion := toneConfusions[syl.Tone]
		var tonePref []int
		if hasConfusion {
			tonePref = append(tonePref, confused)
		}
		for _, t := range []int{1, 2, 3, 4, 0} {
			if t == syl.Tone || (hasConfusion && t == confused) {
				continue
			}
			tonePref = append(tonePref, t)
		}
		for i, t := range tonePref {
			source := SourceSameSyllable
			if hasConfusion && i == 0 {
				source = SourceToneConfusion
			}
			for _, reading := range g.index.SameBase(syl.Base, []int{t}) {
				if add(reading, source) {
					return result, false
				}
			}
		}
	}

	// Same tone, different syllable.
	if parsed {
		for _, reading := range g.index.SameTone(syl.Tone, syl.Base) {
			if add(reading, SourceSameTone) {
				return result, false
			}
		}
	}

	// Fallback: random readings from a similar frequency-rank band, then
	// from the whole store.
	for _, pool := range [][]string{
		g.index.RankBand(item.FrequencyRank, rankBandWidth),
		g.index.All(),
	} {
		for _, reading := range shuffled(pool, rng) {
			if add(reading, SourceFrequencyBand) {
				return result, false
			}
		}
	}

	return result, len(result) < Count
}

// exclusionSet tracks readings barred from the distractor pool, compared by
// normalized syllable so accent variants collapse.
type exclusionSet struct {
	keys map[string]bool
}

func newExclusionSet(correct string, others []string) *exclusionSet {
	s := &exclusionSet{keys: make(map[string]bool)}
	s.add(correct)
	for _, r := range others {
		s.add(r)
	}
	return s
}

func (s *exclusionSet) keyFor(reading string) string {
	if syl, ok := pinyin.Parse(reading); ok {
		return syl.Key()
	}
	return reading
}

func (s *exclusionSet) add(reading string) {
	s.keys[s.keyFor(reading)] = true
}

func (s *exclusionSet) contains(reading string) bool {
	return s.keys[s.keyFor(reading)]
}

func shuffled(pool []string, rng *rand.Rand) []string {
	out := make([]string, len(pool))
	copy(out, pool)
	if rng != nil {
		rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	}
	return out
}
