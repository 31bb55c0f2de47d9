package charmeta

import (
	"sort"

	"github.com/abhisek/hanzimem/internal/pinyin"
)

// Index is a precomputed view over all readings in the metadata store,
// keyed by (base, tone). It is an explicit value built once from a
// Repository and injected where needed; there is no package-level cache.
type Index struct {
	byKey   map[pinyin.Syllable][]string
	all     []string        // deduped readings, rank order of first appearance
	rankOf  map[string]int  // reading -> lowest frequency rank carrying it
}

// BuildIndex constructs an Index from metadata items. Items are processed in
// frequency-rank order so that all derived orderings are deterministic.
func BuildIndex(items []*CharacterItem) *Index {
	sorted := make([]*CharacterItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].FrequencyRank != sorted[j].FrequencyRank {
			return sorted[i].FrequencyRank < sorted[j].FrequencyRank
		}
		return sorted[i].Character < sorted[j].Character
	})

	ix := &Index{
		byKey:  make(map[pinyin.Syllable][]string),
		rankOf: make(map[string]int),
	}
	seen := make(map[string]bool)
	seenKey := make(map[pinyin.Syllable]map[string]bool)

	for _, item := range sorted {
		for _, raw := range item.Readings {
			syl, ok := pinyin.Parse(raw)
			if !ok {
				continue
			}
			if !seen[raw] {
				seen[raw] = true
				ix.all = append(ix.all, raw)
				ix.rankOf[raw] = item.FrequencyRank
			}
			if seenKey[syl] == nil {
				seenKey[syl] = make(map[string]bool)
			}
			if !seenKey[syl][raw] {
				seenKey[syl][raw] = true
				ix.byKey[syl] = append(ix.byKey[syl], raw)
			}
		}
	}
	return ix
}

// Readings returns the readings recorded for an exact (base, tone) key.
func (ix *Index) Readings(syl pinyin.Syllable) []string {
	return ix.byKey[syl]
}

// SameBase returns readings sharing the base syllable but carrying a
// different tone, ordered by the given tone preference.
func (ix *Index) SameBase(base string, tonePref []int) []string {
	var out []string
	for _, t := range tonePref {
		out = append(out, ix.byKey[pinyin.Syllable{Base: base, Tone: t}]...)
	}
	return out
}

// SameTone returns readings carrying the tone but a different base, in the
// index's deterministic order.
func (ix *Index) SameTone(tone int, excludeBase string) []string {
	var out []string
	for _, raw := range ix.all {
		syl, ok := pinyin.Parse(raw)
		if !ok || syl.Tone != tone || syl.Base == excludeBase {
			continue
		}
		out = append(out, raw)
	}
	return out
}

// RankBand returns readings whose carrying character's frequency rank lies
// within width of rank, in rank order.
func (ix *Index) RankBand(rank, width int) []string {
	var out []string
	for _, raw := range ix.all {
		r := ix.rankOf[raw]
		if r >= rank-width && r <= rank+width {
			out = append(out, raw)
		}
	}
	return out
}

// All returns every distinct reading in rank order.
func (ix *Index) All() []string {
	return ix.all
}
