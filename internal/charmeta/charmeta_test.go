package charmeta

import (
	"strings"
	"testing"

	"github.com/abhisek/hanzimem/internal/pinyin"
)

func testItems() []*CharacterItem {
	return []*CharacterItem{
		{Character: "的", Readings: []string{"de", "dí", "dì"}, ExampleWords: []string{"的确"}, FrequencyRank: 1},
		{Character: "和", Readings: []string{"hé", "hè"}, ExampleWords: []string{"和平"}, FrequencyRank: 30},
		{Character: "好", Readings: []string{"hǎo", "hào"}, ExampleWords: []string{"好人"}, FrequencyRank: 82},
		{Character: "河", Readings: []string{"hé"}, FrequencyRank: 640},
		{Character: "贺", Readings: []string{"hè"}, FrequencyRank: 1320},
		{Character: "喝", Readings: []string{"hē"}, FrequencyRank: 900},
		{Character: "可", Readings: []string{"kě"}, FrequencyRank: 45},
	}
}

func TestCorrectAndOtherReadings(t *testing.T) {
	he := testItems()[1]
	if got := he.CorrectReading(); got != "hé" {
		t.Errorf("CorrectReading = %q, want hé", got)
	}
	others := he.OtherReadings()
	if len(others) != 1 || others[0] != "hè" {
		t.Errorf("OtherReadings = %v, want [hè]", others)
	}
	if !he.Polyphonic() {
		t.Error("和 should be polyphonic")
	}
}

func TestPresentable(t *testing.T) {
	tests := []struct {
		name string
		item CharacterItem
		want bool
	}{
		{"monophonic no words", CharacterItem{Character: "河", Readings: []string{"hé"}}, true},
		{"polyphonic with words", CharacterItem{Character: "和", Readings: []string{"hé", "hè"}, ExampleWords: []string{"和平"}}, true},
		{"polyphonic without words", CharacterItem{Character: "和", Readings: []string{"hé", "hè"}}, false},
		{"no readings", CharacterItem{Character: "х"}, false},
		{"unparseable reading", CharacterItem{Character: "x", Readings: []string{"??"}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.item.Presentable(); got != tt.want {
				t.Errorf("Presentable = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalizeExampleWords(t *testing.T) {
	got := NormalizeExampleWords([]string{"和平共处", "和平", " 和平 ", "和气", "附和", "暖和"})
	if len(got) != MaxExampleWords {
		t.Fatalf("got %d words, want %d", len(got), MaxExampleWords)
	}
	// Shortest first, dedupe keeps the first occurrence.
	if got[0] != "和平" || got[1] != "和气" || got[2] != "附和" {
		t.Errorf("unexpected word order: %v", got)
	}
}

func TestIndexSameBase(t *testing.T) {
	ix := BuildIndex(testItems())
	got := ix.SameBase("he", []int{1, 2, 3, 4, 0})
	// Tones in preference order: hē (1), hé (2), hè (4).
	want := []string{"hē", "hé", "hè"}
	if len(got) != len(want) {
		t.Fatalf("SameBase = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("SameBase[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestIndexSameTone(t *testing.T) {
	ix := BuildIndex(testItems())
	for _, raw := range ix.SameTone(3, "hao") {
		syl, ok := pinyin.Parse(raw)
		if !ok || syl.Tone != 3 || syl.Base == "hao" {
			t.Errorf("SameTone returned %q (base %q, tone %d)", raw, syl.Base, syl.Tone)
		}
	}
}

func TestIndexDeterministicOrder(t *testing.T) {
	a := BuildIndex(testItems()).All()
	b := BuildIndex(testItems()).All()
	if len(a) != len(b) {
		t.Fatal("index builds disagree on size")
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("index order not deterministic at %d: %q vs %q", i, a[i], b[i])
		}
	}
}

func TestParseDataset(t *testing.T) {
	src := `[
		{"character": "和", "readings": ["hé", "hè"], "radical": "禾",
		 "stroke_count": 8, "structure": "左右",
		 "example_words": ["和平共处", "和平", "和气"],
		 "gloss": "and; together（corrected）", "frequency_rank": 30}
	]`
	items, err := ParseDataset(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseDataset: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	item := items[0]
	if item.Gloss.Value != "and; together" {
		t.Errorf("Gloss.Value = %q, want marker stripped", item.Gloss.Value)
	}
	if item.Gloss.Provenance != ProvenanceCorrected {
		t.Errorf("Gloss.Provenance = %q, want corrected", item.Gloss.Provenance)
	}
	if item.Radical.Provenance != ProvenancePage {
		t.Errorf("Radical.Provenance = %q, want page_sourced", item.Radical.Provenance)
	}
	if item.ExampleWords[0] != "和平" {
		t.Errorf("example words not shortest-first: %v", item.ExampleWords)
	}
}

func TestParseDatasetRejectsBadShape(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"not an array", `{"character": "和"}`},
		{"missing readings", `[{"character": "和", "frequency_rank": 30}]`},
		{"empty readings", `[{"character": "和", "readings": [], "frequency_rank": 30}]`},
		{"unknown field", `[{"character": "和", "readings": ["hé"], "frequency_rank": 30, "bogus": 1}]`},
		{"rank below one", `[{"character": "和", "readings": ["hé"], "frequency_rank": 0}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseDataset(strings.NewReader(tt.src)); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
