package pinyin

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		base string
		tone int
		ok   bool
	}{
		{"tone mark 3", "nǐ", "ni", 3, true},
		{"tone mark 4", "bà", "ba", 4, true},
		{"tone mark 2", "hé", "he", 2, true},
		{"umlaut with tone", "lǜ", "lv", 4, true},
		{"bare umlaut is neutral", "nü", "nv", 0, true},
		{"no tone is neutral", "ma", "ma", 0, true},
		{"uppercase input", "Hǎo", "hao", 3, true},
		{"surrounding space", "  kě ", "ke", 3, true},
		{"breve variant", "kĕ", "ke", 3, true},
		{"empty", "", "", 0, false},
		{"whitespace only", "   ", "", 0, false},
		{"digit in base", "ke3x?", "", 0, false},
		{"han character", "好", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			syl, ok := Parse(tt.in)
			if ok != tt.ok {
				t.Fatalf("Parse(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			}
			if !ok {
				return
			}
			if syl.Base != tt.base || syl.Tone != tt.tone {
				t.Errorf("Parse(%q) = (%q, %d), want (%q, %d)", tt.in, syl.Base, syl.Tone, tt.base, tt.tone)
			}
		})
	}
}

func TestSyllableKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"kě", "ke3"},
		{"ma", "ma0"},
		{"lǜ", "lv4"},
	}
	for _, tt := range tests {
		syl, ok := Parse(tt.in)
		if !ok {
			t.Fatalf("Parse(%q) failed", tt.in)
		}
		if got := syl.Key(); got != tt.want {
			t.Errorf("Key(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"hé", "hé", true},
		{"hé", " Hé ", true},
		{"hé", "hè", false},
		{"hǎo", "hào", false},
		{"ma", "ma", true},
		{"", "", true},
	}
	for _, tt := range tests {
		if got := Equal(tt.a, tt.b); got != tt.want {
			t.Errorf("Equal(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
