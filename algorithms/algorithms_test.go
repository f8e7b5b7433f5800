package algorithms

import (
	"math"
	"testing"
)

const tolerance = 1e-9

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) <= tolerance
}

// samplePairs is shared by the property tests below.
var samplePairs = [][2]string{
	{"rust", "bust"},
	{"rust", "ritz"},
	{"chance", "enhance"},
	{"", ""},
	{"", "a"},
	{"a", "b"},
	{"aaaa", "aa"},
	{"Hello World", "hello world"},
	{"naïve café", "naive cafe"},
	{"日本語", "日本"},
	{"ab_x", "xab"},
	{"\xff\xfe", "\xff\xfe"},
	{"\xff\xfe", "abc"},
}

func TestBigrams(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantTotal int
		want      map[Bigram]int
	}{
		{
			name:      "single rune has no bigrams",
			input:     "b",
			wantTotal: 0,
			want:      map[Bigram]int{},
		},
		{
			name:      "simple word",
			input:     "rust",
			wantTotal: 3,
			want:      map[Bigram]int{{'r', 'u'}: 1, {'u', 's'}: 1, {'s', 't'}: 1},
		},
		{
			name:      "repeated bigrams keep multiplicity",
			input:     "aaaa",
			wantTotal: 3,
			want:      map[Bigram]int{{'a', 'a'}: 3},
		},
		{
			name:      "case folded",
			input:     "AbC",
			wantTotal: 2,
			want:      map[Bigram]int{{'a', 'b'}: 1, {'b', 'c'}: 1},
		},
		{
			name:      "whitespace bigrams skipped",
			input:     "ab cd",
			wantTotal: 2,
			want:      map[Bigram]int{{'a', 'b'}: 1, {'c', 'd'}: 1},
		},
		{
			name:      "multibyte runes",
			input:     "日本語",
			wantTotal: 2,
			want:      map[Bigram]int{{'日', '本'}: 1, {'本', '語'}: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, total := Bigrams(tt.input)
			if total != tt.wantTotal {
				t.Errorf("Bigrams(%q) total = %d, want %d", tt.input, total, tt.wantTotal)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Bigrams(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for gram, count := range tt.want {
				if got[gram] != count {
					t.Errorf("Bigrams(%q)[%q] = %d, want %d", tt.input, string(gram[:]), got[gram], count)
				}
			}
		})
	}
}

func TestSorensenDice(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"equal strings", "string", "string", 1},
		{"one rune each, different", "a", "b", 0},
		{"one rune each, equal after folding", "A", "a", 1},
		{"empty against word", "string", "", 0},
		{"both empty", "", "", 1},
		{"one too short", "rust", "b", 0},
		{"rust bust", "rust", "bust", 2.0 / 3.0},
		{"no shared bigrams", "rust", "ritz", 0},
		{"chance enhance", "chance", "enhance", 8.0 / 11.0},
		{"case insensitive", "RUST", "rust", 1},
		{"multiset bounded by smaller count", "aaaa", "aa", 2.0 * 1 / 4},
		{"whitespace only", " ", "  ", 0},
		{"invalid utf8 identical", "\xff\xfe", "\xff\xfe", 1},
		{"invalid utf8 different", "\xff\xfe", "ab", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SorensenDice(tt.a, tt.b); !approxEqual(got, tt.want) {
				t.Errorf("SorensenDice(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"rust", "bust", 1},
		{"rust", "ritz", 3},
		{"chance", "enhance", 2},
		{"kitten", "sitting", 3},
		{"Rust", "rUST", 0},
		{"日本語", "日本", 1},
	}

	for _, tt := range tests {
		if got := Distance(tt.a, tt.b); got != tt.want {
			t.Errorf("Distance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"equal strings", "string", "string", 1},
		{"one rune each, different", "a", "b", 0},
		{"empty against word", "string", "", 0},
		{"both empty", "", "", 1},
		{"rust bust", "rust", "bust", 0.75},
		{"rust ritz", "rust", "ritz", 0.25},
		{"chance enhance", "chance", "enhance", 5.0 / 7.0},
		{"rune lengths", "日本語", "日本", 2.0 / 3.0},
		{"invalid utf8 identical", "\xff", "\xff", 1},
		{"invalid utf8 different", "\xff", "\xfe", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Levenshtein(tt.a, tt.b); !approxEqual(got, tt.want) {
				t.Errorf("Levenshtein(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSimilarityProperties(t *testing.T) {
	algorithms := map[string]func(a, b string) float64{
		"SorensenDice": SorensenDice,
		"Levenshtein":  Levenshtein,
	}

	for name, sim := range algorithms {
		t.Run(name, func(t *testing.T) {
			for _, pair := range samplePairs {
				a, b := pair[0], pair[1]

				ab, ba := sim(a, b), sim(b, a)
				if ab != ba {
					t.Errorf("%s not symmetric for (%q, %q): %v != %v", name, a, b, ab, ba)
				}
				if ab < 0 || ab > 1 || math.IsNaN(ab) {
					t.Errorf("%s(%q, %q) = %v, out of [0, 1]", name, a, b, ab)
				}
				if got := sim(a, a); got != 1 {
					t.Errorf("%s(%q, %q) = %v, want 1", name, a, a, got)
				}
			}
		})
	}
}
