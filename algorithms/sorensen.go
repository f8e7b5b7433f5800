package algorithms

import "unicode"

// Bigram is a pair of adjacent runes.
type Bigram [2]rune

// Bigrams returns the multiset of case-folded bigrams in s together with its
// total size. Bigrams that contain a whitespace rune are skipped, so "rust
// lang" yields ru, us, st, la, an, ng. A string shorter than two runes has no
// bigrams.
func Bigrams(s string) (map[Bigram]int, int) {
	runes := []rune(fold(s))
	if len(runes) < 2 {
		return map[Bigram]int{}, 0
	}

	set := make(map[Bigram]int, len(runes)-1)
	total := 0
	for i := 0; i+1 < len(runes); i++ {
		if unicode.IsSpace(runes[i]) || unicode.IsSpace(runes[i+1]) {
			continue
		}
		set[Bigram{runes[i], runes[i+1]}]++
		total++
	}
	return set, total
}

// SorensenDice returns the Sorensen-Dice coefficient of the bigram multisets
// of a and b: 2*|A∩B| / (|A|+|B|), where a bigram shared by both strings
// counts up to the smaller of its two multiplicities.
//
// When neither string has a bigram the result is 1 if the strings are equal
// after case folding and 0 otherwise. When only one of them has no bigram the
// result is 0.
func SorensenDice(a, b string) float64 {
	if sim, ok := invalidPair(a, b); ok {
		return sim
	}
	if a == b {
		return 1
	}

	aSet, aTotal := Bigrams(a)
	bSet, bTotal := Bigrams(b)

	switch {
	case aTotal == 0 && bTotal == 0:
		if fold(a) == fold(b) {
			return 1
		}
		return 0
	case aTotal == 0 || bTotal == 0:
		return 0
	}

	shared := 0
	for gram, count := range aSet {
		shared += min(count, bSet[gram])
	}

	return 2 * float64(shared) / float64(aTotal+bTotal)
}
