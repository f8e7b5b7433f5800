package algorithms

// Distance returns the Levenshtein distance between a and b: the minimum
// number of single-rune insertions, deletions and substitutions, each of unit
// cost, needed to turn one into the other. Runes are compared after case
// folding.
func Distance(a, b string) int {
	return distance([]rune(fold(a)), []rune(fold(b)))
}

// Levenshtein returns the edit distance between a and b normalized to a
// similarity: 1 - d/max(|a|, |b|, 1), with lengths counted in runes. Two empty
// strings have similarity 1.
func Levenshtein(a, b string) float64 {
	if sim, ok := invalidPair(a, b); ok {
		return sim
	}
	if a == b {
		return 1
	}

	ar, br := []rune(fold(a)), []rune(fold(b))
	longest := max(len(ar), len(br), 1)

	return 1 - float64(distance(ar, br))/float64(longest)
}

// distance runs the dynamic-programming recurrence with two rolling rows
// sized to the shorter input.
func distance(a, b []rune) int {
	if len(a) < len(b) {
		a, b = b, a
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			// deletion, insertion, substitution
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}
