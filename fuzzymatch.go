// Package fuzzymatch finds, within a collection of candidate strings, the
// entry most similar to a query.
//
// Ranking runs a chain of scorers by sequential elimination. The first scorer
// scores every candidate and only those with the highest score survive; each
// following scorer is applied to the survivors alone. Ranking stops as soon as
// one candidate is left. If a tie survives the whole chain, the candidate that
// comes first in the haystack wins. Ties are decided by exact equality of
// scores.
//
// The default chain ranks by bigram overlap (Sorensen-Dice) and breaks ties by
// normalized Levenshtein distance:
//
//	haystack := []fuzzymatch.Candidate[int]{
//		{Key: "rust", Value: 0},
//		{Key: "java", Value: 1},
//		{Key: "lisp", Value: 2},
//	}
//	v, ok := fuzzymatch.FuzzyMatch("bust", haystack) // 0, true
//
// For candidates held in a store, New returns a Matcher backed by a
// registered provider (memory, redis or elasticsearch):
//
//	import _ "github.com/remiges-tech/fuzzymatch/providers/redis"
//
//	config := fuzzymatch.NewConfig(redis.Config{Addr: "localhost:6379"})
//	m, err := fuzzymatch.New("redis", config)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer m.Close()
//
//	m.Index(ctx, "1", "rust", "Rust")
//	result, ok, err := m.Match(ctx, "bust")
package fuzzymatch

// Candidate is a haystack entry: the Key is scored against the query and the
// Value is returned when the entry wins.
type Candidate[V any] struct {
	Key   string
	Value V
}

// defaultChain is the chain used by FuzzyMatch.
var defaultChain = &Chain{scorers: DefaultScorers(), workers: 1}

// FindBestMatch returns the value of the candidate in haystack that best
// matches query under the given scorer chain. The boolean is false when
// haystack is empty. It returns ErrEmptyScorerChain or ErrNilScorer when the
// chain is invalid, regardless of the haystack.
func FindBestMatch[V any](query string, haystack []Candidate[V], scorers []Scorer) (V, bool, error) {
	chain, err := NewChain(scorers)
	if err != nil {
		var zero V
		return zero, false, err
	}

	v, ok := Best(chain, query, haystack)
	return v, ok, nil
}

// FuzzyMatch is FindBestMatch with the default chain [Bigram, EditDistance].
func FuzzyMatch[V any](query string, haystack []Candidate[V]) (V, bool) {
	return Best(defaultChain, query, haystack)
}

// Best runs chain over haystack and returns the winning candidate's value.
func Best[V any](chain *Chain, query string, haystack []Candidate[V]) (V, bool) {
	idx := chain.rank(query, keysOf(haystack), nil)
	if idx < 0 {
		var zero V
		return zero, false
	}
	return haystack[idx].Value, true
}

// Explain runs chain over haystack like Best and reports every evaluated
// stage.
func Explain[V any](chain *Chain, query string, haystack []Candidate[V]) Explanation {
	ex := Explanation{Query: query}
	ex.Winner = chain.rank(query, keysOf(haystack), &ex)
	return ex
}

func keysOf[V any](haystack []Candidate[V]) []string {
	keys := make([]string, len(haystack))
	for i, c := range haystack {
		keys[i] = c.Key
	}
	return keys
}
