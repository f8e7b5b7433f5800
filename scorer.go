package fuzzymatch

import (
	"fmt"
	"math"

	"github.com/remiges-tech/fuzzymatch/algorithms"
)

// Scorer computes the similarity of a query to a candidate key.
// Higher values mean more similar. Implementations must be pure: the same
// pair always yields the same score, and Similarity may be called from
// several goroutines at once.
type Scorer interface {
	Similarity(query, key string) float64
}

// ScorerFunc adapts an ordinary function to the Scorer interface.
type ScorerFunc func(query, key string) float64

// Similarity calls f(query, key).
func (f ScorerFunc) Similarity(query, key string) float64 {
	return f(query, key)
}

// namer is implemented by scorers that report a stable name.
type namer interface {
	Name() string
}

type namedScorer struct {
	name  string
	inner Scorer
}

func (s namedScorer) Similarity(query, key string) float64 {
	return s.inner.Similarity(query, key)
}

func (s namedScorer) Name() string {
	return s.name
}

// Named attaches a name to a scorer. The name shows up in explanations and
// log lines.
func Named(name string, s Scorer) Scorer {
	return namedScorer{name: name, inner: s}
}

var (
	// Bigram scores by Sorensen-Dice overlap of character bigrams.
	Bigram = Named("sorensen_dice", ScorerFunc(algorithms.SorensenDice))

	// EditDistance scores by normalized Levenshtein distance.
	EditDistance = Named("levenshtein", ScorerFunc(algorithms.Levenshtein))
)

// DefaultScorers returns the default chain: rank by bigram overlap, and among
// candidates with equal overlap prefer the one needing fewer edits.
func DefaultScorers() []Scorer {
	return []Scorer{Bigram, EditDistance}
}

// ScorerName returns the name of s, or its Go type for unnamed scorers.
func ScorerName(s Scorer) string {
	if n, ok := s.(namer); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", s)
}

type roundedScorer struct {
	inner  Scorer
	places int
	scale  float64
}

func (s roundedScorer) Similarity(query, key string) float64 {
	return math.Round(s.inner.Similarity(query, key)*s.scale) / s.scale
}

func (s roundedScorer) Name() string {
	return fmt.Sprintf("%s@%d", ScorerName(s.inner), s.places)
}

// maxRoundPlaces is the finest precision Rounded applies. A float64 carries
// no more decimal digits than this, and 10^places overflows past 308.
const maxRoundPlaces = 15

// Rounded wraps s so that its scores are rounded to the given number of
// decimal places. Scores that differ only past that precision then tie and
// are handed to the next scorer in the chain. places is clamped to [0, 15].
func Rounded(s Scorer, places int) Scorer {
	if places < 0 {
		places = 0
	}
	if places > maxRoundPlaces {
		places = maxRoundPlaces
	}
	return roundedScorer{inner: s, places: places, scale: math.Pow(10, float64(places))}
}
