package fuzzymatch

import (
	"fmt"
	"math"
)

// Chain is a validated, ordered sequence of scorers. Each scorer only breaks
// ties left by the ones before it. A Chain is immutable and safe for
// concurrent use.
type Chain struct {
	scorers  []Scorer
	minScore float64
	hasMin   bool
	workers  int
}

// ChainOption configures a Chain.
type ChainOption func(*Chain)

// WithMinScore makes the chain report no match when the best score of the
// first scorer is below score. A best score equal to score still matches.
func WithMinScore(score float64) ChainOption {
	return func(c *Chain) {
		c.minScore = score
		c.hasMin = true
	}
}

// WithWorkers spreads each stage's scoring over n goroutines. Results are
// identical to sequential evaluation. n <= 1 keeps evaluation sequential.
func WithWorkers(n int) ChainOption {
	return func(c *Chain) {
		c.workers = n
	}
}

// NewChain validates scorers and returns a reusable chain.
// Returns ErrEmptyScorerChain for an empty chain and ErrNilScorer if any
// element is nil. A nil ScorerFunc counts as nil, also when wrapped by Named
// or Rounded. Nil pointers of other Scorer implementations are not detected.
func NewChain(scorers []Scorer, opts ...ChainOption) (*Chain, error) {
	if len(scorers) == 0 {
		return nil, ErrEmptyScorerChain
	}
	for i, s := range scorers {
		if isNilScorer(s) {
			return nil, fmt.Errorf("%w: position %d", ErrNilScorer, i)
		}
	}

	c := &Chain{
		scorers: append([]Scorer(nil), scorers...),
		workers: 1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func isNilScorer(s Scorer) bool {
	switch s := s.(type) {
	case nil:
		return true
	case ScorerFunc:
		return s == nil
	case namedScorer:
		return isNilScorer(s.inner)
	case roundedScorer:
		return isNilScorer(s.inner)
	}
	return false
}

// Scorers returns a copy of the chain's scorers in evaluation order.
func (c *Chain) Scorers() []Scorer {
	return append([]Scorer(nil), c.scorers...)
}

// Stage records one evaluated scorer of a ranking.
type Stage struct {
	// Scorer is the scorer's name (see ScorerName).
	Scorer string `json:"scorer"`

	// Best is the highest score among the candidates entering the stage.
	Best float64 `json:"best"`

	// Survivors holds the haystack indices that scored Best, in haystack order.
	Survivors []int `json:"survivors"`
}

// Explanation describes how a ranking reached its result.
type Explanation struct {
	Query string `json:"query"`

	// Winner is the haystack index of the match, or -1 when there is none.
	Winner int `json:"winner"`

	// Stages lists the evaluated stages. Stages after a unique winner
	// emerged are not evaluated and do not appear.
	Stages []Stage `json:"stages"`
}

// Matched reports whether the ranking produced a winner.
func (e Explanation) Matched() bool {
	return e.Winner >= 0
}

// rank runs sequential elimination over keys and returns the winning index,
// or -1 if keys is empty or the first stage falls below the minimum score.
// When trace is non-nil every evaluated stage is appended to it.
func (c *Chain) rank(query string, keys []string, trace *Explanation) int {
	if len(keys) == 0 {
		return -1
	}

	remaining := make([]int, len(keys))
	for i := range remaining {
		remaining[i] = i
	}
	scores := make([]float64, len(keys))

	for stage, scorer := range c.scorers {
		c.evaluate(scorer, query, keys, remaining, scores)

		best := math.Inf(-1)
		for _, i := range remaining {
			if scores[i] > best {
				best = scores[i]
			}
		}

		if stage == 0 && c.hasMin && best < c.minScore {
			trace.record(scorer, best, nil)
			return -1
		}

		// Narrow in place; the write index never passes the read index.
		kept := remaining[:0]
		for _, i := range remaining {
			if scores[i] == best {
				kept = append(kept, i)
			}
		}
		remaining = kept
		trace.record(scorer, best, remaining)

		if len(remaining) == 1 {
			return remaining[0]
		}
	}

	// Unresolved tie: first in haystack order wins.
	return remaining[0]
}

func (e *Explanation) record(s Scorer, best float64, survivors []int) {
	if e == nil {
		return
	}
	e.Stages = append(e.Stages, Stage{
		Scorer:    ScorerName(s),
		Best:      best,
		Survivors: append([]int{}, survivors...),
	})
}
