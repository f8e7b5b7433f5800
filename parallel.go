package fuzzymatch

import (
	"math"
	"sync"
)

// minChunkSize keeps tiny haystacks off the worker pool.
const minChunkSize = 32

// evaluate writes scorer(query, keys[i]) into scores[i] for every i in
// indices. Each goroutine owns a disjoint slice of indices, so no slot is
// written twice.
func (c *Chain) evaluate(scorer Scorer, query string, keys []string, indices []int, scores []float64) {
	workers := c.workers
	if workers <= 1 || len(indices) < 2*minChunkSize {
		scoreChunk(scorer, query, keys, indices, scores)
		return
	}

	chunkSize := (len(indices) + workers - 1) / workers
	if chunkSize < minChunkSize {
		chunkSize = minChunkSize
	}

	var wg sync.WaitGroup
	for start := 0; start < len(indices); start += chunkSize {
		end := min(start+chunkSize, len(indices))

		wg.Add(1)
		go func(chunk []int) {
			defer wg.Done()
			scoreChunk(scorer, query, keys, chunk, scores)
		}(indices[start:end])
	}
	wg.Wait()
}

func scoreChunk(scorer Scorer, query string, keys []string, indices []int, scores []float64) {
	for _, i := range indices {
		score := scorer.Similarity(query, keys[i])
		// NaN never compares equal; treat it as the worst possible score.
		if math.IsNaN(score) {
			score = math.Inf(-1)
		}
		scores[i] = score
	}
}
