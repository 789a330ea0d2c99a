// Package ranker scores page vectors against a question vector and selects
// the best pages.
package ranker

import (
	"sort"

	"github.com/custodia-labs/askpdf/internal/vectorspace"
)

// Hit is a ranked page.
type Hit struct {
	// Index is the page's position in the ranked corpus.
	Index int

	// Score is the dot product with the question vector.
	Score float64
}

// Rank returns the n best pages ordered by descending score.
// Pages with exactly equal scores keep ascending index order, so the same
// corpus and question always yield the same result. n is clamped to
// [1, len(pages)]; an empty corpus yields an empty slice.
func Rank(pages []vectorspace.Vector, query vectorspace.Vector, n int) []Hit {
	if len(pages) == 0 {
		return []Hit{}
	}
	n = Clamp(n, len(pages))

	hits := make([]Hit, len(pages))
	for i := range pages {
		hits[i] = Hit{Index: i, Score: vectorspace.Dot(pages[i], query)}
	}
	sort.SliceStable(hits, func(a, b int) bool {
		return hits[a].Score > hits[b].Score
	})
	return hits[:n]
}

// Clamp limits n to [1, total]. total must be positive.
func Clamp(n, total int) int {
	if n < 1 {
		return 1
	}
	if n > total {
		return total
	}
	return n
}
