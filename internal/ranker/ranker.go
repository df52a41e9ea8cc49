// Package ranker scores a free-text query against a frozen TF-IDF index.
package ranker

import (
	"fmt"
	"sort"

	"recipematch/internal/domain"
	"recipematch/internal/tfidf"
)

// Rank returns up to k documents of idx ordered by descending cosine
// similarity to query. Equal scores keep corpus row order. A query without any
// in-vocabulary term scores 0 against every document and still yields the
// first k rows. Rank only reads idx and may run concurrently.
func Rank(idx *tfidf.Index, query string, k int) ([]domain.Match, error) {
	if k <= 0 {
		return nil, fmt.Errorf("ranker: k must be positive, got %d: %w", k, domain.ErrInvalidArgument)
	}
	if idx == nil {
		return nil, fmt.Errorf("ranker: nil index: %w", domain.ErrInvalidArgument)
	}
	if idx.Len() == 0 {
		return []domain.Match{}, nil
	}

	// both sides are unit length, so the dot product is the cosine
	q := idx.Vectorize(query)
	scores := make([]float64, idx.Len())
	if !q.IsZero() {
		scores = idx.Matrix().Scores(q)
	}
	order := argsortDesc(scores)
	if k > len(order) {
		k = len(order)
	}
	matches := make([]domain.Match, 0, k)
	for _, row := range order[:k] {
		doc := idx.Document(row)
		matches = append(matches, domain.Match{
			ID:          doc.ID,
			Label:       doc.Label,
			Score:       clamp(scores[row]),
			Row:         row,
			Ingredients: doc.Ingredients,
		})
	}
	return matches, nil
}

// Ranker holds one index for the lifetime of a process.
type Ranker struct {
	index *tfidf.Index
	topK  int
}

// New wraps idx. topK <= 0 selects 5.
func New(idx *tfidf.Index, topK int) *Ranker {
	if topK <= 0 {
		topK = 5
	}
	return &Ranker{index: idx, topK: topK}
}

// TopK returns the default result count.
func (r *Ranker) TopK() int { return r.topK }

// Rank ranks with an explicit k.
func (r *Ranker) Rank(query string, k int) ([]domain.Match, error) {
	return Rank(r.index, query, k)
}

// Suggest ranks with the default k.
func (r *Ranker) Suggest(query string) ([]domain.Match, error) {
	return Rank(r.index, query, r.topK)
}

// argsortDesc orders row indexes by descending score; the stable sort keeps
// ascending row order among equal scores.
func argsortDesc(vals []float64) []int {
	idxs := make([]int, len(vals))
	for i := range vals {
		idxs[i] = i
	}
	sort.SliceStable(idxs, func(a, b int) bool { return vals[idxs[a]] > vals[idxs[b]] })
	return idxs
}

func clamp(score float64) float64 {
	switch {
	case score < 0:
		return 0
	case score > 1:
		return 1
	}
	return score
}
