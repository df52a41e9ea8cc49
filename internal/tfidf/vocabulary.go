package tfidf

import (
	"math"
	"sort"
	"sync"

	"recipematch/internal/domain"
)

// Vocabulary maps terms to dense column indexes and carries one smoothed IDF
// weight per column. It is frozen once built.
type Vocabulary struct {
	terms   []string
	columns map[string]int
	idf     []float64
	docs    int
}

// Len returns the number of distinct terms.
func (v *Vocabulary) Len() int { return len(v.terms) }

// Documents returns the corpus size the IDF weights were computed from.
func (v *Vocabulary) Documents() int { return v.docs }

// Column returns the column of term, if the term was observed in the corpus.
func (v *Vocabulary) Column(term string) (int, bool) {
	col, ok := v.columns[term]
	return col, ok
}

// Term returns the term stored at col.
func (v *Vocabulary) Term(col int) string { return v.terms[col] }

// IDF returns the weight of col.
func (v *Vocabulary) IDF(col int) float64 { return v.idf[col] }

// Terms returns a copy of all terms in column order.
func (v *Vocabulary) Terms() []string {
	return append([]string(nil), v.terms...)
}

// Weights returns a copy of the IDF weights in column order.
func (v *Vocabulary) Weights() []float64 {
	return append([]float64(nil), v.idf...)
}

// countTerms tokenizes every document exactly once and returns the raw term
// counts per row. Rows are split into contiguous ranges, one goroutine per
// range, so at most workers goroutines run.
func countTerms(docs []domain.Document, tokenizer *Tokenizer, workers int) []map[string]int {
	counts := make([]map[string]int, len(docs))
	if len(docs) == 0 {
		return counts
	}
	if workers <= 0 {
		workers = 1
	}
	if workers > len(docs) {
		workers = len(docs)
	}
	span := (len(docs) + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < len(docs); start += span {
		start := start
		end := min(start+span, len(docs))
		wg.Add(1)
		go func() {
			defer wg.Done()
			for row := start; row < end; row++ {
				tf := make(map[string]int)
				for _, tok := range tokenizer.Tokenize(docs[row].Text) {
					tf[tok]++
				}
				counts[row] = tf
			}
		}()
	}
	wg.Wait()
	return counts
}

// newVocabulary aggregates document frequencies and computes
// idf(t) = ln((1+n)/(1+df(t))) + 1. Columns follow sorted term order.
func newVocabulary(counts []map[string]int) *Vocabulary {
	df := make(map[string]int)
	for _, tf := range counts {
		for term := range tf {
			df[term]++
		}
	}
	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	v := &Vocabulary{
		terms:   terms,
		columns: make(map[string]int, len(terms)),
		idf:     make([]float64, len(terms)),
		docs:    len(counts),
	}
	n := float64(len(counts))
	for col, term := range terms {
		v.columns[term] = col
		v.idf[col] = math.Log((1+n)/(1+float64(df[term]))) + 1.0
	}
	return v
}
