// Package tfidf builds a frozen TF-IDF index over a recipe corpus.
//
// An Index bundles the corpus documents, the vocabulary with its smoothed IDF
// weights and the L2-normalized document-by-term matrix. It is never mutated
// after Build and can be shared by any number of concurrent readers.
package tfidf

import (
	"recipematch/internal/domain"
)

// Options configures index construction.
type Options struct {
	// Tokenizer splits document and query text. Nil selects NewTokenizer(0, nil).
	Tokenizer *Tokenizer
	// Workers bounds the goroutines used to count terms. Values <= 1 build sequentially.
	Workers int
}

// Index is an immutable TF-IDF index.
type Index struct {
	docs      []domain.Document
	tokenizer *Tokenizer
	vocab     *Vocabulary
	matrix    *Matrix
}

// Build indexes docs. Row i of the index is docs[i]. An empty corpus yields an
// empty index against which every query returns no matches.
func Build(docs []domain.Document, opts Options) *Index {
	tokenizer := opts.Tokenizer
	if tokenizer == nil {
		tokenizer = NewTokenizer(0, nil)
	}
	frozen := make([]domain.Document, len(docs))
	for i, d := range docs {
		d.Ingredients = append([]string(nil), d.Ingredients...)
		frozen[i] = d
	}

	counts := countTerms(frozen, tokenizer, opts.Workers)
	vocab := newVocabulary(counts)
	return &Index{
		docs:      frozen,
		tokenizer: tokenizer,
		vocab:     vocab,
		matrix:    newMatrix(counts, vocab),
	}
}

// Len returns the corpus size.
func (ix *Index) Len() int { return len(ix.docs) }

// Document returns the document stored at row.
func (ix *Index) Document(row int) domain.Document {
	d := ix.docs[row]
	d.Ingredients = append([]string(nil), d.Ingredients...)
	return d
}

// Vocabulary returns the frozen vocabulary.
func (ix *Index) Vocabulary() *Vocabulary { return ix.vocab }

// Matrix returns the frozen document-by-term matrix.
func (ix *Index) Matrix() *Matrix { return ix.matrix }

// Vectorize maps text into the index term space with the same tokenizer and
// weights used for the documents. Out-of-vocabulary terms are dropped; the
// result is unit length unless it is the zero vector.
func (ix *Index) Vectorize(text string) Vector {
	tf := make(map[string]int)
	for _, tok := range ix.tokenizer.Tokenize(text) {
		tf[tok]++
	}
	return weigh(tf, ix.vocab)
}
