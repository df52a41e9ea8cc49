package tfidf

import (
	"math"
	"sort"
)

// Vector is a sparse row in term space. Cols are strictly increasing and Vals
// holds the weight of each column.
type Vector struct {
	Cols []int
	Vals []float64
}

// IsZero reports whether v has no non-zero entry.
func (v Vector) IsZero() bool { return len(v.Cols) == 0 }

// Norm returns the Euclidean length of v.
func (v Vector) Norm() float64 {
	sum := 0.0
	for _, w := range v.Vals {
		sum += w * w
	}
	return math.Sqrt(sum)
}

func (v Vector) clone() Vector {
	return Vector{
		Cols: append([]int(nil), v.Cols...),
		Vals: append([]float64(nil), v.Vals...),
	}
}

type posting struct {
	row    int
	weight float64
}

// Matrix is a read-only sparse document-by-term matrix of L2-normalized
// TF-IDF weights. Rows are stored as sparse vectors; postings index the same
// entries by column so a query touches only documents sharing a term with it.
type Matrix struct {
	rows     []Vector
	postings [][]posting
}

func newMatrix(counts []map[string]int, vocab *Vocabulary) *Matrix {
	m := &Matrix{
		rows:     make([]Vector, len(counts)),
		postings: make([][]posting, vocab.Len()),
	}
	for row, tf := range counts {
		vec := weigh(tf, vocab)
		m.rows[row] = vec
		for i, col := range vec.Cols {
			m.postings[col] = append(m.postings[col], posting{row: row, weight: vec.Vals[i]})
		}
	}
	return m
}

// weigh turns raw counts into an L2-normalized tf*idf vector. Terms missing
// from vocab are dropped.
func weigh(tf map[string]int, vocab *Vocabulary) Vector {
	cols := make([]int, 0, len(tf))
	for term := range tf {
		if col, ok := vocab.Column(term); ok {
			cols = append(cols, col)
		}
	}
	if len(cols) == 0 {
		return Vector{}
	}
	sort.Ints(cols)
	vals := make([]float64, len(cols))
	for i, col := range cols {
		vals[i] = float64(tf[vocab.Term(col)]) * vocab.IDF(col)
	}
	vec := Vector{Cols: cols, Vals: vals}
	if norm := vec.Norm(); norm > 0 {
		for i := range vec.Vals {
			vec.Vals[i] /= norm
		}
	}
	return vec
}

// Rows returns the number of documents.
func (m *Matrix) Rows() int { return len(m.rows) }

// Row returns a copy of row d.
func (m *Matrix) Row(d int) Vector { return m.rows[d].clone() }

// Scores returns q·row for every row. Rows without a shared term score 0.
func (m *Matrix) Scores(q Vector) []float64 {
	scores := make([]float64, len(m.rows))
	for i, col := range q.Cols {
		if col < 0 || col >= len(m.postings) {
			continue
		}
		qw := q.Vals[i]
		for _, p := range m.postings[col] {
			scores[p.row] += qw * p.weight
		}
	}
	return scores
}
