package tfidf

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipematch/internal/domain"
)

const eps = 1e-9

func docs(texts ...string) []domain.Document {
	out := make([]domain.Document, len(texts))
	for i, text := range texts {
		out[i] = domain.Document{ID: fmt.Sprint(i + 1), Text: text}
	}
	return out
}

func weightAt(v Vector, col int) float64 {
	for i, c := range v.Cols {
		if c == col {
			return v.Vals[i]
		}
	}
	return 0
}

// dot is the dense inner product used as a reference for posting-list scoring.
func dot(a, b Vector) float64 {
	dense := make(map[int]float64, len(a.Cols))
	for i, c := range a.Cols {
		dense[c] = a.Vals[i]
	}
	sum := 0.0
	for i, c := range b.Cols {
		sum += dense[c] * b.Vals[i]
	}
	return sum
}

func TestVocabulary(t *testing.T) {
	vocab := newVocabulary(countTerms(docs("pasta tomato", "tortilla beans", "tomato beans beans"), NewTokenizer(0, nil), 1))

	require.Equal(t, []string{"beans", "pasta", "tomato", "tortilla"}, vocab.Terms())
	assert.Equal(t, 3, vocab.Documents())

	n := 3.0
	want := map[string]float64{
		"beans":    math.Log((1+n)/(1+2)) + 1,
		"pasta":    math.Log((1+n)/(1+1)) + 1,
		"tomato":   math.Log((1+n)/(1+2)) + 1,
		"tortilla": math.Log((1+n)/(1+1)) + 1,
	}
	for term, idf := range want {
		col, ok := vocab.Column(term)
		require.True(t, ok, term)
		assert.InDelta(t, idf, vocab.IDF(col), eps, term)
	}
	_, ok := vocab.Column("unobtainium")
	assert.False(t, ok)
}

func TestIDFStaysPositiveWhenTermInEveryDocument(t *testing.T) {
	vocab := newVocabulary(countTerms(docs("salt", "salt pepper", "salt"), NewTokenizer(0, nil), 1))
	col, ok := vocab.Column("salt")
	require.True(t, ok)
	assert.InDelta(t, 1.0, vocab.IDF(col), eps)
}

func TestBuildEmptyCorpus(t *testing.T) {
	ix := Build(nil, Options{})
	assert.Equal(t, 0, ix.Len())
	assert.Equal(t, 0, ix.Vocabulary().Len())
	assert.True(t, ix.Vectorize("pasta").IsZero())
}

func TestRowsAreUnitLength(t *testing.T) {
	ix := Build(docs("pasta tomato tomato", "tortilla beans", "", "rice"), Options{})

	for row := 0; row < ix.Len(); row++ {
		vec := ix.Matrix().Row(row)
		if ix.Document(row).Text == "" {
			assert.True(t, vec.IsZero())
			continue
		}
		assert.InDelta(t, 1.0, vec.Norm(), eps)
	}
}

func TestRowWeights(t *testing.T) {
	ix := Build(docs("pasta tomato tomato", "tortilla beans"), Options{})
	vocab := ix.Vocabulary()
	pasta, _ := vocab.Column("pasta")
	tomato, _ := vocab.Column("tomato")
	beans, _ := vocab.Column("beans")

	// Both terms share idf, so raw weights are 1*idf and 2*idf.
	row := ix.Matrix().Row(0)
	assert.InDelta(t, 1/math.Sqrt(5), weightAt(row, pasta), eps)
	assert.InDelta(t, 2/math.Sqrt(5), weightAt(row, tomato), eps)
	assert.Zero(t, weightAt(row, beans))
}

func TestBuildIsIdempotent(t *testing.T) {
	corpus := docs(
		"romaine lettuce black olives grape tomatoes garlic pepper",
		"plain flour ground pepper salt tomatoes",
		"eggs pepper salt mayonaise cooking oil green chilies",
		"water vegetable oil wheat salt",
		"black pepper shallots cornflour cayenne pepper onions",
	)

	first := Build(corpus, Options{Workers: 1})
	for _, workers := range []int{1, 2, 3, 16} {
		second := Build(corpus, Options{Workers: workers})
		assert.Equal(t, first.Vocabulary().Terms(), second.Vocabulary().Terms())
		assert.Equal(t, first.Vocabulary().Weights(), second.Vocabulary().Weights())
		for row := 0; row < first.Len(); row++ {
			assert.Equal(t, first.Matrix().Row(row), second.Matrix().Row(row), "row %d workers %d", row, workers)
		}
	}
}

func TestRowCopiesDoNotLeak(t *testing.T) {
	ix := Build(docs("pasta tomato"), Options{})
	row := ix.Matrix().Row(0)
	row.Vals[0] = 42

	assert.NotEqual(t, 42.0, ix.Matrix().Row(0).Vals[0])
}

func TestVectorizeDropsUnknownTerms(t *testing.T) {
	ix := Build(docs("pasta tomato", "tortilla beans"), Options{})

	assert.True(t, ix.Vectorize("unobtainium").IsZero())
	assert.True(t, ix.Vectorize("").IsZero())

	q := ix.Vectorize("pasta unobtainium")
	require.Len(t, q.Cols, 1)
	assert.InDelta(t, 1.0, q.Norm(), eps)
}

func TestScoresMatchDenseDot(t *testing.T) {
	ix := Build(docs("pasta tomato basil", "tomato beans", "rice beans", ""), Options{})
	q := ix.Vectorize("tomato beans")

	scores := ix.Matrix().Scores(q)
	require.Len(t, scores, ix.Len())
	for row := range scores {
		assert.InDelta(t, dot(q, ix.Matrix().Row(row)), scores[row], eps)
	}
	assert.Zero(t, scores[3])
}

func TestCountTermsFillsEveryRow(t *testing.T) {
	corpus := docs("salt salt pepper", "", "rice", "beans rice", "salt")
	for _, workers := range []int{0, 1, 2, 4, 100} {
		counts := countTerms(corpus, NewTokenizer(0, nil), workers)
		require.Len(t, counts, len(corpus))
		for row, tf := range counts {
			assert.NotNil(t, tf, "row %d workers %d", row, workers)
		}
		assert.Equal(t, map[string]int{"salt": 2, "pepper": 1}, counts[0])
		assert.Empty(t, counts[1])
		assert.Equal(t, map[string]int{"beans": 1, "rice": 1}, counts[3])
	}
}
