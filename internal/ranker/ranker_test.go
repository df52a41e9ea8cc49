package ranker

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipematch/internal/corpus"
	"recipematch/internal/domain"
	"recipematch/internal/tfidf"
)

func build(records ...domain.Record) *tfidf.Index {
	return tfidf.Build(corpus.Normalize(records), tfidf.Options{})
}

func sampleRecords() []domain.Record {
	return []domain.Record{
		{ID: "10259", Label: "greek", Ingredients: []string{"romaine lettuce", "black olives", "grape tomatoes", "garlic", "pepper", "purple onion", "seasoning", "garbanzo beans", "feta cheese crumbles"}},
		{ID: "25693", Label: "southern_us", Ingredients: []string{"plain flour", "ground pepper", "salt", "tomatoes", "ground black pepper", "thyme", "eggs", "green tomatoes", "yellow corn meal", "milk", "vegetable oil"}},
		{ID: "20130", Label: "filipino", Ingredients: []string{"eggs", "pepper", "salt", "mayonaise", "cooking oil", "green chilies", "grilled chicken breasts", "garlic powder", "yellow onion", "soy sauce", "butter", "chicken livers"}},
		{ID: "22213", Label: "indian", Ingredients: []string{"water", "vegetable oil", "wheat", "salt"}},
		{ID: "13162", Label: "indian", Ingredients: []string{"black pepper", "shallots", "cornflour", "cayenne pepper", "onions", "garlic paste", "milk", "butter", "salt", "lemon juice", "water", "chili powder", "passata", "oil", "ground cumin", "boneless chicken skinless thigh", "garam masala", "double cream", "natural yogurt", "bay leaf"}},
		{ID: "6602", Label: "jamaican", Ingredients: []string{"plain flour", "sugar", "butter", "eggs", "fresh ginger root", "salt", "ground cinnamon", "milk", "vanilla extract", "ground ginger", "powdered sugar", "baking powder"}},
	}
}

func TestRankExactMatchScenario(t *testing.T) {
	idx := build(
		domain.Record{ID: "1", Label: "italian", Ingredients: []string{"pasta", "tomato"}},
		domain.Record{ID: "2", Label: "mexican", Ingredients: []string{"tortilla", "beans"}},
	)

	matches, err := Rank(idx, "pasta tomato", 5)
	require.NoError(t, err)
	require.Len(t, matches, 2)

	assert.Equal(t, "1", matches[0].ID)
	assert.Equal(t, "italian", matches[0].Label)
	assert.InDelta(t, 1.0, matches[0].Score, 1e-9)
	assert.Equal(t, "2", matches[1].ID)
	assert.Zero(t, matches[1].Score)
}

func TestRankZeroVectorQueries(t *testing.T) {
	idx := build(sampleRecords()...)

	for _, query := range []string{"", "   ", "unobtainium", "unobtainium, kryptonite"} {
		t.Run(fmt.Sprintf("%q", query), func(t *testing.T) {
			matches, err := Rank(idx, query, 4)
			require.NoError(t, err)
			require.Len(t, matches, 4)
			for i, m := range matches {
				assert.Equal(t, i, m.Row, "corpus order")
				assert.Zero(t, m.Score)
			}
		})
	}
}

func TestRankRejectsNonPositiveK(t *testing.T) {
	for _, idx := range []*tfidf.Index{build(), build(sampleRecords()...)} {
		for _, k := range []int{0, -1} {
			_, err := Rank(idx, "salt", k)
			assert.ErrorIs(t, err, domain.ErrInvalidArgument)
		}
	}
}

func TestRankNilIndex(t *testing.T) {
	_, err := Rank(nil, "salt", 3)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestRankEmptyCorpus(t *testing.T) {
	matches, err := Rank(build(), "pasta", 3)
	require.NoError(t, err)
	assert.NotNil(t, matches)
	assert.Empty(t, matches)
}

func TestRankFindsEachDocumentFirst(t *testing.T) {
	records := sampleRecords()
	idx := build(records...)

	for row := 0; row < idx.Len(); row++ {
		doc := idx.Document(row)
		matches, err := Rank(idx, doc.Text, 1)
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, doc.ID, matches[0].ID)
		assert.InDelta(t, 1.0, matches[0].Score, 1e-9)
	}
}

func TestRankLengthAndOrdering(t *testing.T) {
	idx := build(sampleRecords()...)
	queries := []string{"salt", "eggs, milk, butter", "chicken garlic", "water", "pepper pepper onion", "zzz"}

	for _, q := range queries {
		for k := 1; k <= 8; k++ {
			matches, err := Rank(idx, q, k)
			require.NoError(t, err)
			assert.LessOrEqual(t, len(matches), min(k, idx.Len()))
			for i := 1; i < len(matches); i++ {
				assert.GreaterOrEqual(t, matches[i-1].Score, matches[i].Score)
				if matches[i-1].Score == matches[i].Score {
					assert.Less(t, matches[i-1].Row, matches[i].Row, "ties keep row order")
				}
			}
			for _, m := range matches {
				assert.GreaterOrEqual(t, m.Score, 0.0)
				assert.LessOrEqual(t, m.Score, 1.0)
			}
		}
	}
}

func TestRankTiesKeepCorpusOrder(t *testing.T) {
	idx := build(
		domain.Record{ID: "a", Ingredients: []string{"rice"}},
		domain.Record{ID: "b", Ingredients: []string{"beans"}},
		domain.Record{ID: "c", Ingredients: []string{"rice"}},
		domain.Record{ID: "d", Ingredients: []string{"rice"}},
	)

	matches, err := Rank(idx, "rice", 3)
	require.NoError(t, err)
	require.Len(t, matches, 3)
	assert.Equal(t, []string{"a", "c", "d"}, []string{matches[0].ID, matches[1].ID, matches[2].ID})
}

func TestRankIsRepeatable(t *testing.T) {
	idx := build(sampleRecords()...)
	first, err := Rank(idx, "salt pepper", 6)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := Rank(idx, "salt pepper", 6)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestRankStableUnderUnrelatedGrowth(t *testing.T) {
	base := []domain.Record{
		{ID: "1", Ingredients: []string{"chicken", "rice", "soy sauce"}},
		{ID: "2", Ingredients: []string{"chicken", "garlic", "ginger"}},
		{ID: "3", Ingredients: []string{"beef", "potato"}},
	}
	grown := append(append([]domain.Record(nil), base...), domain.Record{ID: "4", Ingredients: []string{"quinoa", "kale"}})

	before, err := Rank(build(base...), "chicken soy", 3)
	require.NoError(t, err)
	after, err := Rank(build(grown...), "chicken soy", 4)
	require.NoError(t, err)

	var afterIDs []string
	for _, m := range after {
		if m.ID != "4" {
			afterIDs = append(afterIDs, m.ID)
		}
	}
	var beforeIDs []string
	for _, m := range before {
		beforeIDs = append(beforeIDs, m.ID)
	}
	assert.Equal(t, beforeIDs, afterIDs)
}

func TestRankConcurrentReaders(t *testing.T) {
	idx := build(sampleRecords()...)
	want, err := Rank(idx, "butter milk eggs", 3)
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := Rank(idx, "butter milk eggs", 3)
			if err != nil {
				errs <- err
				return
			}
			if len(got) != len(want) || got[0].ID != want[0].ID {
				errs <- fmt.Errorf("got %v, want %v", got, want)
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestRankerDefaults(t *testing.T) {
	idx := build(sampleRecords()...)
	r := New(idx, 0)

	assert.Equal(t, 5, r.TopK())

	matches, err := r.Suggest("salt")
	require.NoError(t, err)
	assert.Len(t, matches, 5)

	matches, err = r.Rank("salt", 2)
	require.NoError(t, err)
	assert.Len(t, matches, 2)
}
