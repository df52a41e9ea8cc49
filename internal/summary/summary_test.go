package summary

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"recipematch/internal/domain"
)

func TestSummarize(t *testing.T) {
	docs := []domain.Document{
		{ID: "1", Label: "italian", Ingredients: []string{"pasta", "tomato", "salt"}},
		{ID: "2", Label: "mexican", Ingredients: []string{"tortilla", "beans", "salt", "Salt"}},
		{ID: "3", Label: "italian", Ingredients: []string{"tomato", "basil"}},
		{ID: "4", Label: "", Ingredients: nil},
	}

	s := Summarize(docs, 2)

	assert.Equal(t, 4, s.Documents)
	assert.Equal(t, 1, s.Empty)
	assert.Equal(t, 2, s.Cuisines)
	assert.Equal(t, []Count{{"italian", 2}, {"mexican", 1}}, s.TopCuisines)
	assert.Equal(t, []Count{{"salt", 2}, {"tomato", 2}}, s.TopIngredients)
	assert.Equal(t, "4 recipes, 2 cuisines; top: italian (2), mexican (1); common ingredients: salt, tomato", s.String())
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, 0)
	assert.Equal(t, 0, s.Documents)
	assert.Empty(t, s.TopCuisines)
	assert.Equal(t, "No recipes loaded.", s.String())
}
