// Package summary describes a loaded recipe corpus in a few numbers.
package summary

import (
	"fmt"
	"sort"
	"strings"

	"recipematch/internal/domain"
)

// Count is one label or ingredient with its number of recipes.
type Count struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Summary holds corpus statistics.
type Summary struct {
	Documents      int     `json:"documents"`
	Empty          int     `json:"empty"`
	Cuisines       int     `json:"cuisines"`
	TopCuisines    []Count `json:"top_cuisines"`
	TopIngredients []Count `json:"top_ingredients"`
}

// Summarize counts cuisines and ingredients over docs and keeps the limit most
// frequent of each. Ties are broken alphabetically.
func Summarize(docs []domain.Document, limit int) Summary {
	if limit <= 0 {
		limit = 5
	}
	cuisines := map[string]int{}
	ingredients := map[string]int{}
	s := Summary{Documents: len(docs)}
	for _, d := range docs {
		if len(d.Ingredients) == 0 {
			s.Empty++
		}
		if d.Label != "" {
			cuisines[d.Label]++
		}
		seen := make(map[string]struct{}, len(d.Ingredients))
		for _, ing := range d.Ingredients {
			ing = strings.ToLower(ing)
			if _, ok := seen[ing]; ok || ing == "" {
				continue
			}
			seen[ing] = struct{}{}
			ingredients[ing]++
		}
	}
	s.Cuisines = len(cuisines)
	s.TopCuisines = top(cuisines, limit)
	s.TopIngredients = top(ingredients, limit)
	return s
}

func top(freq map[string]int, limit int) []Count {
	counts := make([]Count, 0, len(freq))
	for name, n := range freq {
		counts = append(counts, Count{Name: name, Count: n})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Name < counts[j].Name
	})
	if limit > len(counts) {
		limit = len(counts)
	}
	return counts[:limit]
}

// String renders a one-line description.
func (s Summary) String() string {
	if s.Documents == 0 {
		return "No recipes loaded."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d recipes", s.Documents)
	if s.Cuisines > 0 {
		fmt.Fprintf(&b, ", %d cuisines", s.Cuisines)
	}
	if len(s.TopCuisines) > 0 {
		names := make([]string, len(s.TopCuisines))
		for i, c := range s.TopCuisines {
			names[i] = fmt.Sprintf("%s (%d)", c.Name, c.Count)
		}
		fmt.Fprintf(&b, "; top: %s", strings.Join(names, ", "))
	}
	if len(s.TopIngredients) > 0 {
		names := make([]string, len(s.TopIngredients))
		for i, c := range s.TopIngredients {
			names[i] = c.Name
		}
		fmt.Fprintf(&b, "; common ingredients: %s", strings.Join(names, ", "))
	}
	return b.String()
}
