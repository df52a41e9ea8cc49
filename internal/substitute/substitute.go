// Package substitute suggests replacements for individual ingredients.
package substitute

import (
	"strings"

	"github.com/tangzero/inflector"

	"recipematch/internal/domain"
)

// NotFound is returned by Lookup when no substitute is known.
const NotFound = "No substitution found"

// Defaults returns the built-in substitution pairs.
func Defaults() map[string]string {
	return map[string]string{
		"butter": "margarine",
		"milk":   "almond milk",
		"egg":    "flaxseed meal",
	}
}

// Table is a read-only ingredient to substitute mapping. Keys are lower-case.
type Table struct {
	entries map[string]string
}

// New builds a table from Defaults overlaid with extra.
func New(extra map[string]string) *Table {
	entries := make(map[string]string)
	for k, v := range Defaults() {
		entries[k] = v
	}
	for k, v := range extra {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		entries[k] = strings.TrimSpace(v)
	}
	return &Table{entries: entries}
}

// Len returns the number of known ingredients.
func (t *Table) Len() int { return len(t.entries) }

// Lookup returns the substitute for ingredient, trying its singular form when
// the exact name is unknown.
func (t *Table) Lookup(ingredient string) string {
	if sub, ok := t.find(ingredient); ok {
		return sub
	}
	return NotFound
}

func (t *Table) find(ingredient string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(ingredient))
	if key == "" {
		return "", false
	}
	if sub, ok := t.entries[key]; ok {
		return sub, true
	}
	if singular := inflector.Singularize(key); singular != key {
		if sub, ok := t.entries[singular]; ok {
			return sub, true
		}
	}
	return "", false
}

// Suggest splits raw user input on commas and looks up every non-empty piece.
func (t *Table) Suggest(input string) []domain.Substitution {
	var out []domain.Substitution
	for _, piece := range strings.Split(input, ",") {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			continue
		}
		out = append(out, domain.Substitution{Ingredient: piece, Substitute: t.Lookup(piece)})
	}
	return out
}
