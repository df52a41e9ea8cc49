// Package corpus turns raw recipe records into documents the index can consume.
package corpus

import (
	"strings"

	"recipematch/internal/domain"
)

// Separator joins ingredient phrases into the normalized text of a document.
const Separator = " "

// NormalizeRecord joins the ingredient list of r into a single text. An empty
// ingredient list yields an empty text; the document is still indexed.
func NormalizeRecord(r domain.Record) domain.Document {
	ingredients := make([]string, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		ingredients = append(ingredients, strings.TrimSpace(ing))
	}
	return domain.Document{
		ID:          r.ID,
		Label:       r.Label,
		Text:        strings.Join(ingredients, Separator),
		Ingredients: ingredients,
	}
}

// Normalize converts records in order. Row i of the result corresponds to records[i].
func Normalize(records []domain.Record) []domain.Document {
	docs := make([]domain.Document, len(records))
	for i, r := range records {
		docs[i] = NormalizeRecord(r)
	}
	return docs
}

// DuplicateIDs reports identifiers that occur more than once, in order of
// their second occurrence.
func DuplicateIDs(docs []domain.Document) []string {
	seen := make(map[string]int, len(docs))
	var dups []string
	for _, d := range docs {
		seen[d.ID]++
		if seen[d.ID] == 2 {
			dups = append(dups, d.ID)
		}
	}
	return dups
}
