package domain

import (
	"context"
	"errors"
)

var (
	// ErrInvalidArgument marks caller mistakes such as a non-positive k or a missing index.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNoCorpus is returned when a query arrives before any corpus was loaded,
	// or when a load is requested without a single source.
	ErrNoCorpus = errors.New("no corpus loaded")
)

// Record is a raw recipe as delivered by a corpus source.
type Record struct {
	ID          string   `mapstructure:"id" validate:"required"`
	Label       string   `mapstructure:"cuisine" validate:"max=256"`
	Ingredients []string `mapstructure:"ingredients" validate:"dive,max=1024"`
}

// Document is a normalized recipe ready for indexing. Text holds the
// ingredient phrases joined by a single space.
type Document struct {
	ID          string
	Label       string
	Text        string
	Ingredients []string
}

// Match is one ranked recipe.
type Match struct {
	ID          string   `json:"id"`
	Label       string   `json:"cuisine"`
	Score       float64  `json:"score"`
	Row         int      `json:"row"`
	Ingredients []string `json:"ingredients"`
}

// Substitution pairs an ingredient typed by the user with a suggested replacement.
type Substitution struct {
	Ingredient string `json:"ingredient"`
	Substitute string `json:"substitute"`
}

// Source supplies a fully materialized corpus.
type Source interface {
	Name() string
	Load(ctx context.Context) ([]Record, error)
}
