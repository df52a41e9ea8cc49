package service

import (
	"github.com/sirupsen/logrus"

	"recipematch/internal/config"
	"recipematch/internal/domain"
	"recipematch/internal/source/jsonfile"
	"recipematch/internal/source/sqlite"
	"recipematch/internal/substitute"
	"recipematch/internal/tfidf"
)

// NewFromConfig builds a RecipeService from the application config.
func NewFromConfig(cfg *config.AppConfig, logger *logrus.Entry) *RecipeService {
	var stopwords []string
	if cfg.Tokenizer.Stopwords == "english" {
		stopwords = tfidf.EnglishStopwords()
	}
	return NewRecipeService(Options{
		Tokenizer:     tfidf.NewTokenizer(cfg.Tokenizer.MinTokenLength, stopwords),
		Workers:       cfg.Index.Workers,
		TopK:          cfg.Ranker.TopK,
		Substitutions: substitute.New(cfg.Substitutions),
	}, logger)
}

// SourcesFromConfig returns the configured corpus sources: the JSON files
// first, then the SQLite table.
func SourcesFromConfig(cfg config.CorpusConfig) []domain.Source {
	var sources []domain.Source
	if len(cfg.Files) > 0 {
		sources = append(sources, jsonfile.New(cfg.Files...))
	}
	if cfg.SQLite != nil && cfg.SQLite.DSN != "" {
		sources = append(sources, sqlite.New(cfg.SQLite.DSN, cfg.SQLite.Table))
	}
	return sources
}
