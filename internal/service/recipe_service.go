package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"recipematch/internal/corpus"
	"recipematch/internal/domain"
	"recipematch/internal/ranker"
	"recipematch/internal/substitute"
	"recipematch/internal/summary"
	"recipematch/internal/tfidf"
)

// Options configures a RecipeService.
type Options struct {
	Tokenizer     *tfidf.Tokenizer
	Workers       int
	TopK          int
	Substitutions *substitute.Table
}

// Stats describes the index currently served.
type Stats struct {
	Documents  int             `json:"documents"`
	Vocabulary int             `json:"vocabulary"`
	Sources    []string        `json:"sources"`
	BuildTime  time.Duration   `json:"build_time_ns"`
	LoadedAt   time.Time       `json:"loaded_at"`
	Summary    summary.Summary `json:"summary"`
}

// RecipeService loads a recipe corpus, keeps its index and answers queries.
// A reload builds a complete new index before swapping it in, so concurrent
// queries always see one consistent index.
type RecipeService struct {
	logger *logrus.Entry
	opts   Options

	mu     sync.RWMutex
	ranker *ranker.Ranker
	stats  Stats
}

// NewRecipeService creates a service without a corpus.
func NewRecipeService(opts Options, logger *logrus.Entry) *RecipeService {
	if opts.Substitutions == nil {
		opts.Substitutions = substitute.New(nil)
	}
	if opts.TopK <= 0 {
		opts.TopK = 5
	}
	return &RecipeService{logger: logger.WithField("component", "recipe-service"), opts: opts}
}

// LoadCorpus reads every source in order, concatenates their records and
// builds a fresh index from them.
func (s *RecipeService) LoadCorpus(ctx context.Context, sources ...domain.Source) (summary.Summary, error) {
	if len(sources) == 0 {
		return summary.Summary{}, fmt.Errorf("service: no corpus source configured: %w", domain.ErrNoCorpus)
	}
	var records []domain.Record
	names := make([]string, 0, len(sources))
	for _, src := range sources {
		recs, err := src.Load(ctx)
		if err != nil {
			return summary.Summary{}, fmt.Errorf("service: load %s: %w", src.Name(), err)
		}
		s.logger.WithFields(logrus.Fields{"source": src.Name(), "records": len(recs)}).Info("Loaded recipes")
		records = append(records, recs...)
		names = append(names, src.Name())
	}
	return s.LoadRecords(records, names...), nil
}

// LoadRecords normalizes records and replaces the served index.
func (s *RecipeService) LoadRecords(records []domain.Record, sources ...string) summary.Summary {
	docs := corpus.Normalize(records)
	if dups := corpus.DuplicateIDs(docs); len(dups) > 0 {
		s.logger.WithField("ids", head(dups, 10)).Warnf("%d recipe ids occur more than once; results may be ambiguous", len(dups))
	}

	start := time.Now()
	idx := tfidf.Build(docs, tfidf.Options{Tokenizer: s.opts.Tokenizer, Workers: s.opts.Workers})
	elapsed := time.Since(start)

	stats := Stats{
		Documents:  idx.Len(),
		Vocabulary: idx.Vocabulary().Len(),
		Sources:    sources,
		BuildTime:  elapsed,
		LoadedAt:   time.Now(),
		Summary:    summary.Summarize(docs, 5),
	}
	s.logger.WithFields(logrus.Fields{
		"documents":  stats.Documents,
		"vocabulary": stats.Vocabulary,
		"elapsed":    elapsed.String(),
	}).Info("Built TF-IDF index")

	s.mu.Lock()
	s.ranker = ranker.New(idx, s.opts.TopK)
	s.stats = stats
	s.mu.Unlock()
	return stats.Summary
}

// Query ranks the loaded corpus against query.
func (s *RecipeService) Query(query string, k int) ([]domain.Match, error) {
	s.mu.RLock()
	r := s.ranker
	s.mu.RUnlock()
	if r == nil {
		return nil, fmt.Errorf("service: %w", domain.ErrNoCorpus)
	}
	matches, err := r.Rank(query, k)
	if err != nil {
		return nil, err
	}
	s.logger.WithFields(logrus.Fields{"query": query, "k": k, "matches": len(matches)}).Debug("Ranked query")
	return matches, nil
}

// Suggest ranks with the configured default k.
func (s *RecipeService) Suggest(query string) ([]domain.Match, error) {
	s.mu.RLock()
	r := s.ranker
	s.mu.RUnlock()
	if r == nil {
		return nil, fmt.Errorf("service: %w", domain.ErrNoCorpus)
	}
	return r.Suggest(query)
}

// Substitutions suggests a replacement for every comma-separated ingredient in input.
func (s *RecipeService) Substitutions(input string) []domain.Substitution {
	return s.opts.Substitutions.Suggest(input)
}

// TopK returns the default number of results.
func (s *RecipeService) TopK() int { return s.opts.TopK }

// Stats reports the served index; ok is false before the first load.
func (s *RecipeService) Stats() (Stats, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats, s.ranker != nil
}

func head(ids []string, n int) []string {
	if len(ids) > n {
		return ids[:n]
	}
	return ids
}
