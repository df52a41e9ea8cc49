// Package jsonfile loads recipe records from JSON array files such as the
// train/test splits of the "What's Cooking" dataset.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"recipematch/internal/corpus"
	"recipematch/internal/domain"
)

// Source reads every file and concatenates their records in path order.
type Source struct {
	paths []string
}

// New creates a source over paths.
func New(paths ...string) *Source {
	return &Source{paths: append([]string(nil), paths...)}
}

// Name identifies the source in logs.
func (s *Source) Name() string { return "json:" + strings.Join(s.paths, ",") }

// Load reads all files concurrently and merges them in path order.
func (s *Source) Load(ctx context.Context) ([]domain.Record, error) {
	if len(s.paths) == 0 {
		return nil, fmt.Errorf("jsonfile: no files: %w", domain.ErrNoCorpus)
	}
	parts := make([][]domain.Record, len(s.paths))
	g, ctx := errgroup.WithContext(ctx)
	for i, path := range s.paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			records, err := ReadFile(path)
			if err != nil {
				return err
			}
			parts[i] = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	var out []domain.Record
	for _, p := range parts {
		out = append(out, p...)
	}
	return out, nil
}

// ReadFile decodes one JSON array of recipe objects. Numbers are kept as
// json.Number so large integer ids survive intact.
func ReadFile(path string) ([]domain.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("jsonfile: %w", err)
	}
	defer f.Close()

	var rows []map[string]any
	dec := json.NewDecoder(f)
	dec.UseNumber()
	if err := dec.Decode(&rows); err != nil {
		return nil, fmt.Errorf("jsonfile: parse %s: %w", path, err)
	}
	records, err := corpus.DecodeRecords(rows)
	if err != nil {
		return nil, fmt.Errorf("jsonfile: %s: %w", path, err)
	}
	return records, nil
}
