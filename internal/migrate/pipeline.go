// Package migrate runs dataset pairs through a model and scores the output.
package migrate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/jdkbench/jdkmig/internal/codebleu"
	"github.com/jdkbench/jdkmig/internal/dataset"
	"github.com/jdkbench/jdkmig/internal/extract"
	"github.com/jdkbench/jdkmig/internal/llm"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"
)

// Scorer compares a candidate method with a reference.
type Scorer interface {
	Compute(candidate, reference string) (codebleu.Score, error)
}

// Sink receives each result as soon as it is produced.
type Sink interface {
	Write(dataset.Result) error
}

// Pipeline prompts a model with the Java 8 side of each pair and scores
// the answer against the Java 11 side.
type Pipeline struct {
	Client llm.Client
	Scorer Scorer
	// Writer, when set, receives every new result.
	Writer Sink
	// Completed holds results from an earlier run keyed by ResultKey.
	// Matching pairs are not prompted again.
	Completed map[string]dataset.Result
	// Workers bounds concurrent prompts; zero means one.
	Workers int

	Progress io.Writer
	Logger   *log.Logger
}

// Summary counts the outcome of a run.
type Summary struct {
	Total    int `json:"total" yaml:"total"`
	Migrated int `json:"migrated" yaml:"migrated"`
	Resumed  int `json:"resumed" yaml:"resumed"`
	Failed   int `json:"failed" yaml:"failed"`
}

// ResultKey identifies a pair across runs by name and both bodies. Scraped
// overloads share a Java 8 method but differ in their Java 11 reference.
func ResultKey(p dataset.Pair) string {
	return p.Name + ":" + extract.BodyHash(p.Java8.Source) + ":" + extract.BodyHash(p.Java11.Source)
}

// LoadCompleted reads the results streamed by an earlier run. A missing
// file yields an empty map.
func LoadCompleted(path string) (map[string]dataset.Result, error) {
	done := make(map[string]dataset.Result)
	results, err := dataset.ReadJSONL[dataset.Result](path)
	if errors.Is(err, dataset.ErrNotFound) {
		return done, nil
	}
	if err != nil {
		return nil, err
	}
	for _, r := range results {
		done[ResultKey(r.Pair)] = r
	}
	return done, nil
}

// Run migrates every pair of ds. Results keep the order of ds; pairs that
// fail are logged, counted and left out. Only cancellation of ctx stops
// the run early.
func (p *Pipeline) Run(ctx context.Context, ds dataset.Dataset) (Summary, []dataset.Result, error) {
	logger := p.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	workers := p.Workers
	if workers <= 0 {
		workers = 1
	}
	progress := p.Progress
	if progress == nil {
		progress = io.Discard
	}
	bar := progressbar.NewOptions(len(ds),
		progressbar.OptionSetWriter(progress),
		progressbar.OptionSetDescription("migrating"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
	defer bar.Finish()

	sum := Summary{Total: len(ds)}
	slots := make([]*dataset.Result, len(ds))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range ds {
		pair := ds[i]
		if prev, ok := p.Completed[ResultKey(pair)]; ok {
			slots[i] = &prev
			sum.Resumed++
			_ = bar.Add(1)
			continue
		}
		g.Go(func() error {
			defer bar.Add(1)
			res, err := p.migrate(gctx, pair)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				logger.Printf("failed to migrate %s: %v", pair.Name, err)
				mu.Lock()
				sum.Failed++
				mu.Unlock()
				return nil
			}
			if p.Writer != nil {
				if err := p.Writer.Write(*res); err != nil {
					return fmt.Errorf("write result for %s: %w", pair.Name, err)
				}
			}
			mu.Lock()
			slots[i] = res
			sum.Migrated++
			mu.Unlock()
			return nil
		})
	}
	err := g.Wait()

	results := make([]dataset.Result, 0, len(ds))
	for _, r := range slots {
		if r != nil {
			results = append(results, *r)
		}
	}
	return sum, results, err
}

func (p *Pipeline) migrate(ctx context.Context, pair dataset.Pair) (*dataset.Result, error) {
	resp, err := p.Client.Complete(ctx, llm.MigrationPrompt(pair.Java8.Source))
	if err != nil {
		return nil, err
	}
	generated := llm.ExtractJavaCode(resp)

	baseline, err := p.Scorer.Compute(pair.Java8.Source, pair.Java11.Source)
	if err != nil {
		return nil, fmt.Errorf("score java 8: %w", err)
	}
	scored, err := p.Scorer.Compute(generated, pair.Java11.Source)
	if err != nil {
		return nil, fmt.Errorf("score generated: %w", err)
	}

	return &dataset.Result{
		Pair:          pair,
		Model:         p.Client.Name(),
		Generated:     generated,
		Java8Vs11:     baseline,
		GeneratedVs11: scored,
	}, nil
}
