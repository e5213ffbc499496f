package scrape

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/jdkbench/jdkmig/internal/cache"
	"github.com/jdkbench/jdkmig/internal/dataset"
	"github.com/jdkbench/jdkmig/internal/extract"
	"github.com/jdkbench/jdkmig/internal/github"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"
)

// Source is the part of the GitHub client the builder needs.
type Source interface {
	JavaFiles(ctx context.Context, branchURL string) ([]github.TreeEntry, error)
	BlobSource(ctx context.Context, blobURL string) (string, error)
}

// ScrapeIndex records which file pairs have been mined.
type ScrapeIndex interface {
	IsScraped(java8URL, java11URL string) (bool, error)
	MarkScraped(p cache.ScrapedPair) error
}

// Builder mines candidate pairs from a list of repository branch pairs.
type Builder struct {
	Source    Source
	Extractor *extract.FileExtractor
	// APIBase is the REST root branch page URLs are converted against.
	APIBase   string
	MinLength int

	// Index, when set, records every mined file pair. With SkipSeen, pairs
	// already recorded are not fetched again.
	Index    ScrapeIndex
	SkipSeen bool
	// Dedupe drops pairs whose two methods match, by fingerprint, a pair
	// already collected in this run.
	Dedupe bool

	// Progress receives the per-file progress bar; nil hides it.
	Progress io.Writer
	Logger   *log.Logger
}

// BuildResult is the outcome of a Builder run.
type BuildResult struct {
	Candidates
	RepoPairs     int
	FailedRepos   int
	ModifiedFiles int
	FailedFiles   int
	SeenFiles     int
	Duplicates    int
}

// Run processes every repository pair in order. Errors for one repository
// or one file are logged and counted; only context cancellation stops the
// run early, returning what was collected so far.
func (b *Builder) Run(ctx context.Context, pairs []RepoPair) (*BuildResult, error) {
	logger := b.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	minLength := b.MinLength
	if minLength <= 0 {
		minLength = DefaultMinFunctionLength
	}

	res := &BuildResult{RepoPairs: len(pairs)}
	seen := map[string]bool{}

	for _, rp := range pairs {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		files, err := b.modifiedFiles(ctx, rp, logger)
		if err != nil {
			if ctx.Err() != nil {
				return res, ctx.Err()
			}
			logger.Printf("repo pair %s: %v", rp.Java8URL, err)
			res.FailedRepos++
			continue
		}
		res.ModifiedFiles += len(files)

		var repo Candidates
		bar := b.newBar(len(files))
		for _, fp := range files {
			_ = bar.Add(1)
			if b.SkipSeen && b.Index != nil {
				if ok, err := b.Index.IsScraped(fp.Java8URL, fp.Java11URL); err == nil && ok {
					res.SeenFiles++
					continue
				}
			}

			found, err := b.mineFile(ctx, fp, minLength)
			if err != nil {
				if ctx.Err() != nil {
					_ = bar.Finish()
					res.Add(&repo)
					return res, ctx.Err()
				}
				logger.Printf("skip %s: %v", fp.Path, err)
				res.FailedFiles++
				continue
			}

			if b.Dedupe {
				res.Duplicates += dedupe(found, seen)
			}
			repo.Add(found)

			if b.Index != nil {
				err := b.Index.MarkScraped(cache.ScrapedPair{
					Java8URL:   fp.Java8URL,
					Java11URL:  fp.Java11URL,
					Path:       fp.Path,
					SameParams: len(found.SameParams),
					DiffParams: len(found.DiffParams),
				})
				if err != nil {
					logger.Printf("record %s: %v", fp.Path, err)
				}
			}
		}
		_ = bar.Finish()

		logger.Printf("found %d candidate functions with identical parameters", len(repo.SameParams))
		logger.Printf("found %d candidate functions with different parameters", len(repo.DiffParams))
		res.Add(&repo)
	}
	return res, nil
}

// modifiedFiles resolves both branches concurrently and pairs their
// changed files.
func (b *Builder) modifiedFiles(ctx context.Context, rp RepoPair, logger *log.Logger) ([]FilePair, error) {
	j8URL, err := github.BranchAPIURL(rp.Java8URL, b.APIBase)
	if err != nil {
		return nil, err
	}
	j11URL, err := github.BranchAPIURL(rp.Java11URL, b.APIBase)
	if err != nil {
		return nil, err
	}

	var j8, j11 []github.TreeEntry
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		j8, err = b.Source.JavaFiles(gctx, j8URL)
		return partialTree(err, logger)
	})
	g.Go(func() error {
		var err error
		j11, err = b.Source.JavaFiles(gctx, j11URL)
		return partialTree(err, logger)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	common8 := CommonFiles(j8, j11)
	common11 := CommonFiles(j11, common8)
	files := ModifiedFiles(common8, common11)

	logger.Printf("java 8 has %d java files: %s", len(j8), j8URL)
	logger.Printf("java 11 has %d java files: %s", len(j11), j11URL)
	logger.Printf("found %d modified files of %d common files", len(files), len(common8))
	return files, nil
}

func (b *Builder) mineFile(ctx context.Context, fp FilePair, minLength int) (*Candidates, error) {
	var src8, src11 string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		src8, err = b.Source.BlobSource(gctx, fp.Java8URL)
		return err
	})
	g.Go(func() error {
		var err error
		src11, err = b.Source.BlobSource(gctx, fp.Java11URL)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	found, err := CandidatesFromSources(b.Extractor, src8, src11, fp.Java8URL, fp.Java11URL, minLength)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}
	return found, nil
}

func (b *Builder) newBar(n int) *progressbar.ProgressBar {
	w := b.Progress
	if w == nil {
		w = io.Discard
	}
	return progressbar.NewOptions(n,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("files"),
		progressbar.OptionClearOnFinish(),
	)
}

// dedupe removes pairs already in seen from c and records the rest. It
// returns the number removed.
func dedupe(c *Candidates, seen map[string]bool) int {
	removed := 0
	filter := func(ds dataset.Dataset) dataset.Dataset {
		kept := ds[:0]
		for _, p := range ds {
			key := pairKey(p)
			if seen[key] {
				removed++
				continue
			}
			seen[key] = true
			kept = append(kept, p)
		}
		return kept
	}
	c.SameParams = filter(c.SameParams)
	c.DiffParams = filter(c.DiffParams)
	return removed
}

func pairKey(p dataset.Pair) string {
	return functionFingerprint(p.Java8) + "|" + functionFingerprint(p.Java11)
}

func functionFingerprint(fn dataset.Function) string {
	return extract.Fingerprint(&extract.ExtractedFunction{
		Name:       fn.Name,
		Source:     fn.Source,
		Parameters: fn.Params,
	})
}

// partialTree lets a truncated tree through with a warning; files missing
// from it are simply not paired.
func partialTree(err error, logger *log.Logger) error {
	if errors.Is(err, github.ErrTreeTruncated) {
		logger.Printf("warning: %v; using the files received", err)
		return nil
	}
	return err
}
