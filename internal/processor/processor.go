// Package processor drives a full batch run: load the collection, build the
// standard and nextword indexes, answer every query under both strategies,
// and write one results file per strategy plus a run report. The external
// harness asserts equivalence by diffing the two results files.
package processor

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/searchkit/phraseproc/internal/collection"
	"github.com/searchkit/phraseproc/internal/index"
	"github.com/searchkit/phraseproc/internal/query"
	"github.com/searchkit/phraseproc/internal/tokenizer"
	"github.com/searchkit/phraseproc/pkg/config"
	apperrors "github.com/searchkit/phraseproc/pkg/errors"
	"github.com/searchkit/phraseproc/pkg/metrics"
)

// Options are the per-invocation inputs supplied by the harness.
type Options struct {
	CollectionFile string
	QueryFile      string
	OutputDir      string
	// Regenerate forces re-evaluation of a strategy whose results file
	// already exists.
	Regenerate bool
}

// Processor runs the pipeline. Indexes live only for the duration of a run;
// nothing persists except the files under OutputDir.
type Processor struct {
	cfg     *config.Config
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func New(cfg *config.Config) *Processor {
	return &Processor{
		cfg:     cfg,
		metrics: metrics.New(),
		logger:  slog.Default().With("component", "processor"),
	}
}

// Run executes one batch invocation. It either completes fully or fails
// fatally; a malformed record aborts before any results file is touched.
func (p *Processor) Run(ctx context.Context, opts Options) error {
	tok := tokenizer.Tokenizer{Stem: p.cfg.Processor.Stem}

	docs, err := collection.NewReader("P", tok).ReadFile(opts.CollectionFile)
	if err != nil {
		return err
	}
	p.metrics.DocsIndexedTotal.Add(float64(len(docs)))
	p.logger.Info("collection loaded",
		"file", opts.CollectionFile,
		"documents", len(docs),
		"stem", p.cfg.Processor.Stem,
	)

	queries, err := query.ReadFile(opts.QueryFile, tok)
	if err != nil {
		return err
	}
	p.logger.Info("queries loaded", "file", opts.QueryFile, "queries", len(queries))

	standard, nextword, err := p.buildIndexes(ctx, docs)
	if err != nil {
		return err
	}

	report := newReport(opts, docs, queries, standard, nextword)
	for _, strategy := range query.Strategies() {
		var ix query.Index
		switch strategy {
		case query.StrategyStandard:
			ix = standard
		case query.StrategyNextword:
			ix = nextword
		}
		if err := p.runStrategy(ctx, strategy, ix, queries, opts, report); err != nil {
			return err
		}
	}

	if err := report.writeCSV(filepath.Join(opts.OutputDir, "metrics.csv")); err != nil {
		return err
	}
	if p.cfg.Metrics.Enabled {
		path := filepath.Join(opts.OutputDir, p.cfg.Metrics.FileName)
		if err := p.metrics.WriteFile(path); err != nil {
			return apperrors.Newf(apperrors.ErrIO, apperrors.ExitIO,
				"writing metrics file: %v", err)
		}
	}
	return nil
}

// buildIndexes constructs both index structures concurrently. They read the
// same immutable document slice and write disjoint memory, so the only
// synchronization needed is the Wait barrier.
func (p *Processor) buildIndexes(ctx context.Context, docs []collection.Document) (*index.StandardIndex, *index.NextwordIndex, error) {
	var (
		standard *index.StandardIndex
		nextword *index.NextwordIndex
	)
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		start := time.Now()
		standard = index.BuildStandard(docs)
		elapsed := time.Since(start)
		p.recordBuild(string(query.StrategyStandard), elapsed,
			standard.VocabularySize(), standard.Occurrences())
		return nil
	})
	g.Go(func() error {
		start := time.Now()
		nextword = index.BuildNextword(docs)
		elapsed := time.Since(start)
		p.recordBuild(string(query.StrategyNextword), elapsed,
			nextword.PairCount(), nextword.Occurrences())
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return standard, nextword, nil
}

func (p *Processor) recordBuild(strategy string, elapsed time.Duration, vocab int, occurrences int64) {
	p.metrics.IndexBuildSeconds.WithLabelValues(strategy).Set(elapsed.Seconds())
	p.metrics.VocabularySize.WithLabelValues(strategy).Set(float64(vocab))
	p.metrics.TermsIndexedTotal.WithLabelValues(strategy).Add(float64(occurrences))
	p.logger.Info("index built",
		"strategy", strategy,
		"vocabulary", vocab,
		"occurrences", occurrences,
		"elapsed", elapsed,
	)
}

// runStrategy evaluates every query under one strategy and writes its
// results file at <output-dir>/<strategy>/results.txt. An existing results
// file is left untouched unless Regenerate is set.
func (p *Processor) runStrategy(ctx context.Context, strategy query.Strategy, ix query.Index, queries []query.Query, opts Options, rep *report) error {
	dir := filepath.Join(opts.OutputDir, string(strategy))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return apperrors.Newf(apperrors.ErrIO, apperrors.ExitIO,
			"creating output directory %s: %v", dir, err)
	}
	path := filepath.Join(dir, p.cfg.Processor.ResultsFileName)
	if !opts.Regenerate {
		if _, err := os.Stat(path); err == nil {
			p.logger.Info("results file exists, skipping strategy",
				"strategy", strategy, "path", path)
			rep.markSkipped(strategy)
			return nil
		}
	}

	start := time.Now()
	results, err := p.evaluate(ctx, strategy, ix, queries)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	f, err := os.Create(path)
	if err != nil {
		return apperrors.Newf(apperrors.ErrIO, apperrors.ExitIO,
			"creating results file %s: %v", path, err)
	}
	if err := query.WriteResults(f, results); err != nil {
		f.Close()
		return apperrors.Newf(apperrors.ErrIO, apperrors.ExitIO,
			"writing results file %s: %v", path, err)
	}
	if err := f.Close(); err != nil {
		return apperrors.Newf(apperrors.ErrIO, apperrors.ExitIO,
			"closing results file %s: %v", path, err)
	}

	matched := 0
	for _, res := range results {
		if len(res.DocIDs) > 0 {
			matched++
		}
	}
	p.metrics.QueriesMatchedTotal.WithLabelValues(string(strategy)).Add(float64(matched))
	rep.recordRun(strategy, elapsed, matched)
	p.logger.Info("strategy complete",
		"strategy", strategy,
		"queries", len(queries),
		"matched", matched,
		"elapsed", elapsed,
		"results", path,
	)
	return nil
}

// evaluate fans queries out over a bounded worker group. Results land in a
// slice indexed by query ordinal, so output order never depends on
// scheduling.
func (p *Processor) evaluate(ctx context.Context, strategy query.Strategy, ix query.Index, queries []query.Query) ([]query.Result, error) {
	results := make([]query.Result, len(queries))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.Processor.Workers)
	for i, q := range queries {
		i, q := i, q
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			results[i] = query.Evaluate(q, ix)
			p.metrics.QueriesTotal.WithLabelValues(string(strategy)).Inc()
			p.metrics.QueryLatency.WithLabelValues(string(strategy)).Observe(time.Since(start).Seconds())
			p.logger.Debug("query evaluated",
				"strategy", strategy,
				"query_id", q.ID,
				"terms", q.Terms,
				"matches", len(results[i].DocIDs),
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("evaluating queries (%s): %w", strategy, err)
	}
	return results, nil
}
