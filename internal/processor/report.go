package processor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/searchkit/phraseproc/internal/collection"
	"github.com/searchkit/phraseproc/internal/index"
	"github.com/searchkit/phraseproc/internal/query"
	apperrors "github.com/searchkit/phraseproc/pkg/errors"
)

// report accumulates the run statistics written to metrics.csv, one
// key,value row per line.
type report struct {
	testName       string
	docCount       int
	collectionSize int64
	vocabulary     int
	pairCount      int
	queryCount     int
	queryTerms     int
	strategies     map[query.Strategy]*strategyStats
}

type strategyStats struct {
	queryTime time.Duration
	matched   int
	skipped   bool
}

func newReport(opts Options, docs []collection.Document, queries []query.Query, standard *index.StandardIndex, nextword *index.NextwordIndex) *report {
	rep := &report{
		testName:   filepath.Base(opts.OutputDir),
		docCount:   len(docs),
		vocabulary: standard.VocabularySize(),
		pairCount:  nextword.PairCount(),
		queryCount: len(queries),
		strategies: make(map[query.Strategy]*strategyStats),
	}
	for _, doc := range docs {
		rep.collectionSize += int64(len(doc.Terms))
	}
	for _, q := range queries {
		rep.queryTerms += len(q.Terms)
	}
	for _, strategy := range query.Strategies() {
		rep.strategies[strategy] = &strategyStats{}
	}
	return rep
}

func (r *report) recordRun(strategy query.Strategy, elapsed time.Duration, matched int) {
	stats := r.strategies[strategy]
	stats.queryTime = elapsed
	stats.matched = matched
}

func (r *report) markSkipped(strategy query.Strategy) {
	r.strategies[strategy].skipped = true
}

// writeCSV writes the run report. Runtime rows are omitted for strategies
// whose evaluation was skipped because a results file already existed.
func (r *report) writeCSV(path string) error {
	std := r.strategies[query.StrategyStandard]
	nw := r.strategies[query.StrategyNextword]

	meanQueryLength := 0.0
	if r.queryCount > 0 {
		meanQueryLength = float64(r.queryTerms) / float64(r.queryCount)
	}

	var b strings.Builder
	row := func(key string, value any) {
		fmt.Fprintf(&b, "%s,%v\n", key, value)
	}
	row("test_name", r.testName)
	row("number_of_docs", r.docCount)
	row("collection_size", r.collectionSize)
	row("vocabulary_size", r.vocabulary)
	row("nextword_pair_count", r.pairCount)
	row("number_of_queries", r.queryCount)
	row("mean_query_length", fmt.Sprintf("%.2f", meanQueryLength))
	if !std.skipped {
		row("number_of_matched_queries", std.matched)
		row("query_runtime_seconds", fmt.Sprintf("%.6f", std.queryTime.Seconds()))
	}
	if !nw.skipped {
		row("number_of_matched_queries_nw", nw.matched)
		row("query_runtime_seconds_nw", fmt.Sprintf("%.6f", nw.queryTime.Seconds()))
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return apperrors.Newf(apperrors.ErrIO, apperrors.ExitIO,
			"writing run report %s: %v", path, err)
	}
	return nil
}
