// Package query loads phrase queries, dispatches them to an index strategy,
// and serializes match results in the fixed layout the harness diffs.
package query

import (
	"fmt"

	"github.com/searchkit/phraseproc/internal/collection"
	"github.com/searchkit/phraseproc/internal/tokenizer"
)

// Query is one phrase query: its ID= attribute and the ordered normalized
// terms. Immutable once parsed.
type Query struct {
	ID    int
	Terms []string
}

// Strategy selects which index structure answers a query.
type Strategy string

const (
	StrategyStandard Strategy = "standard"
	StrategyNextword Strategy = "nextword"
)

// Strategies lists every strategy in the order results are produced.
func Strategies() []Strategy {
	return []Strategy{StrategyStandard, StrategyNextword}
}

// ParseStrategy validates a strategy name.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyStandard, StrategyNextword:
		return Strategy(s), nil
	}
	return "", fmt.Errorf("unknown strategy %q", s)
}

// ReadFile parses a query file: one <Q ID=n> terms </Q> record per query,
// normalized through the same tokenizer as the collection. Input order is
// preserved.
func ReadFile(path string, tok tokenizer.Tokenizer) ([]Query, error) {
	records, err := collection.NewReader("Q", tok).ReadFile(path)
	if err != nil {
		return nil, err
	}
	queries := make([]Query, len(records))
	for i, rec := range records {
		queries[i] = Query{ID: rec.ID, Terms: rec.Terms}
	}
	return queries, nil
}
