package query

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// WriteResults serializes results one line per query, in slice order:
//
//	Q<query-id>,P<doc-id>,P<doc-id>,...
//
// Document IDs are ascending (the evaluator's contract) and a query with no
// matches serializes as "Q<id>," with an empty list. The layout is
// byte-stable and identical for both strategies so a plain diff compares
// them.
func WriteResults(w io.Writer, results []Result) error {
	bw := bufio.NewWriter(w)
	for _, res := range results {
		ids := make([]string, len(res.DocIDs))
		for i, docID := range res.DocIDs {
			ids[i] = fmt.Sprintf("P%d", docID)
		}
		if _, err := fmt.Fprintf(bw, "Q%d,%s\n", res.QueryID, strings.Join(ids, ",")); err != nil {
			return fmt.Errorf("writing result for query %d: %w", res.QueryID, err)
		}
	}
	return bw.Flush()
}
