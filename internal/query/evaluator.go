package query

// Index is the read-only phrase lookup both index structures satisfy.
// FindPhrase returns ascending, deduplicated document IDs; an unknown term
// or pair yields an empty set, never an error.
type Index interface {
	FindPhrase(terms []string) []int
}

// Result is the ordered match set for one query under one strategy.
type Result struct {
	QueryID int
	DocIDs  []int
}

// Evaluate answers one query against one index. It is a pure function of
// its inputs: the index is never mutated and identical inputs always yield
// the same ordered result.
func Evaluate(q Query, ix Index) Result {
	return Result{
		QueryID: q.ID,
		DocIDs:  ix.FindPhrase(q.Terms),
	}
}
