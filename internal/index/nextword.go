package index

import (
	"sort"

	"github.com/searchkit/phraseproc/internal/collection"
)

// EndOfDoc is the next-term sentinel paired with the final token of each
// document. Normalization strips everything outside a-z, so the sentinel
// can never collide with a real term, and no pair ever spans a document
// boundary.
const EndOfDoc = "_"

// NextwordIndex maps ordered term pairs (word, next word) to the documents
// and positions where the pair occurs; the position recorded is that of the
// first word. Phrase matching walks consecutive pair lookups instead of
// intersecting single-term positions.
type NextwordIndex struct {
	pairs       map[string]map[string]PostingList
	docCount    int
	occurrences int64
}

// BuildNextword constructs a NextwordIndex over docs. Every adjacent token
// pair in a document produces exactly one occurrence; the last token pairs
// with EndOfDoc. The returned index is immutable.
func BuildNextword(docs []collection.Document) *NextwordIndex {
	ix := &NextwordIndex{
		pairs:    make(map[string]map[string]PostingList),
		docCount: len(docs),
	}
	for _, doc := range docs {
		for pos, term := range doc.Terms {
			next := EndOfDoc
			if pos+1 < len(doc.Terms) {
				next = doc.Terms[pos+1]
			}
			followers := ix.pairs[term]
			if followers == nil {
				followers = make(map[string]PostingList)
				ix.pairs[term] = followers
			}
			followers[next] = followers[next].appendOccurrence(doc.ID, pos)
			ix.occurrences++
		}
	}
	for _, followers := range ix.pairs {
		for _, pl := range followers {
			pl.sortByDoc()
		}
	}
	return ix
}

// FindPhrase returns the ascending IDs of documents containing the query
// terms as a contiguous phrase. The k+1-term query decomposes into k
// adjacent pairs; candidates come from the first pair's postings and every
// later pair must hold at the start offset by its index. A missing pair
// empties the result immediately.
func (ix *NextwordIndex) FindPhrase(terms []string) []int {
	switch len(terms) {
	case 0:
		return nil
	case 1:
		return ix.docsWithTerm(terms[0])
	}
	first := ix.lookup(terms[0], terms[1])
	if first == nil {
		return nil
	}
	rest := make([]PostingList, len(terms)-2)
	for i := 1; i+1 < len(terms); i++ {
		pl := ix.lookup(terms[i], terms[i+1])
		if pl == nil {
			return nil
		}
		rest[i-1] = pl
	}

	var matches []int
	for _, p := range first {
		for _, start := range p.Positions {
			if chainHolds(p.DocID, start, rest) {
				matches = append(matches, p.DocID)
				break
			}
		}
	}
	sort.Ints(matches)
	return matches
}

// chainHolds reports whether every later pair occurs at start+1, start+2,
// ... within doc.
func chainHolds(docID, start int, rest []PostingList) bool {
	for i, pl := range rest {
		p := pl.find(docID)
		if p == nil || !p.contains(start+i+1) {
			return false
		}
	}
	return true
}

// docsWithTerm handles the degenerate single-term query: the union of
// documents across every pair led by the term. The EndOfDoc sentinel
// guarantees occurrences at the final position of a document are counted.
func (ix *NextwordIndex) docsWithTerm(term string) []int {
	followers, ok := ix.pairs[term]
	if !ok {
		return nil
	}
	seen := make(map[int]struct{})
	for _, pl := range followers {
		for _, p := range pl {
			seen[p.DocID] = struct{}{}
		}
	}
	matches := make([]int, 0, len(seen))
	for docID := range seen {
		matches = append(matches, docID)
	}
	sort.Ints(matches)
	return matches
}

// lookup returns the posting list for an ordered pair, or nil.
func (ix *NextwordIndex) lookup(first, next string) PostingList {
	followers, ok := ix.pairs[first]
	if !ok {
		return nil
	}
	return followers[next]
}

// PairCount returns the number of distinct (word, next word) keys.
func (ix *NextwordIndex) PairCount() int {
	n := 0
	for _, followers := range ix.pairs {
		n += len(followers)
	}
	return n
}

// Occurrences returns the total number of indexed pair occurrences.
func (ix *NextwordIndex) Occurrences() int64 {
	return ix.occurrences
}

// DocCount returns the number of documents the index was built from.
func (ix *NextwordIndex) DocCount() int {
	return ix.docCount
}
