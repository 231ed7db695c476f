// Package index holds the two positional inverted-index structures the
// processor compares: the standard term index and the nextword pair index.
// Both are built once from the same immutable document set and are
// read-only afterwards; a phrase query evaluated against either must yield
// the same ordered document-id set.
package index

import (
	"sort"

	"github.com/searchkit/phraseproc/internal/collection"
)

// StandardIndex maps each term to the documents and positions where it
// occurs. Phrase matching intersects the positions of consecutive query
// terms.
type StandardIndex struct {
	terms       map[string]PostingList
	docCount    int
	occurrences int64
}

// BuildStandard constructs a StandardIndex over docs. The returned index is
// immutable.
func BuildStandard(docs []collection.Document) *StandardIndex {
	ix := &StandardIndex{
		terms:    make(map[string]PostingList),
		docCount: len(docs),
	}
	for _, doc := range docs {
		for pos, term := range doc.Terms {
			ix.terms[term] = ix.terms[term].appendOccurrence(doc.ID, pos)
			ix.occurrences++
		}
	}
	for _, pl := range ix.terms {
		pl.sortByDoc()
	}
	return ix
}

// FindPhrase returns the ascending IDs of documents containing the query
// terms as a contiguous phrase. A term absent from the index yields an
// empty result immediately; each matching document is listed once no
// matter how many start positions satisfy the phrase.
func (ix *StandardIndex) FindPhrase(terms []string) []int {
	if len(terms) == 0 {
		return nil
	}
	first, ok := ix.terms[terms[0]]
	if !ok {
		return nil
	}
	rest := make([]PostingList, len(terms)-1)
	for i, term := range terms[1:] {
		pl, ok := ix.terms[term]
		if !ok {
			return nil
		}
		rest[i] = pl
	}

	var matches []int
	for _, p := range first {
		for _, start := range p.Positions {
			if ix.phraseAt(p.DocID, start, rest) {
				matches = append(matches, p.DocID)
				break
			}
		}
	}
	sort.Ints(matches)
	return matches
}

// phraseAt reports whether every remaining term occurs at start+1, start+2,
// ... within doc.
func (ix *StandardIndex) phraseAt(docID, start int, rest []PostingList) bool {
	for i, pl := range rest {
		p := pl.find(docID)
		if p == nil || !p.contains(start+i+1) {
			return false
		}
	}
	return true
}

// VocabularySize returns the number of distinct terms.
func (ix *StandardIndex) VocabularySize() int {
	return len(ix.terms)
}

// Occurrences returns the total number of indexed term occurrences.
func (ix *StandardIndex) Occurrences() int64 {
	return ix.occurrences
}

// DocCount returns the number of documents the index was built from.
func (ix *StandardIndex) DocCount() int {
	return ix.docCount
}
