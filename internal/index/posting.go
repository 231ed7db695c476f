package index

import "sort"

// Posting pairs a document with the ascending positions at which an index
// key (a term, or a term pair keyed by its first term's position) occurs.
type Posting struct {
	DocID     int
	Positions []int
}

// PostingList is a set of postings ordered by ascending DocID.
type PostingList []Posting

// find returns the posting for docID, or nil when the document does not
// hold the key.
func (pl PostingList) find(docID int) *Posting {
	i := sort.Search(len(pl), func(i int) bool {
		return pl[i].DocID >= docID
	})
	if i < len(pl) && pl[i].DocID == docID {
		return &pl[i]
	}
	return nil
}

// contains reports whether the key occurs at pos in this posting's document.
func (p *Posting) contains(pos int) bool {
	i := sort.SearchInts(p.Positions, pos)
	return i < len(p.Positions) && p.Positions[i] == pos
}

// appendOccurrence records one occurrence, extending the current posting
// when docID matches the last one (documents are indexed one at a time, so
// out-of-order IDs only ever start a new posting).
func (pl PostingList) appendOccurrence(docID, pos int) PostingList {
	if n := len(pl); n > 0 && pl[n-1].DocID == docID {
		pl[n-1].Positions = append(pl[n-1].Positions, pos)
		return pl
	}
	return append(pl, Posting{DocID: docID, Positions: []int{pos}})
}

// sortByDoc orders the list by DocID. Collections may carry record IDs in
// any file order; queries rely on doc-ordered lists for binary search.
func (pl PostingList) sortByDoc() {
	sort.Slice(pl, func(i, j int) bool {
		return pl[i].DocID < pl[j].DocID
	})
}
