// Package index builds and holds the inverted index over the document
// store. An Index is immutable after Build; a corpus change always
// produces a fresh Index that replaces the old one wholesale.
package index

// Posting records one document's occurrences of a term.
type Posting struct {
	DocID     string
	Frequency int
	Positions []int
}

// PostingList is a slice of postings for one term, ordered by DocID.
type PostingList []Posting

// TermEntry pairs a term with its postings, used for serialisation and
// ordered snapshots.
type TermEntry struct {
	Term     string
	Postings PostingList
}
