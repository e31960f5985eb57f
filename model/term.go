package model

// Term is the postings record of a single vocabulary entry. Its maps mirror the
// statistics held by each Document, keyed by document instead of by term.
type Term struct {
	Term string

	Occurrences map[DocumentID]int     // doc -> raw occurrence count
	Frequencies map[DocumentID]float64 // doc -> running frequency (mirrors Document.Frequencies)
	TFIDF       map[DocumentID]float64
	ProbWeights map[DocumentID]float64
}

// NewTerm creates an empty term record.
func NewTerm(term string) *Term {
	return &Term{
		Term:        term,
		Occurrences: make(map[DocumentID]int),
		Frequencies: make(map[DocumentID]float64),
		TFIDF:       make(map[DocumentID]float64),
		ProbWeights: make(map[DocumentID]float64),
	}
}

// DocumentFrequency is the number of documents containing the term.
func (t *Term) DocumentFrequency() int {
	return len(t.Occurrences)
}

// EnsureMaps initializes nil maps, e.g. after decoding an older snapshot.
func (t *Term) EnsureMaps() {
	if t.Occurrences == nil {
		t.Occurrences = make(map[DocumentID]int)
	}
	if t.Frequencies == nil {
		t.Frequencies = make(map[DocumentID]float64)
	}
	if t.TFIDF == nil {
		t.TFIDF = make(map[DocumentID]float64)
	}
	if t.ProbWeights == nil {
		t.ProbWeights = make(map[DocumentID]float64)
	}
}
