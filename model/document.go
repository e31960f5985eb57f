package model

// DocumentID is the internal, sequential identifier of a document.
// IDs are dense from 0 and never reassigned once a document is indexed.
type DocumentID uint32

// Document holds the raw fields of one corpus line and the per-term statistics
// computed for it. Occurrences and Frequencies are written by the indexer only;
// TFIDF and ProbWeights are derived fields owned by the vector and
// probabilistic engines respectively.
type Document struct {
	ID    DocumentID
	Title string // Empty for two-field lines
	Date  string
	Text  string

	Occurrences map[string]int     // term -> raw occurrence count
	Frequencies map[string]float64 // term -> running frequency
	TFIDF       map[string]float64 // term -> tf-idf, populated by the vector engine
	ProbWeights map[string]float64 // term -> log-odds weight, populated by the probabilistic engine
}

// NewDocument creates an empty document with all statistic maps initialized.
func NewDocument(id DocumentID) *Document {
	return &Document{
		ID:          id,
		Occurrences: make(map[string]int),
		Frequencies: make(map[string]float64),
		TFIDF:       make(map[string]float64),
		ProbWeights: make(map[string]float64),
	}
}

// Frequency returns the running frequency of term in the document, or 0 when
// the term does not occur.
func (d *Document) Frequency(term string) float64 {
	return d.Frequencies[term]
}

// HasProbWeight reports whether a probabilistic weight has been computed for term.
func (d *Document) HasProbWeight(term string) bool {
	_, ok := d.ProbWeights[term]
	return ok
}

// DistinctTerms returns the number of distinct terms seen in the document so far.
func (d *Document) DistinctTerms() int {
	return len(d.Occurrences)
}

// EnsureMaps initializes nil maps, e.g. after decoding an older snapshot.
func (d *Document) EnsureMaps() {
	if d.Occurrences == nil {
		d.Occurrences = make(map[string]int)
	}
	if d.Frequencies == nil {
		d.Frequencies = make(map[string]float64)
	}
	if d.TFIDF == nil {
		d.TFIDF = make(map[string]float64)
	}
	if d.ProbWeights == nil {
		d.ProbWeights = make(map[string]float64)
	}
}
