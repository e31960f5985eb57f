package index

import (
	"bytes"
	"encoding/gob"
	"sync"

	"github.com/gcbaptista/go-ir-engine/model"
)

// InvertedIndex maps a term to its postings record and keeps a roaring posting
// list per term for set operations.
type InvertedIndex struct {
	Mu       sync.RWMutex
	Terms    map[string]*model.Term
	postings map[string]*PostingList
}

// gobInvertedIndexData is a helper struct for Gob encoding/decoding InvertedIndex data.
// It excludes the mutex and the posting lists, which are rebuilt on decode.
type gobInvertedIndexData struct {
	Terms map[string]*model.Term
}

// NewInvertedIndex creates an empty index.
func NewInvertedIndex() *InvertedIndex {
	return &InvertedIndex{
		Terms:    make(map[string]*model.Term),
		postings: make(map[string]*PostingList),
	}
}

// Record stores the occurrence count and running frequency of term in doc,
// creating the term record on first sight. Existing postings of the term are
// never reset.
func (ii *InvertedIndex) Record(term string, doc model.DocumentID, occurrences int, frequency float64) {
	ii.Mu.Lock()
	defer ii.Mu.Unlock()

	t, ok := ii.Terms[term]
	if !ok {
		t = model.NewTerm(term)
		ii.Terms[term] = t
	}
	t.Occurrences[doc] = occurrences
	t.Frequencies[doc] = frequency

	pl, ok := ii.postings[term]
	if !ok {
		pl = NewPostingList()
		ii.postings[term] = pl
	}
	pl.Add(doc)
}

// Term returns the record of term, if indexed.
func (ii *InvertedIndex) Term(term string) (*model.Term, bool) {
	ii.Mu.RLock()
	defer ii.Mu.RUnlock()
	t, ok := ii.Terms[term]
	return t, ok
}

// Postings returns a copy of the posting list of term.
// Unknown terms yield an empty list.
func (ii *InvertedIndex) Postings(term string) *PostingList {
	ii.Mu.RLock()
	defer ii.Mu.RUnlock()
	if pl, ok := ii.postings[term]; ok {
		return pl.Clone()
	}
	return NewPostingList()
}

// DocumentFrequency returns the number of documents containing term.
func (ii *InvertedIndex) DocumentFrequency(term string) int {
	ii.Mu.RLock()
	defer ii.Mu.RUnlock()
	if pl, ok := ii.postings[term]; ok {
		return pl.Cardinality()
	}
	return 0
}

// Len returns the vocabulary size.
func (ii *InvertedIndex) Len() int {
	ii.Mu.RLock()
	defer ii.Mu.RUnlock()
	return len(ii.Terms)
}

// PostingCount returns the total number of (term, document) pairs.
func (ii *InvertedIndex) PostingCount() int {
	ii.Mu.RLock()
	defer ii.Mu.RUnlock()
	total := 0
	for _, pl := range ii.postings {
		total += pl.Cardinality()
	}
	return total
}

// rebuildPostings derives the posting lists from the term records.
// Callers must hold Mu.
func (ii *InvertedIndex) rebuildPostings() {
	ii.postings = make(map[string]*PostingList, len(ii.Terms))
	for term, t := range ii.Terms {
		pl := NewPostingList()
		for doc := range t.Occurrences {
			pl.Add(doc)
		}
		ii.postings[term] = pl
	}
}

// GobEncode implements the gob.GobEncoder interface for InvertedIndex.
func (ii *InvertedIndex) GobEncode() ([]byte, error) {
	ii.Mu.RLock() // Ensure consistent data during encoding
	defer ii.Mu.RUnlock()

	dataToEncode := gobInvertedIndexData{
		Terms: ii.Terms,
	}

	var buf bytes.Buffer
	encoder := gob.NewEncoder(&buf)
	if err := encoder.Encode(dataToEncode); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode implements the gob.GobDecoder interface for InvertedIndex.
func (ii *InvertedIndex) GobDecode(data []byte) error {
	decodedData := gobInvertedIndexData{}

	buf := bytes.NewBuffer(data)
	decoder := gob.NewDecoder(buf)
	if err := decoder.Decode(&decodedData); err != nil {
		return err
	}

	ii.Mu.Lock() // Ensure exclusive access during decoding
	defer ii.Mu.Unlock()

	ii.Terms = decodedData.Terms

	// Gob drops empty maps, so an empty index decodes to nil
	if ii.Terms == nil {
		ii.Terms = make(map[string]*model.Term)
	}
	for term, t := range ii.Terms {
		if t.Term == "" {
			t.Term = term
		}
		t.EnsureMaps()
	}
	ii.rebuildPostings()
	return nil
}
