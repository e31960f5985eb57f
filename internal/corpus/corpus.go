// Package corpus ties the inverted index and the document store together into
// the single, explicitly passed collection every engine is built from.
package corpus

import (
	"github.com/gcbaptista/go-ir-engine/index"
	"github.com/gcbaptista/go-ir-engine/model"
	"github.com/gcbaptista/go-ir-engine/store"
)

// Corpus is the indexed document collection.
type Corpus struct {
	Index *index.InvertedIndex
	Store *store.DocumentStore
}

// Stats summarises a corpus.
type Stats struct {
	Documents int `json:"documents"`
	Terms     int `json:"terms"`
	Postings  int `json:"postings"`
}

// New creates an empty corpus.
func New() *Corpus {
	return &Corpus{
		Index: index.NewInvertedIndex(),
		Store: store.NewDocumentStore(),
	}
}

// Size returns N, the number of documents.
func (c *Corpus) Size() int {
	return c.Store.Len()
}

// Document returns the document with the given id.
func (c *Corpus) Document(id model.DocumentID) (*model.Document, bool) {
	return c.Store.Get(id)
}

// Documents returns all documents in id order.
func (c *Corpus) Documents() []*model.Document {
	return c.Store.All()
}

// Term returns the postings record of term.
func (c *Corpus) Term(term string) (*model.Term, bool) {
	return c.Index.Term(term)
}

// Postings returns the set of documents containing term.
func (c *Corpus) Postings(term string) *index.PostingList {
	return c.Index.Postings(term)
}

// DocumentFrequency returns df(term).
func (c *Corpus) DocumentFrequency(term string) int {
	return c.Index.DocumentFrequency(term)
}

// Stats returns document, term and posting counts.
func (c *Corpus) Stats() Stats {
	return Stats{
		Documents: c.Store.Len(),
		Terms:     c.Index.Len(),
		Postings:  c.Index.PostingCount(),
	}
}

// EachPosting calls fn for every (term record, document) pair while holding
// the index write lock. It is meant for engine precomputation, which writes the
// derived maps on both sides. fn must not call back into the index.
func (c *Corpus) EachPosting(fn func(term *model.Term, doc *model.Document)) {
	c.Index.Mu.Lock()
	defer c.Index.Mu.Unlock()

	for _, t := range c.Index.Terms {
		for id := range t.Occurrences {
			doc, ok := c.Store.Get(id)
			if !ok {
				continue
			}
			fn(t, doc)
		}
	}
}
