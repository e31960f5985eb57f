package index

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/gcbaptista/go-ir-engine/model"
)

// PostingList is the set of documents containing a term.
// It wraps a 32-bit roaring bitmap keyed by DocumentID.
type PostingList struct {
	rb *roaring.Bitmap
}

// NewPostingList creates a posting list holding the given ids.
func NewPostingList(ids ...model.DocumentID) *PostingList {
	rb := roaring.New()
	for _, id := range ids {
		rb.Add(uint32(id))
	}
	return &PostingList{rb: rb}
}

// Add adds a document to the list.
func (p *PostingList) Add(id model.DocumentID) {
	p.rb.Add(uint32(id))
}

// Contains checks if a document is in the list.
func (p *PostingList) Contains(id model.DocumentID) bool {
	return p.rb.Contains(uint32(id))
}

// IsEmpty returns true if the list is empty.
func (p *PostingList) IsEmpty() bool {
	return p.rb.IsEmpty()
}

// Cardinality returns the number of documents in the list.
func (p *PostingList) Cardinality() int {
	return int(p.rb.GetCardinality())
}

// Clone returns a deep copy of the list.
func (p *PostingList) Clone() *PostingList {
	return &PostingList{rb: p.rb.Clone()}
}

// And returns the intersection of p and other. Neither operand is modified.
func (p *PostingList) And(other *PostingList) *PostingList {
	return &PostingList{rb: roaring.And(p.rb, other.rb)}
}

// Or returns the union of p and other. Neither operand is modified.
func (p *PostingList) Or(other *PostingList) *PostingList {
	return &PostingList{rb: roaring.Or(p.rb, other.rb)}
}

// AndNot returns the documents of p that are not in other.
func (p *PostingList) AndNot(other *PostingList) *PostingList {
	return &PostingList{rb: roaring.AndNot(p.rb, other.rb)}
}

// UnionInPlace merges other into p.
func (p *PostingList) UnionInPlace(other *PostingList) {
	p.rb.Or(other.rb)
}

// IDs returns the documents in ascending id order.
func (p *PostingList) IDs() []model.DocumentID {
	ids := make([]model.DocumentID, 0, p.rb.GetCardinality())
	it := p.rb.Iterator()
	for it.HasNext() {
		ids = append(ids, model.DocumentID(it.Next()))
	}
	return ids
}

// Iterator returns an iterator over the list in ascending id order.
func (p *PostingList) Iterator() iter.Seq[model.DocumentID] {
	return func(yield func(model.DocumentID) bool) {
		it := p.rb.Iterator()
		for it.HasNext() {
			if !yield(model.DocumentID(it.Next())) {
				return
			}
		}
	}
}
